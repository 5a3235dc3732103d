package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

func cmdLoadRegistry(deps Deps) tea.Cmd {
	return func() tea.Msg {
		p, err := deps.Source.ReadRegistry(context.Background(), deps.Location)
		return registryLoadedMsg{project: p, err: err}
	}
}

// cmdDownload runs under ctx so the browser can abandon it.
func cmdDownload(ctx context.Context, deps Deps, label string) tea.Cmd {
	return func() tea.Msg {
		err := deps.Source.Download(ctx, label, deps.Dest, deps.Location)
		return downloadDoneMsg{label: label, dest: deps.Dest, err: err}
	}
}

func cmdRemove(deps Deps, label string) tea.Cmd {
	return func() tea.Msg {
		p, err := deps.Source.Remove(context.Background(), label, deps.Location)
		return removeDoneMsg{label: label, project: p, err: err}
	}
}
