// Package tui implements `refman browse`, an interactive view of one registry.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nrminor/py-refman/internal/domain"
)

type datasetItem struct {
	ds domain.Dataset
}

func (i datasetItem) Title() string       { return i.ds.Label }
func (i datasetItem) Description() string { return summarizeKinds(i.ds) }
func (i datasetItem) FilterValue() string { return i.ds.Label }

type model struct {
	theme Theme
	deps  Deps

	list    list.Model
	project domain.Project
	loaded  bool
	width   int

	showDetail bool
	// confirmRemove holds the label awaiting a second "x".
	confirmRemove string

	running bool
	cancel  context.CancelFunc

	toast    string
	toastErr bool
}

func Run(deps Deps) error {
	if deps.Logger == nil {
		deps.Logger = discardLogger()
	}
	p := tea.NewProgram(wrapSafe(newModel(deps), deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	if deps.Logger == nil {
		deps.Logger = discardLogger()
	}
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Datasets"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		theme:      DefaultTheme(),
		deps:       deps,
		list:       l,
		showDetail: true,
	}
}

func (m model) Init() tea.Cmd { return cmdLoadRegistry(m.deps) }

func (m model) selected() (domain.Dataset, bool) {
	it, ok := m.list.SelectedItem().(datasetItem)
	if !ok {
		return domain.Dataset{}, false
	}
	return it.ds, true
}

func (m *model) setProject(p domain.Project) {
	m.project = p
	m.loaded = true
	items := make([]list.Item, 0, len(p.Datasets))
	for _, ds := range p.Datasets {
		items = append(items, datasetItem{ds: ds})
	}
	m.list.SetItems(items)
}

func (m *model) fail(err error) {
	m.deps.Logger.Error("tui.error", "error", err)
	m.toast = userMessage(err)
	m.toastErr = true
}

func (m *model) info(s string) {
	m.toast = s
	m.toastErr = false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.SetSize(msg.Width/2-4, msg.Height-8)
		return m, nil

	case registryLoadedMsg:
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.setProject(msg.project)
		return m, nil

	case downloadDoneMsg:
		m.running = false
		m.cancel = nil
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.info(fmt.Sprintf("Downloaded %s into %s", msg.label, msg.dest))
		return m, nil

	case removeDoneMsg:
		m.running = false
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.setProject(msg.project)
		m.info(fmt.Sprintf("Removed %s", msg.label))
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		key := msg.String()
		if key != "x" {
			m.confirmRemove = ""
		}

		switch key {
		case "ctrl+c":
			if m.running && m.cancel != nil {
				m.cancel()
				m.info("Cancelling…")
				return m, nil
			}
			return m, tea.Quit

		case "q":
			if m.running {
				return m, nil
			}
			return m, tea.Quit

		case "enter", "tab":
			m.showDetail = !m.showDetail
			return m, nil

		case "r":
			if m.running {
				return m, nil
			}
			m.info("Reloading…")
			return m, cmdLoadRegistry(m.deps)

		case "d":
			ds, ok := m.selected()
			if !ok || m.running {
				return m, nil
			}
			ctx, cancel := context.WithCancel(context.Background())
			m.running = true
			m.cancel = cancel
			m.info(fmt.Sprintf("Downloading %s… (ctrl+c to cancel)", ds.Label))
			return m, cmdDownload(ctx, m.deps, ds.Label)

		case "x":
			ds, ok := m.selected()
			if !ok || m.running {
				return m, nil
			}
			if m.confirmRemove != ds.Label {
				m.confirmRemove = ds.Label
				m.info(fmt.Sprintf("Press x again to remove %s", ds.Label))
				return m, nil
			}
			m.confirmRemove = ""
			m.running = true
			return m, cmdRemove(m.deps, ds.Label)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	title := m.project.Title
	if title == "" {
		title = "refman"
	}
	header := m.theme.Title.Render(title) + "\n"
	if m.project.Description != "" {
		header += m.theme.Subtitle.Render(m.project.Description) + "\n"
	}

	var body string
	switch {
	case !m.loaded:
		body = m.theme.Card.Render("Loading registry…")
	case len(m.project.Datasets) == 0:
		body = m.theme.Card.Render("No datasets registered.\n\nAdd one with `refman register LABEL --fasta PATH`.")
	default:
		left := m.theme.Card.Render(m.list.View())
		body = left
		if ds, ok := m.selected(); ok && m.showDetail {
			detail := m.theme.Card.Render(
				m.theme.Title.Render(ds.Label) + "\n\n" + renderDatasetDetails(ds, m.width/2),
			)
			body = lipgloss.JoinHorizontal(lipgloss.Top, left, " ", detail)
		}
	}

	status := ""
	if m.toast != "" {
		style := m.theme.Toast
		if m.toastErr {
			style = m.theme.Error
		}
		status = style.Render(m.toast) + "\n"
	}

	help := m.theme.Help.Render("↑/↓ navigate • enter details • d download • x remove • r reload • / search • q quit")
	return wrap.Render(header + "\n" + body + "\n" + status + help)
}
