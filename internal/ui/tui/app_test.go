package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/hosterr"
)

type fakeSource struct {
	project    domain.Project
	downloaded []string
	removed    []string
	err        error
}

func (s *fakeSource) ReadRegistry(context.Context, domain.Location) (domain.Project, error) {
	return s.project, s.err
}

func (s *fakeSource) Download(ctx context.Context, label, dest string, _ domain.Location) error {
	if err := ctx.Err(); err != nil {
		return hosterr.ReportErr(err)
	}
	s.downloaded = append(s.downloaded, label+"->"+dest)
	return s.err
}

func (s *fakeSource) Remove(_ context.Context, label string, _ domain.Location) (domain.Project, error) {
	s.removed = append(s.removed, label)
	return s.project.Remove(label)
}

func testProject() domain.Project {
	p := domain.NewProject("Viral refs", "", false)
	p, _ = p.Register(domain.Dataset{Label: "sars", Files: domain.FileSet{domain.KindFasta: "https://h/sars.fasta"}})
	p, _ = p.Register(domain.Dataset{Label: "flu", Files: domain.FileSet{domain.KindGFF: "/data/flu.gff3"}})
	return p
}

func loadedModel(t *testing.T, src *fakeSource) model {
	t.Helper()
	m := newModel(Deps{Source: src, Dest: "/out"})

	msg := m.Init()()
	next, _ := m.Update(msg)
	next, _ = next.(model).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(model)
}

func press(t *testing.T, m model, key string) (model, tea.Cmd) {
	t.Helper()
	var km tea.KeyMsg
	switch key {
	case "ctrl+c":
		km = tea.KeyMsg{Type: tea.KeyCtrlC}
	case "enter":
		km = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		km = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(km)
	return next.(model), cmd
}

func TestModel_LoadsDatasets(t *testing.T) {
	m := loadedModel(t, &fakeSource{project: testProject()})

	if len(m.list.Items()) != 2 {
		t.Fatalf("expected 2 items, got %d", len(m.list.Items()))
	}
	view := m.View()
	for _, want := range []string{"Viral refs", "sars", "https://h/sars.fasta"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestModel_LoadErrorShowsHostMessage(t *testing.T) {
	src := &fakeSource{err: hosterr.RegistryErr(&domain.RegistryError{Kind: domain.RegistryNotFound, Path: "/x/refman.yaml"})}
	m := loadedModel(t, src)

	if !m.toastErr || !strings.Contains(m.toast, "no registry found") {
		t.Fatalf("expected registry error toast, got %q", m.toast)
	}
}

func TestModel_DownloadSelected(t *testing.T) {
	src := &fakeSource{project: testProject()}
	m := loadedModel(t, src)

	m, cmd := press(t, m, "d")
	if !m.running || cmd == nil {
		t.Fatalf("expected download started")
	}
	next, _ := m.Update(cmd())
	m = next.(model)

	if m.running {
		t.Fatalf("expected download finished")
	}
	if len(src.downloaded) != 1 || src.downloaded[0] != "sars->/out" {
		t.Fatalf("unexpected downloads %v", src.downloaded)
	}
	if !strings.Contains(m.toast, "Downloaded sars") {
		t.Fatalf("unexpected toast %q", m.toast)
	}
}

func TestModel_CtrlCCancelsRunningDownload(t *testing.T) {
	src := &fakeSource{project: testProject()}
	m := loadedModel(t, src)

	m, cmd := press(t, m, "d")
	m, quit := press(t, m, "ctrl+c")
	if quit != nil {
		t.Fatalf("expected ctrl+c to cancel, not quit")
	}

	next, _ := m.Update(cmd())
	m = next.(model)
	if !m.toastErr || !strings.Contains(m.toast, context.Canceled.Error()) {
		t.Fatalf("expected cancellation toast, got %q", m.toast)
	}
	if len(src.downloaded) != 0 {
		t.Fatalf("expected nothing downloaded")
	}
}

func TestModel_RemoveNeedsConfirmation(t *testing.T) {
	src := &fakeSource{project: testProject()}
	m := loadedModel(t, src)

	m, cmd := press(t, m, "x")
	if cmd != nil || len(src.removed) != 0 {
		t.Fatalf("expected first x to only ask for confirmation")
	}
	m, cmd = press(t, m, "x")
	if cmd == nil {
		t.Fatalf("expected remove command")
	}
	next, _ := m.Update(cmd())
	m = next.(model)

	if len(m.list.Items()) != 1 {
		t.Fatalf("expected 1 item left, got %d", len(m.list.Items()))
	}
}

func TestUserMessage(t *testing.T) {
	if got := userMessage(errors.New("raw")); got != "Unexpected error (see logs)" {
		t.Fatalf("unexpected %q", got)
	}
	long := hosterr.ReportErr(errors.New(strings.Repeat("a", 300)))
	if got := userMessage(long); len([]rune(got)) != maxToast+1 {
		t.Fatalf("expected clamped message, got %d runes", len([]rune(got)))
	}
}
