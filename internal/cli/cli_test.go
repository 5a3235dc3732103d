package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/taskrun"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	var out, errb bytes.Buffer
	a := &app{stdout: &out, stderr: &errb, interrupt: taskrun.NewManualInterrupt()}
	code := a.run(context.Background(), args)
	return result{code: code, stdout: out.String(), stderr: errb.String()}
}

func newHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("REFMAN_HOME", home)
	return home
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCLI_EndToEnd(t *testing.T) {
	newHome(t)
	reg := t.TempDir()
	data := t.TempDir()
	dest := t.TempDir()

	fasta := filepath.Join(data, "ref.fasta")
	writeFile(t, fasta, ">chr1\nACGT\n")

	if r := runCLI(t, "init", "-r", reg, "--title", "refs"); r.code != 0 {
		t.Fatalf("init failed: %+v", r)
	}
	if _, err := os.Stat(filepath.Join(reg, "refman.yaml")); err != nil {
		t.Fatalf("expected manifest: %v", err)
	}

	if r := runCLI(t, "register", "sars2", "--fasta", fasta, "-r", reg); r.code != 0 {
		t.Fatalf("register failed: %+v", r)
	}

	r := runCLI(t, "list", "-r", reg, "--format", "json")
	if r.code != 0 {
		t.Fatalf("list failed: %+v", r)
	}
	var view registryView
	if err := json.Unmarshal([]byte(r.stdout), &view); err != nil {
		t.Fatalf("list output not JSON: %v\n%s", err, r.stdout)
	}
	if view.Title != "refs" || len(view.Datasets) != 1 || view.Datasets[0].Fasta != fasta {
		t.Fatalf("unexpected view: %+v", view)
	}

	r = runCLI(t, "list", "-r", reg, "--jsonpath", "$.datasets[*].label")
	if r.code != 0 || strings.TrimSpace(r.stdout) != "sars2" {
		t.Fatalf("unexpected jsonpath output: %+v", r)
	}

	r = runCLI(t, "urls", "sars2", "-r", reg)
	if r.code != 0 || strings.TrimSpace(r.stdout) != "" {
		t.Fatalf("expected no remote URLs for a local dataset: %+v", r)
	}

	if r := runCLI(t, "download", "sars2", "-r", reg, "--dest", dest); r.code != 0 {
		t.Fatalf("download failed: %+v", r)
	}
	got, err := os.ReadFile(filepath.Join(dest, "ref.fasta"))
	if err != nil || string(got) != ">chr1\nACGT\n" {
		t.Fatalf("expected copied file, got %q (%v)", got, err)
	}

	if r := runCLI(t, "remove", "sars2", "-r", reg); r.code != 0 {
		t.Fatalf("remove failed: %+v", r)
	}
	r = runCLI(t, "remove", "sars2", "-r", reg)
	if r.code != 1 || r.stderr != "Error: dataset \"sars2\" is not registered\n" {
		t.Fatalf("expected not registered error, got %+v", r)
	}
}

func TestCLI_RegisterMissingFile(t *testing.T) {
	newHome(t)
	reg := t.TempDir()

	if r := runCLI(t, "init", "-r", reg); r.code != 0 {
		t.Fatalf("init failed: %+v", r)
	}
	r := runCLI(t, "register", "x", "--fasta", filepath.Join(reg, "x.fasta"), "-r", reg)
	if r.code != 1 || !strings.HasPrefix(r.stderr, "Error: ") || !strings.Contains(r.stderr, "x.fasta") {
		t.Fatalf("expected file-not-found error, got %+v", r)
	}
}

func TestCLI_ListWithoutRegistry(t *testing.T) {
	newHome(t)
	r := runCLI(t, "list", "-r", t.TempDir())
	if r.code != 1 || !strings.Contains(r.stderr, "refman init") {
		t.Fatalf("expected missing registry error, got %+v", r)
	}
}

func TestCLI_RegistryAndGlobalConflict(t *testing.T) {
	newHome(t)
	r := runCLI(t, "list", "-r", t.TempDir(), "--global")
	if r.code != 1 {
		t.Fatalf("expected failure, got %+v", r)
	}
}

func TestCLI_GlobalRegistryLivesInHome(t *testing.T) {
	home := newHome(t)
	if r := runCLI(t, "init", "--global"); r.code != 0 {
		t.Fatalf("init failed: %+v", r)
	}
	if _, err := os.Stat(filepath.Join(home, "refman.yaml")); err != nil {
		t.Fatalf("expected global manifest in home: %v", err)
	}
}

func TestCLI_MetricsFile(t *testing.T) {
	newHome(t)
	reg := t.TempDir()
	metrics := filepath.Join(t.TempDir(), "refman.prom")

	if r := runCLI(t, "init", "-r", reg, "--metrics-file", metrics); r.code != 0 {
		t.Fatalf("init failed: %+v", r)
	}
	b, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("expected metrics file: %v", err)
	}
	if !strings.Contains(string(b), `refman_task_runs_total{outcome="ok"}`) {
		t.Fatalf("expected run counter, got:\n%s", b)
	}
}

func TestCLI_Version(t *testing.T) {
	r := runCLI(t, "version")
	if r.code != 0 || !strings.HasPrefix(r.stdout, "refman ") {
		t.Fatalf("unexpected version output: %+v", r)
	}
}

func sampleView() registryView {
	p := domain.NewProject("refs", "test registry", false)
	p.UpdatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ds := domain.Dataset{Label: "ecoli", Files: domain.FileSet{
		domain.KindFasta: "https://host/ecoli.fasta",
		domain.KindBED:   "ecoli.bed",
	}}
	return newRegistryView(p, []domain.Dataset{ds})
}

func TestPrintRegistry_Formats(t *testing.T) {
	v := sampleView()

	var buf bytes.Buffer
	if err := printRegistry(&buf, v, "yaml"); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var back registryView
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("yaml output invalid: %v", err)
	}
	if back.LastModified != "2024-05-01T12:00:00Z" || back.Datasets[0].BED != "ecoli.bed" {
		t.Fatalf("unexpected yaml view: %+v", back)
	}

	buf.Reset()
	if err := printRegistry(&buf, v, "pretty"); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Registry: refs", "ecoli", "https://host/ecoli.fasta", "bed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in pretty output:\n%s", want, out)
		}
	}

	if err := printRegistry(&buf, v, "xml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestPrintRegistry_EmptyPretty(t *testing.T) {
	var buf bytes.Buffer
	v := newRegistryView(domain.NewProject("", "", false), nil)
	if err := printRegistry(&buf, v, ""); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "(untitled)") || !strings.Contains(buf.String(), "no datasets registered") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestDatasetViewSlots_Order(t *testing.T) {
	v := sampleView()
	slots := v.Datasets[0].slots()
	if len(slots) != 2 || slots[0][0] != "fasta" || slots[1][0] != "bed" {
		t.Fatalf("unexpected slots: %v", slots)
	}
}
