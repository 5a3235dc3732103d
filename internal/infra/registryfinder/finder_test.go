package registryfinder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nrminor/py-refman/internal/domain"
)

func TestFindRoot_FindsRegistryFromNestedDir(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "project")
	nested := filepath.Join(root, "data", "raw", "2024")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "refman.yaml"), []byte("datasets: []\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	got, err := NewFinder().FindRoot(nested)
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root=%s, got=%s", root, got)
	}
}

func TestFindRoot_StartsFromFileDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "refman.yaml"), nil, 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	file := filepath.Join(root, "notes.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := NewFinder().FindRoot(file)
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root=%s, got=%s", root, got)
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	tmp := t.TempDir()
	_ = os.MkdirAll(filepath.Join(tmp, "a", "b"), 0o755)

	_, err := NewFinder().FindRoot(filepath.Join(tmp, "a", "b"))
	if !errors.Is(err, &domain.RegistryError{Kind: domain.RegistryNotFound}) {
		t.Fatalf("expected not_found, got: %v", err)
	}
}

func TestFindRoot_EmptyStart(t *testing.T) {
	_, err := NewFinder().FindRoot("")
	if !errors.Is(err, &domain.RegistryError{Kind: domain.RegistryInvalidOptions}) {
		t.Fatalf("expected invalid_options, got: %v", err)
	}
}
