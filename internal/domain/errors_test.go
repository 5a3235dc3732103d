package domain

import (
	"errors"
	"io/fs"
	"testing"
)

func TestEntryErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &EntryError{
		Kind: EntryUnreachableURL,
		Path: "https://example.org/ref.fasta",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *EntryError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match EntryError")
	}
	if got.Kind != EntryUnreachableURL {
		t.Fatalf("expected kind %s", EntryUnreachableURL)
	}
}

func TestEntryErrorIsMatchesKind(t *testing.T) {
	err := FileNotFound("x.fasta")

	if !errors.Is(err, &EntryError{Kind: EntryFileNotFound}) {
		t.Fatalf("expected kind template to match")
	}
	if errors.Is(err, &EntryError{Kind: EntryInvalidLabel}) {
		t.Fatalf("expected other kind not to match")
	}
}

func TestFileNotFoundRendering(t *testing.T) {
	got := FileNotFound("x.fasta").Error()
	want := `file not found: "x.fasta"`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRegistryErrorRendering(t *testing.T) {
	cases := []struct {
		err  *RegistryError
		want string
	}{
		{NotRegistered("e_coli"), `dataset "e_coli" is not registered`},
		{&RegistryError{Kind: RegistryNotFound, Path: "/tmp/refman.yaml"}, "no registry found at \"/tmp/refman.yaml\" (run `refman init` first)"},
		{&RegistryError{Kind: RegistryIO, Path: "/tmp/refman.yaml", Err: fs.ErrPermission}, "registry i/o failed (path=/tmp/refman.yaml): permission denied"},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("Error() = %q, want %q", got, c.want)
		}
	}
}

func TestDownloadErrorRendering(t *testing.T) {
	err := &DownloadError{Kind: DownloadStatus, URL: "https://example.org/a.gbk", StatusCode: 404}
	want := "server returned HTTP 404 for https://example.org/a.gbk"
	if got := err.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if !errors.Is(err, &DownloadError{Kind: DownloadStatus}) {
		t.Fatalf("expected kind template to match")
	}
}

func TestNilErrorsRender(t *testing.T) {
	var e *EntryError
	if e.Error() != "<nil>" || e.Unwrap() != nil {
		t.Fatalf("expected nil-safe EntryError")
	}
	var r *RegistryError
	if r.Error() != "<nil>" {
		t.Fatalf("expected nil-safe RegistryError")
	}
}
