package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nrminor/py-refman/internal/domain"
)

func TestDownload_RemoteAndLocal(t *testing.T) {
	src := t.TempDir()
	local := filepath.Join(src, "regions.bed")
	if err := os.WriteFile(local, []byte("chr1\t0\t10\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	dest := filepath.Join(t.TempDir(), "out")

	f := &fakeFetcher{}
	obs := &recordingObserver{}
	d := NewDownloader(f, WithObserver(obs), WithConcurrency(2))

	ds := domain.Dataset{Label: "sars", Files: domain.FileSet{
		domain.KindFasta: "https://example.org/ref.fasta",
		domain.KindBED:   local,
	}}
	paths, err := d.Download(context.Background(), ds, dest)
	if err != nil {
		t.Fatalf("Download error: %v", err)
	}

	want := []string{filepath.Join(dest, "ref.fasta"), filepath.Join(dest, "regions.bed")}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	b, err := os.ReadFile(want[1])
	if err != nil || string(b) != "chr1\t0\t10\n" {
		t.Fatalf("expected local file copied, got %q (err=%v)", b, err)
	}
	if obs.ok["fasta"] != 4 || obs.ok["bed"] != int64(len("chr1\t0\t10\n")) {
		t.Fatalf("unexpected observed bytes %v", obs.ok)
	}
}

func TestDownload_EmptyDataset(t *testing.T) {
	_, err := NewDownloader(&fakeFetcher{}).Download(context.Background(), domain.Dataset{Label: "none"}, t.TempDir())
	if !errors.Is(err, &domain.DownloadError{Kind: domain.DownloadNoRemoteFiles}) {
		t.Fatalf("expected no_remote_files, got %v", err)
	}
}

func TestDownload_FirstFailureCancelsSiblings(t *testing.T) {
	bad := "https://example.org/bad.gbk"
	f := &fakeFetcher{
		block: true,
		fail:  map[string]error{bad: &domain.DownloadError{Kind: domain.DownloadStatus, URL: bad, StatusCode: 500}},
	}
	obs := &recordingObserver{}
	d := NewDownloader(f, WithObserver(obs), WithConcurrency(4))

	ds := domain.Dataset{Label: "flu", Files: domain.FileSet{
		domain.KindFasta:   "https://example.org/slow.fasta",
		domain.KindGenbank: bad,
	}}
	_, err := d.Download(context.Background(), ds, t.TempDir())

	var de *domain.DownloadError
	if !errors.As(err, &de) || de.Kind != domain.DownloadStatus {
		t.Fatalf("expected the status error, got %v", err)
	}
	if de.Label != "flu" {
		t.Fatalf("expected label attached, got %q", de.Label)
	}
	if len(obs.failed) != 2 {
		t.Fatalf("expected both transfers reported failed, got %v", obs.failed)
	}
}

func TestDownload_LocalFileAlreadyInDest(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "ref.fasta")
	if err := os.WriteFile(local, []byte(">x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	paths, err := NewDownloader(nil).Download(context.Background(), domain.Dataset{
		Label: "x",
		Files: domain.FileSet{domain.KindFasta: local},
	}, dir)
	if err != nil {
		t.Fatalf("Download error: %v", err)
	}
	if paths[0] != local {
		t.Fatalf("expected %s, got %s", local, paths[0])
	}
}
