package ports

import "context"

// SourceProber checks that a remote file location answers.
type SourceProber interface {
	Probe(ctx context.Context, rawURL string) error
}

// FileFetcher downloads a remote file into destDir and reports the written path and size.
type FileFetcher interface {
	Fetch(ctx context.Context, rawURL string, destDir string) (path string, n int64, err error)
}

// TransferObserver is notified about finished file transfers.
type TransferObserver interface {
	FileTransferred(kind string, bytes int64)
	FileFailed(kind string)
}
