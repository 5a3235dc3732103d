package registry

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nrminor/py-refman/internal/domain"
)

type memStore struct {
	mu    sync.Mutex
	files map[string]domain.Project
	saves int
}

func newMemStore() *memStore {
	return &memStore{files: map[string]domain.Project{}}
}

func (s *memStore) Load(path string) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.files[path]
	if !ok {
		return domain.Project{}, &domain.RegistryError{Kind: domain.RegistryNotFound, Path: path, Err: domain.ErrNotFound}
	}
	return p, nil
}

func (s *memStore) Save(path string, p domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.UpdatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.files[path] = p
	s.saves++
	return nil
}

type fakeLocator struct {
	root string
}

func (l fakeLocator) FindRoot(string) (string, error) {
	if l.root == "" {
		return "", &domain.RegistryError{Kind: domain.RegistryNotFound, Err: domain.ErrNotFound}
	}
	return l.root, nil
}

type fakeInitializer struct {
	specs []domain.RegistrySpec
}

func (i *fakeInitializer) Init(spec domain.RegistrySpec) error {
	i.specs = append(i.specs, spec)
	return nil
}

type fakeFetcher struct {
	mu      sync.Mutex
	fetched []string
	fail    map[string]error
	block   bool
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL, dest string) (string, int64, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, rawURL)
	err := f.fail[rawURL]
	f.mu.Unlock()

	if err != nil {
		return "", 0, err
	}
	if f.block {
		<-ctx.Done()
		return "", 0, &domain.DownloadError{Kind: domain.DownloadRequest, URL: rawURL, Err: ctx.Err()}
	}
	p := filepath.Join(dest, filepath.Base(rawURL))
	if err := os.WriteFile(p, []byte("data"), 0o644); err != nil {
		return "", 0, err
	}
	return p, 4, nil
}

type recordingObserver struct {
	mu     sync.Mutex
	ok     map[string]int64
	failed []string
}

func (o *recordingObserver) FileTransferred(kind string, n int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ok == nil {
		o.ok = map[string]int64{}
	}
	o.ok[kind] += n
}

func (o *recordingObserver) FileFailed(kind string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed = append(o.failed, kind)
}
