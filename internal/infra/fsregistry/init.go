// Package fsregistry lays out the on-disk state directory of a registry.
package fsregistry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/ports"
)

type Initializer struct {
	layout domain.Layout
}

func NewInitializer() *Initializer {
	return &Initializer{layout: domain.DefaultLayout()}
}

var _ ports.RegistryInitializer = (*Initializer)(nil)

// Init creates the state and log directories under spec.Root. Project registries also
// get their .gitignore entries; the global one lives outside any repository.
func (i *Initializer) Init(spec domain.RegistrySpec) error {
	root := filepath.Clean(spec.Root)

	for _, d := range []string{
		filepath.Join(root, filepath.FromSlash(i.layout.StateDir)),
		filepath.Join(root, filepath.FromSlash(i.layout.LogsDir)),
	} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return &domain.RegistryError{Kind: domain.RegistryIO, Path: d, Err: err}
		}
	}

	if spec.Global {
		return nil
	}
	if err := ensureGitignore(root, i.layout.StateDir+"/"); err != nil {
		return &domain.RegistryError{Kind: domain.RegistryIO, Path: filepath.Join(root, ".gitignore"), Err: err}
	}
	return nil
}

func ensureGitignore(root string, stateDir string) error {
	const header = "# refman"
	entries := []string{
		stateDir,
		"*.part",
		"*.tmp",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			present[trimmed] = true
		}
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	if !present[header] {
		out.WriteString("\n" + header + "\n")
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
