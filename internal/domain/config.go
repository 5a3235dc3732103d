package domain

// Location selects which registry an operation targets.
type Location struct {
	// RequestedPath is a registry directory or manifest file (optional).
	RequestedPath string
	// Global selects the per-user registry instead of the project one.
	Global bool
}

// RegistrySpec describes a registry to lay out on disk.
type RegistrySpec struct {
	Root   string
	Global bool
}

// Layout names the files and directories that make up a registry.
type Layout struct {
	ManifestFile string
	StateDir     string
	LogsDir      string
	HomeEnv      string
}

// DefaultLayout provides the standard registry layout.
func DefaultLayout() Layout {
	return Layout{
		ManifestFile: "refman.yaml",
		StateDir:     ".refman",
		LogsDir:      ".refman/logs",
		HomeEnv:      "REFMAN_HOME",
	}
}
