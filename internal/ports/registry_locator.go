package ports

// RegistryLocator finds a registry root starting from an arbitrary directory.
type RegistryLocator interface {
	FindRoot(startDir string) (string, error)
}
