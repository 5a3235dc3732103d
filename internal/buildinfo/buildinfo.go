// Package buildinfo carries version metadata set at link time with -ldflags -X.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("refman %s (commit=%s, date=%s)", Version, Commit, Date)
}

// UserAgent identifies refman to remote hosts.
func UserAgent(base string) string {
	if base == "" {
		base = "refman"
	}
	return base + "/" + Version
}
