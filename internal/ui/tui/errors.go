package tui

import (
	"strings"

	"github.com/nrminor/py-refman/internal/hosterr"
)

const maxToast = 120

// userMessage renders an error for the status line. Host errors already carry a
// readable message; anything else is logged in full and summarized.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if he, ok := hosterr.AsHost(err); ok {
		msg := strings.TrimSpace(he.Message)
		if i := strings.IndexByte(msg, '\n'); i >= 0 {
			msg = msg[:i]
		}
		return clampString(msg, maxToast)
	}
	return "Unexpected error (see logs)"
}
