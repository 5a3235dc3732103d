package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nrminor/py-refman/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderDatasetDetails(ds domain.Dataset, width int) string {
	var b strings.Builder

	kinds := ds.Kinds()
	if len(kinds) == 0 {
		b.WriteString("(no files)\n")
		return b.String()
	}

	for _, k := range kinds {
		loc := ds.Files[k]
		where := "local"
		if domain.IsRemote(loc) {
			where = "remote"
		}
		fmt.Fprintf(&b, "%-8s %-6s %s\n", k, where, clampString(loc, max(width-18, 10)))
	}
	return b.String()
}

func summarizeKinds(ds domain.Dataset) string {
	kinds := ds.Kinds()
	if len(kinds) == 0 {
		return "no files"
	}
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, string(k))
	}
	return strings.Join(parts, ", ")
}
