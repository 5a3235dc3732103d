package buildinfo

import "testing"

func TestString(t *testing.T) {
	if got := String(); got != "refman dev (commit=none, date=unknown)" {
		t.Fatalf("unexpected %q", got)
	}
	if got := UserAgent(""); got != "refman/dev" {
		t.Fatalf("unexpected %q", got)
	}
}
