package testutil

import (
	"regexp"
	"strings"
	"testing"
)

// AssertSubsequence checks that every byte of original appears in updated in
// the same order, which holds exactly when updated was produced by insertions
func AssertSubsequence(t *testing.T, original, updated string) {
	t.Helper()

	j := 0
	for i := 0; i < len(original); i++ {
		for j < len(updated) && updated[j] != original[i] {
			j++
		}
		if j == len(updated) {
			t.Errorf("original content is not preserved in order: byte %d (%q) of the original was not found; context %q",
				i, original[i], context(original, i))
			return
		}
		j++
	}
}

// AssertCount checks that sub occurs exactly n times in s
func AssertCount(t *testing.T, s, sub string, n int) {
	t.Helper()

	if got := strings.Count(s, sub); got != n {
		t.Errorf("expected %d occurrences of %q, found %d", n, sub, got)
	}
}

var fileRefLine = regexp.MustCompile(`(?m)^\t\t([0-9A-F]{24}) /\* (.+?) \*/ = \{isa = PBXFileReference;`)

// FileRefID returns the identifier of the file reference annotated with name
func FileRefID(t *testing.T, doc, name string) string {
	t.Helper()

	for _, m := range fileRefLine.FindAllStringSubmatch(doc, -1) {
		if m[2] == name {
			return m[1]
		}
	}
	t.Fatalf("no file reference for %q", name)
	return ""
}

func context(s string, i int) string {
	start := i - 20
	if start < 0 {
		start = 0
	}
	end := i + 20
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
