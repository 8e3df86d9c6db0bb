package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Commit
	t.Cleanup(func() { Commit = old })

	Commit = "0123456789abcdef"
	if got := Template(); !strings.Contains(got, "commit 0123456,") {
		t.Errorf("Template() = %q, want short commit", got)
	}

	Commit = "abc"
	if got := Template(); !strings.Contains(got, "commit abc,") {
		t.Errorf("Template() = %q", got)
	}
}

func TestString(t *testing.T) {
	if got := String(); !strings.HasPrefix(got, "version: "+Version+"\n") {
		t.Errorf("String() = %q", got)
	}
}
