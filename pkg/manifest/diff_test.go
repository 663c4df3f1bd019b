package manifest

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiff(t *testing.T) {
	got := Diff("Cargo.toml", []byte(unsortedManifest), []byte(sortedManifest))

	if !strings.HasPrefix(got, "--- a/Cargo.toml\n+++ b/Cargo.toml\n@@ ") {
		t.Fatalf("Diff() header = %q", got)
	}
	for _, want := range []string{"\n [dependencies]\n", "\n [dev-dependencies]\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("Diff() missing %q:\n%s", want, got)
		}
	}
	if !strings.Contains(got, "\n-") || strings.Count(got, "\n+") < 2 {
		t.Errorf("Diff() has no changed lines:\n%s", got)
	}
	if strings.Contains(got, "name = \"demo\"") {
		t.Errorf("Diff() includes lines far from any change:\n%s", got)
	}
}

func TestDiffEqual(t *testing.T) {
	if got := Diff("Cargo.toml", []byte(sortedManifest), []byte(sortedManifest)); got != "" {
		t.Errorf("Diff() = %q, want empty", got)
	}
}

func TestDiffSingleHunk(t *testing.T) {
	before := "[dependencies]\nb = \"1\"\na = \"1\"\n"
	after := "[dependencies]\na = \"1\"\nb = \"1\"\n"

	got := Diff("Cargo.toml", []byte(before), []byte(after))
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) < 3 || !strings.HasPrefix(lines[2], "@@ -1,") {
		t.Fatalf("Diff() = %q", got)
	}

	// Applying the hunk lines reproduces both sides.
	var oldSide, newSide []string
	for _, l := range lines[3:] {
		switch l[0] {
		case ' ':
			oldSide = append(oldSide, l[1:])
			newSide = append(newSide, l[1:])
		case '-':
			oldSide = append(oldSide, l[1:])
		case '+':
			newSide = append(newSide, l[1:])
		}
	}
	if diff := cmp.Diff(strings.Split(strings.TrimSuffix(before, "\n"), "\n"), oldSide); diff != "" {
		t.Errorf("old side mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(strings.Split(strings.TrimSuffix(after, "\n"), "\n"), newSide); diff != "" {
		t.Errorf("new side mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a\n", []string{"a"}},
		{"a\r\nb", []string{"a", "b"}},
		{"a\n\nb\n", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, splitLines(tt.in)); diff != "" {
			t.Errorf("splitLines(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
