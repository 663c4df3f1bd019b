package manifest

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/cargo-abc/pkg/errors"
)

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	var out []string
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	slices.Sort(out)
	return out
}

func TestLocateDepths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Cargo.toml":                 "",
		"crates/a/Cargo.toml":        "",
		"crates/b/nested/Cargo.toml": "",
		"x/y/z/Cargo.toml":           "",
		"x/Cargo.toml.bak":           "",
		"docs/README.md":             "",
	})

	got, err := Locate(context.Background(), root, LocateOptions{})
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	want := []string{"Cargo.toml", "crates/a/Cargo.toml", "crates/b/nested/Cargo.toml", "x/y/z/Cargo.toml"}
	if diff := cmp.Diff(want, relPaths(t, root, got)); diff != "" {
		t.Errorf("Locate() mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateEmpty(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"src/main.rs": ""})

	got, err := Locate(context.Background(), root, LocateOptions{})
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Locate() = %v, want none", got)
	}
}

func TestLocateExclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Cargo.toml":                   "",
		"target/package/x/Cargo.toml":  "",
		"crates/a/target/y/Cargo.toml": "",
		"vendor/dep/Cargo.toml":        "",
		"crates/a/Cargo.toml":          "",
	})

	got, err := Locate(context.Background(), root, LocateOptions{
		Exclude: []string{"**/target", "vendor"},
	})
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	want := []string{"Cargo.toml", "crates/a/Cargo.toml"}
	if diff := cmp.Diff(want, relPaths(t, root, got)); diff != "" {
		t.Errorf("Locate() mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateCustomFilename(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Cargo.toml":        "",
		"py/pyproject.toml": "",
	})

	got, err := Locate(context.Background(), root, LocateOptions{Filename: "pyproject.toml"})
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if diff := cmp.Diff([]string{"py/pyproject.toml"}, relPaths(t, root, got)); diff != "" {
		t.Errorf("Locate() mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateInvalidOptions(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name     string
		opts     LocateOptions
		wantCode errors.Code
	}{
		{"bad pattern", LocateOptions{Exclude: []string{"[unclosed"}}, errors.ErrCodeInvalidPattern},
		{"path filename", LocateOptions{Filename: "a/Cargo.toml"}, errors.ErrCodeInvalidManifest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Locate(context.Background(), root, tt.opts)
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("Locate() code = %v, want %v (%v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestLocateSkipsUnreadable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Cargo.toml":        "",
		"locked/Cargo.toml": "",
		"open/Cargo.toml":   "",
	})
	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	var skipped []string
	got, err := Locate(context.Background(), root, LocateOptions{
		OnError: func(path string, err error) { skipped = append(skipped, path) },
	})
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if diff := cmp.Diff([]string{"Cargo.toml", "open/Cargo.toml"}, relPaths(t, root, got)); diff != "" {
		t.Errorf("Locate() mismatch (-want +got):\n%s", diff)
	}
	if len(skipped) != 1 || skipped[0] != locked {
		t.Errorf("skipped = %v, want [%s]", skipped, locked)
	}
}

func TestLocateSkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"real/Cargo.toml": ""})
	if err := os.Symlink(filepath.Join(root, "real", "Cargo.toml"), filepath.Join(root, "Cargo.toml")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := Locate(context.Background(), root, LocateOptions{})
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if diff := cmp.Diff([]string{"real/Cargo.toml"}, relPaths(t, root, got)); diff != "" {
		t.Errorf("Locate() mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateCanceled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"Cargo.toml": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Locate(ctx, root, LocateOptions{})
	if !errors.Is(err, errors.ErrCodeWalkFailed) {
		t.Fatalf("Locate() error = %v, want WALK_FAILED", err)
	}
}
