package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTree creates files below root. Keys are slash-separated relative paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

const unsortedManifest = `[package]
name = "demo"
version = "0.1.0"

[dependencies]
serde = { version = "1", features = ["derive"] }
anyhow = "1.0"
tokio = "1"

[dev-dependencies]
tempfile = "3"
criterion = "0.5"
`

const sortedManifest = `[package]
name = "demo"
version = "0.1.0"

[dependencies]
anyhow = "1.0"
serde = { version = "1", features = ["derive"] }
tokio = "1"

[dev-dependencies]
criterion = "0.5"
tempfile = "3"
`
