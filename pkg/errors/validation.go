package errors

import (
	"os"
	"strings"
	"unicode"
)

// ValidateRoot checks that root names an existing directory.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Path must exist (INVALID_PATH otherwise)
//   - Path must be a directory (NOT_DIRECTORY otherwise)
func ValidateRoot(root string) error {
	if root == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range root {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return New(ErrCodeInvalidPath, "the path '%s' does not exist", root)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "cannot access '%s'", root)
	}
	if !info.IsDir() {
		return New(ErrCodeNotDirectory, "the path '%s' is not a directory", root)
	}
	return nil
}

// ValidateManifestFilename validates a manifest filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateManifestFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot contain path separators")
	}

	// Glob metacharacters would turn the name into a pattern
	if strings.ContainsAny(filename, "*?[]{}") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot contain glob characters")
	}

	return nil
}

// ValidateTableName validates the name of a top-level table to sort.
func ValidateTableName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "table name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "table name %q contains control characters", name)
		}
	}
	return nil
}
