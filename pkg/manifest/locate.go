package manifest

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/cargo-abc/pkg/errors"
	"github.com/matzehuels/cargo-abc/pkg/observability"
)

// DefaultFilename is the manifest file name searched for.
const DefaultFilename = "Cargo.toml"

// LocateOptions configures [Locate].
type LocateOptions struct {
	// Filename is the manifest base name. Defaults to DefaultFilename.
	Filename string

	// Exclude holds doublestar patterns matched against directory paths
	// relative to the root, using forward slashes (e.g. "**/target").
	// Matching directories are not descended into.
	Exclude []string

	// OnError is called for every path that could not be read. The path is
	// skipped and the walk continues.
	OnError func(path string, err error)
}

// Locate returns every regular file named opts.Filename at any depth below
// root, in walk order. root must be an existing directory; see
// [errors.ValidateRoot]. Unreadable subtrees are reported through
// opts.OnError and skipped. Finding nothing is not an error.
func Locate(ctx context.Context, root string, opts LocateOptions) ([]string, error) {
	name := opts.Filename
	if name == "" {
		name = DefaultFilename
	}
	if err := errors.ValidateManifestFilename(name); err != nil {
		return nil, err
	}
	for _, pat := range opts.Exclude {
		if !doublestar.ValidatePattern(pat) {
			return nil, errors.New(errors.ErrCodeInvalidPattern, "invalid exclude pattern %q", pat)
		}
	}
	pattern := "**/" + name

	start := time.Now()
	observability.Scan().OnScanStart(ctx, root)

	var found []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			observability.Scan().OnScanSkip(ctx, path, err)
			if opts.OnError != nil {
				opts.OnError(path, err)
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil //nolint:nilerr // paths outside root cannot match
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && matchesAny(opts.Exclude, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if ok, _ := doublestar.Match(pattern, rel); ok {
			found = append(found, path)
		}
		return nil
	})

	if walkErr != nil {
		err := errors.Wrap(errors.ErrCodeWalkFailed, walkErr, "scan %s", root)
		observability.Scan().OnScanComplete(ctx, root, len(found), time.Since(start), err)
		return nil, err
	}
	observability.Scan().OnScanComplete(ctx, root, len(found), time.Since(start), nil)
	return found, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if matched, matchErr := doublestar.Match(pat, rel); matchErr == nil && matched {
			return true
		}
	}
	return false
}
