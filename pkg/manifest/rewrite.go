package manifest

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cargo-abc/pkg/errors"
	"github.com/matzehuels/cargo-abc/pkg/observability"
	"github.com/matzehuels/cargo-abc/pkg/tomldoc"
)

// DefaultTables returns the tables sorted when none are configured.
func DefaultTables() []string {
	return []string{"dependencies", "dev-dependencies"}
}

// Result is the outcome of processing one manifest.
type Result struct {
	Path    string
	Package string   // [package] name; empty for virtual manifests
	Changed bool     // the sorted content differs from the file
	Tables  []string // tables whose order changed
	Before  []byte
	After   []byte
	Err     error
}

// Rewriter sorts the dependency tables of a manifest in place.
// The zero value sorts DefaultTables and writes changes.
type Rewriter struct {
	// Tables lists the top-level tables to sort.
	Tables []string

	// DryRun computes the result without writing the file.
	DryRun bool
}

// Rewrite sorts the configured tables of the manifest at path. Files that are
// already sorted are not written. The returned error carries one of the
// READ_FAILED, INVALID_ENCODING, INVALID_MANIFEST, WRITE_FAILED or
// INTERNAL_ERROR codes; on error the file is left as it was.
func (r *Rewriter) Rewrite(ctx context.Context, path string) (*Result, error) {
	start := time.Now()
	observability.Rewrite().OnRewriteStart(ctx, path)

	res, err := r.rewrite(path)

	changed := res != nil && res.Changed
	observability.Rewrite().OnRewriteComplete(ctx, path, changed, time.Since(start), err)
	return res, err
}

func (r *Rewriter) rewrite(path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReadFailed, err, "read %s", path)
	}
	if !utf8.Valid(src) {
		return nil, errors.New(errors.ErrCodeInvalidEncoding, "%s is not valid UTF-8", path)
	}

	want, err := decode(path, src)
	if err != nil {
		return nil, err
	}
	doc, err := tomldoc.Parse(src)
	if err != nil {
		return nil, invalidManifest(path, err)
	}

	res := &Result{Path: path, Package: packageName(want), Before: src}
	for _, name := range r.tables() {
		if t, ok := doc.Table(name); ok && t.Sort() {
			res.Tables = append(res.Tables, name)
		}
	}
	res.After = doc.Bytes()
	res.Changed = !bytes.Equal(src, res.After)
	if !res.Changed {
		return res, nil
	}

	got, err := decode(path, res.After)
	if err != nil || !reflect.DeepEqual(want, got) {
		return nil, errors.New(errors.ErrCodeInternal, "sorting %s would change its content; file left untouched", path)
	}

	if r.DryRun {
		return res, nil
	}
	if err := writeFileAtomic(path, res.After); err != nil {
		return nil, errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
	}
	return res, nil
}

func (r *Rewriter) tables() []string {
	if len(r.Tables) == 0 {
		return DefaultTables()
	}
	return r.Tables
}

// decode validates src as TOML and returns its generic representation.
func decode(path string, src []byte) (map[string]any, error) {
	var v map[string]any
	if _, err := toml.Decode(string(src), &v); err != nil {
		return nil, invalidManifest(path, err)
	}
	return v, nil
}

// packageName returns the crate name declared under [package].
func packageName(v map[string]any) string {
	pkg, _ := v["package"].(map[string]any)
	name, _ := pkg["name"].(string)
	return name
}

func invalidManifest(path string, err error) error {
	me := &errors.ManifestError{Path: path, Err: err}

	var perr toml.ParseError
	var serr *tomldoc.SyntaxError
	switch {
	case stderrors.As(err, &perr):
		me.Line = perr.Position.Line
		me.Err = stderrors.New(perr.Message)
	case stderrors.As(err, &serr):
		me.Line, me.Col = serr.Line, serr.Col
		me.Err = stderrors.New(serr.Msg)
	}
	return errors.Wrap(errors.ErrCodeInvalidManifest, me, "invalid TOML")
}

// writeFileAtomic replaces path with data through a temporary file in the
// same directory, keeping the original permissions. A failure at any step
// leaves the original untouched.
func writeFileAtomic(path string, data []byte) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			// Best-effort removal of partially written temp file.
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := func() (err error) {
		defer func() {
			if closeErr := tmp.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		if _, err := tmp.Write(data); err != nil {
			return err
		}
		if err := tmp.Chmod(info.Mode().Perm()); err != nil {
			return err
		}
		return tmp.Sync()
	}(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
