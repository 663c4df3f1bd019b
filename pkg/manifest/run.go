package manifest

import (
	"context"

	"github.com/matzehuels/cargo-abc/pkg/errors"
)

// Options configures [Run].
type Options struct {
	// Tables lists the top-level tables to sort. Defaults to DefaultTables.
	Tables []string

	// Filename is the manifest base name. Defaults to DefaultFilename.
	Filename string

	// Exclude holds doublestar patterns of directories to skip.
	Exclude []string

	// DryRun computes results without writing any file.
	DryRun bool

	// FailFast stops at the first manifest that cannot be processed.
	// By default the run continues and failures are collected.
	FailFast bool

	// OnSkip is called for paths the walk could not read.
	OnSkip func(path string, err error)

	// OnResult is called after every manifest, in processing order.
	OnResult func(*Result)
}

// Report collects the per-manifest outcomes of a run.
type Report struct {
	Root    string
	Results []*Result
}

// Changed returns the results whose content was (or, in a dry run, would
// be) reordered.
func (r *Report) Changed() []*Result {
	var out []*Result
	for _, res := range r.Results {
		if res.Err == nil && res.Changed {
			out = append(out, res)
		}
	}
	return out
}

// Failed returns the results that ended in an error.
func (r *Report) Failed() []*Result {
	var out []*Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Run validates root, locates every manifest below it and rewrites them one
// after another in the order they were found.
//
// The returned error is reserved for conditions that stop the whole run: an
// invalid root or options, a failed walk, cancellation of ctx, or the first
// manifest failure when opts.FailFast is set. Otherwise failures are recorded
// on the matching [Result] and the run carries on, so one bad manifest never
// blocks the others. The report is non-nil whenever the walk completed.
func Run(ctx context.Context, root string, opts Options) (*Report, error) {
	if err := errors.ValidateRoot(root); err != nil {
		return nil, err
	}
	for _, name := range opts.Tables {
		if err := errors.ValidateTableName(name); err != nil {
			return nil, err
		}
	}

	paths, err := Locate(ctx, root, LocateOptions{
		Filename: opts.Filename,
		Exclude:  opts.Exclude,
		OnError:  opts.OnSkip,
	})
	if err != nil {
		return nil, err
	}

	rw := &Rewriter{Tables: opts.Tables, DryRun: opts.DryRun}
	report := &Report{Root: root}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res, err := rw.Rewrite(ctx, path)
		if err != nil {
			res = &Result{Path: path, Err: err}
		}
		report.Results = append(report.Results, res)
		if opts.OnResult != nil {
			opts.OnResult(res)
		}
		if err != nil && opts.FailFast {
			return report, err
		}
	}
	return report, nil
}
