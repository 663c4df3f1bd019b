package cli

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/matzehuels/cargo-abc/pkg/errors"
	"github.com/matzehuels/cargo-abc/pkg/manifest"
)

// runSort sorts every manifest below cfg.Path and prints one line per
// manifest plus a summary.
func (c *CLI) runSort(ctx context.Context, cfg *config) error {
	restore := c.installHooks(ctx)
	defer restore()

	opts := manifest.Options{
		Tables:   cfg.Tables,
		Exclude:  cfg.Exclude,
		DryRun:   cfg.DryRun || cfg.Check,
		FailFast: cfg.FailFast,
		OnResult: func(res *manifest.Result) { c.printResult(cfg, res) },
	}

	report, err := manifest.Run(ctx, cfg.Path, opts)
	if stderrors.Is(err, context.Canceled) {
		return err
	}
	if report == nil {
		return c.fail(err)
	}

	changed := report.Changed()
	failed := report.Failed()
	if len(report.Results) > 0 {
		printStats(c.Out, len(report.Results), len(changed), len(failed))
	}

	switch {
	case len(failed) > 0:
		printError(c.Err, "%d of %s failed", len(failed), plural(len(report.Results), "manifest"))
		return &ExitError{Code: 1, Err: failed[0].Err}
	case err != nil:
		return c.fail(err)
	case cfg.Check && len(changed) > 0:
		return c.fail(errors.New(errors.ErrCodeUnsorted, "%s not sorted", plural(len(changed), "manifest")))
	case cfg.Check:
		printSuccess(c.Out, "Dependencies are sorted.")
	default:
		printSuccess(c.Out, "Dependencies sorted successfully.")
		if cfg.DryRun && len(changed) > 0 {
			printDetail(c.Out, "dry run: no files were written")
		}
	}
	return nil
}

// printResult reports the outcome for one manifest. Manifests that were
// already sorted are only logged.
func (c *CLI) printResult(cfg *config, res *manifest.Result) {
	switch {
	case res.Err != nil:
		printError(c.Err, "%s", errors.UserMessage(res.Err))
		return
	case !res.Changed:
		c.Logger.Debug("already sorted", "path", res.Path)
		return
	case cfg.Check:
		printWarning(c.Out, "%s is not sorted", label(res))
	case cfg.DryRun:
		printInfo(c.Out, "would sort %s", label(res))
	default:
		printInfo(c.Out, "sorted %s", label(res))
	}
	if cfg.Diff {
		printDiff(c.Out, manifest.Diff(res.Path, res.Before, res.After))
	}
}

// label names a manifest by path, crate and the tables that moved, e.g.
// "crates/core/Cargo.toml (core) [dependencies]".
func label(res *manifest.Result) string {
	s := res.Path
	if res.Package != "" {
		s += " (" + res.Package + ")"
	}
	return s + " [" + strings.Join(res.Tables, ", ") + "]"
}
