// Package manifest finds Cargo manifests and sorts their dependency tables.
//
// # Overview
//
// The package has three layers:
//
//   - [Locate] walks a directory tree and returns every Cargo.toml below it
//   - [Rewriter] sorts the dependency tables of one manifest and writes it back
//   - [Run] validates a root, locates manifests and rewrites each in turn,
//     collecting per-file outcomes in a [Report]
//
// Only the order of keys changes. Manifests are validated with a full TOML
// decoder before they are touched, and the sorted output is decoded again and
// compared with the original so that a rewrite can never change what a
// manifest means. Files are replaced atomically through a temporary file in
// the same directory.
//
// # Usage
//
//	report, err := manifest.Run(ctx, ".", manifest.Options{})
//	if err != nil {
//	    return err // invalid root or cancellation
//	}
//	for _, res := range report.Failed() {
//	    log.Printf("%s: %v", res.Path, res.Err)
//	}
package manifest
