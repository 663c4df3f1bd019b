// Package pkg holds the libraries behind cargo-abc.
//
//   - [tomldoc] parses TOML into a format-preserving document and sorts tables
//   - [manifest] finds Cargo.toml files and rewrites them in place
//   - [errors] carries the error codes shared by both
//   - [observability] exposes scan and rewrite hooks for logging
//   - [buildinfo] reports the version injected at build time
//
// A typical run:
//
//	report, err := manifest.Run(ctx, ".", manifest.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, res := range report.Failed() {
//	    fmt.Println(res.Path, res.Err)
//	}
package pkg
