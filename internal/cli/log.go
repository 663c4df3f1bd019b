package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/cargo-abc/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Found 12 manifests (4ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// =============================================================================
// Observability Hooks
// =============================================================================

// scanHooks logs the directory walk. When spinner is set it animates while
// the walk runs.
type scanHooks struct {
	logger   *log.Logger
	spinner  *Spinner
	progress *progress
}

func (h *scanHooks) OnScanStart(ctx context.Context, root string) {
	h.logger.Debug("scanning", "root", root)
	h.progress = newProgress(h.logger)
	if h.spinner != nil {
		h.spinner.Start()
	}
}

func (h *scanHooks) OnScanSkip(ctx context.Context, path string, err error) {
	h.logger.Warn("skipping unreadable path", "path", path, "err", err)
}

// OnScanComplete reports the number of manifests found: on the spinner line
// when one is running, otherwise as a log line with the elapsed time.
func (h *scanHooks) OnScanComplete(ctx context.Context, root string, found int, duration time.Duration, err error) {
	if err != nil {
		if h.spinner != nil {
			h.spinner.Stop()
		}
		h.logger.Debug("scan failed", "root", root, "err", err)
		return
	}
	msg := "Found " + plural(found, "manifest")
	if h.spinner != nil {
		h.spinner.StopWithSuccess(msg)
		return
	}
	h.progress.done(msg)
}

// rewriteHooks logs every manifest at debug level.
type rewriteHooks struct {
	logger *log.Logger
}

func (h *rewriteHooks) OnRewriteStart(ctx context.Context, path string) {
	h.logger.Debug("sorting", "path", path)
}

func (h *rewriteHooks) OnRewriteComplete(ctx context.Context, path string, changed bool, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("sort failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("sorted", "path", path, "changed", changed, "took", duration.Round(time.Microsecond))
}

// installHooks registers logging hooks for one run and returns a function
// restoring the defaults.
func (c *CLI) installHooks(ctx context.Context) func() {
	scan := &scanHooks{logger: c.Logger}
	if isTerminal(c.Err) {
		scan.spinner = newSpinnerWithContext(ctx, c.Err, "Searching for Cargo.toml files...")
	}
	observability.SetScanHooks(scan)
	observability.SetRewriteHooks(&rewriteHooks{logger: c.Logger})
	return observability.Reset
}
