package extract

import (
	"errors"
	"fmt"

	"github.com/tqbf/assetx/pkg/progress"
)

const spinnerPrefix = "Extracting"

// Extract performs a whole run: it starts r on its own goroutine,
// locates the root among roots, materializes every index and waits
// for r to finish drawing. A renderer that panics surfaces as a
// *progress.PanicError. If extraction fails, r is aborted and the
// extraction error is returned, joined with a renderer panic if there
// was one.
func Extract(
	roots []string,
	r progress.Renderer,
	opts ...Option,
) (Summary, error) {
	c := progress.New()
	spinner := c.AddSpinner(spinnerPrefix)
	task := progress.Start(c, r)

	sum, err := extractRoot(roots, c, opts)
	if err != nil {
		task.Abort()
		var panicErr *progress.PanicError
		if jerr := task.Join(); errors.As(jerr, &panicErr) {
			return sum, errors.Join(err, jerr)
		}
		return sum, err
	}

	spinner.FinishAndClear()
	if err := task.Join(); err != nil {
		return sum, fmt.Errorf("progress display: %w", err)
	}
	return sum, nil
}

func extractRoot(
	roots []string,
	c *progress.Coordinator,
	opts []Option,
) (Summary, error) {
	root, err := LocateRoot(roots...)
	if err != nil {
		return Summary{}, err
	}
	x := New(root, append(opts[:len(opts):len(opts)], WithProgress(c))...)
	x.log.Debug("extracting", "root", root)
	return x.Run()
}
