package extract

import (
	"log/slog"

	"github.com/tqbf/assetx/pkg/paths"
	"github.com/tqbf/assetx/pkg/progress"
)

type Option func(*Extractor)

// WithProgress reports manifest and object counts to c. Without it
// the extractor uses a private coordinator nobody draws.
func WithProgress(c *progress.Coordinator) Option {
	return func(x *Extractor) {
		if c != nil {
			x.progress = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(x *Extractor) {
		if l != nil {
			x.log = l
		}
	}
}

// WithExcludes skips objects whose logical path matches any pattern.
func WithExcludes(patterns []string) Option {
	return func(x *Extractor) {
		x.excludes = paths.NewMatcher(patterns)
	}
}

// WithUnsafePaths lets logical paths resolve outside their package
// directory, e.g. "../shared/x". Off by default.
func WithUnsafePaths(allow bool) Option {
	return func(x *Extractor) {
		x.unsafePaths = allow
	}
}
