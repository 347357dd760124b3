package progress

import (
	"context"
	"log/slog"
	"time"
)

// LogRenderer reports each indicator once, when it finishes. It is
// meant for output that is not a terminal.
type LogRenderer struct {
	Logger   *slog.Logger
	Interval time.Duration
}

func (r LogRenderer) Render(ctx context.Context, c *Coordinator) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := r.Interval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	reported := make(map[int]bool)
	for {
		snaps := c.Snapshot()
		for _, s := range snaps {
			if !s.Finished || reported[s.ID] {
				continue
			}
			reported[s.ID] = true
			if s.Kind == KindSpinner {
				logger.Debug("finished",
					"indicator", s.Prefix,
					"elapsed", s.Elapsed.Round(time.Millisecond),
				)
				continue
			}
			logger.Info("finished",
				"indicator", s.Prefix,
				"pos", s.Pos,
				"len", s.Total,
				"elapsed", s.Elapsed.Round(time.Millisecond),
			)
		}
		if allFinished(snaps) {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-c.Changed():
		case <-ticker.C:
		}
	}
}
