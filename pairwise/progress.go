package pairwise

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// progressLogInterval throttles debug progress lines on large builds.
const progressLogInterval = 2 * time.Second

type progress struct {
	fn     ProgressFunc
	logger *slog.Logger
	total  int
	every  rate.Sometimes
}

func newProgress(opts Options, total int) *progress {
	return &progress{
		fn:     opts.Progress,
		logger: opts.Logger,
		total:  total,
		every:  rate.Sometimes{First: 1, Interval: progressLogInterval},
	}
}

// step returns how many outer rows pass between two reports (2% of total).
func (p *progress) step() int {
	return max(1, int(0.02*float64(p.total)))
}

func (p *progress) report(done int) {
	if p.fn != nil {
		p.fn(done, p.total)
	}
	if done == p.total {
		p.logger.Debug("matrix build progress", "done", done, "total", p.total)
		return
	}
	p.every.Do(func() {
		p.logger.Debug("matrix build progress", "done", done, "total", p.total)
	})
}
