package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// heartbeat is how often a long edit distance search reports that it is
// still running.
const heartbeat = 10 * time.Second

// searchLogger reports edit distance search progress. It logs the first
// solution, every improvement, and a periodic heartbeat.
//
// Not safe for concurrent use; batch runs leave progress reporting off.
type searchLogger struct {
	logger                   *log.Logger
	timeout                  time.Duration
	lastExplored, lastPruned int
	lastBest                 int
	start, lastLog           time.Time
}

func newSearchLogger(ctx context.Context, timeout time.Duration) *searchLogger {
	return &searchLogger{
		logger:   loggerFromContext(ctx),
		timeout:  timeout,
		lastBest: -1,
		start:    time.Now(),
	}
}

// onProgress is passed as the search's progress callback.
func (s *searchLogger) onProgress(explored, pruned, best int) {
	s.lastExplored, s.lastPruned = explored, pruned
	if best < 0 {
		return
	}

	switch {
	case s.lastBest < 0:
		s.logger.Debugf("Initial: edit cost %d (explored: %d, pruned: %d)", best, explored, pruned)
		s.lastLog = time.Now()
	case best < s.lastBest:
		s.logger.Debugf("Improved: edit cost %d (↓%d)", best, s.lastBest-best)
		s.lastLog = time.Now()
	default:
		if time.Since(s.lastLog) >= heartbeat {
			elapsed := time.Since(s.start).Truncate(time.Second)
			if s.timeout > 0 {
				s.logger.Infof("Searching... %v/%v elapsed, edit cost %d (pruned: %d)", elapsed, s.timeout, best, pruned)
			} else {
				s.logger.Infof("Searching... %v elapsed, edit cost %d (pruned: %d)", elapsed, best, pruned)
			}
			s.lastLog = time.Now()
		}
	}
	s.lastBest = best
}

