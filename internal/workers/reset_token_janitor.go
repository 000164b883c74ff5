package workers

import (
	"context"
	"time"

	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/internal/store"
)

// resetTokenJanitor periodically clears expired password-reset tokens.
// Expired tokens are already rejected on lookup, so the purge is pure
// hygiene: it keeps dead digests from accumulating in the users table.
type resetTokenJanitor struct {
	users    store.UserRepository
	interval time.Duration
	logger   *logger.Logger
	done     chan struct{}
}

// NewResetTokenJanitor returns a worker that purges expired reset tokens
// every interval.
func NewResetTokenJanitor(users store.UserRepository, interval time.Duration, logger *logger.Logger) *resetTokenJanitor {
	return &resetTokenJanitor{
		users:    users,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Run blocks, purging on every tick until Stop is called.
func (j *resetTokenJanitor) Run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.purge()
		}
	}
}

// Stop terminates the Run loop.
func (j *resetTokenJanitor) Stop() {
	close(j.done)
}

func (j *resetTokenJanitor) purge() {
	purged, err := j.users.PurgeExpiredResetTokens(j.logger.WithContext(context.Background()))
	if err != nil {
		j.logger.Err(err).Msg("purging expired reset tokens failed")
		return
	}

	if purged > 0 {
		j.logger.Info().Int64("purged", purged).Msg("cleared expired reset tokens")
	}
}
