package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ExpiredSessionDeleter removes refresh sessions that expired before a cutoff.
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// SessionSweeper periodically purges expired refresh sessions.
type SessionSweeper struct {
	sessions ExpiredSessionDeleter
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewSessionSweeper constructs the sweeper.
func NewSessionSweeper(sessions ExpiredSessionDeleter, interval time.Duration, logger *zap.Logger) *SessionSweeper {
	return &SessionSweeper{sessions: sessions, interval: interval, now: time.Now, logger: logger}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *SessionSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("session sweeper disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	deleted, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("session sweep failed", zap.Error(err))
		}
		return
	}
	if deleted > 0 {
		s.logger.Info("expired sessions purged", zap.Int64("count", deleted))
	}
}
