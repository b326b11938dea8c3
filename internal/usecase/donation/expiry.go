package donation

import (
	"context"
	"time"

	"sankofa/internal/logger"

	"go.uber.org/zap"
)

// StartPendingExpiryJob periodically fails donations whose checkout was never
// completed within maxAge. It returns when ctx is cancelled.
func (s *Service) StartPendingExpiryJob(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Pending donation expiry job started",
		zap.Duration("interval", interval),
		zap.Duration("max_age", maxAge),
	)

	s.expirePending(ctx, maxAge)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Pending donation expiry job stopped")
			return
		case <-ticker.C:
			s.expirePending(ctx, maxAge)
		}
	}
}

func (s *Service) expirePending(ctx context.Context, maxAge time.Duration) {
	expired, err := s.donationRepo.ExpirePending(ctx, time.Now().Add(-maxAge))
	if err != nil {
		logger.Error("Failed to expire pending donations", zap.Error(err))
		return
	}

	if expired > 0 {
		logger.Info("Expired abandoned donations",
			zap.Int64("count", expired),
			zap.String("event", "donations_expired"),
		)
	}
}
