package workers

import (
	"context"
	"time"

	"tennis_backend/internal/logger"
	"tennis_backend/internal/repositories"
)

// VerificationCleanupWorker периодически чистит протухшие SMS-коды и
// просроченные refresh-токены.
type VerificationCleanupWorker struct {
	users         repositories.UserRepository
	refreshTokens repositories.RefreshTokenRepository
	interval      time.Duration
}

func NewVerificationCleanupWorker(
	users repositories.UserRepository,
	refreshTokens repositories.RefreshTokenRepository,
	interval time.Duration,
) *VerificationCleanupWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &VerificationCleanupWorker{
		users:         users,
		refreshTokens: refreshTokens,
		interval:      interval,
	}
}

// Run блокируется до отмены контекста; запускается в отдельной горутине
func (w *VerificationCleanupWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Verification cleanup worker started", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			logger.Info("Verification cleanup worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *VerificationCleanupWorker) sweep() {
	cleaned, err := w.users.CleanExpiredVerificationCodes()
	if err != nil {
		logger.Error("Failed to clean expired verification codes", "error", err)
	} else if cleaned > 0 {
		logger.Info("Cleaned expired verification codes", "count", cleaned)
	}

	if err := w.refreshTokens.CleanExpired(); err != nil {
		logger.Error("Failed to clean expired refresh tokens", "error", err)
	}
}
