package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// TemporaryFileRemover deletes temporary files older than maxAge
type TemporaryFileRemover interface {
	DeleteExpiredTemporary(ctx context.Context, now time.Time, maxAge time.Duration) (int, error)
}

// FileCleanupConfig controls the temporary file cleanup job
type FileCleanupConfig struct {
	Interval time.Duration
	MaxAge   time.Duration
	Timeout  time.Duration
}

// StartFileCleanupJob removes expired temporary uploads every Interval until ctx is done.
// The returned channel is closed once the job has stopped.
func StartFileCleanupJob(ctx context.Context, cfg FileCleanupConfig, files TemporaryFileRemover, logger zerolog.Logger) <-chan struct{} {
	done := make(chan struct{})
	if files == nil || cfg.MaxAge <= 0 {
		logger.Warn().Msg("Temporary file cleanup disabled")
		close(done)
		return done
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				RunFileCleanup(ctx, files, cfg.MaxAge, timeout, logger)
			}
		}
	}()
	return done
}

// RunFileCleanup performs one cleanup pass
func RunFileCleanup(ctx context.Context, files TemporaryFileRemover, maxAge, timeout time.Duration, logger zerolog.Logger) {
	tickCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	removed, err := files.DeleteExpiredTemporary(tickCtx, time.Now().UTC(), maxAge)
	if err != nil {
		logger.Error().Err(err).Int("removed", removed).Msg("Temporary file cleanup failed")
		return
	}
	if removed > 0 {
		logger.Info().Int("removed", removed).Msg("Removed expired temporary files")
	}
}
