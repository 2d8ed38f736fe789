package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"secret-draw-api/internal/repository"
)

// RetentionJob purges draws older than the configured retention window.
// Draw links circulate only for one gift season; dropping stale rows keeps
// the table small and removes match data nobody will ever claim.
type RetentionJob struct {
	drawRepo repository.DrawRepository
	maxAge   time.Duration
	logger   *zap.Logger
}

// NewRetentionJob creates a new RetentionJob instance
func NewRetentionJob(drawRepo repository.DrawRepository, maxAge time.Duration, logger *zap.Logger) *RetentionJob {
	return &RetentionJob{
		drawRepo: drawRepo,
		maxAge:   maxAge,
		logger:   logger,
	}
}

// Run executes the retention job. Participant rows are removed together
// with their draw via the cascade constraint.
func (j *RetentionJob) Run() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-j.maxAge)

	j.logger.Info("Starting draw retention job",
		zap.Time("cutoff", cutoff),
	)

	deleted, err := j.drawRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to delete expired draws",
			zap.Error(err),
		)
		return
	}

	if deleted == 0 {
		j.logger.Info("No expired draws found")
		return
	}

	j.logger.Info("Retention job completed",
		zap.Int64("deleted", deleted),
	)
}
