package expiry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"staff-acl/internal/config"
	"staff-acl/internal/features/permission"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiryReporter periodically counts grants that are still flagged granted
// but have passed their expiry. It only reports; evaluation already treats
// such rows as invalid.
type ExpiryReporter interface {
	InitializeScheduler(ctx context.Context) error
	StopScheduler() error
	RunOnce(ctx context.Context) (int64, error)
}

type ExpiryReporterImpl struct {
	grants   permission.GrantService
	logger   *zap.Logger
	schedule string

	scheduler *cron.Cron
	mu        sync.Mutex
	lastCount int64
}

func NewExpiryReporter(grants permission.GrantService, cfg *config.Config, logger *zap.Logger) ExpiryReporter {
	return &ExpiryReporterImpl{
		grants:   grants,
		logger:   logger,
		schedule: cfg.ExpiryReportSchedule,
	}
}

func (r *ExpiryReporterImpl) RunOnce(ctx context.Context) (int64, error) {
	count, err := r.grants.CountExpiredActive(ctx)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	previous := r.lastCount
	r.lastCount = count
	r.mu.Unlock()

	if count > 0 {
		r.logger.Warn("expired grants still flagged as granted",
			zap.Int64("count", count),
			zap.Int64("previous", previous),
		)
	} else {
		r.logger.Debug("no expired grants flagged as granted")
	}
	return count, nil
}

func (r *ExpiryReporterImpl) InitializeScheduler(ctx context.Context) error {
	if r.schedule == "" {
		r.logger.Info("expiry reporter disabled")
		return nil
	}
	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return fmt.Errorf("invalid expiry report schedule %q: %w", r.schedule, err)
	}

	r.scheduler = cron.New()
	_, err := r.scheduler.AddFunc(r.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := r.RunOnce(ctx); err != nil {
			r.logger.Error("expiry report failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	r.scheduler.Start()
	r.logger.Info("expiry reporter scheduled", zap.String("schedule", r.schedule))
	return nil
}

func (r *ExpiryReporterImpl) StopScheduler() error {
	if r.scheduler != nil {
		ctx := r.scheduler.Stop()
		<-ctx.Done()
	}
	return nil
}
