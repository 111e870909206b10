// Package jobs holds the scheduled jobs of the API server.
package jobs

import (
	"context"
	"fmt"

	"github.com/ozgurk/ledgerlens/internal/ledger"
	"github.com/ozgurk/ledgerlens/internal/stats"
	"github.com/ozgurk/ledgerlens/internal/tenant"
	"github.com/ozgurk/ledgerlens/internal/timebucket"
	"github.com/ozgurk/ledgerlens/pkg/config"
	"github.com/ozgurk/ledgerlens/pkg/logger"
	"github.com/ozgurk/ledgerlens/pkg/redis"
)

// CacheWarmJob precomputes the summary and monthly trend of the
// configured default tenant into the response cache, so the dashboard
// landing view does not pay the full fetch-and-aggregate cost on every
// cold hit. The engine itself never caches; this runs entirely in the
// serving layer.
type CacheWarmJob struct {
	svc    *stats.Service
	cache  *redis.Cache
	cfg    *config.Config
	logger *logger.Logger
}

// NewCacheWarmJob creates a new cache warm job.
func NewCacheWarmJob(svc *stats.Service, cache *redis.Cache, cfg *config.Config, log *logger.Logger) *CacheWarmJob {
	return &CacheWarmJob{
		svc:    svc,
		cache:  cache,
		cfg:    cfg,
		logger: log,
	}
}

// Name implements scheduler.Job.
func (j *CacheWarmJob) Name() string {
	return "cache-warm"
}

// Schedule implements scheduler.Job.
func (j *CacheWarmJob) Schedule() string {
	return j.cfg.Ledger.WarmSchedule
}

// Run implements scheduler.Job.
func (j *CacheWarmJob) Run(ctx context.Context) error {
	firm := j.cfg.Ledger.DefaultFirmNo
	period := j.cfg.Ledger.DefaultPeriodNo
	if firm == "" || period == "" {
		j.logger.Debug("No default tenant configured, nothing to warm")
		return nil
	}

	tc, err := tenant.Resolve(j.cfg.Ledger.TablePrefix, firm, period)
	if err != nil {
		return fmt.Errorf("resolve default tenant: %w", err)
	}

	summary, err := j.svc.Summary(ctx, tc, ledger.DateRange{})
	if err != nil {
		return fmt.Errorf("warm summary: %w", err)
	}
	key := redis.SummaryKey(tc.FirmNo, tc.PeriodNo, "", "")
	if err := j.cache.Set(ctx, key, summary, j.cfg.Ledger.CacheTTL); err != nil {
		return fmt.Errorf("store summary: %w", err)
	}

	points, err := j.svc.Trend(ctx, tc, timebucket.Monthly, ledger.DateRange{})
	if err != nil {
		return fmt.Errorf("warm trend: %w", err)
	}
	key = redis.TrendKey(tc.FirmNo, tc.PeriodNo, string(timebucket.Monthly), "", "")
	if err := j.cache.Set(ctx, key, points, j.cfg.Ledger.CacheTTL); err != nil {
		return fmt.Errorf("store trend: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"tenant":  tc.String(),
		"buckets": len(points),
	}).Info("Warmed stats cache")
	return nil
}
