// Package quota enforces the per-platform daily request budget. The store
// backend is swappable: a JSON file for single-process deployments, Redis for
// anything that needs an atomic counter.
package quota

import (
	"context"
	"time"

	"github.com/kapu/creator-pulse-go/internal/constants"
	"github.com/kapu/creator-pulse-go/internal/util"
	"github.com/kapu/creator-pulse-go/pkg/errors"
	"go.uber.org/zap"
)

// Store persists per-day, per-platform request counters. Implementations
// return PersistenceError on I/O faults; the tracker decides policy.
type Store interface {
	Usage(ctx context.Context, date, platform string) (int, error)
	Increment(ctx context.Context, date, platform string) error
}

type UsageStats struct {
	Used       int     `json:"used"`
	Limit      int     `json:"limit"`
	Remaining  int     `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

type Limits struct {
	YouTubeDaily int
	RedditDaily  int
}

type Tracker struct {
	store  Store
	limits Limits
	logger *zap.Logger

	// injectable clock for date-rollover tests
	now func() time.Time
}

func NewTracker(store Store, limits Limits, logger *zap.Logger) *Tracker {
	if limits.YouTubeDaily <= 0 {
		limits.YouTubeDaily = constants.QuotaDefaults.YouTubeDailyLimit
	}
	if limits.RedditDaily <= 0 {
		limits.RedditDaily = constants.QuotaDefaults.RedditDailyLimit
	}
	return &Tracker{
		store:  store,
		limits: limits,
		logger: logger,
		now:    time.Now,
	}
}

func (t *Tracker) limitFor(platform string) int {
	if platform == constants.PlatformReddit {
		return t.limits.RedditDaily
	}
	return t.limits.YouTubeDaily
}

func (t *Tracker) today() string {
	return t.now().UTC().Format("2006-01-02")
}

// CanMakeRequest is a pure read: it does not reserve quota. Concurrent
// callers racing between check and increment can overshoot the limit; that is
// an accepted limitation of the single-user deployment model. A store fault
// degrades to "allow" so a broken state file never blocks the user.
func (t *Tracker) CanMakeRequest(ctx context.Context, platform string) bool {
	used, err := t.store.Usage(ctx, t.today(), platform)
	if err != nil {
		t.logger.Warn("Quota store read failed, allowing request",
			zap.String("platform", platform),
			zap.Error(err))
		return true
	}
	return used < t.limitFor(platform)
}

// IncrementUsage records one successful upstream request. Persistence
// failures are logged and swallowed.
func (t *Tracker) IncrementUsage(ctx context.Context, platform string) {
	if err := t.store.Increment(ctx, t.today(), platform); err != nil {
		t.logger.Warn("Quota store write failed, usage not recorded",
			zap.String("platform", platform),
			zap.Error(err))
	}
}

func (t *Tracker) UsageStats(ctx context.Context, platform string) UsageStats {
	used, err := t.store.Usage(ctx, t.today(), platform)
	if err != nil {
		t.logger.Warn("Quota store read failed, reporting zero usage",
			zap.String("platform", platform),
			zap.Error(err))
		used = 0
	}

	limit := t.limitFor(platform)
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	percentage := 0.0
	if limit > 0 {
		percentage = float64(used) / float64(limit) * 100
	}

	return UsageStats{
		Used:       used,
		Limit:      limit,
		Remaining:  remaining,
		Percentage: percentage,
	}
}

// Exceeded builds the user-facing error for a denied request.
func (t *Tracker) Exceeded(ctx context.Context, platform string) *errors.QuotaExceededError {
	stats := t.UsageStats(ctx, platform)
	return errors.NewQuotaExceededError(platform, stats.Used, stats.Limit, util.NextUTCMidnight())
}
