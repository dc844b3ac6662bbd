package quota

import (
	"context"
	"testing"
	"time"

	"github.com/kapu/creator-pulse-go/internal/constants"
	"github.com/kapu/creator-pulse-go/pkg/errors"
	"go.uber.org/zap"
)

type fakeStore struct {
	counts map[string]map[string]int
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{counts: map[string]map[string]int{}}
}

func (f *fakeStore) Usage(_ context.Context, date, platform string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[date][platform], nil
}

func (f *fakeStore) Increment(_ context.Context, date, platform string) error {
	if f.err != nil {
		return f.err
	}
	if f.counts[date] == nil {
		f.counts[date] = map[string]int{}
	}
	f.counts[date][platform]++
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTrackerDeniesAtLimit(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	tracker := NewTracker(store, Limits{YouTubeDaily: 3}, zap.NewNop())
	tracker.now = fixedClock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))

	for i := 0; i < 3; i++ {
		if !tracker.CanMakeRequest(ctx, constants.PlatformYouTube) {
			t.Fatalf("request %d denied below the limit", i+1)
		}
		tracker.IncrementUsage(ctx, constants.PlatformYouTube)
	}

	if tracker.CanMakeRequest(ctx, constants.PlatformYouTube) {
		t.Error("request allowed at the limit")
	}

	stats := tracker.UsageStats(ctx, constants.PlatformYouTube)
	if stats.Used != 3 || stats.Limit != 3 || stats.Remaining != 0 {
		t.Errorf("UsageStats = %+v, want 3/3 used with 0 remaining", stats)
	}
}

func TestTrackerResetsAtUTCMidnight(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	tracker := NewTracker(store, Limits{YouTubeDaily: 1}, zap.NewNop())

	tracker.now = fixedClock(time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC))
	tracker.IncrementUsage(ctx, constants.PlatformYouTube)
	if tracker.CanMakeRequest(ctx, constants.PlatformYouTube) {
		t.Fatal("request allowed after exhausting the day's budget")
	}

	// Usage is keyed by UTC date, so crossing midnight starts a fresh counter.
	tracker.now = fixedClock(time.Date(2026, 9, 2, 0, 1, 0, 0, time.UTC))
	if !tracker.CanMakeRequest(ctx, constants.PlatformYouTube) {
		t.Error("request denied after the UTC date rolled over")
	}
}

func TestTrackerTracksPlatformsIndependently(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	tracker := NewTracker(store, Limits{YouTubeDaily: 1, RedditDaily: 5}, zap.NewNop())
	tracker.now = fixedClock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))

	tracker.IncrementUsage(ctx, constants.PlatformYouTube)

	if tracker.CanMakeRequest(ctx, constants.PlatformYouTube) {
		t.Error("YouTube request allowed past its limit")
	}
	if !tracker.CanMakeRequest(ctx, constants.PlatformReddit) {
		t.Error("Reddit request denied by YouTube usage")
	}
}

func TestTrackerAllowsOnStoreFault(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.err = errors.NewPersistenceError("disk gone", "read", "/nope", nil)
	tracker := NewTracker(store, Limits{}, zap.NewNop())

	if !tracker.CanMakeRequest(ctx, constants.PlatformYouTube) {
		t.Error("store fault blocked the request; tracking must degrade to allow")
	}
	// Increment must swallow the failure too.
	tracker.IncrementUsage(ctx, constants.PlatformYouTube)
}

func TestTrackerDefaultsLimits(t *testing.T) {
	tracker := NewTracker(newFakeStore(), Limits{}, zap.NewNop())

	stats := tracker.UsageStats(context.Background(), constants.PlatformYouTube)
	if stats.Limit != constants.QuotaDefaults.YouTubeDailyLimit {
		t.Errorf("YouTube limit = %d, want default %d", stats.Limit, constants.QuotaDefaults.YouTubeDailyLimit)
	}

	stats = tracker.UsageStats(context.Background(), constants.PlatformReddit)
	if stats.Limit != constants.QuotaDefaults.RedditDailyLimit {
		t.Errorf("Reddit limit = %d, want default %d", stats.Limit, constants.QuotaDefaults.RedditDailyLimit)
	}
}

func TestExceededCarriesUsageAndReset(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	tracker := NewTracker(store, Limits{YouTubeDaily: 2}, zap.NewNop())
	tracker.now = fixedClock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))

	tracker.IncrementUsage(ctx, constants.PlatformYouTube)
	tracker.IncrementUsage(ctx, constants.PlatformYouTube)

	exceeded := tracker.Exceeded(ctx, constants.PlatformYouTube)
	if exceeded.Platform != constants.PlatformYouTube {
		t.Errorf("Platform = %q, want %q", exceeded.Platform, constants.PlatformYouTube)
	}
	if exceeded.Used != 2 || exceeded.Limit != 2 {
		t.Errorf("Used/Limit = %d/%d, want 2/2", exceeded.Used, exceeded.Limit)
	}
	if exceeded.ResetTime.Hour() != 0 || exceeded.ResetTime.Minute() != 0 {
		t.Errorf("ResetTime = %v, want a UTC midnight", exceeded.ResetTime)
	}
}
