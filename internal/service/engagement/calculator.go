// Package engagement computes the derived engagement metrics. YouTube rates
// are view-denominated; Reddit has two distinct, non-comparable formulas
// (audience-denominated for subreddits, score-denominated for user posts)
// kept as separately named functions on purpose.
package engagement

import (
	"time"

	"github.com/kapu/creator-pulse-go/internal/domain"
	"github.com/kapu/creator-pulse-go/internal/util"
)

// Calculator derives period aggregates and comparisons from one video
// dataset. The reference instant is fixed at construction so every window in
// one analysis is computed against the same "now".
type Calculator struct {
	records []domain.VideoRecord
	now     time.Time
}

func NewCalculator(records []domain.VideoRecord, now time.Time) *Calculator {
	return &Calculator{
		records: records,
		now:     now.UTC(),
	}
}

// Rate is the YouTube engagement formula: (likes + comments) / views * 100.
// Zero views yields exactly 0.0, never a division by zero.
func Rate(views, likes, comments int64) float64 {
	if views == 0 {
		return 0.0
	}
	return float64(likes+comments) / float64(views) * 100
}

// PeriodStats aggregates records with start <= upload < end. The rate comes
// from the summed counts rather than averaging per-video rates, so small-view
// outliers cannot dominate.
func (c *Calculator) PeriodStats(start, end time.Time) domain.PeriodStats {
	var stats domain.PeriodStats
	for _, r := range c.records {
		if r.UploadDate.Before(start) || !r.UploadDate.Before(end) {
			continue
		}
		stats.Videos++
		stats.Views += r.ViewCount
		stats.Likes += r.LikeCount
		stats.Comments += r.CommentCount
	}
	stats.EngagementRate = Rate(stats.Views, stats.Likes, stats.Comments)
	return stats
}

func (c *Calculator) Last30Days() domain.PeriodStats {
	return c.PeriodStats(c.now.AddDate(0, 0, -30), c.now)
}

func (c *Calculator) Previous30Days() domain.PeriodStats {
	return c.PeriodStats(c.now.AddDate(0, 0, -60), c.now.AddDate(0, 0, -30))
}

// ChangePercentage returns (current - previous) / previous * 100. A zero
// previous value maps to 100.0 when there is new activity, 0.0 otherwise.
func ChangePercentage(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100.0
		}
		return 0.0
	}
	return (current - previous) / previous * 100
}

func (c *Calculator) Comparison() domain.EngagementComparison {
	current := c.Last30Days()
	previous := c.Previous30Days()

	engagementChange := ChangePercentage(current.EngagementRate, previous.EngagementRate)

	return domain.EngagementComparison{
		CurrentPeriod:    current,
		PreviousPeriod:   previous,
		EngagementChange: engagementChange,
		ViewsChange:      ChangePercentage(float64(current.Views), float64(previous.Views)),
		VideosChange:     ChangePercentage(float64(current.Videos), float64(previous.Videos)),
		IsImproving:      engagementChange > 0,
	}
}

func (c *Calculator) Overall() domain.OverallEngagement {
	var views, likes, comments int64
	for _, r := range c.records {
		views += r.ViewCount
		likes += r.LikeCount
		comments += r.CommentCount
	}

	return domain.OverallEngagement{
		TotalVideos:    len(c.records),
		TotalViews:     views,
		TotalLikes:     likes,
		TotalComments:  comments,
		EngagementRate: Rate(views, likes, comments),
	}
}

// Trend returns the day-by-day engagement series for the trailing N days,
// oldest first. Each day is one half-open window of the period aggregation.
func (c *Calculator) Trend(days int) []domain.TrendPoint {
	points := make([]domain.TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		end := c.now.AddDate(0, 0, -i)
		start := end.AddDate(0, 0, -1)
		stats := c.PeriodStats(start, end)

		points = append(points, domain.TrendPoint{
			Date:           util.StartOfDayUTC(start),
			EngagementRate: stats.EngagementRate,
			Views:          stats.Views,
			Videos:         stats.Videos,
		})
	}
	return points
}

// UploadSchedule buckets uploads by UTC weekday and hour for the posting
// schedule heatmap. Only occupied cells are returned.
func (c *Calculator) UploadSchedule() []domain.ScheduleCell {
	type bucket struct {
		uploads int
		views   int64
	}
	cells := map[[2]int]*bucket{}
	for _, r := range c.records {
		key := [2]int{int(r.UploadDate.UTC().Weekday()), r.PublishHour}
		if cells[key] == nil {
			cells[key] = &bucket{}
		}
		cells[key].uploads++
		cells[key].views += r.ViewCount
	}

	out := make([]domain.ScheduleCell, 0, len(cells))
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			b := cells[[2]int{day, hour}]
			if b == nil {
				continue
			}
			out = append(out, domain.ScheduleCell{
				Day:      time.Weekday(day).String(),
				Hour:     hour,
				Uploads:  b.uploads,
				AvgViews: util.Round(float64(b.views)/float64(b.uploads), 2),
			})
		}
	}
	return out
}
