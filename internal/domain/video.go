package domain

import (
	"sort"
	"time"
)

// VideoRecord is one canonical row per public video. Column names and units
// are a contract with downstream consumers: engagement rate is a percentage,
// duration is seconds, publish day/hour are UTC calendar fields.
type VideoRecord struct {
	VideoID         string    `json:"video_id"`
	Title           string    `json:"title"`
	UploadDate      time.Time `json:"upload_date"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
	CommentCount    int64     `json:"comment_count"`
	EngagementRate  float64   `json:"engagement_rate"`
	DurationSeconds int64     `json:"duration_seconds"`
	Tags            []string  `json:"tags"`
	CategoryID      string    `json:"category_id"`
	PublishDay      string    `json:"publish_day"`
	PublishHour     int       `json:"publish_hour"`
	Description     string    `json:"description"`

	// Derived after collection, relative to the analysis instant.
	ViewRank        int     `json:"view_rank"`
	DaysSinceUpload int     `json:"days_since_upload"`
	ViewsPerDay     float64 `json:"views_per_day"`
}

// FinalizeVideoDataset orders records most-recent-first and fills the
// collection-relative derived columns (dense view rank, age, views per day).
func FinalizeVideoDataset(records []VideoRecord, now time.Time) []VideoRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].UploadDate.After(records[j].UploadDate)
	})

	// Dense rank over distinct view counts, highest first.
	views := make([]int64, 0, len(records))
	seen := make(map[int64]bool, len(records))
	for _, r := range records {
		if !seen[r.ViewCount] {
			seen[r.ViewCount] = true
			views = append(views, r.ViewCount)
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i] > views[j] })
	rank := make(map[int64]int, len(views))
	for i, v := range views {
		rank[v] = i + 1
	}

	for i := range records {
		r := &records[i]
		r.ViewRank = rank[r.ViewCount]
		days := int(now.Sub(r.UploadDate).Hours() / 24)
		if days < 0 {
			days = 0
		}
		r.DaysSinceUpload = days
		divisor := days
		if divisor == 0 {
			divisor = 1
		}
		r.ViewsPerDay = float64(r.ViewCount) / float64(divisor)
	}

	return records
}
