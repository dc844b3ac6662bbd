package domain

import "time"

// SkipReason classifies why a record or batch was dropped (or degraded)
// during acquisition. Skips are carried in the result so "why was this
// dropped" survives beyond a log line.
type SkipReason string

const (
	SkipNonPublic          SkipReason = "non_public"
	SkipMissingField       SkipReason = "missing_field"
	SkipBatchFailed        SkipReason = "batch_failed"
	SkipMalformedRecord    SkipReason = "malformed_record"
	SkipTimestampDefaulted SkipReason = "timestamp_defaulted" // record kept, timestamp replaced with fetch time
)

// Skip records one dropped (or degraded) item.
type Skip struct {
	ID     string     `json:"id"`
	Reason SkipReason `json:"reason"`
	Detail string     `json:"detail,omitempty"`
}

// Kept reports whether the record the skip refers to is still present in the
// dataset. Only timestamp defaults degrade without dropping.
func (s Skip) Kept() bool {
	return s.Reason == SkipTimestampDefaulted
}

// Coverage compares the fetched subset against the platform-reported totals.
type Coverage struct {
	FetchedCount    int     `json:"fetched_count"`
	PlatformTotal   int64   `json:"platform_total"`
	CountPercentage float64 `json:"count_percentage"`
	FetchedViews    int64   `json:"fetched_views"`
	PlatformViews   int64   `json:"platform_views"`
	ViewsPercentage float64 `json:"views_percentage"`
	Partial         bool    `json:"partial"`
}

// ChannelAnalysis is the full output of one YouTube analysis run. It is
// exclusively owned by the session that fetched it.
type ChannelAnalysis struct {
	Stats      ChannelStats         `json:"stats"`
	Videos     []VideoRecord        `json:"videos"`
	Overall    OverallEngagement    `json:"overall"`
	Comparison EngagementComparison `json:"comparison"`
	Trend      []TrendPoint         `json:"trend"`
	Schedule   []ScheduleCell       `json:"schedule"`
	Coverage   Coverage             `json:"coverage"`
	Skips      []Skip               `json:"skips,omitempty"`
	Sentiment  *SentimentSummary    `json:"sentiment,omitempty"`
	History    *HistoryDelta        `json:"history,omitempty"`
	AnalyzedAt time.Time            `json:"analyzed_at"`
}

// CommunityAnalysis is the output of one subreddit analysis run.
type CommunityAnalysis struct {
	Stats      CommunityStats      `json:"stats"`
	Posts      []PostRecord        `json:"posts"`
	Engagement CommunityEngagement `json:"engagement"`
	Coverage   Coverage            `json:"coverage"`
	Skips      []Skip              `json:"skips,omitempty"`
	Sentiment  *SentimentSummary   `json:"sentiment,omitempty"`
	AnalyzedAt time.Time           `json:"analyzed_at"`
}

// UserAnalysis is the output of one Reddit user analysis run.
type UserAnalysis struct {
	Stats      UserStats       `json:"stats"`
	Posts      []PostRecord    `json:"posts"`
	Comments   []CommentRecord `json:"comments"`
	Engagement UserEngagement  `json:"engagement"`
	Skips      []Skip          `json:"skips,omitempty"`
	AnalyzedAt time.Time       `json:"analyzed_at"`
}

// SentimentSummary is produced by an injected SentimentProvider, when one is
// configured. The core never computes it itself.
type SentimentSummary struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
	Samples  int     `json:"samples"`
}

// HistoryDelta compares the current snapshot against the previous stored run.
type HistoryDelta struct {
	PreviousAt        time.Time `json:"previous_at"`
	SubscriberChange  int64     `json:"subscriber_change"`
	ViewChange        int64     `json:"view_change"`
	VideoCountChange  int64     `json:"video_count_change"`
	HasPreviousRecord bool      `json:"has_previous_record"`
}
