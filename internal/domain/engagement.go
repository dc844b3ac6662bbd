package domain

import "time"

// PeriodStats aggregates one half-open time window [Start, End). The
// engagement rate is recomputed from the summed counts, never averaged over
// per-video rates.
type PeriodStats struct {
	Videos         int     `json:"videos"`
	Views          int64   `json:"views"`
	Likes          int64   `json:"likes"`
	Comments       int64   `json:"comments"`
	EngagementRate float64 `json:"engagement_rate"`
}

// EngagementComparison pairs the trailing 30-day window with the 30 days
// before it. Derived on every request, never cached across datasets.
type EngagementComparison struct {
	CurrentPeriod    PeriodStats `json:"current_period"`
	PreviousPeriod   PeriodStats `json:"previous_period"`
	EngagementChange float64     `json:"engagement_change"`
	ViewsChange      float64     `json:"views_change"`
	VideosChange     float64     `json:"videos_change"`
	IsImproving      bool        `json:"is_improving"`
}

// TrendPoint is one day of the trailing engagement series.
type TrendPoint struct {
	Date           time.Time `json:"date"`
	EngagementRate float64   `json:"engagement_rate"`
	Views          int64     `json:"views"`
	Videos         int       `json:"videos"`
}

// OverallEngagement covers the whole fetched dataset.
type OverallEngagement struct {
	TotalVideos    int     `json:"total_videos"`
	TotalViews     int64   `json:"total_views"`
	TotalLikes     int64   `json:"total_likes"`
	TotalComments  int64   `json:"total_comments"`
	EngagementRate float64 `json:"engagement_rate"`
}

// ScheduleCell aggregates uploads landing in one (UTC weekday, UTC hour)
// slot, for posting-schedule heatmaps.
type ScheduleCell struct {
	Day      string  `json:"day"`
	Hour     int     `json:"hour"`
	Uploads  int     `json:"uploads"`
	AvgViews float64 `json:"avg_views"`
}

// CommunityEngagement aggregates a subreddit dataset. The total rate is
// normalized against audience size, not post views.
type CommunityEngagement struct {
	TotalUpvotes        int64   `json:"total_upvotes"`
	TotalComments       int64   `json:"total_comments"`
	TotalAwards         int64   `json:"total_awards"`
	AvgUpvotes          float64 `json:"avg_upvotes"`
	AvgComments         float64 `json:"avg_comments"`
	AvgEngagementRate   float64 `json:"avg_engagement_rate"`
	TotalEngagementRate float64 `json:"total_engagement_rate"`
	CommentRate         float64 `json:"comment_rate"`
	MaxEngagementRate   float64 `json:"max_engagement_rate"`
	AvgUpvoteRatio      float64 `json:"avg_upvote_ratio"`
	PostsFetched        int     `json:"total_posts_fetched"`
}

// UserEngagement aggregates a user's posts and comments. Its rates use the
// score-denominated formula and must never be averaged with community rates.
type UserEngagement struct {
	TotalPostUpvotes    int64   `json:"total_post_upvotes"`
	TotalPostComments   int64   `json:"total_post_comments"`
	AvgPostUpvotes      float64 `json:"avg_post_upvotes"`
	AvgPostEngagement   float64 `json:"avg_post_engagement"`
	TotalCommentUpvotes int64   `json:"total_comment_upvotes"`
	AvgCommentUpvotes   float64 `json:"avg_comment_upvotes"`
}
