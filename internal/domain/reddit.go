package domain

import "time"

// CommunityStats is the subreddit counterpart of ChannelStats: an immutable
// snapshot of platform-reported totals at fetch time.
type CommunityStats struct {
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Members     int64     `json:"members"`
	ActiveUsers int64     `json:"active_users"`
	CreatedUTC  time.Time `json:"created_utc"`
	NSFW        bool      `json:"is_nsfw"`
	URL         string    `json:"url"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// UserStats describes a Reddit account. A user profile has no audience size,
// which is why user-post engagement uses a different denominator than
// subreddit engagement.
type UserStats struct {
	Username         string    `json:"username"`
	CreatedUTC       time.Time `json:"created_utc"`
	LinkKarma        int64     `json:"link_karma"`
	CommentKarma     int64     `json:"comment_karma"`
	TotalKarma       int64     `json:"total_karma"`
	IsEmployee       bool      `json:"is_employee"`
	IsGold           bool      `json:"is_gold"`
	IsMod            bool      `json:"is_mod"`
	HasVerifiedEmail bool      `json:"has_verified_email"`
	FetchedAt        time.Time `json:"fetched_at"`
}

// PostRecord is one canonical row per submission. EngagementRate semantics
// depend on the fetch context: normalized against community members for
// subreddit posts, against the post's own score for user posts. The two are
// never comparable.
type PostRecord struct {
	PostID         string    `json:"post_id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Subreddit      string    `json:"subreddit"`
	CreatedUTC     time.Time `json:"created_utc"`
	Upvotes        int64     `json:"upvotes"`
	UpvoteRatio    float64   `json:"upvote_ratio"`
	NumComments    int64     `json:"num_comments"`
	EngagementRate float64   `json:"engagement_rate"`
	Permalink      string    `json:"permalink"`
	URL            string    `json:"url"`
	IsSelf         bool      `json:"is_self"`
	Selftext       string    `json:"selftext"`
	LinkFlair      string    `json:"link_flair_text"`
	NumAwards      int64     `json:"num_awards"`
	IsVideo        bool      `json:"is_video"`
	NSFW           bool      `json:"over_18"`
	Domain         string    `json:"domain"`
	PublishDay     string    `json:"day_of_week"`
	PublishHour    int       `json:"hour"`
}

// CommentRecord is one row per user comment (user analyses only).
type CommentRecord struct {
	CommentID  string    `json:"comment_id"`
	Body       string    `json:"body"`
	Subreddit  string    `json:"subreddit"`
	CreatedUTC time.Time `json:"created_utc"`
	Upvotes    int64     `json:"upvotes"`
	Permalink  string    `json:"permalink"`
}
