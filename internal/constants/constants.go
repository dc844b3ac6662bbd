package constants

import "time"

// Platform names used as quota keys and log fields.
const (
	PlatformYouTube = "youtube"
	PlatformReddit  = "reddit"
)

var QuotaDefaults = struct {
	YouTubeDailyLimit int
	RedditDailyLimit  int
	FilePath          string
	RedisKeyTTL       time.Duration
}{
	YouTubeDailyLimit: 50,
	RedditDailyLimit:  1000,
	FilePath:          ".quota_usage.json",
	RedisKeyTTL:       48 * time.Hour, // survives the day it covers, then expires
}

var FetchConfig = struct {
	YouTubePageSize   int64
	YouTubeBatchSize  int
	RedditPageSize    int
	MaxVideosDefault  int
	PostLimitDefault  int
	PostLimitMin      int
	PostLimitMax      int
	InterPageInterval time.Duration
	CallTimeout       time.Duration
}{
	YouTubePageSize:   50, // API maximum for playlistItems.list
	YouTubeBatchSize:  50, // API maximum for videos.list
	RedditPageSize:    100,
	MaxVideosDefault:  500,
	PostLimitDefault:  200,
	PostLimitMin:      50,
	PostLimitMax:      500,
	InterPageInterval: 100 * time.Millisecond,
	CallTimeout:       30 * time.Second,
}

var RetryConfig = struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      time.Duration
}{
	MaxAttempts: 3,
	BaseDelay:   500 * time.Millisecond,
	Jitter:      250 * time.Millisecond,
}

var CacheTTL = struct {
	ChannelStats   time.Duration
	CommunityAbout time.Duration
}{
	ChannelStats:   20 * time.Minute,
	CommunityAbout: 20 * time.Minute,
}

var CoverageConfig = struct {
	// Below this fraction of the platform-reported total, results carry a
	// visible partial-data warning.
	WarnThreshold float64
}{
	WarnThreshold: 0.95,
}

var RedditAPIConfig = struct {
	TokenURL string
	BaseURL  string
}{
	TokenURL: "https://www.reddit.com/api/v1/access_token",
	BaseURL:  "https://oauth.reddit.com",
}

var NormalizeConfig = struct {
	DescriptionLimit int
	SelftextLimit    int
}{
	DescriptionLimit: 500,
	SelftextLimit:    300,
}
