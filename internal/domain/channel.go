package domain

import "time"

// ChannelStats is an immutable snapshot of the platform-reported channel
// totals at fetch time. A new analysis supersedes it, never mutates it.
type ChannelStats struct {
	ChannelID         string    `json:"channel_id"`
	ChannelName       string    `json:"channel_name"`
	Description       string    `json:"description"`
	CustomURL         string    `json:"custom_url"`
	Country           string    `json:"country"`
	PublishedAt       time.Time `json:"published_at"`
	TotalSubscribers  int64     `json:"total_subscribers"`
	TotalViews        int64     `json:"total_views"`
	TotalVideos       int64     `json:"total_videos"`
	UploadsPlaylistID string    `json:"uploads_playlist_id"`
	HiddenSubscribers bool      `json:"hidden_subscriber_count"`
	FetchedAt         time.Time `json:"fetched_at"`
}
