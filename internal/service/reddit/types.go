package reddit

import "encoding/json"

// Reddit's listing envelope: every payload is a kind-tagged "thing".

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listing struct {
	Kind string      `json:"kind"`
	Data listingData `json:"data"`
}

type listingData struct {
	After    string  `json:"after"`
	Children []thing `json:"children"`
}

type aboutSubreddit struct {
	DisplayName       string  `json:"display_name"`
	Title             string  `json:"title"`
	PublicDescription string  `json:"public_description"`
	Subscribers       int64   `json:"subscribers"`
	AccountsActive    int64   `json:"accounts_active"`
	CreatedUTC        float64 `json:"created_utc"`
	Over18            bool    `json:"over18"`
}

type aboutUser struct {
	Name             string  `json:"name"`
	CreatedUTC       float64 `json:"created_utc"`
	LinkKarma        int64   `json:"link_karma"`
	CommentKarma     int64   `json:"comment_karma"`
	IsEmployee       bool    `json:"is_employee"`
	IsGold           bool    `json:"is_gold"`
	IsMod            bool    `json:"is_mod"`
	HasVerifiedEmail bool    `json:"has_verified_email"`
}

type rawPost struct {
	ID                  string  `json:"id"`
	Title               string  `json:"title"`
	Author              string  `json:"author"`
	Subreddit           string  `json:"subreddit"`
	CreatedUTC          float64 `json:"created_utc"`
	Score               int64   `json:"score"`
	UpvoteRatio         float64 `json:"upvote_ratio"`
	NumComments         int64   `json:"num_comments"`
	Permalink           string  `json:"permalink"`
	URL                 string  `json:"url"`
	IsSelf              bool    `json:"is_self"`
	Selftext            string  `json:"selftext"`
	LinkFlairText       string  `json:"link_flair_text"`
	TotalAwardsReceived int64   `json:"total_awards_received"`
	IsVideo             bool    `json:"is_video"`
	Over18              bool    `json:"over_18"`
	Domain              string  `json:"domain"`
}

type rawComment struct {
	ID         string  `json:"id"`
	Body       string  `json:"body"`
	Subreddit  string  `json:"subreddit"`
	CreatedUTC float64 `json:"created_utc"`
	Score      int64   `json:"score"`
	Permalink  string  `json:"permalink"`
}
