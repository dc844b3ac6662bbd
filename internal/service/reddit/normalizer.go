package reddit

import (
	"time"

	"github.com/kapu/creator-pulse-go/internal/constants"
	"github.com/kapu/creator-pulse-go/internal/domain"
	"github.com/kapu/creator-pulse-go/internal/service/engagement"
	"github.com/kapu/creator-pulse-go/internal/util"
)

// normalizeSubredditPost maps one raw submission onto the canonical row,
// with engagement normalized against the community's member count.
func normalizeSubredditPost(raw *rawPost, members int64) (domain.PostRecord, *domain.Skip, bool) {
	record, skip, ok := normalizePostCommon(raw)
	if !ok {
		return domain.PostRecord{}, skip, false
	}
	record.EngagementRate = util.Round(
		engagement.SubredditPostEngagementRate(raw.Score, raw.NumComments, members), 4)
	return record, nil, true
}

// normalizeUserPost maps one raw submission onto the canonical row, with
// engagement normalized against the post's own score. Not comparable with
// the subreddit variant.
func normalizeUserPost(raw *rawPost) (domain.PostRecord, *domain.Skip, bool) {
	record, skip, ok := normalizePostCommon(raw)
	if !ok {
		return domain.PostRecord{}, skip, false
	}
	record.EngagementRate = util.Round(
		engagement.UserPostEngagementRate(raw.NumComments, raw.TotalAwardsReceived, raw.Score), 2)
	return record, nil, true
}

func normalizePostCommon(raw *rawPost) (domain.PostRecord, *domain.Skip, bool) {
	if raw == nil || raw.ID == "" {
		return domain.PostRecord{}, &domain.Skip{
			Reason: domain.SkipMissingField,
			Detail: "missing post id",
		}, false
	}

	created := time.Unix(int64(raw.CreatedUTC), 0).UTC()

	author := raw.Author
	if author == "" {
		author = "[deleted]"
	}

	selftext := ""
	if raw.IsSelf {
		selftext = raw.Selftext
		if runes := []rune(selftext); len(runes) > constants.NormalizeConfig.SelftextLimit {
			selftext = string(runes[:constants.NormalizeConfig.SelftextLimit])
		}
	}

	flair := raw.LinkFlairText
	if flair == "" {
		flair = "None"
	}

	return domain.PostRecord{
		PostID:      raw.ID,
		Title:       raw.Title,
		Author:      author,
		Subreddit:   raw.Subreddit,
		CreatedUTC:  created,
		Upvotes:     raw.Score,
		UpvoteRatio: raw.UpvoteRatio,
		NumComments: raw.NumComments,
		Permalink:   "https://reddit.com" + raw.Permalink,
		URL:         raw.URL,
		IsSelf:      raw.IsSelf,
		Selftext:    selftext,
		LinkFlair:   flair,
		NumAwards:   raw.TotalAwardsReceived,
		IsVideo:     raw.IsVideo,
		NSFW:        raw.Over18,
		Domain:      raw.Domain,
		PublishDay:  created.Weekday().String(),
		PublishHour: created.Hour(),
	}, nil, true
}

func normalizeComment(raw *rawComment) (domain.CommentRecord, *domain.Skip, bool) {
	if raw == nil || raw.ID == "" {
		return domain.CommentRecord{}, &domain.Skip{
			Reason: domain.SkipMissingField,
			Detail: "missing comment id",
		}, false
	}

	body := raw.Body
	if runes := []rune(body); len(runes) > 200 {
		body = string(runes[:200])
	}

	return domain.CommentRecord{
		CommentID:  raw.ID,
		Body:       body,
		Subreddit:  raw.Subreddit,
		CreatedUTC: time.Unix(int64(raw.CreatedUTC), 0).UTC(),
		Upvotes:    raw.Score,
		Permalink:  "https://reddit.com" + raw.Permalink,
	}, nil, true
}
