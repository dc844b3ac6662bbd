package youtube

import (
	"time"

	"github.com/kapu/creator-pulse-go/internal/constants"
	"github.com/kapu/creator-pulse-go/internal/domain"
	"github.com/kapu/creator-pulse-go/internal/service/engagement"
	"github.com/kapu/creator-pulse-go/internal/util"
	"google.golang.org/api/youtube/v3"
)

// NormalizeVideo maps one raw API item onto the canonical row schema. It is
// total on well-formed input: malformed durations default to 0, malformed
// timestamps default to the fetch instant (surfaced as a kept-record skip),
// and absent statistics count as zero. Only a structurally absent required
// field rejects the record.
//
// The returned skips carry the "why" for anything dropped or degraded; ok is
// false when the record must be excluded.
func NormalizeVideo(item *youtube.Video, now time.Time) (domain.VideoRecord, []domain.Skip, bool) {
	if item == nil || item.Id == "" || item.Snippet == nil || item.ContentDetails == nil {
		id := ""
		if item != nil {
			id = item.Id
		}
		return domain.VideoRecord{}, []domain.Skip{{
			ID:     id,
			Reason: domain.SkipMissingField,
			Detail: "missing id, snippet or contentDetails",
		}}, false
	}

	var skips []domain.Skip

	durationSeconds, err := ParseISODuration(item.ContentDetails.Duration)
	if err != nil {
		durationSeconds = 0
	}

	uploadDate, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	if err != nil {
		// Lossy fallback: keeps the record but can misplace it
		// chronologically, so the degradation is recorded.
		uploadDate = now
		skips = append(skips, domain.Skip{
			ID:     item.Id,
			Reason: domain.SkipTimestampDefaulted,
			Detail: item.Snippet.PublishedAt,
		})
	}
	uploadDate = uploadDate.UTC()

	var views, likes, comments int64
	if item.Statistics != nil {
		views = int64(item.Statistics.ViewCount)
		likes = int64(item.Statistics.LikeCount)
		comments = int64(item.Statistics.CommentCount)
	}

	description := item.Snippet.Description
	if runes := []rune(description); len(runes) > constants.NormalizeConfig.DescriptionLimit {
		description = string(runes[:constants.NormalizeConfig.DescriptionLimit])
	}

	record := domain.VideoRecord{
		VideoID:         item.Id,
		Title:           item.Snippet.Title,
		UploadDate:      uploadDate,
		ViewCount:       views,
		LikeCount:       likes,
		CommentCount:    comments,
		EngagementRate:  util.Round(engagement.Rate(views, likes, comments), 4),
		DurationSeconds: durationSeconds,
		Tags:            item.Snippet.Tags,
		CategoryID:      item.Snippet.CategoryId,
		PublishDay:      uploadDate.Weekday().String(),
		PublishHour:     uploadDate.Hour(),
		Description:     description,
	}

	return record, skips, true
}
