package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/kapu/creator-pulse-go/internal/constants"
	"github.com/kapu/creator-pulse-go/internal/domain"
	"github.com/kapu/creator-pulse-go/internal/service/cache"
	apperrors "github.com/kapu/creator-pulse-go/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ChannelAnalyser drives the YouTube side of the acquisition pipeline:
// resolve -> channel stats -> paginated ID listing -> batched detail fetch ->
// canonical records. One analysis runs strictly sequentially; the limiter
// inserts a fixed small delay between paginated calls to stay under
// burst-rate limits.
type ChannelAnalyser struct {
	svc      *youtube.Service
	resolver *Resolver
	cache    *cache.CacheService // optional
	limiter  *rate.Limiter
	logger   *zap.Logger
}

func NewChannelAnalyser(apiKey string, cacheSvc *cache.CacheService, logger *zap.Logger) (*ChannelAnalyser, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	svc, err := youtube.NewService(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &ChannelAnalyser{
		svc:      svc,
		resolver: NewResolver(svc, logger),
		cache:    cacheSvc,
		limiter:  rate.NewLimiter(rate.Every(constants.FetchConfig.InterPageInterval), 1),
		logger:   logger,
	}, nil
}

func (a *ChannelAnalyser) Resolve(ctx context.Context, identifier string) (string, error) {
	return a.resolver.Resolve(ctx, identifier)
}

// GetChannelStatistics fetches the platform-reported totals. A cached
// snapshot is reused when present so repeat analyses of the same channel do
// not burn quota. Failures here abort the whole analysis: partial channel
// stats are never acceptable.
func (a *ChannelAnalyser) GetChannelStatistics(ctx context.Context, channelID string) (*domain.ChannelStats, error) {
	cacheKey := "youtube:channel_stats:" + channelID
	if a.cache != nil {
		var cached domain.ChannelStats
		if found, err := a.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			a.logger.Debug("Channel stats cache hit", zap.String("channel", channelID))
			return &cached, nil
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, constants.FetchConfig.CallTimeout)
	defer cancel()

	resp, err := a.svc.Channels.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(channelID).
		Context(callCtx).Do()
	if err != nil {
		return nil, apperrors.NewUpstreamError(constants.PlatformYouTube, "channels.list", statusOf(err), err)
	}
	if len(resp.Items) == 0 {
		return nil, apperrors.NewUpstreamError(constants.PlatformYouTube, "channels.list", 404,
			fmt.Errorf("channel not found: %s", channelID))
	}

	item := resp.Items[0]
	stats := &domain.ChannelStats{
		ChannelID: channelID,
		FetchedAt: time.Now().UTC(),
	}

	if item.Snippet != nil {
		stats.ChannelName = item.Snippet.Title
		stats.Description = item.Snippet.Description
		stats.CustomURL = item.Snippet.CustomUrl
		stats.Country = item.Snippet.Country
		if published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			stats.PublishedAt = published.UTC()
		}
	}
	if item.Statistics != nil {
		stats.TotalSubscribers = int64(item.Statistics.SubscriberCount)
		stats.TotalViews = int64(item.Statistics.ViewCount)
		stats.TotalVideos = int64(item.Statistics.VideoCount)
		stats.HiddenSubscribers = item.Statistics.HiddenSubscriberCount
	}
	if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
		stats.UploadsPlaylistID = item.ContentDetails.RelatedPlaylists.Uploads
	}

	if a.cache != nil {
		_ = a.cache.Set(ctx, cacheKey, stats, constants.CacheTTL.ChannelStats)
	}

	a.logger.Info("Channel statistics fetched",
		zap.String("channel", stats.ChannelName),
		zap.Int64("subscribers", stats.TotalSubscribers),
		zap.Int64("videos", stats.TotalVideos))

	return stats, nil
}

// ListVideoIDs walks the uploads playlist cursor until it is exhausted or
// maxResults is reached. Pagination errors propagate: an incomplete ID list
// would silently skew every downstream statistic.
func (a *ChannelAnalyser) ListVideoIDs(ctx context.Context, playlistID string, maxResults int) ([]string, error) {
	videoIDs := make([]string, 0, maxResults)
	pageToken := ""

	for len(videoIDs) < maxResults {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		pageSize := int64(maxResults - len(videoIDs))
		if pageSize > constants.FetchConfig.YouTubePageSize {
			pageSize = constants.FetchConfig.YouTubePageSize
		}

		callCtx, cancel := context.WithTimeout(ctx, constants.FetchConfig.CallTimeout)
		call := a.svc.PlaylistItems.List([]string{"contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(pageSize).
			Context(callCtx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		cancel()
		if err != nil {
			return nil, apperrors.NewUpstreamError(constants.PlatformYouTube, "playlistItems.list", statusOf(err), err)
		}

		for _, item := range resp.Items {
			if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
				videoIDs = append(videoIDs, item.ContentDetails.VideoId)
			}
		}

		a.logger.Debug("Video IDs page fetched",
			zap.Int("total", len(videoIDs)))

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return videoIDs, nil
}

// FetchVideoDetails resolves IDs to canonical records in platform-maximum
// batches. Non-public videos are dropped silently, a failing batch is logged
// and skipped whole, and single malformed records are excluded; every drop is
// carried back as a typed skip.
func (a *ChannelAnalyser) FetchVideoDetails(ctx context.Context, videoIDs []string) ([]domain.VideoRecord, []domain.Skip, error) {
	now := time.Now().UTC()
	records := make([]domain.VideoRecord, 0, len(videoIDs))
	var skips []domain.Skip

	batchSize := constants.FetchConfig.YouTubeBatchSize
	totalBatches := (len(videoIDs) + batchSize - 1) / batchSize

	for i := 0; i < len(videoIDs); i += batchSize {
		end := i + batchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		batch := videoIDs[i:end]

		if err := a.limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}

		callCtx, cancel := context.WithTimeout(ctx, constants.FetchConfig.CallTimeout)
		resp, err := a.svc.Videos.List([]string{"snippet", "statistics", "contentDetails", "status"}).
			Id(batch...).
			Context(callCtx).Do()
		cancel()
		if err != nil {
			// Best-effort sample: the batch's IDs are lost, not retried.
			a.logger.Warn("Video detail batch failed, skipping",
				zap.Int("batch", i/batchSize+1),
				zap.Int("total_batches", totalBatches),
				zap.Int("ids_lost", len(batch)),
				zap.Error(err))
			for _, id := range batch {
				skips = append(skips, domain.Skip{
					ID:     id,
					Reason: domain.SkipBatchFailed,
					Detail: err.Error(),
				})
			}
			continue
		}

		for _, item := range resp.Items {
			if item.Status == nil || item.Status.PrivacyStatus != "public" {
				skips = append(skips, domain.Skip{ID: item.Id, Reason: domain.SkipNonPublic})
				continue
			}

			record, recordSkips, ok := NormalizeVideo(item, now)
			skips = append(skips, recordSkips...)
			if !ok {
				continue
			}
			records = append(records, record)
		}

		a.logger.Debug("Video detail batch complete",
			zap.Int("batch", i/batchSize+1),
			zap.Int("total_batches", totalBatches),
			zap.Int("records", len(records)))
	}

	return domain.FinalizeVideoDataset(records, now), skips, nil
}

func statusOf(err error) int {
	if apiErr, ok := err.(*googleapi.Error); ok {
		return apiErr.Code
	}
	return 0
}
