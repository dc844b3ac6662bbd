package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/kapu/creator-pulse-go/internal/constants"
	"github.com/kapu/creator-pulse-go/internal/domain"
	"github.com/kapu/creator-pulse-go/internal/service/engagement"
	"github.com/kapu/creator-pulse-go/internal/service/history"
	apperrors "github.com/kapu/creator-pulse-go/pkg/errors"
	"go.uber.org/zap"
)

const trendDays = 7

// ChannelSource is the YouTube acquisition surface the orchestrator needs.
type ChannelSource interface {
	Resolve(ctx context.Context, identifier string) (string, error)
	GetChannelStatistics(ctx context.Context, channelID string) (*domain.ChannelStats, error)
	ListVideoIDs(ctx context.Context, playlistID string, maxResults int) ([]string, error)
	FetchVideoDetails(ctx context.Context, videoIDs []string) ([]domain.VideoRecord, []domain.Skip, error)
}

// CommunitySource is the Reddit acquisition surface.
type CommunitySource interface {
	GetCommunityStats(ctx context.Context, name string) (*domain.CommunityStats, error)
	GetUserStats(ctx context.Context, username string) (*domain.UserStats, error)
	FetchSubredditPosts(ctx context.Context, name string, limit int, members int64) ([]domain.PostRecord, []domain.Skip, error)
	FetchUserPosts(ctx context.Context, username string, limit int) ([]domain.PostRecord, []domain.Skip, error)
	FetchUserComments(ctx context.Context, username string, limit int) ([]domain.CommentRecord, []domain.Skip, error)
}

// QuotaGate guards each user-initiated analysis against the daily budget.
type QuotaGate interface {
	CanMakeRequest(ctx context.Context, platform string) bool
	IncrementUsage(ctx context.Context, platform string)
	Exceeded(ctx context.Context, platform string) *apperrors.QuotaExceededError
}

// Analyzer runs one sequential pipeline per request: quota gate -> resolve ->
// stats -> paginated listing -> detail batches -> normalize -> aggregate.
// Fatal errors return (nil, error); no partial result ever escapes a failed
// run.
type Analyzer struct {
	quota     QuotaGate
	youtube   ChannelSource
	reddit    CommunitySource
	history   *history.Repository // optional
	sentiment SentimentProvider
	exporter  ReportExporter
	logger    *zap.Logger
}

type Dependencies struct {
	Quota     QuotaGate
	YouTube   ChannelSource
	Reddit    CommunitySource
	History   *history.Repository
	Sentiment SentimentProvider
	Exporter  ReportExporter
	Logger    *zap.Logger
}

func NewAnalyzer(deps Dependencies) (*Analyzer, error) {
	if deps.Quota == nil {
		return nil, fmt.Errorf("quota gate is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Sentiment == nil {
		deps.Sentiment = NoopSentimentProvider{}
	}
	if deps.Exporter == nil {
		deps.Exporter = NoopReportExporter{}
	}

	return &Analyzer{
		quota:     deps.Quota,
		youtube:   deps.YouTube,
		reddit:    deps.Reddit,
		history:   deps.History,
		sentiment: deps.Sentiment,
		exporter:  deps.Exporter,
		logger:    deps.Logger,
	}, nil
}

// AnalyzeYouTubeChannel runs the full YouTube pipeline for one identifier.
func (a *Analyzer) AnalyzeYouTubeChannel(ctx context.Context, identifier string, maxVideos int) (*domain.ChannelAnalysis, error) {
	if a.youtube == nil {
		return nil, fmt.Errorf("YouTube analyser is not configured")
	}
	if maxVideos <= 0 {
		maxVideos = constants.FetchConfig.MaxVideosDefault
	}

	if !a.quota.CanMakeRequest(ctx, constants.PlatformYouTube) {
		return nil, a.quota.Exceeded(ctx, constants.PlatformYouTube)
	}

	channelID, err := a.youtube.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Channel resolved",
		zap.String("identifier", identifier),
		zap.String("channel_id", channelID))

	stats, err := a.youtube.GetChannelStatistics(ctx, channelID)
	if err != nil {
		return nil, err
	}
	a.quota.IncrementUsage(ctx, constants.PlatformYouTube)

	fetchLimit := maxVideos
	if stats.TotalVideos > 0 && int64(fetchLimit) > stats.TotalVideos {
		fetchLimit = int(stats.TotalVideos)
	}

	videoIDs, err := a.youtube.ListVideoIDs(ctx, stats.UploadsPlaylistID, fetchLimit)
	if err != nil {
		return nil, err
	}
	if len(videoIDs) == 0 {
		return nil, apperrors.NewUpstreamError(constants.PlatformYouTube, "playlistItems.list", 404,
			fmt.Errorf("no videos found for channel %s", channelID))
	}

	videos, skips, err := a.youtube.FetchVideoDetails(ctx, videoIDs)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, apperrors.NewUpstreamError(constants.PlatformYouTube, "videos.list", 0,
			fmt.Errorf("could not fetch details for any of %d videos", len(videoIDs)))
	}

	now := time.Now().UTC()
	calc := engagement.NewCalculator(videos, now)

	var fetchedViews int64
	for _, v := range videos {
		fetchedViews += v.ViewCount
	}
	coverage := ValidateCoverage(len(videos), stats.TotalVideos, fetchedViews, stats.TotalViews)
	if coverage.Partial {
		a.logger.Warn("Partial coverage: results cover a subset of the channel",
			zap.Int("fetched", coverage.FetchedCount),
			zap.Int64("platform_total", coverage.PlatformTotal),
			zap.Float64("percentage", coverage.CountPercentage))
	}

	result := &domain.ChannelAnalysis{
		Stats:      *stats,
		Videos:     videos,
		Overall:    calc.Overall(),
		Comparison: calc.Comparison(),
		Trend:      calc.Trend(trendDays),
		Schedule:   calc.UploadSchedule(),
		Coverage:   coverage,
		Skips:      skips,
		AnalyzedAt: now,
	}

	result.Sentiment = a.summarizeSentiment(ctx, videoTitles(videos))
	result.History = a.recordChannelHistory(ctx, stats, now)

	if err := a.exporter.ExportChannel(ctx, result); err != nil {
		a.logger.Warn("Report export failed", zap.Error(err))
	}

	return result, nil
}

// AnalyzeSubreddit runs the Reddit community pipeline.
func (a *Analyzer) AnalyzeSubreddit(ctx context.Context, identifier string, limit int) (*domain.CommunityAnalysis, error) {
	if a.reddit == nil {
		return nil, fmt.Errorf("Reddit analyser is not configured")
	}
	limit = clampPostLimit(limit)

	if !a.quota.CanMakeRequest(ctx, constants.PlatformReddit) {
		return nil, a.quota.Exceeded(ctx, constants.PlatformReddit)
	}

	stats, err := a.reddit.GetCommunityStats(ctx, identifier)
	if err != nil {
		return nil, err
	}
	a.quota.IncrementUsage(ctx, constants.PlatformReddit)

	posts, skips, err := a.reddit.FetchSubredditPosts(ctx, stats.Name, limit, stats.Members)
	if err != nil {
		return nil, err
	}

	// Reddit reports no total post count, so coverage is measured against
	// the requested sample size. Views have no counterpart.
	coverage := ValidateCoverage(len(posts), int64(limit), 0, 0)
	if coverage.Partial {
		a.logger.Warn("Partial coverage: fewer posts than requested",
			zap.Int("fetched", len(posts)),
			zap.Int("requested", limit))
	}

	result := &domain.CommunityAnalysis{
		Stats:      *stats,
		Posts:      posts,
		Engagement: engagement.CommunityStats(posts, stats.Members),
		Coverage:   coverage,
		Skips:      skips,
		AnalyzedAt: time.Now().UTC(),
	}

	result.Sentiment = a.summarizeSentiment(ctx, postTitles(posts))

	if a.history != nil {
		if err := a.history.RecordChannelSnapshot(ctx, constants.PlatformReddit, stats.Name, stats.Title,
			stats.Members, 0, int64(len(posts)), result.AnalyzedAt); err != nil {
			a.logger.Warn("History snapshot failed", zap.Error(err))
		}
	}

	if err := a.exporter.ExportCommunity(ctx, result); err != nil {
		a.logger.Warn("Report export failed", zap.Error(err))
	}

	return result, nil
}

// AnalyzeRedditUser runs the Reddit user pipeline. User engagement uses the
// score-denominated formula and is never merged with community rates.
func (a *Analyzer) AnalyzeRedditUser(ctx context.Context, identifier string, limit int) (*domain.UserAnalysis, error) {
	if a.reddit == nil {
		return nil, fmt.Errorf("Reddit analyser is not configured")
	}
	limit = clampPostLimit(limit)

	if !a.quota.CanMakeRequest(ctx, constants.PlatformReddit) {
		return nil, a.quota.Exceeded(ctx, constants.PlatformReddit)
	}

	stats, err := a.reddit.GetUserStats(ctx, identifier)
	if err != nil {
		return nil, err
	}
	a.quota.IncrementUsage(ctx, constants.PlatformReddit)

	posts, postSkips, err := a.reddit.FetchUserPosts(ctx, stats.Username, limit)
	if err != nil {
		return nil, err
	}
	comments, commentSkips, err := a.reddit.FetchUserComments(ctx, stats.Username, limit)
	if err != nil {
		return nil, err
	}

	return &domain.UserAnalysis{
		Stats:      *stats,
		Posts:      posts,
		Comments:   comments,
		Engagement: engagement.UserStats(posts, comments),
		Skips:      append(postSkips, commentSkips...),
		AnalyzedAt: time.Now().UTC(),
	}, nil
}

func (a *Analyzer) summarizeSentiment(ctx context.Context, texts []string) *domain.SentimentSummary {
	summary, err := a.sentiment.Summarize(ctx, texts)
	if err != nil {
		a.logger.Warn("Sentiment provider failed", zap.Error(err))
		return nil
	}
	return summary
}

func (a *Analyzer) recordChannelHistory(ctx context.Context, stats *domain.ChannelStats, now time.Time) *domain.HistoryDelta {
	if a.history == nil {
		return nil
	}

	delta, err := a.history.DeltaSince(ctx, constants.PlatformYouTube, stats.ChannelID,
		stats.TotalSubscribers, stats.TotalViews, stats.TotalVideos, now)
	if err != nil {
		a.logger.Warn("History delta lookup failed", zap.Error(err))
		delta = nil
	}

	if err := a.history.RecordChannelSnapshot(ctx, constants.PlatformYouTube, stats.ChannelID,
		stats.ChannelName, stats.TotalSubscribers, stats.TotalViews, stats.TotalVideos, now); err != nil {
		a.logger.Warn("History snapshot failed", zap.Error(err))
	}

	return delta
}

func clampPostLimit(limit int) int {
	if limit <= 0 {
		return constants.FetchConfig.PostLimitDefault
	}
	if limit < constants.FetchConfig.PostLimitMin {
		return constants.FetchConfig.PostLimitMin
	}
	if limit > constants.FetchConfig.PostLimitMax {
		return constants.FetchConfig.PostLimitMax
	}
	return limit
}

func videoTitles(videos []domain.VideoRecord) []string {
	titles := make([]string, 0, len(videos))
	for _, v := range videos {
		titles = append(titles, v.Title)
	}
	return titles
}

func postTitles(posts []domain.PostRecord) []string {
	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	return titles
}
