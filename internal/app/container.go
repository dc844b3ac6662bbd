package app

import (
	"context"
	"fmt"

	"github.com/kapu/creator-pulse-go/internal/config"
	"github.com/kapu/creator-pulse-go/internal/quota"
	"github.com/kapu/creator-pulse-go/internal/service/analysis"
	"github.com/kapu/creator-pulse-go/internal/service/cache"
	"github.com/kapu/creator-pulse-go/internal/service/database"
	"github.com/kapu/creator-pulse-go/internal/service/history"
	"github.com/kapu/creator-pulse-go/internal/service/reddit"
	"github.com/kapu/creator-pulse-go/internal/service/youtube"
	"go.uber.org/zap"
)

// Container bundles the assembled services for one process. Optional
// infrastructure (Redis, Postgres) is only dialed when enabled, so a bare
// deployment needs nothing but API credentials.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Quota    *quota.Tracker
	Analyzer *analysis.Analyzer

	closers []func()
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// BuildOptions lets the composition root inject the optional collaborators.
type BuildOptions struct {
	Sentiment analysis.SentimentProvider
	Exporter  analysis.ReportExporter
}

// Build assembles the dependency graph. Heavy-weight initialization happens
// here so the analyzer itself stays orchestration only.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts BuildOptions) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	var cacheSvc *cache.CacheService
	if cfg.Redis.Enabled {
		cacheSvc, err = cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", err)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
	}

	var store quota.Store
	if cfg.Quota.Backend == "redis" {
		store = quota.NewRedisStore(cacheSvc.GetRedisClient())
	} else {
		store = quota.NewFileStore(cfg.Quota.FilePath)
	}
	tracker := quota.NewTracker(store, quota.Limits{
		YouTubeDaily: cfg.Quota.YouTubeDailyLimit,
		RedditDaily:  cfg.Quota.RedditDailyLimit,
	}, logger)

	var historyRepo *history.Repository
	if cfg.Postgres.Enabled {
		postgresSvc, pgErr := database.NewPostgresService(database.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
		}, logger)
		if pgErr != nil {
			return nil, fmt.Errorf("failed to create postgres service: %w", pgErr)
		}
		closers = append(closers, func() {
			_ = postgresSvc.Close()
		})

		historyRepo = history.NewRepository(postgresSvc, logger)
		if err = historyRepo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
	}

	var channelSource analysis.ChannelSource
	if cfg.YouTube.APIKey != "" {
		ytAnalyser, ytErr := youtube.NewChannelAnalyser(cfg.YouTube.APIKey, cacheSvc, logger)
		if ytErr != nil {
			return nil, ytErr
		}
		channelSource = ytAnalyser
	}

	var communitySource analysis.CommunitySource
	if cfg.Reddit.ClientID != "" && cfg.Reddit.ClientSecret != "" {
		redditClient, rErr := reddit.NewClient(reddit.ClientConfig{
			ClientID:     cfg.Reddit.ClientID,
			ClientSecret: cfg.Reddit.ClientSecret,
			UserAgent:    cfg.Reddit.UserAgent,
		}, logger)
		if rErr != nil {
			return nil, rErr
		}
		communitySource = reddit.NewAnalyser(redditClient, cacheSvc, logger)
	}

	analyzer, err := analysis.NewAnalyzer(analysis.Dependencies{
		Quota:     tracker,
		YouTube:   channelSource,
		Reddit:    communitySource,
		History:   historyRepo,
		Sentiment: opts.Sentiment,
		Exporter:  opts.Exporter,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Quota:    tracker,
		Analyzer: analyzer,
		closers:  closers,
	}, nil
}
