package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kapu/creator-pulse-go/internal/adapter"
	"github.com/kapu/creator-pulse-go/internal/app"
	"github.com/kapu/creator-pulse-go/internal/config"
	"github.com/kapu/creator-pulse-go/internal/constants"
	"github.com/kapu/creator-pulse-go/internal/service/reddit"
	"github.com/kapu/creator-pulse-go/internal/util"
	"go.uber.org/zap"
)

func main() {
	platform := flag.String("platform", "youtube", "platform to analyze: youtube or reddit")
	target := flag.String("target", "", "channel identifier (handle/URL/ID) or subreddit/user name")
	targetType := flag.String("type", "subreddit", "reddit target type: subreddit or user")
	maxVideos := flag.Int("max", 0, "maximum videos to fetch (YouTube, default from config)")
	postLimit := flag.Int("limit", 0, "post limit (Reddit, default from config)")
	flag.Parse()

	if *target == "" {
		fmt.Fprintln(os.Stderr, "usage: analyzer -platform youtube|reddit -target <identifier> [-type subreddit|user] [-max N] [-limit N]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch *platform {
	case constants.PlatformYouTube:
		err = cfg.ValidateYouTube()
	case constants.PlatformReddit:
		err = cfg.ValidateReddit()
	default:
		err = fmt.Errorf("unknown platform %q", *platform)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	container, err := app.Build(ctx, cfg, logger, app.BuildOptions{})
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		os.Exit(1)
	}
	defer container.Close()

	formatter := adapter.NewReportFormatter()

	var report string
	switch *platform {
	case constants.PlatformYouTube:
		max := *maxVideos
		if max <= 0 {
			max = cfg.YouTube.MaxVideos
		}
		result, runErr := container.Analyzer.AnalyzeYouTubeChannel(ctx, *target, max)
		if runErr != nil {
			// A failed run leaves nothing behind: no partial dataset is shown.
			fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", runErr)
			os.Exit(1)
		}
		report = formatter.FormatChannelReport(result,
			container.Quota.UsageStats(ctx, constants.PlatformYouTube))

	case constants.PlatformReddit:
		limit := *postLimit
		if limit <= 0 {
			limit = cfg.Reddit.PostLimit
		}
		if *targetType == "user" {
			name := reddit.CleanIdentifier(*target, "u/")
			result, runErr := container.Analyzer.AnalyzeRedditUser(ctx, name, limit)
			if runErr != nil {
				fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", runErr)
				os.Exit(1)
			}
			report = formatter.FormatUserReport(result,
				container.Quota.UsageStats(ctx, constants.PlatformReddit))
		} else {
			name := reddit.CleanIdentifier(*target, "r/")
			result, runErr := container.Analyzer.AnalyzeSubreddit(ctx, name, limit)
			if runErr != nil {
				fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", runErr)
				os.Exit(1)
			}
			report = formatter.FormatCommunityReport(result,
				container.Quota.UsageStats(ctx, constants.PlatformReddit))
		}
	}

	fmt.Println(report)
}
