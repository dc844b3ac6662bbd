package adapter

import (
	"fmt"
	"strings"

	"github.com/kapu/creator-pulse-go/internal/domain"
	"github.com/kapu/creator-pulse-go/internal/quota"
)

// ReportFormatter renders analysis results as plain-text reports. It consumes
// only the canonical dataset contract; nothing here feeds back into
// acquisition.
type ReportFormatter struct {
	topN int
}

func NewReportFormatter() *ReportFormatter {
	return &ReportFormatter{topN: 10}
}

// FormatNumber renders large counters with K/M suffixes.
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// FormatChange renders a signed percentage delta.
func FormatChange(change float64) string {
	if change > 0 {
		return fmt.Sprintf("+%.1f%%", change)
	}
	return fmt.Sprintf("%.1f%%", change)
}

func (f *ReportFormatter) FormatChannelReport(result *domain.ChannelAnalysis, usage quota.UsageStats) string {
	var sb strings.Builder

	stats := result.Stats
	sb.WriteString(fmt.Sprintf("Channel: %s (%s)\n", stats.ChannelName, stats.ChannelID))
	sb.WriteString(fmt.Sprintf("Subscribers: %s | Total views: %s | Videos: %d\n",
		FormatNumber(stats.TotalSubscribers), FormatNumber(stats.TotalViews), stats.TotalVideos))
	if !stats.PublishedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Created: %s\n", stats.PublishedAt.Format("2006-01-02")))
	}

	sb.WriteString(fmt.Sprintf("\nOverall engagement: %.2f%% over %d videos (%s views)\n",
		result.Overall.EngagementRate, result.Overall.TotalVideos, FormatNumber(result.Overall.TotalViews)))

	cmp := result.Comparison
	sb.WriteString(fmt.Sprintf("Last 30 days: %.2f%% engagement, %s views (%s vs previous 30 days)\n",
		cmp.CurrentPeriod.EngagementRate,
		FormatNumber(cmp.CurrentPeriod.Views),
		FormatChange(cmp.EngagementChange)))

	if result.History != nil && result.History.HasPreviousRecord {
		sb.WriteString(fmt.Sprintf("Since last run (%s): %s subscribers, %s views\n",
			result.History.PreviousAt.Format("2006-01-02"),
			FormatChange(float64(result.History.SubscriberChange)),
			FormatNumber(result.History.ViewChange)))
	}

	sb.WriteString(f.formatCoverage(result.Coverage))
	sb.WriteString(f.formatTopVideos(result.Videos))
	sb.WriteString(formatQuotaBadge("YouTube", usage))

	return sb.String()
}

func (f *ReportFormatter) FormatCommunityReport(result *domain.CommunityAnalysis, usage quota.UsageStats) string {
	var sb strings.Builder

	stats := result.Stats
	sb.WriteString(fmt.Sprintf("Subreddit: r/%s — %s\n", stats.Name, stats.Title))
	sb.WriteString(fmt.Sprintf("Members: %s | Active: %s | Created: %s\n",
		FormatNumber(stats.Members), FormatNumber(stats.ActiveUsers),
		stats.CreatedUTC.Format("2006-01-02")))

	eng := result.Engagement
	sb.WriteString(fmt.Sprintf("\nPosts analyzed: %d\n", eng.PostsFetched))
	sb.WriteString(fmt.Sprintf("Total engagement rate: %.2f%% | Avg per post: %.2f%% | Comment rate: %.2f%%\n",
		eng.TotalEngagementRate, eng.AvgEngagementRate, eng.CommentRate))
	sb.WriteString(fmt.Sprintf("Upvotes: %s (avg %.1f) | Comments: %s (avg %.1f) | Avg upvote ratio: %.1f%%\n",
		FormatNumber(eng.TotalUpvotes), eng.AvgUpvotes,
		FormatNumber(eng.TotalComments), eng.AvgComments, eng.AvgUpvoteRatio))

	sb.WriteString(f.formatCoverage(result.Coverage))
	sb.WriteString(f.formatTopPosts(result.Posts))
	sb.WriteString(formatQuotaBadge("Reddit", usage))

	return sb.String()
}

func (f *ReportFormatter) FormatUserReport(result *domain.UserAnalysis, usage quota.UsageStats) string {
	var sb strings.Builder

	stats := result.Stats
	sb.WriteString(fmt.Sprintf("User: u/%s\n", stats.Username))
	sb.WriteString(fmt.Sprintf("Karma: %s total (%s link, %s comment) | Account created: %s\n",
		FormatNumber(stats.TotalKarma), FormatNumber(stats.LinkKarma),
		FormatNumber(stats.CommentKarma), stats.CreatedUTC.Format("2006-01-02")))

	eng := result.Engagement
	sb.WriteString(fmt.Sprintf("\nPosts analyzed: %d | Comments analyzed: %d\n",
		len(result.Posts), len(result.Comments)))
	sb.WriteString(fmt.Sprintf("Post upvotes: %s (avg %.1f) | Avg post engagement: %.2f%% (score-relative)\n",
		FormatNumber(eng.TotalPostUpvotes), eng.AvgPostUpvotes, eng.AvgPostEngagement))
	sb.WriteString(fmt.Sprintf("Comment upvotes: %s (avg %.1f)\n",
		FormatNumber(eng.TotalCommentUpvotes), eng.AvgCommentUpvotes))

	sb.WriteString(formatQuotaBadge("Reddit", usage))

	return sb.String()
}

func (f *ReportFormatter) formatCoverage(cov domain.Coverage) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\nCoverage: %d/%d items (%.1f%%)",
		cov.FetchedCount, cov.PlatformTotal, cov.CountPercentage))
	if cov.PlatformViews > 0 {
		sb.WriteString(fmt.Sprintf(", %s of %s views (%.1f%%)",
			FormatNumber(cov.FetchedViews), FormatNumber(cov.PlatformViews), cov.ViewsPercentage))
	}
	sb.WriteString("\n")
	if cov.Partial {
		sb.WriteString(fmt.Sprintf("WARNING: partial data — only %d of %d items were retrieved; statistics cover a subset.\n",
			cov.FetchedCount, cov.PlatformTotal))
	}
	return sb.String()
}

func (f *ReportFormatter) formatTopVideos(videos []domain.VideoRecord) string {
	if len(videos) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\nTop videos by views:\n")
	count := 0
	for _, v := range videos {
		if v.ViewRank > f.topN {
			continue
		}
		sb.WriteString(fmt.Sprintf("  #%d %s — %s views, %.2f%% engagement\n",
			v.ViewRank, truncateTitle(v.Title), FormatNumber(v.ViewCount), v.EngagementRate))
		count++
		if count >= f.topN {
			break
		}
	}
	return sb.String()
}

func (f *ReportFormatter) formatTopPosts(posts []domain.PostRecord) string {
	if len(posts) == 0 {
		return ""
	}

	top := make([]domain.PostRecord, len(posts))
	copy(top, posts)
	// simple selection of the highest-upvoted entries
	for i := 0; i < len(top) && i < f.topN; i++ {
		maxIdx := i
		for j := i + 1; j < len(top); j++ {
			if top[j].Upvotes > top[maxIdx].Upvotes {
				maxIdx = j
			}
		}
		top[i], top[maxIdx] = top[maxIdx], top[i]
	}

	var sb strings.Builder
	sb.WriteString("\nTop posts by upvotes:\n")
	for i := 0; i < len(top) && i < f.topN; i++ {
		p := top[i]
		sb.WriteString(fmt.Sprintf("  %s — %s upvotes, %d comments, %.2f%% engagement\n",
			truncateTitle(p.Title), FormatNumber(p.Upvotes), p.NumComments, p.EngagementRate))
	}
	return sb.String()
}

func formatQuotaBadge(platform string, usage quota.UsageStats) string {
	status := "OK"
	switch {
	case usage.Percentage >= 80:
		status = "LOW"
	case usage.Percentage >= 50:
		status = "FAIR"
	}
	return fmt.Sprintf("\nDaily quota (%s): %d/%d used, %d remaining [%s]\n",
		platform, usage.Used, usage.Limit, usage.Remaining, status)
}

func truncateTitle(title string) string {
	const limit = 60
	runes := []rune(title)
	if len(runes) > limit {
		return string(runes[:limit-3]) + "..."
	}
	return title
}
