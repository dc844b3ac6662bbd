package engagement

import (
	"github.com/kapu/creator-pulse-go/internal/domain"
	"github.com/kapu/creator-pulse-go/internal/util"
)

// SubredditPostEngagementRate normalizes one post's interactions against the
// community's audience size: (score + comments) / members * 100.
func SubredditPostEngagementRate(score, comments, members int64) float64 {
	if members <= 0 {
		members = 1
	}
	return float64(score+comments) / float64(members) * 100
}

// SubredditTotalEngagementRate aggregates the whole fetched dataset against
// the member count: (sum(score) + sum(comments)) / members * 100.
func SubredditTotalEngagementRate(totalScore, totalComments, members int64) float64 {
	return SubredditPostEngagementRate(totalScore, totalComments, members)
}

// UserPostEngagementRate uses a score-denominated formula because a user
// profile has no audience size: (comments + awards) / max(score, 1) * 100.
// It is NOT comparable with the subreddit rates above and must never be
// averaged with them.
func UserPostEngagementRate(comments, awards, score int64) float64 {
	denom := score
	if denom < 1 {
		denom = 1
	}
	return float64(comments+awards) / float64(denom) * 100
}

// CommunityStats aggregates a subreddit post dataset.
func CommunityStats(posts []domain.PostRecord, members int64) domain.CommunityEngagement {
	if len(posts) == 0 {
		return domain.CommunityEngagement{}
	}

	var stats domain.CommunityEngagement
	var ratioSum float64
	for _, p := range posts {
		stats.TotalUpvotes += p.Upvotes
		stats.TotalComments += p.NumComments
		stats.TotalAwards += p.NumAwards
		ratioSum += p.UpvoteRatio
		if p.EngagementRate > stats.MaxEngagementRate {
			stats.MaxEngagementRate = p.EngagementRate
		}
		stats.AvgEngagementRate += p.EngagementRate
	}

	n := float64(len(posts))
	stats.PostsFetched = len(posts)
	stats.AvgUpvotes = util.Round(float64(stats.TotalUpvotes)/n, 1)
	stats.AvgComments = util.Round(float64(stats.TotalComments)/n, 1)
	stats.AvgEngagementRate = util.Round(stats.AvgEngagementRate/n, 2)
	stats.MaxEngagementRate = util.Round(stats.MaxEngagementRate, 2)
	stats.AvgUpvoteRatio = util.Round(ratioSum/n*100, 1)

	if members <= 0 {
		members = 1
	}
	stats.TotalEngagementRate = util.Round(
		SubredditTotalEngagementRate(stats.TotalUpvotes, stats.TotalComments, members), 2)
	stats.CommentRate = util.Round(float64(stats.TotalComments)/float64(members)*100, 2)

	return stats
}

// UserStats aggregates a user's posts and comments.
func UserStats(posts []domain.PostRecord, comments []domain.CommentRecord) domain.UserEngagement {
	var stats domain.UserEngagement

	if len(posts) > 0 {
		var engagementSum float64
		for _, p := range posts {
			stats.TotalPostUpvotes += p.Upvotes
			stats.TotalPostComments += p.NumComments
			engagementSum += p.EngagementRate
		}
		n := float64(len(posts))
		stats.AvgPostUpvotes = util.Round(float64(stats.TotalPostUpvotes)/n, 1)
		stats.AvgPostEngagement = util.Round(engagementSum/n, 2)
	}

	if len(comments) > 0 {
		for _, c := range comments {
			stats.TotalCommentUpvotes += c.Upvotes
		}
		stats.AvgCommentUpvotes = util.Round(float64(stats.TotalCommentUpvotes)/float64(len(comments)), 1)
	}

	return stats
}
