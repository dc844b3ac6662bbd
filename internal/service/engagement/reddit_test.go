package engagement

import (
	"testing"

	"github.com/kapu/creator-pulse-go/internal/domain"
)

func TestSubredditPostEngagementRate(t *testing.T) {
	tests := []struct {
		name     string
		score    int64
		comments int64
		members  int64
		want     float64
	}{
		{"typical", 500, 100, 10000, 6.0},
		{"zero members clamps to one", 3, 2, 0, 500.0},
		{"negative members clamps to one", 1, 0, -5, 100.0},
		{"quiet post", 0, 0, 10000, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubredditPostEngagementRate(tt.score, tt.comments, tt.members)
			if !almostEqual(got, tt.want) {
				t.Errorf("SubredditPostEngagementRate(%d, %d, %d) = %v, want %v",
					tt.score, tt.comments, tt.members, got, tt.want)
			}
		})
	}
}

func TestUserPostEngagementRate(t *testing.T) {
	tests := []struct {
		name     string
		comments int64
		awards   int64
		score    int64
		want     float64
	}{
		{"typical", 50, 2, 200, 26.0},
		{"zero score clamps to one", 3, 0, 0, 300.0},
		{"downvoted clamps to one", 2, 0, -10, 200.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UserPostEngagementRate(tt.comments, tt.awards, tt.score)
			if !almostEqual(got, tt.want) {
				t.Errorf("UserPostEngagementRate(%d, %d, %d) = %v, want %v",
					tt.comments, tt.awards, tt.score, got, tt.want)
			}
		})
	}
}

func TestCommunityStatsAggregation(t *testing.T) {
	posts := []domain.PostRecord{
		{Upvotes: 100, NumComments: 20, UpvoteRatio: 0.9, EngagementRate: 1.2},
		{Upvotes: 300, NumComments: 60, UpvoteRatio: 0.8, EngagementRate: 3.6},
	}

	stats := CommunityStats(posts, 10000)

	if stats.PostsFetched != 2 {
		t.Fatalf("PostsFetched = %d, want 2", stats.PostsFetched)
	}
	if stats.TotalUpvotes != 400 || stats.TotalComments != 80 {
		t.Errorf("totals = %d upvotes, %d comments; want 400, 80", stats.TotalUpvotes, stats.TotalComments)
	}
	// (400 + 80) / 10000 * 100
	if !almostEqual(stats.TotalEngagementRate, 4.8) {
		t.Errorf("TotalEngagementRate = %v, want 4.8", stats.TotalEngagementRate)
	}
	if !almostEqual(stats.CommentRate, 0.8) {
		t.Errorf("CommentRate = %v, want 0.8", stats.CommentRate)
	}
	if !almostEqual(stats.MaxEngagementRate, 3.6) {
		t.Errorf("MaxEngagementRate = %v, want 3.6", stats.MaxEngagementRate)
	}
	if !almostEqual(stats.AvgUpvoteRatio, 85.0) {
		t.Errorf("AvgUpvoteRatio = %v, want 85.0", stats.AvgUpvoteRatio)
	}
}

func TestCommunityStatsEmptyDataset(t *testing.T) {
	stats := CommunityStats(nil, 10000)
	if stats.PostsFetched != 0 || stats.TotalEngagementRate != 0 {
		t.Errorf("empty dataset produced %+v, want zero value", stats)
	}
}

func TestUserStatsAggregation(t *testing.T) {
	posts := []domain.PostRecord{
		{Upvotes: 10, NumComments: 4, EngagementRate: 40.0},
		{Upvotes: 30, NumComments: 2, EngagementRate: 10.0},
	}
	comments := []domain.CommentRecord{
		{Upvotes: 5},
		{Upvotes: 15},
	}

	stats := UserStats(posts, comments)

	if stats.TotalPostUpvotes != 40 || !almostEqual(stats.AvgPostUpvotes, 20.0) {
		t.Errorf("post upvotes = %d (avg %v), want 40 (avg 20)", stats.TotalPostUpvotes, stats.AvgPostUpvotes)
	}
	if !almostEqual(stats.AvgPostEngagement, 25.0) {
		t.Errorf("AvgPostEngagement = %v, want 25.0", stats.AvgPostEngagement)
	}
	if stats.TotalCommentUpvotes != 20 || !almostEqual(stats.AvgCommentUpvotes, 10.0) {
		t.Errorf("comment upvotes = %d (avg %v), want 20 (avg 10)", stats.TotalCommentUpvotes, stats.AvgCommentUpvotes)
	}
}
