package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kapu/creator-pulse-go/internal/constants"
	"github.com/kapu/creator-pulse-go/internal/domain"
	"github.com/kapu/creator-pulse-go/internal/service/cache"
	apperrors "github.com/kapu/creator-pulse-go/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var redditURLPattern = regexp.MustCompile(`/(r|u|user)/([^/?&]+)`)

// Analyser drives the Reddit side of the pipeline: community/user stats,
// cursor-paged listings, canonical post and comment records. Same sequential
// shape as the YouTube analyser, with Reddit-specific field mapping and
// engagement formulas.
type Analyser struct {
	client  *Client
	cache   *cache.CacheService // optional
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewAnalyser(client *Client, cacheSvc *cache.CacheService, logger *zap.Logger) *Analyser {
	return &Analyser{
		client:  client,
		cache:   cacheSvc,
		limiter: rate.NewLimiter(rate.Every(constants.FetchConfig.InterPageInterval), 1),
		logger:  logger,
	}
}

// CleanIdentifier strips URL decoration and r/ or u/ prefixes:
// "python", "r/python" and "https://reddit.com/r/python" all yield "python".
func CleanIdentifier(identifier, prefix string) string {
	identifier = strings.TrimSpace(identifier)

	if strings.Contains(identifier, "reddit.com") {
		if match := redditURLPattern.FindStringSubmatch(identifier); match != nil {
			identifier = match[2]
		}
	}

	identifier = strings.TrimPrefix(identifier, prefix)
	return strings.TrimSpace(identifier)
}

// GetCommunityStats fetches the subreddit's about record. Failures abort the
// analysis; a community with no resolvable about data has nothing to
// normalize engagement against.
func (a *Analyser) GetCommunityStats(ctx context.Context, name string) (*domain.CommunityStats, error) {
	cacheKey := "reddit:about:" + strings.ToLower(name)
	if a.cache != nil {
		var cached domain.CommunityStats
		if found, err := a.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			a.logger.Debug("Community stats cache hit", zap.String("subreddit", name))
			return &cached, nil
		}
	}

	var envelope thing
	if err := a.client.getJSON(ctx, fmt.Sprintf("/r/%s/about", name), nil, &envelope); err != nil {
		return nil, err
	}

	var about aboutSubreddit
	if err := json.Unmarshal(envelope.Data, &about); err != nil {
		return nil, apperrors.NewUpstreamError(constants.PlatformReddit, "about", 0, err)
	}
	if about.DisplayName == "" {
		return nil, apperrors.NewResolutionError("r/"+name, nil)
	}

	members := about.Subscribers
	if members <= 0 {
		members = 1 // downstream engagement denominators must stay positive
	}

	stats := &domain.CommunityStats{
		Name:        about.DisplayName,
		Title:       about.Title,
		Description: truncateRunes(about.PublicDescription, 200),
		Members:     members,
		ActiveUsers: about.AccountsActive,
		CreatedUTC:  time.Unix(int64(about.CreatedUTC), 0).UTC(),
		NSFW:        about.Over18,
		URL:         fmt.Sprintf("https://www.reddit.com/r/%s/", about.DisplayName),
		FetchedAt:   time.Now().UTC(),
	}

	if a.cache != nil {
		_ = a.cache.Set(ctx, cacheKey, stats, constants.CacheTTL.CommunityAbout)
	}

	return stats, nil
}

func (a *Analyser) GetUserStats(ctx context.Context, username string) (*domain.UserStats, error) {
	var envelope thing
	if err := a.client.getJSON(ctx, fmt.Sprintf("/user/%s/about", username), nil, &envelope); err != nil {
		return nil, err
	}

	var about aboutUser
	if err := json.Unmarshal(envelope.Data, &about); err != nil {
		return nil, apperrors.NewUpstreamError(constants.PlatformReddit, "user about", 0, err)
	}
	if about.Name == "" {
		return nil, apperrors.NewResolutionError("u/"+username, nil)
	}

	return &domain.UserStats{
		Username:         about.Name,
		CreatedUTC:       time.Unix(int64(about.CreatedUTC), 0).UTC(),
		LinkKarma:        about.LinkKarma,
		CommentKarma:     about.CommentKarma,
		TotalKarma:       about.LinkKarma + about.CommentKarma,
		IsEmployee:       about.IsEmployee,
		IsGold:           about.IsGold,
		IsMod:            about.IsMod,
		HasVerifiedEmail: about.HasVerifiedEmail,
		FetchedAt:        time.Now().UTC(),
	}, nil
}

// FetchSubredditPosts pages the hot listing up to limit. Listing-page errors
// propagate; single malformed children become typed skips.
func (a *Analyser) FetchSubredditPosts(ctx context.Context, name string, limit int, members int64) ([]domain.PostRecord, []domain.Skip, error) {
	children, err := a.fetchListing(ctx, fmt.Sprintf("/r/%s/hot", name), nil, limit)
	if err != nil {
		return nil, nil, err
	}

	posts := make([]domain.PostRecord, 0, len(children))
	var skips []domain.Skip
	for _, child := range children {
		raw, skip := decodePost(child)
		if skip != nil {
			skips = append(skips, *skip)
			continue
		}
		record, skip2, ok := normalizeSubredditPost(raw, members)
		if !ok {
			skips = append(skips, *skip2)
			continue
		}
		posts = append(posts, record)
	}

	a.logger.Info("Subreddit posts fetched",
		zap.String("subreddit", name),
		zap.Int("posts", len(posts)),
		zap.Int("skipped", len(skips)))

	return posts, skips, nil
}

// FetchUserPosts pages the user's newest submissions.
func (a *Analyser) FetchUserPosts(ctx context.Context, username string, limit int) ([]domain.PostRecord, []domain.Skip, error) {
	params := url.Values{"sort": {"new"}}
	children, err := a.fetchListing(ctx, fmt.Sprintf("/user/%s/submitted", username), params, limit)
	if err != nil {
		return nil, nil, err
	}

	posts := make([]domain.PostRecord, 0, len(children))
	var skips []domain.Skip
	for _, child := range children {
		raw, skip := decodePost(child)
		if skip != nil {
			skips = append(skips, *skip)
			continue
		}
		record, skip2, ok := normalizeUserPost(raw)
		if !ok {
			skips = append(skips, *skip2)
			continue
		}
		posts = append(posts, record)
	}

	return posts, skips, nil
}

// FetchUserComments pages the user's newest comments.
func (a *Analyser) FetchUserComments(ctx context.Context, username string, limit int) ([]domain.CommentRecord, []domain.Skip, error) {
	params := url.Values{"sort": {"new"}}
	children, err := a.fetchListing(ctx, fmt.Sprintf("/user/%s/comments", username), params, limit)
	if err != nil {
		return nil, nil, err
	}

	comments := make([]domain.CommentRecord, 0, len(children))
	var skips []domain.Skip
	for _, child := range children {
		if child.Kind != "t1" {
			skips = append(skips, domain.Skip{Reason: domain.SkipMalformedRecord, Detail: "unexpected kind " + child.Kind})
			continue
		}
		var raw rawComment
		if err := json.Unmarshal(child.Data, &raw); err != nil {
			skips = append(skips, domain.Skip{Reason: domain.SkipMalformedRecord, Detail: err.Error()})
			continue
		}
		record, skip, ok := normalizeComment(&raw)
		if !ok {
			skips = append(skips, *skip)
			continue
		}
		comments = append(comments, record)
	}

	return comments, skips, nil
}

// fetchListing walks the after-cursor until exhausted or limit is reached,
// pacing pages with the shared limiter.
func (a *Analyser) fetchListing(ctx context.Context, path string, extra url.Values, limit int) ([]thing, error) {
	var children []thing
	after := ""

	for len(children) < limit {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		pageSize := limit - len(children)
		if pageSize > constants.FetchConfig.RedditPageSize {
			pageSize = constants.FetchConfig.RedditPageSize
		}

		params := url.Values{}
		for key, values := range extra {
			params[key] = values
		}
		params.Set("limit", strconv.Itoa(pageSize))
		params.Set("raw_json", "1")
		if after != "" {
			params.Set("after", after)
		}

		var page listing
		if err := a.client.getJSON(ctx, path, params, &page); err != nil {
			return nil, err
		}

		children = append(children, page.Data.Children...)

		after = page.Data.After
		if after == "" || len(page.Data.Children) == 0 {
			break
		}
	}

	if len(children) > limit {
		children = children[:limit]
	}
	return children, nil
}

func decodePost(child thing) (*rawPost, *domain.Skip) {
	if child.Kind != "t3" {
		return nil, &domain.Skip{Reason: domain.SkipMalformedRecord, Detail: "unexpected kind " + child.Kind}
	}
	var raw rawPost
	if err := json.Unmarshal(child.Data, &raw); err != nil {
		return nil, &domain.Skip{Reason: domain.SkipMalformedRecord, Detail: err.Error()}
	}
	return &raw, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}
