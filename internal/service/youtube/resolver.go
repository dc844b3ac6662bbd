package youtube

import (
	"context"
	"regexp"
	"strings"

	"github.com/kapu/creator-pulse-go/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/youtube/v3"
)

const (
	channelIDPrefix = "UC"
	channelIDLength = 24
)

// urlPatterns is ordered: specific path shapes before the bare-path catchall.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/channel/([^/?&]+)`),
	regexp.MustCompile(`youtube\.com/c/([^/?&]+)`),
	regexp.MustCompile(`youtube\.com/user/([^/?&]+)`),
	regexp.MustCompile(`youtube\.com/@([^/?&]+)`),
	regexp.MustCompile(`youtube\.com/([^/?&]+)`),
}

// Resolver maps messy user input (raw ID, @handle, URL, channel name) onto a
// canonical channel ID. Cheap pattern matching runs first, then an
// authoritative handle lookup, then a search fallback that prefers an exact
// title match over the first result.
type Resolver struct {
	svc    *youtube.Service
	logger *zap.Logger
}

func NewResolver(svc *youtube.Service, logger *zap.Logger) *Resolver {
	return &Resolver{svc: svc, logger: logger}
}

// IsChannelID reports whether the string is already a canonical channel ID.
func IsChannelID(s string) bool {
	return strings.HasPrefix(s, channelIDPrefix) && len(s) == channelIDLength
}

func (r *Resolver) Resolve(ctx context.Context, identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)

	// Raw channel ID needs no network round trip.
	if IsChannelID(identifier) {
		return identifier, nil
	}

	if handle, ok := strings.CutPrefix(identifier, "@"); ok {
		if id, ok := r.lookupHandle(ctx, handle); ok {
			return id, nil
		}
		if id, ok := r.searchChannel(ctx, handle); ok {
			return id, nil
		}
		return "", errors.NewResolutionError(identifier, nil)
	}

	for _, pattern := range urlPatterns {
		match := pattern.FindStringSubmatch(identifier)
		if match == nil {
			continue
		}
		captured := match[1]

		if IsChannelID(captured) {
			return captured, nil
		}
		if id, ok := r.lookupHandle(ctx, captured); ok {
			return id, nil
		}
		if id, ok := r.searchChannel(ctx, captured); ok {
			return id, nil
		}
	}

	// Last resort: treat the raw string as a search query.
	if id, ok := r.searchChannel(ctx, identifier); ok {
		return id, nil
	}

	return "", errors.NewResolutionError(identifier, nil)
}

func (r *Resolver) lookupHandle(ctx context.Context, handle string) (string, bool) {
	resp, err := r.svc.Channels.List([]string{"id"}).
		ForHandle(handle).
		Context(ctx).Do()
	if err != nil {
		r.logger.Debug("Handle lookup failed, falling back to search",
			zap.String("handle", handle),
			zap.Error(err))
		return "", false
	}
	if len(resp.Items) == 0 {
		return "", false
	}
	return resp.Items[0].Id, true
}

// searchChannel prefers an exact case-insensitive title match (ignoring
// spaces, since URL segments drop them), else takes the first result.
func (r *Resolver) searchChannel(ctx context.Context, query string) (string, bool) {
	resp, err := r.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(5).
		Context(ctx).Do()
	if err != nil {
		r.logger.Debug("Channel search failed",
			zap.String("query", query),
			zap.Error(err))
		return "", false
	}

	want := normalizeTitle(query)
	for _, item := range resp.Items {
		if item.Snippet != nil && normalizeTitle(item.Snippet.ChannelTitle) == want {
			return item.Snippet.ChannelId, true
		}
	}

	if len(resp.Items) > 0 && resp.Items[0].Snippet != nil {
		return resp.Items[0].Snippet.ChannelId, true
	}
	return "", false
}

func normalizeTitle(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}
