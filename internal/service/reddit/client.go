package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/kapu/creator-pulse-go/internal/constants"
	apperrors "github.com/kapu/creator-pulse-go/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
)

// Client speaks Reddit's OAuth JSON API with script-app credentials. Token
// acquisition and refresh are handled by the clientcredentials transport;
// transient failures retry with exponential backoff and jitter.
type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	logger     *zap.Logger
}

type ClientConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
}

func NewClient(cfg ClientConfig, logger *zap.Logger) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("Reddit client id and secret are required")
	}
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("Reddit user agent is required")
	}

	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     constants.RedditAPIConfig.TokenURL,
	}

	httpClient := creds.Client(context.Background())
	httpClient.Timeout = constants.FetchConfig.CallTimeout

	return &Client{
		httpClient: httpClient,
		userAgent:  cfg.UserAgent,
		baseURL:    constants.RedditAPIConfig.BaseURL,
		logger:     logger,
	}, nil
}

// getJSON performs one authenticated GET and decodes the response into dest.
// 5xx and transport errors retry up to the attempt budget; 4xx responses fail
// immediately as UpstreamError.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest any) error {
	reqURL := c.baseURL + path
	if params != nil {
		reqURL += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < constants.RetryConfig.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.computeDelay(attempt - 1)
			c.logger.Warn("Reddit request failed, retrying",
				zap.String("path", path),
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
				zap.Error(lastErr))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, constants.FetchConfig.CallTimeout)
		req, err := http.NewRequestWithContext(callCtx, http.MethodGet, reqURL, nil)
		if err != nil {
			cancel()
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			cancel()
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		cancel()
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("status %d from %s", resp.StatusCode, path)
			continue
		case resp.StatusCode >= 400:
			return apperrors.NewUpstreamError(constants.PlatformReddit, path, resp.StatusCode,
				fmt.Errorf("status %d: %s", resp.StatusCode, truncateBody(body)))
		}

		if err := json.Unmarshal(body, dest); err != nil {
			return apperrors.NewUpstreamError(constants.PlatformReddit, path, resp.StatusCode,
				fmt.Errorf("malformed response: %w", err))
		}
		return nil
	}

	return apperrors.NewUpstreamError(constants.PlatformReddit, path, 0, lastErr)
}

func (c *Client) computeDelay(attempt int) time.Duration {
	base := constants.RetryConfig.BaseDelay * time.Duration(math.Pow(2, float64(attempt)))
	jitter := time.Duration(rand.Float64() * float64(constants.RetryConfig.Jitter))
	return base + jitter
}

func truncateBody(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit])
	}
	return string(body)
}
