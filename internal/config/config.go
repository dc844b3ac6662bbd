package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/kapu/creator-pulse-go/internal/constants"
)

type Config struct {
	YouTube  YouTubeConfig
	Reddit   RedditConfig
	Quota    QuotaConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Logging  LoggingConfig
}

type YouTubeConfig struct {
	APIKey    string
	MaxVideos int
}

type RedditConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	PostLimit    int
}

type QuotaConfig struct {
	YouTubeDailyLimit int
	RedditDailyLimit  int
	Backend           string // "file" or "redis"
	FilePath          string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type PostgresConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		YouTube: YouTubeConfig{
			APIKey:    getEnv("YOUTUBE_API_KEY", ""),
			MaxVideos: getEnvInt("YOUTUBE_MAX_VIDEOS", constants.FetchConfig.MaxVideosDefault),
		},
		Reddit: RedditConfig{
			ClientID:     getEnv("REDDIT_CLIENT_ID", ""),
			ClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
			UserAgent:    getEnv("REDDIT_USER_AGENT", "creator-pulse/1.0"),
			PostLimit:    getEnvInt("REDDIT_POST_LIMIT", constants.FetchConfig.PostLimitDefault),
		},
		Quota: QuotaConfig{
			YouTubeDailyLimit: getEnvInt("YOUTUBE_DAILY_LIMIT", constants.QuotaDefaults.YouTubeDailyLimit),
			RedditDailyLimit:  getEnvInt("REDDIT_DAILY_LIMIT", constants.QuotaDefaults.RedditDailyLimit),
			Backend:           getEnv("QUOTA_BACKEND", "file"),
			FilePath:          getEnv("QUOTA_FILE", constants.QuotaDefaults.FilePath),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Postgres: PostgresConfig{
			Enabled:  getEnvBool("HISTORY_ENABLED", false),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "creatorpulse"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "creatorpulse"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Quota.Backend != "file" && c.Quota.Backend != "redis" {
		return fmt.Errorf("QUOTA_BACKEND must be \"file\" or \"redis\", got %q", c.Quota.Backend)
	}
	if c.Quota.Backend == "redis" && !c.Redis.Enabled {
		return fmt.Errorf("QUOTA_BACKEND=redis requires REDIS_ENABLED=true")
	}
	if c.YouTube.MaxVideos <= 0 {
		return fmt.Errorf("YOUTUBE_MAX_VIDEOS must be positive")
	}
	if c.Reddit.PostLimit < constants.FetchConfig.PostLimitMin ||
		c.Reddit.PostLimit > constants.FetchConfig.PostLimitMax {
		return fmt.Errorf("REDDIT_POST_LIMIT must be between %d and %d",
			constants.FetchConfig.PostLimitMin, constants.FetchConfig.PostLimitMax)
	}
	return nil
}

// ValidateYouTube is called only when a YouTube analysis is requested, so a
// Reddit-only deployment does not need a YouTube key.
func (c *Config) ValidateYouTube() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY is required for YouTube analysis")
	}
	return nil
}

func (c *Config) ValidateReddit() error {
	if c.Reddit.ClientID == "" || c.Reddit.ClientSecret == "" {
		return fmt.Errorf("REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET are required for Reddit analysis")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
