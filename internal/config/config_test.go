package config

import "testing"

func defaultTestConfig() *Config {
	return &Config{
		YouTube: YouTubeConfig{MaxVideos: 500},
		Reddit:  RedditConfig{PostLimit: 200},
		Quota:   QuotaConfig{Backend: "file"},
	}
}

func TestValidate(t *testing.T) {
	if err := defaultTestConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg := defaultTestConfig()
	cfg.Quota.Backend = "memcached"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown quota backend accepted")
	}

	cfg = defaultTestConfig()
	cfg.Quota.Backend = "redis"
	if err := cfg.Validate(); err == nil {
		t.Error("redis quota backend accepted without Redis enabled")
	}
	cfg.Redis.Enabled = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("redis backend with Redis enabled rejected: %v", err)
	}

	cfg = defaultTestConfig()
	cfg.Reddit.PostLimit = 9999
	if err := cfg.Validate(); err == nil {
		t.Error("out-of-range post limit accepted")
	}

	cfg = defaultTestConfig()
	cfg.YouTube.MaxVideos = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero max videos accepted")
	}
}

func TestPerPlatformValidation(t *testing.T) {
	cfg := defaultTestConfig()

	if err := cfg.ValidateYouTube(); err == nil {
		t.Error("missing YouTube key accepted")
	}
	cfg.YouTube.APIKey = "key"
	if err := cfg.ValidateYouTube(); err != nil {
		t.Errorf("ValidateYouTube: %v", err)
	}

	if err := cfg.ValidateReddit(); err == nil {
		t.Error("missing Reddit credentials accepted")
	}
	cfg.Reddit.ClientID = "id"
	cfg.Reddit.ClientSecret = "secret"
	if err := cfg.ValidateReddit(); err != nil {
		t.Errorf("ValidateReddit: %v", err)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "env-key")
	t.Setenv("YOUTUBE_MAX_VIDEOS", "100")
	t.Setenv("REDDIT_POST_LIMIT", "150")
	t.Setenv("QUOTA_BACKEND", "file")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.YouTube.APIKey != "env-key" || cfg.YouTube.MaxVideos != 100 {
		t.Errorf("YouTube config = %+v", cfg.YouTube)
	}
	if cfg.Reddit.PostLimit != 150 {
		t.Errorf("PostLimit = %d, want 150", cfg.Reddit.PostLimit)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
}
