package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"recruit-match/internal/errs"
)

const maxSyncPageSize = 200

type Config struct {
	// Recruitment source API
	ServiceKey string
	APIBaseURL string
	APITimeout time.Duration

	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Sync settings
	SyncPageSize  int
	SyncMaxPages  int
	SyncInterval  time.Duration
	SyncCronHours int

	// Match scoring
	MatchBatchLimit int
	GeminiAPIKey    string
	GeminiModel     string

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		APIBaseURL:      "https://apis.data.go.kr/1051000/recruitment",
		APITimeout:      30 * time.Second,
		SyncPageSize:    100,
		SyncMaxPages:    100,
		SyncInterval:    30 * time.Minute,
		SyncCronHours:   1,
		MatchBatchLimit: 20,
		GeminiModel:     "gemini-2.0-flash",
		LogLevel:        "info",
		RedisDB:         0,
	}

	cfg.ServiceKey = os.Getenv("RECRUITMENT_SERVICE_KEY")
	if cfg.ServiceKey == "" {
		return nil, &errs.ConfigurationError{Key: "RECRUITMENT_SERVICE_KEY"}
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, &errs.ConfigurationError{Key: "POSTGRES_DSN"}
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	} else {
		cfg.RedisAddr = "localhost:6379"
	}

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if baseURL := os.Getenv("RECRUITMENT_API_BASE_URL"); baseURL != "" {
		cfg.APIBaseURL = baseURL
	}

	if timeout := os.Getenv("RECRUITMENT_API_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid RECRUITMENT_API_TIMEOUT: %w", err)
		}
		cfg.APITimeout = d
	}

	if pageSize := os.Getenv("SYNC_PAGE_SIZE"); pageSize != "" {
		n, err := strconv.Atoi(pageSize)
		if err != nil {
			return nil, fmt.Errorf("invalid SYNC_PAGE_SIZE: %w", err)
		}
		cfg.SyncPageSize = n
	}
	if cfg.SyncPageSize > maxSyncPageSize {
		cfg.SyncPageSize = maxSyncPageSize
	}

	if maxPages := os.Getenv("SYNC_MAX_PAGES"); maxPages != "" {
		n, err := strconv.Atoi(maxPages)
		if err != nil {
			return nil, fmt.Errorf("invalid SYNC_MAX_PAGES: %w", err)
		}
		cfg.SyncMaxPages = n
	}

	if interval := os.Getenv("SYNC_INTERVAL_MINUTES"); interval != "" {
		n, err := strconv.Atoi(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid SYNC_INTERVAL_MINUTES: %w", err)
		}
		cfg.SyncInterval = time.Duration(n) * time.Minute
	}

	if hours := os.Getenv("SYNC_CRON_HOURS"); hours != "" {
		n, err := strconv.Atoi(hours)
		if err != nil {
			return nil, fmt.Errorf("invalid SYNC_CRON_HOURS: %w", err)
		}
		cfg.SyncCronHours = n
	}

	if batch := os.Getenv("MATCH_BATCH_LIMIT"); batch != "" {
		n, err := strconv.Atoi(batch)
		if err != nil {
			return nil, fmt.Errorf("invalid MATCH_BATCH_LIMIT: %w", err)
		}
		cfg.MatchBatchLimit = n
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.GeminiModel = model
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServiceKey == "" {
		return &errs.ConfigurationError{Key: "RECRUITMENT_SERVICE_KEY"}
	}

	if c.PostgresDSN == "" {
		return &errs.ConfigurationError{Key: "POSTGRES_DSN"}
	}

	if c.SyncPageSize < 1 || c.SyncPageSize > maxSyncPageSize {
		return fmt.Errorf("sync page size must be between 1 and %d", maxSyncPageSize)
	}

	if c.SyncMaxPages < 1 {
		return fmt.Errorf("sync max pages must be positive")
	}

	if c.SyncInterval < time.Minute {
		return fmt.Errorf("sync interval too small: %v", c.SyncInterval)
	}

	if c.SyncCronHours < 1 {
		return fmt.Errorf("sync cron hours must be positive")
	}

	if c.MatchBatchLimit < 1 || c.MatchBatchLimit > 100 {
		return fmt.Errorf("match batch limit must be between 1 and 100")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}
