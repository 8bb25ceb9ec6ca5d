package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"archery-results/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type CacheMode string

const (
	// CacheModeResource caches every upstream payload under its own key.
	CacheModeResource CacheMode = "resource"
	// CacheModeAssembled also caches the assembled result under one key.
	CacheModeAssembled CacheMode = "assembled"
)

type Config struct {
	ResultsAPIBaseURL string
	TournamentIDs     []string
	DBPath            string
	ServerPort        string
	LogLevel          string
	CacheTTL          time.Duration
	CacheMode         CacheMode
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	ttl, err := parseSeconds(getEnv("CACHE_TTL_SECONDS", ""), constants.DefaultCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_SECONDS: %w", err)
	}

	cfg := &Config{
		ResultsAPIBaseURL: strings.TrimRight(getEnv("RESULTS_API_BASE_URL", "https://resultsapi.herokuapp.com"), "/"),
		TournamentIDs:     splitList(getEnv("TOURNAMENT_IDS", "")),
		DBPath:            getEnv("DB_PATH", "archery.db"),
		ServerPort:        getEnv("SERVER_PORT", "3000"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CacheTTL:          ttl,
		CacheMode:         CacheMode(getEnv("CACHE_MODE", string(CacheModeResource))),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("results_api", cfg.ResultsAPIBaseURL).
		Strs("tournament_ids", cfg.TournamentIDs).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("cache_ttl", cfg.CacheTTL).
		Str("cache_mode", string(cfg.CacheMode)).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.TournamentIDs) == 0 {
		return fmt.Errorf("TOURNAMENT_IDS is required")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.CacheTTL)
	}
	switch c.CacheMode {
	case CacheModeResource, CacheModeAssembled:
	default:
		return fmt.Errorf("unknown CACHE_MODE %q", c.CacheMode)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseSeconds(v string, fallback time.Duration) (time.Duration, error) {
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}

var Module = fx.Provide(Load)
