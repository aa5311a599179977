package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingCredentials is returned by RequireSource when the Reddit app credentials are absent
var ErrMissingCredentials = errors.New("reddit credentials are required")

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string // development, staging, production

	// Post source
	Reddit RedditConfig
	Scan   ScanConfig

	// Core engines
	Filter     FilterConfig
	Vocabulary VocabularyConfig
	NER        NERConfig
	Reputation ReputationConfig

	// Sinks / infra
	Report   ReportConfig
	Database DatabaseConfig
	Redis    RedisConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RedditConfig holds Reddit API credentials and endpoints
type RedditConfig struct {
	ClientID          string
	ClientSecret      string
	UserAgent         string
	AuthURL           string
	APIURL            string
	RequestsPerMinute int
}

// ScanConfig controls which posts a scan fetches
type ScanConfig struct {
	Categories  []string // subreddits
	Modes       []string // top, new
	Window      string   // hour, day, week, month, year, all
	Limit       int
	Concurrency int
}

// FilterConfig controls the post pre-screen
type FilterConfig struct {
	ContentDomain    string
	MediaExtensions  []string
	VideoHosts       []string
	StalenessEnabled bool
	StalenessWindow  time.Duration
}

// VocabularyConfig points at the known-symbol list
type VocabularyConfig struct {
	File        string   // YAML vocabulary file
	SymbolsFile string   // CSV listing, first column
	Symbols     []string // inline list (KNOWN_STOCK_SYMBOLS)
	Ambiguous   []string
}

// NERConfig holds named-entity recognizer (Gemini) settings
type NERConfig struct {
	Enabled bool
	APIKey  string
	Model   string
	Timeout time.Duration
}

// ReputationConfig holds author reputation lookup settings
type ReputationConfig struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

// ReportConfig holds report sink settings
type ReportConfig struct {
	Dir      string
	Postgres bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// DefaultAmbiguousSymbols are tickers that collide with common English words
var DefaultAmbiguousSymbols = []string{"CAN", "OR", "AND", "BUT", "AT", "ON", "CSP", "DTE", "FOR", "DD"}

// Load reads configuration from environment variables.
// extraFiles are env files loaded before the default ones (first value wins).
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load(extraFiles ...string) (*Config, error) {
	if err := loadEnvFiles(extraFiles); err != nil {
		return nil, err
	}

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Reddit: RedditConfig{
			ClientID:          getEnv("REDDIT_CLIENT_ID", ""),
			ClientSecret:      getEnv("REDDIT_CLIENT_SECRET", ""),
			UserAgent:         getEnv("REDDIT_USER_AGENT", "vulture/1.0"),
			AuthURL:           getEnv("REDDIT_AUTH_URL", "https://www.reddit.com/api/v1/access_token"),
			APIURL:            getEnv("REDDIT_API_URL", "https://oauth.reddit.com"),
			RequestsPerMinute: getEnvAsInt("REDDIT_REQUESTS_PER_MINUTE", 60),
		},

		Scan: ScanConfig{
			Categories:  getEnvAsList("SCAN_CATEGORIES", "options,wallstreetbets,shortsqueeze"),
			Modes:       getEnvAsList("SCAN_MODES", "top,new"),
			Window:      getEnv("SCAN_WINDOW", "day"),
			Limit:       getEnvAsInt("SCAN_LIMIT", 100),
			Concurrency: getEnvAsInt("SCAN_CONCURRENCY", 4),
		},

		Filter: FilterConfig{
			ContentDomain:    getEnv("FILTER_CONTENT_DOMAIN", "https://www.reddit.com"),
			MediaExtensions:  getEnvAsList("FILTER_MEDIA_EXTENSIONS", ".jpeg,.png"),
			VideoHosts:       getEnvAsList("FILTER_VIDEO_HOSTS", "v.redd.it"),
			StalenessEnabled: getEnvAsBool("FILTER_STALENESS_ENABLED", false),
			StalenessWindow:  getEnvAsDuration("FILTER_STALENESS_WINDOW", "24h"),
		},

		Vocabulary: VocabularyConfig{
			File:        getEnv("VOCABULARY_FILE", ""),
			SymbolsFile: getEnv("KNOWN_STOCK_SYMBOLS_FILE", ""),
			Symbols:     getEnvAsList("KNOWN_STOCK_SYMBOLS", ""),
			Ambiguous:   getEnvAsList("AMBIGUOUS_SYMBOLS", strings.Join(DefaultAmbiguousSymbols, ",")),
		},

		NER: NERConfig{
			Enabled: getEnvAsBool("NER_ENABLED", true),
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout: getEnvAsDuration("NER_TIMEOUT", "10s"),
		},

		Reputation: ReputationConfig{
			Timeout:  getEnvAsDuration("REPUTATION_TIMEOUT", "5s"),
			CacheTTL: getEnvAsDuration("REPUTATION_CACHE_TTL", "6h"),
		},

		Report: ReportConfig{
			Dir:      getEnv("REPORT_DIR", "data"),
			Postgres: getEnvAsBool("REPORT_POSTGRES", false),
		},

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Scan.Limit <= 0 {
		return fmt.Errorf("SCAN_LIMIT must be > 0")
	}
	if c.Scan.Concurrency <= 0 {
		return fmt.Errorf("SCAN_CONCURRENCY must be > 0")
	}
	for _, mode := range c.Scan.Modes {
		if mode != "top" && mode != "new" {
			return fmt.Errorf("SCAN_MODES entries must be top or new, got %q", mode)
		}
	}

	if c.Filter.StalenessEnabled && c.Filter.StalenessWindow <= 0 {
		return fmt.Errorf("FILTER_STALENESS_WINDOW must be positive")
	}

	// Postgres 리포트는 DATABASE_URL 필요
	if c.Report.Postgres && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when REPORT_POSTGRES is enabled")
	}

	return nil
}

// RequireSource checks the settings needed to fetch posts
func (c *Config) RequireSource() error {
	if c.Reddit.ClientID == "" || c.Reddit.ClientSecret == "" {
		return fmt.Errorf("%w: set REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET", ErrMissingCredentials)
	}
	return nil
}

// NEREnabled reports whether the Gemini recognizer can be used
func (c *Config) NEREnabled() bool {
	return c.NER.Enabled && c.NER.APIKey != ""
}

// Helper functions (private, only used within this file)

// loadEnvFiles loads every env file that exists, first value wins.
// An explicitly requested file must exist.
func loadEnvFiles(extraFiles []string) error {
	for _, path := range extraFiles {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}

	names := []string{".env", "vulture_cred.env", "vulture_lib.env"}
	dirs := []string{"."}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		dirs = append(dirs, exeDir, filepath.Join(exeDir, ".."))
	}

	for _, dir := range dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				_ = godotenv.Load(path)
			}
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList splits a comma separated value, trimming blanks
func getEnvAsList(key string, defaultValue string) []string {
	return SplitList(getEnv(key, defaultValue))
}

// SplitList splits a comma separated list, dropping empty entries
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
