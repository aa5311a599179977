package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	os.Unsetenv("ENV")
	os.Unsetenv("SCAN_LIMIT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Scan.Limit != 100 {
		t.Errorf("Expected Scan.Limit to be 100, got %d", cfg.Scan.Limit)
	}

	if len(cfg.Scan.Categories) != 3 || cfg.Scan.Categories[0] != "options" {
		t.Errorf("Expected default categories, got %v", cfg.Scan.Categories)
	}

	if cfg.Filter.ContentDomain != "https://www.reddit.com" {
		t.Errorf("Expected reddit content domain, got %s", cfg.Filter.ContentDomain)
	}

	if cfg.Filter.StalenessWindow != 24*time.Hour {
		t.Errorf("Expected 24h staleness window, got %v", cfg.Filter.StalenessWindow)
	}

	if len(cfg.Vocabulary.Ambiguous) != len(DefaultAmbiguousSymbols) {
		t.Errorf("Expected %d ambiguous symbols, got %d", len(DefaultAmbiguousSymbols), len(cfg.Vocabulary.Ambiguous))
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("ENV", "production")
	os.Setenv("SCAN_CATEGORIES", "stocks, pennystocks ,")
	os.Setenv("SCAN_LIMIT", "25")
	os.Setenv("FILTER_STALENESS_ENABLED", "true")
	os.Setenv("FILTER_STALENESS_WINDOW", "2h")
	os.Setenv("LOG_LEVEL", "warn")

	defer func() {
		os.Unsetenv("ENV")
		os.Unsetenv("SCAN_CATEGORIES")
		os.Unsetenv("SCAN_LIMIT")
		os.Unsetenv("FILTER_STALENESS_ENABLED")
		os.Unsetenv("FILTER_STALENESS_WINDOW")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if len(cfg.Scan.Categories) != 2 || cfg.Scan.Categories[1] != "pennystocks" {
		t.Errorf("Expected trimmed categories, got %v", cfg.Scan.Categories)
	}

	if cfg.Scan.Limit != 25 {
		t.Errorf("Expected Scan.Limit to be 25, got %d", cfg.Scan.Limit)
	}

	if !cfg.Filter.StalenessEnabled || cfg.Filter.StalenessWindow != 2*time.Hour {
		t.Errorf("Expected staleness 2h enabled, got %v/%v", cfg.Filter.StalenessEnabled, cfg.Filter.StalenessWindow)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("Expected LogLevel to be warn, got %s", cfg.LogLevel)
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	os.Setenv("ENV", "invalid")
	defer os.Unsetenv("ENV")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateInvalidMode(t *testing.T) {
	os.Setenv("SCAN_MODES", "top,hot")
	defer os.Unsetenv("SCAN_MODES")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when SCAN_MODES contains hot, got nil")
	}
}

func TestValidatePostgresReportWithoutDatabase(t *testing.T) {
	os.Setenv("REPORT_POSTGRES", "true")
	os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("REPORT_POSTGRES")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when REPORT_POSTGRES is set without DATABASE_URL")
	}
}

func TestRequireSource(t *testing.T) {
	cfg := &Config{}
	if err := cfg.RequireSource(); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Expected ErrMissingCredentials, got %v", err)
	}

	cfg.Reddit.ClientID = "id"
	cfg.Reddit.ClientSecret = "secret"
	if err := cfg.RequireSource(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestNEREnabled(t *testing.T) {
	cfg := &Config{NER: NERConfig{Enabled: true}}
	if cfg.NEREnabled() {
		t.Error("Expected NER disabled without API key")
	}

	cfg.NER.APIKey = "key"
	if !cfg.NEREnabled() {
		t.Error("Expected NER enabled with API key")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "2h")
	defer os.Unsetenv("TEST_DURATION")

	duration := getEnvAsDuration("TEST_DURATION", "1h")
	expected := 2 * time.Hour

	if duration != expected {
		t.Errorf("Expected duration to be %v, got %v", expected, duration)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	os.Setenv("TEST_INT", "100")
	defer os.Unsetenv("TEST_INT")

	value := getEnvAsInt("TEST_INT", 50)
	if value != 100 {
		t.Errorf("Expected value to be 100, got %d", value)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a,b", 2},
		{" a , ,b, ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := SplitList(tt.raw); len(got) != tt.want {
				t.Errorf("SplitList(%q) = %v, want %d entries", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoadExtraFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.env")
	if err := os.WriteFile(path, []byte("SCAN_WINDOW=week\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	defer os.Unsetenv("SCAN_WINDOW")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Scan.Window != "week" {
		t.Errorf("Expected SCAN_WINDOW from extra file, got %s", cfg.Scan.Window)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Expected error for a missing explicit env file")
	}
}
