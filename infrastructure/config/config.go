// Package config loads the suite configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"registration_e2e/domain/entities"

	"github.com/joho/godotenv"
)

// Supported browser drivers
const (
	DriverPlaywright = "playwright"
	DriverSelenium   = "selenium"
	DriverRod        = "rod"
)

// Config holds all configuration for a suite run
type Config struct {
	BaseURL          string
	Driver           string
	Headless         bool
	SlowMo           time.Duration
	Timeout          time.Duration
	PollInterval     time.Duration
	ChromeDriverPath string
	ChromeBinaryPath string
	SeleniumPort     int
	Stealth          bool
	KnownBugs        bool
	ArtifactsDir     string
	LogLevel         string
}

// DemoSiteConfig holds configuration for the local registration form server
type DemoSiteConfig struct {
	Addr     string
	LogLevel string
}

// LoadDotEnv loads .env if present and reports whether it was found.
// Variables already set in the environment are not overwritten.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load - reads .env and the environment into a Config
func Load() (*Config, error) {
	LoadDotEnv()
	return FromEnv()
}

// FromEnv - builds a Config from environment variables only
func FromEnv() (*Config, error) {
	baseURL := strings.TrimSpace(os.Getenv("WEB_URL"))
	if baseURL == "" {
		return nil, fmt.Errorf("%w: WEB_URL environment variable is not set", entities.ErrConfig)
	}

	cfg := &Config{
		BaseURL:          baseURL,
		Driver:           strings.ToLower(getEnv("BROWSER_DRIVER", DriverPlaywright)),
		ChromeDriverPath: os.Getenv("BROWSER_DRIVER_PATH"),
		ChromeBinaryPath: os.Getenv("CHROME_BINARY_PATH"),
		ArtifactsDir:     getEnv("ARTIFACTS_DIR", "test-results"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	switch cfg.Driver {
	case DriverPlaywright, DriverSelenium, DriverRod:
	default:
		return nil, fmt.Errorf("%w: unknown BROWSER_DRIVER %q", entities.ErrConfig, cfg.Driver)
	}

	var err error
	if cfg.Headless, err = getBool("HEADLESS", true); err != nil {
		return nil, err
	}
	if cfg.Stealth, err = getBool("ROD_STEALTH", false); err != nil {
		return nil, err
	}
	if cfg.KnownBugs, err = getBool("E2E_KNOWN_BUGS", false); err != nil {
		return nil, err
	}
	if cfg.SeleniumPort, err = getInt("SELENIUM_PORT", 9515); err != nil {
		return nil, err
	}

	slowMo, err := getInt("SLOW_MO", 0)
	if err != nil {
		return nil, err
	}
	cfg.SlowMo = time.Duration(slowMo) * time.Millisecond

	if cfg.Timeout, err = getDuration("E2E_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = getDuration("E2E_POLL_INTERVAL", 100*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.PollInterval <= 0 || cfg.Timeout <= 0 {
		return nil, fmt.Errorf("%w: E2E_TIMEOUT and E2E_POLL_INTERVAL must be positive", entities.ErrConfig)
	}

	return cfg, nil
}

// LoadDemoSite - reads the demo site configuration
func LoadDemoSite() DemoSiteConfig {
	LoadDotEnv()
	return DemoSiteConfig{
		Addr:     getEnv("DEMO_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q is not a boolean", entities.ErrConfig, key, v)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", entities.ErrConfig, key, v)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a duration", entities.ErrConfig, key, v)
	}
	return d, nil
}
