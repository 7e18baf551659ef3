package browser

import (
	"context"
	"fmt"
	"time"

	"registration_e2e/domain/entities"
	"registration_e2e/infrastructure/config"
)

const (
	defaultWaitInterval = 100 * time.Millisecond

	// settleIdle is how long the network must stay quiet after a click
	settleIdle = 300 * time.Millisecond
)

// Options holds the launch settings shared by every driver backend
type Options struct {
	Headless         bool
	SlowMo           time.Duration
	Timeout          time.Duration
	ChromeDriverPath string
	ChromeBinaryPath string
	SeleniumPort     int
	Stealth          bool
}

// OptionsFromConfig - extracts the launch settings from the suite config
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Headless:         cfg.Headless,
		SlowMo:           cfg.SlowMo,
		Timeout:          cfg.Timeout,
		ChromeDriverPath: cfg.ChromeDriverPath,
		ChromeBinaryPath: cfg.ChromeBinaryPath,
		SeleniumPort:     cfg.SeleniumPort,
		Stealth:          cfg.Stealth,
	}
}

// waitAttached polls count until at least one element matches or timeout
// elapses. The last count is returned either way; the caller decides what a
// count other than one means.
func waitAttached(ctx context.Context, timeout time.Duration, count func() (int, error)) (int, error) {
	deadline := time.Now().Add(timeout)
	for {
		n, err := count()
		if err != nil || n > 0 || !time.Now().Before(deadline) {
			return n, err
		}

		select {
		case <-ctx.Done():
			return n, ctx.Err()
		case <-time.After(defaultWaitInterval):
		}
	}
}

// checkStatus maps an HTTP error status of the loaded document to ErrNavigation
func checkStatus(url string, status int) error {
	if status >= 400 {
		return fmt.Errorf("%w: %s returned status %d", entities.ErrNavigation, url, status)
	}
	return nil
}

// clickAndSettle arms the wait before clicking, so a navigation the click
// starts asynchronously (a form submit) is still observed.
func clickAndSettle(arm func() func(), click func() error) error {
	wait := arm()
	if err := click(); err != nil {
		return err
	}
	wait()
	return nil
}
