//go:build e2e

// Package e2e runs the registration scenarios against a real browser.
//
//	go test -tags e2e ./e2e/...
//
// BROWSER_DRIVER picks the backend. HEADLESS=false shows the browser.
package e2e

import (
	"context"
	"testing"

	"registration_e2e/application/expect"
	"registration_e2e/application/pages"
	"registration_e2e/application/scenarios"
	"registration_e2e/domain/interfaces"
	"registration_e2e/infrastructure/browser"
	"registration_e2e/infrastructure/config"
	"registration_e2e/infrastructure/logging"
	"registration_e2e/infrastructure/storage"

	"github.com/stretchr/testify/require"
)

// BrowserFixture owns one launched browser and hands out fresh pages.
type BrowserFixture struct {
	Config    *config.Config
	Launcher  interfaces.Launcher
	Artifacts *storage.Artifacts
}

// NewBrowserFixture launches the configured backend. The browser is closed
// when the test finishes.
func NewBrowserFixture(t *testing.T, cfg *config.Config) *BrowserFixture {
	t.Helper()

	logger := logging.NewLogger(cfg.LogLevel)
	launcher, err := browser.NewLauncher(cfg, logger)
	require.NoError(t, err, "failed to launch browser")
	t.Cleanup(func() { launcher.Close() })

	return &BrowserFixture{
		Config:    cfg,
		Launcher:  launcher,
		Artifacts: storage.NewArtifacts(cfg.ArtifactsDir, "e2e"),
	}
}

// NewPage opens an isolated registration page bound to the test's lifetime
func (f *BrowserFixture) NewPage(t *testing.T) (*pages.RegistrationPage, interfaces.Browser) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	page, err := f.Launcher.NewPage(ctx)
	require.NoError(t, err, "failed to open page")
	t.Cleanup(func() { page.Close() })

	opts := expect.Options{Timeout: f.Config.Timeout, Interval: f.Config.PollInterval}
	return pages.NewRegistrationPage(ctx, page, opts), page
}

// RunCatalogue runs every scenario as a subtest, saving a screenshot on failure
func (f *BrowserFixture) RunCatalogue(t *testing.T) {
	for _, sc := range scenarios.All() {
		t.Run(sc.Name, func(t *testing.T) {
			page, raw := f.NewPage(t)

			err := sc.Run(page, f.Config.BaseURL)
			if err != nil {
				if png, shotErr := raw.Screenshot(context.Background()); shotErr == nil {
					if path, saveErr := f.Artifacts.SaveScreenshot(sc.Name, png); saveErr == nil {
						t.Logf("screenshot: %s", path)
					}
				}
			}
			require.NoError(t, err)
		})
	}
}
