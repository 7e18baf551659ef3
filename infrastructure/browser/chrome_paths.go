package browser

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"registration_e2e/domain/entities"
)

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%w: chromedriver not found, install it or set BROWSER_DRIVER_PATH", entities.ErrConfig)
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}
