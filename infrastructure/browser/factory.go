// Package browser implements the page driver on top of playwright, selenium
// and rod. Every backend resolves the same locators and enforces the same
// exactly-one-element rule before acting.
package browser

import (
	"fmt"

	"registration_e2e/domain/entities"
	"registration_e2e/domain/interfaces"
	"registration_e2e/infrastructure/config"

	"github.com/sirupsen/logrus"
)

// NewLauncher - starts the backend named by cfg.Driver
func NewLauncher(cfg *config.Config, logger *logrus.Logger) (interfaces.Launcher, error) {
	opts := OptionsFromConfig(cfg)

	switch cfg.Driver {
	case config.DriverPlaywright, "":
		return NewPlaywrightLauncher(opts, logger)
	case config.DriverSelenium:
		return NewSeleniumLauncher(opts, logger)
	case config.DriverRod:
		return NewRodLauncher(opts, logger)
	default:
		return nil, fmt.Errorf("%w: unknown browser driver %q", entities.ErrConfig, cfg.Driver)
	}
}
