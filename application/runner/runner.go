package runner

import (
	"context"
	"fmt"
	"time"

	"registration_e2e/application/expect"
	"registration_e2e/application/pages"
	"registration_e2e/application/scenarios"
	"registration_e2e/domain/entities"
	"registration_e2e/domain/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ArtifactStore persists failure screenshots
type ArtifactStore interface {
	SaveScreenshot(scenario string, png []byte) (string, error)
}

// Runner executes scenarios one after another, each on a fresh page
type Runner struct {
	launcher  interfaces.Launcher
	baseURL   string
	expect    expect.Options
	artifacts ArtifactStore
	logger    *logrus.Logger
	runID     string
}

// NewRunner - creates new runner instance; artifacts may be nil
func NewRunner(launcher interfaces.Launcher, baseURL string, opts expect.Options, artifacts ArtifactStore, logger *logrus.Logger) *Runner {
	return &Runner{
		launcher:  launcher,
		baseURL:   baseURL,
		expect:    opts,
		artifacts: artifacts,
		logger:    logger,
		runID:     uuid.NewString(),
	}
}

// RunID - returns the identifier of this runner's run
func (r *Runner) RunID() string {
	return r.runID
}

// SetArtifacts - replaces the screenshot store, usually one keyed by RunID
func (r *Runner) SetArtifacts(artifacts ArtifactStore) {
	r.artifacts = artifacts
}

// Run - executes every scenario and collects the results. A failing
// scenario never stops the others; only context cancellation does.
func (r *Runner) Run(ctx context.Context, list []scenarios.Scenario) *entities.Report {
	report := &entities.Report{RunID: r.runID}
	start := time.Now()

	for _, sc := range list {
		if ctx.Err() != nil {
			report.Results = append(report.Results, entities.ScenarioResult{
				Name:   sc.Name,
				Status: entities.ScenarioFailed,
				Err:    fmt.Errorf("run canceled: %w", ctx.Err()),
			})
			continue
		}
		report.Results = append(report.Results, r.runOne(ctx, sc))
	}

	report.Duration = time.Since(start)
	return report
}

func (r *Runner) runOne(ctx context.Context, sc scenarios.Scenario) entities.ScenarioResult {
	log := r.logger.WithFields(logrus.Fields{
		"run_id":   r.runID,
		"scenario": sc.Name,
	})
	log.Info("Scenario started")

	start := time.Now()
	result := entities.ScenarioResult{Name: sc.Name, Status: entities.ScenarioPassed}

	browser, err := r.launcher.NewPage(ctx)
	if err != nil {
		result.Status = entities.ScenarioFailed
		result.Err = fmt.Errorf("failed to open page: %w", err)
		result.Duration = time.Since(start)
		log.WithError(result.Err).Error("Scenario failed")
		return result
	}
	defer func() {
		if err := browser.Close(); err != nil {
			log.Warnf("Failed to close page: %v", err)
		}
	}()

	page := pages.NewRegistrationPage(ctx, browser, r.expect)
	if err := runScenario(sc, page, r.baseURL); err != nil {
		result.Status = entities.ScenarioFailed
		result.Err = err
		result.Screenshot = r.capture(ctx, browser, sc.Name, log)
	}

	result.Duration = time.Since(start)
	log = log.WithField("duration", result.Duration.Round(time.Millisecond))
	if result.Err != nil {
		log.WithError(result.Err).Error("Scenario failed")
	} else {
		log.Info("Scenario passed")
	}
	return result
}

// runScenario runs sc and turns a panic into that scenario's error
func runScenario(sc scenarios.Scenario, page *pages.RegistrationPage, baseURL string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("scenario panicked: %v", rec)
		}
	}()
	return sc.Run(page, baseURL)
}

// capture saves a screenshot of a failed scenario; failures here are only logged
func (r *Runner) capture(ctx context.Context, browser interfaces.Browser, name string, log *logrus.Entry) string {
	if r.artifacts == nil {
		return ""
	}
	png, err := browser.Screenshot(ctx)
	if err != nil {
		log.Warnf("Failed to take screenshot: %v", err)
		return ""
	}
	path, err := r.artifacts.SaveScreenshot(name, png)
	if err != nil {
		log.Warnf("Failed to save screenshot: %v", err)
		return ""
	}
	log.Infof("Screenshot saved to %s", path)
	return path
}
