package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"registration_e2e/application/expect"
	"registration_e2e/application/runner"
	"registration_e2e/application/scenarios"
	"registration_e2e/domain/entities"
	"registration_e2e/domain/interfaces"
	"registration_e2e/infrastructure/browser"
	"registration_e2e/infrastructure/config"
	"registration_e2e/infrastructure/logging"
	"registration_e2e/infrastructure/storage"

	"github.com/sirupsen/logrus"
)

type TerminalInterface struct {
	runner   *runner.Runner
	launcher interfaces.Launcher
	list     []scenarios.Scenario
	logger   *logrus.Logger
	out      io.Writer
}

func NewTerminalInterface() (*TerminalInterface, error) {
	// Load environment variables
	if !config.LoadDotEnv() {
		// .env file is optional
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(cfg.LogLevel)

	// Initialize browser launcher
	launcher, err := browser.NewLauncher(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}

	opts := expect.Options{Timeout: cfg.Timeout, Interval: cfg.PollInterval}
	r := runner.NewRunner(launcher, cfg.BaseURL, opts, nil, logger)
	r.SetArtifacts(storage.NewArtifacts(cfg.ArtifactsDir, r.RunID()))

	list := scenarios.All()
	if cfg.KnownBugs {
		list = append(list, scenarios.KnownBugs()...)
	}

	return &TerminalInterface{
		runner:   r,
		launcher: launcher,
		list:     list,
		logger:   logger,
		out:      os.Stdout,
	}, nil
}

// Run - runs the whole catalogue and prints the report; the error is non-nil when any scenario failed
func (t *TerminalInterface) Run(ctx context.Context) error {
	fmt.Fprintln(t.out, "Registration E2E")
	fmt.Fprintln(t.out, "================")
	fmt.Fprintln(t.out)

	report := t.runner.Run(ctx, t.list)
	PrintReport(t.out, report)

	if !report.Passed() {
		return fmt.Errorf("%d of %d scenarios failed", report.Failed(), len(report.Results))
	}
	return nil
}

func (t *TerminalInterface) Close() error {
	return t.launcher.Close()
}

// PrintReport - writes one line per scenario and a summary
func PrintReport(w io.Writer, report *entities.Report) {
	for _, res := range report.Results {
		mark := "PASS"
		if res.Status == entities.ScenarioFailed {
			mark = "FAIL"
		}
		fmt.Fprintf(w, "%s  %s (%s)\n", mark, res.Name, res.Duration.Round(time.Millisecond))
		if res.Err != nil {
			fmt.Fprintf(w, "      %v\n", res.Err)
		}
		if res.Screenshot != "" {
			fmt.Fprintf(w, "      screenshot: %s\n", res.Screenshot)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "run %s: %d passed, %d failed in %s\n",
		report.RunID,
		len(report.Results)-report.Failed(),
		report.Failed(),
		report.Duration.Round(time.Millisecond),
	)
}
