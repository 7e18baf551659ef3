// Package expect provides polling assertions over a browser page. Each
// assertion checks immediately, then every Interval until it holds or
// Timeout elapses.
package expect

import (
	"context"
	"errors"
	"strings"
	"time"

	"registration_e2e/domain/entities"
	"registration_e2e/domain/interfaces"
)

const (
	DefaultTimeout  = 5 * time.Second
	DefaultInterval = 100 * time.Millisecond
)

// Options bounds a polling assertion
type Options struct {
	Timeout  time.Duration
	Interval time.Duration
}

// DefaultOptions - returns the default polling bounds
func DefaultOptions() Options {
	return Options{Timeout: DefaultTimeout, Interval: DefaultInterval}
}

func (o Options) normalized() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	return o
}

// probe reports whether the condition holds and what was observed
type probe func(ctx context.Context) (ok bool, actual string, err error)

// ToBeVisible - waits until the element is visible
func ToBeVisible(ctx context.Context, b interfaces.Browser, loc entities.Locator, opts Options) error {
	return poll(ctx, opts, loc, "to be visible", "visible", func(ctx context.Context) (bool, string, error) {
		visible, err := b.IsVisible(ctx, loc)
		if isMissing(err) {
			return false, "not found", err
		}
		if err != nil {
			return false, "", err
		}
		if !visible {
			return false, "hidden", nil
		}
		return true, "visible", nil
	})
}

// ToContainText - waits until the element's text contains expected
func ToContainText(ctx context.Context, b interfaces.Browser, loc entities.Locator, expected string, opts Options) error {
	return poll(ctx, opts, loc, "to contain text", expected, func(ctx context.Context) (bool, string, error) {
		text, err := b.TextContent(ctx, loc)
		if err != nil {
			return false, "", err
		}
		return strings.Contains(text, expected), text, nil
	})
}

// ToHaveValue - waits until the input's live value equals expected exactly
func ToHaveValue(ctx context.Context, b interfaces.Browser, loc entities.Locator, expected string, opts Options) error {
	return poll(ctx, opts, loc, "to have value", expected, func(ctx context.Context) (bool, string, error) {
		value, err := b.InputValue(ctx, loc)
		if err != nil {
			return false, "", err
		}
		return value == expected, value, nil
	})
}

// isMissing reports whether err is a zero-match cardinality error
func isMissing(err error) bool {
	var locErr *entities.LocatorError
	return errors.As(err, &locErr) && locErr.Count == 0
}

func poll(ctx context.Context, opts Options, loc entities.Locator, condition, expected string, check probe) error {
	opts = opts.normalized()
	deadline := time.Now().Add(opts.Timeout)

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	var (
		actual  string
		lastErr error
	)
	for {
		ok, observed, err := check(ctx)
		if err == nil && ok {
			return nil
		}
		// Only a missing element may still appear; any other driver
		// error, including more than one match, is returned as is.
		if err != nil && !isMissing(err) {
			return err
		}
		actual, lastErr = observed, err

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !time.Now().Before(deadline) {
			return &entities.AssertionError{
				Condition: condition,
				Locator:   loc,
				Expected:  expected,
				Actual:    actual,
				Timeout:   opts.Timeout,
				Cause:     lastErr,
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
