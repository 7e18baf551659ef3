package browser

import (
	"context"
	"fmt"
	"strings"

	"registration_e2e/domain/entities"
	"registration_e2e/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

type playwrightLauncher struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	opts    Options
	logger  *logrus.Logger
}

// NewPlaywrightLauncher - starts playwright and launches chromium
func NewPlaywrightLauncher(opts Options, logger *logrus.Logger) (interfaces.Launcher, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(float64(opts.SlowMo.Milliseconds())),
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	logger.Infof("Playwright chromium launched (headless=%t)", opts.Headless)

	return &playwrightLauncher{
		pw:      pw,
		browser: browser,
		opts:    opts,
		logger:  logger,
	}, nil
}

// NewPage - opens a page in its own browser context
func (l *playwrightLauncher) NewPage(ctx context.Context) (interfaces.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bctx, err := l.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	timeout := float64(l.opts.Timeout.Milliseconds())
	page.SetDefaultTimeout(timeout)
	page.SetDefaultNavigationTimeout(timeout * 6)

	return &playwrightPage{
		context: bctx,
		page:    page,
		logger:  l.logger,
	}, nil
}

// Close - closes browser and stops playwright
func (l *playwrightLauncher) Close() error {
	var closeErr error
	if l.browser != nil {
		if err := l.browser.Close(); err != nil && !isClosedErr(err) {
			closeErr = fmt.Errorf("failed to close browser: %w", err)
		}
		l.browser = nil
	}
	if l.pw != nil {
		if err := l.pw.Stop(); err != nil {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; failed to stop playwright: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("failed to stop playwright: %w", err)
			}
		}
		l.pw = nil
	}
	return closeErr
}

type playwrightPage struct {
	context playwright.BrowserContext
	page    playwright.Page
	logger  *logrus.Logger
}

// locator - builds the playwright locator, outermost scope first
func (b *playwrightPage) locator(loc entities.Locator) playwright.Locator {
	var cur playwright.Locator
	for _, step := range loc.Chain() {
		switch {
		case step.Kind == entities.ByRole && cur == nil:
			cur = b.page.GetByRole(playwright.AriaRole(step.Role), playwright.PageGetByRoleOptions{Name: step.Name})
		case step.Kind == entities.ByRole:
			cur = cur.GetByRole(playwright.AriaRole(step.Role), playwright.LocatorGetByRoleOptions{Name: step.Name})
		case cur == nil:
			cur = b.page.Locator(step.Selector)
		default:
			cur = cur.Locator(step.Selector)
		}
	}
	return cur
}

// one - resolves loc to exactly one element; waits for it to attach when wait is set
func (b *playwrightPage) one(ctx context.Context, op string, loc entities.Locator, wait bool) (playwright.Locator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	locator := b.locator(loc)
	if wait {
		// A missing element surfaces as a cardinality error below.
		_ = locator.First().WaitFor(playwright.LocatorWaitForOptions{
			State: playwright.WaitForSelectorStateAttached,
		})
	}

	count, err := locator.Count()
	if err != nil {
		return nil, err
	}
	if count != 1 {
		return nil, entities.NewLocatorError(op, loc, count)
	}
	return locator, nil
}

// Navigate - navigates to the specified URL
func (b *playwrightPage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.logger.Debugf("Navigating to: %s", url)

	resp, err := b.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	if err != nil {
		return err
	}
	if resp == nil {
		return nil
	}
	return checkStatus(url, resp.Status())
}

// Fill - fills an input field
func (b *playwrightPage) Fill(ctx context.Context, loc entities.Locator, value string) error {
	b.logger.Debugf("Filling %s", loc)
	locator, err := b.one(ctx, "fill", loc, true)
	if err != nil {
		return err
	}
	return locator.Fill(value)
}

// Click - clicks on an element and waits for the page to settle
func (b *playwrightPage) Click(ctx context.Context, loc entities.Locator) error {
	b.logger.Debugf("Clicking on: %s", loc)
	locator, err := b.one(ctx, "click", loc, true)
	if err != nil {
		return err
	}
	if err := locator.Click(); err != nil {
		return err
	}

	b.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateLoad,
	})
	return nil
}

// SelectOption - selects a dropdown option by value or label
func (b *playwrightPage) SelectOption(ctx context.Context, loc entities.Locator, value string) error {
	b.logger.Debugf("Selecting %q in %s", value, loc)
	locator, err := b.one(ctx, "select", loc, true)
	if err != nil {
		return err
	}

	found, err := locator.Evaluate(hasOptionJS, value)
	if err != nil {
		return err
	}
	if ok, _ := found.(bool); !ok {
		return fmt.Errorf("select %q in %s: %w", value, loc, entities.ErrUnknownOption)
	}

	_, err = locator.SelectOption(playwright.SelectOptionValues{Values: &[]string{value}})
	return err
}

// TextContent - returns the text content of an element
func (b *playwrightPage) TextContent(ctx context.Context, loc entities.Locator) (string, error) {
	locator, err := b.one(ctx, "text content", loc, false)
	if err != nil {
		return "", err
	}
	return locator.TextContent()
}

// InputValue - returns the live value of an input
func (b *playwrightPage) InputValue(ctx context.Context, loc entities.Locator) (string, error) {
	locator, err := b.one(ctx, "input value", loc, true)
	if err != nil {
		return "", err
	}
	return locator.InputValue()
}

// IsVisible - checks if an element is visible
func (b *playwrightPage) IsVisible(ctx context.Context, loc entities.Locator) (bool, error) {
	locator, err := b.one(ctx, "is visible", loc, false)
	if err != nil {
		return false, err
	}
	return locator.IsVisible()
}

// Count - returns how many elements match right now
func (b *playwrightPage) Count(ctx context.Context, loc entities.Locator) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return b.locator(loc).Count()
}

// Screenshot - takes a full page screenshot
func (b *playwrightPage) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
}

// Close - closes the page's browser context
func (b *playwrightPage) Close() error {
	if b.context == nil {
		return nil
	}
	err := b.context.Close()
	b.context = nil
	if err != nil && !isClosedErr(err) {
		return fmt.Errorf("failed to close context: %w", err)
	}
	return nil
}

func isClosedErr(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed")
}
