package browser

import (
	"context"
	"fmt"

	"registration_e2e/domain/entities"
	"registration_e2e/domain/interfaces"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/sirupsen/logrus"
)

type rodLauncher struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	opts     Options
	logger   *logrus.Logger
}

// NewRodLauncher - launches chrome over the devtools protocol
func NewRodLauncher(opts Options, logger *logrus.Logger) (interfaces.Launcher, error) {
	l := launcher.New().
		Headless(opts.Headless).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage").
		Set("window-size", "1280,720")
	if bin := findChromeBinary(opts.ChromeBinaryPath); bin != "" {
		logger.Infof("Using Chrome binary at: %s", bin)
		l = l.Bin(bin)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url).SlowMotion(opts.SlowMo)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	logger.Infof("Rod chrome launched (headless=%t, stealth=%t)", opts.Headless, opts.Stealth)

	return &rodLauncher{
		launcher: l,
		browser:  browser,
		opts:     opts,
		logger:   logger,
	}, nil
}

// NewPage - opens a page in a fresh incognito context
func (l *rodLauncher) NewPage(ctx context.Context) (interfaces.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	incognito, err := l.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	var page *rod.Page
	if l.opts.Stealth {
		page, err = stealth.Page(incognito)
	} else {
		page, err = incognito.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		incognito.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &rodPage{
		incognito: incognito,
		page:      page,
		opts:      l.opts,
		logger:    l.logger,
	}, nil
}

// Close - closes the browser and kills its process
func (l *rodLauncher) Close() error {
	var err error
	if l.browser != nil {
		if closeErr := l.browser.Close(); closeErr != nil && !isClosedErr(closeErr) {
			err = fmt.Errorf("failed to close browser: %w", closeErr)
		}
		l.browser = nil
	}
	if l.launcher != nil {
		l.launcher.Kill()
		l.launcher = nil
	}
	return err
}

type rodPage struct {
	incognito *rod.Browser
	page      *rod.Page
	opts      Options
	logger    *logrus.Logger
}

// scoped - binds the page to ctx so a canceled run aborts pending calls
func (r *rodPage) scoped(ctx context.Context) *rod.Page {
	return r.page.Context(ctx)
}

// find - resolves every element matching loc, scope by scope
func (r *rodPage) find(ctx context.Context, loc entities.Locator) (rod.Elements, error) {
	page := r.scoped(ctx)

	var scopes rod.Elements
	for i, step := range loc.Chain() {
		if i == 0 {
			els, err := findInPage(page, step)
			if err != nil {
				return nil, err
			}
			scopes = els
			continue
		}

		var found rod.Elements
		for _, scope := range scopes {
			els, err := findInElement(scope, step)
			if err != nil {
				return nil, err
			}
			found = append(found, els...)
		}
		scopes = found
	}
	return scopes, nil
}

func findInPage(page *rod.Page, step entities.Locator) (rod.Elements, error) {
	if step.Kind == entities.ByRole {
		return page.ElementsByJS(rod.Eval(rolesJS, step.Role, step.Name))
	}
	return page.Elements(step.Selector)
}

func findInElement(el *rod.Element, step entities.Locator) (rod.Elements, error) {
	if step.Kind == entities.ByRole {
		return el.ElementsByJS(rod.Eval(rolesJS, step.Role, step.Name))
	}
	return el.Elements(step.Selector)
}

// one - resolves loc to exactly one element
func (r *rodPage) one(ctx context.Context, op string, loc entities.Locator, wait bool) (*rod.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var els rod.Elements
	count := func() (int, error) {
		var err error
		els, err = r.find(ctx, loc)
		return len(els), err
	}

	var (
		n   int
		err error
	)
	if wait {
		n, err = waitAttached(ctx, r.opts.Timeout, count)
	} else {
		n, err = count()
	}
	if err != nil {
		return nil, err
	}
	if n != 1 {
		return nil, entities.NewLocatorError(op, loc, n)
	}
	return els[0].Timeout(r.opts.Timeout), nil
}

// Navigate - navigates to the specified URL and waits for load
func (r *rodPage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.logger.Debugf("Navigating to: %s", url)

	page := r.scoped(ctx).Timeout(r.opts.Timeout * 6)
	if err := page.Navigate(url); err != nil {
		return err
	}
	if err := page.WaitLoad(); err != nil {
		return err
	}

	res, err := page.Eval("() => " + navigationStatusJS)
	if err != nil {
		r.logger.Warnf("Failed to read navigation status: %v", err)
		return nil
	}
	return checkStatus(url, res.Value.Int())
}

// Fill - replaces the content of an input field
func (r *rodPage) Fill(ctx context.Context, loc entities.Locator, value string) error {
	r.logger.Debugf("Filling %s", loc)
	el, err := r.one(ctx, "fill", loc, true)
	if err != nil {
		return err
	}

	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(value)
}

// Click - clicks on an element and waits for the page to settle
func (r *rodPage) Click(ctx context.Context, loc entities.Locator) error {
	r.logger.Debugf("Clicking on: %s", loc)
	el, err := r.one(ctx, "click", loc, true)
	if err != nil {
		return err
	}

	page := r.scoped(ctx).Timeout(r.opts.Timeout * 6)
	defer page.CancelTimeout()

	err = clickAndSettle(
		func() func() { return page.WaitRequestIdle(settleIdle, nil, nil, nil) },
		func() error { return el.Click(proto.InputMouseButtonLeft, 1) },
	)
	if err != nil {
		return err
	}
	return page.WaitLoad()
}

// SelectOption - selects a dropdown option by value or label
func (r *rodPage) SelectOption(ctx context.Context, loc entities.Locator, value string) error {
	r.logger.Debugf("Selecting %q in %s", value, loc)
	el, err := r.one(ctx, "select", loc, true)
	if err != nil {
		return err
	}

	res, err := el.Eval("function (v) { return ("+hasOptionJS+")(this, v) }", value)
	if err != nil {
		return err
	}
	if !res.Value.Bool() {
		return fmt.Errorf("select %q in %s: %w", value, loc, entities.ErrUnknownOption)
	}

	_, err = el.Eval(`function (v) {
		const opt = Array.from(this.options).find(o => o.value === v || o.label === v);
		this.value = opt.value;
		this.dispatchEvent(new Event('input', { bubbles: true }));
		this.dispatchEvent(new Event('change', { bubbles: true }));
	}`, value)
	return err
}

// TextContent - returns the text content of an element, hidden or not
func (r *rodPage) TextContent(ctx context.Context, loc entities.Locator) (string, error) {
	el, err := r.one(ctx, "text content", loc, false)
	if err != nil {
		return "", err
	}
	prop, err := el.Property("textContent")
	if err != nil {
		return "", err
	}
	return prop.Str(), nil
}

// InputValue - returns the live value of an input
func (r *rodPage) InputValue(ctx context.Context, loc entities.Locator) (string, error) {
	el, err := r.one(ctx, "input value", loc, true)
	if err != nil {
		return "", err
	}
	prop, err := el.Property("value")
	if err != nil {
		return "", err
	}
	return prop.Str(), nil
}

// IsVisible - checks if an element is visible
func (r *rodPage) IsVisible(ctx context.Context, loc entities.Locator) (bool, error) {
	el, err := r.one(ctx, "is visible", loc, false)
	if err != nil {
		return false, err
	}
	return el.Visible()
}

// Count - returns how many elements match right now
func (r *rodPage) Count(ctx context.Context, loc entities.Locator) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	els, err := r.find(ctx, loc)
	return len(els), err
}

// Screenshot - takes a full page screenshot
func (r *rodPage) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.scoped(ctx).Screenshot(true, nil)
}

// Close - closes the page and its incognito context
func (r *rodPage) Close() error {
	if r.incognito == nil {
		return nil
	}
	if err := r.page.Close(); err != nil && !isClosedErr(err) {
		r.logger.Warnf("Failed to close page: %v", err)
	}
	err := r.incognito.Close()
	r.incognito = nil
	if err != nil && !isClosedErr(err) {
		return fmt.Errorf("failed to close context: %w", err)
	}
	return nil
}
