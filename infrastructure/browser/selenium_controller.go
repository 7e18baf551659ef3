package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"registration_e2e/domain/entities"
	"registration_e2e/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

type seleniumLauncher struct {
	service      *selenium.Service
	port         int
	chromeBinary string
	opts         Options
	logger       *logrus.Logger
}

// NewSeleniumLauncher - starts a local chromedriver service
func NewSeleniumLauncher(opts Options, logger *logrus.Logger) (interfaces.Launcher, error) {
	driverPath, err := findChromeDriver(opts.ChromeDriverPath)
	if err != nil {
		return nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}
	logger.Infof("Using ChromeDriver at: %s", driverPath)

	chromeBinary := findChromeBinary(opts.ChromeBinaryPath)
	if chromeBinary != "" {
		logger.Infof("Using Chrome binary at: %s", chromeBinary)
	}

	service, err := selenium.NewChromeDriverService(driverPath, opts.SeleniumPort)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	return &seleniumLauncher{
		service:      service,
		port:         opts.SeleniumPort,
		chromeBinary: chromeBinary,
		opts:         opts,
		logger:       logger,
	}, nil
}

// NewPage - opens a new webdriver session, one browser per page
func (l *seleniumLauncher) NewPage(ctx context.Context) (interfaces.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	caps := selenium.Capabilities{
		"browserName": "chrome",
	}

	args := []string{
		"--disable-blink-features=AutomationControlled",
		"--disable-dev-shm-usage",
		"--no-sandbox",
		"--window-size=1280,720",
	}
	if l.opts.Headless {
		args = append(args, "--headless=new")
	}
	chromeCaps := chrome.Capabilities{Args: args}
	if l.chromeBinary != "" {
		chromeCaps.Path = l.chromeBinary
	}
	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", l.port))
	if err != nil {
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set CHROME_BINARY_PATH environment variable. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	if err := wd.SetPageLoadTimeout(l.opts.Timeout * 6); err != nil {
		l.logger.Warnf("Failed to set page load timeout: %v", err)
	}

	return &seleniumPage{
		wd:      wd,
		timeout: l.opts.Timeout,
		slowMo:  l.opts.SlowMo,
		logger:  l.logger,
	}, nil
}

// Close - stops the chromedriver service
func (l *seleniumLauncher) Close() error {
	if l.service == nil {
		return nil
	}
	err := l.service.Stop()
	l.service = nil
	return err
}

type seleniumPage struct {
	wd      selenium.WebDriver
	timeout time.Duration
	slowMo  time.Duration
	logger  *logrus.Logger
}

// find - resolves every element matching loc, scope by scope
func (s *seleniumPage) find(loc entities.Locator) ([]selenium.WebElement, error) {
	var scopes []selenium.WebElement
	for i, step := range loc.Chain() {
		var found []selenium.WebElement
		if i == 0 {
			els, err := s.findIn(nil, step)
			if err != nil {
				return nil, err
			}
			found = els
		} else {
			for _, scope := range scopes {
				els, err := s.findIn(scope, step)
				if err != nil {
					return nil, err
				}
				found = append(found, els...)
			}
		}
		scopes = found
	}
	return scopes, nil
}

// findIn - resolves a single locator step under scope, or the whole document when scope is nil
func (s *seleniumPage) findIn(scope selenium.WebElement, step entities.Locator) ([]selenium.WebElement, error) {
	if step.Kind == entities.ByRole {
		var root interface{}
		if scope != nil {
			root = scope
		}
		script := "return (" + rolesJS + ").call(arguments[0] || document, arguments[1], arguments[2]);"
		raw, err := s.wd.ExecuteScriptRaw(script, []interface{}{root, step.Role, step.Name})
		if err != nil {
			return nil, err
		}
		return s.wd.DecodeElements(raw)
	}

	if scope == nil {
		return s.wd.FindElements(selenium.ByCSSSelector, step.Selector)
	}
	return scope.FindElements(selenium.ByCSSSelector, step.Selector)
}

// one - resolves loc to exactly one element
func (s *seleniumPage) one(ctx context.Context, op string, loc entities.Locator, wait bool) (selenium.WebElement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var els []selenium.WebElement
	count := func() (int, error) {
		var err error
		els, err = s.find(loc)
		return len(els), err
	}

	var (
		n   int
		err error
	)
	if wait {
		n, err = waitAttached(ctx, s.timeout, count)
	} else {
		n, err = count()
	}
	if err != nil {
		return nil, err
	}
	if n != 1 {
		return nil, entities.NewLocatorError(op, loc, n)
	}
	return els[0], nil
}

// pause - emulates slow motion between actions
func (s *seleniumPage) pause() {
	if s.slowMo > 0 {
		time.Sleep(s.slowMo)
	}
}

// waitReady - waits until the document finished loading
func (s *seleniumPage) waitReady() error {
	return s.wd.WaitWithTimeout(func(wd selenium.WebDriver) (bool, error) {
		state, err := wd.ExecuteScript("return document.readyState", nil)
		if err != nil {
			return false, nil
		}
		return state == "complete", nil
	}, s.timeout)
}

// Navigate - navigates browser to specified URL
func (s *seleniumPage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Debugf("Navigating to: %s", url)

	if err := s.wd.Get(url); err != nil {
		return err
	}

	status, err := s.wd.ExecuteScript("return "+navigationStatusJS+";", nil)
	if err != nil {
		s.logger.Warnf("Failed to read navigation status: %v", err)
		return nil
	}
	if code, ok := status.(float64); ok {
		return checkStatus(url, int(code))
	}
	return nil
}

// Fill - replaces the content of an input field
func (s *seleniumPage) Fill(ctx context.Context, loc entities.Locator, value string) error {
	s.logger.Debugf("Filling %s", loc)
	element, err := s.one(ctx, "fill", loc, true)
	if err != nil {
		return err
	}
	defer s.pause()

	if err := element.Clear(); err != nil {
		return fmt.Errorf("failed to clear element: %w", err)
	}
	if value == "" {
		return nil
	}
	return element.SendKeys(value)
}

// Click - clicks on element identified by loc
func (s *seleniumPage) Click(ctx context.Context, loc entities.Locator) error {
	s.logger.Debugf("Clicking on: %s", loc)
	element, err := s.one(ctx, "click", loc, true)
	if err != nil {
		return err
	}
	defer s.pause()

	script := `arguments[0].scrollIntoView({ block: 'center' }); return true;`
	if _, err := s.wd.ExecuteScript(script, []interface{}{element}); err != nil {
		s.logger.Warnf("Failed to scroll to element: %v", err)
	}

	if err := element.Click(); err != nil {
		return err
	}
	return s.waitReady()
}

// SelectOption - clicks the option whose value or label matches
func (s *seleniumPage) SelectOption(ctx context.Context, loc entities.Locator, value string) error {
	s.logger.Debugf("Selecting %q in %s", value, loc)
	element, err := s.one(ctx, "select", loc, true)
	if err != nil {
		return err
	}
	defer s.pause()

	options, err := element.FindElements(selenium.ByCSSSelector, "option")
	if err != nil {
		return err
	}
	for _, option := range options {
		optValue, _ := option.GetAttribute("value")
		label, _ := option.Text()
		if optValue == value || strings.TrimSpace(label) == value {
			return option.Click()
		}
	}
	return fmt.Errorf("select %q in %s: %w", value, loc, entities.ErrUnknownOption)
}

// TextContent - returns the text content of an element, hidden or not
func (s *seleniumPage) TextContent(ctx context.Context, loc entities.Locator) (string, error) {
	element, err := s.one(ctx, "text content", loc, false)
	if err != nil {
		return "", err
	}
	return s.stringProperty(element, "textContent")
}

// InputValue - returns the live value of an input
func (s *seleniumPage) InputValue(ctx context.Context, loc entities.Locator) (string, error) {
	element, err := s.one(ctx, "input value", loc, true)
	if err != nil {
		return "", err
	}
	return s.stringProperty(element, "value")
}

func (s *seleniumPage) stringProperty(element selenium.WebElement, name string) (string, error) {
	v, err := s.wd.ExecuteScript("return arguments[0][arguments[1]];", []interface{}{element, name})
	if err != nil {
		return "", err
	}
	str, _ := v.(string)
	return str, nil
}

// IsVisible - checks if element is visible on page
func (s *seleniumPage) IsVisible(ctx context.Context, loc entities.Locator) (bool, error) {
	element, err := s.one(ctx, "is visible", loc, false)
	if err != nil {
		return false, err
	}
	return element.IsDisplayed()
}

// Count - returns how many elements match right now
func (s *seleniumPage) Count(ctx context.Context, loc entities.Locator) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	els, err := s.find(loc)
	return len(els), err
}

// Screenshot - takes screenshot of current viewport
func (s *seleniumPage) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.wd.Screenshot()
}

// Close - ends the webdriver session
func (s *seleniumPage) Close() error {
	if s.wd == nil {
		return nil
	}
	err := s.wd.Quit()
	s.wd = nil
	if err != nil && !isClosedErr(err) {
		return fmt.Errorf("failed to quit webdriver: %w", err)
	}
	return nil
}
