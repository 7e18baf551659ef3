package pages

import (
	"context"
	"fmt"

	"registration_e2e/application/expect"
	"registration_e2e/domain/entities"
	"registration_e2e/domain/interfaces"
)

// BasePage wraps a browser page with generic, layout-independent operations.
// Every call is bounded by the page's context.
type BasePage struct {
	browser interfaces.Browser
	ctx     context.Context
	expect  expect.Options
}

// NewBasePage - creates base page over a browser handle
func NewBasePage(ctx context.Context, browser interfaces.Browser, opts expect.Options) *BasePage {
	if ctx == nil {
		ctx = context.Background()
	}
	return &BasePage{
		browser: browser,
		ctx:     ctx,
		expect:  opts,
	}
}

// Browser - returns the underlying browser handle
func (p *BasePage) Browser() interfaces.Browser {
	return p.browser
}

// Context - returns the context bounding page calls
func (p *BasePage) Context() context.Context {
	return p.ctx
}

// Navigate - loads url; an empty url fails before reaching the browser
func (p *BasePage) Navigate(url string) error {
	if url == "" {
		return fmt.Errorf("%w: base url is empty", entities.ErrConfig)
	}
	return p.browser.Navigate(p.ctx, url)
}

// Fill - sets the content of the element matched by loc
func (p *BasePage) Fill(loc entities.Locator, value string) error {
	return p.browser.Fill(p.ctx, loc, value)
}

// Click - clicks the element matched by loc
func (p *BasePage) Click(loc entities.Locator) error {
	return p.browser.Click(p.ctx, loc)
}

// ReadText - returns the text content of the element matched by loc
func (p *BasePage) ReadText(loc entities.Locator) (string, error) {
	return p.browser.TextContent(p.ctx, loc)
}

// Select - selects a dropdown option by value or label
func (p *BasePage) Select(loc entities.Locator, value string) error {
	return p.browser.SelectOption(p.ctx, loc, value)
}

// InputValue - returns the live value of the input matched by loc
func (p *BasePage) InputValue(loc entities.Locator) (string, error) {
	return p.browser.InputValue(p.ctx, loc)
}

// ExpectVisible - polls until loc is visible
func (p *BasePage) ExpectVisible(loc entities.Locator) error {
	return expect.ToBeVisible(p.ctx, p.browser, loc, p.expect)
}

// ExpectContainsText - polls until loc's text contains text
func (p *BasePage) ExpectContainsText(loc entities.Locator, text string) error {
	return expect.ToContainText(p.ctx, p.browser, loc, text, p.expect)
}

// ExpectValue - polls until loc's live input value equals value
func (p *BasePage) ExpectValue(loc entities.Locator, value string) error {
	return expect.ToHaveValue(p.ctx, p.browser, loc, value, p.expect)
}
