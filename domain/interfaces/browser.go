package interfaces

import (
	"context"

	"registration_e2e/domain/entities"
)

// Browser defines the driver handle for a single browser page
type Browser interface {
	// Navigate loads a URL in the page
	Navigate(ctx context.Context, url string) error

	// Fill sets the content of exactly one matched element
	Fill(ctx context.Context, loc entities.Locator, value string) error

	// Click clicks exactly one matched element
	Click(ctx context.Context, loc entities.Locator) error

	// SelectOption selects a dropdown option by value or label
	SelectOption(ctx context.Context, loc entities.Locator, value string) error

	// TextContent returns the rendered text of exactly one matched element
	TextContent(ctx context.Context, loc entities.Locator) (string, error)

	// InputValue returns the live value of exactly one matched input
	InputValue(ctx context.Context, loc entities.Locator) (string, error)

	// IsVisible checks if exactly one matched element is visible
	IsVisible(ctx context.Context, loc entities.Locator) (bool, error)

	// Count returns how many elements the locator matches right now
	Count(ctx context.Context, loc entities.Locator) (int, error)

	// Screenshot takes a screenshot of the page
	Screenshot(ctx context.Context) ([]byte, error)

	// Close closes the page and its isolated browser context
	Close() error
}

// Launcher hands out fresh pages, one per scenario
type Launcher interface {
	// NewPage opens an isolated page
	NewPage(ctx context.Context) (Browser, error)

	// Close shuts the browser down
	Close() error
}
