// Package browsertest provides an in-memory browser page for unit tests.
package browsertest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"registration_e2e/domain/entities"
)

// Operation names used for call recording and error injection
const (
	OpNavigate    = "navigate"
	OpFill        = "fill"
	OpClick       = "click"
	OpSelect      = "select"
	OpTextContent = "text_content"
	OpInputValue  = "input_value"
	OpIsVisible   = "is_visible"
	OpScreenshot  = "screenshot"
)

var ErrNotFillable = errors.New("element is not fillable")

type elementKind int

const (
	kindText elementKind = iota
	kindTextbox
	kindSelect
	kindButton
)

type element struct {
	kind    elementKind
	value   string
	text    string
	visible bool
	options []string
	onClick func()
}

// Call records one browser operation
type Call struct {
	Op      string
	Locator string
	Value   string
}

// Fake is an in-memory page keyed by locator string
type Fake struct {
	mu         sync.Mutex
	url        string
	elements   map[string]*element
	matches    map[string]int
	errs       map[string]error
	calls      []Call
	closed     bool
	onNavigate func(url string)
}

// New - creates an empty fake page
func New() *Fake {
	return &Fake{
		elements: make(map[string]*element),
		matches:  make(map[string]int),
		errs:     make(map[string]error),
	}
}

// AddTextbox - adds an empty fillable input
func (f *Fake) AddTextbox(loc entities.Locator) {
	f.put(loc, &element{kind: kindTextbox, visible: true})
}

// AddSelect - adds a dropdown with the given option labels
func (f *Fake) AddSelect(loc entities.Locator, options ...string) {
	f.put(loc, &element{kind: kindSelect, visible: true, options: options})
}

// AddButton - adds a button running onClick without holding the page lock
func (f *Fake) AddButton(loc entities.Locator, onClick func()) {
	f.put(loc, &element{kind: kindButton, visible: true, onClick: onClick})
}

// SetText - adds or replaces a text element
func (f *Fake) SetText(loc entities.Locator, text string, visible bool) {
	f.put(loc, &element{kind: kindText, text: text, visible: visible})
}

// Remove - deletes an element from the page
func (f *Fake) Remove(loc entities.Locator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.elements, loc.String())
}

// SetMatches - makes loc resolve to n elements
func (f *Fake) SetMatches(loc entities.Locator, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches[loc.String()] = n
}

// FailOn - makes every op call fail with err
func (f *Fake) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = err
}

// OnNavigate - runs fn after every successful navigation
func (f *Fake) OnNavigate(fn func(url string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onNavigate = fn
}

// Value - returns the current value of an input, empty if absent
func (f *Fake) Value(loc entities.Locator) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if el, ok := f.elements[loc.String()]; ok {
		return el.value
	}
	return ""
}

// URL - returns the last navigated url
func (f *Fake) URL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.url
}

// Calls - returns the recorded operations
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Closed - reports whether Close was called
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Fake) put(loc entities.Locator, el *element) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.elements[loc.String()] = el
}

// begin records the call and returns the injected error, if any
func (f *Fake) begin(ctx context.Context, op string, loc *entities.Locator, value string) error {
	call := Call{Op: op, Value: value}
	if loc != nil {
		call.Locator = loc.String()
	}
	f.calls = append(f.calls, call)

	if err := ctx.Err(); err != nil {
		return err
	}
	if f.closed {
		return errors.New("page has been closed")
	}
	return f.errs[op]
}

// resolve enforces the exactly-one-match rule
func (f *Fake) resolve(op string, loc entities.Locator) (*element, error) {
	key := loc.String()
	el, ok := f.elements[key]
	count := 0
	if ok {
		count = 1
	}
	if n, set := f.matches[key]; set {
		count = n
	}
	if count != 1 {
		return nil, entities.NewLocatorError(op, loc, count)
	}
	return el, nil
}

func (f *Fake) Navigate(ctx context.Context, url string) error {
	f.mu.Lock()
	if err := f.begin(ctx, OpNavigate, nil, url); err != nil {
		f.mu.Unlock()
		return err
	}
	f.url = url
	hook := f.onNavigate
	f.mu.Unlock()

	if hook != nil {
		hook(url)
	}
	return nil
}

func (f *Fake) Fill(ctx context.Context, loc entities.Locator, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpFill, &loc, value); err != nil {
		return err
	}
	el, err := f.resolve(OpFill, loc)
	if err != nil {
		return err
	}
	if el.kind != kindTextbox {
		return fmt.Errorf("fill %s: %w", loc, ErrNotFillable)
	}
	el.value = value
	return nil
}

func (f *Fake) Click(ctx context.Context, loc entities.Locator) error {
	f.mu.Lock()
	if err := f.begin(ctx, OpClick, &loc, ""); err != nil {
		f.mu.Unlock()
		return err
	}
	el, err := f.resolve(OpClick, loc)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	onClick := el.onClick
	f.mu.Unlock()

	if onClick != nil {
		onClick()
	}
	return nil
}

func (f *Fake) SelectOption(ctx context.Context, loc entities.Locator, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpSelect, &loc, value); err != nil {
		return err
	}
	el, err := f.resolve(OpSelect, loc)
	if err != nil {
		return err
	}
	if el.kind != kindSelect {
		return fmt.Errorf("select %s: element is not a dropdown", loc)
	}
	for _, opt := range el.options {
		if opt == value {
			el.value = value
			return nil
		}
	}
	return fmt.Errorf("select %q in %s: %w", value, loc, entities.ErrUnknownOption)
}

func (f *Fake) TextContent(ctx context.Context, loc entities.Locator) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpTextContent, &loc, ""); err != nil {
		return "", err
	}
	el, err := f.resolve(OpTextContent, loc)
	if err != nil {
		return "", err
	}
	return el.text, nil
}

func (f *Fake) InputValue(ctx context.Context, loc entities.Locator) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpInputValue, &loc, ""); err != nil {
		return "", err
	}
	el, err := f.resolve(OpInputValue, loc)
	if err != nil {
		return "", err
	}
	if el.kind != kindTextbox && el.kind != kindSelect {
		return "", fmt.Errorf("input value %s: element is not an input", loc)
	}
	return el.value, nil
}

func (f *Fake) IsVisible(ctx context.Context, loc entities.Locator) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpIsVisible, &loc, ""); err != nil {
		return false, err
	}
	el, err := f.resolve(OpIsVisible, loc)
	if err != nil {
		return false, err
	}
	return el.visible, nil
}

func (f *Fake) Count(ctx context.Context, loc entities.Locator) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n, set := f.matches[loc.String()]; set {
		return n, nil
	}
	if _, ok := f.elements[loc.String()]; ok {
		return 1, nil
	}
	return 0, nil
}

func (f *Fake) Screenshot(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(ctx, OpScreenshot, nil, ""); err != nil {
		return nil, err
	}
	return []byte("fake-png:" + f.url), nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}
