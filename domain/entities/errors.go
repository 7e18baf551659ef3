package entities

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrConfig             = errors.New("configuration error")
	ErrLocatorCardinality = errors.New("locator must match exactly one element")
	ErrUnknownOption      = errors.New("option not found in dropdown")
	ErrAssertion          = errors.New("assertion failed")
	ErrNavigation         = errors.New("navigation failed")
)

// LocatorError reports a locator that did not resolve to exactly one element
type LocatorError struct {
	Operation string
	Locator   Locator
	Count     int
}

func (e *LocatorError) Error() string {
	return fmt.Sprintf("%s %s: matched %d elements: %v", e.Operation, e.Locator, e.Count, ErrLocatorCardinality)
}

func (e *LocatorError) Unwrap() error {
	return ErrLocatorCardinality
}

// NewLocatorError - creates a cardinality error for count matches
func NewLocatorError(operation string, loc Locator, count int) *LocatorError {
	return &LocatorError{Operation: operation, Locator: loc, Count: count}
}

// AssertionError carries expected and actual values of a failed check
type AssertionError struct {
	Condition string
	Locator   Locator
	Expected  string
	Actual    string
	Timeout   time.Duration
	Cause     error
}

func (e *AssertionError) Error() string {
	msg := fmt.Sprintf("expect %s %s: expected %q, got %q after %s", e.Locator, e.Condition, e.Expected, e.Actual, e.Timeout)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (last error: %v)", e.Cause)
	}
	return msg
}

func (e *AssertionError) Is(target error) bool {
	return target == ErrAssertion
}

func (e *AssertionError) Unwrap() error {
	return e.Cause
}
