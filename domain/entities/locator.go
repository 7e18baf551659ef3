package entities

import "fmt"

// LocatorKind tells a backend how to resolve a Locator
type LocatorKind int

const (
	ByCSS LocatorKind = iota
	ByRole
)

// Locator identifies one UI element, either by CSS selector or by accessible
// role and name. Locators are values and are never mutated after creation.
type Locator struct {
	Kind     LocatorKind
	Selector string // CSS selector when Kind == ByCSS
	Role     string // ARIA role when Kind == ByRole
	Name     string // accessible name, matched as a case-insensitive substring
	Parent   *Locator
}

// CSS - creates a locator from a CSS selector
func CSS(selector string) Locator {
	return Locator{Kind: ByCSS, Selector: selector}
}

// Role - creates a locator from an ARIA role and accessible name
func Role(role, name string) Locator {
	return Locator{Kind: ByRole, Role: role, Name: name}
}

// Within - returns a copy of the locator scoped inside parent
func (l Locator) Within(parent Locator) Locator {
	p := parent
	l.Parent = &p
	return l
}

// Chain - returns the locator and its ancestors, outermost first
func (l Locator) Chain() []Locator {
	var chain []Locator
	for cur := &l; cur != nil; cur = cur.Parent {
		step := *cur
		step.Parent = nil
		chain = append([]Locator{step}, chain...)
	}
	return chain
}

func (l Locator) String() string {
	self := l.Selector
	if l.Kind == ByRole {
		self = fmt.Sprintf("role=%s[name=%q]", l.Role, l.Name)
	}
	if l.Parent == nil {
		return self
	}
	return l.Parent.String() + " >> " + self
}
