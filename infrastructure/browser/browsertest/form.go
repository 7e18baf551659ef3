package browsertest

import (
	"context"
	"sync"

	"registration_e2e/application/pages"
	"registration_e2e/domain/entities"
	"registration_e2e/domain/interfaces"
)

// Form simulates the registration form on a Fake page
type Form struct {
	*Fake

	// Evaluate decides the submission outcome; entities.Evaluate by default
	Evaluate func(entities.Registration) entities.Outcome

	mu          sync.Mutex
	submissions []entities.Registration
}

// NewForm - creates a fake page that renders the registration form on navigation
func NewForm() *Form {
	form := &Form{Fake: New(), Evaluate: entities.Evaluate}
	form.OnNavigate(func(string) { form.reset() })
	return form
}

// Submissions - returns every submitted registration in order
func (f *Form) Submissions() []entities.Registration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.Registration, len(f.submissions))
	copy(out, f.submissions)
	return out
}

func (f *Form) reset() {
	for _, loc := range []entities.Locator{
		pages.FirstNameField,
		pages.LastNameField,
		pages.PhoneField,
		pages.EmailField,
		pages.PasswordField,
	} {
		f.AddTextbox(loc)
	}
	f.AddSelect(pages.CountryDropdown, entities.Countries...)
	f.AddButton(pages.RegisterButton, f.submit)
	f.clearResults()
}

func (f *Form) clearResults() {
	for _, loc := range append(echoLocators(), pages.ResultsSection, pages.ResultsBanner) {
		f.Remove(loc)
	}
}

func echoLocators() []entities.Locator {
	return []entities.Locator{
		pages.ResultFirstName,
		pages.ResultLastName,
		pages.ResultPhone,
		pages.ResultCountry,
		pages.ResultEmail,
	}
}

func (f *Form) submit() {
	reg := entities.Registration{
		FirstName: f.Value(pages.FirstNameField),
		LastName:  f.Value(pages.LastNameField),
		Phone:     f.Value(pages.PhoneField),
		Country:   f.Value(pages.CountryDropdown),
		Email:     f.Value(pages.EmailField),
		Password:  f.Value(pages.PasswordField),
	}

	f.mu.Lock()
	f.submissions = append(f.submissions, reg)
	evaluate := f.Evaluate
	f.mu.Unlock()

	outcome := evaluate(reg)

	f.clearResults()
	f.SetText(pages.ResultsSection, outcome.Banner, true)
	f.SetText(pages.ResultsBanner, outcome.Banner, true)
	if !outcome.Success() {
		return
	}
	f.SetText(pages.ResultFirstName, "First Name: "+reg.FirstName, true)
	f.SetText(pages.ResultLastName, "Last Name: "+reg.LastName, true)
	f.SetText(pages.ResultPhone, "Phone Number: "+reg.Phone, true)
	f.SetText(pages.ResultCountry, "Country: "+reg.Country, true)
	f.SetText(pages.ResultEmail, "Email: "+reg.Email, true)
}

// Launcher hands out pages built by NewPage
type Launcher struct {
	// NewPageFunc builds each page; NewForm when nil
	NewPageFunc func() interfaces.Browser
	// Err fails every NewPage call when set
	Err error

	mu     sync.Mutex
	pages  []interfaces.Browser
	closed bool
}

func (l *Launcher) NewPage(ctx context.Context) (interfaces.Browser, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var page interfaces.Browser
	if l.NewPageFunc != nil {
		page = l.NewPageFunc()
	} else {
		page = NewForm()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.pages = append(l.pages, page)
	return page, nil
}

// Pages - returns every page handed out so far
func (l *Launcher) Pages() []interfaces.Browser {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]interfaces.Browser, len(l.pages))
	copy(out, l.pages)
	return out
}

func (l *Launcher) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

// Closed - reports whether Close was called
func (l *Launcher) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}
