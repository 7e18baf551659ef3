package pages

import (
	"context"
	"fmt"

	"registration_e2e/application/expect"
	"registration_e2e/domain/entities"
	"registration_e2e/domain/interfaces"
)

// Locators of the registration form
var (
	FirstNameField  = entities.Role("textbox", "First Name")
	LastNameField   = entities.Role("textbox", "Last Name* Phone nunber*")
	PhoneField      = entities.Role("textbox", "Enter phone number")
	CountryDropdown = entities.CSS("#countries_dropdown_menu")
	EmailField      = entities.Role("textbox", "Enter email")
	PasswordField   = entities.Role("textbox", "Password")
	RegisterButton  = entities.Role("button", "Register")
	ResultsSection  = entities.CSS("#results-section")
	ResultsBanner   = entities.CSS("#message").Within(ResultsSection)
	ResultFirstName = entities.CSS("#resultFn").Within(ResultsSection)
	ResultLastName  = entities.CSS("#resultLn").Within(ResultsSection)
	ResultPhone     = entities.CSS("#resultPhone").Within(ResultsSection)
	ResultCountry   = entities.CSS("#country").Within(ResultsSection)
	ResultEmail     = entities.CSS("#resultEmail").Within(ResultsSection)
)

// RegistrationPage models the registration form. Mutators return the page
// for chaining; the first failure is kept, later mutators do nothing, and
// Err reports it.
type RegistrationPage struct {
	*BasePage
	err error
}

// NewRegistrationPage - creates registration page over a browser handle
func NewRegistrationPage(ctx context.Context, browser interfaces.Browser, opts expect.Options) *RegistrationPage {
	return &RegistrationPage{BasePage: NewBasePage(ctx, browser, opts)}
}

// Err - returns the first error of the mutator chain
func (p *RegistrationPage) Err() error {
	return p.err
}

func (p *RegistrationPage) step(what string, fn func() error) *RegistrationPage {
	if p.err != nil {
		return p
	}
	if err := fn(); err != nil {
		p.err = fmt.Errorf("%s: %w", what, err)
	}
	return p
}

func (p *RegistrationPage) fill(what string, loc entities.Locator, value string) *RegistrationPage {
	return p.step(what, func() error { return p.Fill(loc, value) })
}

func (p *RegistrationPage) FillFirstName(name string) *RegistrationPage {
	return p.fill("fill first name", FirstNameField, name)
}

func (p *RegistrationPage) FillLastName(name string) *RegistrationPage {
	return p.fill("fill last name", LastNameField, name)
}

func (p *RegistrationPage) FillPhone(phone string) *RegistrationPage {
	return p.fill("fill phone", PhoneField, phone)
}

func (p *RegistrationPage) FillEmail(email string) *RegistrationPage {
	return p.fill("fill email", EmailField, email)
}

func (p *RegistrationPage) FillPassword(password string) *RegistrationPage {
	return p.fill("fill password", PasswordField, password)
}

// SelectCountry - selects country by option value or label
func (p *RegistrationPage) SelectCountry(country string) *RegistrationPage {
	return p.step("select country", func() error { return p.Select(CountryDropdown, country) })
}

// ClickRegister - submits the form
func (p *RegistrationPage) ClickRegister() *RegistrationPage {
	return p.step("click register", func() error { return p.Click(RegisterButton) })
}

// FillForm - fills every non-empty field of r in form order
func (p *RegistrationPage) FillForm(r entities.Registration) *RegistrationPage {
	if r.FirstName != "" {
		p.FillFirstName(r.FirstName)
	}
	if r.LastName != "" {
		p.FillLastName(r.LastName)
	}
	if r.Phone != "" {
		p.FillPhone(r.Phone)
	}
	if r.Country != "" {
		p.SelectCountry(r.Country)
	}
	if r.Email != "" {
		p.FillEmail(r.Email)
	}
	if r.Password != "" {
		p.FillPassword(r.Password)
	}
	return p
}

func (p *RegistrationPage) value(loc entities.Locator) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.InputValue(loc)
}

func (p *RegistrationPage) FirstNameValue() (string, error) {
	return p.value(FirstNameField)
}

func (p *RegistrationPage) LastNameValue() (string, error) {
	return p.value(LastNameField)
}

func (p *RegistrationPage) PhoneValue() (string, error) {
	return p.value(PhoneField)
}

func (p *RegistrationPage) EmailValue() (string, error) {
	return p.value(EmailField)
}

func (p *RegistrationPage) checkBanner(text string) error {
	if p.err != nil {
		return p.err
	}
	if err := p.ExpectVisible(ResultsBanner); err != nil {
		return err
	}
	return p.ExpectContainsText(ResultsBanner, text)
}

// CheckSuccessMessageVisible - asserts the banner shows the success text
func (p *RegistrationPage) CheckSuccessMessageVisible() error {
	return p.checkBanner(entities.SuccessText)
}

// CheckPasswordErrorVisible - asserts the banner shows the password error
func (p *RegistrationPage) CheckPasswordErrorVisible() error {
	return p.checkBanner(entities.PasswordErrorText)
}

// CheckPhoneErrorVisible - asserts the banner shows the phone error
func (p *RegistrationPage) CheckPhoneErrorVisible() error {
	return p.checkBanner(entities.PhoneErrorText)
}

func (p *RegistrationPage) checkEcho(loc entities.Locator, value string) error {
	if p.err != nil {
		return p.err
	}
	return p.ExpectContainsText(loc, value)
}

func (p *RegistrationPage) CheckFirstNameIsSameAsEntered(name string) error {
	return p.checkEcho(ResultFirstName, name)
}

func (p *RegistrationPage) CheckLastNameIsSameAsEntered(name string) error {
	return p.checkEcho(ResultLastName, name)
}

func (p *RegistrationPage) CheckPhoneIsSameAsEntered(phone string) error {
	return p.checkEcho(ResultPhone, phone)
}

func (p *RegistrationPage) CheckCountryIsSameAsEntered(country string) error {
	return p.checkEcho(ResultCountry, country)
}

func (p *RegistrationPage) CheckEmailIsSameAsEntered(email string) error {
	return p.checkEcho(ResultEmail, email)
}

// CheckRegistrationEchoed - checks the echo of every non-empty field of r
func (p *RegistrationPage) CheckRegistrationEchoed(r entities.Registration) error {
	checks := []struct {
		value string
		check func(string) error
	}{
		{r.FirstName, p.CheckFirstNameIsSameAsEntered},
		{r.LastName, p.CheckLastNameIsSameAsEntered},
		{r.Phone, p.CheckPhoneIsSameAsEntered},
		{r.Country, p.CheckCountryIsSameAsEntered},
		{r.Email, p.CheckEmailIsSameAsEntered},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		if err := c.check(c.value); err != nil {
			return err
		}
	}
	return nil
}
