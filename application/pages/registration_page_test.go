package pages_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"registration_e2e/application/expect"
	"registration_e2e/application/pages"
	"registration_e2e/domain/entities"
	"registration_e2e/infrastructure/browser/browsertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formURL = "http://registration.test/"

var fast = expect.Options{Timeout: 100 * time.Millisecond, Interval: 5 * time.Millisecond}

var gurjeet = entities.Registration{
	FirstName: "Gurjeet",
	LastName:  "Bains",
	Phone:     "0224704325",
	Country:   "Belize",
	Email:     "sdc@fv.c",
	Password:  "12345678",
}

func openForm(t *testing.T) (*pages.RegistrationPage, *browsertest.Form) {
	t.Helper()
	form := browsertest.NewForm()
	page := pages.NewRegistrationPage(context.Background(), form, fast)
	require.NoError(t, page.Navigate(formURL))
	return page, form
}

func TestBasePage_NavigateRejectsEmptyURL(t *testing.T) {
	form := browsertest.NewForm()
	page := pages.NewBasePage(context.Background(), form, fast)

	err := page.Navigate("")

	assert.ErrorIs(t, err, entities.ErrConfig)
	assert.Empty(t, form.Calls(), "browser must not be reached")
}

func TestBasePage_NavigatePropagatesDriverError(t *testing.T) {
	form := browsertest.NewForm()
	dnsErr := errors.New("net::ERR_NAME_NOT_RESOLVED")
	form.FailOn(browsertest.OpNavigate, dnsErr)
	page := pages.NewBasePage(context.Background(), form, fast)

	err := page.Navigate(formURL)

	assert.Same(t, dnsErr, err)
}

func TestBasePage_Primitives(t *testing.T) {
	fake := browsertest.New()
	input := entities.CSS("#name")
	button := entities.CSS("#go")
	label := entities.CSS("#label")
	clicked := false
	fake.AddTextbox(input)
	fake.AddButton(button, func() { clicked = true })
	fake.SetText(label, "Hello", true)
	page := pages.NewBasePage(context.Background(), fake, fast)

	require.NoError(t, page.Fill(input, "value"))
	require.NoError(t, page.Click(button))
	text, err := page.ReadText(label)

	require.NoError(t, err)
	assert.Equal(t, "Hello", text)
	assert.True(t, clicked)
	assert.Equal(t, "value", fake.Value(input))
	assert.NotNil(t, page.Context())
	assert.Same(t, fake, page.Browser())
}

func TestBasePage_CardinalityErrors(t *testing.T) {
	fake := browsertest.New()
	dup := entities.CSS(".field")
	fake.AddTextbox(dup)
	fake.SetMatches(dup, 2)
	page := pages.NewBasePage(context.Background(), fake, fast)

	var locErr *entities.LocatorError

	err := page.Fill(dup, "x")
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, 2, locErr.Count)

	err = page.Click(entities.CSS("#missing"))
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, 0, locErr.Count)

	_, err = page.ReadText(entities.CSS("#missing"))
	assert.ErrorIs(t, err, entities.ErrLocatorCardinality)
}

func TestRegistrationPage_FillRoundTrip(t *testing.T) {
	values := []string{"Gurjeet", "Bains", "O'Neil", "Zoë", "a b c", ""}

	for _, v := range values {
		page, _ := openForm(t)

		page.FillFirstName(v).FillLastName(v).FillPhone(v).FillEmail(v)
		require.NoError(t, page.Err())

		getters := map[string]func() (string, error){
			"first name": page.FirstNameValue,
			"last name":  page.LastNameValue,
			"phone":      page.PhoneValue,
			"email":      page.EmailValue,
		}
		for name, get := range getters {
			got, err := get()
			require.NoError(t, err, name)
			assert.Equal(t, v, got, name)
		}
	}
}

func TestRegistrationPage_RegisterWithAllData(t *testing.T) {
	page, form := openForm(t)

	err := page.
		FillFirstName(gurjeet.FirstName).
		FillLastName(gurjeet.LastName).
		FillPhone(gurjeet.Phone).
		SelectCountry(gurjeet.Country).
		FillEmail(gurjeet.Email).
		FillPassword(gurjeet.Password).
		ClickRegister().
		Err()
	require.NoError(t, err)

	require.NoError(t, page.CheckSuccessMessageVisible())
	assert.NoError(t, page.CheckFirstNameIsSameAsEntered("Gurjeet"))
	assert.NoError(t, page.CheckLastNameIsSameAsEntered("Bains"))
	assert.NoError(t, page.CheckPhoneIsSameAsEntered("0224704325"))
	assert.NoError(t, page.CheckCountryIsSameAsEntered("Belize"))
	assert.NoError(t, page.CheckEmailIsSameAsEntered("sdc@fv.c"))
	assert.Equal(t, []entities.Registration{gurjeet}, form.Submissions())

	assert.ErrorIs(t, page.CheckPasswordErrorVisible(), entities.ErrAssertion)
	assert.ErrorIs(t, page.CheckPhoneErrorVisible(), entities.ErrAssertion)
}

func TestRegistrationPage_FillFormAndEcho(t *testing.T) {
	page, _ := openForm(t)
	mandatory := gurjeet
	mandatory.FirstName = ""

	require.NoError(t, page.FillForm(mandatory).ClickRegister().Err())

	require.NoError(t, page.CheckSuccessMessageVisible())
	assert.NoError(t, page.CheckRegistrationEchoed(mandatory))
}

func TestRegistrationPage_EchoMismatch(t *testing.T) {
	page, _ := openForm(t)
	require.NoError(t, page.FillForm(gurjeet).ClickRegister().Err())

	err := page.CheckLastNameIsSameAsEntered("Singh")

	var assertErr *entities.AssertionError
	require.ErrorAs(t, err, &assertErr)
	assert.Equal(t, "Singh", assertErr.Expected)
	assert.Equal(t, "Last Name: Bains", assertErr.Actual)
	assert.Equal(t, pages.ResultLastName.String(), assertErr.Locator.String())
}

func TestRegistrationPage_EmptySubmitShowsPasswordError(t *testing.T) {
	page, _ := openForm(t)

	require.NoError(t, page.ClickRegister().Err())

	assert.NoError(t, page.CheckPasswordErrorVisible())
	assert.ErrorIs(t, page.CheckSuccessMessageVisible(), entities.ErrAssertion)
	assert.ErrorIs(t, page.CheckFirstNameIsSameAsEntered(""), entities.ErrLocatorCardinality)
}

func TestRegistrationPage_ValidPasswordInvalidPhone(t *testing.T) {
	page, _ := openForm(t)

	require.NoError(t, page.FillPassword("123456").ClickRegister().Err())
	assert.NoError(t, page.CheckPhoneErrorVisible())

	require.NoError(t, page.FillPhone("dsfsdfcer3242").ClickRegister().Err())
	assert.NoError(t, page.CheckPhoneErrorVisible())
}

func TestRegistrationPage_UnknownCountry(t *testing.T) {
	page, form := openForm(t)

	err := page.SelectCountry("Atlantis").FillEmail("a@b.c").Err()

	assert.ErrorIs(t, err, entities.ErrUnknownOption)
	assert.Contains(t, err.Error(), "select country")
	assert.Empty(t, form.Value(pages.EmailField), "chain must stop at the first failure")
}

func TestRegistrationPage_StickyErrorShortCircuitsChecks(t *testing.T) {
	page, form := openForm(t)
	boom := errors.New("target closed")
	form.FailOn(browsertest.OpFill, boom)

	page.FillFirstName("Gurjeet").ClickRegister()

	assert.ErrorIs(t, page.Err(), boom)
	assert.ErrorIs(t, page.CheckSuccessMessageVisible(), boom)
	assert.ErrorIs(t, page.CheckEmailIsSameAsEntered("x"), boom)
	_, err := page.FirstNameValue()
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, form.Submissions())
}

func TestRegistrationPage_BannerMustBeVisible(t *testing.T) {
	page, form := openForm(t)
	form.SetText(pages.ResultsBanner, entities.SuccessText, false)

	err := page.CheckSuccessMessageVisible()

	var assertErr *entities.AssertionError
	require.ErrorAs(t, err, &assertErr)
	assert.Equal(t, "to be visible", assertErr.Condition)
}

func TestRegistrationPage_LocatorTable(t *testing.T) {
	assert.Equal(t, `role=textbox[name="First Name"]`, pages.FirstNameField.String())
	assert.Equal(t, `role=button[name="Register"]`, pages.RegisterButton.String())
	assert.Equal(t, "#countries_dropdown_menu", pages.CountryDropdown.String())
	assert.Equal(t, "#results-section >> #message", pages.ResultsBanner.String())
	assert.Equal(t, "#results-section >> #country", pages.ResultCountry.String())
}

func TestRegistrationPage_ClosedBrowserIsNotAnAssertion(t *testing.T) {
	page, form := openForm(t)
	require.NoError(t, page.FillForm(gurjeet).ClickRegister().Err())
	closed := errors.New("Target page, context or browser has been closed")
	form.FailOn(browsertest.OpIsVisible, closed)

	start := time.Now()
	err := page.CheckSuccessMessageVisible()

	assert.Same(t, closed, err)
	assert.NotErrorIs(t, err, entities.ErrAssertion)
	assert.Less(t, time.Since(start), fast.Timeout)
}
