package demosite

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"registration_e2e/application/pages"
	"registration_e2e/domain/entities"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	ts := httptest.NewServer(NewServer(logger))
	t.Cleanup(ts.Close)
	return ts
}

func fetch(t *testing.T, resp *http.Response, err error) *goquery.Document {
	t.Helper()
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func submit(t *testing.T, ts *httptest.Server, r entities.Registration) *goquery.Document {
	t.Helper()
	form := url.Values{
		"firstName": {r.FirstName},
		"lastName":  {r.LastName},
		"phone":     {r.Phone},
		"country":   {r.Country},
		"email":     {r.Email},
		"password":  {r.Password},
	}
	resp, err := http.PostForm(ts.URL+"/register", form)
	return fetch(t, resp, err)
}

var gurjeet = entities.Registration{
	FirstName: "Gurjeet",
	LastName:  "Bains",
	Phone:     "0224704325",
	Country:   "Belize",
	Email:     "sdc@fv.c",
	Password:  "12345678",
}

func TestForm_EmptyOnGet(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/", "/register"} {
		resp, err := http.Get(ts.URL + path)
		doc := fetch(t, resp, err)

		assert.Equal(t, 0, doc.Find("#results-section").Length(), path)
		assert.Equal(t, 1, doc.Find("#registerBtn").Length(), path)
		val, _ := doc.Find("#firstName").Attr("value")
		assert.Empty(t, val, path)
	}
}

// accessibleName approximates the name a browser gives a form control:
// the text of every label pointing at it, else its placeholder.
func accessibleName(doc *goquery.Document, input *goquery.Selection) string {
	id, _ := input.Attr("id")
	var parts []string
	doc.Find("label").Each(func(_ int, l *goquery.Selection) {
		if f, _ := l.Attr("for"); f != "" && f == id {
			parts = append(parts, strings.TrimSpace(l.Text()))
		}
	})
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	placeholder, _ := input.Attr("placeholder")
	return placeholder
}

func TestForm_RoleNamesResolveToOneInput(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL)
	doc := fetch(t, resp, err)

	fields := map[string]entities.Locator{
		"firstName":    pages.FirstNameField,
		"lastName":     pages.LastNameField,
		"phone":        pages.PhoneField,
		"emailAddress": pages.EmailField,
		"password":     pages.PasswordField,
	}
	for wantID, loc := range fields {
		var matched []string
		doc.Find("input").Each(func(_ int, input *goquery.Selection) {
			name := strings.ToLower(accessibleName(doc, input))
			if strings.Contains(name, strings.ToLower(loc.Name)) {
				id, _ := input.Attr("id")
				matched = append(matched, id)
			}
		})
		assert.Equal(t, []string{wantID}, matched, loc.String())
	}

	assert.Equal(t, "Register", strings.TrimSpace(doc.Find("button").Text()))
}

func TestForm_ReproducesLabelQuirks(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL)
	doc := fetch(t, resp, err)

	assert.Equal(t, "Last Name* Phone nunber*", accessibleName(doc, doc.Find("#lastName")))
	assert.Equal(t, "Enter phone number", accessibleName(doc, doc.Find("#phone")))
	assert.Equal(t, "Enter email", accessibleName(doc, doc.Find("#emailAddress")))
}

func TestForm_CountriesListed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL)
	doc := fetch(t, resp, err)

	var options []string
	doc.Find("#countries_dropdown_menu option").Each(func(_ int, s *goquery.Selection) {
		if v, _ := s.Attr("value"); v != "" {
			options = append(options, v)
		}
	})

	assert.Equal(t, entities.Countries, options)
	assert.Contains(t, options, "Belize")
}

func TestRegister_Success(t *testing.T) {
	ts := newTestServer(t)

	doc := submit(t, ts, gurjeet)

	section := doc.Find("#results-section")
	require.Equal(t, 1, section.Length())
	assert.Equal(t, entities.SuccessText, section.Find("#message").Text())
	assert.Equal(t, "First Name: Gurjeet", section.Find("#resultFn").Text())
	assert.Equal(t, "Last Name: Bains", section.Find("#resultLn").Text())
	assert.Equal(t, "Phone Number: 0224704325", section.Find("#resultPhone").Text())
	assert.Equal(t, "Country: Belize", section.Find("#country").Text())
	assert.Equal(t, "Email: sdc@fv.c", section.Find("#resultEmail").Text())

	selected, _ := doc.Find("#countries_dropdown_menu option[selected]").Attr("value")
	assert.Equal(t, "Belize", selected)
}

func TestRegister_Warnings(t *testing.T) {
	tests := []struct {
		name   string
		reg    entities.Registration
		banner string
	}{
		{"empty form", entities.Registration{}, entities.PasswordErrorText},
		{"short password", entities.Registration{Password: "123"}, entities.PasswordErrorText},
		{"missing phone", entities.Registration{Password: "123456"}, entities.PhoneErrorText},
		{"letters in phone", entities.Registration{Password: "123456", Phone: "dsfsdfcer3242"}, entities.PhoneErrorText},
	}

	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := submit(t, ts, tt.reg)

			section := doc.Find("#results-section")
			require.Equal(t, 1, section.Length())
			assert.Equal(t, tt.banner, section.Find("#message").Text())
			assert.Equal(t, 0, section.Find("#resultFn").Length(), "no echo on error")
		})
	}
}

func TestRegister_KeepsSubmittedValues(t *testing.T) {
	ts := newTestServer(t)

	doc := submit(t, ts, entities.Registration{Password: "123456", Phone: "dsfsdfcer3242"})

	phone, _ := doc.Find("#phone").Attr("value")
	password, _ := doc.Find("#password").Attr("value")
	assert.Equal(t, "dsfsdfcer3242", phone)
	assert.Equal(t, "123456", password)
}

func TestRegister_EscapesInput(t *testing.T) {
	ts := newTestServer(t)
	reg := gurjeet
	reg.FirstName = `<script>alert(1)</script>`

	doc := submit(t, ts, reg)

	assert.Equal(t, 0, doc.Find("#results-section script").Length())
	assert.Equal(t, "First Name: "+reg.FirstName, doc.Find("#resultFn").Text())
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestUnknownRouteIs404(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
