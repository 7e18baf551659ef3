package entities

import "unicode/utf8"

// Banner texts rendered by the registration form
const (
	SuccessText       = "Successfully registered the following information"
	PasswordErrorText = "The password should contain between [6,20] characters!"
	PhoneErrorText    = "The phone number should contain at least 10 characters!"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 20
	MinPhoneLength    = 10
)

// Countries offered by the country dropdown
var Countries = []string{
	"Argentina",
	"Australia",
	"Belize",
	"Brazil",
	"Canada",
	"Germany",
	"India",
	"New Zealand",
	"Romania",
	"United Kingdom",
	"United States",
}

// Registration holds the values of one registration form submission
type Registration struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Country   string `json:"country,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
}

// OutcomeKind represents which banner a submission produces
type OutcomeKind string

const (
	OutcomeSuccess       OutcomeKind = "success"
	OutcomePasswordError OutcomeKind = "password_error"
	OutcomePhoneError    OutcomeKind = "phone_error"
)

// Outcome is the result of submitting a Registration
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Banner string      `json:"banner"`
}

// Success reports whether the submission was accepted
func (o Outcome) Success() bool {
	return o.Kind == OutcomeSuccess
}

// Evaluate - applies the form's validation rules, password first, then phone
func Evaluate(r Registration) Outcome {
	n := utf8.RuneCountInString(r.Password)
	if n < MinPasswordLength || n > MaxPasswordLength {
		return Outcome{Kind: OutcomePasswordError, Banner: PasswordErrorText}
	}
	if !validPhone(r.Phone) {
		return Outcome{Kind: OutcomePhoneError, Banner: PhoneErrorText}
	}
	return Outcome{Kind: OutcomeSuccess, Banner: SuccessText}
}

func validPhone(phone string) bool {
	if len(phone) < MinPhoneLength {
		return false
	}
	for _, c := range phone {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
