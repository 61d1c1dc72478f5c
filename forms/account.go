package forms

import "strings"

// SignUpForm is the POST /sign-up payload
type SignUpForm struct {
	FirstName string `schema:"firstName" validate:"filled,min=2"`
	LastName  string `schema:"lastName" validate:"filled"`
	Email     string `schema:"email" validate:"filled,address"`
	Password  string `schema:"password" validate:"filled,password"`
}

var signUpMessages = map[string]string{
	"firstName.filled":  "First name is required.",
	"firstName.min":     "First name must be at least 2 characters.",
	"lastName.filled":   "Last name is required.",
	"email.filled":      "Email is required.",
	"email.address":     "Please enter a valid email address.",
	"password.filled":   "Password is required.",
	"password.password": "Password must be 8-12 chars and include lowercase, uppercase, number, symbol.",
}

// Validate trims the name and email fields and checks every rule
func (f *SignUpForm) Validate() Messages {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	return check(f, signUpMessages)
}

// LogInForm is the POST /log-in payload
type LogInForm struct {
	Email    string `schema:"email" validate:"filled"`
	Password string `schema:"password" validate:"filled"`
}

var logInMessages = map[string]string{
	"email.filled":    "Please enter your email.",
	"password.filled": "Please enter your password.",
}

// Validate trims the email and checks both fields are present
func (f *LogInForm) Validate() Messages {
	f.Email = strings.TrimSpace(f.Email)
	return check(f, logInMessages)
}
