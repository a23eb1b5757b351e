package helpers

import (
	"net/url"
	"strings"
)

// FieldErrors maps a form field name to the first error reported for it.
type FieldErrors map[string]string

func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

type LoginForm struct {
	Email    string
	Password string
	Errors   FieldErrors
}

func NewLoginForm(values url.Values) *LoginForm {
	return &LoginForm{
		Email:    NormalizeEmail(values.Get("email")),
		Password: values.Get("password"),
		Errors:   FieldErrors{},
	}
}

func (f *LoginForm) Validate() bool {
	if f.Email == "" {
		f.Errors.Add("email", "Email address is required.")
	} else if err := ValidateEmail(f.Email); err != nil {
		f.Errors.Add("email", "Enter a valid email address.")
	}
	if f.Password == "" {
		f.Errors.Add("password", "Password is required.")
	}
	return f.Errors.Valid()
}

// Values returns the submitted fields that are safe to echo back into the form.
func (f *LoginForm) Values() map[string]string {
	return map[string]string{"email": f.Email}
}

type RegistrationForm struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password1 string
	Password2 string
	Errors    FieldErrors
}

func NewRegistrationForm(values url.Values) *RegistrationForm {
	return &RegistrationForm{
		Email:     NormalizeEmail(values.Get("email")),
		Username:  strings.TrimSpace(values.Get("username")),
		FirstName: strings.TrimSpace(values.Get("first_name")),
		LastName:  strings.TrimSpace(values.Get("last_name")),
		Password1: values.Get("password1"),
		Password2: values.Get("password2"),
		Errors:    FieldErrors{},
	}
}

func (f *RegistrationForm) Validate() bool {
	if f.Email == "" {
		f.Errors.Add("email", "Email address is required.")
	} else if err := ValidateEmail(f.Email); err != nil {
		f.Errors.Add("email", "Enter a valid email address.")
	}

	if err := ValidateUsername(f.Username); err != nil {
		f.Errors.Add("username", "Username "+err.Error()+".")
	}

	if f.FirstName == "" {
		f.Errors.Add("first_name", "First name is required.")
	} else if err := ValidateName(f.FirstName); err != nil {
		f.Errors.Add("first_name", "First name "+err.Error()+".")
	}
	if err := ValidateName(f.LastName); err != nil {
		f.Errors.Add("last_name", "Last name "+err.Error()+".")
	}

	if f.Password1 == "" {
		f.Errors.Add("password1", "Password is required.")
	} else if err := ValidatePassword(f.Password1, f.Username, f.Email, f.FirstName, f.LastName); err != nil {
		f.Errors.Add("password1", "Password "+err.Error()+".")
	}
	if f.Password2 == "" {
		f.Errors.Add("password2", "Please confirm your password.")
	} else if f.Password1 != f.Password2 {
		f.Errors.Add("password2", "The two password fields didn't match.")
	}

	return f.Errors.Valid()
}

func (f *RegistrationForm) Values() map[string]string {
	return map[string]string{
		"email":      f.Email,
		"username":   f.Username,
		"first_name": f.FirstName,
		"last_name":  f.LastName,
	}
}
