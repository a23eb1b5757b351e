package helpers

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginForm_Validate(t *testing.T) {
	form := NewLoginForm(url.Values{"email": {" Jane@Example.com "}, "password": {"secret"}})
	assert.True(t, form.Validate())
	assert.Equal(t, "jane@example.com", form.Email)
	assert.Equal(t, map[string]string{"email": "jane@example.com"}, form.Values())

	form = NewLoginForm(url.Values{"email": {"not-an-email"}})
	assert.False(t, form.Validate())
	assert.Equal(t, "Enter a valid email address.", form.Errors["email"])
	assert.Equal(t, "Password is required.", form.Errors["password"])

	form = NewLoginForm(url.Values{})
	assert.False(t, form.Validate())
	assert.Equal(t, "Email address is required.", form.Errors["email"])
}

func validRegistration() url.Values {
	return url.Values{
		"email":      {"jane@example.com"},
		"username":   {"jane_d"},
		"first_name": {"Jane"},
		"last_name":  {"Doe"},
		"password1":  {"Tr0ub4dor&3"},
		"password2":  {"Tr0ub4dor&3"},
	}
}

func TestRegistrationForm_Validate(t *testing.T) {
	form := NewRegistrationForm(validRegistration())
	assert.True(t, form.Validate())
	assert.Empty(t, form.Errors)
	assert.NotContains(t, form.Values(), "password1")
}

func TestRegistrationForm_FieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{name: "bad email", field: "email", value: "jane", want: "email"},
		{name: "missing username", field: "username", value: "", want: "username"},
		{name: "bad username", field: "username", value: "jane d", want: "username"},
		{name: "missing first name", field: "first_name", value: "", want: "first_name"},
		{name: "weak password", field: "password1", value: "12345678", want: "password1"},
		{name: "password over 72 bytes", field: "password1", value: "Tr0ub4dor&3" + strings.Repeat("x", 70), want: "password1"},
		{name: "mismatch", field: "password2", value: "Tr0ub4dor&4", want: "password2"},
		{name: "missing confirmation", field: "password2", value: "", want: "password2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validRegistration()
			values.Set(tt.field, tt.value)
			form := NewRegistrationForm(values)
			assert.False(t, form.Validate())
			assert.Contains(t, form.Errors, tt.want)
		})
	}
}

func TestFieldErrors_KeepsFirst(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("email", "first")
	errs.Add("email", "second")
	assert.Equal(t, "first", errs["email"])
	assert.False(t, errs.Valid())
}
