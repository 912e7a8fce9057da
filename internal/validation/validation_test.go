package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/validation"
)

type want struct {
	valid bool
	kind  validation.Severity
	key   string
}

func check(t *testing.T, got validation.Result, w want) {
	t.Helper()
	assert.Equal(t, w.valid, got.IsValid)
	assert.Equal(t, w.kind, got.Type)
	assert.Equal(t, w.key, got.Key)
	assert.NotEmpty(t, got.Message)
}

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want want
	}{
		{"", want{false, validation.SeverityError, config.TKeyValEmailRequired}},
		{"   ", want{false, validation.SeverityError, config.TKeyValEmailRequired}},
		{"a@b", want{false, validation.SeverityError, config.TKeyValEmailInvalid}},
		{"a b@c.com", want{false, validation.SeverityError, config.TKeyValEmailInvalid}},
		{" a@b.co", want{false, validation.SeverityError, config.TKeyValEmailInvalid}},
		{"a@@b.co", want{false, validation.SeverityError, config.TKeyValEmailInvalid}},
		{"a@b.co", want{true, validation.SeveritySuccess, config.TKeyValEmailOK}},
		{"paciente@example.com", want{true, validation.SeveritySuccess, config.TKeyValEmailOK}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			check(t, validation.Email(tt.in), tt.want)
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		in   string
		want want
	}{
		{"", want{false, validation.SeverityError, config.TKeyValPasswordRequired}},
		{"      ", want{false, validation.SeverityError, config.TKeyValPasswordRequired}},
		{"12345", want{false, validation.SeverityError, config.TKeyValPasswordShort}},
		{"123456", want{true, validation.SeverityWarning, config.TKeyValPasswordWeak}},
		{"1234567", want{true, validation.SeverityWarning, config.TKeyValPasswordWeak}},
		{"12345678", want{true, validation.SeveritySuccess, config.TKeyValPasswordOK}},
		{"çãõéíú", want{true, validation.SeverityWarning, config.TKeyValPasswordWeak}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			check(t, validation.Password(tt.in), tt.want)
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want want
	}{
		{"", want{false, validation.SeverityError, config.TKeyValNameRequired}},
		{"  ", want{false, validation.SeverityError, config.TKeyValNameRequired}},
		{"A", want{false, validation.SeverityError, config.TKeyValNameShort}},
		{" A ", want{false, validation.SeverityError, config.TKeyValNameShort}},
		{"Ana3", want{false, validation.SeverityError, config.TKeyValNameLetters}},
		{"Ana-Maria", want{false, validation.SeverityError, config.TKeyValNameLetters}},
		{"Jo", want{true, validation.SeveritySuccess, config.TKeyValNameOK}},
		{"José Conceição", want{true, validation.SeveritySuccess, config.TKeyValNameOK}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			check(t, validation.Name(tt.in), tt.want)
		})
	}
}

func TestConfirmPassword(t *testing.T) {
	check(t, validation.ConfirmPassword("abcdef", ""), want{false, validation.SeverityError, config.TKeyValConfirmRequired})
	check(t, validation.ConfirmPassword("abcdef", "abcdeg"), want{false, validation.SeverityError, config.TKeyValConfirmMismatch})
	check(t, validation.ConfirmPassword("abcdef", "abcdef"), want{true, validation.SeveritySuccess, config.TKeyValConfirmOK})
}

func TestPhone(t *testing.T) {
	tests := []struct {
		in   string
		want want
	}{
		{"", want{false, validation.SeverityError, config.TKeyValPhoneRequired}},
		{"(11) 98765-4321", want{true, validation.SeveritySuccess, config.TKeyValPhoneOK}},
		{"11987654321", want{true, validation.SeveritySuccess, config.TKeyValPhoneOK}},
		{"(21) 3456-7890", want{true, validation.SeveritySuccess, config.TKeyValPhoneOK}},
		{"(01) 98765-4321", want{false, validation.SeverityError, config.TKeyValPhoneInvalid}},
		{"(11) 90765-4321", want{false, validation.SeverityError, config.TKeyValPhoneInvalid}},
		{"(11) 1765-4321", want{false, validation.SeverityError, config.TKeyValPhoneInvalid}},
		{"12345", want{false, validation.SeverityError, config.TKeyValPhoneInvalid}},
		{"telefone", want{false, validation.SeverityError, config.TKeyValPhoneInvalid}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			check(t, validation.Phone(tt.in), tt.want)
		})
	}
}

func TestCPF(t *testing.T) {
	check(t, validation.CPF(""), want{false, validation.SeverityError, config.TKeyValCPFRequired})
	check(t, validation.CPF("123.456.789-0"), want{false, validation.SeverityError, config.TKeyValCPFLength})
	check(t, validation.CPF("123.456.789-09"), want{true, validation.SeveritySuccess, config.TKeyValCPFOK})
	check(t, validation.CPF("12345678909"), want{true, validation.SeveritySuccess, config.TKeyValCPFOK})
}

func TestValidators_NeverPanic(t *testing.T) {
	inputs := []string{"", "\x00", "\xff\xfe", strings.Repeat("é", 10000), "@", "(", "\t\n"}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			validation.Email(in)
			validation.Password(in)
			validation.Name(in)
			validation.Phone(in)
			validation.CPF(in)
			validation.ConfirmPassword(in, in)
		})
	}
}

func TestIsDigit(t *testing.T) {
	assert.True(t, validation.IsDigit('7'))
	assert.False(t, validation.IsDigit('a'))
	assert.False(t, validation.IsDigit('٣'), "non-ASCII digits are rejected")
}

// TestValidators_Idempotent runs every validator twice on the same input.
func TestValidators_Idempotent(t *testing.T) {
	inputs := []string{"", "   ", "ana@example.com", "ana@", "123456", "12345678", "Ana Souza", "A",
		"(11) 98765-4321", "123.456.789-09", strings.Repeat("x", 300), "çãé@ü.br"}

	single := map[string]func(string) validation.Result{
		"Email":    validation.Email,
		"Password": validation.Password,
		"Name":     validation.Name,
		"Phone":    validation.Phone,
		"CPF":      validation.CPF,
	}
	for name, fn := range single {
		t.Run(name, func(t *testing.T) {
			for _, in := range inputs {
				assert.Equal(t, fn(in), fn(in), "input %q", in)
			}
		})
	}

	t.Run("ConfirmPassword", func(t *testing.T) {
		for _, a := range inputs {
			for _, b := range []string{a, "", "123456"} {
				assert.Equal(t, validation.ConfirmPassword(a, b), validation.ConfirmPassword(a, b))
			}
		}
	})

	t.Run("Form", func(t *testing.T) {
		fields := map[string]string{
			validation.FieldEmail:    "ana@",
			validation.FieldPassword: "123",
			validation.FieldName:     "Ana",
			validation.FieldPhone:    "",
			"unknown":                "x",
		}
		assert.Equal(t, validation.Form(fields), validation.Form(fields))

		reg := validation.RegisterForm{Name: "A", Email: "x", Password: "123456", ConfirmPassword: "1234567"}
		assert.Equal(t, validation.Registration(reg), validation.Registration(reg))
		assert.Equal(t, validation.Login("", ""), validation.Login("", ""))
	})
}
