// Package validation checks user-entered form fields. Validators never fail:
// every input, including empty or malformed text, yields a Result.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tartampluch/medconnect/internal/config"
)

// Severity classifies a Result for display.
type Severity string

const (
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// Result is the outcome of validating one field. Key is the translation
// key of Message, which holds the untranslated fallback text.
type Result struct {
	IsValid bool     `json:"isValid"`
	Message string   `json:"message"`
	Type    Severity `json:"type"`
	Key     string   `json:"-"`
}

func fail(key, msg string) Result {
	return Result{IsValid: false, Message: msg, Type: SeverityError, Key: key}
}

func pass(key, msg string) Result {
	return Result{IsValid: true, Message: msg, Type: SeveritySuccess, Key: key}
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern  = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
	// Matched against the digits only, so the optional punctuation never applies.
	phonePattern = regexp.MustCompile(`^\(?[1-9]{2}\)? ?(?:[2-8]|9[1-9])[0-9]{3}-?[0-9]{4}$`)
)

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Email requires a non-blank address of the form local@domain.tld.
// The raw input is matched, so surrounding spaces make it invalid.
func Email(email string) Result {
	switch {
	case blank(email):
		return fail(config.TKeyValEmailRequired, config.MsgValEmailRequired)
	case !emailPattern.MatchString(email):
		return fail(config.TKeyValEmailInvalid, config.MsgValEmailInvalid)
	}
	return pass(config.TKeyValEmailOK, config.MsgValEmailOK)
}

// Password rejects blank and short passwords and warns below the
// recommended length. Length counts characters, not bytes.
func Password(password string) Result {
	n := utf8.RuneCountInString(password)
	switch {
	case blank(password):
		return fail(config.TKeyValPasswordRequired, config.MsgValPasswordRequired)
	case n < config.PasswordMinLength:
		return fail(config.TKeyValPasswordShort, config.MsgValPasswordShort)
	case n < config.PasswordStrongLength:
		return Result{
			IsValid: true,
			Message: config.MsgValPasswordWeak,
			Type:    SeverityWarning,
			Key:     config.TKeyValPasswordWeak,
		}
	}
	return pass(config.TKeyValPasswordOK, config.MsgValPasswordOK)
}

// Name accepts Latin letters, Latin-1 accented letters and spaces, with at
// least two characters once trimmed.
func Name(name string) Result {
	switch {
	case blank(name):
		return fail(config.TKeyValNameRequired, config.MsgValNameRequired)
	case utf8.RuneCountInString(strings.TrimSpace(name)) < config.NameMinLength:
		return fail(config.TKeyValNameShort, config.MsgValNameShort)
	case !namePattern.MatchString(name):
		return fail(config.TKeyValNameLetters, config.MsgValNameLetters)
	}
	return pass(config.TKeyValNameOK, config.MsgValNameOK)
}

// ConfirmPassword checks that confirm repeats password exactly.
func ConfirmPassword(password, confirm string) Result {
	switch {
	case blank(confirm):
		return fail(config.TKeyValConfirmRequired, config.MsgValConfirmRequired)
	case password != confirm:
		return fail(config.TKeyValConfirmMismatch, config.MsgValConfirmMismatch)
	}
	return pass(config.TKeyValConfirmOK, config.MsgValConfirmOK)
}

// Phone accepts Brazilian landline and mobile numbers with area code, in
// any punctuation, e.g. "(11) 98765-4321".
func Phone(phone string) Result {
	switch {
	case blank(phone):
		return fail(config.TKeyValPhoneRequired, config.MsgValPhoneRequired)
	case !phonePattern.MatchString(digitsOnly(phone)):
		return fail(config.TKeyValPhoneInvalid, config.MsgValPhoneInvalid)
	}
	return pass(config.TKeyValPhoneOK, config.MsgValPhoneOK)
}

// CPF requires exactly eleven digits, ignoring punctuation.
func CPF(cpf string) Result {
	switch {
	case blank(cpf):
		return fail(config.TKeyValCPFRequired, config.MsgValCPFRequired)
	case len(digitsOnly(cpf)) != config.CPFDigits:
		return fail(config.TKeyValCPFLength, config.MsgValCPFLength)
	}
	return pass(config.TKeyValCPFOK, config.MsgValCPFOK)
}

// IsDigit reports whether r is an ASCII digit. Input widgets use it to filter
// keystrokes for the numeric fields.
func IsDigit(r rune) bool {
	return r <= unicode.MaxASCII && unicode.IsDigit(r)
}
