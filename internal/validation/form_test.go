package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/validation"
)

func TestForm_OnlyFailingFieldBlocks(t *testing.T) {
	res := validation.Form(map[string]string{
		validation.FieldEmail:    "",
		validation.FieldPassword: "abcdef12",
	})

	assert.False(t, res.IsValid)

	email, failed := res.Failed(validation.FieldEmail)
	require.True(t, failed)
	assert.Equal(t, validation.SeverityError, email.Type)

	_, failed = res.Failed(validation.FieldPassword)
	assert.False(t, failed)
	assert.True(t, res.Errors[validation.FieldPassword].IsValid)
}

func TestForm_IgnoresUnknownKeys(t *testing.T) {
	res := validation.Form(map[string]string{
		validation.FieldName: "Maria",
		"favouriteColour":    "",
	})

	assert.True(t, res.IsValid)
	assert.Len(t, res.Errors, 1)
	assert.NotContains(t, res.Errors, "favouriteColour")
}

func TestForm_WarningStillValid(t *testing.T) {
	res := validation.Login("admin@example.com", "123456")

	assert.True(t, res.IsValid)
	assert.Equal(t, validation.SeverityWarning, res.Errors[validation.FieldPassword].Type)
}

func TestForm_ConfirmPassword(t *testing.T) {
	res := validation.Form(map[string]string{
		validation.FieldPassword:        "abcdef12",
		validation.FieldConfirmPassword: "abcdef13",
	})
	assert.False(t, res.IsValid)
	assert.Equal(t, config.TKeyValConfirmMismatch, res.Errors[validation.FieldConfirmPassword].Key)

	lone := validation.Form(map[string]string{validation.FieldConfirmPassword: "x"})
	assert.True(t, lone.IsValid, "confirmation without password is not checked")
	assert.Empty(t, lone.Errors)
}

func TestRegistration(t *testing.T) {
	good := validation.RegisterForm{
		Name:            "Ana Souza",
		Email:           "ana@example.com",
		Password:        "segredo123",
		ConfirmPassword: "segredo123",
		Phone:           "(11) 98765-4321",
		CPF:             "123.456.789-09",
	}
	res := validation.Registration(good)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)

	bad := good
	bad.ConfirmPassword = "outra"
	bad.CPF = "123"
	res = validation.Registration(bad)
	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors, 2)
	assert.Equal(t, config.TKeyValConfirmMismatch, res.Errors[validation.FieldConfirmPassword].Key)
	assert.Equal(t, config.TKeyValCPFLength, res.Errors[validation.FieldCPF].Key)

	empty := validation.Registration(validation.RegisterForm{})
	assert.Len(t, empty.Errors, 6)
}
