package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/api/validation"
)

func fieldNames(errs []validation.FieldError) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func TestValidateRegisterRequest_Valid(t *testing.T) {
	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	assert.Empty(t, errs)
}

func TestValidateRegisterRequest_AllMissing(t *testing.T) {
	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{})
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fieldNames(errs))
}

func TestValidateRegisterRequest_BadEmail(t *testing.T) {
	for _, email := range []string{"not-an-email", "a@b", "a b@example.com", "@example.com"} {
		errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
			Name:     "Alice",
			Email:    email,
			Password: "secret1",
		})
		require.Len(t, errs, 1, "email %q", email)
		assert.Equal(t, "email", errs[0].Field)
	}
}

func TestValidateRegisterRequest_ShortPassword(t *testing.T) {
	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "12345",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "password", errs[0].Field)
	assert.Equal(t, "password must be at least 6 characters", errs[0].Message)
}

func TestValidateRegisterRequest_NameTooLong(t *testing.T) {
	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Name:     strings.Repeat("x", 256),
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}

func TestValidateRegisterRequest_WhitespaceName(t *testing.T) {
	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Name:     "   ",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}

func TestValidateLoginRequest(t *testing.T) {
	assert.Empty(t, validation.ValidateLoginRequest(validation.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret1",
	}))

	errs := validation.ValidateLoginRequest(validation.LoginRequest{})
	assert.ElementsMatch(t, []string{"email", "password"}, fieldNames(errs))
}
