package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/api/validation"
)

func TestValidateCreateTeamRequest_Valid(t *testing.T) {
	errs := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name:        "Backend",
		Description: "Server-side work",
	})
	assert.Empty(t, errs)
}

func TestValidateCreateTeamRequest_MissingName(t *testing.T) {
	errs := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{})
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}

func TestValidateCreateTeamRequest_TooLong(t *testing.T) {
	errs := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name:        strings.Repeat("n", 256),
		Description: strings.Repeat("d", 1001),
	})
	assert.ElementsMatch(t, []string{"name", "description"}, fieldNames(errs))
}

func TestValidateJoinTeamRequest_Valid(t *testing.T) {
	assert.Empty(t, validation.ValidateJoinTeamRequest(validation.JoinTeamRequest{InviteCode: "A1B2C3"}))
	assert.Empty(t, validation.ValidateJoinTeamRequest(validation.JoinTeamRequest{InviteCode: "a1b2c3"}))
	assert.Empty(t, validation.ValidateJoinTeamRequest(validation.JoinTeamRequest{InviteCode: " A1B2C3 "}))
}

func TestValidateJoinTeamRequest_Missing(t *testing.T) {
	errs := validation.ValidateJoinTeamRequest(validation.JoinTeamRequest{})
	require.Len(t, errs, 1)
	assert.Equal(t, "inviteCode", errs[0].Field)
	assert.Equal(t, "inviteCode is required", errs[0].Message)
}

func TestValidateJoinTeamRequest_Malformed(t *testing.T) {
	for _, code := range []string{"ABC", "ABCDEFG", "AB-C12", "AB C12"} {
		errs := validation.ValidateJoinTeamRequest(validation.JoinTeamRequest{InviteCode: code})
		require.Len(t, errs, 1, "code %q", code)
		assert.Equal(t, "inviteCode", errs[0].Field)
	}
}
