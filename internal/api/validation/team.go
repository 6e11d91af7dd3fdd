package validation

import (
	"regexp"
	"strings"
)

var inviteCodeRegex = regexp.MustCompile(`^[0-9A-Za-z]{6}$`)

// CreateTeamRequest mirrors the fields needed for create team validation.
type CreateTeamRequest struct {
	Name        string
	Description string
}

// ValidateCreateTeamRequest validates the fields of a create team request.
func ValidateCreateTeamRequest(req CreateTeamRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > 255 {
		errs = append(errs, FieldError{Field: "name", Message: "name must be at most 255 characters"})
	}

	if len(req.Description) > 1000 {
		errs = append(errs, FieldError{Field: "description", Message: "description must be at most 1000 characters"})
	}

	return errs
}

// JoinTeamRequest mirrors the fields needed for join team validation.
type JoinTeamRequest struct {
	InviteCode string
}

// ValidateJoinTeamRequest validates the fields of a join team request.
// Case is accepted either way; the service upper-cases before lookup.
func ValidateJoinTeamRequest(req JoinTeamRequest) []FieldError {
	var errs []FieldError

	code := strings.TrimSpace(req.InviteCode)
	if code == "" {
		errs = append(errs, FieldError{Field: "inviteCode", Message: "inviteCode is required"})
	} else if !inviteCodeRegex.MatchString(code) {
		errs = append(errs, FieldError{Field: "inviteCode", Message: "inviteCode must be 6 alphanumeric characters"})
	}

	return errs
}
