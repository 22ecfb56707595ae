package models

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound = errors.New("resource not found")

	// User & Authentication Errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user is inactive")

	// Token Errors
	ErrTokenInvalid        = errors.New("token is invalid")
	ErrTokenMalformed      = errors.New("token is malformed")
	ErrTokenExpired        = errors.New("token has expired")
	ErrTokenPayloadInvalid = errors.New("token payload is invalid")

	// Character & Scenario Errors
	ErrCharacterNotFound     = errors.New("character not found")
	ErrScenarioNotFound      = errors.New("scenario not found")
	ErrScenarioAlreadyExists = errors.New("scenario already exists")
	ErrInvalidScenario       = errors.New("invalid scenario data")

	// Story Generation Errors
	ErrStoryValidation       = errors.New("story validation failed")
	ErrStoryGenerationFailed = errors.New("story generation failed")

	// General Request Errors
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidInput = errors.New("invalid input data")
)

// Error codes returned in ErrorResponse.Code.
const (
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeWrongCredentials  = "WRONG_CREDENTIALS"
	ErrCodeDuplicateEmail    = "DUPLICATE_EMAIL"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeUserInactive      = "USER_INACTIVE"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeTokenInvalid      = "TOKEN_INVALID"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeDuplicateScenario = "DUPLICATE_SCENARIO"
	ErrCodeGenerationFailed  = "GENERATION_FAILED"
	ErrCodeTooManyRequests   = "TOO_MANY_REQUESTS"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// ValidationError carries a user-facing message and unwraps to the sentinel
// it classifies as, so handlers can map it with errors.Is.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// NewValidationError creates a ValidationError of the given kind.
func NewValidationError(kind error, message string) error {
	return &ValidationError{Kind: kind, Message: message}
}

// PublicMessage returns the user-facing message carried by err, if any.
func PublicMessage(err error) (string, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message, true
	}
	return "", false
}
