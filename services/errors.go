package services

import "errors"

// Shared sentinel errors, mapped to HTTP statuses in the handler layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business-rule errors.
	ErrValidationFailed    = errors.New("validation failed")
	ErrEmailRequired       = errors.New("email is required")
	ErrEmailInvalid        = errors.New("email address is invalid")
	ErrUsernameTooShort    = errors.New("username must be at least 3 characters")
	ErrPasswordTooWeak     = errors.New("password must be at least 8 characters and contain an uppercase letter, a lowercase letter and a digit")
	ErrCurrentPasswordMiss = errors.New("current password is required to change credentials")
	ErrInvalidSeason       = errors.New("season must be 1920 or later")
	ErrInvalidWeek         = errors.New("week must be between 1 and 22")
	ErrUnsupportedImage    = errors.New("unsupported image content type")

	// Conflicts.
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserUsernameConflict = errors.New("username is already in use")
	ErrTeamIDConflict       = errors.New("numeric team id is already assigned to another franchise")

	// Authentication and authorization.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInactiveUser       = errors.New("user account is inactive")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotRefreshToken    = errors.New("token is not a refresh token")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors.
	ErrUserNotFound      = errors.New("user not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrTeamNotFound      = errors.New("team not found")
	ErrGameNotFound      = errors.New("game not found")
	ErrInjuryNotFound    = errors.New("injury report not found")
	ErrBookmakerNotFound = errors.New("bookmaker not found")

	// Odds ingestion.
	ErrOddsFeedUnavailable = errors.New("odds feed is unavailable")
	ErrNoOddsForGame       = errors.New("no stored odds for this game")

	// Storage.
	ErrUploaderNotConfigured = errors.New("object storage is not configured")
)
