// Package services defines the business logic for accounts, supportive chat,
// and daily check-in streaks. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

// Account-related errors.
var (
	// ErrDuplicateUser indicates the username or email is already registered.
	ErrDuplicateUser = errors.New("username or email already taken")

	// ErrInvalidCredentials is returned when login fails, deliberately without
	// distinguishing an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrWeakPassword is returned when a registration password is shorter than
	// the minimum length.
	ErrWeakPassword = errors.New("password must be at least 6 characters")

	// ErrMissingFields is returned when registration omits a required field.
	ErrMissingFields = errors.New("username, email and password are required")
)

// Chat-related errors.
var (
	// ErrEmptyMessage is returned when a chat request contains an empty message.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrTooLong is returned when a chat message exceeds the maximum
	// configured length limit.
	ErrTooLong = errors.New("message too long")
)
