// Package services implements the application logic between the HTTP layer
// and the store: input validation, uniqueness conflict mapping, and
// history assembly. This file centralizes service-level error values so
// handlers can translate them into HTTP responses consistently.
package services

import "errors"

// Validation errors (→ 400 at the HTTP layer).
var (
	// ErrUsernameRequired is returned when a registration omits the username.
	ErrUsernameRequired = errors.New("username is required")

	// ErrEmailRequired is returned when a registration omits the email.
	ErrEmailRequired = errors.New("email is required")

	// ErrInvalidEmail is returned when the email does not parse as an address.
	ErrInvalidEmail = errors.New("email is not a valid address")

	// ErrPasswordRequired is returned when a registration omits the password
	// placeholder.
	ErrPasswordRequired = errors.New("password is required")

	// ErrEmptyContent is returned when a chat message has no content.
	ErrEmptyContent = errors.New("message content is empty")

	// ErrContentTooLong is returned when a chat message exceeds the
	// configured rune limit.
	ErrContentTooLong = errors.New("message content too long")

	// ErrIncompleteCutoff is returned when a cutoff row is missing one of
	// its required fields.
	ErrIncompleteCutoff = errors.New("all cutoff fields are required")

	// ErrIncompleteScholarship is returned when a scholarship row is
	// missing one of its required fields.
	ErrIncompleteScholarship = errors.New("all scholarship fields are required")
)

// Conflict errors (→ 409 at the HTTP layer). These re-export the store's
// uniqueness sentinels so handlers depend on one package for error checks.
var (
	// ErrEmailTaken indicates a user with the email already exists.
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrUsernameTaken indicates a user with the username already exists.
	ErrUsernameTaken = errors.New("user with this username already exists")

	// ErrIdentityLinked indicates the external identity reference is
	// already attached to another account.
	ErrIdentityLinked = errors.New("identity already linked to another account")
)
