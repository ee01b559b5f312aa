// Package services – UserService
//
// This file implements UserService, which owns account registration and
// lookup. Registration validates required fields and the email format,
// then maps store-level uniqueness conflicts onto the service sentinels;
// a rejected registration never leaves a partial record behind. Real
// credentials live with the external identity provider, so the password
// field is stored verbatim as an opaque placeholder.
package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/edupath/go-edupath-backend/internal/domain"
	"github.com/edupath/go-edupath-backend/internal/store"
)

// UserService provides account registration and lookup operations.
type UserService struct {
	// Store is the backing record store.
	Store store.Store
}

// NewUserService constructs a UserService over the given store.
func NewUserService(s store.Store) *UserService {
	return &UserService{Store: s}
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Username   string
	Password   string
	Email      string
	FirebaseID *string
}

// Register validates the input and creates the account.
// Returns a validation sentinel for malformed input, ErrEmailTaken /
// ErrUsernameTaken / ErrIdentityLinked on conflict.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	tr := otel.Tracer("services/UserService")
	ctx, span := tr.Start(ctx, "Register",
		trace.WithAttributes(attribute.String("user.name", in.Username)))
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.Username == "" {
		return nil, ErrUsernameRequired
	}
	if in.Email == "" {
		return nil, ErrEmailRequired
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	if in.Password == "" {
		return nil, ErrPasswordRequired
	}
	if in.FirebaseID != nil && strings.TrimSpace(*in.FirebaseID) == "" {
		in.FirebaseID = nil
	}

	u, err := s.Store.CreateUser(ctx, store.NewUser{
		Username:   in.Username,
		Password:   in.Password,
		Email:      in.Email,
		FirebaseID: in.FirebaseID,
	})
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		return nil, ErrEmailTaken
	case errors.Is(err, store.ErrDuplicateUsername):
		return nil, ErrUsernameTaken
	case errors.Is(err, store.ErrDuplicateFirebaseID):
		return nil, ErrIdentityLinked
	case err != nil:
		return nil, err
	}
	return u, nil
}

// ByEmail returns the user with the given email, or (nil, nil).
func (s *UserService) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.Store.GetUserByEmail(ctx, strings.TrimSpace(email))
}

// ByUsername returns the user with the given username, or (nil, nil).
func (s *UserService) ByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.Store.GetUserByUsername(ctx, strings.TrimSpace(username))
}

// ByFirebaseID returns the user linked to the identity-provider subject id,
// or (nil, nil). A miss is the normal first-login outcome: the caller is
// expected to create the profile.
func (s *UserService) ByFirebaseID(ctx context.Context, firebaseID string) (*domain.User, error) {
	return s.Store.GetUserByFirebaseID(ctx, strings.TrimSpace(firebaseID))
}
