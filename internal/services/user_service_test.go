package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edupath/go-edupath-backend/internal/store"
)

func TestUserService_Register_OK(t *testing.T) {
	svc := NewUserService(store.NewMemStore())

	u, err := svc.Register(context.Background(), RegisterInput{
		Username: "  ada  ",
		Password: "secret",
		Email:    " ada@example.com ",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("expected id 1, got %d", u.ID)
	}
	if u.Username != "ada" || u.Email != "ada@example.com" {
		t.Fatalf("input not trimmed: %+v", u)
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	svc := NewUserService(store.NewMemStore())
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"missing username", RegisterInput{Password: "x", Email: "a@b.com"}, ErrUsernameRequired},
		{"missing email", RegisterInput{Username: "ada", Password: "x"}, ErrEmailRequired},
		{"bad email", RegisterInput{Username: "ada", Password: "x", Email: "not-an-email"}, ErrInvalidEmail},
		{"missing password", RegisterInput{Username: "ada", Email: "a@b.com"}, ErrPasswordRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUserService_Register_ConflictMapping(t *testing.T) {
	svc := NewUserService(store.NewMemStore())
	ctx := context.Background()

	fid := "fb-1"
	if _, err := svc.Register(ctx, RegisterInput{Username: "ada", Password: "x", Email: "ada@example.com", FirebaseID: &fid}); err != nil {
		t.Fatalf("seed register: %v", err)
	}

	if _, err := svc.Register(ctx, RegisterInput{Username: "other", Password: "x", Email: "ada@example.com"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "ada", Password: "x", Email: "a2@example.com"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	fid2 := "fb-1"
	if _, err := svc.Register(ctx, RegisterInput{Username: "grace", Password: "x", Email: "g@example.com", FirebaseID: &fid2}); !errors.Is(err, ErrIdentityLinked) {
		t.Fatalf("expected ErrIdentityLinked, got %v", err)
	}
}

func TestUserService_Register_BlankFirebaseIDBecomesNil(t *testing.T) {
	svc := NewUserService(store.NewMemStore())
	ctx := context.Background()

	blank := "   "
	u1, err := svc.Register(ctx, RegisterInput{Username: "ada", Password: "x", Email: "a@example.com", FirebaseID: &blank})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	if u1.FirebaseID != nil {
		t.Fatalf("blank firebase id must be stored as nil: %+v", u1)
	}

	// A second account with a blank id must not collide.
	blank2 := ""
	if _, err := svc.Register(ctx, RegisterInput{Username: "grace", Password: "x", Email: "g@example.com", FirebaseID: &blank2}); err != nil {
		t.Fatalf("second register: %v", err)
	}
}

func TestUserService_Lookups_MissIsNilNil(t *testing.T) {
	svc := NewUserService(store.NewMemStore())
	ctx := context.Background()

	if u, err := svc.ByEmail(ctx, "nobody@example.com"); u != nil || err != nil {
		t.Fatalf("ByEmail miss: (%v, %v)", u, err)
	}
	if u, err := svc.ByUsername(ctx, "nobody"); u != nil || err != nil {
		t.Fatalf("ByUsername miss: (%v, %v)", u, err)
	}
	if u, err := svc.ByFirebaseID(ctx, "fb-none"); u != nil || err != nil {
		t.Fatalf("ByFirebaseID miss: (%v, %v)", u, err)
	}
}
