// Package store implements the data access layer of the portal: a typed
// facade over four independent record collections (users, chat messages,
// college cutoffs, scholarships) with exact-match filtering and
// distinct-value queries.
//
// Two implementations exist. MemStore keeps everything in process memory
// with insertion-ordered collections and integer id sequences; it is the
// canonical implementation and the one exercised by default. GormStore
// persists the same collections to SQLite through GORM, proving that the
// facade can be backed by a durable store without touching call sites.
//
// Read semantics shared by both implementations:
//   - List operations preserve insertion (creation) order.
//   - Filters combine provided criteria with logical AND; every criterion
//     is exact, case-sensitive equality. An empty filter matches all rows.
//   - Single-record lookups return (nil, nil) when nothing matches; a miss
//     is a normal outcome, not an error.
//   - Distinct-value queries return unique non-empty values sorted ascending.
package store

import (
	"context"
	"errors"

	"github.com/edupath/go-edupath-backend/internal/domain"
)

// Uniqueness conflicts surfaced by user creation. These are distinct from
// validation errors so the HTTP layer can map them to 409 responses.
var (
	// ErrDuplicateEmail indicates a user with the same email already exists.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateUsername indicates a user with the same username already exists.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrDuplicateFirebaseID indicates the external identity reference is
	// already linked to another account.
	ErrDuplicateFirebaseID = errors.New("identity already linked")
)

// NewUser carries the caller-supplied fields for user creation. ID and
// CreatedAt are assigned by the store.
type NewUser struct {
	Username   string
	Password   string
	Email      string
	FirebaseID *string
}

// NewChatMessage carries the caller-supplied fields for message creation.
// ID and Timestamp are assigned by the store. A nil UserID creates a
// "global" message visible in every user's history.
type NewChatMessage struct {
	UserID        *int
	Content       string
	IsUserMessage bool
}

// CutoffFilter selects college cutoffs by exact match on the set fields.
// Empty fields are not applied. The zero value matches every row.
type CutoffFilter struct {
	University   string
	Program      string
	Country      string
	AcademicYear string
}

// Matches reports whether c satisfies every set criterion.
func (f CutoffFilter) Matches(c domain.CollegeCutoff) bool {
	if f.University != "" && c.University != f.University {
		return false
	}
	if f.Program != "" && c.Program != f.Program {
		return false
	}
	if f.Country != "" && c.Country != f.Country {
		return false
	}
	if f.AcademicYear != "" && c.AcademicYear != f.AcademicYear {
		return false
	}
	return true
}

// ScholarshipFilter selects scholarships by exact match on the set fields.
// Empty fields are not applied. The zero value matches every row.
type ScholarshipFilter struct {
	FieldOfStudy string
	Amount       string
	Deadline     string
	Eligibility  string
}

// Matches reports whether s satisfies every set criterion.
func (f ScholarshipFilter) Matches(s domain.Scholarship) bool {
	if f.FieldOfStudy != "" && s.FieldOfStudy != f.FieldOfStudy {
		return false
	}
	if f.Amount != "" && s.Amount != f.Amount {
		return false
	}
	if f.Deadline != "" && s.Deadline != f.Deadline {
		return false
	}
	if f.Eligibility != "" && s.Eligibility != f.Eligibility {
		return false
	}
	return true
}

// Store is the typed operation surface the rest of the application calls.
// Implementations must be safe for concurrent use; every operation is
// individually atomic with no cross-operation guarantees.
type Store interface {
	// CreateUser assigns the next user id, stores the record, and returns
	// it. Returns ErrDuplicateEmail, ErrDuplicateUsername, or
	// ErrDuplicateFirebaseID when a uniqueness constraint is violated; the
	// collection is left unchanged in that case.
	CreateUser(ctx context.Context, in NewUser) (*domain.User, error)

	// GetUser returns the user with the given id, or (nil, nil).
	GetUser(ctx context.Context, id int) (*domain.User, error)

	// GetUserByUsername returns the matching user, or (nil, nil).
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetUserByEmail returns the matching user, or (nil, nil).
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetUserByFirebaseID returns the user linked to the external identity
	// reference, or (nil, nil).
	GetUserByFirebaseID(ctx context.Context, firebaseID string) (*domain.User, error)

	// CreateChatMessage assigns the next message id and a server-side
	// timestamp, stores the record, and returns it.
	CreateChatMessage(ctx context.Context, in NewChatMessage) (*domain.ChatMessage, error)

	// ListChatMessages returns the user's history oldest first: every
	// message owned by userID plus every global (ownerless) message.
	// A limit > 0 truncates to the most recent limit entries while keeping
	// oldest-first order.
	ListChatMessages(ctx context.Context, userID int, limit int) ([]domain.ChatMessage, error)

	// CreateCollegeCutoff assigns the next cutoff id, stores the record,
	// and returns it. Duplicate (university, program, year) tuples are
	// permitted.
	CreateCollegeCutoff(ctx context.Context, c domain.CollegeCutoff) (*domain.CollegeCutoff, error)

	// ListCollegeCutoffs returns cutoffs matching the filter in insertion
	// order. The zero filter returns the whole collection.
	ListCollegeCutoffs(ctx context.Context, f CutoffFilter) ([]domain.CollegeCutoff, error)

	// CountCollegeCutoffs returns the collection size (used for ETags).
	CountCollegeCutoffs(ctx context.Context) (int64, error)

	// DistinctPrograms returns the unique non-empty program names, sorted.
	DistinctPrograms(ctx context.Context) ([]string, error)

	// DistinctUniversities returns the unique non-empty university names, sorted.
	DistinctUniversities(ctx context.Context) ([]string, error)

	// DistinctCountries returns the unique non-empty country names, sorted.
	DistinctCountries(ctx context.Context) ([]string, error)

	// CreateScholarship assigns the next scholarship id, stores the record,
	// and returns it.
	CreateScholarship(ctx context.Context, s domain.Scholarship) (*domain.Scholarship, error)

	// ListScholarships returns scholarships matching the filter in
	// insertion order. The zero filter returns the whole collection.
	ListScholarships(ctx context.Context, f ScholarshipFilter) ([]domain.Scholarship, error)
}
