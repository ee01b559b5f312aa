package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/edupath/go-edupath-backend/internal/domain"
)

// MemStore is the in-memory Store implementation. Collections are plain
// slices so insertion order falls out naturally; each collection has its
// own id sequence starting at 1. State lives for the process lifetime.
//
// A single RWMutex guards all collections: every operation is small and
// runs to completion, so coarse locking keeps each operation atomic
// without measurable contention at the target data volumes.
type MemStore struct {
	mu sync.RWMutex

	users        []domain.User
	messages     []domain.ChatMessage
	cutoffs      []domain.CollegeCutoff
	scholarships []domain.Scholarship

	nextUserID        int
	nextMessageID     int
	nextCutoffID      int
	nextScholarshipID int

	// now is swappable for deterministic timestamps in tests.
	now func() time.Time
}

// collator orders distinct-value lists. Collation is deterministic and
// ascending for the English locale used by the reference data.
var collator = collate.New(language.English)

// NewMemStore returns an empty MemStore with all id sequences at 1.
func NewMemStore() *MemStore {
	return &MemStore{
		nextUserID:        1,
		nextMessageID:     1,
		nextCutoffID:      1,
		nextScholarshipID: 1,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// CreateUser implements Store. Uniqueness of username, email, and the
// external identity reference is checked before anything is written, so a
// conflict never leaves a partial record behind.
func (m *MemStore) CreateUser(_ context.Context, in NewUser) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.users {
		u := &m.users[i]
		if u.Email == in.Email {
			return nil, ErrDuplicateEmail
		}
		if u.Username == in.Username {
			return nil, ErrDuplicateUsername
		}
		if in.FirebaseID != nil && u.FirebaseID != nil && *u.FirebaseID == *in.FirebaseID {
			return nil, ErrDuplicateFirebaseID
		}
	}

	u := domain.User{
		ID:         m.nextUserID,
		Username:   in.Username,
		Password:   in.Password,
		Email:      in.Email,
		FirebaseID: in.FirebaseID,
		CreatedAt:  m.now(),
	}
	m.nextUserID++
	m.users = append(m.users, u)
	return &u, nil
}

// GetUser implements Store.
func (m *MemStore) GetUser(_ context.Context, id int) (*domain.User, error) {
	return m.findUser(func(u domain.User) bool { return u.ID == id })
}

// GetUserByUsername implements Store.
func (m *MemStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	return m.findUser(func(u domain.User) bool { return u.Username == username })
}

// GetUserByEmail implements Store.
func (m *MemStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.findUser(func(u domain.User) bool { return u.Email == email })
}

// GetUserByFirebaseID implements Store.
func (m *MemStore) GetUserByFirebaseID(_ context.Context, firebaseID string) (*domain.User, error) {
	return m.findUser(func(u domain.User) bool {
		return u.FirebaseID != nil && *u.FirebaseID == firebaseID
	})
}

// findUser returns a copy of the first matching user, or (nil, nil).
func (m *MemStore) findUser(match func(domain.User) bool) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if match(u) {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

// CreateChatMessage implements Store. The timestamp is taken once, under
// the lock, so timestamps are non-decreasing in insertion order.
func (m *MemStore) CreateChatMessage(_ context.Context, in NewChatMessage) (*domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg := domain.ChatMessage{
		ID:            m.nextMessageID,
		UserID:        in.UserID,
		Content:       in.Content,
		IsUserMessage: in.IsUserMessage,
		Timestamp:     m.now(),
	}
	m.nextMessageID++
	m.messages = append(m.messages, msg)
	return &msg, nil
}

// ListChatMessages implements Store. A message with no owner is global and
// included in every user's history; this is deliberate (it carries the
// default welcome message), not a general rule about optional fields.
func (m *MemStore) ListChatMessages(_ context.Context, userID int, limit int) ([]domain.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.ChatMessage, 0, len(m.messages))
	for _, msg := range m.messages {
		if msg.UserID == nil || *msg.UserID == userID {
			out = append(out, msg)
		}
	}
	return tail(out, limit), nil
}

// CreateCollegeCutoff implements Store.
func (m *MemStore) CreateCollegeCutoff(_ context.Context, c domain.CollegeCutoff) (*domain.CollegeCutoff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = m.nextCutoffID
	m.nextCutoffID++
	m.cutoffs = append(m.cutoffs, c)
	return &c, nil
}

// ListCollegeCutoffs implements Store.
func (m *MemStore) ListCollegeCutoffs(_ context.Context, f CutoffFilter) ([]domain.CollegeCutoff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.CollegeCutoff, 0, len(m.cutoffs))
	for _, c := range m.cutoffs {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// CountCollegeCutoffs implements Store.
func (m *MemStore) CountCollegeCutoffs(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.cutoffs)), nil
}

// DistinctPrograms implements Store.
func (m *MemStore) DistinctPrograms(ctx context.Context) ([]string, error) {
	return m.distinctCutoffValues(func(c domain.CollegeCutoff) string { return c.Program })
}

// DistinctUniversities implements Store.
func (m *MemStore) DistinctUniversities(ctx context.Context) ([]string, error) {
	return m.distinctCutoffValues(func(c domain.CollegeCutoff) string { return c.University })
}

// DistinctCountries implements Store.
func (m *MemStore) DistinctCountries(ctx context.Context) ([]string, error) {
	return m.distinctCutoffValues(func(c domain.CollegeCutoff) string { return c.Country })
}

// distinctCutoffValues collects the unique non-empty values of one cutoff
// field and returns them sorted ascending.
func (m *MemStore) distinctCutoffValues(field func(domain.CollegeCutoff) string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{}, len(m.cutoffs))
	out := make([]string, 0, len(m.cutoffs))
	for _, c := range m.cutoffs {
		v := field(c)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	collator.SortStrings(out)
	return out, nil
}

// CreateScholarship implements Store.
func (m *MemStore) CreateScholarship(_ context.Context, s domain.Scholarship) (*domain.Scholarship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.ID = m.nextScholarshipID
	m.nextScholarshipID++
	m.scholarships = append(m.scholarships, s)
	return &s, nil
}

// ListScholarships implements Store.
func (m *MemStore) ListScholarships(_ context.Context, f ScholarshipFilter) ([]domain.Scholarship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Scholarship, 0, len(m.scholarships))
	for _, s := range m.scholarships {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

// tail returns the last limit elements of msgs when limit > 0, preserving
// order; otherwise it returns msgs unchanged.
func tail(msgs []domain.ChatMessage, limit int) []domain.ChatMessage {
	if limit > 0 && len(msgs) > limit {
		return msgs[len(msgs)-limit:]
	}
	return msgs
}
