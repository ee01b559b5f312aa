package store

import (
	"context"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/edupath/go-edupath-backend/internal/domain"
)

func intPtr(n int) *int { return &n }

func seedUser(t *testing.T, s Store, username, email string) *domain.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), NewUser{
		Username: username,
		Password: "x",
		Email:    email,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return u
}

func TestCreateUser_AssignsIncreasingIDs(t *testing.T) {
	s := NewMemStore()

	prev := 0
	for _, name := range []string{"ada", "grace", "alan"} {
		u := seedUser(t, s, name, name+"@example.com")
		if u.ID <= prev {
			t.Fatalf("id %d not greater than previous %d", u.ID, prev)
		}
		prev = u.ID
	}
	if prev != 3 {
		t.Fatalf("expected ids 1..3, last = %d", prev)
	}
}

func TestCreateUser_SetsCreatedAt(t *testing.T) {
	s := NewMemStore()
	start := time.Now().UTC().Add(-time.Minute)
	u := seedUser(t, s, "ada", "ada@example.com")
	if u.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset: %v", u.CreatedAt)
	}
}

func TestCreateUser_DuplicateEmail_RejectedAndNothingStored(t *testing.T) {
	s := NewMemStore()
	seedUser(t, s, "ada", "ada@example.com")

	_, err := s.CreateUser(context.Background(), NewUser{
		Username: "other", Password: "x", Email: "ada@example.com",
	})
	if err != ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// Collection unchanged: the username from the rejected create is free.
	if u, _ := s.GetUserByUsername(context.Background(), "other"); u != nil {
		t.Fatalf("rejected create left a record behind: %+v", u)
	}
	if u, _ := s.GetUserByUsername(context.Background(), "ada"); u == nil || u.ID != 1 {
		t.Fatalf("original record disturbed: %+v", u)
	}
}

func TestCreateUser_DuplicateUsername_Rejected(t *testing.T) {
	s := NewMemStore()
	seedUser(t, s, "ada", "ada@example.com")

	_, err := s.CreateUser(context.Background(), NewUser{
		Username: "ada", Password: "x", Email: "ada2@example.com",
	})
	if err != ErrDuplicateUsername {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestCreateUser_DuplicateFirebaseID_Rejected(t *testing.T) {
	s := NewMemStore()
	fid := "firebase-1"
	if _, err := s.CreateUser(context.Background(), NewUser{
		Username: "ada", Password: "x", Email: "ada@example.com", FirebaseID: &fid,
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	fid2 := "firebase-1"
	_, err := s.CreateUser(context.Background(), NewUser{
		Username: "grace", Password: "x", Email: "grace@example.com", FirebaseID: &fid2,
	})
	if err != ErrDuplicateFirebaseID {
		t.Fatalf("expected ErrDuplicateFirebaseID, got %v", err)
	}
}

func TestGetUser_Lookups(t *testing.T) {
	s := NewMemStore()
	fid := "fb-42"
	u, err := s.CreateUser(context.Background(), NewUser{
		Username: "ada", Password: "x", Email: "ada@example.com", FirebaseID: &fid,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	ctx := context.Background()
	if got, _ := s.GetUser(ctx, u.ID); got == nil || got.Username != "ada" {
		t.Fatalf("GetUser: %+v", got)
	}
	if got, _ := s.GetUserByEmail(ctx, "ada@example.com"); got == nil || got.ID != u.ID {
		t.Fatalf("GetUserByEmail: %+v", got)
	}
	if got, _ := s.GetUserByUsername(ctx, "ada"); got == nil || got.ID != u.ID {
		t.Fatalf("GetUserByUsername: %+v", got)
	}
	if got, _ := s.GetUserByFirebaseID(ctx, "fb-42"); got == nil || got.ID != u.ID {
		t.Fatalf("GetUserByFirebaseID: %+v", got)
	}

	// Misses are (nil, nil), never an error.
	if got, err := s.GetUserByEmail(ctx, "nobody@example.com"); got != nil || err != nil {
		t.Fatalf("miss should be (nil, nil), got (%v, %v)", got, err)
	}
}

func TestChatMessages_GlobalMessageVisibleToEveryUser(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	// Ownerless welcome message.
	if _, err := s.CreateChatMessage(ctx, NewChatMessage{Content: "welcome", IsUserMessage: false}); err != nil {
		t.Fatalf("global message: %v", err)
	}
	// User 1's message, user 2's message.
	if _, err := s.CreateChatMessage(ctx, NewChatMessage{UserID: intPtr(1), Content: "hi from 1", IsUserMessage: true}); err != nil {
		t.Fatalf("u1 message: %v", err)
	}
	if _, err := s.CreateChatMessage(ctx, NewChatMessage{UserID: intPtr(2), Content: "hi from 2", IsUserMessage: true}); err != nil {
		t.Fatalf("u2 message: %v", err)
	}

	got, err := s.ListChatMessages(ctx, 1, 0)
	if err != nil {
		t.Fatalf("ListChatMessages: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected welcome + own message, got %d", len(got))
	}
	if got[0].Content != "welcome" || got[1].Content != "hi from 1" {
		t.Fatalf("unexpected history: %+v", got)
	}
}

func TestChatMessages_TimestampsNonDecreasing(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	var prev time.Time
	for i := 0; i < 5; i++ {
		m, err := s.CreateChatMessage(ctx, NewChatMessage{UserID: intPtr(1), Content: "m", IsUserMessage: true})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if m.Timestamp.Before(prev) {
			t.Fatalf("timestamp went backwards: %v < %v", m.Timestamp, prev)
		}
		prev = m.Timestamp
	}
}

func TestChatMessages_LimitKeepsMostRecentOldestFirst(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	for _, content := range []string{"a", "b", "c", "d"} {
		if _, err := s.CreateChatMessage(ctx, NewChatMessage{UserID: intPtr(1), Content: content, IsUserMessage: true}); err != nil {
			t.Fatalf("create %s: %v", content, err)
		}
	}

	got, err := s.ListChatMessages(ctx, 1, 2)
	if err != nil {
		t.Fatalf("ListChatMessages: %v", err)
	}
	if len(got) != 2 || got[0].Content != "c" || got[1].Content != "d" {
		t.Fatalf("expected [c d], got %+v", got)
	}
}

func TestListCutoffs_EmptyFilterEqualsGetAll(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	if err := SeedCutoffs(ctx, s); err != nil {
		t.Fatalf("seed: %v", err)
	}

	all, err := s.ListCollegeCutoffs(ctx, CutoffFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != SeedCutoffCount {
		t.Fatalf("expected %d rows, got %d", SeedCutoffCount, len(all))
	}
	// Insertion order: ids ascending.
	for i := 1; i < len(all); i++ {
		if all[i].ID <= all[i-1].ID {
			t.Fatalf("not in insertion order at %d: %+v", i, all)
		}
	}
}

func TestListCutoffs_FilterIsExactMatchAND(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	if err := SeedCutoffs(ctx, s); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := s.ListCollegeCutoffs(ctx, CutoffFilter{
		University:   "MIT",
		AcademicYear: "2023-2024",
	})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) == 0 {
		t.Fatalf("expected matches for MIT 2023-2024")
	}
	for _, c := range got {
		if c.University != "MIT" || c.AcademicYear != "2023-2024" {
			t.Fatalf("filter leaked row: %+v", c)
		}
	}

	// Excluded rows must genuinely not match.
	all, _ := s.ListCollegeCutoffs(ctx, CutoffFilter{})
	if len(got) >= len(all) {
		t.Fatalf("filter did not narrow: %d vs %d", len(got), len(all))
	}

	// Case-sensitive: lowercase does not match.
	none, _ := s.ListCollegeCutoffs(ctx, CutoffFilter{University: "mit"})
	if len(none) != 0 {
		t.Fatalf("matching should be case-sensitive, got %d rows", len(none))
	}
}

func TestCutoffs_EndToEndCreateAndFilter(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	if err := SeedCutoffs(ctx, s); err != nil {
		t.Fatalf("seed: %v", err)
	}

	want := domain.CollegeCutoff{
		University:     "Acme Tech",
		Program:        "CS",
		Country:        "Nowhere",
		GPA:            "3.5",
		TestScores:     "N/A",
		AcceptanceRate: "50%",
		AcademicYear:   "2024-2025",
	}
	created, err := s.CreateCollegeCutoff(ctx, want)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("id not assigned")
	}

	got, err := s.ListCollegeCutoffs(ctx, CutoffFilter{University: "Acme Tech"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(got))
	}
	want.ID = created.ID
	if !reflect.DeepEqual(got[0], want) {
		t.Fatalf("round-trip mismatch:\n got  %+v\n want %+v", got[0], want)
	}
}

func TestDistinctUniversities_SortedNoDuplicates(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	if err := SeedCutoffs(ctx, s); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := s.DistinctUniversities(ctx)
	if err != nil {
		t.Fatalf("distinct: %v", err)
	}
	if !sort.StringsAreSorted(got) {
		t.Fatalf("not sorted: %v", got)
	}
	seen := map[string]bool{}
	for _, v := range got {
		if seen[v] {
			t.Fatalf("duplicate value %q in %v", v, got)
		}
		seen[v] = true
	}

	// A new university shows up in the next call.
	if _, err := s.CreateCollegeCutoff(ctx, domain.CollegeCutoff{
		University: "Zenith College", Program: "Arts", Country: "USA",
		GPA: "3.0", TestScores: "-", AcceptanceRate: "60%", AcademicYear: "2023-2024",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	got2, _ := s.DistinctUniversities(ctx)
	if len(got2) != len(got)+1 {
		t.Fatalf("new value missing: %v", got2)
	}
	if !seenIn(got2, "Zenith College") {
		t.Fatalf("Zenith College missing from %v", got2)
	}
}

func TestDistinctValues_SkipEmpty(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	if _, err := s.CreateCollegeCutoff(ctx, domain.CollegeCutoff{University: "A", Program: "", Country: "X"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	progs, err := s.DistinctPrograms(ctx)
	if err != nil {
		t.Fatalf("distinct: %v", err)
	}
	if len(progs) != 0 {
		t.Fatalf("empty values must be skipped, got %v", progs)
	}
}

func TestScholarships_CreateAndFilter(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	rows := []domain.Scholarship{
		{Name: "STEM Grant", Amount: "$10,000", FieldOfStudy: "Engineering", Deadline: "2024-12-01", Eligibility: "UG", Description: "d"},
		{Name: "Arts Award", Amount: "$5,000", FieldOfStudy: "Arts", Deadline: "2024-11-01", Eligibility: "UG", Description: "d"},
		{Name: "CS Award", Amount: "$10,000", FieldOfStudy: "Computer Science", Deadline: "2024-12-01", Eligibility: "PG", Description: "d"},
	}
	for _, r := range rows {
		if _, err := s.CreateScholarship(ctx, r); err != nil {
			t.Fatalf("create %s: %v", r.Name, err)
		}
	}

	all, err := s.ListScholarships(ctx, ScholarshipFilter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("list all: %v (%d)", err, len(all))
	}

	got, err := s.ListScholarships(ctx, ScholarshipFilter{Amount: "$10,000", Deadline: "2024-12-01"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %+v", got)
	}
	for _, r := range got {
		if r.Amount != "$10,000" || r.Deadline != "2024-12-01" {
			t.Fatalf("filter leaked row: %+v", r)
		}
	}
}

func TestEmptyCollections_ReturnEmptyNotError(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	if got, err := s.ListCollegeCutoffs(ctx, CutoffFilter{}); err != nil || len(got) != 0 {
		t.Fatalf("cutoffs: %v %v", got, err)
	}
	if got, err := s.ListScholarships(ctx, ScholarshipFilter{}); err != nil || len(got) != 0 {
		t.Fatalf("scholarships: %v %v", got, err)
	}
	if got, err := s.ListChatMessages(ctx, 1, 0); err != nil || len(got) != 0 {
		t.Fatalf("messages: %v %v", got, err)
	}
	if got, err := s.DistinctCountries(ctx); err != nil || len(got) != 0 {
		t.Fatalf("countries: %v %v", got, err)
	}
}

func seenIn(vals []string, want string) bool {
	for _, v := range vals {
		if v == want {
			return true
		}
	}
	return false
}
