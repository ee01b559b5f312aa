package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/edupath/go-edupath-backend/internal/domain"
)

// GormStore is the durable Store implementation over SQLite. It exists so
// the portal can survive restarts without any call-site changes; semantics
// mirror MemStore (insertion order via ascending ids, exact-match filters,
// the global-message rule for chat history).
type GormStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the SQLite database, applies PRAGMAs,
// configures the connection pool, and attaches OpenTelemetry tracing.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if the parent directory does not exist (clearer than the
	// sqlite "out of memory (14)" error on some platforms).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	return db, nil
}

// AutoMigrate creates or updates the portal schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.ChatMessage{},
		&domain.CollegeCutoff{},
		&domain.Scholarship{},
	)
}

// NewGormStore wraps an opened GORM handle as a Store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// CreateUser implements Store. Conflicts are detected by explicit lookups
// first (for precise sentinel errors), with the unique indexes as the
// backstop against races.
func (g *GormStore) CreateUser(ctx context.Context, in NewUser) (*domain.User, error) {
	if u, err := g.GetUserByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrDuplicateEmail
	}
	if u, err := g.GetUserByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrDuplicateUsername
	}
	if in.FirebaseID != nil {
		if u, err := g.GetUserByFirebaseID(ctx, *in.FirebaseID); err != nil {
			return nil, err
		} else if u != nil {
			return nil, ErrDuplicateFirebaseID
		}
	}

	u := domain.User{
		Username:   in.Username,
		Password:   in.Password,
		Email:      in.Email,
		FirebaseID: in.FirebaseID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := g.db.WithContext(ctx).Create(&u).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &u, nil
}

// GetUser implements Store.
func (g *GormStore) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return g.firstUser(ctx, "id = ?", id)
}

// GetUserByUsername implements Store.
func (g *GormStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return g.firstUser(ctx, "username = ?", username)
}

// GetUserByEmail implements Store.
func (g *GormStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return g.firstUser(ctx, "email = ?", email)
}

// GetUserByFirebaseID implements Store.
func (g *GormStore) GetUserByFirebaseID(ctx context.Context, firebaseID string) (*domain.User, error) {
	return g.firstUser(ctx, "firebase_id = ?", firebaseID)
}

// firstUser maps gorm.ErrRecordNotFound to the facade's (nil, nil) miss.
func (g *GormStore) firstUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := g.db.WithContext(ctx).Where(query, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateChatMessage implements Store.
func (g *GormStore) CreateChatMessage(ctx context.Context, in NewChatMessage) (*domain.ChatMessage, error) {
	msg := domain.ChatMessage{
		UserID:        in.UserID,
		Content:       in.Content,
		IsUserMessage: in.IsUserMessage,
		Timestamp:     time.Now().UTC(),
	}
	if err := g.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListChatMessages implements Store. Ordering is by id, which matches
// insertion order and avoids ties between equal timestamps.
func (g *GormStore) ListChatMessages(ctx context.Context, userID int, limit int) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	err := g.db.WithContext(ctx).
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return tail(out, limit), nil
}

// CreateCollegeCutoff implements Store.
func (g *GormStore) CreateCollegeCutoff(ctx context.Context, c domain.CollegeCutoff) (*domain.CollegeCutoff, error) {
	c.ID = 0
	if err := g.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCollegeCutoffs implements Store. The WHERE clause is assembled from
// only the provided criteria.
func (g *GormStore) ListCollegeCutoffs(ctx context.Context, f CutoffFilter) ([]domain.CollegeCutoff, error) {
	q := g.db.WithContext(ctx).Model(&domain.CollegeCutoff{}).Order("id ASC")
	if f.University != "" {
		q = q.Where("university = ?", f.University)
	}
	if f.Program != "" {
		q = q.Where("program = ?", f.Program)
	}
	if f.Country != "" {
		q = q.Where("country = ?", f.Country)
	}
	if f.AcademicYear != "" {
		q = q.Where("academic_year = ?", f.AcademicYear)
	}
	var out []domain.CollegeCutoff
	err := q.Find(&out).Error
	return out, err
}

// CountCollegeCutoffs implements Store.
func (g *GormStore) CountCollegeCutoffs(ctx context.Context) (int64, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(&domain.CollegeCutoff{}).Count(&n).Error
	return n, err
}

// DistinctPrograms implements Store.
func (g *GormStore) DistinctPrograms(ctx context.Context) ([]string, error) {
	return g.distinctCutoffColumn(ctx, "program")
}

// DistinctUniversities implements Store.
func (g *GormStore) DistinctUniversities(ctx context.Context) ([]string, error) {
	return g.distinctCutoffColumn(ctx, "university")
}

// DistinctCountries implements Store.
func (g *GormStore) DistinctCountries(ctx context.Context) ([]string, error) {
	return g.distinctCutoffColumn(ctx, "country")
}

// distinctCutoffColumn delegates uniqueness to the database and sorts in
// Go with the same collator as MemStore so both variants agree on order.
func (g *GormStore) distinctCutoffColumn(ctx context.Context, column string) ([]string, error) {
	var out []string
	err := g.db.WithContext(ctx).
		Model(&domain.CollegeCutoff{}).
		Distinct(column).
		Where(column+" <> ''").
		Pluck(column, &out).Error
	if err != nil {
		return nil, err
	}
	collator.SortStrings(out)
	return out, nil
}

// CreateScholarship implements Store.
func (g *GormStore) CreateScholarship(ctx context.Context, s domain.Scholarship) (*domain.Scholarship, error) {
	s.ID = 0
	if err := g.db.WithContext(ctx).Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListScholarships implements Store.
func (g *GormStore) ListScholarships(ctx context.Context, f ScholarshipFilter) ([]domain.Scholarship, error) {
	q := g.db.WithContext(ctx).Model(&domain.Scholarship{}).Order("id ASC")
	if f.FieldOfStudy != "" {
		q = q.Where("field_of_study = ?", f.FieldOfStudy)
	}
	if f.Amount != "" {
		q = q.Where("amount = ?", f.Amount)
	}
	if f.Deadline != "" {
		q = q.Where("deadline = ?", f.Deadline)
	}
	if f.Eligibility != "" {
		q = q.Where("eligibility = ?", f.Eligibility)
	}
	var out []domain.Scholarship
	err := q.Find(&out).Error
	return out, err
}

// isUniqueViolation recognizes unique-index failures across GORM error
// translation and the raw messages emitted by glebarez/sqlite.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}
