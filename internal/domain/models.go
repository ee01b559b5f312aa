// Package domain defines the entity types of the student portal: user
// accounts, chat messages, college admission cutoffs, and scholarships.
// The types are shared by the in-memory store and the GORM-backed store,
// so they carry both JSON and GORM mappings.
package domain

import "time"

// User is a registered portal account. Authentication itself is delegated
// to an external identity provider; FirebaseID links the account to the
// provider's subject id and Password is only an opaque placeholder.
//
// Invariants:
//   - ID is server-assigned, unique, and strictly increasing per store.
//   - Username and Email are unique across all users.
//   - FirebaseID, when present, is unique.
type User struct {
	ID         int       `json:"id"         gorm:"primaryKey;autoIncrement"`
	Username   string    `json:"username"   gorm:"type:varchar(64);not null;uniqueIndex"`
	Password   string    `json:"-"          gorm:"type:varchar(255);not null"`
	Email      string    `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex"`
	FirebaseID *string   `json:"firebaseId,omitempty" gorm:"type:varchar(128);uniqueIndex"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// ChatMessage is a single utterance in the assistant conversation.
// UserID is nil for "global" messages (e.g., the default welcome message),
// which appear in every user's history. IsUserMessage distinguishes
// user-authored from assistant-authored content.
//
// Timestamp is assigned by the store at creation time and never changes.
type ChatMessage struct {
	ID            int       `json:"id"            gorm:"primaryKey;autoIncrement"`
	UserID        *int      `json:"userId,omitempty" gorm:"index"`
	Content       string    `json:"content"       gorm:"type:text;not null"`
	IsUserMessage bool      `json:"isUserMessage" gorm:"not null"`
	Timestamp     time.Time `json:"timestamp"     gorm:"index"`
}

// TableName returns the database table name for ChatMessage.
func (ChatMessage) TableName() string { return "chat_messages" }

// CollegeCutoff is a reference row describing admission requirements for a
// (university, program, academic year) tuple. All requirement fields are
// free text as entered by admins; duplicate tuples are permitted.
type CollegeCutoff struct {
	ID             int    `json:"id"             gorm:"primaryKey;autoIncrement"`
	University     string `json:"university"     gorm:"type:varchar(255);not null;index"`
	Program        string `json:"program"        gorm:"type:varchar(255);not null;index"`
	Country        string `json:"country"        gorm:"type:varchar(128);not null;index"`
	GPA            string `json:"gpa"            gorm:"column:gpa;type:varchar(64);not null"`
	TestScores     string `json:"testScores"     gorm:"type:varchar(255);not null"`
	AcceptanceRate string `json:"acceptanceRate" gorm:"type:varchar(64);not null"`
	AcademicYear   string `json:"academicYear"   gorm:"type:varchar(32);not null;index"`
}

// TableName returns the database table name for CollegeCutoff.
func (CollegeCutoff) TableName() string { return "college_cutoffs" }

// Scholarship is a reference row describing a scholarship opportunity.
// Amount and Deadline are free text to accommodate ranges and rolling dates.
type Scholarship struct {
	ID           int    `json:"id"           gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name"         gorm:"type:varchar(255);not null"`
	Amount       string `json:"amount"       gorm:"type:varchar(128);not null"`
	FieldOfStudy string `json:"fieldOfStudy" gorm:"type:varchar(255);not null;index"`
	Deadline     string `json:"deadline"     gorm:"type:varchar(128);not null"`
	Eligibility  string `json:"eligibility"  gorm:"type:text;not null"`
	Description  string `json:"description"  gorm:"type:text;not null"`
}

// TableName returns the database table name for Scholarship.
func (Scholarship) TableName() string { return "scholarships" }
