// Handler wiring.
//
// This file declares the service contracts the HTTP layer consumes and the
// Handlers aggregate that binds them. Handlers are transport-thin: they
// validate input, call application services, and translate results into
// HTTP responses; all business rules live below.
package handlers

import (
	"context"

	"github.com/edupath/go-edupath-backend/internal/domain"
	"github.com/edupath/go-edupath-backend/internal/groq"
	"github.com/edupath/go-edupath-backend/internal/services"
	"github.com/edupath/go-edupath-backend/internal/store"
)

// UserService defines the account operations consumed by HTTP handlers.
// Implementations must be safe for concurrent use and honor the context.
type UserService interface {
	// Register creates an account; conflicts surface as service sentinels.
	Register(ctx context.Context, in services.RegisterInput) (*domain.User, error)
	// ByEmail returns the matching user, or (nil, nil).
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	// ByUsername returns the matching user, or (nil, nil).
	ByUsername(ctx context.Context, username string) (*domain.User, error)
	// ByFirebaseID returns the linked user, or (nil, nil).
	ByFirebaseID(ctx context.Context, firebaseID string) (*domain.User, error)
}

// ChatService defines the message operations consumed by HTTP handlers.
type ChatService interface {
	// CreateMessage stores a message; the store assigns id and timestamp.
	CreateMessage(ctx context.Context, userID *int, content string, isUserMessage bool) (*domain.ChatMessage, error)
	// History returns a user's messages oldest first, including global ones.
	History(ctx context.Context, userID int, limit int) ([]domain.ChatMessage, error)
}

// ReferenceService defines the reference-data operations consumed by HTTP
// handlers.
type ReferenceService interface {
	CreateCutoff(ctx context.Context, c domain.CollegeCutoff) (*domain.CollegeCutoff, error)
	Cutoffs(ctx context.Context, f store.CutoffFilter) ([]domain.CollegeCutoff, error)
	Programs(ctx context.Context) ([]string, error)
	Universities(ctx context.Context) ([]string, error)
	Countries(ctx context.Context) ([]string, error)
	CutoffCount(ctx context.Context) (int64, error)
	CreateScholarship(ctx context.Context, s domain.Scholarship) (*domain.Scholarship, error)
	Scholarships(ctx context.Context, f store.ScholarshipFilter) ([]domain.Scholarship, error)
}

// CompletionClient defines the LLM pass-through consumed by the chat
// completion endpoint.
type CompletionClient interface {
	// CreateCompletion forwards the conversation and returns the upstream
	// response; non-2xx statuses surface as *groq.UpstreamError.
	CreateCompletion(ctx context.Context, messages []groq.Message) (*groq.CompletionResponse, error)
}

// Handlers groups the HTTP endpoints for accounts, chat, and reference data.
type Handlers struct {
	userSvc UserService
	chatSvc ChatService
	refSvc  ReferenceService
	llm     CompletionClient
}

// New constructs a Handlers instance bound to the given services.
func New(userSvc UserService, chatSvc ChatService, refSvc ReferenceService, llm CompletionClient) *Handlers {
	return &Handlers{userSvc: userSvc, chatSvc: chatSvc, refSvc: refSvc, llm: llm}
}
