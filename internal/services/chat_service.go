// Package services – ChatService
//
// This file implements ChatService, which owns chat message persistence
// and history retrieval. Completion itself is a pass-through to the hosted
// LLM (see internal/groq); this service only records what was said and
// replays it, including the global welcome message every history starts
// with.
package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/edupath/go-edupath-backend/internal/domain"
	"github.com/edupath/go-edupath-backend/internal/store"
)

// ChatService provides chat message creation and history retrieval.
type ChatService struct {
	// Store is the backing record store.
	Store store.Store

	// MaxContentRunes caps stored message length; <= 0 disables the cap.
	MaxContentRunes int
}

// NewChatService constructs a ChatService with the default content cap.
func NewChatService(s store.Store) *ChatService {
	return &ChatService{Store: s, MaxContentRunes: 4000}
}

// CreateMessage validates and stores a message. The store assigns the id
// and timestamp. A nil userID records a global message.
func (s *ChatService) CreateMessage(ctx context.Context, userID *int, content string, isUserMessage bool) (*domain.ChatMessage, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "CreateMessage",
		trace.WithAttributes(attribute.Bool("message.from_user", isUserMessage)))
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if s.MaxContentRunes > 0 && utf8.RuneCountInString(content) > s.MaxContentRunes {
		return nil, ErrContentTooLong
	}

	return s.Store.CreateChatMessage(ctx, store.NewChatMessage{
		UserID:        userID,
		Content:       content,
		IsUserMessage: isUserMessage,
	})
}

// History returns the user's messages oldest first, including global
// messages. A limit > 0 keeps only the most recent limit entries.
func (s *ChatService) History(ctx context.Context, userID int, limit int) ([]domain.ChatMessage, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "History",
		trace.WithAttributes(
			attribute.Int("user.id", userID),
			attribute.Int("limit", limit),
		))
	defer span.End()

	return s.Store.ListChatMessages(ctx, userID, limit)
}
