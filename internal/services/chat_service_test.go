package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/edupath/go-edupath-backend/internal/store"
)

func intPtr(n int) *int { return &n }

func TestChatService_CreateMessage_TrimsAndStores(t *testing.T) {
	svc := NewChatService(store.NewMemStore())

	m, err := svc.CreateMessage(context.Background(), intPtr(1), "  hello  ", true)
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if m.Content != "hello" {
		t.Fatalf("content not trimmed: %q", m.Content)
	}
	if m.ID != 1 || !m.IsUserMessage {
		t.Fatalf("unexpected message: %+v", m)
	}
}

func TestChatService_CreateMessage_RejectsEmpty(t *testing.T) {
	svc := NewChatService(store.NewMemStore())

	for _, content := range []string{"", "   ", "\n\t"} {
		if _, err := svc.CreateMessage(context.Background(), intPtr(1), content, true); !errors.Is(err, ErrEmptyContent) {
			t.Fatalf("content %q: got %v, want ErrEmptyContent", content, err)
		}
	}
}

func TestChatService_CreateMessage_ContentCap(t *testing.T) {
	svc := NewChatService(store.NewMemStore())
	svc.MaxContentRunes = 10

	if _, err := svc.CreateMessage(context.Background(), intPtr(1), strings.Repeat("a", 11), true); !errors.Is(err, ErrContentTooLong) {
		t.Fatalf("expected ErrContentTooLong, got %v", err)
	}
	if _, err := svc.CreateMessage(context.Background(), intPtr(1), strings.Repeat("a", 10), true); err != nil {
		t.Fatalf("at-cap message should pass: %v", err)
	}

	// Cap counts runes, not bytes.
	if _, err := svc.CreateMessage(context.Background(), intPtr(1), strings.Repeat("é", 10), true); err != nil {
		t.Fatalf("multibyte at-cap message should pass: %v", err)
	}
}

func TestChatService_History_IncludesGlobalMessages(t *testing.T) {
	st := store.NewMemStore()
	svc := NewChatService(st)
	ctx := context.Background()

	if err := store.SeedWelcomeMessage(ctx, st); err != nil {
		t.Fatalf("welcome: %v", err)
	}
	if _, err := svc.CreateMessage(ctx, intPtr(7), "mine", true); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateMessage(ctx, intPtr(8), "theirs", true); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.History(ctx, 7, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 2 || got[1].Content != "mine" {
		t.Fatalf("expected welcome + own message, got %+v", got)
	}
}
