package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/kanishka132/StudyBuddy-AI/internal/content"
)

func newFlashcardSessionFixture(t *testing.T) (FlashcardSessionService, uuid.UUID, uuid.UUID) {
	t.Helper()
	project := &fakeProjectService{cards: []content.Flashcard{
		{Front: "**Term**", Back: "Definition\nwith detail"},
		{Front: "f1", Back: "b1"},
		{Front: "f2", Back: "b2"},
	}}
	return NewFlashcardSessionService(testLogger(t), project), uuid.New(), uuid.New()
}

func TestFlashcardSession_StartRendersFaces(t *testing.T) {
	service, userID, projectID := newFlashcardSessionFixture(t)

	state, err := service.Start(context.Background(), userID, projectID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if state.CardIndex != 0 || state.TotalCards != 3 {
		t.Fatalf("unexpected state: %+v", state)
	}
	if state.Front != "<strong>Term</strong>" {
		t.Fatalf("expected rendered front, got %q", state.Front)
	}
	if state.Back != "Definition<br>with detail" {
		t.Fatalf("expected rendered back, got %q", state.Back)
	}
	if state.Flipped || !state.HasNext || state.HasPrev {
		t.Fatalf("unexpected navigation flags: %+v", state)
	}
}

func TestFlashcardSession_FlipAndNavigate(t *testing.T) {
	service, userID, projectID := newFlashcardSessionFixture(t)
	if _, err := service.Start(context.Background(), userID, projectID); err != nil {
		t.Fatalf("start: %v", err)
	}

	state, err := service.Flip(context.Background(), userID)
	if err != nil {
		t.Fatalf("flip: %v", err)
	}
	if !state.Flipped {
		t.Fatalf("expected flipped")
	}

	state, err = service.Next(context.Background(), userID)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if state.CardIndex != 1 || state.Flipped {
		t.Fatalf("expected front of second card, got %+v", state)
	}
	if !state.HasPrev || !state.HasNext {
		t.Fatalf("unexpected navigation flags: %+v", state)
	}

	state, _ = service.Next(context.Background(), userID)
	if state.CardIndex != 2 || state.HasNext {
		t.Fatalf("expected last card, got %+v", state)
	}
	state, _ = service.Next(context.Background(), userID)
	if state.CardIndex != 2 {
		t.Fatalf("expected bounded navigation, got index %d", state.CardIndex)
	}
}

func TestFlashcardSession_CloseRemovesSession(t *testing.T) {
	service, userID, projectID := newFlashcardSessionFixture(t)
	if _, err := service.Start(context.Background(), userID, projectID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := service.Close(context.Background(), userID); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := service.State(context.Background(), userID); err == nil {
		t.Fatalf("expected no session after close")
	}
}

func TestFlashcardSession_StateWithoutSession(t *testing.T) {
	service, userID, _ := newFlashcardSessionFixture(t)
	if _, err := service.State(context.Background(), userID); err == nil {
		t.Fatalf("expected error without active session")
	}
}
