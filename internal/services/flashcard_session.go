package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/kanishka132/StudyBuddy-AI/internal/apierr"
	"github.com/kanishka132/StudyBuddy-AI/internal/content"
	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/playback"
)

// FlashcardSessionState is a snapshot of the deck being studied. Card faces
// are rendered to HTML for display.
type FlashcardSessionState struct {
	ProjectID  uuid.UUID `json:"project_id"`
	CardIndex  int       `json:"card_index"`
	TotalCards int       `json:"total_cards"`
	Flipped    bool      `json:"flipped"`
	Front      string    `json:"front"`
	Back       string    `json:"back"`
	HasNext    bool      `json:"has_next"`
	HasPrev    bool      `json:"has_prev"`
}

type flashcardSession struct {
	projectID uuid.UUID
	player    *playback.FlashcardPlayer
}

// FlashcardSessionService runs at most one deck per user. Starting a new
// deck replaces the old one.
type FlashcardSessionService interface {
	Start(ctx context.Context, userID, projectID uuid.UUID) (*FlashcardSessionState, error)
	Flip(ctx context.Context, userID uuid.UUID) (*FlashcardSessionState, error)
	Next(ctx context.Context, userID uuid.UUID) (*FlashcardSessionState, error)
	Previous(ctx context.Context, userID uuid.UUID) (*FlashcardSessionState, error)
	Close(ctx context.Context, userID uuid.UUID) error
	State(ctx context.Context, userID uuid.UUID) (*FlashcardSessionState, error)
}

type flashcardSessionService struct {
	log            *logger.Logger
	projectService ProjectService

	mu       sync.Mutex
	sessions map[uuid.UUID]*flashcardSession
}

func NewFlashcardSessionService(log *logger.Logger, projectService ProjectService) FlashcardSessionService {
	serviceLog := log.With("service", "FlashcardSessionService")
	return &flashcardSessionService{
		log:            serviceLog,
		projectService: projectService,
		sessions:       make(map[uuid.UUID]*flashcardSession),
	}
}

func (fs *flashcardSessionService) Start(ctx context.Context, userID, projectID uuid.UUID) (*FlashcardSessionState, error) {
	cards, err := fs.projectService.FlashcardDeck(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	player, err := playback.NewFlashcardPlayer(cards)
	if err != nil {
		return nil, apierr.Parse("deck has no cards")
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	session := &flashcardSession{projectID: projectID, player: player}
	fs.sessions[userID] = session
	return snapshotFlashcards(session), nil
}

func (fs *flashcardSessionService) Flip(ctx context.Context, userID uuid.UUID) (*FlashcardSessionState, error) {
	return fs.withSession(userID, func(s *flashcardSession) { s.player.Flip() })
}

func (fs *flashcardSessionService) Next(ctx context.Context, userID uuid.UUID) (*FlashcardSessionState, error) {
	return fs.withSession(userID, func(s *flashcardSession) { s.player.Next() })
}

func (fs *flashcardSessionService) Previous(ctx context.Context, userID uuid.UUID) (*FlashcardSessionState, error) {
	return fs.withSession(userID, func(s *flashcardSession) { s.player.Previous() })
}

func (fs *flashcardSessionService) Close(ctx context.Context, userID uuid.UUID) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.sessions, userID)
	return nil
}

func (fs *flashcardSessionService) State(ctx context.Context, userID uuid.UUID) (*FlashcardSessionState, error) {
	return fs.withSession(userID, func(s *flashcardSession) {})
}

func (fs *flashcardSessionService) withSession(userID uuid.UUID, fn func(*flashcardSession)) (*FlashcardSessionState, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	session, ok := fs.sessions[userID]
	if !ok {
		return nil, apierr.NotFound("no active flashcard session")
	}
	fn(session)
	return snapshotFlashcards(session), nil
}

func snapshotFlashcards(session *flashcardSession) *FlashcardSessionState {
	player := session.player
	card := player.Current()
	return &FlashcardSessionState{
		ProjectID:  session.projectID,
		CardIndex:  player.Index(),
		TotalCards: player.Len(),
		Flipped:    player.Flipped(),
		Front:      content.FormatFlashcardContent(card.Front),
		Back:       content.FormatFlashcardContent(card.Back),
		HasNext:    player.Index() < player.Len()-1,
		HasPrev:    player.Index() > 0,
	}
}
