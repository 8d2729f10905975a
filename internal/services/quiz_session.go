package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kanishka132/StudyBuddy-AI/internal/apierr"
	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/playback"
)

// advanceDelay is how long a revealed answer stays on screen before the
// session moves to the next question on its own.
const advanceDelay = 2 * time.Second

// QuizQuestionView is the current question with the correct answer held
// back until it has been revealed.
type QuizQuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizSessionState is a snapshot of the running session.
type QuizSessionState struct {
	ProjectID      uuid.UUID              `json:"project_id"`
	QuizID         uuid.UUID              `json:"quiz_id"`
	Title          string                 `json:"title"`
	Phase          playback.QuizPhase     `json:"phase"`
	QuestionIndex  int                    `json:"question_index"`
	TotalQuestions int                    `json:"total_questions"`
	Question       *QuizQuestionView      `json:"question,omitempty"`
	SelectedOption int                    `json:"selected_option"`
	LastAnswer     *playback.QuizAnswer   `json:"last_answer,omitempty"`
	Score          int                    `json:"score"`
	ScorePercent   int                    `json:"score_percent,omitempty"`
	Message        string                 `json:"message,omitempty"`
	Answers        []*playback.QuizAnswer `json:"answers,omitempty"`
}

type quizSession struct {
	projectID uuid.UUID
	quizID    uuid.UUID
	title     string
	player    *playback.QuizPlayer
	timer     *time.Timer
}

// QuizSessionService runs at most one quiz session per user. Starting a new
// session replaces the old one.
type QuizSessionService interface {
	Start(ctx context.Context, userID, projectID uuid.UUID) (*QuizSessionState, error)
	Select(ctx context.Context, userID uuid.UUID, option int) (*QuizSessionState, error)
	Submit(ctx context.Context, userID uuid.UUID) (*QuizSessionState, error)
	Previous(ctx context.Context, userID uuid.UUID) (*QuizSessionState, error)
	Restart(ctx context.Context, userID uuid.UUID) (*QuizSessionState, error)
	Close(ctx context.Context, userID uuid.UUID) error
	State(ctx context.Context, userID uuid.UUID) (*QuizSessionState, error)
}

type quizSessionService struct {
	log            *logger.Logger
	projectService ProjectService

	mu       sync.Mutex
	sessions map[uuid.UUID]*quizSession
}

func NewQuizSessionService(log *logger.Logger, projectService ProjectService) QuizSessionService {
	serviceLog := log.With("service", "QuizSessionService")
	return &quizSessionService{
		log:            serviceLog,
		projectService: projectService,
		sessions:       make(map[uuid.UUID]*quizSession),
	}
}

func (qs *quizSessionService) Start(ctx context.Context, userID, projectID uuid.UUID) (*QuizSessionState, error) {
	quiz, questions, err := qs.projectService.QuizQuestions(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	player, err := playback.NewQuizPlayer(questions)
	if err != nil {
		return nil, apierr.Parse("quiz has no questions")
	}
	player.Start()

	qs.mu.Lock()
	defer qs.mu.Unlock()
	if old, ok := qs.sessions[userID]; ok {
		stopTimer(old)
	}
	session := &quizSession{
		projectID: projectID,
		quizID:    quiz.ID,
		title:     quiz.Title,
		player:    player,
	}
	qs.sessions[userID] = session
	return qs.snapshot(session, nil), nil
}

func (qs *quizSessionService) Select(ctx context.Context, userID uuid.UUID, option int) (*QuizSessionState, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	session, err := qs.session(userID)
	if err != nil {
		return nil, err
	}
	if err := session.player.SelectOption(option); err != nil {
		return nil, apierr.Validation("%v", err)
	}
	return qs.snapshot(session, nil), nil
}

func (qs *quizSessionService) Submit(ctx context.Context, userID uuid.UUID) (*QuizSessionState, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	session, err := qs.session(userID)
	if err != nil {
		return nil, err
	}
	answer, err := session.player.Submit()
	if err != nil {
		return nil, apierr.Validation("%v", err)
	}

	// The revealed answer stays up briefly, then the session advances on
	// its own unless something else moved it first.
	stopTimer(session)
	session.timer = time.AfterFunc(advanceDelay, func() {
		qs.mu.Lock()
		defer qs.mu.Unlock()
		current, ok := qs.sessions[userID]
		if !ok || current != session {
			return
		}
		if current.player.Phase() == playback.QuizAnswerRevealed {
			_ = current.player.Advance()
		}
	})

	return qs.snapshot(session, answer), nil
}

func (qs *quizSessionService) Previous(ctx context.Context, userID uuid.UUID) (*QuizSessionState, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	session, err := qs.session(userID)
	if err != nil {
		return nil, err
	}
	stopTimer(session)
	if err := session.player.Previous(); err != nil {
		return nil, apierr.Validation("%v", err)
	}
	return qs.snapshot(session, nil), nil
}

func (qs *quizSessionService) Restart(ctx context.Context, userID uuid.UUID) (*QuizSessionState, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	session, err := qs.session(userID)
	if err != nil {
		return nil, err
	}
	stopTimer(session)
	session.player.Restart()
	return qs.snapshot(session, nil), nil
}

func (qs *quizSessionService) Close(ctx context.Context, userID uuid.UUID) error {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	if session, ok := qs.sessions[userID]; ok {
		stopTimer(session)
		session.player.Close()
		delete(qs.sessions, userID)
	}
	return nil
}

func (qs *quizSessionService) State(ctx context.Context, userID uuid.UUID) (*QuizSessionState, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	session, err := qs.session(userID)
	if err != nil {
		return nil, err
	}
	return qs.snapshot(session, nil), nil
}

func (qs *quizSessionService) session(userID uuid.UUID) (*quizSession, error) {
	session, ok := qs.sessions[userID]
	if !ok {
		return nil, apierr.NotFound("no active quiz session")
	}
	return session, nil
}

func (qs *quizSessionService) snapshot(session *quizSession, lastAnswer *playback.QuizAnswer) *QuizSessionState {
	player := session.player
	state := &QuizSessionState{
		ProjectID:      session.projectID,
		QuizID:         session.quizID,
		Title:          session.title,
		Phase:          player.Phase(),
		QuestionIndex:  player.Index(),
		TotalQuestions: player.Len(),
		SelectedOption: player.Selected(),
		LastAnswer:     lastAnswer,
		Score:          player.Score(),
	}
	switch player.Phase() {
	case playback.QuizInProgress, playback.QuizAnswerRevealed:
		q := player.Current()
		state.Question = &QuizQuestionView{Question: q.Question, Options: q.Options}
	case playback.QuizComplete:
		state.ScorePercent = player.ScorePercent()
		state.Message = playback.PerformanceMessage(state.ScorePercent)
		state.Answers = player.Answers()
	}
	return state
}

func stopTimer(session *quizSession) {
	if session.timer != nil {
		session.timer.Stop()
		session.timer = nil
	}
}
