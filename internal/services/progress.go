package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kanishka132/StudyBuddy-AI/internal/apierr"
	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/playback"
	"github.com/kanishka132/StudyBuddy-AI/internal/repos"
	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

// ProgressService records quiz attempts. Attempts are opened when a quiz
// starts and closed with the answer log and score.
type ProgressService interface {
	StartAttempt(ctx context.Context, userID, projectID, quizID uuid.UUID, totalQuestions int) (*types.QuizAttempt, error)
	CompleteAttempt(ctx context.Context, userID, attemptID uuid.UUID, answers []*playback.QuizAnswer, score int) error
	ListAttempts(ctx context.Context, userID uuid.UUID) ([]*types.QuizAttempt, error)
	ListAttemptsForQuiz(ctx context.Context, userID, quizID uuid.UUID) ([]*types.QuizAttempt, error)
}

type progressService struct {
	db              *gorm.DB
	log             *logger.Logger
	quizAttemptRepo repos.QuizAttemptRepo
}

func NewProgressService(db *gorm.DB, log *logger.Logger, quizAttemptRepo repos.QuizAttemptRepo) ProgressService {
	serviceLog := log.With("service", "ProgressService")
	return &progressService{
		db:              db,
		log:             serviceLog,
		quizAttemptRepo: quizAttemptRepo,
	}
}

func (ps *progressService) StartAttempt(ctx context.Context, userID, projectID, quizID uuid.UUID, totalQuestions int) (*types.QuizAttempt, error) {
	if totalQuestions <= 0 {
		return nil, apierr.Validation("total questions must be positive")
	}
	attempt := &types.QuizAttempt{
		ID:             uuid.New(),
		UserID:         userID,
		ProjectID:      projectID,
		QuizID:         quizID,
		TotalQuestions: totalQuestions,
		StartedAt:      time.Now(),
	}
	created, err := ps.quizAttemptRepo.Create(ctx, nil, attempt)
	if err != nil {
		return nil, fmt.Errorf("Failed to create quiz attempt: %w", err)
	}
	return created, nil
}

func (ps *progressService) CompleteAttempt(ctx context.Context, userID, attemptID uuid.UUID, answers []*playback.QuizAnswer, score int) error {
	attempt, err := ps.quizAttemptRepo.GetByID(ctx, nil, attemptID)
	if err != nil || attempt.UserID != userID {
		return apierr.NotFound("attempt not found")
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	return ps.quizAttemptRepo.Complete(ctx, nil, attemptID, datatypes.JSON(answersJSON), score, time.Now())
}

func (ps *progressService) ListAttempts(ctx context.Context, userID uuid.UUID) ([]*types.QuizAttempt, error) {
	return ps.quizAttemptRepo.ListByUserID(ctx, nil, userID)
}

func (ps *progressService) ListAttemptsForQuiz(ctx context.Context, userID, quizID uuid.UUID) ([]*types.QuizAttempt, error) {
	attempts, err := ps.quizAttemptRepo.ListByQuizID(ctx, nil, quizID)
	if err != nil {
		return nil, err
	}
	mine := make([]*types.QuizAttempt, 0, len(attempts))
	for _, a := range attempts {
		if a.UserID == userID {
			mine = append(mine, a)
		}
	}
	return mine, nil
}
