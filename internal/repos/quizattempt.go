package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

type QuizAttemptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *types.QuizAttempt) (*types.QuizAttempt, error)
	GetByID(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID) (*types.QuizAttempt, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.QuizAttempt, error)
	ListByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) ([]*types.QuizAttempt, error)
	Complete(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID, answers datatypes.JSON, score int, completedAt time.Time) error
}

type quizAttemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	repoLog := baseLog.With("repo", "QuizAttemptRepo")
	return &quizAttemptRepo{db: db, log: repoLog}
}

func (r *quizAttemptRepo) Create(ctx context.Context, tx *gorm.DB, attempt *types.QuizAttempt) (*types.QuizAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(attempt).Error; err != nil {
		return nil, err
	}
	return attempt, nil
}

func (r *quizAttemptRepo) GetByID(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID) (*types.QuizAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var attempt types.QuizAttempt
	if err := transaction.WithContext(ctx).
		Where("id = ?", attemptID).
		First(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *quizAttemptRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.QuizAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizAttempt
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizAttemptRepo) ListByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) ([]*types.QuizAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizAttempt
	if err := transaction.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("started_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizAttemptRepo) Complete(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID, answers datatypes.JSON, score int, completedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.QuizAttempt{}).
		Where("id = ?", attemptID).
		Updates(map[string]interface{}{
			"answers":      answers,
			"score":        score,
			"completed_at": completedAt,
		}).Error
}
