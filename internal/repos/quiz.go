package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

type QuizRepo interface {
	Create(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error)
	GetByID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (*types.Quiz, error)
	Delete(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) error
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	repoLog := baseLog.With("repo", "QuizRepo")
	return &quizRepo{db: db, log: repoLog}
}

func (r *quizRepo) Create(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if quiz.ID == uuid.Nil {
		quiz.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(quiz).Error; err != nil {
		return nil, err
	}
	return quiz, nil
}

func (r *quizRepo) GetByID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var quiz types.Quiz
	if err := transaction.WithContext(ctx).
		Where("id = ?", quizID).
		First(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) Delete(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", quizID).
		Delete(&types.Quiz{}).Error
}
