package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

type ProjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, project *types.Project) (*types.Project, error)
	GetByID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.Project, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Project, error)
	AttachQuiz(ctx context.Context, tx *gorm.DB, projectID, quizID uuid.UUID, questionCount int, difficulty string) error
	AttachSummary(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, content string) error
	AttachFlashcards(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, content datatypes.JSON) error
	Delete(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	repoLog := baseLog.With("repo", "ProjectRepo")
	return &projectRepo{db: db, log: repoLog}
}

func (r *projectRepo) Create(ctx context.Context, tx *gorm.DB, project *types.Project) (*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepo) GetByID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var project types.Project
	if err := transaction.WithContext(ctx).
		Where("id = ?", projectID).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Project
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *projectRepo) AttachQuiz(ctx context.Context, tx *gorm.DB, projectID, quizID uuid.UUID, questionCount int, difficulty string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]interface{}{
			"quiz_id":             quizID,
			"quiz_question_count": questionCount,
			"quiz_difficulty":     difficulty,
		}).Error
}

func (r *projectRepo) AttachSummary(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, content string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Project{}).
		Where("id = ?", projectID).
		Update("summary_content", content).Error
}

func (r *projectRepo) AttachFlashcards(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, content datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Project{}).
		Where("id = ?", projectID).
		Update("flashcards_content", content).Error
}

func (r *projectRepo) Delete(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", projectID).
		Delete(&types.Project{}).Error
}
