package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

type TodoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, todo *types.Todo) (*types.Todo, error)
	GetByID(ctx context.Context, tx *gorm.DB, todoID uuid.UUID) (*types.Todo, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Todo, error)
	Update(ctx context.Context, tx *gorm.DB, todoID uuid.UUID, task, priority string) error
	SetCompleted(ctx context.Context, tx *gorm.DB, todoID uuid.UUID, completed bool) error
	Delete(ctx context.Context, tx *gorm.DB, todoID uuid.UUID) error
}

type todoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTodoRepo(db *gorm.DB, baseLog *logger.Logger) TodoRepo {
	repoLog := baseLog.With("repo", "TodoRepo")
	return &todoRepo{db: db, log: repoLog}
}

func (r *todoRepo) Create(ctx context.Context, tx *gorm.DB, todo *types.Todo) (*types.Todo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(todo).Error; err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *todoRepo) GetByID(ctx context.Context, tx *gorm.DB, todoID uuid.UUID) (*types.Todo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var todo types.Todo
	if err := transaction.WithContext(ctx).
		Where("id = ?", todoID).
		First(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Todo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Todo
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *todoRepo) Update(ctx context.Context, tx *gorm.DB, todoID uuid.UUID, task, priority string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Todo{}).
		Where("id = ?", todoID).
		Updates(map[string]interface{}{
			"task":     task,
			"priority": priority,
		}).Error
}

func (r *todoRepo) SetCompleted(ctx context.Context, tx *gorm.DB, todoID uuid.UUID, completed bool) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Todo{}).
		Where("id = ?", todoID).
		Update("completed", completed).Error
}

func (r *todoRepo) Delete(ctx context.Context, tx *gorm.DB, todoID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", todoID).
		Delete(&types.Todo{}).Error
}
