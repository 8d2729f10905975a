package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

type MaterialRepo interface {
	Create(ctx context.Context, tx *gorm.DB, material *types.Material) (*types.Material, error)
	GetByID(ctx context.Context, tx *gorm.DB, materialID uuid.UUID) (*types.Material, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, materialIDs []uuid.UUID) ([]*types.Material, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Material, error)
	UpdateName(ctx context.Context, tx *gorm.DB, materialID uuid.UUID, name string) error
	UpdateSubject(ctx context.Context, tx *gorm.DB, materialID uuid.UUID, subject string) error
	Delete(ctx context.Context, tx *gorm.DB, materialID uuid.UUID) error
}

type materialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
	repoLog := baseLog.With("repo", "MaterialRepo")
	return &materialRepo{db: db, log: repoLog}
}

func (r *materialRepo) Create(ctx context.Context, tx *gorm.DB, material *types.Material) (*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if material.ID == uuid.Nil {
		material.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(material).Error; err != nil {
		return nil, err
	}
	return material, nil
}

func (r *materialRepo) GetByID(ctx context.Context, tx *gorm.DB, materialID uuid.UUID) (*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var material types.Material
	if err := transaction.WithContext(ctx).
		Where("id = ?", materialID).
		First(&material).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepo) GetByIDs(ctx context.Context, tx *gorm.DB, materialIDs []uuid.UUID) ([]*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Material
	if len(materialIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", materialIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *materialRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Material
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *materialRepo) UpdateName(ctx context.Context, tx *gorm.DB, materialID uuid.UUID, name string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Material{}).
		Where("id = ?", materialID).
		Update("name", name).Error
}

func (r *materialRepo) UpdateSubject(ctx context.Context, tx *gorm.DB, materialID uuid.UUID, subject string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Material{}).
		Where("id = ?", materialID).
		Update("subject", subject).Error
}

func (r *materialRepo) Delete(ctx context.Context, tx *gorm.DB, materialID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", materialID).
		Delete(&types.Material{}).Error
}
