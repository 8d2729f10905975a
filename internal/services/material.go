package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/kanishka132/StudyBuddy-AI/internal/apierr"
	"github.com/kanishka132/StudyBuddy-AI/internal/content"
	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/repos"
	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

// MaterialListQuery carries the library view controls.
type MaterialListQuery struct {
	Subject string
	Date    DateRange
	Sort    MaterialSort
}

// MaterialList is the library payload: the filtered page plus the subject
// dropdown rebuilt from the full set.
type MaterialList struct {
	Materials      []*types.Material       `json:"materials"`
	SubjectOptions []content.SubjectOption `json:"subject_options"`
}

type MaterialService interface {
	Upload(ctx context.Context, userID uuid.UUID, name, mimeType string, data []byte) (*types.Material, error)
	List(ctx context.Context, userID uuid.UUID, query MaterialListQuery) (*MaterialList, error)
	Get(ctx context.Context, userID, materialID uuid.UUID) (*types.Material, error)
	Rename(ctx context.Context, userID, materialID uuid.UUID, name string) error
	Tag(ctx context.Context, userID, materialID uuid.UUID, subject string) error
	Delete(ctx context.Context, userID, materialID uuid.UUID) error
	Download(ctx context.Context, userID, materialID uuid.UUID) (*types.Material, []byte, error)
}

type materialService struct {
	db            *gorm.DB
	log           *logger.Logger
	materialRepo  repos.MaterialRepo
	bucketService BucketService
	blobCache     BlobCache
	taxonomy      *content.SubjectTaxonomy
	loads         singleflight.Group
}

func NewMaterialService(
	db *gorm.DB,
	log *logger.Logger,
	materialRepo repos.MaterialRepo,
	bucketService BucketService,
	blobCache BlobCache,
	taxonomy *content.SubjectTaxonomy,
) MaterialService {
	serviceLog := log.With("service", "MaterialService")
	return &materialService{
		db:            db,
		log:           serviceLog,
		materialRepo:  materialRepo,
		bucketService: bucketService,
		blobCache:     blobCache,
		taxonomy:      taxonomy,
	}
}

func (ms *materialService) Upload(ctx context.Context, userID uuid.UUID, name, mimeType string, data []byte) (*types.Material, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.Validation("material name is required")
	}

	material := &types.Material{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		MimeType:   mimeType,
		SizeBytes:  int64(len(data)),
		Subject:    content.SubjectUntagged,
		UploadedAt: time.Now(),
	}

	// No blob, no row. A material without a stored file is never listed.
	key := fmt.Sprintf("materials/%s/%s/%s", userID.String(), material.ID.String(), name)
	if err := ms.bucketService.UploadFile(ctx, key, bytes.NewReader(data)); err != nil {
		ms.log.Warn("Blob upload failed, skipping file", "name", name, "error", err)
		return nil, apierr.Service(fmt.Errorf("Failed to upload material file: %w", err))
	}
	material.FilePath = key

	created, err := ms.materialRepo.Create(ctx, nil, material)
	if err != nil {
		return nil, fmt.Errorf("Failed to create material: %w", err)
	}
	ms.blobCache.Set(ctx, material.FilePath, data)
	return created, nil
}

func (ms *materialService) List(ctx context.Context, userID uuid.UUID, query MaterialListQuery) (*MaterialList, error) {
	// Concurrent loads for the same user share one fetch.
	v, err, _ := ms.loads.Do(userID.String(), func() (interface{}, error) {
		fetched, err := ms.materialRepo.ListByUserID(ctx, nil, userID)
		if err != nil {
			return nil, err
		}
		return DedupeMaterials(fetched), nil
	})
	if err != nil {
		return nil, fmt.Errorf("Failed to list materials: %w", err)
	}
	materials := v.([]*types.Material)

	subjects := make([]string, 0, len(materials))
	for _, m := range materials {
		subjects = append(subjects, m.Subject)
	}

	filtered := FilterMaterials(materials, query.Subject, query.Date, time.Now())
	SortMaterials(filtered, query.Sort)

	return &MaterialList{
		Materials:      filtered,
		SubjectOptions: ms.taxonomy.FilterOptions(subjects),
	}, nil
}

func (ms *materialService) Get(ctx context.Context, userID, materialID uuid.UUID) (*types.Material, error) {
	material, err := ms.materialRepo.GetByID(ctx, nil, materialID)
	if err != nil {
		return nil, apierr.NotFound("material not found")
	}
	if material.UserID != userID {
		return nil, apierr.NotFound("material not found")
	}
	return material, nil
}

func (ms *materialService) Rename(ctx context.Context, userID, materialID uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apierr.Validation("material name is required")
	}
	if _, err := ms.Get(ctx, userID, materialID); err != nil {
		return err
	}
	return ms.materialRepo.UpdateName(ctx, nil, materialID, name)
}

func (ms *materialService) Tag(ctx context.Context, userID, materialID uuid.UUID, subject string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = content.SubjectUntagged
	}
	if _, err := ms.Get(ctx, userID, materialID); err != nil {
		return err
	}
	return ms.materialRepo.UpdateSubject(ctx, nil, materialID, subject)
}

func (ms *materialService) Delete(ctx context.Context, userID, materialID uuid.UUID) error {
	material, err := ms.Get(ctx, userID, materialID)
	if err != nil {
		return err
	}
	if err := ms.materialRepo.Delete(ctx, nil, materialID); err != nil {
		return fmt.Errorf("Failed to delete material: %w", err)
	}
	if material.FilePath != "" {
		ms.blobCache.Delete(ctx, material.FilePath)
		if err := ms.bucketService.DeleteFile(ctx, material.FilePath); err != nil {
			ms.log.Warn("Failed to delete material blob (ignored)", "key", material.FilePath, "error", err)
		}
	}
	return nil
}

func (ms *materialService) Download(ctx context.Context, userID, materialID uuid.UUID) (*types.Material, []byte, error) {
	material, err := ms.Get(ctx, userID, materialID)
	if err != nil {
		return nil, nil, err
	}
	if material.FilePath == "" {
		return nil, nil, apierr.NotFound("material has no stored file")
	}

	if data, ok := ms.blobCache.Get(ctx, material.FilePath); ok {
		return material, data, nil
	}

	data, err := ms.bucketService.DownloadFile(ctx, material.FilePath)
	if err != nil {
		return nil, nil, apierr.Service(fmt.Errorf("Failed to download material: %w", err))
	}
	ms.blobCache.Set(ctx, material.FilePath, data)
	return material, data, nil
}
