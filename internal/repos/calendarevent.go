package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

type CalendarEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, event *types.CalendarEvent) (*types.CalendarEvent, error)
	GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.CalendarEvent, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CalendarEvent, error)
	ListByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, eventDate string) ([]*types.CalendarEvent, error)
	Update(ctx context.Context, tx *gorm.DB, event *types.CalendarEvent) error
	Delete(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error
}

type calendarEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCalendarEventRepo(db *gorm.DB, baseLog *logger.Logger) CalendarEventRepo {
	repoLog := baseLog.With("repo", "CalendarEventRepo")
	return &calendarEventRepo{db: db, log: repoLog}
}

func (r *calendarEventRepo) Create(ctx context.Context, tx *gorm.DB, event *types.CalendarEvent) (*types.CalendarEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *calendarEventRepo) GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.CalendarEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var event types.CalendarEvent
	if err := transaction.WithContext(ctx).
		Where("id = ?", eventID).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *calendarEventRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CalendarEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CalendarEvent
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("event_date ASC, event_time ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *calendarEventRepo) ListByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, eventDate string) ([]*types.CalendarEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CalendarEvent
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND event_date = ?", userID, eventDate).
		Order("event_time ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *calendarEventRepo) Update(ctx context.Context, tx *gorm.DB, event *types.CalendarEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.CalendarEvent{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"title":       event.Title,
			"description": event.Description,
			"event_date":  event.EventDate,
			"event_time":  event.EventTime,
			"duration":    event.DurationMinutes,
		}).Error
}

func (r *calendarEventRepo) Delete(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", eventID).
		Delete(&types.CalendarEvent{}).Error
}
