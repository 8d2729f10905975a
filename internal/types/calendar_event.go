package types

import (
	"time"

	"github.com/google/uuid"
)

type CalendarEvent struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title           string    `gorm:"column:title;not null" json:"title"`
	Description     string    `gorm:"column:description" json:"description"`
	EventDate       string    `gorm:"column:event_date;not null;index" json:"event_date"`
	EventTime       string    `gorm:"column:event_time" json:"event_time"`
	DurationMinutes int       `gorm:"column:duration" json:"duration"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (CalendarEvent) TableName() string { return "calendar_events" }
