package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type Todo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Task      string    `gorm:"column:task;not null" json:"task"`
	Priority  string    `gorm:"column:priority;not null;default:'medium'" json:"priority"`
	Completed bool      `gorm:"column:completed;not null;default:false" json:"completed"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Todo) TableName() string { return "todos" }
