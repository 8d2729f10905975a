package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Quiz questions arrive from the generation service either as a structured
// array or as a raw string with an embedded JSON array; the column stores
// whichever form was received and playback normalizes it.
type Quiz struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         string         `gorm:"column:title;not null" json:"title"`
	Description   string         `gorm:"column:description" json:"description"`
	Questions     datatypes.JSON `gorm:"column:questions;type:jsonb" json:"questions"`
	QuestionCount int            `gorm:"column:question_count" json:"question_count"`
	Difficulty    string         `gorm:"column:difficulty" json:"difficulty"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (Quiz) TableName() string { return "quizzes" }
