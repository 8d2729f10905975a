package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project bundles a set of materials with the artifacts generated for them.
// The three content columns are attached independently after the row is
// created; any of them may be missing when its attachment step failed.
type Project struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name              string         `gorm:"column:name;not null" json:"name"`
	Subject           string         `gorm:"column:subject" json:"subject"`
	MaterialIDs       datatypes.JSON `gorm:"column:material_ids;type:jsonb" json:"material_ids"`
	Actions           datatypes.JSON `gorm:"column:actions;type:jsonb" json:"actions"`
	QuizID            *uuid.UUID     `gorm:"type:uuid;column:quiz_id" json:"quiz_id,omitempty"`
	QuizQuestionCount *int           `gorm:"column:quiz_question_count" json:"quiz_question_count,omitempty"`
	QuizDifficulty    *string        `gorm:"column:quiz_difficulty" json:"quiz_difficulty,omitempty"`
	SummaryContent    *string        `gorm:"column:summary_content" json:"summary_content,omitempty"`
	FlashcardsContent datatypes.JSON `gorm:"column:flashcards_content;type:jsonb" json:"flashcards_content,omitempty"`
	CreatedAt         time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
