package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizAttempt is one quiz playthrough (the "progress" table).
type QuizAttempt struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ProjectID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	QuizID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Answers        datatypes.JSON `gorm:"column:answers;type:jsonb" json:"answers"`
	Score          int            `gorm:"column:score" json:"score"`
	TotalQuestions int            `gorm:"column:total_questions" json:"total_questions"`
	StartedAt      time.Time      `gorm:"column:started_at;not null" json:"started_at"`
	CompletedAt    *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

func (QuizAttempt) TableName() string { return "progress" }
