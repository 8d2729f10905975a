package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserProfile holds the onboarding answers collected on first sign-in.
type UserProfile struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	DisplayName string         `gorm:"column:display_name;not null" json:"display_name"`
	Avatar      string         `gorm:"column:avatar" json:"avatar"`
	Education   string         `gorm:"column:education" json:"education"`
	Goals       datatypes.JSON `gorm:"column:goals;type:jsonb" json:"goals"`
	CustomGoal  string         `gorm:"column:custom_goal" json:"custom_goal"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }
