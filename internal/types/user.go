package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string         `gorm:"column:email;uniqueIndex;not null" json:"email"`
	FirstName       string         `gorm:"column:first_name" json:"first_name"`
	LastName        string         `gorm:"column:last_name" json:"last_name"`
	Password        string         `gorm:"column:password;not null" json:"-"`
	AvatarURL       string         `gorm:"column:avatar_url" json:"avatar_url"`
	AvatarBucketKey string         `gorm:"column:avatar_bucket_key" json:"-"`
	AvatarColor     string         `gorm:"column:avatar_color" json:"-"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
