package types

import (
	"time"

	"github.com/google/uuid"
)

// Material is one uploaded study file. FilePath is empty when the blob
// upload failed but the metadata row was still written.
type Material struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	MimeType   string    `gorm:"column:mime_type" json:"mime_type"`
	SizeBytes  int64     `gorm:"column:size_bytes" json:"size_bytes"`
	Subject    string    `gorm:"column:subject;not null;default:'untagged'" json:"subject"`
	FilePath   string    `gorm:"column:file_path" json:"file_path"`
	UploadedAt time.Time `gorm:"column:uploaded_at;not null;default:now()" json:"uploaded_at"`
}

func (Material) TableName() string { return "materials" }
