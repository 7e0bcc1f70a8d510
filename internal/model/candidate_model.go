package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Candidate struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name       string          `gorm:"type:varchar(255)" json:"name"`
	Email      string          `gorm:"type:varchar(255);index" json:"email"`
	Phone      string          `gorm:"type:varchar(50)" json:"phone"`
	ResumeFile string          `gorm:"type:varchar(255)" json:"resume_file"`
	Summary    string          `gorm:"type:text" json:"summary"`
	Skills     []string        `gorm:"type:jsonb;serializer:json" json:"skills"`
	Embedding  pgvector.Vector `gorm:"type:vector(1536)" json:"embedding"`
	UploadedBy uuid.UUID       `gorm:"type:uuid" json:"uploaded_by"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (c *Candidate) TableName() string {
	return "candidates"
}
