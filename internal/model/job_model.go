package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

const (
	JobStatusActive  = "active"
	JobStatusExpired = "expired"
)

type Job struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string          `gorm:"type:varchar(255)" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	Location        string          `gorm:"type:varchar(255)" json:"location"`
	RequiredSkills  []string        `gorm:"type:jsonb;serializer:json" json:"required_skills"`
	PreferredSkills []string        `gorm:"type:jsonb;serializer:json" json:"preferred_skills"`
	Embedding       pgvector.Vector `gorm:"type:vector(1536)" json:"embedding"`
	TokenID         *uuid.UUID      `gorm:"type:uuid;index" json:"token_id"`
	RecruiterID     uuid.UUID       `gorm:"type:uuid;index" json:"recruiter_id"`
	Status          string          `gorm:"type:varchar(20);default:active" json:"status"`
	ExpiresAt       time.Time       `json:"expires_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}
