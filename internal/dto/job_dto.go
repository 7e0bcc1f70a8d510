package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateJobRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Location        string   `json:"location"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	RecruiterID     string   `json:"recruiter_id"`
}

type JobDTO struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Location        string     `json:"location"`
	RequiredSkills  []string   `json:"required_skills"`
	PreferredSkills []string   `json:"preferred_skills"`
	TokenID         *uuid.UUID `json:"token_id"`
	Status          string     `json:"status"`
	ExpiresAt       time.Time  `json:"expires_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

type SimilarJobDTO struct {
	TokenID    uuid.UUID `json:"token_id"`
	Title      string    `json:"title"`
	Location   string    `json:"location"`
	JobCount   int       `json:"job_count"`
	Similarity float64   `json:"similarity"`
}
