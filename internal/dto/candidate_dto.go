package dto

import (
	"time"

	"github.com/google/uuid"
)

type CandidateDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Skills    []string  `json:"skills"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

type MatchDTO struct {
	JobID       uuid.UUID `json:"job_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Score       float64   `json:"score"`
}
