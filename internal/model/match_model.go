package model

import (
	"time"

	"github.com/google/uuid"
)

// Match is a scored (job, candidate) pairing. Rows exist only above the
// admission threshold; score is always within [0,1].
type Match struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobID       uuid.UUID `gorm:"type:uuid;index" json:"job_id"`
	CandidateID uuid.UUID `gorm:"type:uuid;index" json:"candidate_id"`
	Score       float64   `gorm:"type:float" json:"score"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *Match) TableName() string {
	return "job_candidate_matches"
}
