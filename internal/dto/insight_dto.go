package dto

import (
	"time"

	"github.com/google/uuid"
)

type TokenInsight struct {
	TokenID          uuid.UUID `json:"token_id"`
	Title            string    `json:"title"`
	Location         string    `json:"location"`
	TotalJobs        int       `json:"total_jobs"`
	UniqueRecruiters int64     `json:"unique_recruiters"`
	CreatedAt        time.Time `json:"created_at"`
}
