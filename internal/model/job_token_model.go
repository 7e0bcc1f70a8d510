package model

import (
	"time"

	"github.com/google/uuid"
)

// JobToken is a cluster of job postings judged to represent the same
// underlying role. The representative embedding comes from the first job that
// created the cluster and is stored in the codec's text form.
type JobToken struct {
	ID                uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TokenHash         string    `gorm:"type:varchar(64);uniqueIndex" json:"token_hash"`
	BaseTitle         string    `gorm:"type:varchar(255)" json:"base_title"`
	BaseLocation      string    `gorm:"type:varchar(255);index" json:"base_location"`
	DescriptionVector string    `gorm:"type:text" json:"-"`
	JobCount          int       `gorm:"default:1" json:"job_count"`
	CreatedAt         time.Time `json:"created_at"`
}

func (t *JobToken) TableName() string {
	return "job_tokens"
}
