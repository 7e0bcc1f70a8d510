package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/recruitiq/recruit-match/internal/model"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

func (r *JobRepository) CreateJob(job *model.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepository) FindJobByID(id uuid.UUID) (*model.Job, error) {
	var j model.Job
	err := r.db.First(&j, "id = ?", id).Error
	return &j, err
}

func (r *JobRepository) GetActiveJobs() ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.Where("status = ?", model.JobStatusActive).Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) AssignToken(jobID, tokenID uuid.UUID) error {
	return r.db.Model(&model.Job{}).
		Where("id = ?", jobID).
		Update("token_id", tokenID).Error
}

// SearchJobs ranks stored jobs by vector distance to the query embedding.
func (r *JobRepository) SearchJobs(embedding pgvector.Vector, topK int) ([]model.Job, error) {
	var jobs []model.Job

	err := r.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM jobs
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&jobs).Error

	return jobs, err
}

// CountDistinctRecruiters counts the distinct job owners inside a token's
// cluster.
func (r *JobRepository) CountDistinctRecruiters(tokenID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Job{}).
		Where("token_id = ?", tokenID).
		Distinct("recruiter_id").
		Count(&count).Error
	return count, err
}

// ExpireOverdue flips overdue active jobs to expired and returns how many
// were affected.
func (r *JobRepository) ExpireOverdue(now time.Time) (int64, error) {
	res := r.db.Model(&model.Job{}).
		Where("status = ? AND expires_at < ?", model.JobStatusActive, now).
		Update("status", model.JobStatusExpired)
	return res.RowsAffected, res.Error
}
