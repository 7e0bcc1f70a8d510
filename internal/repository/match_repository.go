package repository

import (
	"github.com/google/uuid"
	"github.com/recruitiq/recruit-match/internal/model"
	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db}
}

// CreateMatches inserts match rows in batches; the two bulk primitives the
// refresh operation needs are this and the deletes below.
func (r *MatchRepository) CreateMatches(matches []model.Match) error {
	if len(matches) == 0 {
		return nil
	}
	return r.db.CreateInBatches(matches, 200).Error
}

func (r *MatchRepository) DeleteByJob(jobID uuid.UUID) error {
	return r.db.Where("job_id = ?", jobID).Delete(&model.Match{}).Error
}

func (r *MatchRepository) DeleteByCandidate(candidateID uuid.UUID) error {
	return r.db.Where("candidate_id = ?", candidateID).Delete(&model.Match{}).Error
}

func (r *MatchRepository) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&model.Match{}).Error
}

func (r *MatchRepository) FindByJob(jobID uuid.UUID) ([]model.Match, error) {
	var matches []model.Match
	err := r.db.Where("job_id = ?", jobID).
		Order("score DESC").
		Find(&matches).Error
	return matches, err
}

func (r *MatchRepository) FindByCandidate(candidateID uuid.UUID) ([]model.Match, error) {
	var matches []model.Match
	err := r.db.Where("candidate_id = ?", candidateID).
		Order("score DESC").
		Find(&matches).Error
	return matches, err
}
