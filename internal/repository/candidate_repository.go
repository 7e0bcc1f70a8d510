package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/recruitiq/recruit-match/internal/model"
	"gorm.io/gorm"
)

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db}
}

func (r *CandidateRepository) CreateCandidate(candidate *model.Candidate) error {
	return r.db.Create(candidate).Error
}

func (r *CandidateRepository) UpdateCandidate(candidate *model.Candidate) error {
	return r.db.Save(candidate).Error
}

func (r *CandidateRepository) FindCandidateByID(id uuid.UUID) (*model.Candidate, error) {
	var c model.Candidate
	err := r.db.First(&c, "id = ?", id).Error
	return &c, err
}

// FindCandidateByEmail returns (nil, nil) when no candidate has the email.
func (r *CandidateRepository) FindCandidateByEmail(email string) (*model.Candidate, error) {
	var c model.Candidate
	err := r.db.First(&c, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CandidateRepository) GetCandidates() ([]model.Candidate, error) {
	var candidates []model.Candidate
	err := r.db.Find(&candidates).Error
	return candidates, err
}
