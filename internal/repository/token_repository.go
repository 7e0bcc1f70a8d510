package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/recruitiq/recruit-match/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db}
}

// FindByHash returns the token with the given content hash, or (nil, nil)
// when none exists.
func (r *TokenRepository) FindByHash(hash string) (*model.JobToken, error) {
	var token model.JobToken
	err := r.db.First(&token, "token_hash = ?", hash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *TokenRepository) GetTokens() ([]model.JobToken, error) {
	var tokens []model.JobToken
	err := r.db.Find(&tokens).Error
	return tokens, err
}

func (r *TokenRepository) GetTokensByLocation(location string) ([]model.JobToken, error) {
	var tokens []model.JobToken
	err := r.db.Where("base_location = ?", location).Find(&tokens).Error
	return tokens, err
}

// CreateToken inserts a token unless one with the same hash already exists,
// in which case the existing row is returned. The unique index on token_hash
// makes this safe under concurrent writers.
func (r *TokenRepository) CreateToken(token *model.JobToken) (*model.JobToken, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token_hash"}},
		DoNothing: true,
	}).Create(token)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// lost the race; fold into the winner instead
		existing, err := r.FindByHash(token.TokenHash)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, gorm.ErrRecordNotFound
		}
		if err := r.IncrementJobCount(existing.ID); err != nil {
			return nil, err
		}
		existing.JobCount++
		return existing, nil
	}
	return token, nil
}

// IncrementJobCount bumps job_count atomically in the store.
func (r *TokenRepository) IncrementJobCount(id uuid.UUID) error {
	return r.db.Model(&model.JobToken{}).
		Where("id = ?", id).
		Update("job_count", gorm.Expr("job_count + 1")).Error
}

// FilterTokens returns tokens matching the optional location (exact,
// normalized) and title substring filters.
func (r *TokenRepository) FilterTokens(location, titleSubstring string) ([]model.JobToken, error) {
	query := r.db.Model(&model.JobToken{})
	if location != "" {
		query = query.Where("base_location = ?", location)
	}
	if titleSubstring != "" {
		query = query.Where("base_title LIKE ?", "%"+titleSubstring+"%")
	}
	var tokens []model.JobToken
	err := query.Find(&tokens).Error
	return tokens, err
}
