package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/recruitiq/recruit-match/internal/dto"
	"github.com/recruitiq/recruit-match/internal/embedding"
	"github.com/recruitiq/recruit-match/internal/model"
	"go.uber.org/zap"
)

// jobLifetime is how long a posting stays active before the expiry sweep
// flips it to expired.
const jobLifetime = 60 * 24 * time.Hour

type JobWriter interface {
	CreateJob(job *model.Job) error
	AssignToken(jobID, tokenID uuid.UUID) error
	FindJobByID(id uuid.UUID) (*model.Job, error)
	ExpireOverdue(now time.Time) (int64, error)
	SearchJobs(embedding pgvector.Vector, topK int) ([]model.Job, error)
}

// JobUsecase runs the job posting pipeline: embed the description, persist
// the job, fold it into a token cluster, then score it against the candidate
// population.
type JobUsecase struct {
	jobs     JobWriter
	tokens   *TokenUsecase
	matches  *MatchUsecase
	provider embedding.Provider
	codec    *embedding.Codec
	logger   *zap.Logger
}

func NewJobUsecase(jobs JobWriter, tokens *TokenUsecase, matches *MatchUsecase, provider embedding.Provider, codec *embedding.Codec, logger *zap.Logger) *JobUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobUsecase{
		jobs:     jobs,
		tokens:   tokens,
		matches:  matches,
		provider: provider,
		codec:    codec,
		logger:   logger,
	}
}

func (uc *JobUsecase) CreateJob(ctx context.Context, req dto.CreateJobRequest) (*model.Job, error) {
	vec, err := uc.provider.Embed(ctx, req.Description)
	if err != nil {
		// degraded job: stored with a zero vector, still matchable on skills
		uc.logger.Warn("job embedding failed, using zero vector", zap.Error(err))
		vec = uc.codec.Zero()
	}

	recruiterID, err := uuid.Parse(req.RecruiterID)
	if err != nil {
		return nil, fmt.Errorf("invalid recruiter id: %w", err)
	}

	job := &model.Job{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		RequiredSkills:  req.RequiredSkills,
		PreferredSkills: req.PreferredSkills,
		Embedding:       pgvector.NewVector(vec),
		RecruiterID:     recruiterID,
		Status:          model.JobStatusActive,
		ExpiresAt:       time.Now().Add(jobLifetime),
	}
	if err := uc.jobs.CreateJob(job); err != nil {
		return nil, fmt.Errorf("job creation failed: %w", err)
	}

	token, err := uc.tokens.FindOrCreateToken(ctx, req.Title, req.Location, req.Description)
	if err != nil {
		// the job stays unclustered; analytics will miss it until re-run
		uc.logger.Warn("job clustering failed",
			zap.String("job_id", job.ID.String()), zap.Error(err))
	} else if token != nil {
		if err := uc.jobs.AssignToken(job.ID, token.ID); err != nil {
			uc.logger.Warn("token assignment failed",
				zap.String("job_id", job.ID.String()), zap.Error(err))
		} else {
			job.TokenID = &token.ID
		}
	}

	if _, err := uc.matches.MatchJob(job); err != nil {
		// job creation survives a failed matching pass
		uc.logger.Error("candidate matching failed",
			zap.String("job_id", job.ID.String()), zap.Error(err))
	}

	return job, nil
}

func (uc *JobUsecase) GetJob(id uuid.UUID) (*model.Job, error) {
	return uc.jobs.FindJobByID(id)
}

// ExpireJobs marks overdue active jobs expired and returns how many changed.
func (uc *JobUsecase) ExpireJobs() (int64, error) {
	expired, err := uc.jobs.ExpireOverdue(time.Now())
	if err != nil {
		return 0, fmt.Errorf("expiry sweep failed: %w", err)
	}
	if expired > 0 {
		uc.logger.Info("jobs expired", zap.Int64("count", expired))
	}
	return expired, nil
}

// SearchJobs ranks individual job postings against a free-text query using
// the store's vector index, unlike FindSimilarJobs which works at the token
// cluster level.
func (uc *JobUsecase) SearchJobs(ctx context.Context, query string, topK int) ([]model.Job, error) {
	vec, err := uc.provider.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}
	if topK <= 0 {
		topK = 5
	}
	jobs, err := uc.jobs.SearchJobs(pgvector.NewVector(vec), topK)
	if err != nil {
		return nil, fmt.Errorf("job search failed: %w", err)
	}
	return jobs, nil
}

// FindSimilarJobs exposes the token index's read-only similarity search as
// ranked DTOs.
func (uc *JobUsecase) FindSimilarJobs(ctx context.Context, description string, threshold float64, limit int) ([]dto.SimilarJobDTO, error) {
	similar, err := uc.tokens.FindSimilarJobs(ctx, description, threshold, limit)
	if err != nil {
		return nil, err
	}
	results := make([]dto.SimilarJobDTO, 0, len(similar))
	for _, s := range similar {
		results = append(results, dto.SimilarJobDTO{
			TokenID:    s.Token.ID,
			Title:      s.Token.BaseTitle,
			Location:   s.Token.BaseLocation,
			JobCount:   s.Token.JobCount,
			Similarity: s.Similarity,
		})
	}
	return results, nil
}
