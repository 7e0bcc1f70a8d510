package usecase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/recruitiq/recruit-match/internal/dto"
	"github.com/recruitiq/recruit-match/internal/model"
	"go.uber.org/zap"
)

type InsightStore interface {
	FilterTokens(location, titleSubstring string) ([]model.JobToken, error)
}

type RecruiterCounter interface {
	CountDistinctRecruiters(tokenID uuid.UUID) (int64, error)
}

// InsightsUsecase is a read-only rollup over tokens and their member jobs.
// It never mutates token or job state.
type InsightsUsecase struct {
	tokens InsightStore
	jobs   RecruiterCounter
	logger *zap.Logger
}

func NewInsightsUsecase(tokens InsightStore, jobs RecruiterCounter, logger *zap.Logger) *InsightsUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightsUsecase{tokens: tokens, jobs: jobs, logger: logger}
}

// TokenInsights summarizes each token matching the optional filters. The
// location filter is an exact match on the normalized location; the title
// filter is a substring match.
func (uc *InsightsUsecase) TokenInsights(location, titleSubstring string) ([]dto.TokenInsight, error) {
	tokens, err := uc.tokens.FilterTokens(normalizeText(location), normalizeText(titleSubstring))
	if err != nil {
		return nil, fmt.Errorf("token listing failed: %w", err)
	}

	insights := make([]dto.TokenInsight, 0, len(tokens))
	for _, t := range tokens {
		recruiters, err := uc.jobs.CountDistinctRecruiters(t.ID)
		if err != nil {
			return nil, fmt.Errorf("recruiter count failed: %w", err)
		}
		insights = append(insights, dto.TokenInsight{
			TokenID:          t.ID,
			Title:            t.BaseTitle,
			Location:         t.BaseLocation,
			TotalJobs:        t.JobCount,
			UniqueRecruiters: recruiters,
			CreatedAt:        t.CreatedAt,
		})
	}
	return insights, nil
}
