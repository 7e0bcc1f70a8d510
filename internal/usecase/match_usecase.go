package usecase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/recruitiq/recruit-match/internal/matching"
	"github.com/recruitiq/recruit-match/internal/model"
	"go.uber.org/zap"
)

type JobStore interface {
	GetActiveJobs() ([]model.Job, error)
}

type CandidateStore interface {
	GetCandidates() ([]model.Candidate, error)
}

type MatchStore interface {
	CreateMatches(matches []model.Match) error
	DeleteByJob(jobID uuid.UUID) error
	DeleteByCandidate(candidateID uuid.UUID) error
	DeleteAll() error
	FindByJob(jobID uuid.UUID) ([]model.Match, error)
	FindByCandidate(candidateID uuid.UUID) ([]model.Match, error)
}

// MatchUsecase materializes scored (job, candidate) pairs. Match sets are
// recomputed wholesale, never patched incrementally; a failed refresh leaves
// partial state and must be retried as a whole.
type MatchUsecase struct {
	jobs       JobStore
	candidates CandidateStore
	matches    MatchStore
	scorer     *matching.Scorer
	logger     *zap.Logger
}

func NewMatchUsecase(jobs JobStore, candidates CandidateStore, matches MatchStore, scorer *matching.Scorer, logger *zap.Logger) *MatchUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchUsecase{
		jobs:       jobs,
		candidates: candidates,
		matches:    matches,
		scorer:     scorer,
		logger:     logger,
	}
}

// MatchJob scores one job against the full candidate population and persists
// matches above the admission threshold.
func (uc *MatchUsecase) MatchJob(job *model.Job) (int, error) {
	if err := uc.matches.DeleteByJob(job.ID); err != nil {
		return 0, fmt.Errorf("clearing job matches failed: %w", err)
	}

	candidates, err := uc.candidates.GetCandidates()
	if err != nil {
		return 0, fmt.Errorf("candidate listing failed: %w", err)
	}

	var rows []model.Match
	for i := range candidates {
		score := uc.scorer.Score(&candidates[i], job)
		if score > matching.AdmissionThreshold {
			rows = append(rows, model.Match{
				JobID:       job.ID,
				CandidateID: candidates[i].ID,
				Score:       score,
			})
		}
	}

	if err := uc.matches.CreateMatches(rows); err != nil {
		return 0, fmt.Errorf("match insert failed: %w", err)
	}
	uc.logger.Debug("job matching complete",
		zap.String("job_id", job.ID.String()),
		zap.Int("matches", len(rows)))
	return len(rows), nil
}

// MatchCandidate drops a candidate's existing matches and rescores the
// candidate against all active jobs.
func (uc *MatchUsecase) MatchCandidate(candidate *model.Candidate) (int, error) {
	if err := uc.matches.DeleteByCandidate(candidate.ID); err != nil {
		return 0, fmt.Errorf("clearing candidate matches failed: %w", err)
	}

	jobs, err := uc.jobs.GetActiveJobs()
	if err != nil {
		return 0, fmt.Errorf("job listing failed: %w", err)
	}

	var rows []model.Match
	for i := range jobs {
		score := uc.scorer.Score(candidate, &jobs[i])
		if score > matching.AdmissionThreshold {
			rows = append(rows, model.Match{
				JobID:       jobs[i].ID,
				CandidateID: candidate.ID,
				Score:       score,
			})
		}
	}

	if err := uc.matches.CreateMatches(rows); err != nil {
		return 0, fmt.Errorf("match insert failed: %w", err)
	}
	uc.logger.Debug("candidate matching complete",
		zap.String("candidate_id", candidate.ID.String()),
		zap.Int("matches", len(rows)))
	return len(rows), nil
}

// RefreshAll deletes every match and recomputes the full jobs x candidates
// cross product. Not atomic.
func (uc *MatchUsecase) RefreshAll() (int, error) {
	if err := uc.matches.DeleteAll(); err != nil {
		return 0, fmt.Errorf("clearing matches failed: %w", err)
	}

	jobs, err := uc.jobs.GetActiveJobs()
	if err != nil {
		return 0, fmt.Errorf("job listing failed: %w", err)
	}
	candidates, err := uc.candidates.GetCandidates()
	if err != nil {
		return 0, fmt.Errorf("candidate listing failed: %w", err)
	}

	var rows []model.Match
	for c := range candidates {
		for j := range jobs {
			score := uc.scorer.Score(&candidates[c], &jobs[j])
			if score > matching.AdmissionThreshold {
				rows = append(rows, model.Match{
					JobID:       jobs[j].ID,
					CandidateID: candidates[c].ID,
					Score:       score,
				})
			}
		}
	}

	if err := uc.matches.CreateMatches(rows); err != nil {
		return 0, fmt.Errorf("match insert failed: %w", err)
	}
	uc.logger.Info("matches refreshed",
		zap.Int("jobs", len(jobs)),
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(rows)))
	return len(rows), nil
}

func (uc *MatchUsecase) MatchesForJob(jobID uuid.UUID) ([]model.Match, error) {
	return uc.matches.FindByJob(jobID)
}

func (uc *MatchUsecase) MatchesForCandidate(candidateID uuid.UUID) ([]model.Match, error) {
	return uc.matches.FindByCandidate(candidateID)
}
