package matching

import (
	"github.com/recruitiq/recruit-match/internal/embedding"
	"github.com/recruitiq/recruit-match/internal/model"
	"go.uber.org/zap"
)

const (
	embeddingWeight = 0.6
	skillsWeight    = 0.4

	requiredWeight  = 0.7
	preferredWeight = 0.3

	// AdmissionThreshold is the minimum score a match must exceed to be
	// persisted.
	AdmissionThreshold = 0.3
)

type ScorerConfig struct {
	// NormalizedEmbeddings declares that the embedding provider guarantees
	// unit-length vectors, making the raw dot product a valid similarity.
	// When false the scorer falls back to cosine similarity.
	NormalizedEmbeddings bool
}

// Scorer computes a bounded [0,1] compatibility score between a candidate and
// a job from embedding similarity and skill-set overlap.
type Scorer struct {
	cfg    ScorerConfig
	logger *zap.Logger
}

func NewScorer(cfg ScorerConfig, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{cfg: cfg, logger: logger}
}

// Score returns the combined score for the pair. A failure while scoring one
// pair yields 0.0 instead of an error so bulk operations never abort on a
// single bad record.
func (s *Scorer) Score(candidate *model.Candidate, job *model.Job) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("match score calculation failed",
				zap.Any("panic", r))
			score = 0.0
		}
	}()

	if candidate == nil || job == nil {
		return 0.0
	}

	similarity := s.embeddingSimilarity(candidate.Embedding.Slice(), job.Embedding.Slice())

	candidateSkills := NewSkillSet(candidate.Skills)
	required := NewSkillSet(job.RequiredSkills)
	preferred := NewSkillSet(job.PreferredSkills)

	requiredMatch := 1.0 // full credit when nothing is required
	if required.Len() > 0 {
		requiredMatch = float64(candidateSkills.IntersectCount(required)) / float64(required.Len())
	}

	preferredMatch := 0.5 // neutral credit, deliberately not full
	if preferred.Len() > 0 {
		preferredMatch = float64(candidateSkills.IntersectCount(preferred)) / float64(preferred.Len())
	}

	skillsScore := requiredMatch*requiredWeight + preferredMatch*preferredWeight

	combined := similarity*embeddingWeight + skillsScore*skillsWeight

	// Similarity is unbounded if the provider lied about normalization, so
	// clamping is mandatory, not cosmetic.
	return clamp01(combined)
}

func (s *Scorer) embeddingSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || embedding.IsZero(a) || embedding.IsZero(b) {
		return 0
	}
	if s.cfg.NormalizedEmbeddings {
		return embedding.Dot(a, b)
	}
	return embedding.Cosine(a, b)
}

func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
