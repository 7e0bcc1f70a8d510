package matching

import (
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/recruitiq/recruit-match/internal/model"
	"github.com/stretchr/testify/assert"
)

func newScorer() *Scorer {
	return NewScorer(ScorerConfig{NormalizedEmbeddings: true}, nil)
}

func candidateWith(skills []string, vec []float32) *model.Candidate {
	c := &model.Candidate{Skills: skills}
	if vec != nil {
		c.Embedding = pgvector.NewVector(vec)
	}
	return c
}

func jobWith(required, preferred []string, vec []float32) *model.Job {
	j := &model.Job{RequiredSkills: required, PreferredSkills: preferred}
	if vec != nil {
		j.Embedding = pgvector.NewVector(vec)
	}
	return j
}

func TestScoreEmptySkillsDefaults(t *testing.T) {
	s := newScorer()

	// identical unit vectors, no skills anywhere: similarity 1.0,
	// required defaults to full credit, preferred to neutral credit
	vec := []float32{1, 0, 0}
	got := s.Score(candidateWith(nil, vec), jobWith(nil, nil, vec))

	// 0.6*1.0 + 0.4*(0.7*1.0 + 0.3*0.5)
	assert.InDelta(t, 0.94, got, 1e-9)
}

func TestScoreAlwaysBounded(t *testing.T) {
	s := newScorer()

	huge := []float32{1000, 1000, 1000}
	got := s.Score(candidateWith(nil, huge), jobWith(nil, nil, huge))
	assert.Equal(t, 1.0, got)

	opposite := s.Score(
		candidateWith(nil, []float32{-1000, 0, 0}),
		jobWith([]string{"go"}, []string{"sql"}, []float32{1000, 0, 0}),
	)
	assert.GreaterOrEqual(t, opposite, 0.0)
	assert.LessOrEqual(t, opposite, 1.0)
}

func TestScoreSupersetBeatsDisjoint(t *testing.T) {
	s := newScorer()
	vec := []float32{0, 1, 0}
	job := jobWith([]string{"go", "sql"}, []string{"docker"}, vec)

	superset := s.Score(candidateWith([]string{"Go", "SQL", "Docker", "Kafka"}, vec), job)
	disjoint := s.Score(candidateWith([]string{"painting", "welding"}, vec), job)

	assert.GreaterOrEqual(t, superset, disjoint)
}

func TestScoreMissingEmbeddingUsesSkillsOnly(t *testing.T) {
	s := newScorer()

	candidate := candidateWith([]string{"Python", "SQL"}, nil)
	job := jobWith([]string{"python", "sql"}, nil, []float32{1, 0, 0})

	got := s.Score(candidate, job)

	// embedding term is 0: 0.4 * (0.7*1.0 + 0.3*0.5)
	assert.InDelta(t, 0.34, got, 1e-9)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 1.0)
}

func TestScorePartialSkillOverlap(t *testing.T) {
	s := newScorer()

	candidate := candidateWith([]string{"go"}, nil)
	job := jobWith([]string{"go", "sql"}, []string{"docker", "kafka"}, nil)

	// required 1/2, preferred 0/2: 0.4 * (0.7*0.5 + 0.3*0)
	assert.InDelta(t, 0.14, s.Score(candidate, job), 1e-9)
}

func TestScoreNilEntities(t *testing.T) {
	s := newScorer()
	assert.Equal(t, 0.0, s.Score(nil, &model.Job{}))
	assert.Equal(t, 0.0, s.Score(&model.Candidate{}, nil))
}

func TestScoreCosineFallback(t *testing.T) {
	s := NewScorer(ScorerConfig{NormalizedEmbeddings: false}, nil)

	// wildly scaled but parallel vectors still score as fully similar
	got := s.Score(
		candidateWith(nil, []float32{500, 0, 0}),
		jobWith(nil, nil, []float32{0.001, 0, 0}),
	)
	assert.InDelta(t, 0.94, got, 1e-9)
}
