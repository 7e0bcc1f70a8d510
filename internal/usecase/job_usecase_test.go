package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/recruitiq/recruit-match/internal/dto"
	"github.com/recruitiq/recruit-match/internal/embedding"
	"github.com/recruitiq/recruit-match/internal/matching"
	"github.com/recruitiq/recruit-match/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobWriter struct {
	created   []*model.Job
	assigned  map[uuid.UUID]uuid.UUID
	createErr error
}

func newFakeJobWriter() *fakeJobWriter {
	return &fakeJobWriter{assigned: map[uuid.UUID]uuid.UUID{}}
}

func (w *fakeJobWriter) CreateJob(job *model.Job) error {
	if w.createErr != nil {
		return w.createErr
	}
	job.ID = uuid.New()
	job.CreatedAt = time.Now()
	w.created = append(w.created, job)
	return nil
}

func (w *fakeJobWriter) AssignToken(jobID, tokenID uuid.UUID) error {
	w.assigned[jobID] = tokenID
	return nil
}

func (w *fakeJobWriter) FindJobByID(id uuid.UUID) (*model.Job, error) {
	for _, j := range w.created {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, errors.New("not found")
}

func (w *fakeJobWriter) ExpireOverdue(_ time.Time) (int64, error) {
	return 0, nil
}

func (w *fakeJobWriter) SearchJobs(_ pgvector.Vector, topK int) ([]model.Job, error) {
	jobs := make([]model.Job, 0, topK)
	for _, j := range w.created {
		if len(jobs) == topK {
			break
		}
		jobs = append(jobs, *j)
	}
	return jobs, nil
}

func newJobUsecase(writer *fakeJobWriter, provider *fakeProvider, candidates *fakeCandidateStore, matches *fakeMatchStore) *JobUsecase {
	codec := embedding.NewCodec(testDim, nil)
	scorer := matching.NewScorer(matching.ScorerConfig{NormalizedEmbeddings: true}, nil)
	tokenUC := NewTokenUsecase(newFakeTokenStore(), provider, codec, nil)
	matchUC := NewMatchUsecase(&fakeJobStore{}, candidates, matches, scorer, nil)
	return NewJobUsecase(writer, tokenUC, matchUC, provider, codec, nil)
}

func TestCreateJobPipeline(t *testing.T) {
	writer := newFakeJobWriter()
	provider := &fakeProvider{vectors: map[string][]float32{
		"build Go services": {1, 0, 0},
	}}
	strong := model.Candidate{
		ID:        uuid.New(),
		Skills:    []string{"go"},
		Embedding: pgvector.NewVector([]float32{1, 0, 0}),
	}
	matches := &fakeMatchStore{}
	uc := newJobUsecase(writer, provider, &fakeCandidateStore{candidates: []model.Candidate{strong}}, matches)

	job, err := uc.CreateJob(context.Background(), dto.CreateJobRequest{
		Title:          "Backend Engineer",
		Description:    "build Go services",
		Location:       "Austin",
		RequiredSkills: []string{"go"},
		RecruiterID:    uuid.New().String(),
	})
	require.NoError(t, err)
	require.Len(t, writer.created, 1)
	assert.Equal(t, model.JobStatusActive, job.Status)
	assert.True(t, job.ExpiresAt.After(time.Now()))

	require.NotNil(t, job.TokenID, "job is clustered")
	assert.Equal(t, *job.TokenID, writer.assigned[job.ID])

	require.Len(t, matches.rows, 1, "matching ran against the candidate pool")
	assert.Equal(t, strong.ID, matches.rows[0].CandidateID)
}

func TestCreateJobEmbeddingFailureStillCreates(t *testing.T) {
	writer := newFakeJobWriter()
	provider := &fakeProvider{err: errors.New("quota exceeded")}
	uc := newJobUsecase(writer, provider, &fakeCandidateStore{}, &fakeMatchStore{})

	job, err := uc.CreateJob(context.Background(), dto.CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "build Go services",
		Location:    "Austin",
		RecruiterID: uuid.New().String(),
	})
	require.NoError(t, err)
	require.Len(t, writer.created, 1)
	assert.True(t, embedding.IsZero(job.Embedding.Slice()))
	assert.NotNil(t, job.TokenID, "degraded job still gets a cluster")
}

func TestCreateJobInvalidRecruiter(t *testing.T) {
	uc := newJobUsecase(newFakeJobWriter(), &fakeProvider{}, &fakeCandidateStore{}, &fakeMatchStore{})

	_, err := uc.CreateJob(context.Background(), dto.CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "build Go services",
		RecruiterID: "not-a-uuid",
	})
	require.Error(t, err)
}

func TestCreateJobStoreFailure(t *testing.T) {
	writer := newFakeJobWriter()
	writer.createErr = errors.New("store down")
	uc := newJobUsecase(writer, &fakeProvider{}, &fakeCandidateStore{}, &fakeMatchStore{})

	_, err := uc.CreateJob(context.Background(), dto.CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "build Go services",
		RecruiterID: uuid.New().String(),
	})
	require.Error(t, err)
}

func TestSearchJobsEmbedsQuery(t *testing.T) {
	writer := newFakeJobWriter()
	provider := &fakeProvider{vectors: map[string][]float32{}}
	uc := newJobUsecase(writer, provider, &fakeCandidateStore{}, &fakeMatchStore{})

	_, err := uc.CreateJob(context.Background(), dto.CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "build Go services",
		RecruiterID: uuid.New().String(),
	})
	require.NoError(t, err)

	jobs, err := uc.SearchJobs(context.Background(), "golang backend", 5)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	provider.err = errors.New("quota exceeded")
	_, err = uc.SearchJobs(context.Background(), "golang backend", 5)
	require.Error(t, err, "a read-only search surfaces provider failures")
}
