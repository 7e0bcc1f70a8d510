package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/recruitiq/recruit-match/internal/embedding"
	"github.com/recruitiq/recruit-match/internal/matching"
	"github.com/recruitiq/recruit-match/internal/model"
	"github.com/recruitiq/recruit-match/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCandidateWriter struct {
	byEmail map[string]*model.Candidate
	created []*model.Candidate
	updated []*model.Candidate
}

func newFakeCandidateWriter() *fakeCandidateWriter {
	return &fakeCandidateWriter{byEmail: map[string]*model.Candidate{}}
}

func (w *fakeCandidateWriter) CreateCandidate(candidate *model.Candidate) error {
	candidate.ID = uuid.New()
	w.created = append(w.created, candidate)
	if candidate.Email != "" {
		w.byEmail[candidate.Email] = candidate
	}
	return nil
}

func (w *fakeCandidateWriter) UpdateCandidate(candidate *model.Candidate) error {
	w.updated = append(w.updated, candidate)
	return nil
}

func (w *fakeCandidateWriter) FindCandidateByEmail(email string) (*model.Candidate, error) {
	return w.byEmail[email], nil
}

func (w *fakeCandidateWriter) FindCandidateByID(id uuid.UUID) (*model.Candidate, error) {
	for _, c := range w.created {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}

type stubGenerator struct {
	response string
	err      error
}

func (g *stubGenerator) GenerateContent(_ context.Context, _ string, _ string) (string, error) {
	return g.response, g.err
}

func newCandidateUsecase(writer CandidateWriter, generator ContentGenerator, matches *fakeMatchStore) *CandidateUsecase {
	scorer := matching.NewScorer(matching.ScorerConfig{NormalizedEmbeddings: true}, nil)
	matchUC := NewMatchUsecase(&fakeJobStore{}, &fakeCandidateStore{}, matches, scorer, nil)
	provider := &fakeProvider{vectors: map[string][]float32{}}
	return NewCandidateUsecase(writer, matchUC, provider, embedding.NewCodec(testDim, nil), generator, nil)
}

func TestIngestResumeCreatesCandidate(t *testing.T) {
	writer := newFakeCandidateWriter()
	generator := &stubGenerator{response: `{
		"name": "Jane Doe",
		"email": "Jane@Example.com",
		"phone": "555-0100",
		"summary": "Backend engineer.",
		"skills": ["Go", "SQL", " "]
	}`}
	matches := &fakeMatchStore{}
	uc := newCandidateUsecase(writer, generator, matches)

	candidate, err := uc.IngestResume(context.Background(), IngestResumeInput{
		FileName: "jane_doe.pdf",
		Text:     "resume body",
	})
	require.NoError(t, err)
	require.Len(t, writer.created, 1)
	assert.Equal(t, "Jane Doe", candidate.Name)
	assert.Equal(t, "jane@example.com", candidate.Email)
	assert.Equal(t, []string{"Go", "SQL"}, candidate.Skills)
	assert.Equal(t, []uuid.UUID{candidate.ID}, matches.deletedCandidates)
}

func TestIngestResumeReuploadReplacesAtomically(t *testing.T) {
	writer := newFakeCandidateWriter()
	existing := &model.Candidate{
		ID:      uuid.New(),
		Name:    "Old Name",
		Email:   "jane@example.com",
		Skills:  []string{"cobol"},
		Summary: "old summary",
	}
	writer.byEmail[existing.Email] = existing

	generator := &stubGenerator{response: `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"summary": "new summary",
		"skills": ["Go"]
	}`}
	matches := &fakeMatchStore{rows: []model.Match{
		{JobID: uuid.New(), CandidateID: existing.ID, Score: 0.8},
	}}
	uc := newCandidateUsecase(writer, generator, matches)

	candidate, err := uc.IngestResume(context.Background(), IngestResumeInput{
		FileName: "jane_v2.pdf",
		Text:     "updated resume",
	})
	require.NoError(t, err)
	assert.Empty(t, writer.created)
	require.Len(t, writer.updated, 1)
	assert.Equal(t, existing.ID, candidate.ID)
	assert.Equal(t, "Jane Doe", candidate.Name)
	assert.Equal(t, []string{"Go"}, candidate.Skills)
	assert.Equal(t, "new summary", candidate.Summary)
	assert.Empty(t, matches.rows, "stale matches are dropped on re-upload")
}

func TestIngestResumeGeneratorFailureDegrades(t *testing.T) {
	writer := newFakeCandidateWriter()
	generator := &stubGenerator{err: errors.New("llm down")}
	uc := newCandidateUsecase(writer, generator, &fakeMatchStore{})

	candidate, err := uc.IngestResume(context.Background(), IngestResumeInput{
		FileName: "john_smith.pdf",
		Text:     "resume body",
	})
	require.NoError(t, err)
	assert.Equal(t, "john smith", candidate.Name)
	assert.Empty(t, candidate.Skills)
}

func TestIngestResumeEmptyText(t *testing.T) {
	uc := newCandidateUsecase(newFakeCandidateWriter(), nil, &fakeMatchStore{})

	_, err := uc.IngestResume(context.Background(), IngestResumeInput{FileName: "x.pdf", Text: "  "})
	require.Error(t, err)
}

// gatedProvider blocks every Embed call until released, then records whether
// the context it was handed was still live.
type gatedProvider struct {
	release chan struct{}
	mu      sync.Mutex
	ctxErrs []error
}

func (p *gatedProvider) Embed(ctx context.Context, _ string) ([]float32, error) {
	<-p.release
	p.mu.Lock()
	p.ctxErrs = append(p.ctxErrs, ctx.Err())
	p.mu.Unlock()
	return []float32{0, 0, 1}, nil
}

func (p *gatedProvider) Dim() int         { return testDim }
func (p *gatedProvider) Normalized() bool { return true }

func TestBulkIngestOutlivesEnqueueingCall(t *testing.T) {
	writer := newFakeCandidateWriter()
	provider := &gatedProvider{release: make(chan struct{})}
	scorer := matching.NewScorer(matching.ScorerConfig{NormalizedEmbeddings: true}, nil)
	matchUC := NewMatchUsecase(&fakeJobStore{}, &fakeCandidateStore{}, &fakeMatchStore{}, scorer, nil)
	uc := NewCandidateUsecase(writer, matchUC, provider, embedding.NewCodec(testDim, nil), nil, nil)

	var inputs []IngestResumeInput
	for i := 0; i < 6; i++ {
		inputs = append(inputs, IngestResumeInput{
			FileName: fmt.Sprintf("resume_%d.pdf", i),
			Text:     fmt.Sprintf("resume body %d", i),
		})
	}

	pool := worker.NewPool(2, 8, nil)
	require.NoError(t, uc.BulkIngest(inputs, pool))

	// the queueing call has returned; the workers are still parked on the
	// gate and must see a context that has not been torn down
	close(provider.release)
	pool.Stop()

	assert.Len(t, writer.created, len(inputs))
	provider.mu.Lock()
	defer provider.mu.Unlock()
	require.Len(t, provider.ctxErrs, len(inputs))
	for _, err := range provider.ctxErrs {
		assert.NoError(t, err)
	}
}
