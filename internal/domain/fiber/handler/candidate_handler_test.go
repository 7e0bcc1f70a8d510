package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/recruitiq/recruit-match/internal/embedding"
	"github.com/recruitiq/recruit-match/internal/matching"
	"github.com/recruitiq/recruit-match/internal/model"
	"github.com/recruitiq/recruit-match/internal/usecase"
	"github.com/recruitiq/recruit-match/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCandidateWriter struct{}

func (stubCandidateWriter) CreateCandidate(c *model.Candidate) error {
	c.ID = uuid.New()
	return nil
}
func (stubCandidateWriter) UpdateCandidate(*model.Candidate) error { return nil }
func (stubCandidateWriter) FindCandidateByEmail(string) (*model.Candidate, error) {
	return nil, nil
}
func (stubCandidateWriter) FindCandidateByID(uuid.UUID) (*model.Candidate, error) {
	return nil, nil
}

type stubJobStore struct{}

func (stubJobStore) GetActiveJobs() ([]model.Job, error) { return nil, nil }

type stubCandidateStore struct{}

func (stubCandidateStore) GetCandidates() ([]model.Candidate, error) { return nil, nil }

type stubMatchStore struct{}

func (stubMatchStore) CreateMatches([]model.Match) error                 { return nil }
func (stubMatchStore) DeleteByJob(uuid.UUID) error                       { return nil }
func (stubMatchStore) DeleteByCandidate(uuid.UUID) error                 { return nil }
func (stubMatchStore) DeleteAll() error                                  { return nil }
func (stubMatchStore) FindByJob(uuid.UUID) ([]model.Match, error)        { return nil, nil }
func (stubMatchStore) FindByCandidate(uuid.UUID) ([]model.Match, error)  { return nil, nil }

type stubProvider struct{}

func (stubProvider) Embed(context.Context, string) ([]float32, error) {
	return []float32{0, 0, 1}, nil
}
func (stubProvider) Dim() int         { return 3 }
func (stubProvider) Normalized() bool { return true }

func newCandidateTestApp(t *testing.T) *fiber.App {
	scorer := matching.NewScorer(matching.ScorerConfig{NormalizedEmbeddings: true}, nil)
	matchUC := usecase.NewMatchUsecase(stubJobStore{}, stubCandidateStore{}, stubMatchStore{}, scorer, nil)
	candUC := usecase.NewCandidateUsecase(stubCandidateWriter{}, matchUC, stubProvider{}, embedding.NewCodec(3, nil), nil, nil)
	pool := worker.NewPool(1, 4, nil)
	t.Cleanup(pool.Stop)

	app := fiber.New()
	NewCandidateHandler(candUC, matchUC, pool).RegisterRoutes(app)
	return app
}

func multipartBody(t *testing.T, field, fileName, content string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUploadRejectsNonPDFBeforeSaving(t *testing.T) {
	app := newCandidateTestApp(t)

	body, contentType := multipartBody(t, "resume", "notes.txt", "plain text")
	req := httptest.NewRequest(fiber.MethodPost, "/api/candidates", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)

	_, statErr := os.Stat(filepath.Join("./uploads/resumes/", "notes.txt"))
	assert.True(t, os.IsNotExist(statErr), "rejected upload must not be written to disk")
}

func TestBulkUploadRejectsNonPDFBeforeSaving(t *testing.T) {
	app := newCandidateTestApp(t)

	body, contentType := multipartBody(t, "resumes", "payload.exe", "MZ")
	req := httptest.NewRequest(fiber.MethodPost, "/api/candidates/bulk", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)

	_, statErr := os.Stat(filepath.Join("./uploads/resumes/", "payload.exe"))
	assert.True(t, os.IsNotExist(statErr), "rejected upload must not be written to disk")
}
