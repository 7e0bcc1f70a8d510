package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/recruitiq/recruit-match/internal/embedding"
	"github.com/recruitiq/recruit-match/internal/model"
	"github.com/recruitiq/recruit-match/internal/worker"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type CandidateWriter interface {
	CreateCandidate(candidate *model.Candidate) error
	UpdateCandidate(candidate *model.Candidate) error
	FindCandidateByEmail(email string) (*model.Candidate, error)
	FindCandidateByID(id uuid.UUID) (*model.Candidate, error)
}

// ContentGenerator is the LLM capability used to pull a structured profile
// out of raw resume text.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, prompt string) (string, error)
}

type IngestResumeInput struct {
	FileName   string
	Text       string
	UploadedBy uuid.UUID
}

// CandidateUsecase ingests resumes: extract a profile, embed the text, and
// upsert the candidate. Skills, summary, and embedding are replaced together,
// never partially.
type CandidateUsecase struct {
	candidates CandidateWriter
	matches    *MatchUsecase
	provider   embedding.Provider
	codec      *embedding.Codec
	generator  ContentGenerator
	genModel   string
	logger     *zap.Logger
}

func NewCandidateUsecase(candidates CandidateWriter, matches *MatchUsecase, provider embedding.Provider, codec *embedding.Codec, generator ContentGenerator, logger *zap.Logger) *CandidateUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CandidateUsecase{
		candidates: candidates,
		matches:    matches,
		provider:   provider,
		codec:      codec,
		generator:  generator,
		genModel:   "gemini-2.5-flash",
		logger:     logger,
	}
}

func (uc *CandidateUsecase) IngestResume(ctx context.Context, input IngestResumeInput) (*model.Candidate, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, fmt.Errorf("resume text is empty")
	}

	profile := uc.extractProfile(ctx, input)

	vec, err := uc.provider.Embed(ctx, input.Text)
	if err != nil {
		uc.logger.Warn("resume embedding failed, using zero vector", zap.Error(err))
		vec = uc.codec.Zero()
	}

	var candidate *model.Candidate
	if profile.Email != "" {
		candidate, err = uc.candidates.FindCandidateByEmail(profile.Email)
		if err != nil {
			return nil, fmt.Errorf("candidate lookup failed: %w", err)
		}
	}

	if candidate != nil {
		// re-upload: skills, summary, and embedding replace together
		candidate.Name = profile.Name
		candidate.Phone = profile.Phone
		candidate.ResumeFile = input.FileName
		candidate.Skills = profile.Skills
		candidate.Summary = profile.Summary
		candidate.Embedding = pgvector.NewVector(vec)
		if err := uc.candidates.UpdateCandidate(candidate); err != nil {
			return nil, fmt.Errorf("candidate update failed: %w", err)
		}
	} else {
		candidate = &model.Candidate{
			Name:       profile.Name,
			Email:      profile.Email,
			Phone:      profile.Phone,
			ResumeFile: input.FileName,
			Skills:     profile.Skills,
			Summary:    profile.Summary,
			Embedding:  pgvector.NewVector(vec),
			UploadedBy: input.UploadedBy,
		}
		if err := uc.candidates.CreateCandidate(candidate); err != nil {
			return nil, fmt.Errorf("candidate creation failed: %w", err)
		}
	}

	if _, err := uc.matches.MatchCandidate(candidate); err != nil {
		// the candidate record survives a failed matching pass
		uc.logger.Error("job matching failed",
			zap.String("candidate_id", candidate.ID.String()), zap.Error(err))
	}

	return candidate, nil
}

// BulkIngest queues each resume on the worker pool. Per-file failures are
// logged and do not stop the batch. Processing runs detached from whatever
// request queued it: the tasks outlive the caller, so they must never hold
// a request-scoped context (fasthttp recycles those after the handler
// returns).
func (uc *CandidateUsecase) BulkIngest(inputs []IngestResumeInput, pool *worker.Pool) error {
	ctx := context.Background()
	for _, input := range inputs {
		input := input
		if err := pool.Submit(func() {
			if _, err := uc.IngestResume(ctx, input); err != nil {
				uc.logger.Error("bulk resume processing failed",
					zap.String("file", input.FileName), zap.Error(err))
			}
		}); err != nil {
			return fmt.Errorf("queueing resume %s failed: %w", input.FileName, err)
		}
	}
	return nil
}

func (uc *CandidateUsecase) GetCandidate(id uuid.UUID) (*model.Candidate, error) {
	return uc.candidates.FindCandidateByID(id)
}

type candidateProfile struct {
	Name    string
	Email   string
	Phone   string
	Summary string
	Skills  []string
}

// extractProfile asks the LLM for a structured profile. Any failure degrades
// to a filename-derived profile so ingestion keeps going.
func (uc *CandidateUsecase) extractProfile(ctx context.Context, input IngestResumeInput) candidateProfile {
	fallback := candidateProfile{Name: nameFromFile(input.FileName)}
	if uc.generator == nil {
		return fallback
	}

	prompt := fmt.Sprintf(`
You are a resume parser. Extract the candidate's profile from the resume below.

Return your answer STRICTLY in JSON format with this schema:
{
	"name": "<full name>",
	"email": "<email address or empty string>",
	"phone": "<phone number or empty string>",
	"summary": "<2-3 sentence professional summary>",
	"skills": ["<skill>", "..."]
}

Resume:
%s
`, input.Text)

	text, err := uc.generator.GenerateContent(ctx, uc.genModel, prompt)
	if err != nil {
		uc.logger.Warn("resume profile extraction failed", zap.Error(err))
		return fallback
	}

	profile := candidateProfile{
		Name:    gjson.Get(text, "name").String(),
		Email:   strings.ToLower(strings.TrimSpace(gjson.Get(text, "email").String())),
		Phone:   gjson.Get(text, "phone").String(),
		Summary: gjson.Get(text, "summary").String(),
	}
	for _, s := range gjson.Get(text, "skills").Array() {
		if skill := strings.TrimSpace(s.String()); skill != "" {
			profile.Skills = append(profile.Skills, skill)
		}
	}
	if profile.Name == "" {
		profile.Name = fallback.Name
	}
	return profile
}

func nameFromFile(fileName string) string {
	name := fileName
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.TrimSpace(name)
}
