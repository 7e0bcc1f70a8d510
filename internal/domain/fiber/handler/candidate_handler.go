package handler

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/recruitiq/recruit-match/internal/dto"
	"github.com/recruitiq/recruit-match/internal/middleware"
	"github.com/recruitiq/recruit-match/internal/usecase"
	"github.com/recruitiq/recruit-match/internal/util"
	"github.com/recruitiq/recruit-match/internal/worker"
)

type CandidateHandler struct {
	candidates *usecase.CandidateUsecase
	matches    *usecase.MatchUsecase
	pool       *worker.Pool
}

func NewCandidateHandler(candidates *usecase.CandidateUsecase, matches *usecase.MatchUsecase, pool *worker.Pool) *CandidateHandler {
	return &CandidateHandler{candidates: candidates, matches: matches, pool: pool}
}

func (h *CandidateHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/candidates", middleware.RateLimiter(10, 1*time.Minute), h.Upload)
	app.Post("/api/candidates/bulk", middleware.RateLimiter(2, 1*time.Minute), h.BulkUpload)
	app.Get("/api/candidates/:id", h.GetCandidate)
	app.Get("/api/candidates/:id/matches", h.MatchesForCandidate)
}

func (h *CandidateHandler) Upload(c *fiber.Ctx) error {
	input, err := h.processResume(c, "resume")
	if err != nil {
		return err
	}

	candidate, err := h.candidates.IngestResume(c.Context(), *input)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to process resume",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Resume processed",
		Data: dto.CandidateDTO{
			ID:        candidate.ID,
			Name:      candidate.Name,
			Email:     candidate.Email,
			Phone:     candidate.Phone,
			Skills:    candidate.Skills,
			Summary:   candidate.Summary,
			CreatedAt: candidate.CreatedAt,
		},
	})
}

func (h *CandidateHandler) BulkUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "multipart form is required",
		}, err)
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "at least one resume file is required",
		})
	}

	uploadedBy := parseUploader(c)

	var inputs []usecase.IngestResumeInput
	for _, file := range files {
		if !isPDF(file.Filename) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnsupportedMediaType,
				Message: fmt.Sprintf("unsupported file type: %s", file.Filename),
			})
		}
		savePath := filepath.Join("./uploads/resumes/", file.Filename)
		if err := c.SaveFile(file, savePath); err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Message: fmt.Sprintf("cannot save %s", file.Filename),
			}, err)
		}
		text, err := util.ExtractPDFText(savePath)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnprocessableEntity,
				Message: fmt.Sprintf("failed to extract text from %s", file.Filename),
			}, err)
		}
		inputs = append(inputs, usecase.IngestResumeInput{
			FileName:   file.Filename,
			Text:       text,
			UploadedBy: uploadedBy,
		})
	}

	if err := h.candidates.BulkIngest(inputs, h.pool); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to queue resumes",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: "Resumes queued for processing",
		Data:    fiber.Map{"queued": len(inputs)},
	})
}

func (h *CandidateHandler) GetCandidate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate id",
		}, err)
	}

	candidate, err := h.candidates.GetCandidate(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "candidate not found",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get candidate",
		Data: dto.CandidateDTO{
			ID:        candidate.ID,
			Name:      candidate.Name,
			Email:     candidate.Email,
			Phone:     candidate.Phone,
			Skills:    candidate.Skills,
			Summary:   candidate.Summary,
			CreatedAt: candidate.CreatedAt,
		},
	})
}

func (h *CandidateHandler) MatchesForCandidate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate id",
		}, err)
	}

	matches, err := h.matches.MatchesForCandidate(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list matches",
		}, err)
	}

	data := make([]dto.MatchDTO, 0, len(matches))
	for _, m := range matches {
		data = append(data, dto.MatchDTO{
			JobID:       m.JobID,
			CandidateID: m.CandidateID,
			Score:       m.Score,
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success list matches",
		Data:    data,
	})
}

func (h *CandidateHandler) processResume(c *fiber.Ctx, fieldName string) (*usecase.IngestResumeInput, error) {
	file, err := c.FormFile(fieldName)
	if err != nil {
		return nil, util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("%s file is required", fieldName),
		}, err)
	}

	if file.Size > 5*1024*1024 {
		return nil, util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusRequestEntityTooLarge,
			Message: fmt.Sprintf("%s file size is too large (max 5MB)", fieldName),
		})
	}

	// reject before SaveFile so bad uploads never touch disk
	if !isPDF(file.Filename) {
		return nil, util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnsupportedMediaType,
			Message: fmt.Sprintf("unsupported %s file type", fieldName),
		})
	}

	savePath := filepath.Join("./uploads/resumes/", file.Filename)
	if err := c.SaveFile(file, savePath); err != nil {
		return nil, util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: fmt.Sprintf("cannot save %s file", fieldName),
		}, err)
	}

	text, err := util.ExtractPDFText(savePath)
	if err != nil {
		return nil, util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: fmt.Sprintf("failed to extract %s text", fieldName),
		}, err)
	}

	return &usecase.IngestResumeInput{
		FileName:   file.Filename,
		Text:       text,
		UploadedBy: parseUploader(c),
	}, nil
}

func isPDF(fileName string) bool {
	return strings.ToLower(filepath.Ext(fileName)) == ".pdf"
}

func parseUploader(c *fiber.Ctx) uuid.UUID {
	id, err := uuid.Parse(c.FormValue("recruiter_id"))
	if err != nil {
		return uuid.Nil
	}
	return id
}
