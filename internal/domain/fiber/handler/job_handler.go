package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/recruitiq/recruit-match/internal/dto"
	"github.com/recruitiq/recruit-match/internal/middleware"
	"github.com/recruitiq/recruit-match/internal/usecase"
	"github.com/recruitiq/recruit-match/internal/util"
)

type JobHandler struct {
	jobs    *usecase.JobUsecase
	matches *usecase.MatchUsecase
}

func NewJobHandler(jobs *usecase.JobUsecase, matches *usecase.MatchUsecase) *JobHandler {
	return &JobHandler{jobs: jobs, matches: matches}
}

func (h *JobHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/jobs", middleware.RateLimiter(10, 1*time.Minute), h.CreateJob)
	app.Get("/api/jobs/similar", h.FindSimilar)
	app.Get("/api/jobs/search", h.SearchJobs)
	app.Get("/api/jobs/:id", h.GetJob)
	app.Get("/api/jobs/:id/candidates", h.CandidatesForJob)
	app.Post("/api/matches/refresh", h.RefreshMatches)
	app.Post("/api/jobs/expire-sweep", h.ExpireSweep)
}

func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "title and description are required",
		})
	}

	job, err := h.jobs.CreateJob(c.Context(), req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create job",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Job created",
		Data: dto.JobDTO{
			ID:              job.ID,
			Title:           job.Title,
			Location:        job.Location,
			RequiredSkills:  job.RequiredSkills,
			PreferredSkills: job.PreferredSkills,
			TokenID:         job.TokenID,
			Status:          job.Status,
			ExpiresAt:       job.ExpiresAt,
			CreatedAt:       job.CreatedAt,
		},
	})
}

func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}

	job, err := h.jobs.GetJob(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "job not found",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get job",
		Data: dto.JobDTO{
			ID:              job.ID,
			Title:           job.Title,
			Location:        job.Location,
			RequiredSkills:  job.RequiredSkills,
			PreferredSkills: job.PreferredSkills,
			TokenID:         job.TokenID,
			Status:          job.Status,
			ExpiresAt:       job.ExpiresAt,
			CreatedAt:       job.CreatedAt,
		},
	})
}

func (h *JobHandler) FindSimilar(c *fiber.Ctx) error {
	description := c.Query("description")
	if strings.TrimSpace(description) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "description is required",
		})
	}
	threshold := c.QueryFloat("threshold", 0.7)
	limit := c.QueryInt("limit", 5)

	similar, err := h.jobs.FindSimilarJobs(c.Context(), description, threshold, limit)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to search similar jobs",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success search similar jobs",
		Data:    similar,
	})
}

func (h *JobHandler) SearchJobs(c *fiber.Ctx) error {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "q is required",
		})
	}

	jobs, err := h.jobs.SearchJobs(c.Context(), query, c.QueryInt("limit", 5))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to search jobs",
		}, err)
	}

	data := make([]dto.JobDTO, 0, len(jobs))
	for _, job := range jobs {
		data = append(data, dto.JobDTO{
			ID:              job.ID,
			Title:           job.Title,
			Location:        job.Location,
			RequiredSkills:  job.RequiredSkills,
			PreferredSkills: job.PreferredSkills,
			TokenID:         job.TokenID,
			Status:          job.Status,
			ExpiresAt:       job.ExpiresAt,
			CreatedAt:       job.CreatedAt,
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success search jobs",
		Data:    data,
	})
}

func (h *JobHandler) CandidatesForJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}

	matches, err := h.matches.MatchesForJob(id)
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

func (h *JobHandler) RefreshMatches(c *fiber.Ctx) error {
	count, err := h.matches.RefreshAll()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to refresh matches",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success refresh matches",
		Data:    fiber.Map{"matches": count},
	})
}

func (h *JobHandler) ExpireSweep(c *fiber.Ctx) error {
	expired, err := h.jobs.ExpireJobs()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to expire jobs",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success expire jobs",
		Data:    fiber.Map{"expired": expired},
	})
}
