package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/recruitiq/recruit-match/internal/usecase"
	"github.com/recruitiq/recruit-match/internal/util"
)

type InsightsHandler struct {
	insights *usecase.InsightsUsecase
}

func NewInsightsHandler(insights *usecase.InsightsUsecase) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

func (h *InsightsHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/insights/tokens", h.TokenInsights)
}

func (h *InsightsHandler) TokenInsights(c *fiber.Ctx) error {
	insights, err := h.insights.TokenInsights(c.Query("location"), c.Query("title"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to aggregate token insights",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get token insights",
		Data:    insights,
	})
}
