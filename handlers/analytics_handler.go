package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "esgdashboard/middlewares"
	service "esgdashboard/services"
	"esgdashboard/utils"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: svc,
	}
}

func (h *AnalyticsHandler) GetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	summary, err := h.service.GetPortfolioSummary(ctx, user.OrgID)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Portfolio summary retrieved successfully", summary, http.StatusOK)
}
