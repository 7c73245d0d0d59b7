package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "esgdashboard/middlewares"
	"esgdashboard/models"
	service "esgdashboard/services"
	"esgdashboard/utils"
)

type IndicatorHandler struct {
	service service.IndicatorService
}

func NewIndicatorHandler(svc service.IndicatorService) *IndicatorHandler {
	return &IndicatorHandler{
		service: svc,
	}
}

func (h *IndicatorHandler) CreateIndicator(w http.ResponseWriter, r *http.Request) {
	var indicator models.Indicator
	if err := utils.DecodeAndValidate(w, r, &indicator); err != nil {
		return
	}

	user := middleware.GetUserFromContext(r.Context())
	indicator.OrgID = user.OrgID
	indicator.Metadata.CreatedBy = user.Username
	indicator.Metadata.UpdatedBy = user.Username

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.CreateIndicator(ctx, &indicator)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Indicator created successfully", created, http.StatusCreated)
}

func (h *IndicatorHandler) GetAllIndicators(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	indicators, err := h.service.GetAllIndicators(ctx, user.OrgID)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Indicators retrieved successfully", indicators, http.StatusOK)
}
