package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "esgdashboard/middlewares"
	"esgdashboard/models"
	service "esgdashboard/services"
	"esgdashboard/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InitiativeHandler struct {
	service      service.InitiativeService
	completeness service.CompletenessService
}

func NewInitiativeHandler(svc service.InitiativeService, completeness service.CompletenessService) *InitiativeHandler {
	return &InitiativeHandler{
		service:      svc,
		completeness: completeness,
	}
}

func (h *InitiativeHandler) CreateInitiative(w http.ResponseWriter, r *http.Request) {
	var initiative models.Initiative
	if err := utils.DecodeAndValidate(w, r, &initiative); err != nil {
		return
	}

	user := middleware.GetUserFromContext(r.Context())
	initiative.OrgID = user.OrgID
	initiative.Metadata.CreatedBy = user.Username
	initiative.Metadata.UpdatedBy = user.Username

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.CreateInitiative(ctx, &initiative)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Initiative created successfully", created, http.StatusCreated)
}

func (h *InitiativeHandler) GetAllInitiatives(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	initiatives, err := h.service.GetAllInitiatives(ctx, user.OrgID)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Initiatives retrieved successfully", initiatives, http.StatusOK)
}

func (h *InitiativeHandler) GetInitiativeByID(w http.ResponseWriter, r *http.Request) {
	objectID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid initiative ID format", http.StatusBadRequest)
		return
	}

	user := middleware.GetUserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	initiative, err := h.service.GetInitiative(ctx, objectID, user.OrgID)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Initiative retrieved successfully", initiative, http.StatusOK)
}

func (h *InitiativeHandler) FanOutDataRequests(w http.ResponseWriter, r *http.Request) {
	objectID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid initiative ID format", http.StatusBadRequest)
		return
	}

	var fanOutRequest struct {
		IndicatorIDs      []string `json:"indicator_ids" validate:"required,min=1,dive,required"`
		StakeholderGroups []string `json:"stakeholder_groups" validate:"required,min=1,dive,required"`
	}
	if err := utils.DecodeAndValidate(w, r, &fanOutRequest); err != nil {
		return
	}

	indicatorIDs := make([]primitive.ObjectID, 0, len(fanOutRequest.IndicatorIDs))
	for _, raw := range fanOutRequest.IndicatorIDs {
		indicatorID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid indicator ID format: "+raw, http.StatusBadRequest)
			return
		}
		indicatorIDs = append(indicatorIDs, indicatorID)
	}

	user := middleware.GetUserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := h.service.FanOutDataRequests(ctx, objectID, user.OrgID, indicatorIDs, fanOutRequest.StakeholderGroups, user.Username)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Data requests generated successfully", result, http.StatusOK)
}

func (h *InitiativeHandler) GetDataRequests(w http.ResponseWriter, r *http.Request) {
	objectID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid initiative ID format", http.StatusBadRequest)
		return
	}

	user := middleware.GetUserFromContext(r.Context())
	group := r.URL.Query().Get("stakeholder_group")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requests, err := h.service.GetDataRequests(ctx, objectID, user.OrgID, group)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Data requests retrieved successfully", requests, http.StatusOK)
}

func (h *InitiativeHandler) GetCompleteness(w http.ResponseWriter, r *http.Request) {
	objectID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid initiative ID format", http.StatusBadRequest)
		return
	}

	user := middleware.GetUserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Org-scoped existence check before the computation.
	if _, err := h.service.GetInitiative(ctx, objectID, user.OrgID); err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	snapshot, err := h.completeness.ComputeCompleteness(ctx, objectID)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Completeness computed successfully", snapshot, http.StatusOK)
}
