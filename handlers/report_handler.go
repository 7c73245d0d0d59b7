package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	middleware "esgdashboard/middlewares"
	service "esgdashboard/services"
	"esgdashboard/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{
		service: svc,
	}
}

func (h *ReportHandler) RequestReport(w http.ResponseWriter, r *http.Request) {
	initiativeID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid initiative ID format", http.StatusBadRequest)
		return
	}

	// Optional body: a per-request threshold override.
	var reportRequest struct {
		Threshold *int `json:"threshold"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&reportRequest); err != nil {
			utils.HandleMessageResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	user := middleware.GetUserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	report, err := h.service.RequestReport(ctx, initiativeID, user.OrgID, user.Username, reportRequest.Threshold)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Report generated successfully", report, http.StatusCreated)
}

func (h *ReportHandler) GetReportByID(w http.ResponseWriter, r *http.Request) {
	reportID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid report ID format", http.StatusBadRequest)
		return
	}

	user := middleware.GetUserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	report, err := h.service.GetReport(ctx, reportID, user.OrgID)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Report retrieved successfully", report, http.StatusOK)
}

func (h *ReportHandler) GetReportsByInitiative(w http.ResponseWriter, r *http.Request) {
	initiativeID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid initiative ID format", http.StatusBadRequest)
		return
	}

	user := middleware.GetUserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	reports, err := h.service.GetReportsByInitiative(ctx, initiativeID, user.OrgID)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Reports retrieved successfully", reports, http.StatusOK)
}
