package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "esgdashboard/middlewares"
	service "esgdashboard/services"
	"esgdashboard/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DraftHandler struct {
	service service.DraftService
}

func NewDraftHandler(svc service.DraftService) *DraftHandler {
	return &DraftHandler{
		service: svc,
	}
}

// SaveDraft serves both the 30-second autosave tick and the explicit "save as
// draft" action; both are the same unconditional overwrite.
func (h *DraftHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	requestID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid data request ID format", http.StatusBadRequest)
		return
	}

	var saveRequest struct {
		Value               interface{} `json:"value"`
		SupportingDocuments []string    `json:"supporting_documents"`
	}
	if err := utils.DecodeAndValidate(w, r, &saveRequest); err != nil {
		return
	}

	user := middleware.GetUserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	draft, err := h.service.SaveDraft(ctx, requestID, user.Username, saveRequest.Value, saveRequest.SupportingDocuments)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Draft saved successfully", draft, http.StatusOK)
}

func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	requestID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid data request ID format", http.StatusBadRequest)
		return
	}

	user := middleware.GetUserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	draft, err := h.service.GetDraft(ctx, requestID, user.Username)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Draft retrieved successfully", draft, http.StatusOK)
}
