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

type ContributionHandler struct {
	service service.ContributionService
}

func NewContributionHandler(svc service.ContributionService) *ContributionHandler {
	return &ContributionHandler{
		service: svc,
	}
}

func (h *ContributionHandler) SubmitContribution(w http.ResponseWriter, r *http.Request) {
	requestID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid data request ID format", http.StatusBadRequest)
		return
	}

	// Value is optional here: a nil value promotes the contributor's draft.
	var submitRequest struct {
		Value               interface{} `json:"value"`
		SupportingDocuments []string    `json:"supporting_documents"`
	}
	if err := utils.DecodeAndValidate(w, r, &submitRequest); err != nil {
		return
	}

	user := middleware.GetUserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	contribution, err := h.service.SubmitContribution(ctx, requestID, user.Username, service.SubmitInput{
		Value:               submitRequest.Value,
		SupportingDocuments: submitRequest.SupportingDocuments,
	})
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Contribution submitted successfully", contribution, http.StatusCreated)
}

func (h *ContributionHandler) ReviewContribution(w http.ResponseWriter, r *http.Request) {
	contributionID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid contribution ID format", http.StatusBadRequest)
		return
	}

	var reviewRequest struct {
		Decision string `json:"decision" validate:"required,oneof=approved rejected"`
		Notes    string `json:"notes"`
	}
	if err := utils.DecodeAndValidate(w, r, &reviewRequest); err != nil {
		return
	}

	user := middleware.GetUserFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	contribution, err := h.service.ReviewContribution(ctx, contributionID, user.Username, user.Reviewer, reviewRequest.Decision, reviewRequest.Notes)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Contribution reviewed successfully", contribution, http.StatusOK)
}

func (h *ContributionHandler) GetContributionByID(w http.ResponseWriter, r *http.Request) {
	contributionID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid contribution ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	contribution, err := h.service.GetContribution(ctx, contributionID)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Contribution retrieved successfully", contribution, http.StatusOK)
}

func (h *ContributionHandler) GetActiveContribution(w http.ResponseWriter, r *http.Request) {
	requestID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid data request ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	contribution, err := h.service.GetActiveContribution(ctx, requestID)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Contribution retrieved successfully", contribution, http.StatusOK)
}

func (h *ContributionHandler) GetContributionsByInitiative(w http.ResponseWriter, r *http.Request) {
	initiativeID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid initiative ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	contributions, err := h.service.GetByInitiative(ctx, initiativeID)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Contributions retrieved successfully", contributions, http.StatusOK)
}
