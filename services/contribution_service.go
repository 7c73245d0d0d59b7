package services

import (
	"context"
	"errors"
	"time"

	"esgdashboard/apperrors"
	"esgdashboard/models"
	repository "esgdashboard/repositories"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubmitInput is the payload of a contribution submission. A nil Value falls
// back to the contributor's saved draft.
type SubmitInput struct {
	Value               interface{}
	SupportingDocuments []string
}

type ContributionService interface {
	// SubmitContribution turns the contributor's answer (or their draft) into
	// a pending contribution and moves the data request to submitted. Only
	// one non-rejected contribution may be in flight per request.
	SubmitContribution(ctx context.Context, requestID primitive.ObjectID, contributorID string, input SubmitInput) (*models.Contribution, error)
	// ReviewContribution applies the reviewer's decision. pending is the only
	// reviewable state: approval closes the data request, rejection reopens
	// it for resubmission while the rejected contribution stays as an audit
	// record.
	ReviewContribution(ctx context.Context, id primitive.ObjectID, reviewer string, isReviewer bool, decision, notes string) (*models.Contribution, error)
	GetContribution(ctx context.Context, id primitive.ObjectID) (*models.Contribution, error)
	// GetActiveContribution returns the contribution currently in flight for a
	// data request, ignoring rejected ones.
	GetActiveContribution(ctx context.Context, requestID primitive.ObjectID) (*models.Contribution, error)
	GetByInitiative(ctx context.Context, initiativeID primitive.ObjectID) ([]models.Contribution, error)
}

type contributionService struct {
	contributionRepo repository.ContributionRepository
	requestRepo      repository.DataRequestRepository
	indicatorRepo    repository.IndicatorRepository
	drafts           DraftService
	completeness     CompletenessService
	dispatcher       *Dispatcher
	log              *logrus.Logger
}

func NewContributionService(
	contributionRepo repository.ContributionRepository,
	requestRepo repository.DataRequestRepository,
	indicatorRepo repository.IndicatorRepository,
	drafts DraftService,
	completeness CompletenessService,
	dispatcher *Dispatcher,
	log *logrus.Logger,
) ContributionService {
	return &contributionService{
		contributionRepo: contributionRepo,
		requestRepo:      requestRepo,
		indicatorRepo:    indicatorRepo,
		drafts:           drafts,
		completeness:     completeness,
		dispatcher:       dispatcher,
		log:              log,
	}
}

func (s *contributionService) SubmitContribution(ctx context.Context, requestID primitive.ObjectID, contributorID string, input SubmitInput) (*models.Contribution, error) {
	if contributorID == "" {
		return nil, apperrors.NewValidationError("contributor id is required")
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("data request", requestID.Hex())
		}
		return nil, err
	}

	value := input.Value
	documents := input.SupportingDocuments

	// An explicit payload wins; otherwise the saved draft is promoted.
	if value == nil {
		draft, err := s.drafts.GetDraft(ctx, requestID, contributorID)
		if err != nil {
			var notFound *apperrors.NotFoundError
			if errors.As(err, &notFound) {
				return nil, apperrors.NewValidationError("a value or a saved draft is required to submit")
			}
			return nil, err
		}
		value = draft.Value
		if len(documents) == 0 {
			documents = draft.SupportingDocuments
		}
	}

	indicator, err := s.indicatorRepo.GetByID(ctx, request.IndicatorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("indicator", request.IndicatorID.Hex())
		}
		return nil, err
	}
	if err := validateValue(indicator, value); err != nil {
		return nil, err
	}

	// pending -> submitted is the single-writer gate: the loser of a race,
	// or a submit against an approved request, fails here.
	matched, err := s.requestRepo.UpdateStatusIf(ctx, requestID, models.RequestStatusPending, models.RequestStatusSubmitted, contributorID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, apperrors.NewConflictError("data request %s already has a contribution in flight", requestID.Hex())
	}

	if documents == nil {
		documents = []string{}
	}
	contribution := &models.Contribution{
		DataRequestID:       requestID,
		InitiativeID:        request.InitiativeID,
		ContributorID:       contributorID,
		Value:               value,
		SupportingDocuments: documents,
		VerificationStatus:  models.VerificationPending,
		SubmittedAt:         time.Now(),
	}

	if err := s.contributionRepo.Create(ctx, contribution); err != nil {
		// Reopen the request so the failed submission does not wedge it.
		if _, rollbackErr := s.requestRepo.UpdateStatusIf(ctx, requestID, models.RequestStatusSubmitted, models.RequestStatusPending, contributorID); rollbackErr != nil {
			s.log.WithError(rollbackErr).WithField("data_request_id", requestID.Hex()).
				Error("failed to reopen data request after contribution insert failure")
		}
		return nil, err
	}

	// The draft is spent once the contribution lands, whether it was promoted
	// or superseded by an explicit payload.
	if err := s.drafts.Discard(ctx, requestID, contributorID); err != nil {
		s.log.WithError(err).WithField("data_request_id", requestID.Hex()).
			Warn("failed to discard draft after submission")
	}

	s.dispatcher.Publish(EventContributionSubmitted, map[string]interface{}{
		"contribution_id": contribution.ID.Hex(),
		"data_request_id": requestID.Hex(),
		"initiative_id":   request.InitiativeID.Hex(),
		"contributor_id":  contributorID,
	})

	return contribution, nil
}

func (s *contributionService) ReviewContribution(ctx context.Context, id primitive.ObjectID, reviewer string, isReviewer bool, decision, notes string) (*models.Contribution, error) {
	if !isReviewer {
		return nil, apperrors.NewAuthorizationError("reviewer role is required to verify contributions")
	}
	if decision != models.VerificationApproved && decision != models.VerificationRejected {
		return nil, apperrors.NewValidationError("decision must be %q or %q", models.VerificationApproved, models.VerificationRejected)
	}

	contribution, err := s.contributionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("contribution", id.Hex())
		}
		return nil, err
	}

	matched, err := s.contributionRepo.ReviewIf(ctx, id, decision, reviewer, notes)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, apperrors.NewConflictError("contribution %s has already been reviewed", id.Hex())
	}

	// Approval closes the request; rejection reopens it for a fresh
	// contribution. The rejected one is never mutated back to pending.
	requestStatus := models.RequestStatusApproved
	if decision == models.VerificationRejected {
		requestStatus = models.RequestStatusPending
	}
	requestMatched, err := s.requestRepo.UpdateStatusIf(ctx, contribution.DataRequestID, models.RequestStatusSubmitted, requestStatus, reviewer)
	if err != nil {
		return nil, err
	}
	if !requestMatched {
		s.log.WithFields(logrus.Fields{
			"contribution_id": id.Hex(),
			"data_request_id": contribution.DataRequestID.Hex(),
		}).Warn("data request was not in submitted state during review")
	}

	payload := map[string]interface{}{
		"contribution_id": id.Hex(),
		"data_request_id": contribution.DataRequestID.Hex(),
		"initiative_id":   contribution.InitiativeID.Hex(),
		"decision":        decision,
		"reviewed_by":     reviewer,
	}

	// Every approval refreshes the initiative's completeness figure.
	if decision == models.VerificationApproved {
		snapshot, err := s.completeness.ComputeCompleteness(ctx, contribution.InitiativeID)
		if err != nil {
			return nil, err
		}
		payload["overall_completeness"] = snapshot.Overall
	}

	s.dispatcher.Publish(EventContributionVerified, payload)

	return s.contributionRepo.GetByID(ctx, id)
}

func (s *contributionService) GetContribution(ctx context.Context, id primitive.ObjectID) (*models.Contribution, error) {
	contribution, err := s.contributionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("contribution", id.Hex())
		}
		return nil, err
	}
	return contribution, nil
}

func (s *contributionService) GetActiveContribution(ctx context.Context, requestID primitive.ObjectID) (*models.Contribution, error) {
	if _, err := s.requestRepo.GetByID(ctx, requestID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("data request", requestID.Hex())
		}
		return nil, err
	}

	contribution, err := s.contributionRepo.GetActiveByRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("active contribution for data request", requestID.Hex())
		}
		return nil, err
	}
	return contribution, nil
}

func (s *contributionService) GetByInitiative(ctx context.Context, initiativeID primitive.ObjectID) ([]models.Contribution, error) {
	return s.contributionRepo.GetByInitiative(ctx, initiativeID)
}
