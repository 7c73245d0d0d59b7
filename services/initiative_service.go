package services

import (
	"context"
	"errors"
	"time"

	"esgdashboard/apperrors"
	"esgdashboard/models"
	repository "esgdashboard/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FanOutResult reports what a fan-out run actually did: requests created this
// run, and keys skipped because a request already existed.
type FanOutResult struct {
	Created []models.DataRequest    `json:"created"`
	Skipped []models.DataRequestKey `json:"skipped"`
}

type InitiativeService interface {
	CreateInitiative(ctx context.Context, initiative *models.Initiative) (*models.Initiative, error)
	GetInitiative(ctx context.Context, id primitive.ObjectID, orgID string) (*models.InitiativeView, error)
	GetAllInitiatives(ctx context.Context, orgID string) ([]models.InitiativeView, error)
	// FanOutDataRequests materializes one data request per
	// (indicator, stakeholder group) pair. Idempotent: existing pairs are
	// skipped, never touched, so re-running with the same or a superset
	// selection only creates the increment.
	FanOutDataRequests(ctx context.Context, initiativeID primitive.ObjectID, orgID string, indicatorIDs []primitive.ObjectID, groups []string, requestedBy string) (*FanOutResult, error)
	GetDataRequests(ctx context.Context, initiativeID primitive.ObjectID, orgID, group string) ([]models.DataRequest, error)
}

type initiativeService struct {
	initiativeRepo repository.InitiativeRepository
	requestRepo    repository.DataRequestRepository
	indicatorRepo  repository.IndicatorRepository
	completeness   CompletenessService
	dispatcher     *Dispatcher
}

func NewInitiativeService(
	initiativeRepo repository.InitiativeRepository,
	requestRepo repository.DataRequestRepository,
	indicatorRepo repository.IndicatorRepository,
	completeness CompletenessService,
	dispatcher *Dispatcher,
) InitiativeService {
	return &initiativeService{
		initiativeRepo: initiativeRepo,
		requestRepo:    requestRepo,
		indicatorRepo:  indicatorRepo,
		completeness:   completeness,
		dispatcher:     dispatcher,
	}
}

func (s *initiativeService) CreateInitiative(ctx context.Context, initiative *models.Initiative) (*models.Initiative, error) {
	if !initiative.PeriodEnd.After(initiative.PeriodStart) {
		return nil, apperrors.NewValidationError("reporting period end must be after its start")
	}

	now := time.Now()
	initiative.Version = 0
	initiative.Metadata.CreatedAt = now
	initiative.Metadata.UpdatedAt = now

	if err := s.initiativeRepo.Create(ctx, initiative); err != nil {
		return nil, err
	}

	s.dispatcher.Publish(EventInitiativeCreated, map[string]interface{}{
		"initiative_id": initiative.ID.Hex(),
		"org_id":        initiative.OrgID,
		"name":          initiative.Name,
		"type":          initiative.Type,
	})

	return initiative, nil
}

func (s *initiativeService) GetInitiative(ctx context.Context, id primitive.ObjectID, orgID string) (*models.InitiativeView, error) {
	initiative, err := s.initiativeRepo.GetByID(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("initiative", id.Hex())
		}
		return nil, err
	}

	return s.view(ctx, initiative)
}

func (s *initiativeService) GetAllInitiatives(ctx context.Context, orgID string) ([]models.InitiativeView, error) {
	initiatives, err := s.initiativeRepo.GetAll(ctx, orgID)
	if err != nil {
		return nil, err
	}

	views := make([]models.InitiativeView, 0, len(initiatives))
	for i := range initiatives {
		view, err := s.view(ctx, &initiatives[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}

	return views, nil
}

// view attaches the derived fields. Progress and status are never read from
// storage; they are recomputed here every time.
func (s *initiativeService) view(ctx context.Context, initiative *models.Initiative) (*models.InitiativeView, error) {
	snapshot, err := s.completeness.ComputeCompleteness(ctx, initiative.ID)
	if err != nil {
		return nil, err
	}

	return &models.InitiativeView{
		Initiative:         *initiative,
		ProgressPercentage: snapshot.Overall,
		Status:             DeriveStatus(snapshot.Overall, initiative.DueDate, time.Now()),
	}, nil
}

func (s *initiativeService) FanOutDataRequests(ctx context.Context, initiativeID primitive.ObjectID, orgID string, indicatorIDs []primitive.ObjectID, groups []string, requestedBy string) (*FanOutResult, error) {
	if len(indicatorIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one indicator is required")
	}
	if len(groups) == 0 {
		return nil, apperrors.NewValidationError("at least one stakeholder group is required")
	}

	initiative, err := s.initiativeRepo.GetByID(ctx, initiativeID, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("initiative", initiativeID.Hex())
		}
		return nil, err
	}

	indicators, err := s.indicatorRepo.GetByIDs(ctx, indicatorIDs)
	if err != nil {
		return nil, err
	}
	if len(indicators) != len(indicatorIDs) {
		known := make(map[primitive.ObjectID]bool, len(indicators))
		for _, indicator := range indicators {
			known[indicator.ID] = true
		}
		for _, id := range indicatorIDs {
			if !known[id] {
				return nil, apperrors.NewNotFoundError("indicator", id.Hex())
			}
		}
	}

	// Single-writer section: the version guard serializes fan-out runs for
	// the same initiative. A lost guard means another run is in flight.
	matched, err := s.initiativeRepo.BumpVersion(ctx, initiativeID, initiative.Version, requestedBy)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, apperrors.NewConflictError("initiative %s was modified concurrently, retry the fan-out", initiativeID.Hex())
	}

	now := time.Now()
	result := &FanOutResult{
		Created: []models.DataRequest{},
		Skipped: []models.DataRequestKey{},
	}

	for _, indicator := range indicators {
		for _, group := range groups {
			request := models.DataRequest{
				InitiativeID:     initiativeID,
				IndicatorID:      indicator.ID,
				StakeholderGroup: group,
				PeriodStart:      initiative.PeriodStart,
				PeriodEnd:        initiative.PeriodEnd,
				DueDate:          initiative.DueDate,
				Status:           models.RequestStatusPending,
				Metadata: models.Metadata{
					CreatedBy: requestedBy,
					UpdatedBy: requestedBy,
					CreatedAt: now,
					UpdatedAt: now,
				},
			}

			err := s.requestRepo.Insert(ctx, &request)
			if mongo.IsDuplicateKeyError(err) {
				result.Skipped = append(result.Skipped, models.DataRequestKey{
					InitiativeID:     initiativeID,
					IndicatorID:      indicator.ID,
					StakeholderGroup: group,
				})
				continue
			}
			if err != nil {
				return nil, err
			}
			result.Created = append(result.Created, request)
		}
	}

	if err := s.initiativeRepo.AddStakeholderGroups(ctx, initiativeID, groups, requestedBy); err != nil {
		return nil, err
	}

	s.dispatcher.Publish(EventDataRequestFannedOut, map[string]interface{}{
		"initiative_id": initiativeID.Hex(),
		"created":       len(result.Created),
		"skipped":       len(result.Skipped),
	})

	return result, nil
}

func (s *initiativeService) GetDataRequests(ctx context.Context, initiativeID primitive.ObjectID, orgID, group string) ([]models.DataRequest, error) {
	if _, err := s.initiativeRepo.GetByID(ctx, initiativeID, orgID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("initiative", initiativeID.Hex())
		}
		return nil, err
	}

	if group != "" {
		return s.requestRepo.GetByInitiativeAndGroup(ctx, initiativeID, group)
	}
	return s.requestRepo.GetByInitiative(ctx, initiativeID)
}
