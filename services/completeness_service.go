package services

import (
	"context"
	"math"
	"time"

	"esgdashboard/models"
	repository "esgdashboard/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CompletenessService interface {
	// ComputeCompleteness recomputes per-category and overall completion from
	// the current data request statuses. Nothing is cached; the snapshot is
	// always ground truth at the moment of the call.
	ComputeCompleteness(ctx context.Context, initiativeID primitive.ObjectID) (*models.CompletenessSnapshot, error)
	// MissingItems lists every data request that still lacks an approved
	// contribution, with its indicator and stakeholder group.
	MissingItems(ctx context.Context, initiativeID primitive.ObjectID) ([]models.MissingItem, error)
}

type completenessService struct {
	requestRepo   repository.DataRequestRepository
	indicatorRepo repository.IndicatorRepository
}

func NewCompletenessService(requestRepo repository.DataRequestRepository, indicatorRepo repository.IndicatorRepository) CompletenessService {
	return &completenessService{
		requestRepo:   requestRepo,
		indicatorRepo: indicatorRepo,
	}
}

func (s *completenessService) ComputeCompleteness(ctx context.Context, initiativeID primitive.ObjectID) (*models.CompletenessSnapshot, error) {
	requests, err := s.requestRepo.GetByInitiative(ctx, initiativeID)
	if err != nil {
		return nil, err
	}

	snapshot := &models.CompletenessSnapshot{
		InitiativeID: initiativeID,
		ComputedAt:   time.Now(),
	}
	if len(requests) == 0 {
		return snapshot, nil
	}

	categories, err := s.categoriesByIndicator(ctx, requests)
	if err != nil {
		return nil, err
	}

	byCategory := map[string]*models.CategoryCompleteness{
		models.CategoryEnvironmental: &snapshot.Environmental,
		models.CategorySocial:        &snapshot.Social,
		models.CategoryGovernance:    &snapshot.Governance,
	}

	for _, request := range requests {
		category, ok := byCategory[categories[request.IndicatorID]]
		if !ok {
			continue
		}
		category.Requested++
		if request.Status == models.RequestStatusApproved {
			category.Approved++
		}
	}

	// Overall averages only the categories that have requests. An initiative
	// that never asked for governance data is not penalized for it.
	var sum, populated int
	for _, category := range byCategory {
		if category.Requested == 0 {
			continue
		}
		category.Percentage = roundPercent(category.Approved, category.Requested)
		sum += category.Percentage
		populated++
	}
	if populated > 0 {
		snapshot.Overall = int(math.Round(float64(sum) / float64(populated)))
	}

	return snapshot, nil
}

func (s *completenessService) MissingItems(ctx context.Context, initiativeID primitive.ObjectID) ([]models.MissingItem, error) {
	requests, err := s.requestRepo.GetByInitiative(ctx, initiativeID)
	if err != nil {
		return nil, err
	}

	indicators, err := s.indicatorsFor(ctx, requests)
	if err != nil {
		return nil, err
	}

	missing := []models.MissingItem{}
	for _, request := range requests {
		if request.Status == models.RequestStatusApproved {
			continue
		}
		item := models.MissingItem{
			IndicatorID:      request.IndicatorID,
			StakeholderGroup: request.StakeholderGroup,
		}
		if indicator, ok := indicators[request.IndicatorID]; ok {
			item.Category = indicator.Category
			item.IndicatorCode = indicator.Code
		}
		missing = append(missing, item)
	}

	return missing, nil
}

func (s *completenessService) categoriesByIndicator(ctx context.Context, requests []models.DataRequest) (map[primitive.ObjectID]string, error) {
	indicators, err := s.indicatorsFor(ctx, requests)
	if err != nil {
		return nil, err
	}

	categories := make(map[primitive.ObjectID]string, len(indicators))
	for id, indicator := range indicators {
		categories[id] = indicator.Category
	}
	return categories, nil
}

func (s *completenessService) indicatorsFor(ctx context.Context, requests []models.DataRequest) (map[primitive.ObjectID]models.Indicator, error) {
	seen := make(map[primitive.ObjectID]bool, len(requests))
	ids := make([]primitive.ObjectID, 0, len(requests))
	for _, request := range requests {
		if !seen[request.IndicatorID] {
			seen[request.IndicatorID] = true
			ids = append(ids, request.IndicatorID)
		}
	}
	if len(ids) == 0 {
		return map[primitive.ObjectID]models.Indicator{}, nil
	}

	indicators, err := s.indicatorRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Indicator, len(indicators))
	for _, indicator := range indicators {
		byID[indicator.ID] = indicator
	}
	return byID, nil
}

func roundPercent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
