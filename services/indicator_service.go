package services

import (
	"context"
	"time"

	"esgdashboard/apperrors"
	"esgdashboard/models"
	repository "esgdashboard/repositories"

	"go.mongodb.org/mongo-driver/mongo"
)

type IndicatorService interface {
	CreateIndicator(ctx context.Context, indicator *models.Indicator) (*models.Indicator, error)
	GetAllIndicators(ctx context.Context, orgID string) ([]models.Indicator, error)
}

type indicatorService struct {
	indicatorRepo repository.IndicatorRepository
}

func NewIndicatorService(indicatorRepo repository.IndicatorRepository) IndicatorService {
	return &indicatorService{
		indicatorRepo: indicatorRepo,
	}
}

func (s *indicatorService) CreateIndicator(ctx context.Context, indicator *models.Indicator) (*models.Indicator, error) {
	if indicator.DataType == models.DataTypeChoice && len(indicator.Choices) == 0 {
		return nil, apperrors.NewValidationError("choice indicators must declare at least one choice")
	}

	now := time.Now()
	indicator.Metadata.CreatedAt = now
	indicator.Metadata.UpdatedAt = now

	if err := s.indicatorRepo.Create(ctx, indicator); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflictError("indicator code %s already exists", indicator.Code)
		}
		return nil, err
	}

	return indicator, nil
}

func (s *indicatorService) GetAllIndicators(ctx context.Context, orgID string) ([]models.Indicator, error) {
	return s.indicatorRepo.GetAll(ctx, orgID)
}
