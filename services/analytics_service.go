package services

import (
	"context"
	"math"
	"time"

	repository "esgdashboard/repositories"

	"github.com/montanaflynn/stats"
)

// PortfolioSummary aggregates the organization's initiatives for the
// dashboard overview. Completion figures come from the same category-aware
// calculator the initiative detail view uses, so an initiative lands in the
// same status bucket here as on its own page.
type PortfolioSummary struct {
	TotalInitiatives   int            `json:"total_initiatives"`
	StatusCounts       map[string]int `json:"status_counts"`
	MeanCompleteness   float64        `json:"mean_completeness"`
	MedianCompleteness float64        `json:"median_completeness"`
	P90Completeness    float64        `json:"p90_completeness"`
}

type AnalyticsService interface {
	GetPortfolioSummary(ctx context.Context, orgID string) (*PortfolioSummary, error)
}

type analyticsService struct {
	initiativeRepo repository.InitiativeRepository
	completeness   CompletenessService
}

func NewAnalyticsService(initiativeRepo repository.InitiativeRepository, completeness CompletenessService) AnalyticsService {
	return &analyticsService{
		initiativeRepo: initiativeRepo,
		completeness:   completeness,
	}
}

func (s *analyticsService) GetPortfolioSummary(ctx context.Context, orgID string) (*PortfolioSummary, error) {
	initiatives, err := s.initiativeRepo.GetAll(ctx, orgID)
	if err != nil {
		return nil, err
	}

	summary := &PortfolioSummary{
		TotalInitiatives: len(initiatives),
		StatusCounts:     map[string]int{},
	}
	if len(initiatives) == 0 {
		return summary, nil
	}

	now := time.Now()
	completions := make([]float64, 0, len(initiatives))
	for _, initiative := range initiatives {
		snapshot, err := s.completeness.ComputeCompleteness(ctx, initiative.ID)
		if err != nil {
			return nil, err
		}
		completions = append(completions, float64(snapshot.Overall))
		summary.StatusCounts[DeriveStatus(snapshot.Overall, initiative.DueDate, now)]++
	}

	if mean, err := stats.Mean(completions); err == nil {
		summary.MeanCompleteness = math.Round(mean*100) / 100
	}
	if median, err := stats.Median(completions); err == nil {
		summary.MedianCompleteness = median
	}
	if p90, err := stats.Percentile(completions, 90); err == nil {
		summary.P90Completeness = p90
	}

	return summary, nil
}
