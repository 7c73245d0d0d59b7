package services

import (
	"context"
	"testing"
	"time"

	"esgdashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func addInitiative(t *testing.T, repo *fakeInitiativeRepo, name string, dueDate *time.Time) primitive.ObjectID {
	t.Helper()
	initiative := &models.Initiative{
		OrgID:       "org-1",
		Name:        name,
		Type:        models.InitiativeTypeReport,
		PeriodStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		DueDate:     dueDate,
	}
	require.NoError(t, repo.Create(context.Background(), initiative))
	return initiative.ID
}

func TestGetPortfolioSummaryEmptyOrg(t *testing.T) {
	svc := NewAnalyticsService(newFakeInitiativeRepo(),
		NewCompletenessService(newFakeRequestRepo(), newFakeIndicatorRepo()))

	summary, err := svc.GetPortfolioSummary(context.Background(), "org-1")
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalInitiatives)
	assert.Empty(t, summary.StatusCounts)
	assert.Zero(t, summary.MeanCompleteness)
}

func TestGetPortfolioSummary(t *testing.T) {
	initiativeRepo := newFakeInitiativeRepo()
	requestRepo := newFakeRequestRepo()
	indicatorRepo := newFakeIndicatorRepo()
	svc := NewAnalyticsService(initiativeRepo, NewCompletenessService(requestRepo, indicatorRepo))

	indicatorID := seedIndicator(t, indicatorRepo, "GHG-1", models.CategoryEnvironmental)

	// Fully approved, no deadline.
	done := addInitiative(t, initiativeRepo, "done", nil)
	seedRequest(t, requestRepo, done, indicatorID, "suppliers", models.RequestStatusApproved)
	seedRequest(t, requestRepo, done, indicatorID, "employees", models.RequestStatusApproved)

	// Half approved, overdue.
	yesterday := time.Now().AddDate(0, 0, -1)
	late := addInitiative(t, initiativeRepo, "late", &yesterday)
	seedRequest(t, requestRepo, late, indicatorID, "suppliers", models.RequestStatusApproved)
	seedRequest(t, requestRepo, late, indicatorID, "employees", models.RequestStatusPending)

	// Nothing approved, no deadline.
	addInitiative(t, initiativeRepo, "idle", nil)

	summary, err := svc.GetPortfolioSummary(context.Background(), "org-1")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalInitiatives)
	assert.Equal(t, 2, summary.StatusCounts[models.StatusNoDeadline])
	assert.Equal(t, 1, summary.StatusCounts[models.StatusOverdue])

	// Completions are 100, 50 and 0.
	assert.InDelta(t, 50.0, summary.MeanCompleteness, 0.01)
	assert.InDelta(t, 50.0, summary.MedianCompleteness, 0.01)
}

func TestGetPortfolioSummaryMatchesDetailView(t *testing.T) {
	initiativeRepo := newFakeInitiativeRepo()
	requestRepo := newFakeRequestRepo()
	indicatorRepo := newFakeIndicatorRepo()
	completeness := NewCompletenessService(requestRepo, indicatorRepo)
	svc := NewAnalyticsService(initiativeRepo, completeness)

	// Uneven categories: environmental fully approved from one request, social
	// pending across three. The category-aware overall is 50; a flat
	// approved/total ratio would say 25.
	env := seedIndicator(t, indicatorRepo, "GHG-1", models.CategoryEnvironmental)
	soc := seedIndicator(t, indicatorRepo, "LAB-1", models.CategorySocial)

	initiativeID := addInitiative(t, initiativeRepo, "uneven", nil)
	seedRequest(t, requestRepo, initiativeID, env, "suppliers", models.RequestStatusApproved)
	for _, group := range []string{"suppliers", "employees", "contractors"} {
		seedRequest(t, requestRepo, initiativeID, soc, group, models.RequestStatusPending)
	}

	summary, err := svc.GetPortfolioSummary(context.Background(), "org-1")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, summary.MeanCompleteness, 0.01)

	snapshot, err := completeness.ComputeCompleteness(context.Background(), initiativeID)
	require.NoError(t, err)
	assert.Equal(t, float64(snapshot.Overall), summary.MeanCompleteness)
}

func TestGetPortfolioSummaryScopedToOrg(t *testing.T) {
	initiativeRepo := newFakeInitiativeRepo()
	svc := NewAnalyticsService(initiativeRepo,
		NewCompletenessService(newFakeRequestRepo(), newFakeIndicatorRepo()))

	addInitiative(t, initiativeRepo, "mine", nil)

	summary, err := svc.GetPortfolioSummary(context.Background(), "other-org")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalInitiatives)
}
