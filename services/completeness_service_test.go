package services

import (
	"context"
	"testing"

	"esgdashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedIndicator(t *testing.T, repo *fakeIndicatorRepo, code, category string) primitive.ObjectID {
	t.Helper()
	indicator := &models.Indicator{
		OrgID:    "org-1",
		Code:     code,
		Name:     code,
		Category: category,
		DataType: models.DataTypeNumeric,
	}
	require.NoError(t, repo.Create(context.Background(), indicator))
	return indicator.ID
}

func seedRequest(t *testing.T, repo *fakeRequestRepo, initiativeID, indicatorID primitive.ObjectID, group, status string) primitive.ObjectID {
	t.Helper()
	request := &models.DataRequest{
		InitiativeID:     initiativeID,
		IndicatorID:      indicatorID,
		StakeholderGroup: group,
		Status:           status,
	}
	require.NoError(t, repo.Insert(context.Background(), request))
	return request.ID
}

func TestComputeCompletenessExcludesEmptyCategories(t *testing.T) {
	requestRepo := newFakeRequestRepo()
	indicatorRepo := newFakeIndicatorRepo()
	svc := NewCompletenessService(requestRepo, indicatorRepo)

	initiativeID := primitive.NewObjectID()
	envIndicator := seedIndicator(t, indicatorRepo, "GHG-1", models.CategoryEnvironmental)
	socIndicator := seedIndicator(t, indicatorRepo, "LAB-1", models.CategorySocial)

	seedRequest(t, requestRepo, initiativeID, envIndicator, "suppliers", models.RequestStatusApproved)
	seedRequest(t, requestRepo, initiativeID, envIndicator, "employees", models.RequestStatusApproved)
	seedRequest(t, requestRepo, initiativeID, socIndicator, "employees", models.RequestStatusPending)

	snapshot, err := svc.ComputeCompleteness(context.Background(), initiativeID)
	require.NoError(t, err)

	assert.Equal(t, 100, snapshot.Environmental.Percentage)
	assert.Equal(t, 0, snapshot.Social.Percentage)
	assert.Equal(t, 0, snapshot.Governance.Requested)
	// Governance has no requests: overall averages the two populated
	// categories, not three.
	assert.Equal(t, 50, snapshot.Overall)
}

func TestComputeCompletenessNoRequests(t *testing.T) {
	svc := NewCompletenessService(newFakeRequestRepo(), newFakeIndicatorRepo())

	snapshot, err := svc.ComputeCompleteness(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)

	assert.Equal(t, 0, snapshot.Overall)
	assert.Equal(t, 0, snapshot.Environmental.Requested)
	assert.Equal(t, 0, snapshot.Social.Requested)
	assert.Equal(t, 0, snapshot.Governance.Requested)
}

func TestComputeCompletenessRounding(t *testing.T) {
	requestRepo := newFakeRequestRepo()
	indicatorRepo := newFakeIndicatorRepo()
	svc := NewCompletenessService(requestRepo, indicatorRepo)

	initiativeID := primitive.NewObjectID()
	indicator := seedIndicator(t, indicatorRepo, "GHG-1", models.CategoryEnvironmental)

	seedRequest(t, requestRepo, initiativeID, indicator, "g1", models.RequestStatusApproved)
	seedRequest(t, requestRepo, initiativeID, indicator, "g2", models.RequestStatusPending)
	seedRequest(t, requestRepo, initiativeID, indicator, "g3", models.RequestStatusPending)

	snapshot, err := svc.ComputeCompleteness(context.Background(), initiativeID)
	require.NoError(t, err)

	assert.Equal(t, 33, snapshot.Environmental.Percentage)
	assert.Equal(t, 33, snapshot.Overall)
}

func TestComputeCompletenessEightOfTen(t *testing.T) {
	requestRepo := newFakeRequestRepo()
	indicatorRepo := newFakeIndicatorRepo()
	svc := NewCompletenessService(requestRepo, indicatorRepo)

	initiativeID := primitive.NewObjectID()
	indicator := seedIndicator(t, indicatorRepo, "GHG-1", models.CategoryEnvironmental)

	groups := []string{"g1", "g2", "g3", "g4", "g5", "g6", "g7", "g8", "g9", "g10"}
	for i, group := range groups {
		status := models.RequestStatusApproved
		if i >= 8 {
			status = models.RequestStatusPending
		}
		seedRequest(t, requestRepo, initiativeID, indicator, group, status)
	}

	snapshot, err := svc.ComputeCompleteness(context.Background(), initiativeID)
	require.NoError(t, err)

	assert.Equal(t, 80, snapshot.Overall)
	assert.Equal(t, 8, snapshot.Environmental.Approved)
	assert.Equal(t, 10, snapshot.Environmental.Requested)
}

func TestComputeCompletenessStaysWithinBounds(t *testing.T) {
	requestRepo := newFakeRequestRepo()
	indicatorRepo := newFakeIndicatorRepo()
	svc := NewCompletenessService(requestRepo, indicatorRepo)

	initiativeID := primitive.NewObjectID()
	env := seedIndicator(t, indicatorRepo, "E-1", models.CategoryEnvironmental)
	soc := seedIndicator(t, indicatorRepo, "S-1", models.CategorySocial)
	gov := seedIndicator(t, indicatorRepo, "G-1", models.CategoryGovernance)

	for _, indicator := range []primitive.ObjectID{env, soc, gov} {
		seedRequest(t, requestRepo, initiativeID, indicator, "suppliers", models.RequestStatusApproved)
		seedRequest(t, requestRepo, initiativeID, indicator, "employees", models.RequestStatusApproved)
	}

	snapshot, err := svc.ComputeCompleteness(context.Background(), initiativeID)
	require.NoError(t, err)

	assert.Equal(t, 100, snapshot.Overall)
	assert.GreaterOrEqual(t, snapshot.Overall, 0)
	assert.LessOrEqual(t, snapshot.Overall, 100)
}

func TestMissingItems(t *testing.T) {
	requestRepo := newFakeRequestRepo()
	indicatorRepo := newFakeIndicatorRepo()
	svc := NewCompletenessService(requestRepo, indicatorRepo)

	initiativeID := primitive.NewObjectID()
	env := seedIndicator(t, indicatorRepo, "GHG-1", models.CategoryEnvironmental)
	soc := seedIndicator(t, indicatorRepo, "LAB-1", models.CategorySocial)

	seedRequest(t, requestRepo, initiativeID, env, "suppliers", models.RequestStatusApproved)
	seedRequest(t, requestRepo, initiativeID, env, "employees", models.RequestStatusPending)
	seedRequest(t, requestRepo, initiativeID, soc, "employees", models.RequestStatusSubmitted)

	missing, err := svc.MissingItems(context.Background(), initiativeID)
	require.NoError(t, err)
	require.Len(t, missing, 2)

	byCode := map[string]models.MissingItem{}
	for _, item := range missing {
		byCode[item.IndicatorCode] = item
	}
	assert.Equal(t, "employees", byCode["GHG-1"].StakeholderGroup)
	assert.Equal(t, models.CategoryEnvironmental, byCode["GHG-1"].Category)
	assert.Equal(t, models.CategorySocial, byCode["LAB-1"].Category)
}
