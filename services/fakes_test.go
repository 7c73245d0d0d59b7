package services

import (
	"context"
	"sync"
	"time"

	"esgdashboard/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes. They mimic the driver's contract: missing
// documents return mongo.ErrNoDocuments, unique-index violations return a
// write exception with code 11000.

func duplicateKeyError() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

type fakeInitiativeRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.Initiative
}

func newFakeInitiativeRepo() *fakeInitiativeRepo {
	return &fakeInitiativeRepo{items: map[primitive.ObjectID]*models.Initiative{}}
}

func (r *fakeInitiativeRepo) Create(_ context.Context, initiative *models.Initiative) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	initiative.ID = primitive.NewObjectID()
	clone := *initiative
	r.items[initiative.ID] = &clone
	return nil
}

func (r *fakeInitiativeRepo) GetByID(_ context.Context, id primitive.ObjectID, orgID string) (*models.Initiative, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.OrgID != orgID {
		return nil, mongo.ErrNoDocuments
	}
	clone := *item
	return &clone, nil
}

func (r *fakeInitiativeRepo) GetAll(_ context.Context, orgID string) ([]models.Initiative, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Initiative
	for _, item := range r.items {
		if item.OrgID == orgID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeInitiativeRepo) BumpVersion(_ context.Context, id primitive.ObjectID, expectedVersion int64, updatedBy string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.Version != expectedVersion {
		return false, nil
	}
	item.Version++
	item.Metadata.UpdatedBy = updatedBy
	item.Metadata.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeInitiativeRepo) AddStakeholderGroups(_ context.Context, id primitive.ObjectID, groups []string, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil
	}
	existing := map[string]bool{}
	for _, group := range item.StakeholderGroups {
		existing[group] = true
	}
	for _, group := range groups {
		if !existing[group] {
			item.StakeholderGroups = append(item.StakeholderGroups, group)
		}
	}
	item.Metadata.UpdatedBy = updatedBy
	return nil
}

type fakeIndicatorRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.Indicator
}

func newFakeIndicatorRepo() *fakeIndicatorRepo {
	return &fakeIndicatorRepo{items: map[primitive.ObjectID]*models.Indicator{}}
}

func (r *fakeIndicatorRepo) Create(_ context.Context, indicator *models.Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.OrgID == indicator.OrgID && item.Code == indicator.Code {
			return duplicateKeyError()
		}
	}
	indicator.ID = primitive.NewObjectID()
	clone := *indicator
	r.items[indicator.ID] = &clone
	return nil
}

func (r *fakeIndicatorRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Indicator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *item
	return &clone, nil
}

func (r *fakeIndicatorRepo) GetAll(_ context.Context, orgID string) ([]models.Indicator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Indicator
	for _, item := range r.items {
		if item.OrgID == orgID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeIndicatorRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Indicator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Indicator
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

type fakeRequestRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.DataRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{items: map[primitive.ObjectID]*models.DataRequest{}}
}

func (r *fakeRequestRepo) Insert(_ context.Context, request *models.DataRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.InitiativeID == request.InitiativeID &&
			item.IndicatorID == request.IndicatorID &&
			item.StakeholderGroup == request.StakeholderGroup {
			return duplicateKeyError()
		}
	}
	request.ID = primitive.NewObjectID()
	clone := *request
	r.items[request.ID] = &clone
	return nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.DataRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *item
	return &clone, nil
}

func (r *fakeRequestRepo) GetByInitiative(_ context.Context, initiativeID primitive.ObjectID) ([]models.DataRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.DataRequest
	for _, item := range r.items {
		if item.InitiativeID == initiativeID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) GetByInitiativeAndGroup(_ context.Context, initiativeID primitive.ObjectID, group string) ([]models.DataRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.DataRequest
	for _, item := range r.items {
		if item.InitiativeID == initiativeID && item.StakeholderGroup == group {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) UpdateStatusIf(_ context.Context, id primitive.ObjectID, from, to, updatedBy string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.Status != from {
		return false, nil
	}
	item.Status = to
	item.Metadata.UpdatedBy = updatedBy
	item.Metadata.UpdatedAt = time.Now()
	return true, nil
}

type fakeContributionRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.Contribution
}

func newFakeContributionRepo() *fakeContributionRepo {
	return &fakeContributionRepo{items: map[primitive.ObjectID]*models.Contribution{}}
}

func (r *fakeContributionRepo) Create(_ context.Context, contribution *models.Contribution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	contribution.ID = primitive.NewObjectID()
	clone := *contribution
	r.items[contribution.ID] = &clone
	return nil
}

func (r *fakeContributionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Contribution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *item
	return &clone, nil
}

func (r *fakeContributionRepo) GetByInitiative(_ context.Context, initiativeID primitive.ObjectID) ([]models.Contribution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Contribution
	for _, item := range r.items {
		if item.InitiativeID == initiativeID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeContributionRepo) GetActiveByRequest(_ context.Context, requestID primitive.ObjectID) (*models.Contribution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.DataRequestID == requestID && item.VerificationStatus != models.VerificationRejected {
			clone := *item
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeContributionRepo) GetApprovedByInitiative(_ context.Context, initiativeID primitive.ObjectID) ([]models.Contribution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Contribution
	for _, item := range r.items {
		if item.InitiativeID == initiativeID && item.VerificationStatus == models.VerificationApproved {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeContributionRepo) ReviewIf(_ context.Context, id primitive.ObjectID, decision, reviewedBy, notes string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.VerificationStatus != models.VerificationPending {
		return false, nil
	}
	now := time.Now()
	item.VerificationStatus = decision
	item.ReviewedAt = &now
	item.ReviewedBy = reviewedBy
	item.ReviewerNotes = notes
	return true, nil
}

type fakeDraftRepo struct {
	mu    sync.Mutex
	items map[string]*models.Draft
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{items: map[string]*models.Draft{}}
}

func (r *fakeDraftRepo) key(requestID primitive.ObjectID, contributorID string) string {
	return requestID.Hex() + "/" + contributorID
}

func (r *fakeDraftRepo) Upsert(_ context.Context, draft *models.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *draft
	r.items[r.key(draft.DataRequestID, draft.ContributorID)] = &clone
	return nil
}

func (r *fakeDraftRepo) Get(_ context.Context, requestID primitive.ObjectID, contributorID string) (*models.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[r.key(requestID, contributorID)]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *item
	return &clone, nil
}

func (r *fakeDraftRepo) Delete(_ context.Context, requestID primitive.ObjectID, contributorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, r.key(requestID, contributorID))
	return nil
}

type fakeReportRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{items: map[primitive.ObjectID]*models.Report{}}
}

func (r *fakeReportRepo) Create(_ context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	report.ID = primitive.NewObjectID()
	clone := *report
	r.items[report.ID] = &clone
	return nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id primitive.ObjectID, orgID string) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.OrgID != orgID {
		return nil, mongo.ErrNoDocuments
	}
	clone := *item
	return &clone, nil
}

func (r *fakeReportRepo) GetByInitiative(_ context.Context, initiativeID primitive.ObjectID) ([]models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Report
	for _, item := range r.items {
		if item.InitiativeID == initiativeID {
			out = append(out, *item)
		}
	}
	return out, nil
}

// recordingNotifier captures events for assertions. Publish delivers on a
// goroutine, so tests poll with require.Eventually.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(event string, _ map[string]interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) has(event string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, e := range n.events {
		if e == event {
			return true
		}
	}
	return false
}
