package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"esgdashboard/apperrors"
	"esgdashboard/models"
	repository "esgdashboard/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AutosaveInterval is the tick contributors' editors save on. The server does
// not run the timer; it only promises last-write-wins per draft key, so a
// client ticker or debounce both satisfy the contract.
const AutosaveInterval = 30 * time.Second

// savedFlagTTL is how long the transient "saved" flag stays visible after a
// save. A UI affordance, not a durability signal.
const savedFlagTTL = 2 * time.Second

// DraftView is a draft plus the transient saved flag.
type DraftView struct {
	models.Draft
	RecentlySaved           bool `json:"recently_saved"`
	AutosaveIntervalSeconds int  `json:"autosave_interval_seconds"`
}

type DraftService interface {
	// SaveDraft unconditionally overwrites the draft for
	// (data_request_id, contributor_id). Concurrent saves for the same key
	// resolve last-write-wins; saves for different keys are independent.
	SaveDraft(ctx context.Context, requestID primitive.ObjectID, contributorID string, value interface{}, documents []string) (*DraftView, error)
	GetDraft(ctx context.Context, requestID primitive.ObjectID, contributorID string) (*DraftView, error)
	// Discard removes the draft after promotion into a contribution. Missing
	// drafts are not an error.
	Discard(ctx context.Context, requestID primitive.ObjectID, contributorID string) error
}

type draftService struct {
	draftRepo   repository.DraftRepository
	requestRepo repository.DataRequestRepository

	mu         sync.Mutex
	savedUntil map[string]time.Time
}

func NewDraftService(draftRepo repository.DraftRepository, requestRepo repository.DataRequestRepository) DraftService {
	return &draftService{
		draftRepo:   draftRepo,
		requestRepo: requestRepo,
		savedUntil:  make(map[string]time.Time),
	}
}

func (s *draftService) SaveDraft(ctx context.Context, requestID primitive.ObjectID, contributorID string, value interface{}, documents []string) (*DraftView, error) {
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
	if request.Status == models.RequestStatusApproved {
		return nil, apperrors.NewConflictError("data request %s is already approved", requestID.Hex())
	}

	if documents == nil {
		documents = []string{}
	}
	draft := &models.Draft{
		DataRequestID:       requestID,
		ContributorID:       contributorID,
		Value:               value,
		SupportingDocuments: documents,
		SavedAt:             time.Now(),
	}

	if err := s.draftRepo.Upsert(ctx, draft); err != nil {
		return nil, err
	}

	s.markSaved(requestID, contributorID)

	return &DraftView{
		Draft:                   *draft,
		RecentlySaved:           true,
		AutosaveIntervalSeconds: int(AutosaveInterval.Seconds()),
	}, nil
}

func (s *draftService) GetDraft(ctx context.Context, requestID primitive.ObjectID, contributorID string) (*DraftView, error) {
	draft, err := s.draftRepo.Get(ctx, requestID, contributorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("draft", requestID.Hex()+"/"+contributorID)
		}
		return nil, err
	}

	return &DraftView{
		Draft:                   *draft,
		RecentlySaved:           s.recentlySaved(requestID, contributorID),
		AutosaveIntervalSeconds: int(AutosaveInterval.Seconds()),
	}, nil
}

func (s *draftService) Discard(ctx context.Context, requestID primitive.ObjectID, contributorID string) error {
	return s.draftRepo.Delete(ctx, requestID, contributorID)
}

func draftKey(requestID primitive.ObjectID, contributorID string) string {
	return requestID.Hex() + "/" + contributorID
}

func (s *draftService) markSaved(requestID primitive.ObjectID, contributorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.savedUntil[draftKey(requestID, contributorID)] = now.Add(savedFlagTTL)

	// Drop expired flags while we hold the lock.
	for key, until := range s.savedUntil {
		if until.Before(now) {
			delete(s.savedUntil, key)
		}
	}
}

func (s *draftService) recentlySaved(requestID primitive.ObjectID, contributorID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.savedUntil[draftKey(requestID, contributorID)]
	return ok && time.Now().Before(until)
}
