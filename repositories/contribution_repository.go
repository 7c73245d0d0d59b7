package repository

import (
	"context"
	"time"

	"esgdashboard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ContributionRepository interface {
	Create(ctx context.Context, contribution *models.Contribution) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Contribution, error)
	GetByInitiative(ctx context.Context, initiativeID primitive.ObjectID) ([]models.Contribution, error)
	// GetActiveByRequest returns the non-rejected contribution for a request,
	// or mongo.ErrNoDocuments when none is in flight.
	GetActiveByRequest(ctx context.Context, requestID primitive.ObjectID) (*models.Contribution, error)
	GetApprovedByInitiative(ctx context.Context, initiativeID primitive.ObjectID) ([]models.Contribution, error)
	// ReviewIf records the verification decision only while the contribution
	// is still pending; matched reports whether the guard held.
	ReviewIf(ctx context.Context, id primitive.ObjectID, decision, reviewedBy, notes string) (matched bool, err error)
}

type contributionRepository struct {
	collection *mongo.Collection
}

func NewContributionRepository(db *mongo.Database) ContributionRepository {
	return &contributionRepository{
		collection: db.Collection("contributions"),
	}
}

func (r *contributionRepository) Create(ctx context.Context, contribution *models.Contribution) error {
	contribution.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, contribution)
	return err
}

func (r *contributionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Contribution, error) {
	var contribution models.Contribution
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&contribution)
	if err != nil {
		return nil, err
	}

	return &contribution, nil
}

func (r *contributionRepository) GetByInitiative(ctx context.Context, initiativeID primitive.ObjectID) ([]models.Contribution, error) {
	return r.find(ctx, bson.M{"initiative_id": initiativeID})
}

func (r *contributionRepository) GetActiveByRequest(ctx context.Context, requestID primitive.ObjectID) (*models.Contribution, error) {
	filter := bson.M{
		"data_request_id":     requestID,
		"verification_status": bson.M{"$ne": models.VerificationRejected},
	}

	var contribution models.Contribution
	err := r.collection.FindOne(ctx, filter).Decode(&contribution)
	if err != nil {
		return nil, err
	}

	return &contribution, nil
}

func (r *contributionRepository) GetApprovedByInitiative(ctx context.Context, initiativeID primitive.ObjectID) ([]models.Contribution, error) {
	return r.find(ctx, bson.M{
		"initiative_id":       initiativeID,
		"verification_status": models.VerificationApproved,
	})
}

func (r *contributionRepository) find(ctx context.Context, filter bson.M) ([]models.Contribution, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var contributions []models.Contribution
	if err = cursor.All(ctx, &contributions); err != nil {
		return nil, err
	}

	return contributions, nil
}

func (r *contributionRepository) ReviewIf(ctx context.Context, id primitive.ObjectID, decision, reviewedBy, notes string) (bool, error) {
	filter := bson.M{"_id": id, "verification_status": models.VerificationPending}
	update := bson.M{
		"$set": bson.M{
			"verification_status": decision,
			"reviewed_at":         time.Now(),
			"reviewed_by":         reviewedBy,
			"reviewer_notes":      notes,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return result.MatchedCount > 0, nil
}
