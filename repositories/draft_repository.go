package repository

import (
	"context"

	"esgdashboard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DraftRepository interface {
	// Upsert overwrites the draft for (data_request_id, contributor_id) in
	// place. Last write wins; no history is kept.
	Upsert(ctx context.Context, draft *models.Draft) error
	Get(ctx context.Context, requestID primitive.ObjectID, contributorID string) (*models.Draft, error)
	Delete(ctx context.Context, requestID primitive.ObjectID, contributorID string) error
}

type draftRepository struct {
	collection *mongo.Collection
}

func NewDraftRepository(db *mongo.Database) DraftRepository {
	return &draftRepository{
		collection: db.Collection("drafts"),
	}
}

func (r *draftRepository) Upsert(ctx context.Context, draft *models.Draft) error {
	filter := bson.M{
		"data_request_id": draft.DataRequestID,
		"contributor_id":  draft.ContributorID,
	}
	update := bson.M{
		"$set": bson.M{
			"value":                draft.Value,
			"supporting_documents": draft.SupportingDocuments,
			"saved_at":             draft.SavedAt,
		},
		"$setOnInsert": filter,
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *draftRepository) Get(ctx context.Context, requestID primitive.ObjectID, contributorID string) (*models.Draft, error) {
	filter := bson.M{
		"data_request_id": requestID,
		"contributor_id":  contributorID,
	}

	var draft models.Draft
	err := r.collection.FindOne(ctx, filter).Decode(&draft)
	if err != nil {
		return nil, err
	}

	return &draft, nil
}

func (r *draftRepository) Delete(ctx context.Context, requestID primitive.ObjectID, contributorID string) error {
	filter := bson.M{
		"data_request_id": requestID,
		"contributor_id":  contributorID,
	}

	_, err := r.collection.DeleteOne(ctx, filter)
	return err
}
