package repository

import (
	"context"
	"time"

	"esgdashboard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DataRequestRepository interface {
	// Insert creates a new data request. Duplicate-key errors from the unique
	// (initiative_id, indicator_id, stakeholder_group) index surface
	// unchanged; callers detect them with mongo.IsDuplicateKeyError.
	Insert(ctx context.Context, request *models.DataRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.DataRequest, error)
	GetByInitiative(ctx context.Context, initiativeID primitive.ObjectID) ([]models.DataRequest, error)
	GetByInitiativeAndGroup(ctx context.Context, initiativeID primitive.ObjectID, group string) ([]models.DataRequest, error)
	// UpdateStatusIf transitions the request status only when the current
	// status equals from; matched reports whether the guard held.
	UpdateStatusIf(ctx context.Context, id primitive.ObjectID, from, to, updatedBy string) (matched bool, err error)
}

type dataRequestRepository struct {
	collection *mongo.Collection
}

func NewDataRequestRepository(db *mongo.Database) DataRequestRepository {
	return &dataRequestRepository{
		collection: db.Collection("data_requests"),
	}
}

func (r *dataRequestRepository) Insert(ctx context.Context, request *models.DataRequest) error {
	request.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, request)
	return err
}

func (r *dataRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.DataRequest, error) {
	var request models.DataRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		return nil, err
	}

	return &request, nil
}

func (r *dataRequestRepository) GetByInitiative(ctx context.Context, initiativeID primitive.ObjectID) ([]models.DataRequest, error) {
	return r.find(ctx, bson.M{"initiative_id": initiativeID})
}

func (r *dataRequestRepository) GetByInitiativeAndGroup(ctx context.Context, initiativeID primitive.ObjectID, group string) ([]models.DataRequest, error) {
	return r.find(ctx, bson.M{"initiative_id": initiativeID, "stakeholder_group": group})
}

func (r *dataRequestRepository) find(ctx context.Context, filter bson.M) ([]models.DataRequest, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.DataRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *dataRequestRepository) UpdateStatusIf(ctx context.Context, id primitive.ObjectID, from, to, updatedBy string) (bool, error) {
	filter := bson.M{"_id": id, "status": from}
	update := bson.M{
		"$set": bson.M{
			"status":              to,
			"metadata.updated_at": time.Now(),
			"metadata.updated_by": updatedBy,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return result.MatchedCount > 0, nil
}
