package repository

import (
	"context"

	"esgdashboard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type IndicatorRepository interface {
	Create(ctx context.Context, indicator *models.Indicator) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Indicator, error)
	GetAll(ctx context.Context, orgID string) ([]models.Indicator, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Indicator, error)
}

type indicatorRepository struct {
	collection *mongo.Collection
}

func NewIndicatorRepository(db *mongo.Database) IndicatorRepository {
	return &indicatorRepository{
		collection: db.Collection("indicators"),
	}
}

func (r *indicatorRepository) Create(ctx context.Context, indicator *models.Indicator) error {
	indicator.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, indicator)
	return err
}

func (r *indicatorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Indicator, error) {
	var indicator models.Indicator
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&indicator)
	if err != nil {
		return nil, err
	}

	return &indicator, nil
}

func (r *indicatorRepository) GetAll(ctx context.Context, orgID string) ([]models.Indicator, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"org_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var indicators []models.Indicator
	if err = cursor.All(ctx, &indicators); err != nil {
		return nil, err
	}

	return indicators, nil
}

func (r *indicatorRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Indicator, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var indicators []models.Indicator
	if err = cursor.All(ctx, &indicators); err != nil {
		return nil, err
	}

	return indicators, nil
}
