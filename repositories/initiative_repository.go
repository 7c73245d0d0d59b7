package repository

import (
	"context"
	"time"

	"esgdashboard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type InitiativeRepository interface {
	Create(ctx context.Context, initiative *models.Initiative) error
	GetByID(ctx context.Context, id primitive.ObjectID, orgID string) (*models.Initiative, error)
	GetAll(ctx context.Context, orgID string) ([]models.Initiative, error)
	// BumpVersion performs the optimistic-lock update for the per-initiative
	// single-writer section. It matches only when the stored version equals
	// expectedVersion; matched reports whether the guard held.
	BumpVersion(ctx context.Context, id primitive.ObjectID, expectedVersion int64, updatedBy string) (matched bool, err error)
	AddStakeholderGroups(ctx context.Context, id primitive.ObjectID, groups []string, updatedBy string) error
}

type initiativeRepository struct {
	collection *mongo.Collection
}

func NewInitiativeRepository(db *mongo.Database) InitiativeRepository {
	return &initiativeRepository{
		collection: db.Collection("initiatives"),
	}
}

func (r *initiativeRepository) Create(ctx context.Context, initiative *models.Initiative) error {
	initiative.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, initiative)
	return err
}

func (r *initiativeRepository) GetByID(ctx context.Context, id primitive.ObjectID, orgID string) (*models.Initiative, error) {
	var initiative models.Initiative
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "org_id": orgID}).Decode(&initiative)
	if err != nil {
		return nil, err
	}

	return &initiative, nil
}

func (r *initiativeRepository) GetAll(ctx context.Context, orgID string) ([]models.Initiative, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"org_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var initiatives []models.Initiative
	if err = cursor.All(ctx, &initiatives); err != nil {
		return nil, err
	}

	return initiatives, nil
}

func (r *initiativeRepository) BumpVersion(ctx context.Context, id primitive.ObjectID, expectedVersion int64, updatedBy string) (bool, error) {
	filter := bson.M{"_id": id, "version": expectedVersion}
	update := bson.M{
		"$inc": bson.M{"version": 1},
		"$set": bson.M{
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

func (r *initiativeRepository) AddStakeholderGroups(ctx context.Context, id primitive.ObjectID, groups []string, updatedBy string) error {
	update := bson.M{
		"$addToSet": bson.M{
			"stakeholder_groups": bson.M{"$each": groups},
		},
		"$set": bson.M{
			"metadata.updated_at": time.Now(),
			"metadata.updated_by": updatedBy,
		},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
