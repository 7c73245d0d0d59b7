package repository

import (
	"context"

	"esgdashboard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id primitive.ObjectID, orgID string) (*models.Report, error)
	GetByInitiative(ctx context.Context, initiativeID primitive.ObjectID) ([]models.Report, error)
}

type reportRepository struct {
	collection *mongo.Collection
}

func NewReportRepository(db *mongo.Database) ReportRepository {
	return &reportRepository{
		collection: db.Collection("reports"),
	}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	report.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, report)
	return err
}

func (r *reportRepository) GetByID(ctx context.Context, id primitive.ObjectID, orgID string) (*models.Report, error) {
	var report models.Report
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "org_id": orgID}).Decode(&report)
	if err != nil {
		return nil, err
	}

	return &report, nil
}

func (r *reportRepository) GetByInitiative(ctx context.Context, initiativeID primitive.ObjectID) ([]models.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "generated_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"initiative_id": initiativeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, err
	}

	return reports, nil
}
