package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateESGIndexes creates the indexes the workflow relies on. The unique
// index on (initiative_id, indicator_id, stakeholder_group) is what makes
// data request fan-out idempotent; the unique draft key enforces
// one-draft-per-contributor.
func CreateESGIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	type collectionIndexes struct {
		collection string
		indexes    []mongo.IndexModel
	}

	all := []collectionIndexes{
		{
			collection: "initiatives",
			indexes: []mongo.IndexModel{
				{
					Keys: bson.D{
						{Key: "org_id", Value: 1},
						{Key: "due_date", Value: 1},
					},
					Options: options.Index().SetName("idx_org_due_date"),
				},
			},
		},
		{
			collection: "indicators",
			indexes: []mongo.IndexModel{
				{
					Keys: bson.D{
						{Key: "org_id", Value: 1},
						{Key: "code", Value: 1},
					},
					Options: options.Index().SetName("idx_org_code_unique").SetUnique(true),
				},
				{
					Keys: bson.D{
						{Key: "org_id", Value: 1},
						{Key: "category", Value: 1},
					},
					Options: options.Index().SetName("idx_org_category"),
				},
			},
		},
		{
			collection: "data_requests",
			indexes: []mongo.IndexModel{
				// FAN-OUT IDEMPOTENCY: the natural key of a data request.
				{
					Keys: bson.D{
						{Key: "initiative_id", Value: 1},
						{Key: "indicator_id", Value: 1},
						{Key: "stakeholder_group", Value: 1},
					},
					Options: options.Index().SetName("idx_request_key_unique").SetUnique(true),
				},
				// COMPLETENESS: status counts per initiative.
				{
					Keys: bson.D{
						{Key: "initiative_id", Value: 1},
						{Key: "status", Value: 1},
					},
					Options: options.Index().SetName("idx_initiative_status"),
				},
				// STAKEHOLDER QUEUE: per-group listing.
				{
					Keys: bson.D{
						{Key: "initiative_id", Value: 1},
						{Key: "stakeholder_group", Value: 1},
					},
					Options: options.Index().SetName("idx_initiative_group"),
				},
			},
		},
		{
			collection: "contributions",
			indexes: []mongo.IndexModel{
				// ACTIVE CONTRIBUTION LOOKUP: per request, by status.
				{
					Keys: bson.D{
						{Key: "data_request_id", Value: 1},
						{Key: "verification_status", Value: 1},
					},
					Options: options.Index().SetName("idx_request_verification"),
				},
				{
					Keys: bson.D{
						{Key: "initiative_id", Value: 1},
						{Key: "submitted_at", Value: -1},
					},
					Options: options.Index().SetName("idx_initiative_submitted"),
				},
			},
		},
		{
			collection: "drafts",
			indexes: []mongo.IndexModel{
				// ONE DRAFT PER KEY: overwrite-in-place autosave target.
				{
					Keys: bson.D{
						{Key: "data_request_id", Value: 1},
						{Key: "contributor_id", Value: 1},
					},
					Options: options.Index().SetName("idx_draft_key_unique").SetUnique(true),
				},
			},
		},
		{
			collection: "reports",
			indexes: []mongo.IndexModel{
				{
					Keys: bson.D{
						{Key: "initiative_id", Value: 1},
						{Key: "generated_at", Value: -1},
					},
					Options: options.Index().SetName("idx_initiative_generated"),
				},
			},
		},
	}

	for _, ci := range all {
		if _, err := db.Collection(ci.collection).Indexes().CreateMany(ctx, ci.indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %v", ci.collection, err)
		}
	}

	return nil
}
