package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Draft is a non-authoritative in-progress snapshot, one per
// (data_request_id, contributor_id). Each save overwrites in place; there is
// no history.
type Draft struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DataRequestID       primitive.ObjectID `json:"data_request_id" bson:"data_request_id"`
	ContributorID       string             `json:"contributor_id" bson:"contributor_id"`
	Value               interface{}        `json:"value" bson:"value"`
	SupportingDocuments []string           `json:"supporting_documents" bson:"supporting_documents"`
	SavedAt             time.Time          `json:"saved_at" bson:"saved_at"`
}
