package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contribution verification statuses
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// Contribution is a stakeholder's submitted answer to a data request. Rejected
// contributions are kept as audit records; the data request itself reopens.
type Contribution struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DataRequestID       primitive.ObjectID `json:"data_request_id" bson:"data_request_id"`
	InitiativeID        primitive.ObjectID `json:"initiative_id" bson:"initiative_id"`
	ContributorID       string             `json:"contributor_id" bson:"contributor_id"`
	Value               interface{}        `json:"value" bson:"value"`
	SupportingDocuments []string           `json:"supporting_documents" bson:"supporting_documents"`
	VerificationStatus  string             `json:"verification_status" bson:"verification_status"`
	SubmittedAt         time.Time          `json:"submitted_at" bson:"submitted_at"`
	ReviewedAt          *time.Time         `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	ReviewedBy          string             `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewerNotes       string             `json:"reviewer_notes,omitempty" bson:"reviewer_notes,omitempty"`
}
