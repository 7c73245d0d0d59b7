package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Data request statuses
const (
	RequestStatusPending   = "pending"
	RequestStatusSubmitted = "submitted"
	RequestStatusApproved  = "approved"
	RequestStatusRejected  = "rejected"
)

// DataRequest is one required data point: a single (indicator, stakeholder
// group) pair within an initiative. The triple is unique per collection index.
type DataRequest struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	InitiativeID     primitive.ObjectID `json:"initiative_id" bson:"initiative_id"`
	IndicatorID      primitive.ObjectID `json:"indicator_id" bson:"indicator_id"`
	StakeholderGroup string             `json:"stakeholder_group" bson:"stakeholder_group"`
	PeriodStart      time.Time          `json:"period_start" bson:"period_start"`
	PeriodEnd        time.Time          `json:"period_end" bson:"period_end"`
	DueDate          *time.Time         `json:"due_date,omitempty" bson:"due_date,omitempty"`
	Status           string             `json:"status" bson:"status"`
	Metadata         Metadata           `json:"metadata" bson:"metadata"`
}

// DataRequestKey identifies a data request independently of its ObjectID.
type DataRequestKey struct {
	InitiativeID     primitive.ObjectID `json:"initiative_id"`
	IndicatorID      primitive.ObjectID `json:"indicator_id"`
	StakeholderGroup string             `json:"stakeholder_group"`
}
