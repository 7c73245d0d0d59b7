package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Initiative types
const (
	InitiativeTypeReport        = "report"
	InitiativeTypeAudit         = "audit"
	InitiativeTypeCertification = "certification"
	InitiativeTypeAssessment    = "assessment"
)

// Derived initiative statuses. Never persisted; always recomputed from
// completeness and the due date.
const (
	StatusOnTrack    = "on_track"
	StatusAtRisk     = "at_risk"
	StatusOverdue    = "overdue"
	StatusNoDeadline = "no_deadline"
)

type Initiative struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrgID             string             `json:"org_id" bson:"org_id"`
	Name              string             `json:"name" bson:"name" validate:"required"`
	Type              string             `json:"type" bson:"type" validate:"required,oneof=report audit certification assessment"`
	PeriodStart       time.Time          `json:"period_start" bson:"period_start" validate:"required"`
	PeriodEnd         time.Time          `json:"period_end" bson:"period_end" validate:"required"`
	DueDate           *time.Time         `json:"due_date,omitempty" bson:"due_date,omitempty"`
	StakeholderGroups []string           `json:"stakeholder_groups" bson:"stakeholder_groups" validate:"required,min=1,dive,required"`
	Version           int64              `json:"version" bson:"version"`
	Metadata          Metadata           `json:"metadata" bson:"metadata"`
}

// InitiativeView is the read shape returned to clients: the stored initiative
// plus the derived progress and status.
type InitiativeView struct {
	Initiative         `bson:",inline"`
	ProgressPercentage int    `json:"progress_percentage"`
	Status             string `json:"status"`
}
