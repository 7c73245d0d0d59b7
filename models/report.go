package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportEntry struct {
	IndicatorCode    string      `json:"indicator_code" bson:"indicator_code"`
	IndicatorName    string      `json:"indicator_name" bson:"indicator_name"`
	StakeholderGroup string      `json:"stakeholder_group" bson:"stakeholder_group"`
	Value            interface{} `json:"value" bson:"value"`
	Unit             string      `json:"unit,omitempty" bson:"unit,omitempty"`
}

type ReportSection struct {
	Category string        `json:"category" bson:"category"`
	Entries  []ReportEntry `json:"entries" bson:"entries"`
}

// Report is the compiled artifact produced once the completeness gate passes.
type Report struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	InitiativeID primitive.ObjectID   `json:"initiative_id" bson:"initiative_id"`
	OrgID        string               `json:"org_id" bson:"org_id"`
	Completeness CompletenessSnapshot `json:"completeness" bson:"completeness"`
	Sections     []ReportSection      `json:"sections" bson:"sections"`
	GeneratedAt  time.Time            `json:"generated_at" bson:"generated_at"`
	GeneratedBy  string               `json:"generated_by" bson:"generated_by"`
}
