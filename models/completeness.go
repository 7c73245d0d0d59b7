package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryCompleteness reports how much of one ESG category has been approved.
// Requested distinguishes "0% done" from "nothing asked in this category".
type CategoryCompleteness struct {
	Percentage int `json:"percentage"`
	Approved   int `json:"approved"`
	Requested  int `json:"requested"`
}

// CompletenessSnapshot is a read model, recomputed from data request statuses
// on every call. Overall averages the categories that have at least one
// request; empty categories do not drag the average down.
type CompletenessSnapshot struct {
	InitiativeID  primitive.ObjectID   `json:"initiative_id" bson:"initiative_id"`
	Environmental CategoryCompleteness `json:"environmental" bson:"environmental"`
	Social        CategoryCompleteness `json:"social" bson:"social"`
	Governance    CategoryCompleteness `json:"governance" bson:"governance"`
	Overall       int                  `json:"overall" bson:"overall"`
	ComputedAt    time.Time            `json:"computed_at" bson:"computed_at"`
}

// MissingItem identifies one data request still lacking an approved
// contribution, with enough detail to tell the caller what is missing and
// from whom.
type MissingItem struct {
	Category         string             `json:"category"`
	IndicatorID      primitive.ObjectID `json:"indicator_id"`
	IndicatorCode    string             `json:"indicator_code"`
	StakeholderGroup string             `json:"stakeholder_group"`
}
