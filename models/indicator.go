package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ESG categories
const (
	CategoryEnvironmental = "environmental"
	CategorySocial        = "social"
	CategoryGovernance    = "governance"
)

// Indicator data types
const (
	DataTypeNumeric = "numeric"
	DataTypeBoolean = "boolean"
	DataTypeDate    = "date"
	DataTypeChoice  = "choice"
	DataTypeFile    = "file"
	DataTypeText    = "text"
)

type Indicator struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrgID    string             `json:"org_id" bson:"org_id"`
	Code     string             `json:"code" bson:"code" validate:"required"`
	Name     string             `json:"name" bson:"name" validate:"required"`
	Category string             `json:"category" bson:"category" validate:"required,oneof=environmental social governance"`
	DataType string             `json:"data_type" bson:"data_type" validate:"required,oneof=numeric boolean date choice file text"`
	Choices  []string           `json:"choices,omitempty" bson:"choices,omitempty"`
	Unit     string             `json:"unit,omitempty" bson:"unit,omitempty"`
	Metadata Metadata           `json:"metadata" bson:"metadata"`
}
