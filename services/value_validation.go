package services

import (
	"time"

	"esgdashboard/apperrors"
	"esgdashboard/models"
)

// validateValue checks a submitted value against the indicator's declared
// data type. Values arrive through JSON decoding, so numbers are float64 and
// everything else is string or bool.
func validateValue(indicator *models.Indicator, value interface{}) error {
	if value == nil {
		return apperrors.NewValidationError("a value is required for indicator %s", indicator.Code)
	}

	switch indicator.DataType {
	case models.DataTypeNumeric:
		switch value.(type) {
		case float64, float32, int, int32, int64:
			return nil
		}
		return apperrors.NewValidationError("indicator %s expects a numeric value", indicator.Code)

	case models.DataTypeBoolean:
		if _, ok := value.(bool); ok {
			return nil
		}
		return apperrors.NewValidationError("indicator %s expects a boolean value", indicator.Code)

	case models.DataTypeDate:
		text, ok := value.(string)
		if !ok {
			return apperrors.NewValidationError("indicator %s expects a date string", indicator.Code)
		}
		if _, err := time.Parse(time.RFC3339, text); err == nil {
			return nil
		}
		if _, err := time.Parse("2006-01-02", text); err == nil {
			return nil
		}
		return apperrors.NewValidationError("indicator %s expects an RFC 3339 or YYYY-MM-DD date", indicator.Code)

	case models.DataTypeChoice:
		text, ok := value.(string)
		if !ok {
			return apperrors.NewValidationError("indicator %s expects one of its choices", indicator.Code)
		}
		for _, choice := range indicator.Choices {
			if text == choice {
				return nil
			}
		}
		return apperrors.NewValidationError("value %q is not an allowed choice for indicator %s", text, indicator.Code)

	case models.DataTypeFile:
		// File values are opaque URIs supplied by object storage; the core
		// never interprets their content.
		text, ok := value.(string)
		if !ok || text == "" {
			return apperrors.NewValidationError("indicator %s expects a file URI", indicator.Code)
		}
		return nil

	case models.DataTypeText:
		text, ok := value.(string)
		if !ok || text == "" {
			return apperrors.NewValidationError("indicator %s expects a non-empty text value", indicator.Code)
		}
		return nil
	}

	return apperrors.NewValidationError("indicator %s has unknown data type %q", indicator.Code, indicator.DataType)
}
