package apperrors

import (
	"fmt"
	"net/http"

	"esgdashboard/models"
)

// ValidationError reports a missing or invalid input field. Correctable by
// the caller immediately.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unknown entity id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports a state transition that lost to a concurrent writer
// or targeted an already-terminal entity.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// AuthorizationError reports a review action attempted without the reviewer
// role.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// InsufficientDataError blocks report generation below the completeness
// threshold. It carries every data request still lacking an approved
// contribution so the caller can show exactly what is missing, and from whom,
// without a follow-up query.
type InsufficientDataError struct {
	Overall   int                  `json:"overall"`
	Threshold int                  `json:"threshold"`
	Missing   []models.MissingItem `json:"missing"`
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("completeness %d%% is below the required %d%%: %d data requests missing approved contributions",
		e.Overall, e.Threshold, len(e.Missing))
}

// StatusCode maps an error to its HTTP status. Unrecognized errors (including
// propagated repository errors) map to 500.
func StatusCode(err error) int {
	switch err.(type) {
	case *ValidationError:
		return http.StatusBadRequest
	case *NotFoundError:
		return http.StatusNotFound
	case *ConflictError:
		return http.StatusConflict
	case *AuthorizationError:
		return http.StatusForbidden
	case *InsufficientDataError:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}
