package services

import (
	"math"
	"time"

	"esgdashboard/models"
)

// AtRiskWindowDays is how close to the due date an unfinished initiative is
// flagged at_risk.
const AtRiskWindowDays = 7

// DeriveStatus computes an initiative's urgency from its progress and due
// date. Pure: same inputs always yield the same status. Rules apply in
// priority order: no deadline, overdue, complete, approaching deadline,
// on track.
func DeriveStatus(progressPercentage int, dueDate *time.Time, now time.Time) string {
	if dueDate == nil {
		return models.StatusNoDeadline
	}
	if dueDate.Before(now) {
		return models.StatusOverdue
	}
	if progressPercentage >= 100 {
		return models.StatusOnTrack
	}
	if DaysUntilDue(*dueDate, now) <= AtRiskWindowDays {
		return models.StatusAtRisk
	}
	return models.StatusOnTrack
}

// DaysUntilDue returns the number of days remaining before dueDate, rounded
// up so a deadline later today still counts as one day out.
func DaysUntilDue(dueDate, now time.Time) int {
	return int(math.Ceil(dueDate.Sub(now).Hours() / 24))
}
