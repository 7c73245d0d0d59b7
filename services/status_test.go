package services

import (
	"testing"
	"time"

	"esgdashboard/models"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	inThreeDays := now.AddDate(0, 0, 3)
	inTenDays := now.AddDate(0, 0, 10)

	tests := []struct {
		name     string
		progress int
		dueDate  *time.Time
		want     string
	}{
		{"no deadline", 50, nil, models.StatusNoDeadline},
		{"no deadline even when complete", 100, nil, models.StatusNoDeadline},
		{"due yesterday at 50 percent is overdue", 50, &yesterday, models.StatusOverdue},
		{"overdue beats full progress", 100, &yesterday, models.StatusOverdue},
		{"complete near deadline is on track", 100, &inThreeDays, models.StatusOnTrack},
		{"incomplete near deadline is at risk", 60, &inThreeDays, models.StatusAtRisk},
		{"incomplete far from deadline is on track", 10, &inTenDays, models.StatusOnTrack},
		{"zero progress far from deadline is on track", 0, &inTenDays, models.StatusOnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.progress, tt.dueDate, now))
		})
	}
}

func TestDeriveStatusIsPure(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 5)

	first := DeriveStatus(40, &due, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DeriveStatus(40, &due, now))
	}
}

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 7, DaysUntilDue(now.AddDate(0, 0, 7), now))
	assert.Equal(t, 1, DaysUntilDue(now.Add(6*time.Hour), now))
	assert.Equal(t, 0, DaysUntilDue(now, now))
}
