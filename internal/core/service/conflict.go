package service

import (
	"context"

	"github.com/calendarapp/calendar-backend/internal/core/domain"
	"github.com/calendarapp/calendar-backend/internal/core/ports"
)

// ConflictChecker decides whether a candidate appointment's time range
// collides with any existing appointment of the same owner. Ranges are
// half-open [start, end): two appointments sharing an endpoint do not
// conflict. The scan itself is pushed into the store as the query
// start < existing.end && end > existing.start.
type ConflictChecker struct {
	repo ports.AppointmentRepository
}

func NewConflictChecker(repo ports.AppointmentRepository) *ConflictChecker {
	return &ConflictChecker{repo: repo}
}

// HasConflict reports whether candidate overlaps an existing appointment
// owned by candidate.UserID. excludeID skips one existing appointment,
// used on update so a record never conflicts with its own prior version;
// pass 0 to exclude nothing. Read-only.
func (c *ConflictChecker) HasConflict(ctx context.Context, candidate *domain.Appointment, excludeID int64) (bool, error) {
	start := candidate.Start.UTC()
	end := candidate.End.UTC()
	return c.repo.HasOverlap(ctx, candidate.UserID, start, end, excludeID)
}
