package ports

import (
	"context"
	"time"

	"github.com/calendarapp/calendar-backend/internal/core/domain"
)

// AppointmentRepository defines persistence operations for appointments.
// The store assigns numeric ids on insert. Update and Delete are scoped
// by (id, userID) so one user can never touch another user's records.
type AppointmentRepository interface {
	Insert(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// Update replaces the record matching (appt.ID, appt.UserID).
	// Returns domain.ErrAppointmentNotFound when no such record exists;
	// it never creates a new one.
	Update(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// Delete removes the record matching (id, userID) and reports whether
	// a record was actually removed.
	Delete(ctx context.Context, id, userID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Appointment, error)
	// HasOverlap reports whether any appointment owned by userID, other
	// than excludeID (0 = exclude nothing), has a [start, end) range
	// intersecting the given one: start < existing.end && end > existing.start.
	HasOverlap(ctx context.Context, userID int64, start, end time.Time, excludeID int64) (bool, error)
	// DeleteByUser removes every appointment owned by userID and returns
	// how many were removed. Used by the user-delete cascade.
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
