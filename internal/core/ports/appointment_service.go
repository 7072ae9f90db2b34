package ports

import (
	"context"

	"github.com/calendarapp/calendar-backend/internal/core/domain"
)

// AppointmentService defines the use-case operations for appointments.
// Every operation takes the owner's userID explicitly; ownership is never
// read from the appointment payload by callers of this interface.
type AppointmentService interface {
	// List returns every appointment owned by userID. A non-positive
	// userID yields an empty slice, never an error.
	List(ctx context.Context, userID int64) ([]*domain.Appointment, error)
	// Create validates the appointment, rejects overlapping ranges for
	// the same owner, persists it, and returns it with its assigned id.
	// The caller must have set appt.UserID beforehand.
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// Update revalidates and conflict-checks (excluding the appointment
	// itself) before updating the record matching (id, userID). Returns
	// domain.ErrAppointmentNotFound when the record does not exist or is
	// owned by someone else.
	Update(ctx context.Context, id, userID int64, appt *domain.Appointment) (*domain.Appointment, error)
	// Delete removes the record matching (id, userID) and reports whether
	// anything was removed.
	Delete(ctx context.Context, id, userID int64) (bool, error)
}
