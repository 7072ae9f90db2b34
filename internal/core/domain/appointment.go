package domain

import (
	"errors"
	"time"
)

// Field length limits enforced by the appointment validator.
const (
	MaxTitleLen       = 30
	MaxDescriptionLen = 50
	MaxLocationLen    = 15
	MaxAttendeesLen   = 1000
)

var ErrAppointmentNotFound = errors.New("appointment not found")
var ErrConflict = errors.New("appointment conflicts with an existing one")
var ErrInvalidOwner = errors.New("invalid user id")

// ValidationError reports a single malformed or out-of-range appointment
// field. The Reason is safe to surface to the caller verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError wraps a human-readable reason in a ValidationError.
func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Appointment is a scheduled event owned by exactly one user.
// Start and End are always stored UTC-normalized; the interval is
// half-open [Start, End), so back-to-back appointments sharing an
// endpoint do not overlap.
type Appointment struct {
	ID          int64     `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Start       time.Time `json:"start" bson:"start"`
	End         time.Time `json:"end" bson:"end"`
	IsAllDay    bool      `json:"isAllDay" bson:"is_all_day"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	Attendees   string    `json:"attendees,omitempty" bson:"attendees,omitempty"`
	UserID      int64     `json:"userId" bson:"user_id"`
}

// Overlaps reports whether the half-open ranges of a and other intersect.
func (a *Appointment) Overlaps(other *Appointment) bool {
	return a.Start.Before(other.End) && a.End.After(other.Start)
}
