package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/calendarapp/calendar-backend/internal/core/domain"
)

// ValidateAppointment checks a single appointment snapshot for field-level
// and temporal well-formedness. Checks run in a fixed order and the first
// failure aborts; each failure carries a specific reason. Length limits
// count characters, not bytes. "Start in the past" is evaluated against
// the current UTC instant at call time, on create and update alike.
func ValidateAppointment(appt *domain.Appointment) error {
	if appt == nil {
		return domain.NewValidationError("appointment required")
	}

	if strings.TrimSpace(appt.Title) == "" {
		return domain.NewValidationError("title required")
	}
	if utf8.RuneCountInString(appt.Title) > domain.MaxTitleLen {
		return domain.NewValidationError("title too long")
	}

	if strings.TrimSpace(appt.Description) == "" {
		return domain.NewValidationError("description required")
	}
	if utf8.RuneCountInString(appt.Description) > domain.MaxDescriptionLen {
		return domain.NewValidationError("description too long")
	}

	if appt.Start.IsZero() {
		return domain.NewValidationError("start required")
	}
	if appt.Start.Before(time.Now().UTC()) {
		return domain.NewValidationError("start in past")
	}

	if appt.End.IsZero() {
		return domain.NewValidationError("end required")
	}
	if !appt.End.After(appt.Start) {
		return domain.NewValidationError("end before start")
	}

	if strings.TrimSpace(appt.Location) != "" && utf8.RuneCountInString(appt.Location) > domain.MaxLocationLen {
		return domain.NewValidationError("location too long")
	}

	if appt.Attendees != "" && utf8.RuneCountInString(appt.Attendees) > domain.MaxAttendeesLen {
		return domain.NewValidationError("attendees too long")
	}

	return nil
}
