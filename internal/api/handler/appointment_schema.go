package handler

import (
	"time"

	"github.com/calendarapp/calendar-backend/internal/core/domain"
)

// Request/response types owned by the transport layer. These are
// intentionally separate from the domain type so the JSON contract is not
// coupled to internal changes. Neither request carries an id or a user
// id: the id comes from the route, the owner from the token.

type appointmentRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	IsAllDay    bool      `json:"isAllDay"`
	Location    string    `json:"location"`
	Attendees   string    `json:"attendees"`
}

// toDomain builds the appointment snapshot handed to the core. Field
// rules (lengths, temporal ordering) are checked there, not here.
func (r appointmentRequest) toDomain() *domain.Appointment {
	return &domain.Appointment{
		Title:       r.Title,
		Description: r.Description,
		Start:       r.Start,
		End:         r.End,
		IsAllDay:    r.IsAllDay,
		Location:    r.Location,
		Attendees:   r.Attendees,
	}
}

type appointmentResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	IsAllDay    bool      `json:"isAllDay"`
	Location    string    `json:"location"`
	Attendees   string    `json:"attendees"`
	UserID      int64     `json:"userId"`
}

func toAppointmentResponse(a *domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Start:       a.Start,
		End:         a.End,
		IsAllDay:    a.IsAllDay,
		Location:    a.Location,
		Attendees:   a.Attendees,
		UserID:      a.UserID,
	}
}

func toAppointmentResponses(appts []*domain.Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(appts))
	for _, a := range appts {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}
