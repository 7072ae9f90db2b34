package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/calendarapp/calendar-backend/internal/core/domain"
	"github.com/calendarapp/calendar-backend/internal/core/ports"
	"github.com/calendarapp/calendar-backend/internal/metrics"
)

// ListCache caches per-user appointment lists. Get returns (nil, nil) on a
// miss. Implemented by the Redis cache; a nil ListCache disables caching.
type ListCache interface {
	Get(ctx context.Context, userID int64) ([]*domain.Appointment, error)
	Set(ctx context.Context, userID int64, appts []*domain.Appointment) error
	Invalidate(ctx context.Context, userID int64) error
}

// AppointmentService orchestrates validation, conflict checking, and
// persistence for per-user appointment CRUD. The conflict check and the
// subsequent write are not atomic; two racing creates for the same owner
// can both pass the check. The store keeps an index on (user_id, start)
// but no exclusion constraint, so the race is an accepted limitation.
type AppointmentService struct {
	repo      ports.AppointmentRepository
	conflicts *ConflictChecker
	cache     ListCache
	logger    zerolog.Logger
}

// NewAppointmentService wires the service. cache may be nil to run without
// the Redis list cache.
func NewAppointmentService(repo ports.AppointmentRepository, conflicts *ConflictChecker, cache ListCache, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, conflicts: conflicts, cache: cache, logger: logger}
}

// List returns all appointments owned by userID. A non-positive userID is
// answered defensively with an empty slice.
func (s *AppointmentService) List(ctx context.Context, userID int64) ([]*domain.Appointment, error) {
	if userID <= 0 {
		return []*domain.Appointment{}, nil
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("user_id", userID).Msg("list cache read failed, falling back to store")
		} else if cached != nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	appts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list appointments")
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, appts); err != nil {
			s.logger.Warn().Err(err).Int64("user_id", userID).Msg("list cache write failed")
		}
	}
	return appts, nil
}

// Create validates appt, rejects overlaps against the owner's existing
// appointments, and persists it. The caller must set appt.UserID; this is
// the only path that assigns an owner.
func (s *AppointmentService) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if appt == nil {
		return nil, domain.NewValidationError("appointment required")
	}
	if appt.UserID <= 0 {
		return nil, domain.ErrInvalidOwner
	}

	if err := ValidateAppointment(appt); err != nil {
		metrics.ValidationFailuresTotal.Inc()
		return nil, err
	}

	conflict, err := s.conflicts.HasConflict(ctx, appt, 0)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", appt.UserID).Msg("conflict check failed")
		return nil, err
	}
	if conflict {
		metrics.ConflictsRejectedTotal.Inc()
		return nil, domain.ErrConflict
	}

	appt.Start = appt.Start.UTC()
	appt.End = appt.End.UTC()

	created, err := s.repo.Insert(ctx, appt)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", appt.UserID).Msg("failed to create appointment")
		return nil, err
	}

	metrics.AppointmentsCreatedTotal.Inc()
	s.invalidate(ctx, created.UserID)
	s.logger.Info().Int64("appointment_id", created.ID).Int64("user_id", created.UserID).Msg("appointment created")
	return created, nil
}

// Update revalidates and conflict-checks appt (excluding id itself so a
// record never conflicts with its own prior version), then updates the
// record matching (id, userID). Ownership never changes: the stored
// user_id stays what it was at creation.
func (s *AppointmentService) Update(ctx context.Context, id, userID int64, appt *domain.Appointment) (*domain.Appointment, error) {
	if userID <= 0 {
		return nil, domain.ErrAppointmentNotFound
	}
	if appt == nil {
		return nil, domain.NewValidationError("appointment required")
	}

	appt.ID = id
	appt.UserID = userID

	if err := ValidateAppointment(appt); err != nil {
		metrics.ValidationFailuresTotal.Inc()
		return nil, err
	}

	conflict, err := s.conflicts.HasConflict(ctx, appt, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("conflict check failed")
		return nil, err
	}
	if conflict {
		metrics.ConflictsRejectedTotal.Inc()
		return nil, domain.ErrConflict
	}

	appt.Start = appt.Start.UTC()
	appt.End = appt.End.UTC()

	updated, err := s.repo.Update(ctx, appt)
	if err != nil {
		if !errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Error().Err(err).Int64("appointment_id", id).Msg("failed to update appointment")
		}
		return nil, err
	}

	s.invalidate(ctx, userID)
	s.logger.Info().Int64("appointment_id", id).Int64("user_id", userID).Msg("appointment updated")
	return updated, nil
}

// Delete removes the record matching (id, userID) and reports whether a
// record was actually removed. A non-positive userID deletes nothing.
func (s *AppointmentService) Delete(ctx context.Context, id, userID int64) (bool, error) {
	if userID <= 0 {
		return false, nil
	}

	removed, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("appointment_id", id).Msg("failed to delete appointment")
		return false, err
	}
	if removed {
		s.invalidate(ctx, userID)
		s.logger.Info().Int64("appointment_id", id).Int64("user_id", userID).Msg("appointment deleted")
	}
	return removed, nil
}

func (s *AppointmentService) invalidate(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("list cache invalidation failed")
	}
}
