package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/internal/repository"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

type registrationRepository interface {
	FindByID(ctx context.Context, exec sqlx.ExtContext, id string) (*models.Registration, error)
	FindByPair(ctx context.Context, exec sqlx.ExtContext, studentID, eventID string) (*models.Registration, error)
	CountByStatus(ctx context.Context, exec sqlx.ExtContext, eventID string, status models.RegistrationStatus) (int, error)
	Create(ctx context.Context, exec sqlx.ExtContext, reg *models.Registration) error
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.RegistrationStatus) error
	OldestWaitlisted(ctx context.Context, exec sqlx.ExtContext, eventID string) (*models.Registration, error)
	GetDetail(ctx context.Context, id string) (*models.RegistrationDetail, error)
	ListByEvent(ctx context.Context, eventID string, status models.RegistrationStatus) ([]models.EventRegistration, error)
	ListByStudent(ctx context.Context, studentID string, status models.RegistrationStatus) ([]models.StudentRegistration, error)
	StatsByEvent(ctx context.Context, eventID string) (*models.RegistrationStats, error)
}

type eventLocker interface {
	LockForUpdate(ctx context.Context, exec sqlx.ExtContext, id string) (*models.Event, error)
}

type studentChecker interface {
	Exists(ctx context.Context, exec sqlx.ExtContext, id string) (bool, error)
}

// EnrollRequest holds payload for registering a student to an event.
type EnrollRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	EventID   string `json:"event_id" validate:"required"`
}

// RegistrationService enrolls students into events, bounded by capacity with a FIFO waitlist.
type RegistrationService struct {
	repo     registrationRepository
	events   eventLocker
	students studentChecker
	tx       txRunner
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewRegistrationService constructs the registration service.
func NewRegistrationService(repo registrationRepository, events eventLocker, students studentChecker, tx txRunner, metrics *MetricsService, logger *zap.Logger) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		repo:     repo,
		events:   events,
		students: students,
		tx:       tx,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Enroll registers the student for the event. The registration is confirmed while the event has
// free capacity and waitlisted otherwise. The event row stays locked from the count to the insert.
func (s *RegistrationService) Enroll(ctx context.Context, studentID, eventID string) (*models.Registration, error) {
	var reg *models.Registration
	err := s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		event, err := s.events.LockForUpdate(ctx, exec, eventID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "event not found")
			}
			return appErrors.Internal(err, "failed to lock event")
		}
		if event.Status != models.EventStatusActive {
			return appErrors.Clone(appErrors.ErrInactiveEvent, "event is not active")
		}

		exists, err := s.students.Exists(ctx, exec, studentID)
		if err != nil {
			return appErrors.Internal(err, "failed to check student")
		}
		if !exists {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}

		if _, err := s.repo.FindByPair(ctx, exec, studentID, eventID); err == nil {
			return appErrors.Clone(appErrors.ErrConflict, "student already registered for this event")
		} else if !errors.Is(err, sql.ErrNoRows) {
			return appErrors.Internal(err, "failed to check registration")
		}

		confirmed, err := s.repo.CountByStatus(ctx, exec, eventID, models.RegistrationStatusConfirmed)
		if err != nil {
			return appErrors.Internal(err, "failed to count registrations")
		}
		status := models.RegistrationStatusConfirmed
		if confirmed >= event.MaxCapacity {
			status = models.RegistrationStatusWaitlisted
		}

		reg = &models.Registration{
			ID:        s.newID(),
			StudentID: studentID,
			EventID:   eventID,
			CreatedAt: s.now().UTC(),
			Status:    status,
		}
		if err := s.repo.Create(ctx, exec, reg); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return appErrors.Clone(appErrors.ErrConflict, "student already registered for this event")
			}
			return appErrors.Internal(err, "failed to create registration")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordRegistration(reg.Status)
	s.logger.Info("registration created",
		zap.String("registration_id", reg.ID),
		zap.String("student_id", studentID),
		zap.String("event_id", eventID),
		zap.String("status", string(reg.Status)),
	)
	return reg, nil
}

// Cancel marks the registration cancelled. Cancelling a confirmed seat promotes the oldest
// waitlisted registration of the same event. Cancelling twice is a no-op.
func (s *RegistrationService) Cancel(ctx context.Context, id string) (*models.CancelResult, error) {
	current, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
		}
		return nil, appErrors.Internal(err, "failed to load registration")
	}

	result := &models.CancelResult{CancelledID: id}
	err = s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		event, err := s.events.LockForUpdate(ctx, exec, current.EventID)
		if err != nil {
			return appErrors.Internal(err, "failed to lock event")
		}
		reg, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return appErrors.Internal(err, "failed to reload registration")
		}
		if reg.Status == models.RegistrationStatusCancelled {
			return nil
		}
		if err := s.repo.UpdateStatus(ctx, exec, id, models.RegistrationStatusCancelled); err != nil {
			return appErrors.Internal(err, "failed to cancel registration")
		}
		if reg.Status != models.RegistrationStatusConfirmed {
			return nil
		}

		confirmed, err := s.repo.CountByStatus(ctx, exec, reg.EventID, models.RegistrationStatusConfirmed)
		if err != nil {
			return appErrors.Internal(err, "failed to count registrations")
		}
		if confirmed >= event.MaxCapacity {
			return nil
		}
		next, err := s.repo.OldestWaitlisted(ctx, exec, reg.EventID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return appErrors.Internal(err, "failed to load waitlist")
		}
		if err := s.repo.UpdateStatus(ctx, exec, next.ID, models.RegistrationStatusConfirmed); err != nil {
			return appErrors.Internal(err, "failed to promote waitlisted registration")
		}
		promoted := next.ID
		result.PromotedID = &promoted
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{zap.String("registration_id", id), zap.String("event_id", current.EventID)}
	if result.PromotedID != nil {
		s.metrics.RecordPromotion()
		fields = append(fields, zap.String("promoted_id", *result.PromotedID))
	}
	s.logger.Info("registration cancelled", fields...)
	return result, nil
}

// Get returns one registration with student and event names.
func (s *RegistrationService) Get(ctx context.Context, id string) (*models.RegistrationDetail, error) {
	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
		}
		return nil, appErrors.Internal(err, "failed to load registration")
	}
	return detail, nil
}

// ListByEvent returns an event's registrations in registration order, optionally filtered by status.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID, status string) ([]models.EventRegistration, error) {
	filter, err := parseRegistrationStatus(status)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByEvent(ctx, eventID, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list event registrations")
	}
	if rows == nil {
		rows = []models.EventRegistration{}
	}
	return rows, nil
}

// ListByStudent returns a student's registrations, newest event first.
func (s *RegistrationService) ListByStudent(ctx context.Context, studentID, status string) ([]models.StudentRegistration, error) {
	filter, err := parseRegistrationStatus(status)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByStudent(ctx, studentID, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list student registrations")
	}
	if rows == nil {
		rows = []models.StudentRegistration{}
	}
	return rows, nil
}

// EventStats counts an event's registrations by status.
func (s *RegistrationService) EventStats(ctx context.Context, eventID string) (*models.RegistrationStats, error) {
	stats, err := s.repo.StatsByEvent(ctx, eventID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load registration stats")
	}
	return stats, nil
}

func parseRegistrationStatus(raw string) (models.RegistrationStatus, error) {
	if raw == "" {
		return "", nil
	}
	status := models.RegistrationStatus(raw)
	if !status.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, "status must be confirmed, waitlisted or cancelled")
	}
	return status, nil
}
