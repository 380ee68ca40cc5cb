package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/internal/repository"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

type attendanceRepository interface {
	FindByID(ctx context.Context, id string) (*models.Attendance, error)
	FindByPair(ctx context.Context, studentID, eventID string) (*models.Attendance, error)
	Create(ctx context.Context, att *models.Attendance) error
	UpdateStatus(ctx context.Context, id string, status models.AttendanceStatus) error
	ListByEvent(ctx context.Context, eventID string) ([]models.EventAttendance, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.StudentAttendance, error)
	Counts(ctx context.Context, eventID string) (registered, attended int, err error)
	ListAbsentees(ctx context.Context, eventID string) ([]models.Absentee, error)
}

type registrationFinder interface {
	FindByPair(ctx context.Context, exec sqlx.ExtContext, studentID, eventID string) (*models.Registration, error)
}

type eventFinder interface {
	FindByID(ctx context.Context, id string) (*models.Event, error)
}

// CheckInRequest holds payload for marking attendance.
type CheckInRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	EventID   string `json:"event_id" validate:"required"`
}

// UpdateAttendanceRequest holds payload for the administrative status override.
type UpdateAttendanceRequest struct {
	Status string `json:"status" validate:"required"`
}

// AttendanceService records check-ins for confirmed registrants.
type AttendanceService struct {
	repo          attendanceRepository
	registrations registrationFinder
	events        eventFinder
	metrics       *MetricsService
	logger        *zap.Logger
	now           func() time.Time
	newID         func() string
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, registrations registrationFinder, events eventFinder, metrics *MetricsService, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		repo:          repo,
		registrations: registrations,
		events:        events,
		metrics:       metrics,
		logger:        logger,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// CheckIn marks the student present. Gates are evaluated in order and the first failure wins:
// confirmed registration, no prior attendance, event date not after today.
func (s *AttendanceService) CheckIn(ctx context.Context, studentID, eventID string) (*models.Attendance, error) {
	att, err := s.checkIn(ctx, studentID, eventID)
	if err != nil {
		s.metrics.RecordCheckIn(appErrors.FromError(err).Code)
		return nil, err
	}
	s.metrics.RecordCheckIn(string(att.Status))
	s.logger.Info("attendance marked", zap.String("student_id", studentID), zap.String("event_id", eventID))
	return att, nil
}

func (s *AttendanceService) checkIn(ctx context.Context, studentID, eventID string) (*models.Attendance, error) {
	reg, err := s.registrations.FindByPair(ctx, nil, studentID, eventID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Internal(err, "failed to check registration")
	}
	if err != nil || reg.Status != models.RegistrationStatusConfirmed {
		return nil, appErrors.Clone(appErrors.ErrNotRegistered, "")
	}

	if _, err := s.repo.FindByPair(ctx, studentID, eventID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrAlreadyMarked, "")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Internal(err, "failed to check attendance")
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Internal(err, "failed to load event")
	}
	now := s.now()
	if event.StartsAfterDay(now) {
		return nil, appErrors.Clone(appErrors.ErrFutureEvent, "")
	}

	att := &models.Attendance{
		ID:          s.newID(),
		StudentID:   studentID,
		EventID:     eventID,
		CheckInTime: now.UTC(),
		Status:      models.AttendanceStatusPresent,
	}
	if err := s.repo.Create(ctx, att); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrAlreadyMarked, "")
		}
		return nil, appErrors.Internal(err, "failed to mark attendance")
	}
	return att, nil
}

// UpdateStatus overrides a check-in's status. It is the only path that records absent.
func (s *AttendanceService) UpdateStatus(ctx context.Context, id, status string) (*models.Attendance, error) {
	next := models.AttendanceStatus(status)
	if !next.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be present or absent")
	}
	att, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return nil, appErrors.Internal(err, "failed to load attendance")
	}
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, appErrors.Internal(err, "failed to update attendance")
	}
	s.logger.Info("attendance status overridden", zap.String("attendance_id", id), zap.String("from", string(att.Status)), zap.String("to", status))
	att.Status = next
	return att, nil
}

// ListByEvent returns an event's check-ins in check-in order.
func (s *AttendanceService) ListByEvent(ctx context.Context, eventID string) ([]models.EventAttendance, error) {
	rows, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list event attendance")
	}
	if rows == nil {
		rows = []models.EventAttendance{}
	}
	return rows, nil
}

// ListByStudent returns the events a student attended, newest first.
func (s *AttendanceService) ListByStudent(ctx context.Context, studentID string) ([]models.StudentAttendance, error) {
	rows, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list student attendance")
	}
	if rows == nil {
		rows = []models.StudentAttendance{}
	}
	return rows, nil
}

// Stats compares present check-ins with confirmed registrations.
func (s *AttendanceService) Stats(ctx context.Context, eventID string) (*models.AttendanceStats, error) {
	registered, attended, err := s.repo.Counts(ctx, eventID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load attendance stats")
	}
	return &models.AttendanceStats{
		TotalRegistered:      registered,
		TotalAttended:        attended,
		AttendancePercentage: percentage(attended, registered),
	}, nil
}

// ListAbsentees returns confirmed registrants who have not checked in present.
func (s *AttendanceService) ListAbsentees(ctx context.Context, eventID string) ([]models.Absentee, error) {
	rows, err := s.repo.ListAbsentees(ctx, eventID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list absentees")
	}
	if rows == nil {
		rows = []models.Absentee{}
	}
	return rows, nil
}

// percentage returns part/whole*100 rounded to two decimals, 0 when whole is 0.
func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}
