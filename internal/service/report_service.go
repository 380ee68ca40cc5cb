package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/models"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

const (
	defaultReportLimit     = 10
	defaultTopStudentLimit = 3
	maxReportLimit         = 500
)

type reportRepository interface {
	EventPopularity(ctx context.Context, filter models.ReportFilter) ([]models.EventPopularityRow, error)
	StudentParticipation(ctx context.Context, studentID string) (*models.StudentParticipationRow, error)
	StudentParticipationEvents(ctx context.Context, studentID string) ([]models.ParticipationEvent, error)
	StudentParticipationList(ctx context.Context, filter models.ReportFilter) ([]models.StudentParticipationRow, error)
	TopActiveStudents(ctx context.Context, filter models.ReportFilter) ([]models.TopStudentRow, error)
	EventAttendance(ctx context.Context, eventID string) (*models.EventAttendanceRow, error)
	AttendanceByEventType(ctx context.Context, collegeID string) ([]models.EventTypeAttendanceRow, error)
	FeedbackReport(ctx context.Context, filter models.FeedbackReportFilter) ([]models.FeedbackReportRow, error)
	RatingByEventType(ctx context.Context, collegeID string) ([]models.EventTypeRatingRow, error)
}

// ReportService serves the aggregate reports straight from committed rows. Nothing is cached.
type ReportService struct {
	repo    reportRepository
	metrics *MetricsService
	logger  *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(repo reportRepository, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{repo: repo, metrics: metrics, logger: logger}
}

// EventPopularity ranks active events by confirmed registrations, then average rating.
func (s *ReportService) EventPopularity(ctx context.Context, filter models.ReportFilter) ([]models.EventPopularityRow, error) {
	if err := normalizeReportFilter(&filter, defaultReportLimit); err != nil {
		return nil, err
	}
	defer s.observe("event_popularity", time.Now())
	rows, err := s.repo.EventPopularity(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to build event popularity report")
	}
	return emptyIfNil(rows), nil
}

// StudentParticipation returns one student's summary and per-event breakdown.
func (s *ReportService) StudentParticipation(ctx context.Context, studentID string) (*models.StudentParticipationReport, error) {
	defer s.observe("student_participation", time.Now())
	summary, err := s.repo.StudentParticipation(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to build student participation report")
	}
	events, err := s.repo.StudentParticipationEvents(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to build student participation report")
	}
	return &models.StudentParticipationReport{Summary: *summary, Events: emptyIfNil(events)}, nil
}

// StudentParticipationList lists students with at least one confirmed registration.
func (s *ReportService) StudentParticipationList(ctx context.Context, filter models.ReportFilter) ([]models.StudentParticipationRow, error) {
	if err := normalizeReportFilter(&filter, defaultReportLimit); err != nil {
		return nil, err
	}
	defer s.observe("student_participation_list", time.Now())
	rows, err := s.repo.StudentParticipationList(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to build student participation report")
	}
	return emptyIfNil(rows), nil
}

// TopActiveStudents ranks students by activity score.
func (s *ReportService) TopActiveStudents(ctx context.Context, filter models.ReportFilter) ([]models.TopStudentRow, error) {
	if err := normalizeReportFilter(&filter, defaultTopStudentLimit); err != nil {
		return nil, err
	}
	defer s.observe("top_students", time.Now())
	rows, err := s.repo.TopActiveStudents(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to build top students report")
	}
	return emptyIfNil(rows), nil
}

// EventAttendance reports attendance for one event.
func (s *ReportService) EventAttendance(ctx context.Context, eventID string) (*models.EventAttendanceRow, error) {
	defer s.observe("event_attendance", time.Now())
	row, err := s.repo.EventAttendance(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Internal(err, "failed to build event attendance report")
	}
	return row, nil
}

// AttendanceByEventType summarises attendance rates per event type.
func (s *ReportService) AttendanceByEventType(ctx context.Context, collegeID string) ([]models.EventTypeAttendanceRow, error) {
	defer s.observe("attendance_by_type", time.Now())
	rows, err := s.repo.AttendanceByEventType(ctx, collegeID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to build attendance report")
	}
	return emptyIfNil(rows), nil
}

// FeedbackReport lists per-event rating stats whose average lies within [MinRating, MaxRating].
func (s *ReportService) FeedbackReport(ctx context.Context, filter models.FeedbackReportFilter) ([]models.FeedbackReportRow, error) {
	if filter.EventType != "" && !filter.EventType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown event type")
	}
	if filter.MinRating == 0 {
		filter.MinRating = 1
	}
	if filter.MaxRating == 0 {
		filter.MaxRating = 5
	}
	if filter.MinRating < 1 || filter.MaxRating > 5 || filter.MinRating > filter.MaxRating {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rating band must satisfy 1 <= min_rating <= max_rating <= 5")
	}
	defer s.observe("feedback", time.Now())
	rows, err := s.repo.FeedbackReport(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to build feedback report")
	}
	return emptyIfNil(rows), nil
}

// RatingByEventType averages ratings per event type.
func (s *ReportService) RatingByEventType(ctx context.Context, collegeID string) ([]models.EventTypeRatingRow, error) {
	defer s.observe("rating_by_type", time.Now())
	rows, err := s.repo.RatingByEventType(ctx, collegeID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to build rating report")
	}
	return emptyIfNil(rows), nil
}

func (s *ReportService) observe(report string, start time.Time) {
	s.metrics.ObserveReportQuery(report, time.Since(start))
}

func normalizeReportFilter(filter *models.ReportFilter, defaultLimit int) error {
	if filter.EventType != "" && !filter.EventType.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown event type")
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxReportLimit {
		filter.Limit = maxReportLimit
	}
	return nil
}

func emptyIfNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
