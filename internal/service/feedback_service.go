package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/internal/repository"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

type feedbackRepository interface {
	FindByID(ctx context.Context, id string) (*models.Feedback, error)
	FindByPair(ctx context.Context, studentID, eventID string) (*models.Feedback, error)
	Create(ctx context.Context, fb *models.Feedback) error
	Update(ctx context.Context, fb *models.Feedback) error
	ListByEvent(ctx context.Context, eventID string) ([]models.EventFeedback, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.StudentFeedback, error)
	StatsByEvent(ctx context.Context, eventID string) (*models.FeedbackStats, error)
}

type attendanceFinder interface {
	FindByPair(ctx context.Context, studentID, eventID string) (*models.Attendance, error)
}

// SubmitFeedbackRequest holds payload for rating an attended event.
// Rating is decoded as a number so fractional values reach the rating check instead of failing decoding.
type SubmitFeedbackRequest struct {
	StudentID string   `json:"student_id" validate:"required"`
	EventID   string   `json:"event_id" validate:"required"`
	Rating    *float64 `json:"rating" validate:"required"`
	Comments  *string  `json:"comments"`
}

// ReviseFeedbackRequest holds payload for editing feedback.
type ReviseFeedbackRequest struct {
	Rating   *float64 `json:"rating" validate:"required"`
	Comments *string  `json:"comments"`
}

// FeedbackService records ratings from students who attended.
type FeedbackService struct {
	repo       feedbackRepository
	attendance attendanceFinder
	metrics    *MetricsService
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

// NewFeedbackService constructs the feedback service.
func NewFeedbackService(repo feedbackRepository, attendance attendanceFinder, metrics *MetricsService, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{
		repo:       repo,
		attendance: attendance,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Submit stores feedback for a present attendee. Checks run in order: presence, duplicate, rating.
func (s *FeedbackService) Submit(ctx context.Context, studentID, eventID string, rating float64, comments *string) (*models.Feedback, error) {
	att, err := s.attendance.FindByPair(ctx, studentID, eventID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Internal(err, "failed to check attendance")
	}
	if err != nil || att.Status != models.AttendanceStatusPresent {
		return nil, appErrors.Clone(appErrors.ErrAttendanceRequired, "")
	}

	if _, err := s.repo.FindByPair(ctx, studentID, eventID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "feedback already submitted for this event")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Internal(err, "failed to check feedback")
	}

	value, err := validateRating(rating)
	if err != nil {
		return nil, err
	}

	fb := &models.Feedback{
		ID:        s.newID(),
		StudentID: studentID,
		EventID:   eventID,
		Rating:    value,
		Comments:  comments,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, fb); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "feedback already submitted for this event")
		}
		return nil, appErrors.Internal(err, "failed to submit feedback")
	}
	s.metrics.RecordFeedback("submit")
	s.logger.Info("feedback submitted", zap.String("student_id", studentID), zap.String("event_id", eventID), zap.Int("rating", value))
	return fb, nil
}

// Revise overwrites rating and comments. Attendance is not re-checked.
func (s *FeedbackService) Revise(ctx context.Context, id string, rating float64, comments *string) (*models.Feedback, error) {
	value, err := validateRating(rating)
	if err != nil {
		return nil, err
	}
	fb, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "feedback not found")
		}
		return nil, appErrors.Internal(err, "failed to load feedback")
	}
	fb.Rating = value
	fb.Comments = comments
	fb.CreatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, fb); err != nil {
		return nil, appErrors.Internal(err, "failed to update feedback")
	}
	s.metrics.RecordFeedback("revise")
	return fb, nil
}

// ListByEvent returns an event's feedback, newest first.
func (s *FeedbackService) ListByEvent(ctx context.Context, eventID string) ([]models.EventFeedback, error) {
	rows, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list event feedback")
	}
	if rows == nil {
		rows = []models.EventFeedback{}
	}
	return rows, nil
}

// ListByStudent returns a student's feedback, newest first.
func (s *FeedbackService) ListByStudent(ctx context.Context, studentID string) ([]models.StudentFeedback, error) {
	rows, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list student feedback")
	}
	if rows == nil {
		rows = []models.StudentFeedback{}
	}
	return rows, nil
}

// StatsByEvent aggregates an event's ratings.
func (s *FeedbackService) StatsByEvent(ctx context.Context, eventID string) (*models.FeedbackStats, error) {
	stats, err := s.repo.StatsByEvent(ctx, eventID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load feedback stats")
	}
	return stats, nil
}

// validateRating accepts whole numbers 1 through 5. Nothing is clamped.
func validateRating(rating float64) (int, error) {
	if math.IsNaN(rating) || rating != math.Trunc(rating) || rating < 1 || rating > 5 {
		return 0, appErrors.Clone(appErrors.ErrInvalidRating, "")
	}
	return int(rating), nil
}
