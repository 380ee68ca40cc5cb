package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/internal/repository"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

type eventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
	LockForUpdate(ctx context.Context, exec sqlx.ExtContext, id string) (*models.Event, error)
	CountByCollege(ctx context.Context, exec sqlx.ExtContext, collegeID string) (int, error)
	Create(ctx context.Context, exec sqlx.ExtContext, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.EventStatus) error
	Stats(ctx context.Context, id string) (*models.EventStats, error)
}

type confirmedCounter interface {
	CountByStatus(ctx context.Context, exec sqlx.ExtContext, eventID string, status models.RegistrationStatus) (int, error)
}

var eventTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// EventRequest holds payload shared by event create and update.
type EventRequest struct {
	EventName        string   `json:"event_name" validate:"required,max=255"`
	EventDescription *string  `json:"event_description"`
	EventType        string   `json:"event_type" validate:"required,oneof=Workshop Fest Seminar Hackathon 'Tech Talk'"`
	EventDate        string   `json:"event_date" validate:"required,datetime=2006-01-02"`
	EventTime        string   `json:"event_time" validate:"required"`
	DurationHours    *float64 `json:"duration_hours" validate:"omitempty,gt=0"`
	Venue            string   `json:"venue" validate:"required,max=255"`
	MaxCapacity      int      `json:"max_capacity" validate:"required,gt=0"`
}

// CreateEventRequest holds payload for creating events.
type CreateEventRequest struct {
	CollegeID string  `json:"college_id" validate:"required"`
	CreatedBy *string `json:"created_by"`
	EventRequest
}

// EventService handles event catalog use-cases.
type EventService struct {
	repo          eventRepository
	colleges      collegeLocker
	registrations confirmedCounter
	tx            txRunner
	cache         *CacheService
	validator     *validator.Validate
	logger        *zap.Logger
	now           func() time.Time
}

// NewEventService constructs the event service. cache may be nil.
func NewEventService(repo eventRepository, colleges collegeLocker, registrations confirmedCounter, tx txRunner, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{
		repo:          repo,
		colleges:      colleges,
		registrations: registrations,
		tx:            tx,
		cache:         cache,
		validator:     validate,
		logger:        logger,
		now:           time.Now,
	}
}

// List returns active events and pagination metadata.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]models.Event, *models.Pagination, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown event type")
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list events")
	}
	if events == nil {
		events = []models.Event{}
	}
	pagination := &models.Pagination{Page: filter.Offset/filter.Limit + 1, PageSize: filter.Limit, TotalCount: total}
	return events, pagination, nil
}

// Get returns an event with live stats and its effective status.
func (s *EventService) Get(ctx context.Context, id string) (*models.EventDetail, error) {
	var event models.Event
	err := s.cache.Fetch(ctx, cacheKeyEventPrefix+id, &event, func() error {
		row, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		event = *row
		return nil
	})
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.Stats(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load event stats")
	}
	return &models.EventDetail{Event: event, EffectiveStatus: event.EffectiveStatus(s.now()), Stats: *stats}, nil
}

// Create schedules an event, allocating the next sequential id within the college.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	event := &models.Event{
		CollegeID: req.CollegeID,
		CreatedBy: req.CreatedBy,
		CreatedAt: s.now().UTC(),
		Status:    models.EventStatusActive,
	}
	if err := applyEventRequest(event, req.EventRequest); err != nil {
		return nil, err
	}

	err := s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		if _, err := s.colleges.LockForUpdate(ctx, exec, req.CollegeID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "college not found")
			}
			return appErrors.Internal(err, "failed to lock college")
		}
		count, err := s.repo.CountByCollege(ctx, exec, req.CollegeID)
		if err != nil {
			return appErrors.Internal(err, "failed to allocate event id")
		}
		event.ID = models.EventID(req.CollegeID, count+1)
		if err := s.repo.Create(ctx, exec, event); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return appErrors.Clone(appErrors.ErrConflict, "event already exists")
			}
			return appErrors.Internal(err, "failed to create event")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cacheKeyCollegePrefix+event.CollegeID)
	s.logger.Info("event created", zap.String("event_id", event.ID), zap.Int("max_capacity", event.MaxCapacity))
	return event, nil
}

// Update rewrites an event's schedule and capacity. Capacity may not drop below the confirmed count.
func (s *EventService) Update(ctx context.Context, id string, req EventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyEventRequest(event, req); err != nil {
		return nil, err
	}
	confirmed, err := s.registrations.CountByStatus(ctx, nil, id, models.RegistrationStatusConfirmed)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to count registrations")
	}
	if event.MaxCapacity < confirmed {
		return nil, appErrors.Clone(appErrors.ErrValidation, "max_capacity is below the number of confirmed registrations")
	}
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, appErrors.Internal(err, "failed to update event")
	}
	s.cache.Invalidate(ctx, cacheKeyEventPrefix+id)
	return event, nil
}

// Cancel moves an active event to cancelled. Registrations are kept for reporting.
func (s *EventService) Cancel(ctx context.Context, id string) (*models.Event, error) {
	var event *models.Event
	err := s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		locked, err := s.repo.LockForUpdate(ctx, exec, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "event not found")
			}
			return appErrors.Internal(err, "failed to lock event")
		}
		if locked.Status != models.EventStatusActive {
			return appErrors.Clone(appErrors.ErrInactiveEvent, "only active events can be cancelled")
		}
		if err := s.repo.UpdateStatus(ctx, exec, id, models.EventStatusCancelled); err != nil {
			return appErrors.Internal(err, "failed to cancel event")
		}
		locked.Status = models.EventStatusCancelled
		event = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cacheKeyEventPrefix+id)
	s.logger.Info("event cancelled", zap.String("event_id", id))
	return event, nil
}

func (s *EventService) load(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Internal(err, "failed to load event")
	}
	return event, nil
}

func applyEventRequest(event *models.Event, req EventRequest) error {
	date, err := time.Parse(models.EventDateLayout, req.EventDate)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "event_date must be YYYY-MM-DD")
	}
	eventTime := strings.TrimSpace(req.EventTime)
	if !eventTimePattern.MatchString(eventTime) {
		return appErrors.Clone(appErrors.ErrValidation, "event_time must be HH:MM")
	}
	event.Name = strings.TrimSpace(req.EventName)
	event.Description = req.EventDescription
	event.Type = models.EventType(req.EventType)
	event.Date = date
	event.Time = eventTime
	event.DurationHours = req.DurationHours
	event.Venue = req.Venue
	event.MaxCapacity = req.MaxCapacity
	return nil
}
