package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/internal/repository"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

type collegeRepository interface {
	Create(ctx context.Context, college *models.College) error
	List(ctx context.Context) ([]models.College, error)
	FindByID(ctx context.Context, id string) (*models.College, error)
	Update(ctx context.Context, college *models.College) error
	Stats(ctx context.Context, id string) (*models.CollegeStats, error)
}

// CreateCollegeRequest holds payload for creating colleges.
type CreateCollegeRequest struct {
	CollegeID    string `json:"college_id" validate:"required,max=20"`
	CollegeName  string `json:"college_name" validate:"required,max=255"`
	Location     string `json:"location" validate:"max=255"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

// UpdateCollegeRequest holds payload for updating colleges.
type UpdateCollegeRequest struct {
	CollegeName  string `json:"college_name" validate:"required,max=255"`
	Location     string `json:"location" validate:"max=255"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

// CollegeService handles college catalog use-cases.
type CollegeService struct {
	repo      collegeRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCollegeService constructs the college service. cache may be nil.
func NewCollegeService(repo collegeRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CollegeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollegeService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Create registers a college under a caller supplied id.
func (s *CollegeService) Create(ctx context.Context, req CreateCollegeRequest) (*models.College, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid college payload")
	}
	college := &models.College{
		ID:           strings.TrimSpace(req.CollegeID),
		Name:         strings.TrimSpace(req.CollegeName),
		Location:     req.Location,
		ContactEmail: req.ContactEmail,
	}
	if err := s.repo.Create(ctx, college); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "college id already exists")
		}
		return nil, appErrors.Internal(err, "failed to create college")
	}
	s.cache.Invalidate(ctx, cacheKeyCollegePattern)
	s.logger.Info("college created", zap.String("college_id", college.ID))
	return college, nil
}

// List returns every college ordered by name.
func (s *CollegeService) List(ctx context.Context) ([]models.College, error) {
	var colleges []models.College
	err := s.cache.Fetch(ctx, cacheKeyCollegeList, &colleges, func() error {
		rows, err := s.repo.List(ctx)
		if err != nil {
			return appErrors.Internal(err, "failed to list colleges")
		}
		colleges = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	if colleges == nil {
		colleges = []models.College{}
	}
	return colleges, nil
}

// Get returns a college with live activity stats.
func (s *CollegeService) Get(ctx context.Context, id string) (*models.CollegeDetail, error) {
	college, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.Stats(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load college stats")
	}
	return &models.CollegeDetail{College: *college, Stats: *stats}, nil
}

// Update modifies a college's descriptive fields.
func (s *CollegeService) Update(ctx context.Context, id string, req UpdateCollegeRequest) (*models.College, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid college payload")
	}
	college, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "college not found")
		}
		return nil, appErrors.Internal(err, "failed to load college")
	}
	college.Name = strings.TrimSpace(req.CollegeName)
	college.Location = req.Location
	college.ContactEmail = req.ContactEmail
	if err := s.repo.Update(ctx, college); err != nil {
		return nil, appErrors.Internal(err, "failed to update college")
	}
	s.cache.Invalidate(ctx, cacheKeyCollegePattern)
	return college, nil
}

func (s *CollegeService) find(ctx context.Context, id string) (*models.College, error) {
	var college models.College
	err := s.cache.Fetch(ctx, cacheKeyCollegePrefix+id, &college, func() error {
		row, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "college not found")
			}
			return appErrors.Internal(err, "failed to load college")
		}
		college = *row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &college, nil
}
