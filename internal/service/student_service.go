package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/internal/repository"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentListItem, error)
	ListByCollege(ctx context.Context, collegeID string, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	CountByCollege(ctx context.Context, exec sqlx.ExtContext, collegeID string) (int, error)
	Create(ctx context.Context, exec sqlx.ExtContext, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	ParticipationStats(ctx context.Context, id string) (*models.ParticipationStats, error)
}

type collegeReader interface {
	collegeLocker
	FindByID(ctx context.Context, id string) (*models.College, error)
}

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	CollegeID   string  `json:"college_id" validate:"required"`
	StudentName string  `json:"student_name" validate:"required,max=255"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	YearOfStudy *int    `json:"year_of_study" validate:"omitempty,min=1,max=6"`
	Department  *string `json:"department" validate:"omitempty,max=100"`
}

// UpdateStudentRequest holds payload for updating students.
type UpdateStudentRequest struct {
	StudentName string  `json:"student_name" validate:"required,max=255"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	YearOfStudy *int    `json:"year_of_study" validate:"omitempty,min=1,max=6"`
	Department  *string `json:"department" validate:"omitempty,max=100"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	colleges  collegeReader
	tx        txRunner
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, colleges collegeReader, tx txRunner, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, colleges: colleges, tx: tx, validator: validate, logger: logger, now: time.Now}
}

// List returns students across colleges.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentListItem, error) {
	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list students")
	}
	if students == nil {
		students = []models.StudentListItem{}
	}
	return students, nil
}

// ListByCollege returns the students of one college.
func (s *StudentService) ListByCollege(ctx context.Context, collegeID string, filter models.StudentFilter) ([]models.Student, error) {
	if _, err := s.colleges.FindByID(ctx, collegeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "college not found")
		}
		return nil, appErrors.Internal(err, "failed to load college")
	}
	students, err := s.repo.ListByCollege(ctx, collegeID, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list college students")
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

// Get returns a student with participation stats.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.ParticipationStats(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load participation stats")
	}
	return &models.StudentDetail{Student: *student, ParticipationStats: *stats}, nil
}

// Create registers a student, allocating the next sequential id within the college.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	email := strings.TrimSpace(req.Email)
	taken, err := s.repo.EmailTaken(ctx, email, "")
	if err != nil {
		return nil, appErrors.Internal(err, "failed to validate email")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}

	student := &models.Student{
		CollegeID:   req.CollegeID,
		Name:        strings.TrimSpace(req.StudentName),
		Email:       email,
		Phone:       req.Phone,
		YearOfStudy: req.YearOfStudy,
		Department:  req.Department,
		CreatedAt:   s.now().UTC(),
	}
	err = s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		if _, err := s.colleges.LockForUpdate(ctx, exec, req.CollegeID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "college not found")
			}
			return appErrors.Internal(err, "failed to lock college")
		}
		count, err := s.repo.CountByCollege(ctx, exec, req.CollegeID)
		if err != nil {
			return appErrors.Internal(err, "failed to allocate student id")
		}
		student.ID = models.StudentID(req.CollegeID, count+1)
		if err := s.repo.Create(ctx, exec, student); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return appErrors.Clone(appErrors.ErrConflict, "student already exists")
			}
			return appErrors.Internal(err, "failed to create student")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("student created", zap.String("student_id", student.ID), zap.String("college_id", student.CollegeID))
	return student, nil
}

// Update modifies an existing student record.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(req.Email)
	if !strings.EqualFold(email, student.Email) {
		taken, err := s.repo.EmailTaken(ctx, email, id)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to validate email")
		}
		if taken {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
		}
	}
	student.Name = strings.TrimSpace(req.StudentName)
	student.Email = email
	student.Phone = req.Phone
	student.YearOfStudy = req.YearOfStudy
	student.Department = req.Department
	if err := s.repo.Update(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
		}
		return nil, appErrors.Internal(err, "failed to update student")
	}
	return student, nil
}

func (s *StudentService) load(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	return student, nil
}
