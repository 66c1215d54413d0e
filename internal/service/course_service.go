package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/internal/repository"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

type courseRepository interface {
	Create(course models.Course) error
	FindByCode(code string) (*models.Course, error)
	List(filter models.CourseFilter) ([]models.Course, int, error)
	Update(course models.Course) error
	Delete(code string) error
}

// CourseRequest describes a full course record; creation and replacement use
// the same shape since updates replace every mutable field.
type CourseRequest struct {
	Code       string `json:"code" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Credits    int    `json:"credits" validate:"required,gt=0"`
	Instructor string `json:"instructor" validate:"required"`
	Semester   string `json:"semester" validate:"required"`
	Department string `json:"department" validate:"required"`
}

// CourseService manages the course catalog.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger}
}

func (s *CourseService) buildCourse(req CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	semester, err := models.ParseSemester(req.Semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidSemester.Code, appErrors.ErrInvalidSemester.Status, appErrors.ErrInvalidSemester.Message)
	}
	return &models.Course{
		Code:       req.Code,
		Title:      req.Title,
		Credits:    req.Credits,
		Instructor: req.Instructor,
		Semester:   semester,
		Department: req.Department,
	}, nil
}

// Create adds a course to the catalog.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	course, err := s.buildCourse(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(*course); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "course code already taken")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	s.logger.Info("course created", zap.String("code", course.Code), zap.String("semester", string(course.Semester)))
	return course, nil
}

// Get returns the course with the given code.
func (s *CourseService) Get(ctx context.Context, code string) (*models.Course, error) {
	course, err := s.repo.FindByCode(code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// List returns catalog entries with pagination metadata. The semester filter
// arrives as free-form text and is validated here.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter, rawSemester string) ([]models.Course, *models.Pagination, error) {
	if rawSemester != "" {
		semester, err := models.ParseSemester(rawSemester)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInvalidSemester.Code, appErrors.ErrInvalidSemester.Status, appErrors.ErrInvalidSemester.Message)
		}
		filter.Semester = semester
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	courses, total, err := s.repo.List(filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return courses, pagination, nil
}

// Update replaces the full course record. The code in the path wins over any
// code in the payload.
func (s *CourseService) Update(ctx context.Context, code string, req CourseRequest) (*models.Course, error) {
	req.Code = code
	course, err := s.buildCourse(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(*course); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// Delete removes a course from the catalog entirely.
func (s *CourseService) Delete(ctx context.Context, code string) error {
	if err := s.repo.Delete(code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}

	s.logger.Info("course removed", zap.String("code", code))
	return nil
}
