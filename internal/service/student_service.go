package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/internal/repository"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

type studentRepository interface {
	Create(student models.Student) error
	FindByRegNo(regNo string) (*models.Student, error)
	List(filter models.StudentFilter) ([]models.Student, int, error)
	Update(student models.Student) error
}

// CreateStudentRequest describes the student registration payload.
type CreateStudentRequest struct {
	RegNo    string `json:"reg_no" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// UpdateStudentRequest carries the mutable student fields.
type UpdateStudentRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// StudentService manages the student directory.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// Create registers a new student with an active status.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	now := time.Now().UTC()
	student := models.Student{
		ID:        uuid.NewString(),
		RegNo:     req.RegNo,
		FullName:  req.FullName,
		Email:     req.Email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "registration number already taken")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	s.logger.Info("student created", zap.String("reg_no", student.RegNo))
	return &student, nil
}

// Get returns the student with the given registration number.
func (s *StudentService) Get(ctx context.Context, regNo string) (*models.Student, error) {
	student, err := s.repo.FindByRegNo(regNo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// List returns students with pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	students, total, err := s.repo.List(filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return students, pagination, nil
}

// Update replaces the mutable fields of an existing student.
func (s *StudentService) Update(ctx context.Context, regNo string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	student, err := s.Get(ctx, regNo)
	if err != nil {
		return nil, err
	}
	student.FullName = req.FullName
	student.Email = req.Email
	student.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(*student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Deactivate flags a student inactive. Students are never removed from the
// directory.
func (s *StudentService) Deactivate(ctx context.Context, regNo string) (*models.Student, error) {
	student, err := s.Get(ctx, regNo)
	if err != nil {
		return nil, err
	}
	student.Active = false
	student.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(*student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate student")
	}

	s.logger.Info("student deactivated", zap.String("reg_no", regNo))
	return student, nil
}
