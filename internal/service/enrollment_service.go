package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/internal/repository"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

// MaxCreditsPerSemester caps the total course credits a student may carry
// within a single semester.
const MaxCreditsPerSemester = 21

type enrollmentRepository interface {
	Insert(enrollment models.Enrollment) error
	FindByPair(regNo, code string) (*models.Enrollment, error)
	Delete(regNo, code string) bool
	SetGrade(regNo, code string, grade models.Grade) bool
	List(filter models.EnrollmentFilter) []models.Enrollment
}

type studentReader interface {
	FindByRegNo(regNo string) (*models.Student, error)
}

type courseReader interface {
	FindByCode(code string) (*models.Course, error)
}

type enrollmentRecorder interface {
	EnrollmentCreated()
	EnrollmentRemoved()
	GradeRecorded()
}

// EnrollRequest describes an enrollment creation payload.
type EnrollRequest struct {
	StudentRegNo string `json:"student_reg_no" validate:"required"`
	CourseCode   string `json:"course_code" validate:"required"`
}

// RecordGradeRequest describes a grade recording payload.
type RecordGradeRequest struct {
	StudentRegNo string `json:"student_reg_no" validate:"required"`
	CourseCode   string `json:"course_code" validate:"required"`
	Grade        string `json:"grade" validate:"required"`
}

// EnrollmentService enforces the enrollment invariants and derives academic
// standing. It is the single owner of the enrollment record set; a student's
// enrollment list is a query over that set.
//
// mu serializes every operation so the duplicate check, the credit check, and
// the insert form one critical section.
type EnrollmentService struct {
	mu       sync.RWMutex
	repo     enrollmentRepository
	students studentReader
	courses  courseReader
	metrics  enrollmentRecorder

	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService. metrics may be nil.
func NewEnrollmentService(repo enrollmentRepository, students studentReader, courses courseReader, metrics enrollmentRecorder, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, students: students, courses: courses, metrics: metrics, validator: validate, logger: logger}
}

// Enroll registers a student in a course. It fails on a duplicate pair or
// when the course's credits would push the student past the semester cap.
// Validation fully precedes mutation; a rejected call changes nothing.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if _, err := s.students.FindByRegNo(req.StudentRegNo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	course, err := s.courses.FindByCode(req.CourseCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.FindByPair(req.StudentRegNo, req.CourseCode); err == nil {
		return nil, appErrors.Clone(appErrors.ErrDuplicateEnrollment,
			fmt.Sprintf("student %s is already enrolled in course %s", req.StudentRegNo, req.CourseCode))
	}

	current := s.creditsInSemester(req.StudentRegNo, course.Semester)
	if current+course.Credits > MaxCreditsPerSemester {
		return nil, appErrors.Clone(appErrors.ErrCreditLimitExceeded,
			fmt.Sprintf("enrolling in %s would exceed the maximum of %d credits per semester", course.Code, MaxCreditsPerSemester))
	}

	enrollment := models.Enrollment{
		ID:           uuid.NewString(),
		StudentRegNo: req.StudentRegNo,
		CourseCode:   req.CourseCode,
		EnrolledAt:   time.Now().UTC(),
	}
	if err := s.repo.Insert(enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}

	if s.metrics != nil {
		s.metrics.EnrollmentCreated()
	}
	s.logger.Info("enrollment created",
		zap.String("reg_no", req.StudentRegNo),
		zap.String("course", req.CourseCode),
		zap.Int("semester_credits", current+course.Credits))
	return &enrollment, nil
}

// Unenroll removes the matching enrollment. It is idempotent: an unmatched
// pair is a silent no-op.
func (s *EnrollmentService) Unenroll(ctx context.Context, regNo, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo.Delete(regNo, code) {
		if s.metrics != nil {
			s.metrics.EnrollmentRemoved()
		}
		s.logger.Info("enrollment removed", zap.String("reg_no", regNo), zap.String("course", code))
	}
	return nil
}

// RecordGrade sets (or replaces) the grade on the matching enrollment. The
// grade text is validated here at the boundary; an unmatched pair is a silent
// no-op.
func (s *EnrollmentService) RecordGrade(ctx context.Context, req RecordGradeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	grade, err := models.ParseGrade(req.Grade)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInvalidGrade.Code, appErrors.ErrInvalidGrade.Status, appErrors.ErrInvalidGrade.Message)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo.SetGrade(req.StudentRegNo, req.CourseCode, grade) {
		if s.metrics != nil {
			s.metrics.GradeRecorded()
		}
		s.logger.Info("grade recorded",
			zap.String("reg_no", req.StudentRegNo),
			zap.String("course", req.CourseCode),
			zap.String("grade", string(grade)))
	}
	return nil
}

// ListForStudent returns a student's enrollments in insertion order.
func (s *EnrollmentService) ListForStudent(ctx context.Context, regNo string) []models.Enrollment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.List(models.EnrollmentFilter{StudentRegNo: regNo})
}

// ListForCourse returns a course's enrollments in insertion order.
func (s *EnrollmentService) ListForCourse(ctx context.Context, code string) []models.Enrollment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.List(models.EnrollmentFilter{CourseCode: code})
}

// ListAll returns every enrollment in insertion order.
func (s *EnrollmentService) ListAll(ctx context.Context) []models.Enrollment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.List(models.EnrollmentFilter{})
}

// GPA computes the credit-weighted grade point average over the student's
// graded enrollments. Ungraded enrollments are excluded entirely; a student
// with no graded credits has a GPA of 0.0.
func (s *EnrollmentService) GPA(ctx context.Context, regNo string) (float64, error) {
	if _, err := s.students.FindByRegNo(regNo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	totalPoints := 0.0
	totalCredits := 0
	for _, enrollment := range s.repo.List(models.EnrollmentFilter{StudentRegNo: regNo}) {
		if enrollment.Grade == nil {
			continue
		}
		course, err := s.courses.FindByCode(enrollment.CourseCode)
		if err != nil {
			// Course removed from the catalog; its credits can no longer be
			// resolved.
			continue
		}
		totalPoints += enrollment.Grade.Points() * float64(course.Credits)
		totalCredits += course.Credits
	}

	if totalCredits == 0 {
		return 0, nil
	}
	return totalPoints / float64(totalCredits), nil
}

// creditsInSemester sums the credits of the student's enrollments whose
// course sits in the given semester. Callers must hold mu.
func (s *EnrollmentService) creditsInSemester(regNo string, semester models.Semester) int {
	credits := 0
	for _, enrollment := range s.repo.List(models.EnrollmentFilter{StudentRegNo: regNo}) {
		course, err := s.courses.FindByCode(enrollment.CourseCode)
		if err != nil {
			continue
		}
		if course.Semester == semester {
			credits += course.Credits
		}
	}
	return credits
}
