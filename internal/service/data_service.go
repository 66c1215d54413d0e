package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/pkg/export"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

const enrollmentDateLayout = "2006-01-02 15:04:05"

var (
	studentHeaders    = []string{"regNo", "fullName", "email", "status"}
	courseHeaders     = []string{"code", "title", "credits", "instructor", "semester", "department"}
	enrollmentHeaders = []string{"studentRegNo", "courseCode", "enrollmentDate", "grade"}
)

type studentDirectory interface {
	Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error)
	Deactivate(ctx context.Context, regNo string) (*models.Student, error)
}

type courseCatalog interface {
	Create(ctx context.Context, req CourseRequest) (*models.Course, error)
}

type enrollmentEngine interface {
	Enroll(ctx context.Context, req EnrollRequest) (*models.Enrollment, error)
	RecordGrade(ctx context.Context, req RecordGradeRequest) error
	ListAll(ctx context.Context) []models.Enrollment
}

type studentLister interface {
	List(filter models.StudentFilter) ([]models.Student, int, error)
}

type courseLister interface {
	List(filter models.CourseFilter) ([]models.Course, int, error)
}

// DataService moves records between the in-memory stores and CSV files.
// Imports go through the public creation operations so every invariant check
// applies; rows that fail validation are skipped, not fatal.
type DataService struct {
	students    studentDirectory
	courses     courseCatalog
	enrollments enrollmentEngine
	studentList studentLister
	courseList  courseLister
	codec       *export.Codec
	logger      *zap.Logger
}

// NewDataService constructs DataService.
func NewDataService(students studentDirectory, courses courseCatalog, enrollments enrollmentEngine, studentList studentLister, courseList courseLister, logger *zap.Logger) *DataService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataService{
		students:    students,
		courses:     courses,
		enrollments: enrollments,
		studentList: studentList,
		courseList:  courseList,
		codec:       export.NewCodec(),
		logger:      logger,
	}
}

func (s *DataService) parseFile(path string) (export.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return export.Table{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("cannot open %s", path))
	}
	defer file.Close() //nolint:errcheck

	table, err := s.codec.Parse(file)
	if err != nil {
		return export.Table{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed csv file")
	}
	return table, nil
}

// ImportStudents loads students from a CSV file and returns how many rows
// were imported.
func (s *DataService) ImportStudents(ctx context.Context, path string) (int, error) {
	table, err := s.parseFile(path)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, row := range table.Rows {
		if len(row) < 4 {
			continue
		}
		req := CreateStudentRequest{
			RegNo:    strings.TrimSpace(row[0]),
			FullName: strings.TrimSpace(row[1]),
			Email:    strings.TrimSpace(row[2]),
		}
		if _, err := s.students.Create(ctx, req); err != nil {
			s.logger.Warn("student row skipped", zap.String("reg_no", req.RegNo), zap.Error(err))
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(row[3]), "true") {
			if _, err := s.students.Deactivate(ctx, req.RegNo); err != nil {
				s.logger.Warn("student deactivation failed", zap.String("reg_no", req.RegNo), zap.Error(err))
			}
		}
		imported++
	}
	return imported, nil
}

// ImportCourses loads catalog entries from a CSV file.
func (s *DataService) ImportCourses(ctx context.Context, path string) (int, error) {
	table, err := s.parseFile(path)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, row := range table.Rows {
		if len(row) < 6 {
			continue
		}
		credits, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			s.logger.Warn("course row skipped", zap.String("code", row[0]), zap.Error(err))
			continue
		}
		req := CourseRequest{
			Code:       strings.TrimSpace(row[0]),
			Title:      strings.TrimSpace(row[1]),
			Credits:    credits,
			Instructor: strings.TrimSpace(row[3]),
			Semester:   strings.TrimSpace(row[4]),
			Department: strings.TrimSpace(row[5]),
		}
		if _, err := s.courses.Create(ctx, req); err != nil {
			s.logger.Warn("course row skipped", zap.String("code", req.Code), zap.Error(err))
			continue
		}
		imported++
	}
	return imported, nil
}

// ImportEnrollments replays enrollment rows through the engine. The stored
// date column is informational; imported enrollments are stamped at import
// time, and grades are re-recorded through the engine.
func (s *DataService) ImportEnrollments(ctx context.Context, path string) (int, error) {
	table, err := s.parseFile(path)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, row := range table.Rows {
		if len(row) < 4 {
			continue
		}
		req := EnrollRequest{
			StudentRegNo: strings.TrimSpace(row[0]),
			CourseCode:   strings.TrimSpace(row[1]),
		}
		if _, err := s.enrollments.Enroll(ctx, req); err != nil {
			s.logger.Warn("enrollment row skipped",
				zap.String("reg_no", req.StudentRegNo),
				zap.String("course", req.CourseCode),
				zap.Error(err))
			continue
		}
		if grade := strings.TrimSpace(row[3]); grade != "" {
			gradeReq := RecordGradeRequest{StudentRegNo: req.StudentRegNo, CourseCode: req.CourseCode, Grade: grade}
			if err := s.enrollments.RecordGrade(ctx, gradeReq); err != nil {
				s.logger.Warn("grade column skipped",
					zap.String("reg_no", req.StudentRegNo),
					zap.String("course", req.CourseCode),
					zap.Error(err))
			}
		}
		imported++
	}
	return imported, nil
}

// ExportStudents writes every student to a CSV file.
func (s *DataService) ExportStudents(ctx context.Context, path string) error {
	students, _, err := s.studentList.List(models.StudentFilter{})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}

	table := export.Table{Headers: studentHeaders}
	for _, student := range students {
		table.Rows = append(table.Rows, []string{
			student.RegNo,
			student.FullName,
			student.Email,
			strconv.FormatBool(student.Active),
		})
	}
	return s.writeTable(table, path)
}

// ExportCourses writes every catalog entry to a CSV file.
func (s *DataService) ExportCourses(ctx context.Context, path string) error {
	courses, _, err := s.courseList.List(models.CourseFilter{})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}

	table := export.Table{Headers: courseHeaders}
	for _, course := range courses {
		table.Rows = append(table.Rows, []string{
			course.Code,
			course.Title,
			strconv.Itoa(course.Credits),
			course.Instructor,
			string(course.Semester),
			course.Department,
		})
	}
	return s.writeTable(table, path)
}

// ExportEnrollments writes every enrollment to a CSV file. The grade column
// is empty for ungraded enrollments.
func (s *DataService) ExportEnrollments(ctx context.Context, path string) error {
	table := export.Table{Headers: enrollmentHeaders}
	for _, enrollment := range s.enrollments.ListAll(ctx) {
		grade := ""
		if enrollment.Grade != nil {
			grade = string(*enrollment.Grade)
		}
		table.Rows = append(table.Rows, []string{
			enrollment.StudentRegNo,
			enrollment.CourseCode,
			enrollment.EnrolledAt.Format(enrollmentDateLayout),
			grade,
		})
	}
	return s.writeTable(table, path)
}

// ExportAll writes students.csv, courses.csv and enrollments.csv into the
// given directory, creating it when necessary.
func (s *DataService) ExportAll(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create export directory")
	}
	if err := s.ExportStudents(ctx, filepath.Join(dir, "students.csv")); err != nil {
		return err
	}
	if err := s.ExportCourses(ctx, filepath.Join(dir, "courses.csv")); err != nil {
		return err
	}
	return s.ExportEnrollments(ctx, filepath.Join(dir, "enrollments.csv"))
}

func (s *DataService) writeTable(table export.Table, path string) error {
	data, err := s.codec.Render(table)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to write %s", path))
	}
	return nil
}
