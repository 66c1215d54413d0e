package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/internal/repository"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

type dataFixture struct {
	students    *StudentService
	courses     *CourseService
	engine      *EnrollmentService
	data        *DataService
	studentRepo *repository.StudentRepository
	courseRepo  *repository.CourseRepository
}

func newDataFixture(t *testing.T) *dataFixture {
	t.Helper()
	studentRepo := repository.NewStudentRepository()
	courseRepo := repository.NewCourseRepository()
	enrollmentRepo := repository.NewEnrollmentRepository()

	students := NewStudentService(studentRepo, nil, nil)
	courses := NewCourseService(courseRepo, nil, nil)
	engine := NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, nil, nil, nil)
	data := NewDataService(students, courses, engine, studentRepo, courseRepo, nil)

	return &dataFixture{
		students:    students,
		courses:     courses,
		engine:      engine,
		data:        data,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
	}
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportStudents(t *testing.T) {
	f := newDataFixture(t)
	path := writeCSV(t, t.TempDir(), "students.csv",
		"regNo,fullName,email,status\n"+
			"REG1,Jane Doe,jane@campus.edu,true\n"+
			"REG2,John Roe,john@campus.edu,false\n"+
			"REG1,Dup Row,dup@campus.edu,true\n"+
			"REG3,No Email,not-an-email,true\n")

	imported, err := f.data.ImportStudents(context.Background(), path)
	require.NoError(t, err)
	// The duplicate and the invalid email are skipped, not fatal.
	assert.Equal(t, 2, imported)

	student, err := f.students.Get(context.Background(), "REG1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", student.FullName)
	assert.True(t, student.Active)

	student, err = f.students.Get(context.Background(), "REG2")
	require.NoError(t, err)
	assert.False(t, student.Active)
}

func TestImportStudentsMissingFile(t *testing.T) {
	f := newDataFixture(t)

	_, err := f.data.ImportStudents(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, errCode(t, err))
}

func TestImportCourses(t *testing.T) {
	f := newDataFixture(t)
	path := writeCSV(t, t.TempDir(), "courses.csv",
		"code,title,credits,instructor,semester,department\n"+
			"CS101,Intro to Programming,4,prof,FALL,CS\n"+
			"BAD1,Broken Credits,x,prof,FALL,CS\n"+
			"BAD2,Broken Semester,3,prof,WINTER,CS\n")

	imported, err := f.data.ImportCourses(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	course, err := f.courses.Get(context.Background(), "CS101")
	require.NoError(t, err)
	assert.Equal(t, 4, course.Credits)
	assert.Equal(t, models.SemesterFall, course.Semester)
}

func TestImportEnrollmentsReplaysThroughEngine(t *testing.T) {
	f := newDataFixture(t)
	ctx := context.Background()

	_, err := f.students.Create(ctx, CreateStudentRequest{RegNo: "REG1", FullName: "Jane Doe", Email: "jane@campus.edu"})
	require.NoError(t, err)
	_, err = f.courses.Create(ctx, courseRequest("CS101"))
	require.NoError(t, err)
	_, err = f.courses.Create(ctx, courseRequest("CS102"))
	require.NoError(t, err)

	path := writeCSV(t, t.TempDir(), "enrollments.csv",
		"studentRegNo,courseCode,enrollmentDate,grade\n"+
			"REG1,CS101,2025-01-10 09:00:00,A\n"+
			"REG1,CS102,2025-01-10 09:00:00,\n"+
			"REG1,CS101,2025-01-10 09:00:00,B\n"+ // duplicate pair, skipped
			"GHOST,CS101,2025-01-10 09:00:00,A\n") // unknown student, skipped

	imported, err := f.data.ImportEnrollments(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	enrollments := f.engine.ListForStudent(ctx, "REG1")
	require.Len(t, enrollments, 2)
	require.NotNil(t, enrollments[0].Grade)
	assert.Equal(t, models.GradeA, *enrollments[0].Grade)
	assert.Nil(t, enrollments[1].Grade)
}

func TestExportAllRoundTrip(t *testing.T) {
	f := newDataFixture(t)
	ctx := context.Background()

	_, err := f.students.Create(ctx, CreateStudentRequest{RegNo: "REG1", FullName: "Jane Doe", Email: "jane@campus.edu"})
	require.NoError(t, err)
	_, err = f.students.Create(ctx, CreateStudentRequest{RegNo: "REG2", FullName: "John Roe", Email: "john@campus.edu"})
	require.NoError(t, err)
	_, err = f.students.Deactivate(ctx, "REG2")
	require.NoError(t, err)
	_, err = f.courses.Create(ctx, courseRequest("CS101"))
	require.NoError(t, err)
	_, err = f.engine.Enroll(ctx, EnrollRequest{StudentRegNo: "REG1", CourseCode: "CS101"})
	require.NoError(t, err)
	require.NoError(t, f.engine.RecordGrade(ctx, RecordGradeRequest{StudentRegNo: "REG1", CourseCode: "CS101", Grade: "A"}))

	dir := t.TempDir()
	require.NoError(t, f.data.ExportAll(ctx, dir))

	raw, err := os.ReadFile(filepath.Join(dir, "students.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "regNo,fullName,email,status", lines[0])
	assert.Equal(t, "REG1,Jane Doe,jane@campus.edu,true", lines[1])
	assert.Equal(t, "REG2,John Roe,john@campus.edu,false", lines[2])

	// Loading the export into a fresh system reproduces the dataset.
	restored := newDataFixture(t)
	count, err := restored.data.ImportStudents(ctx, filepath.Join(dir, "students.csv"))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	count, err = restored.data.ImportCourses(ctx, filepath.Join(dir, "courses.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	count, err = restored.data.ImportEnrollments(ctx, filepath.Join(dir, "enrollments.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	gpa, err := restored.engine.GPA(ctx, "REG1")
	require.NoError(t, err)
	assert.InDelta(t, 9.0, gpa, 0.0001)

	student, err := restored.students.Get(ctx, "REG2")
	require.NoError(t, err)
	assert.False(t, student.Active)
}
