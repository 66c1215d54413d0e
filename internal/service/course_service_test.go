package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/internal/repository"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

func newCourseService(t *testing.T) *CourseService {
	t.Helper()
	return NewCourseService(repository.NewCourseRepository(), nil, nil)
}

func courseRequest(code string) CourseRequest {
	return CourseRequest{
		Code:       code,
		Title:      "Course " + code,
		Credits:    3,
		Instructor: "prof",
		Semester:   "FALL",
		Department: "CS",
	}
}

func TestCreateCourse(t *testing.T) {
	svc := newCourseService(t)

	course, err := svc.Create(context.Background(), courseRequest("CS101"))
	require.NoError(t, err)
	assert.Equal(t, "CS101", course.Code)
	assert.Equal(t, models.SemesterFall, course.Semester)
}

func TestCreateCourseNormalizesSemester(t *testing.T) {
	svc := newCourseService(t)

	req := courseRequest("CS101")
	req.Semester = " spring "
	course, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.SemesterSpring, course.Semester)
}

func TestCreateCourseInvalidSemester(t *testing.T) {
	svc := newCourseService(t)

	req := courseRequest("CS101")
	req.Semester = "WINTER"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidSemester.Code, errCode(t, err))
}

func TestCreateCourseRejectsNonPositiveCredits(t *testing.T) {
	svc := newCourseService(t)

	req := courseRequest("CS101")
	req.Credits = 0
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, errCode(t, err))
}

func TestCreateCourseDuplicateCode(t *testing.T) {
	svc := newCourseService(t)

	_, err := svc.Create(context.Background(), courseRequest("CS101"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), courseRequest("CS101"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, errCode(t, err))
}

func TestUpdateCoursePathCodeWins(t *testing.T) {
	svc := newCourseService(t)

	_, err := svc.Create(context.Background(), courseRequest("CS101"))
	require.NoError(t, err)

	req := courseRequest("OTHER")
	req.Title = "Renamed"
	updated, err := svc.Update(context.Background(), "CS101", req)
	require.NoError(t, err)
	assert.Equal(t, "CS101", updated.Code)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestDeleteCourse(t *testing.T) {
	svc := newCourseService(t)

	_, err := svc.Create(context.Background(), courseRequest("CS101"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "CS101"))

	_, err = svc.Get(context.Background(), "CS101")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, errCode(t, err))

	err = svc.Delete(context.Background(), "CS101")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, errCode(t, err))
}

func TestListCoursesFilters(t *testing.T) {
	svc := newCourseService(t)
	ctx := context.Background()

	fall := courseRequest("CS101")
	spring := courseRequest("MA201")
	spring.Semester = "SPRING"
	spring.Department = "MA"
	for _, req := range []CourseRequest{fall, spring} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	courses, pagination, err := svc.List(ctx, models.CourseFilter{}, "")
	require.NoError(t, err)
	assert.Len(t, courses, 2)
	assert.Equal(t, 2, pagination.TotalCount)

	courses, _, err = svc.List(ctx, models.CourseFilter{}, "spring")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "MA201", courses[0].Code)

	courses, _, err = svc.List(ctx, models.CourseFilter{Department: "MA"}, "")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "MA201", courses[0].Code)

	_, _, err = svc.List(ctx, models.CourseFilter{}, "WINTER")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidSemester.Code, errCode(t, err))
}
