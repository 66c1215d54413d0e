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

func newStudentService(t *testing.T) *StudentService {
	t.Helper()
	return NewStudentService(repository.NewStudentRepository(), nil, nil)
}

func TestCreateStudent(t *testing.T) {
	svc := newStudentService(t)

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		RegNo: "REG1", FullName: "Jane Doe", Email: "jane@campus.edu",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.Equal(t, "REG1", student.RegNo)
	assert.True(t, student.Active)
	assert.False(t, student.CreatedAt.IsZero())
}

func TestCreateStudentValidation(t *testing.T) {
	svc := newStudentService(t)

	_, err := svc.Create(context.Background(), CreateStudentRequest{
		RegNo: "REG1", FullName: "Jane Doe", Email: "not-an-email",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, errCode(t, err))
}

func TestCreateStudentDuplicateRegNo(t *testing.T) {
	svc := newStudentService(t)

	_, err := svc.Create(context.Background(), CreateStudentRequest{
		RegNo: "REG1", FullName: "Jane Doe", Email: "jane@campus.edu",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateStudentRequest{
		RegNo: "REG1", FullName: "John Roe", Email: "john@campus.edu",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, errCode(t, err))
}

func TestGetStudentNotFound(t *testing.T) {
	svc := newStudentService(t)

	_, err := svc.Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, errCode(t, err))
}

func TestUpdateStudent(t *testing.T) {
	svc := newStudentService(t)

	created, err := svc.Create(context.Background(), CreateStudentRequest{
		RegNo: "REG1", FullName: "Jane Doe", Email: "jane@campus.edu",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "REG1", UpdateStudentRequest{
		FullName: "Jane Q. Doe", Email: "jane.q@campus.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Jane Q. Doe", updated.FullName)
	assert.Equal(t, "jane.q@campus.edu", updated.Email)
}

func TestDeactivateStudentKeepsRecord(t *testing.T) {
	svc := newStudentService(t)

	_, err := svc.Create(context.Background(), CreateStudentRequest{
		RegNo: "REG1", FullName: "Jane Doe", Email: "jane@campus.edu",
	})
	require.NoError(t, err)

	deactivated, err := svc.Deactivate(context.Background(), "REG1")
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	// Deactivation is a flag flip; the record stays retrievable.
	student, err := svc.Get(context.Background(), "REG1")
	require.NoError(t, err)
	assert.False(t, student.Active)
}

func TestListStudentsFilters(t *testing.T) {
	svc := newStudentService(t)
	ctx := context.Background()

	for _, req := range []CreateStudentRequest{
		{RegNo: "REG1", FullName: "Jane Doe", Email: "jane@campus.edu"},
		{RegNo: "REG2", FullName: "John Roe", Email: "john@campus.edu"},
		{RegNo: "REG3", FullName: "Ada Byron", Email: "ada@campus.edu"},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}
	_, err := svc.Deactivate(ctx, "REG3")
	require.NoError(t, err)

	students, pagination, err := svc.List(ctx, models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, students, 3)
	assert.Equal(t, 3, pagination.TotalCount)
	assert.Equal(t, 1, pagination.Page)

	active := true
	students, pagination, err = svc.List(ctx, models.StudentFilter{Active: &active})
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.Equal(t, 2, pagination.TotalCount)

	students, _, err = svc.List(ctx, models.StudentFilter{Search: "doe"})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "REG1", students[0].RegNo)
}
