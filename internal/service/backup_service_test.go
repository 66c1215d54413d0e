package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
	"github.com/noah-isme/ccrm-api/pkg/storage"
)

func newBackupFixture(t *testing.T) (*dataFixture, *BackupService) {
	t.Helper()
	f := newDataFixture(t)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return f, NewBackupService(store, f.data, nil, nil)
}

func seedBackupData(t *testing.T, f *dataFixture) {
	t.Helper()
	ctx := context.Background()
	_, err := f.students.Create(ctx, CreateStudentRequest{RegNo: "REG1", FullName: "Jane Doe", Email: "jane@campus.edu"})
	require.NoError(t, err)
	_, err = f.courses.Create(ctx, courseRequest("CS101"))
	require.NoError(t, err)
	_, err = f.engine.Enroll(ctx, EnrollRequest{StudentRegNo: "REG1", CourseCode: "CS101"})
	require.NoError(t, err)
}

func TestCreateBackup(t *testing.T) {
	f, backups := newBackupFixture(t)
	seedBackupData(t, f)

	path, err := backups.Create(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "backup_"))

	for _, name := range []string{"students.csv", "courses.csv", "enrollments.csv"} {
		info, err := os.Stat(filepath.Join(path, name))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestBackupSizeAndTree(t *testing.T) {
	f, backups := newBackupFixture(t)
	seedBackupData(t, f)

	ctx := context.Background()
	path, err := backups.Create(ctx)
	require.NoError(t, err)

	size, err := backups.Size(ctx, path)
	require.NoError(t, err)
	assert.Greater(t, size, int64(0))

	entries, err := backups.Tree(ctx, path)
	require.NoError(t, err)
	assert.Contains(t, entries, "students.csv")
	assert.Contains(t, entries, "courses.csv")
	assert.Contains(t, entries, "enrollments.csv")

	// With no argument both operate on the backup root; the snapshot directory
	// shows up as a subtree.
	rootSize, err := backups.Size(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, size, rootSize)

	rootEntries, err := backups.Tree(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, rootEntries, filepath.Base(path)+"/")
}

func TestLatestBackup(t *testing.T) {
	f, backups := newBackupFixture(t)
	seedBackupData(t, f)

	ctx := context.Background()
	_, err := backups.Latest(ctx)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, errCode(t, err))

	path, err := backups.Create(ctx)
	require.NoError(t, err)

	latest, err := backups.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, path, latest)
}
