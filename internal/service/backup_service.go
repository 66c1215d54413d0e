package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
	"github.com/noah-isme/ccrm-api/pkg/storage"
)

const backupTimestampLayout = "2006-01-02_15-04-05"

type dataExporter interface {
	ExportAll(ctx context.Context, dir string) error
}

type backupRecorder interface {
	BackupCreated()
}

// BackupService snapshots the full dataset into timestamped directories and
// exposes filesystem utilities over them. It never touches the engine's
// invariants; it only reads already-exported CSV.
type BackupService struct {
	store   *storage.LocalStorage
	data    dataExporter
	metrics backupRecorder
	logger  *zap.Logger
}

// NewBackupService constructs BackupService. metrics may be nil.
func NewBackupService(store *storage.LocalStorage, data dataExporter, metrics backupRecorder, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{store: store, data: data, metrics: metrics, logger: logger}
}

// Create exports all data into a fresh backup_<timestamp> directory and
// returns its path.
func (s *BackupService) Create(ctx context.Context) (string, error) {
	name := "backup_" + time.Now().Format(backupTimestampLayout)
	path, err := s.store.EnsureDir(name)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create backup directory")
	}
	if err := s.data.ExportAll(ctx, path); err != nil {
		return "", err
	}

	if s.metrics != nil {
		s.metrics.BackupCreated()
	}
	s.logger.Info("backup created", zap.String("path", path))
	return path, nil
}

// Size returns the recursive byte size of the given directory, defaulting to
// the backup root when dir is empty.
func (s *BackupService) Size(ctx context.Context, dir string) (int64, error) {
	size, err := s.store.DirSize(dir)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to measure directory")
	}
	return size, nil
}

// Tree returns the recursive listing of the given directory, defaulting to
// the backup root when dir is empty.
func (s *BackupService) Tree(ctx context.Context, dir string) ([]string, error) {
	entries, err := s.store.ListTree(dir)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list directory")
	}
	return entries, nil
}

// Latest returns the path of the most recent backup directory.
func (s *BackupService) Latest(ctx context.Context) (string, error) {
	name, err := s.store.LatestDir("backup_")
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to scan backups")
	}
	if name == "" {
		return "", appErrors.Clone(appErrors.ErrNotFound, "no backups exist yet")
	}
	return s.store.Path(name), nil
}
