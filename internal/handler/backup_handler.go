package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ccrm-api/pkg/response"
)

type backupService interface {
	Create(ctx context.Context) (string, error)
	Size(ctx context.Context, dir string) (int64, error)
	Tree(ctx context.Context, dir string) ([]string, error)
	Latest(ctx context.Context) (string, error)
}

// BackupHandler exposes the snapshot operations.
type BackupHandler struct {
	backups backupService
}

// NewBackupHandler constructs BackupHandler.
func NewBackupHandler(backups backupService) *BackupHandler {
	return &BackupHandler{backups: backups}
}

// Create godoc
// @Summary Write a timestamped backup of all data
// @Tags Backups
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /backups [post]
func (h *BackupHandler) Create(c *gin.Context) {
	path, err := h.backups.Create(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"path": path})
}

// Latest godoc
// @Summary Locate the most recent backup
// @Tags Backups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /backups/latest [get]
func (h *BackupHandler) Latest(c *gin.Context) {
	path, err := h.backups.Latest(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"path": path}, nil)
}

// Size godoc
// @Summary Measure a backup directory recursively
// @Tags Backups
// @Produce json
// @Param path query string false "Directory, defaults to the backup root"
// @Success 200 {object} response.Envelope
// @Router /backups/size [get]
func (h *BackupHandler) Size(c *gin.Context) {
	size, err := h.backups.Size(c.Request.Context(), c.Query("path"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"bytes": size}, nil)
}

// Tree godoc
// @Summary List a backup directory recursively
// @Tags Backups
// @Produce json
// @Param path query string false "Directory, defaults to the backup root"
// @Success 200 {object} response.Envelope
// @Router /backups/tree [get]
func (h *BackupHandler) Tree(c *gin.Context) {
	entries, err := h.backups.Tree(c.Request.Context(), c.Query("path"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
