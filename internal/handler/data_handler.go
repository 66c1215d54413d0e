package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
	"github.com/noah-isme/ccrm-api/pkg/response"
)

type dataService interface {
	ImportStudents(ctx context.Context, path string) (int, error)
	ImportCourses(ctx context.Context, path string) (int, error)
	ImportEnrollments(ctx context.Context, path string) (int, error)
	ExportAll(ctx context.Context, dir string) error
}

// ImportRequest selects a dataset and the CSV file to load it from.
type ImportRequest struct {
	Type string `json:"type" binding:"required"`
	Path string `json:"path" binding:"required"`
}

// ExportRequest names the directory receiving the full CSV export.
type ExportRequest struct {
	Dir string `json:"dir" binding:"required"`
}

// DataHandler exposes CSV import/export.
type DataHandler struct {
	data dataService
}

// NewDataHandler constructs DataHandler.
func NewDataHandler(data dataService) *DataHandler {
	return &DataHandler{data: data}
}

// Import godoc
// @Summary Import a dataset from a CSV file
// @Tags Data
// @Accept json
// @Produce json
// @Param payload body handler.ImportRequest true "Import payload"
// @Success 200 {object} response.Envelope
// @Router /data/import [post]
func (h *DataHandler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	var (
		imported int
		err      error
	)
	switch req.Type {
	case "students":
		imported, err = h.data.ImportStudents(c.Request.Context(), req.Path)
	case "courses":
		imported, err = h.data.ImportCourses(c.Request.Context(), req.Path)
	case "enrollments":
		imported, err = h.data.ImportEnrollments(c.Request.Context(), req.Path)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "type must be students, courses or enrollments"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"type": req.Type, "imported": imported}, nil)
}

// Export godoc
// @Summary Export all datasets as CSV files
// @Tags Data
// @Accept json
// @Produce json
// @Param payload body handler.ExportRequest true "Export payload"
// @Success 200 {object} response.Envelope
// @Router /data/export [post]
func (h *DataHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.data.ExportAll(c.Request.Context(), req.Dir); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"dir": req.Dir}, nil)
}
