package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ccrm-api/pkg/response"
)

type transcriptService interface {
	Generate(ctx context.Context, regNo string) (string, error)
	GeneratePDF(ctx context.Context, regNo string) ([]byte, error)
}

// TranscriptHandler exposes transcript rendering.
type TranscriptHandler struct {
	transcripts transcriptService
}

// NewTranscriptHandler constructs TranscriptHandler.
func NewTranscriptHandler(transcripts transcriptService) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts}
}

// Get godoc
// @Summary Render a student's transcript as plain text
// @Tags Transcripts
// @Produce plain
// @Param regNo path string true "Registration number"
// @Success 200 {string} string
// @Router /students/{regNo}/transcript [get]
func (h *TranscriptHandler) Get(c *gin.Context) {
	transcript, err := h.transcripts.Generate(c.Request.Context(), c.Param("regNo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, transcript)
}

// GetPDF godoc
// @Summary Render a student's transcript as PDF (future extension point)
// @Tags Transcripts
// @Produce json
// @Param regNo path string true "Registration number"
// @Failure 501 {object} response.Envelope
// @Router /students/{regNo}/transcript/pdf [get]
func (h *TranscriptHandler) GetPDF(c *gin.Context) {
	data, err := h.transcripts.GeneratePDF(c.Request.Context(), c.Param("regNo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", data)
}
