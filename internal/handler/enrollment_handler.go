package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/internal/service"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
	"github.com/noah-isme/ccrm-api/pkg/response"
)

type enrollmentService interface {
	Enroll(ctx context.Context, req service.EnrollRequest) (*models.Enrollment, error)
	Unenroll(ctx context.Context, regNo, code string) error
	RecordGrade(ctx context.Context, req service.RecordGradeRequest) error
	ListForStudent(ctx context.Context, regNo string) []models.Enrollment
	ListForCourse(ctx context.Context, code string) []models.Enrollment
	GPA(ctx context.Context, regNo string) (float64, error)
}

// EnrollmentHandler exposes the enrollment engine endpoints.
type EnrollmentHandler struct {
	enrollments enrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Enroll godoc
// @Summary Enroll a student in a course
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.EnrollRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req service.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.enrollments.Enroll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Unenroll godoc
// @Summary Remove an enrollment
// @Tags Enrollments
// @Produce json
// @Param studentRegNo query string true "Registration number"
// @Param courseCode query string true "Course code"
// @Success 204 "No Content"
// @Router /enrollments [delete]
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	regNo := c.Query("studentRegNo")
	code := c.Query("courseCode")
	if regNo == "" || code == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentRegNo and courseCode are required"))
		return
	}
	if err := h.enrollments.Unenroll(c.Request.Context(), regNo, code); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RecordGrade godoc
// @Summary Record a grade on an enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.RecordGradeRequest true "Grade payload"
// @Success 204 "No Content"
// @Router /enrollments/grade [put]
func (h *EnrollmentHandler) RecordGrade(c *gin.Context) {
	var req service.RecordGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.enrollments.RecordGrade(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListForStudent godoc
// @Summary List a student's enrollments
// @Tags Enrollments
// @Produce json
// @Param regNo path string true "Registration number"
// @Success 200 {object} response.Envelope
// @Router /students/{regNo}/enrollments [get]
func (h *EnrollmentHandler) ListForStudent(c *gin.Context) {
	enrollments := h.enrollments.ListForStudent(c.Request.Context(), c.Param("regNo"))
	response.JSON(c, http.StatusOK, enrollments, nil)
}

// ListForCourse godoc
// @Summary List a course's enrollments
// @Tags Enrollments
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} response.Envelope
// @Router /courses/{code}/enrollments [get]
func (h *EnrollmentHandler) ListForCourse(c *gin.Context) {
	enrollments := h.enrollments.ListForCourse(c.Request.Context(), c.Param("code"))
	response.JSON(c, http.StatusOK, enrollments, nil)
}

// GPA godoc
// @Summary Get a student's cumulative GPA
// @Tags Enrollments
// @Produce json
// @Param regNo path string true "Registration number"
// @Success 200 {object} response.Envelope
// @Router /students/{regNo}/gpa [get]
func (h *EnrollmentHandler) GPA(c *gin.Context) {
	regNo := c.Param("regNo")
	gpa, err := h.enrollments.GPA(c.Request.Context(), regNo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"reg_no": regNo, "gpa": gpa}, nil)
}
