package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/ccrm-api/internal/models"
	"github.com/noah-isme/ccrm-api/internal/repository"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

type academicRecordReader interface {
	ListForStudent(ctx context.Context, regNo string) []models.Enrollment
	GPA(ctx context.Context, regNo string) (float64, error)
}

// TranscriptService composes deterministic transcript text from a student's
// academic history.
type TranscriptService struct {
	students studentReader
	courses  courseReader
	records  academicRecordReader
	logger   *zap.Logger
}

// NewTranscriptService constructs TranscriptService.
func NewTranscriptService(students studentReader, courses courseReader, records academicRecordReader, logger *zap.Logger) *TranscriptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptService{students: students, courses: courses, records: records, logger: logger}
}

type transcriptLine struct {
	code    string
	title   string
	credits int
	grade   string
	ordinal int
}

// Generate renders the transcript. Course blocks sort by semester then course
// code, so repeated calls on unchanged data are byte-identical regardless of
// enrollment order.
func (s *TranscriptService) Generate(ctx context.Context, regNo string) (string, error) {
	student, err := s.students.FindByRegNo(regNo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	lines := make([]transcriptLine, 0)
	for _, enrollment := range s.records.ListForStudent(ctx, regNo) {
		course, err := s.courses.FindByCode(enrollment.CourseCode)
		if err != nil {
			continue
		}
		grade := "Not Graded"
		if enrollment.Grade != nil {
			grade = string(*enrollment.Grade)
		}
		lines = append(lines, transcriptLine{
			code:    course.Code,
			title:   course.Title,
			credits: course.Credits,
			grade:   grade,
			ordinal: course.Semester.Ordinal(),
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].ordinal != lines[j].ordinal {
			return lines[i].ordinal < lines[j].ordinal
		}
		return lines[i].code < lines[j].code
	})

	gpa, err := s.records.GPA(ctx, regNo)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("ACADEMIC TRANSCRIPT\n")
	b.WriteString("==================\n\n")
	fmt.Fprintf(&b, "Student: %s (%s)\n", student.FullName, student.RegNo)
	b.WriteString("------------------\n\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "%s: %s\n", line.code, line.title)
		fmt.Fprintf(&b, "Credits: %d  Grade: %s\n", line.credits, line.grade)
		b.WriteString("\n")
	}
	b.WriteString("------------------\n")
	fmt.Fprintf(&b, "Cumulative GPA: %.2f\n", gpa)

	return b.String(), nil
}

// Print writes the transcript text to the given writer.
func (s *TranscriptService) Print(ctx context.Context, regNo string, w io.Writer) error {
	transcript, err := s.Generate(ctx, regNo)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, transcript); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to write transcript")
	}
	return nil
}

// GeneratePDF is a documented future extension point; it always refuses.
func (s *TranscriptService) GeneratePDF(ctx context.Context, regNo string) ([]byte, error) {
	return nil, appErrors.Clone(appErrors.ErrNotSupported, "transcript PDF generation is not implemented")
}
