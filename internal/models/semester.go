package models

import (
	"fmt"
	"strings"
)

// Semester is one of the three academic terms in the academic year.
type Semester string

const (
	SemesterSpring Semester = "SPRING"
	SemesterSummer Semester = "SUMMER"
	SemesterFall   Semester = "FALL"
)

// Semesters lists all terms in academic-year order.
var Semesters = []Semester{SemesterSpring, SemesterSummer, SemesterFall}

// ParseSemester maps free-form text onto the fixed enumeration.
func ParseSemester(raw string) (Semester, error) {
	switch Semester(strings.ToUpper(strings.TrimSpace(raw))) {
	case SemesterSpring:
		return SemesterSpring, nil
	case SemesterSummer:
		return SemesterSummer, nil
	case SemesterFall:
		return SemesterFall, nil
	default:
		return "", fmt.Errorf("unrecognized semester %q", raw)
	}
}

// Ordinal returns the term's position within the academic year, used for
// transcript ordering.
func (s Semester) Ordinal() int {
	switch s {
	case SemesterSpring:
		return 0
	case SemesterSummer:
		return 1
	case SemesterFall:
		return 2
	default:
		return len(Semesters)
	}
}

// Description returns the display name of the term.
func (s Semester) Description() string {
	switch s {
	case SemesterSpring:
		return "Spring Semester"
	case SemesterSummer:
		return "Summer Semester"
	case SemesterFall:
		return "Fall Semester"
	default:
		return string(s)
	}
}
