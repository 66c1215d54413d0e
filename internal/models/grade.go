package models

import (
	"fmt"
	"strings"
)

// Grade is a letter grade on the institution's fixed scale.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
	GradeF Grade = "F"
)

type gradeInfo struct {
	points      float64
	description string
}

var gradeScale = map[Grade]gradeInfo{
	GradeS: {10.0, "Outstanding"},
	GradeA: {9.0, "Excellent"},
	GradeB: {8.0, "Very Good"},
	GradeC: {7.0, "Good"},
	GradeD: {6.0, "Fair"},
	GradeE: {5.0, "Pass"},
	GradeF: {0.0, "Fail"},
}

// ParseGrade maps free-form text onto the fixed scale.
func ParseGrade(raw string) (Grade, error) {
	g := Grade(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := gradeScale[g]; !ok {
		return "", fmt.Errorf("unrecognized grade %q", raw)
	}
	return g, nil
}

// Points returns the grade-point value used in GPA computation.
func (g Grade) Points() float64 {
	return gradeScale[g].points
}

// Description returns the display name of the grade.
func (g Grade) Description() string {
	return gradeScale[g].description
}
