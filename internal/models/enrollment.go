package models

import "time"

// Enrollment links one student to one course. At most one enrollment exists
// per (registration number, course code) pair at any time; the pair is the
// logical identity, ID is an internal handle. Grade stays nil until recorded.
type Enrollment struct {
	ID           string    `json:"id"`
	StudentRegNo string    `json:"student_reg_no"`
	CourseCode   string    `json:"course_code"`
	EnrolledAt   time.Time `json:"enrolled_at"`
	Grade        *Grade    `json:"grade,omitempty"`
}

// EnrollmentFilter scopes enrollment listings.
type EnrollmentFilter struct {
	StudentRegNo string
	CourseCode   string
}
