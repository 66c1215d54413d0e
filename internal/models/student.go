package models

import "time"

// Student represents a learner registered in the institution. The registration
// number is the immutable public identity; ID is an internal handle.
type Student struct {
	ID        string    `json:"id"`
	RegNo     string    `json:"reg_no"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search   string
	Active   *bool
	Page     int
	PageSize int
}
