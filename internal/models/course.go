package models

// Course represents a course offering in the catalog, keyed by its immutable
// course code.
type Course struct {
	Code       string   `json:"code"`
	Title      string   `json:"title"`
	Credits    int      `json:"credits"`
	Instructor string   `json:"instructor"`
	Semester   Semester `json:"semester"`
	Department string   `json:"department"`
}

// CourseFilter provides filters for listing catalog entries.
type CourseFilter struct {
	Search     string
	Department string
	Semester   Semester
	Instructor string
	Page       int
	PageSize   int
}
