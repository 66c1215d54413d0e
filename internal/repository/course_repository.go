package repository

import (
	"strings"
	"sync"

	"github.com/noah-isme/ccrm-api/internal/models"
)

// CourseRepository is the in-memory course catalog, keyed by course code.
type CourseRepository struct {
	mu     sync.RWMutex
	byCode map[string]models.Course
	order  []string
}

// NewCourseRepository constructs an empty catalog.
func NewCourseRepository() *CourseRepository {
	return &CourseRepository{byCode: make(map[string]models.Course)}
}

// Create stores a new course. Returns ErrDuplicate when the code is taken.
func (r *CourseRepository) Create(course models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byCode[course.Code]; ok {
		return ErrDuplicate
	}
	r.byCode[course.Code] = course
	r.order = append(r.order, course.Code)
	return nil
}

// FindByCode returns the course with the given code.
func (r *CourseRepository) FindByCode(code string) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	course, ok := r.byCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	return &course, nil
}

// List returns catalog entries matching the filter plus the unpaginated total.
func (r *CourseRepository) List(filter models.CourseFilter) ([]models.Course, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Course, 0, len(r.order))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, code := range r.order {
		course := r.byCode[code]
		if filter.Department != "" && course.Department != filter.Department {
			continue
		}
		if filter.Semester != "" && course.Semester != filter.Semester {
			continue
		}
		if filter.Instructor != "" && course.Instructor != filter.Instructor {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(course.Title), search) &&
			!strings.Contains(strings.ToLower(course.Code), search) {
			continue
		}
		matched = append(matched, course)
	}

	total := len(matched)
	return paginate(matched, filter.Page, filter.PageSize), total, nil
}

// Update replaces the stored record. Returns ErrNotFound when absent.
func (r *CourseRepository) Update(course models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byCode[course.Code]; !ok {
		return ErrNotFound
	}
	r.byCode[course.Code] = course
	return nil
}

// Delete removes a course from the catalog. Returns ErrNotFound when absent.
func (r *CourseRepository) Delete(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byCode[code]; !ok {
		return ErrNotFound
	}
	delete(r.byCode, code)
	for i, c := range r.order {
		if c == code {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
