package repository

import (
	"strings"
	"sync"

	"github.com/noah-isme/ccrm-api/internal/models"
)

// StudentRepository is the in-memory student directory, keyed by registration
// number. Listing follows insertion order so exports stay stable.
type StudentRepository struct {
	mu      sync.RWMutex
	byRegNo map[string]models.Student
	order   []string
}

// NewStudentRepository constructs an empty directory.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{byRegNo: make(map[string]models.Student)}
}

// Create stores a new student. Returns ErrDuplicate when the registration
// number is already taken.
func (r *StudentRepository) Create(student models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byRegNo[student.RegNo]; ok {
		return ErrDuplicate
	}
	r.byRegNo[student.RegNo] = student
	r.order = append(r.order, student.RegNo)
	return nil
}

// FindByRegNo returns the student with the given registration number.
func (r *StudentRepository) FindByRegNo(regNo string) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	student, ok := r.byRegNo[regNo]
	if !ok {
		return nil, ErrNotFound
	}
	return &student, nil
}

// List returns students matching the filter plus the unpaginated total.
func (r *StudentRepository) List(filter models.StudentFilter) ([]models.Student, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Student, 0, len(r.order))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, regNo := range r.order {
		student := r.byRegNo[regNo]
		if filter.Active != nil && student.Active != *filter.Active {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(student.FullName), search) &&
			!strings.Contains(strings.ToLower(student.RegNo), search) {
			continue
		}
		matched = append(matched, student)
	}

	total := len(matched)
	return paginate(matched, filter.Page, filter.PageSize), total, nil
}

// Update replaces the stored record. Returns ErrNotFound when absent.
func (r *StudentRepository) Update(student models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byRegNo[student.RegNo]; !ok {
		return ErrNotFound
	}
	r.byRegNo[student.RegNo] = student
	return nil
}

func paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
