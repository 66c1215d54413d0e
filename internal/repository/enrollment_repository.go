package repository

import (
	"sync"

	"github.com/noah-isme/ccrm-api/internal/models"
)

type pairKey struct {
	regNo string
	code  string
}

// EnrollmentRepository is the single source of truth for enrollment records,
// indexed by the (registration number, course code) pair. Per-student and
// per-course views are queries over this set, not stored back-references.
// Records iterate in insertion order.
type EnrollmentRepository struct {
	mu     sync.RWMutex
	byPair map[pairKey]models.Enrollment
	order  []pairKey
}

// NewEnrollmentRepository constructs an empty enrollment set.
func NewEnrollmentRepository() *EnrollmentRepository {
	return &EnrollmentRepository{byPair: make(map[pairKey]models.Enrollment)}
}

// Insert stores a new enrollment. Returns ErrDuplicate when the pair already
// has a record.
func (r *EnrollmentRepository) Insert(enrollment models.Enrollment) error {
	key := pairKey{regNo: enrollment.StudentRegNo, code: enrollment.CourseCode}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byPair[key]; ok {
		return ErrDuplicate
	}
	r.byPair[key] = enrollment
	r.order = append(r.order, key)
	return nil
}

// FindByPair returns the enrollment for the pair, or ErrNotFound.
func (r *EnrollmentRepository) FindByPair(regNo, code string) (*models.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enrollment, ok := r.byPair[pairKey{regNo: regNo, code: code}]
	if !ok {
		return nil, ErrNotFound
	}
	return &enrollment, nil
}

// Delete removes the enrollment for the pair, reporting whether a record
// existed.
func (r *EnrollmentRepository) Delete(regNo, code string) bool {
	key := pairKey{regNo: regNo, code: code}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byPair[key]; !ok {
		return false
	}
	delete(r.byPair, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// SetGrade records (or replaces) the grade on the matching enrollment,
// reporting whether a record existed.
func (r *EnrollmentRepository) SetGrade(regNo, code string, grade models.Grade) bool {
	key := pairKey{regNo: regNo, code: code}

	r.mu.Lock()
	defer r.mu.Unlock()

	enrollment, ok := r.byPair[key]
	if !ok {
		return false
	}
	enrollment.Grade = &grade
	r.byPair[key] = enrollment
	return true
}

// List returns enrollments matching the filter in insertion order.
func (r *EnrollmentRepository) List(filter models.EnrollmentFilter) []models.Enrollment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Enrollment, 0, len(r.order))
	for _, key := range r.order {
		if filter.StudentRegNo != "" && key.regNo != filter.StudentRegNo {
			continue
		}
		if filter.CourseCode != "" && key.code != filter.CourseCode {
			continue
		}
		matched = append(matched, r.byPair[key])
	}
	return matched
}
