package repository

import (
	"errors"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Create relies on the (user_id, course_id) unique index: a concurrent
// duplicate enroll surfaces as ErrAlreadyEnrolled.
func (r *EnrollmentRepository) Create(e *model.Enrollment) error {
	err := r.DB.Create(e).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrAlreadyEnrolled
	}
	return err
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEnrollmentNotFound
	}
	return &e, err
}

func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Preload("Course").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at desc").
		Find(&enrollments).Error
	return enrollments, err
}

// UpdateProgress writes the recomputed percentage with a monotonic guard: a
// stale recomputation can never lower the stored value.
func (r *EnrollmentRepository) UpdateProgress(userID, courseID uint, progress int) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND progress < ?", userID, courseID, progress).
		Update("progress", progress).Error
}

// MarkCompleted stamps completed_at exactly once.
func (r *EnrollmentRepository) MarkCompleted(userID, courseID uint, at time.Time) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND completed_at IS NULL", userID, courseID).
		Update("completed_at", at).Error
}

func (r *EnrollmentRepository) CourseHasEnrollments(courseID uint) (bool, error) {
	var n int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id = ? AND is_active = ?", courseID, true).
		Count(&n).Error
	return n > 0, err
}
