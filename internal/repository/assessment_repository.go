package repository

import (
	"errors"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	return &a, err
}

func (r *AssessmentRepository) FindByIDWithQuestions(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.`order` asc")
		}).
		First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	return &a, err
}

func (r *AssessmentRepository) FindByModule(moduleID uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Where("module_id = ?", moduleID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	return &a, err
}

func (r *AssessmentRepository) CreateQuestion(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *AssessmentRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

// CreateAttempt appends to the attempt log; attempt rows are never updated.
func (r *AssessmentRepository) CreateAttempt(attempt *model.AssessmentAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AssessmentRepository) CountAttempts(userID, assessmentID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&model.AssessmentAttempt{}).
		Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		Count(&n).Error
	return n, err
}

func (r *AssessmentRepository) ListAttempts(userID, assessmentID uint) ([]model.AssessmentAttempt, error) {
	var attempts []model.AssessmentAttempt
	err := r.DB.Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		Order("created_at asc").
		Find(&attempts).Error
	return attempts, err
}

// HasPassedAttempt implements best-attempt semantics: any passed row counts.
func (r *AssessmentRepository) HasPassedAttempt(userID, assessmentID uint) (bool, error) {
	var n int64
	err := r.DB.Model(&model.AssessmentAttempt{}).
		Where("user_id = ? AND assessment_id = ? AND passed = ?", userID, assessmentID, true).
		Count(&n).Error
	return n > 0, err
}

// ListByCourse returns every assessment attached to the course's modules.
func (r *AssessmentRepository) ListByCourse(courseID uint) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.DB.Model(&model.Assessment{}).
		Joins("JOIN course_modules ON course_modules.id = assessments.module_id").
		Where("course_modules.course_id = ? AND course_modules.deleted_at IS NULL", courseID).
		Find(&assessments).Error
	return assessments, err
}

// ListPassedAssessmentIDs filters the given assessments down to those the
// user has at least one passed attempt for.
func (r *AssessmentRepository) ListPassedAssessmentIDs(userID uint, assessmentIDs []uint) ([]uint, error) {
	if len(assessmentIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.DB.Model(&model.AssessmentAttempt{}).
		Distinct("assessment_id").
		Where("user_id = ? AND passed = ? AND assessment_id IN ?", userID, true, assessmentIDs).
		Pluck("assessment_id", &ids).Error
	return ids, err
}

// AllAssessmentsPassed reports whether the user has a passing attempt for
// every assessment under the course. A course without assessments passes
// trivially.
func (r *AssessmentRepository) AllAssessmentsPassed(userID, courseID uint) (bool, error) {
	assessments, err := r.ListByCourse(courseID)
	if err != nil {
		return false, err
	}
	if len(assessments) == 0 {
		return true, nil
	}

	ids := make([]uint, len(assessments))
	for i, a := range assessments {
		ids[i] = a.ID
	}

	passed, err := r.ListPassedAssessmentIDs(userID, ids)
	if err != nil {
		return false, err
	}
	return len(passed) == len(ids), nil
}
