package repository

import (
	"errors"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) UpdateStatus(courseID uint, status model.CourseStatus) error {
	res := r.DB.Model(&model.Course{}).
		Where("id = ?", courseID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(courseID uint) error {
	return r.DB.Delete(&model.Course{}, courseID).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return &course, err
}

// FindByIDWithContent loads the course with its modules and lessons in
// display order.
func (r *CourseRepository) FindByIDWithContent(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_modules.`order` asc")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.`order` asc")
		}).
		First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return &course, err
}

func (r *CourseRepository) List(status model.CourseStatus, domain string, page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.DB.Model(&model.Course{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if domain != "" {
		query = query.Where("domain = ?", domain)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", instructorID).
		Order("created_at desc").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) CreateModule(m *model.CourseModule) error {
	return r.DB.Create(m).Error
}

func (r *CourseRepository) FindModuleByID(id uint) (*model.CourseModule, error) {
	var m model.CourseModule
	err := r.DB.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	return &m, err
}

func (r *CourseRepository) CreateLesson(l *model.Lesson) error {
	return r.DB.Create(l).Error
}

func (r *CourseRepository) UpdateLesson(l *model.Lesson) error {
	return r.DB.Save(l).Error
}

func (r *CourseRepository) FindLessonByID(id uint) (*model.Lesson, error) {
	var l model.Lesson
	err := r.DB.First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	return &l, err
}

// ListLessonIDsByCourse returns the ids of all lessons under the course's
// modules. Drives the progress percentage denominator.
func (r *CourseRepository) ListLessonIDsByCourse(courseID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ? AND course_modules.deleted_at IS NULL", courseID).
		Pluck("lessons.id", &ids).Error
	return ids, err
}

// NextLesson resolves "what do I watch next" relative to the given lesson:
// the next lesson in the same module by order, or the first lesson of the
// next module.
func (r *CourseRepository) NextLesson(lesson *model.Lesson) (*model.Lesson, error) {
	var next model.Lesson
	err := r.DB.Where("module_id = ? AND `order` > ?", lesson.ModuleID, lesson.Order).
		Order("`order` asc").
		First(&next).Error
	if err == nil {
		return &next, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	module, err := r.FindModuleByID(lesson.ModuleID)
	if err != nil {
		return nil, err
	}

	var nextModule model.CourseModule
	err = r.DB.Where("course_id = ? AND `order` > ?", module.CourseID, module.Order).
		Order("`order` asc").
		First(&nextModule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	err = r.DB.Where("module_id = ?", nextModule.ID).
		Order("`order` asc").
		First(&next).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	return &next, err
}
