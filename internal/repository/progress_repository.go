package repository

import (
	"errors"
	"time"

	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndLesson(userID, lessonID uint) (*model.LessonProgress, error) {
	var p model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create relies on the (user_id, lesson_id) unique index; a concurrent first
// write surfaces as gorm.ErrDuplicatedKey for the caller to retry as update.
func (r *ProgressRepository) Create(p *model.LessonProgress) error {
	return r.DB.Create(p).Error
}

// MarkCompleted flips the row to completed iff it is not completed yet
// (compare-and-set on status). Returns true when this call made the
// transition, so two concurrent completions observe exactly one winner.
func (r *ProgressRepository) MarkCompleted(userID, lessonID uint, watchTime int, at time.Time) (bool, error) {
	res := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ? AND status <> ?", userID, lessonID, model.ProgressCompleted).
		Updates(map[string]interface{}{
			"status":       model.ProgressCompleted,
			"completed_at": at,
			"watch_time":   gorm.Expr("CASE WHEN watch_time < ? THEN ? ELSE watch_time END", watchTime, watchTime),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// RaiseWatchTime logs additional watch time without ever touching status or
// completed_at, and never lowers the recorded time.
func (r *ProgressRepository) RaiseWatchTime(userID, lessonID uint, watchTime int) error {
	return r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Update("watch_time", gorm.Expr("CASE WHEN watch_time < ? THEN ? ELSE watch_time END", watchTime, watchTime)).Error
}

func (r *ProgressRepository) ListCompletedLessonIDs(userID uint, lessonIDs []uint) ([]uint, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND status = ? AND lesson_id IN ?", userID, model.ProgressCompleted, lessonIDs).
		Pluck("lesson_id", &ids).Error
	return ids, err
}
