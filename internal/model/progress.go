package model

import "time"

type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// LessonProgress is the per-user watch state of a single lesson. Once the
// status reaches completed it is terminal: later updates may raise WatchTime
// but never revert the status or CompletedAt.
// swagger:model LessonProgress
type LessonProgress struct {
	BaseModel
	UserID      uint           `gorm:"uniqueIndex:idx_user_lesson;not null" json:"userId"`
	LessonID    uint           `gorm:"uniqueIndex:idx_user_lesson;not null" json:"lessonId"`
	Status      ProgressStatus `gorm:"size:20;default:'not_started'" json:"status"`
	WatchTime   int            `gorm:"default:0" json:"watchTime"` // seconds
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
