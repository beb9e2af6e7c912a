package model

import "time"

// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID    uint       `gorm:"uniqueIndex:idx_user_course;not null" json:"courseId"`
	Progress    int        `gorm:"default:0" json:"progress"` // 0-100, monotonically non-decreasing
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	Course      *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
