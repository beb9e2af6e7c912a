package model

import "time"

// Certificate asserts that a user finished a course. At most one row exists
// per (user, course); the row is immutable after creation. RecipientName and
// CourseTitle are snapshots taken at issuance so later renames do not alter
// issued certificates.
// swagger:model Certificate
type Certificate struct {
	BaseModel
	UserID        uint      `gorm:"uniqueIndex:idx_cert_user_course;not null" json:"userId"`
	CourseID      uint      `gorm:"uniqueIndex:idx_cert_user_course;not null" json:"courseId"`
	Serial        string    `gorm:"size:36;uniqueIndex;not null" json:"serial"`
	RecipientName string    `gorm:"size:100;not null" json:"recipientName"`
	CourseTitle   string    `gorm:"size:255;not null" json:"courseTitle"`
	ArtifactURL   string    `gorm:"size:255" json:"artifactUrl,omitempty"`
	IssuedAt      time.Time `json:"issuedAt"`
}

func (Certificate) TableName() string {
	return "certificates"
}
