package model

import "encoding/json"

// AssessmentAttempt is an append-only log entry: one graded submission of an
// assessment by a user. Rows are never mutated after creation; certification
// uses best-attempt semantics (any passed row counts).
// swagger:model AssessmentAttempt
type AssessmentAttempt struct {
	BaseModel
	UserID       uint            `gorm:"index:idx_user_assessment;not null" json:"userId"`
	AssessmentID uint            `gorm:"index:idx_user_assessment;not null" json:"assessmentId"`
	Score        int             `gorm:"default:0" json:"score"` // 0-100
	Passed       bool            `gorm:"default:false" json:"passed"`
	Answers      json.RawMessage `gorm:"type:json" json:"answers"` // questionID -> selected option index
}

func (AssessmentAttempt) TableName() string {
	return "assessment_attempts"
}
