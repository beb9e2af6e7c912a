package model

import "encoding/json"

// swagger:model Assessment
type Assessment struct {
	BaseModel
	ModuleID     uint       `gorm:"uniqueIndex;not null" json:"moduleId"` // at most one assessment per module
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	PassingScore int        `gorm:"default:70" json:"passingScore"` // 0-100
	MaxAttempts  int        `gorm:"default:0" json:"maxAttempts"`   // 0 = unlimited
	Questions    []Question `gorm:"foreignKey:AssessmentID" json:"questions,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// swagger:model Question
type Question struct {
	BaseModel
	AssessmentID  uint            `gorm:"index;not null" json:"assessmentId"`
	Content       string          `gorm:"type:text;not null" json:"content"`
	Options       json.RawMessage `gorm:"type:json" json:"options"` // ordered list of option texts
	CorrectOption int             `gorm:"default:0" json:"-"`       // index into Options, hidden from students
	Order         int             `gorm:"default:0" json:"order"`
	Explanation   string          `gorm:"type:text" json:"explanation,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
