package model

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Domain       string         `gorm:"size:100;index" json:"domain"`
	Status       CourseStatus   `gorm:"size:20;default:'draft';index" json:"status"`
	InstructorID uint           `gorm:"index" json:"instructorId"`
	Thumbnail    string         `gorm:"size:255" json:"thumbnail"`
	Modules      []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model CourseModule
type CourseModule struct {
	BaseModel
	CourseID    uint     `gorm:"index;not null" json:"courseId"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Order       int      `gorm:"default:0" json:"order"`
	Lessons     []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

type LessonKind string

const (
	LessonVideo   LessonKind = "video"
	LessonPDF     LessonKind = "pdf"
	LessonArticle LessonKind = "article"
)

// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID   uint       `gorm:"index;not null" json:"moduleId"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	Kind       LessonKind `gorm:"size:20;default:'video'" json:"kind"`
	ContentURL string     `gorm:"size:255" json:"contentUrl"`
	Duration   int        `gorm:"default:0" json:"duration"` // seconds, probed from the video on upload
	Order      int        `gorm:"default:0" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}
