package model

// swagger:model ForumThread
type ForumThread struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	AuthorID uint   `gorm:"index;not null" json:"authorId"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	Upvotes  int    `gorm:"default:0" json:"upvotes"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (ForumThread) TableName() string {
	return "forum_threads"
}

// swagger:model ForumReply
type ForumReply struct {
	BaseModel
	ThreadID uint   `gorm:"index;not null" json:"threadId"`
	AuthorID uint   `gorm:"index;not null" json:"authorId"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (ForumReply) TableName() string {
	return "forum_replies"
}

// ThreadVote records one upvote per (user, thread).
type ThreadVote struct {
	BaseModel
	ThreadID uint `gorm:"uniqueIndex:idx_thread_voter;not null" json:"threadId"`
	VoterID  uint `gorm:"uniqueIndex:idx_thread_voter;not null" json:"voterId"`
}

func (ThreadVote) TableName() string {
	return "thread_votes"
}
