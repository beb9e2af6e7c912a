package repository

import (
	"errors"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type ForumRepository struct {
	DB *gorm.DB
}

func NewForumRepository(db *gorm.DB) *ForumRepository {
	return &ForumRepository{DB: db}
}

func (r *ForumRepository) CreateThread(t *model.ForumThread) error {
	return r.DB.Create(t).Error
}

func (r *ForumRepository) FindThreadByID(id uint) (*model.ForumThread, error) {
	var t model.ForumThread
	err := r.DB.Preload("Author").First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrThreadNotFound
	}
	return &t, err
}

func (r *ForumRepository) ListThreadsByCourse(courseID uint, page, limit int) ([]model.ForumThread, int64, error) {
	var threads []model.ForumThread
	var total int64

	query := r.DB.Model(&model.ForumThread{}).Where("course_id = ?", courseID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Author").
		Order("upvotes desc, created_at desc").
		Offset(offset).Limit(limit).
		Find(&threads).Error
	return threads, total, err
}

func (r *ForumRepository) CreateReply(reply *model.ForumReply) error {
	return r.DB.Create(reply).Error
}

func (r *ForumRepository) ListReplies(threadID uint) ([]model.ForumReply, error) {
	var replies []model.ForumReply
	err := r.DB.Preload("Author").
		Where("thread_id = ?", threadID).
		Order("created_at asc").
		Find(&replies).Error
	return replies, err
}

// AddVote inserts the vote and bumps the counter in one transaction; the
// unique (thread_id, voter_id) index rejects double voting.
func (r *ForumRepository) AddVote(threadID, voterID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		vote := &model.ThreadVote{ThreadID: threadID, VoterID: voterID}
		if err := tx.Create(vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrAlreadyVoted
			}
			return err
		}
		return tx.Model(&model.ForumThread{}).
			Where("id = ?", threadID).
			Update("upvotes", gorm.Expr("upvotes + 1")).Error
	})
}
