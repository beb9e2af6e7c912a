package service

import (
	"errors"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
)

// ForumService covers per-course discussion threads, replies and upvotes.
type ForumService struct {
	ForumRepo      *repository.ForumRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewForumService(
	forumRepo *repository.ForumRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
) *ForumService {
	return &ForumService{
		ForumRepo:      forumRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

type ThreadRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type ReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// canPost requires the actor to be enrolled in the course, or to be its
// instructor (or an admin) answering questions.
func (s *ForumService) canPost(actor *util.Claims, course *model.Course) (bool, error) {
	if actor.Role == model.Admin || course.InstructorID == actor.UserID {
		return true, nil
	}
	_, err := s.EnrollmentRepo.FindByUserAndCourse(actor.UserID, course.ID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, util.ErrEnrollmentNotFound) {
		return false, nil
	}
	return false, err
}

func (s *ForumService) CreateThread(actor *util.Claims, courseID uint, req ThreadRequest) (*model.ForumThread, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	ok, err := s.canPost(actor, course)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrPermissionDenied
	}

	thread := &model.ForumThread{
		CourseID: courseID,
		AuthorID: actor.UserID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := s.ForumRepo.CreateThread(thread); err != nil {
		return nil, err
	}
	return thread, nil
}

func (s *ForumService) ListThreads(courseID uint, page, limit int) ([]model.ForumThread, int64, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, 0, err
	}
	return s.ForumRepo.ListThreadsByCourse(courseID, page, limit)
}

func (s *ForumService) GetThread(threadID uint) (*model.ForumThread, []model.ForumReply, error) {
	thread, err := s.ForumRepo.FindThreadByID(threadID)
	if err != nil {
		return nil, nil, err
	}
	replies, err := s.ForumRepo.ListReplies(threadID)
	if err != nil {
		return nil, nil, err
	}
	return thread, replies, nil
}

func (s *ForumService) Reply(actor *util.Claims, threadID uint, req ReplyRequest) (*model.ForumReply, error) {
	thread, err := s.ForumRepo.FindThreadByID(threadID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(thread.CourseID)
	if err != nil {
		return nil, err
	}
	ok, err := s.canPost(actor, course)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrPermissionDenied
	}

	reply := &model.ForumReply{
		ThreadID: threadID,
		AuthorID: actor.UserID,
		Content:  req.Content,
	}
	if err := s.ForumRepo.CreateReply(reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// Upvote registers one vote per user per thread. Self-votes are rejected.
func (s *ForumService) Upvote(actor *util.Claims, threadID uint) (*model.ForumThread, error) {
	thread, err := s.ForumRepo.FindThreadByID(threadID)
	if err != nil {
		return nil, err
	}
	if thread.AuthorID == actor.UserID {
		return nil, util.ErrOwnThreadVote
	}
	if err := s.ForumRepo.AddVote(threadID, actor.UserID); err != nil {
		return nil, err
	}
	return s.ForumRepo.FindThreadByID(threadID)
}
