package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"

	"go.uber.org/zap"
)

type EnrollmentService struct {
	Repo       *repository.EnrollmentRepository
	CourseRepo *repository.CourseRepository
	Progress   *ProgressService
	XP         *XPService
}

func NewEnrollmentService(
	repo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	progress *ProgressService,
	xp *XPService,
) *EnrollmentService {
	return &EnrollmentService{Repo: repo, CourseRepo: courseRepo, Progress: progress, XP: xp}
}

// Enroll creates the unique (user, course) enrollment and awards the signup
// bonus. A second enroll for the same pair is a conflict, not a new row.
func (s *EnrollmentService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != model.CoursePublished {
		return nil, util.ErrCourseNotPublished
	}

	enrollment := &model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		IsActive: true,
	}
	if err := s.Repo.Create(enrollment); err != nil {
		return nil, err
	}

	if _, err := s.XP.Award(userID, XPEnrollBonus, XPEventEnroll); err != nil {
		logger.Log.Error("failed to award enrollment xp",
			zap.Uint("userId", userID), zap.Uint("courseId", courseID), zap.Error(err))
	}

	return enrollment, nil
}

// GetCourseProgress is the aggregator read path behind GET
// /courses/:id/progress. It recomputes from source of truth, so the response
// also repairs any missed write-back.
func (s *EnrollmentService) GetCourseProgress(userID, courseID uint) (*CourseProgress, error) {
	if _, err := s.Repo.FindByUserAndCourse(userID, courseID); err != nil {
		return nil, err
	}
	return s.Progress.RecomputeCourseProgress(userID, courseID)
}

func (s *EnrollmentService) ListMine(userID uint) ([]model.Enrollment, error) {
	return s.Repo.ListByUser(userID)
}
