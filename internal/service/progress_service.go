package service

import (
	"errors"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressService is both the lesson progress tracker and the course-level
// aggregator: it records per-lesson watch state and recomputes enrollment
// progress, certification and XP whenever that state changes.
type ProgressService struct {
	CourseRepo     *repository.CourseRepository
	ProgressRepo   *repository.ProgressRepository
	EnrollmentRepo *repository.EnrollmentRepository
	AssessmentRepo *repository.AssessmentRepository
	Certificates   *CertificateService
	XP             *XPService
}

func NewProgressService(
	courseRepo *repository.CourseRepository,
	progressRepo *repository.ProgressRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	assessmentRepo *repository.AssessmentRepository,
	certificates *CertificateService,
	xp *XPService,
) *ProgressService {
	return &ProgressService{
		CourseRepo:     courseRepo,
		ProgressRepo:   progressRepo,
		EnrollmentRepo: enrollmentRepo,
		AssessmentRepo: assessmentRepo,
		Certificates:   certificates,
		XP:             xp,
	}
}

// CourseProgress is the aggregator's view of one (user, course) pair.
// CompletedAssessments is informational for clients; the percentage is driven
// by lessons only, assessments gate certification.
type CourseProgress struct {
	Percentage           int    `json:"percentage"`
	TotalLessons         int    `json:"totalLessons"`
	CompletedLessons     []uint `json:"completedLessons"`
	CompletedAssessments []uint `json:"completedAssessments"`
}

// RecordLessonProgress upserts the (user, lesson) watch state. A record that
// already reached completed keeps its status and CompletedAt; only watch time
// may still rise. The first transition to completed awards the lesson XP
// bonus and triggers a course recompute.
func (s *ProgressService) RecordLessonProgress(userID, lessonID uint, watchTime int, completed bool) (*model.LessonProgress, error) {
	if watchTime < 0 {
		return nil, util.ErrInvalidInput
	}

	lesson, err := s.CourseRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, err
	}

	newlyCompleted, err := s.upsertProgress(userID, lessonID, watchTime, completed)
	if err != nil {
		return nil, err
	}

	if newlyCompleted {
		if _, err := s.XP.Award(userID, XPLessonCompleteBonus, XPEventLessonComplete); err != nil {
			logger.Log.Error("failed to award lesson completion xp",
				zap.Uint("userId", userID), zap.Uint("lessonId", lessonID), zap.Error(err))
		}
		s.onLessonCompleted(userID, lesson.ModuleID)
	}

	return s.ProgressRepo.FindByUserAndLesson(userID, lessonID)
}

// upsertProgress returns whether this call made the first transition to
// completed. The create path relies on the unique (user, lesson) index; a
// concurrent first write degrades into the update path, whose conditional
// UPDATE is the compare-and-set that picks exactly one winner.
func (s *ProgressService) upsertProgress(userID, lessonID uint, watchTime int, completed bool) (bool, error) {
	existing, err := s.ProgressRepo.FindByUserAndLesson(userID, lessonID)
	if err != nil {
		return false, err
	}

	if existing == nil {
		p := &model.LessonProgress{
			UserID:    userID,
			LessonID:  lessonID,
			Status:    model.ProgressInProgress,
			WatchTime: watchTime,
		}
		if completed {
			now := time.Now()
			p.Status = model.ProgressCompleted
			p.CompletedAt = &now
		}
		err := s.ProgressRepo.Create(p)
		if err == nil {
			return completed, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, err
		}
		// Someone else created the row first; fall through to update.
	}

	if completed {
		return s.ProgressRepo.MarkCompleted(userID, lessonID, watchTime, time.Now())
	}
	return false, s.ProgressRepo.RaiseWatchTime(userID, lessonID, watchTime)
}

// onLessonCompleted recomputes the owning course. Failures are logged, not
// propagated: the lesson record is already persisted and the next recompute
// resumes whatever step was missed.
func (s *ProgressService) onLessonCompleted(userID, moduleID uint) {
	module, err := s.CourseRepo.FindModuleByID(moduleID)
	if err != nil {
		logger.Log.Error("failed to resolve module for recompute",
			zap.Uint("moduleId", moduleID), zap.Error(err))
		return
	}
	if _, err := s.RecomputeCourseProgress(userID, module.CourseID); err != nil {
		logger.Log.Error("course progress recompute failed",
			zap.Uint("userId", userID), zap.Uint("courseId", module.CourseID), zap.Error(err))
	}
}

// RecomputeCourseProgress derives the course percentage from the full set of
// lesson progress rows each call, never from deltas, so repeated or
// concurrent recomputations converge. At 100% it stamps the enrollment once
// and, when every assessment under the course has a passing attempt, requests
// certificate issuance; the course-completion bonus is tied to the
// certificate row being newly created so it is awarded exactly once.
func (s *ProgressService) RecomputeCourseProgress(userID, courseID uint) (*CourseProgress, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}

	lessonIDs, err := s.CourseRepo.ListLessonIDsByCourse(courseID)
	if err != nil {
		return nil, err
	}

	completedLessons, err := s.ProgressRepo.ListCompletedLessonIDs(userID, lessonIDs)
	if err != nil {
		return nil, err
	}

	percentage := util.RoundPercent(len(completedLessons), len(lessonIDs))

	assessments, err := s.AssessmentRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	assessmentIDs := make([]uint, len(assessments))
	for i, a := range assessments {
		assessmentIDs[i] = a.ID
	}
	passedAssessments, err := s.AssessmentRepo.ListPassedAssessmentIDs(userID, assessmentIDs)
	if err != nil {
		return nil, err
	}

	result := &CourseProgress{
		Percentage:           percentage,
		TotalLessons:         len(lessonIDs),
		CompletedLessons:     completedLessons,
		CompletedAssessments: passedAssessments,
	}

	// Without an enrollment there is nothing to write back; return the
	// computed view (e.g. instructors previewing their own course).
	if _, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID); err != nil {
		if errors.Is(err, util.ErrEnrollmentNotFound) {
			return result, nil
		}
		return nil, err
	}

	if err := s.EnrollmentRepo.UpdateProgress(userID, courseID, percentage); err != nil {
		return nil, err
	}

	if percentage == 100 && len(lessonIDs) > 0 {
		if err := s.EnrollmentRepo.MarkCompleted(userID, courseID, time.Now()); err != nil {
			return nil, err
		}
		if err := s.handleCourseCompletion(userID, course); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// handleCourseCompletion verifies the assessment gate and mints the
// certificate. Issue is idempotent, so replays after a partial failure only
// perform the missing steps.
func (s *ProgressService) handleCourseCompletion(userID uint, course *model.Course) error {
	allPassed, err := s.AssessmentRepo.AllAssessmentsPassed(userID, course.ID)
	if err != nil {
		return err
	}
	if !allPassed {
		return nil
	}

	_, created, err := s.Certificates.Issue(userID, course)
	if err != nil {
		return err
	}
	if created {
		if _, err := s.XP.Award(userID, XPCourseCompleteBonus, XPEventCourseComplete); err != nil {
			return err
		}
	}
	return nil
}
