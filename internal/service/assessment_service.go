package service

import (
	"encoding/json"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"

	"go.uber.org/zap"
)

// AssessmentService grades submitted answer sets and keeps the append-only
// attempt log.
type AssessmentService struct {
	Repo       *repository.AssessmentRepository
	CourseRepo *repository.CourseRepository
	Progress   *ProgressService
	XP         *XPService
}

func NewAssessmentService(
	repo *repository.AssessmentRepository,
	courseRepo *repository.CourseRepository,
	progress *ProgressService,
	xp *XPService,
) *AssessmentService {
	return &AssessmentService{Repo: repo, CourseRepo: courseRepo, Progress: progress, XP: xp}
}

// SubmitResult is what the student sees after grading.
type SubmitResult struct {
	Score         int  `json:"score"`
	Passed        bool `json:"passed"`
	AttemptNumber int  `json:"attemptNumber"`
}

// StudentQuestion is the question view with the correct option stripped.
type StudentQuestion struct {
	ID      uint            `json:"id"`
	Content string          `json:"content"`
	Options json.RawMessage `json:"options"`
	Order   int             `json:"order"`
}

// StudentAssessment is the assessment view served to enrolled students.
type StudentAssessment struct {
	ID           uint              `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	PassingScore int               `json:"passingScore"`
	MaxAttempts  int               `json:"maxAttempts"`
	AttemptsUsed int64             `json:"attemptsUsed"`
	Questions    []StudentQuestion `json:"questions"`
}

func (s *AssessmentService) GetForStudent(userID, assessmentID uint) (*StudentAssessment, error) {
	a, err := s.Repo.FindByIDWithQuestions(assessmentID)
	if err != nil {
		return nil, err
	}

	used, err := s.Repo.CountAttempts(userID, assessmentID)
	if err != nil {
		return nil, err
	}

	view := &StudentAssessment{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		PassingScore: a.PassingScore,
		MaxAttempts:  a.MaxAttempts,
		AttemptsUsed: used,
		Questions:    make([]StudentQuestion, len(a.Questions)),
	}
	for i, q := range a.Questions {
		view.Questions[i] = StudentQuestion{
			ID:      q.ID,
			Content: q.Content,
			Options: q.Options,
			Order:   q.Order,
		}
	}
	return view, nil
}

// Submit grades the answer set against the assessment's questions. Unanswered
// questions count as incorrect; the percentage rounds half up, so identical
// answer sets always grade identically. The attempt is appended to the log
// regardless of outcome. The first passing attempt awards XP and triggers a
// course recompute; maxAttempts is enforced when set (> 0).
func (s *AssessmentService) Submit(userID, assessmentID uint, answers map[uint]int) (*SubmitResult, error) {
	if answers == nil {
		return nil, util.ErrInvalidInput
	}

	a, err := s.Repo.FindByIDWithQuestions(assessmentID)
	if err != nil {
		return nil, err
	}
	if len(a.Questions) == 0 {
		return nil, util.ErrAssessmentEmpty
	}

	attemptsUsed, err := s.Repo.CountAttempts(userID, assessmentID)
	if err != nil {
		return nil, err
	}
	if a.MaxAttempts > 0 && attemptsUsed >= int64(a.MaxAttempts) {
		return nil, util.ErrAttemptLimitReached
	}

	alreadyPassed, err := s.Repo.HasPassedAttempt(userID, assessmentID)
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, q := range a.Questions {
		if selected, ok := answers[q.ID]; ok && selected == q.CorrectOption {
			correct++
		}
	}

	score := util.RoundPercent(correct, len(a.Questions))
	passed := score >= a.PassingScore

	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return nil, util.ErrInvalidInput
	}

	attempt := &model.AssessmentAttempt{
		UserID:       userID,
		AssessmentID: assessmentID,
		Score:        score,
		Passed:       passed,
		Answers:      rawAnswers,
	}
	if err := s.Repo.CreateAttempt(attempt); err != nil {
		return nil, err
	}

	if passed && !alreadyPassed {
		if _, err := s.XP.Award(userID, XPAssessmentPassBonus, XPEventAssessmentPass); err != nil {
			logger.Log.Error("failed to award assessment pass xp",
				zap.Uint("userId", userID), zap.Uint("assessmentId", assessmentID), zap.Error(err))
		}
		s.onAssessmentPassed(userID, a.ModuleID)
	}

	return &SubmitResult{
		Score:         score,
		Passed:        passed,
		AttemptNumber: int(attemptsUsed) + 1,
	}, nil
}

// onAssessmentPassed asks the aggregator whether the pass unlocked course
// completion. Failures are logged; the attempt row is already persisted and
// the next recompute resumes the missing steps.
func (s *AssessmentService) onAssessmentPassed(userID, moduleID uint) {
	module, err := s.CourseRepo.FindModuleByID(moduleID)
	if err != nil {
		logger.Log.Error("failed to resolve module for recompute",
			zap.Uint("moduleId", moduleID), zap.Error(err))
		return
	}
	if _, err := s.Progress.RecomputeCourseProgress(userID, module.CourseID); err != nil {
		logger.Log.Error("course progress recompute failed",
			zap.Uint("userId", userID), zap.Uint("courseId", module.CourseID), zap.Error(err))
	}
}

func (s *AssessmentService) ListAttempts(userID, assessmentID uint) ([]model.AssessmentAttempt, error) {
	if _, err := s.Repo.FindByID(assessmentID); err != nil {
		return nil, err
	}
	return s.Repo.ListAttempts(userID, assessmentID)
}
