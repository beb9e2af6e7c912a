package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"

	"go.uber.org/zap"
)

// CatalogService owns the instructor-facing course/module/lesson/assessment
// authoring surface.
type CatalogService struct {
	CourseRepo     *repository.CourseRepository
	AssessmentRepo *repository.AssessmentRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Storage        *StorageService
}

func NewCatalogService(
	courseRepo *repository.CourseRepository,
	assessmentRepo *repository.AssessmentRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	storage *StorageService,
) *CatalogService {
	return &CatalogService{
		CourseRepo:     courseRepo,
		AssessmentRepo: assessmentRepo,
		EnrollmentRepo: enrollmentRepo,
		Storage:        storage,
	}
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Domain      string `json:"domain"`
	Thumbnail   string `json:"thumbnail"`
}

type ModuleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type LessonRequest struct {
	Title      string           `json:"title" binding:"required"`
	Kind       model.LessonKind `json:"kind"`
	ContentURL string           `json:"contentUrl"`
	Duration   int              `json:"duration"`
	Order      int              `json:"order"`
}

type AssessmentRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	PassingScore int    `json:"passingScore"`
	MaxAttempts  int    `json:"maxAttempts"`
}

type QuestionRequest struct {
	Content       string   `json:"content" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectOption int      `json:"correctOption"`
	Order         int      `json:"order"`
	Explanation   string   `json:"explanation"`
}

// canEdit allows the owning instructor and admins.
func canEdit(course *model.Course, actor *util.Claims) bool {
	if actor.Role == model.Admin {
		return true
	}
	return actor.Role == model.Instructor && course.InstructorID == actor.UserID
}

func (s *CatalogService) CreateCourse(actor *util.Claims, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		Domain:       req.Domain,
		Thumbnail:    req.Thumbnail,
		Status:       model.CourseDraft,
		InstructorID: actor.UserID,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CatalogService) UpdateCourse(actor *util.Claims, courseID uint, req CourseRequest) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !canEdit(course, actor) {
		return nil, util.ErrPermissionDenied
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Domain = req.Domain
	if req.Thumbnail != "" {
		course.Thumbnail = req.Thumbnail
	}
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CatalogService) PublishCourse(actor *util.Claims, courseID uint) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if !canEdit(course, actor) {
		return util.ErrPermissionDenied
	}
	return s.CourseRepo.UpdateStatus(courseID, model.CoursePublished)
}

// DeleteCourse never hard-deletes a course someone is enrolled in: it is
// archived instead, keeping enrollments and certificates resolvable.
func (s *CatalogService) DeleteCourse(actor *util.Claims, courseID uint) (archived bool, err error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return false, err
	}
	if !canEdit(course, actor) {
		return false, util.ErrPermissionDenied
	}

	hasEnrollments, err := s.EnrollmentRepo.CourseHasEnrollments(courseID)
	if err != nil {
		return false, err
	}
	if hasEnrollments {
		return true, s.CourseRepo.UpdateStatus(courseID, model.CourseArchived)
	}
	return false, s.CourseRepo.Delete(courseID)
}

func (s *CatalogService) GetCourse(courseID uint) (*model.Course, error) {
	return s.CourseRepo.FindByIDWithContent(courseID)
}

func (s *CatalogService) ListPublished(domain string, page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.List(model.CoursePublished, domain, page, limit)
}

func (s *CatalogService) ListByInstructor(instructorID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByInstructor(instructorID)
}

func (s *CatalogService) AddModule(actor *util.Claims, courseID uint, req ModuleRequest) (*model.CourseModule, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !canEdit(course, actor) {
		return nil, util.ErrPermissionDenied
	}

	m := &model.CourseModule{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.CourseRepo.CreateModule(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CatalogService) AddLesson(actor *util.Claims, moduleID uint, req LessonRequest) (*model.Lesson, error) {
	module, err := s.CourseRepo.FindModuleByID(moduleID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return nil, err
	}
	if !canEdit(course, actor) {
		return nil, util.ErrPermissionDenied
	}

	kind := req.Kind
	if kind == "" {
		kind = model.LessonVideo
	}

	lesson := &model.Lesson{
		ModuleID:   moduleID,
		Title:      req.Title,
		Kind:       kind,
		ContentURL: req.ContentURL,
		Duration:   req.Duration,
		Order:      req.Order,
	}
	if err := s.CourseRepo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// UploadLessonVideo stores the uploaded file and probes it for duration so
// clients can show lesson length without loading the video.
func (s *CatalogService) UploadLessonVideo(ctx context.Context, actor *util.Claims, lessonID uint, file *multipart.FileHeader) (*model.Lesson, error) {
	lesson, err := s.CourseRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, err
	}
	module, err := s.CourseRepo.FindModuleByID(lesson.ModuleID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return nil, err
	}
	if !canEdit(course, actor) {
		return nil, util.ErrPermissionDenied
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, util.ErrInvalidInput
	}

	// Spool to a temp file so ffprobe can inspect it before upload.
	tmp, err := os.CreateTemp("", "lesson-upload-*"+ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	if _, err := tmp.ReadFrom(src); err != nil {
		return nil, err
	}

	if info, err := util.GetVideoInfo(tmp.Name()); err == nil {
		lesson.Duration = int(info.Duration)
	} else {
		logger.Log.Warn("video probe failed, keeping configured duration",
			zap.Uint("lessonId", lessonID), zap.Error(err))
	}

	filename := fmt.Sprintf("lessons/%d/%d%s", module.CourseID, lessonID, ext)
	url, err := s.Storage.UploadFile(ctx, filename, tmp.Name(), util.MimeVideo+strings.TrimPrefix(ext, "."))
	if err != nil {
		return nil, err
	}

	lesson.Kind = model.LessonVideo
	lesson.ContentURL = url
	if err := s.CourseRepo.UpdateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CatalogService) AddAssessment(actor *util.Claims, moduleID uint, req AssessmentRequest) (*model.Assessment, error) {
	module, err := s.CourseRepo.FindModuleByID(moduleID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return nil, err
	}
	if !canEdit(course, actor) {
		return nil, util.ErrPermissionDenied
	}

	if req.PassingScore < 0 || req.PassingScore > 100 {
		return nil, util.ErrInvalidInput
	}

	a := &model.Assessment{
		ModuleID:     moduleID,
		Title:        req.Title,
		Description:  req.Description,
		PassingScore: req.PassingScore,
		MaxAttempts:  req.MaxAttempts,
	}
	if err := s.AssessmentRepo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *CatalogService) AddQuestion(actor *util.Claims, assessmentID uint, req QuestionRequest) (*model.Question, error) {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		return nil, err
	}
	module, err := s.CourseRepo.FindModuleByID(a.ModuleID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return nil, err
	}
	if !canEdit(course, actor) {
		return nil, util.ErrPermissionDenied
	}

	if len(req.Options) < 2 || req.CorrectOption < 0 || req.CorrectOption >= len(req.Options) {
		return nil, util.ErrInvalidInput
	}

	rawOptions, err := json.Marshal(req.Options)
	if err != nil {
		return nil, util.ErrInvalidInput
	}

	q := &model.Question{
		AssessmentID:  assessmentID,
		Content:       req.Content,
		Options:       rawOptions,
		CorrectOption: req.CorrectOption,
		Order:         req.Order,
		Explanation:   req.Explanation,
	}
	if err := s.AssessmentRepo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// NextLesson backs "continue where you left off" navigation.
func (s *CatalogService) NextLesson(lessonID uint) (*model.Lesson, error) {
	lesson, err := s.CourseRepo.FindLessonByID(lessonID)
	if err != nil {
		return nil, err
	}
	return s.CourseRepo.NextLesson(lesson)
}
