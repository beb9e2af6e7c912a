package service

import (
	"encoding/json"
	"fmt"
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database with the production schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	return openTestDB(t, dsn)
}

// newFileTestDB opens a file-backed database in the test's temp dir. Unlike
// the shared-cache in-memory DSN this one tolerates concurrent connections,
// so tests can hammer it from multiple goroutines; writers wait on the busy
// timeout instead of failing.
func newFileTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s/learnhub.db?_busy_timeout=5000&_journal_mode=WAL", t.TempDir())
	return openTestDB(t, dsn)
}

// openTestDB applies the production gorm config to the given DSN.
// TranslateError matches production so unique-index races surface as
// gorm.ErrDuplicatedKey here too.
func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// testEnv wires the full service graph against one test database, without
// redis and without a certificate renderer.
type testEnv struct {
	db *gorm.DB

	users        *repository.UserRepository
	courses      *repository.CourseRepository
	assessments  *repository.AssessmentRepository
	enrollments  *repository.EnrollmentRepository
	progressRepo *repository.ProgressRepository
	certificates *repository.CertificateRepository
	forum        *repository.ForumRepository

	xp          *XPService
	certificate *CertificateService
	progress    *ProgressService
	enrollment  *EnrollmentService
	assessment  *AssessmentService
	forumSvc    *ForumService

	seq int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newEnvOn(t, newTestDB(t))
}

// newFileTestEnv is for tests that spawn goroutines against the database.
func newFileTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newEnvOn(t, newFileTestDB(t))
}

func newEnvOn(t *testing.T, db *gorm.DB) *testEnv {
	t.Helper()

	e := &testEnv{
		db:           db,
		users:        repository.NewUserRepository(db),
		courses:      repository.NewCourseRepository(db),
		assessments:  repository.NewAssessmentRepository(db),
		enrollments:  repository.NewEnrollmentRepository(db),
		progressRepo: repository.NewProgressRepository(db),
		certificates: repository.NewCertificateRepository(db),
		forum:        repository.NewForumRepository(db),
	}

	e.xp = NewXPService(e.users, nil)
	e.certificate = NewCertificateService(e.certificates, e.users, nil)
	e.progress = NewProgressService(e.courses, e.progressRepo, e.enrollments, e.assessments, e.certificate, e.xp)
	e.enrollment = NewEnrollmentService(e.enrollments, e.courses, e.progress, e.xp)
	e.assessment = NewAssessmentService(e.assessments, e.courses, e.progress, e.xp)
	e.forumSvc = NewForumService(e.forum, e.courses, e.enrollments)

	return e
}

func (e *testEnv) createUser(t *testing.T, name string, role model.UserRole) *model.User {
	t.Helper()
	e.seq++
	u := &model.User{
		FullName: name,
		Email:    fmt.Sprintf("%s-%d@test.local", name, e.seq),
		Password: "irrelevant",
		Role:     role,
	}
	if err := e.users.Create(u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

// createCourse builds a published course owned by a fresh instructor, with
// one module per lessonsPerModule entry and that many lessons in it.
func (e *testEnv) createCourse(t *testing.T, lessonsPerModule ...int) (*model.Course, []model.Lesson) {
	t.Helper()

	instructor := e.createUser(t, "instructor", model.Instructor)
	course := &model.Course{
		Title:        "Test Course",
		Status:       model.CoursePublished,
		InstructorID: instructor.ID,
	}
	if err := e.courses.Create(course); err != nil {
		t.Fatalf("create course: %v", err)
	}

	var lessons []model.Lesson
	for mi, n := range lessonsPerModule {
		m := &model.CourseModule{CourseID: course.ID, Title: fmt.Sprintf("Module %d", mi+1), Order: mi + 1}
		if err := e.courses.CreateModule(m); err != nil {
			t.Fatalf("create module: %v", err)
		}
		for li := 0; li < n; li++ {
			l := &model.Lesson{ModuleID: m.ID, Title: fmt.Sprintf("Lesson %d.%d", mi+1, li+1), Kind: model.LessonVideo, Order: li + 1}
			if err := e.courses.CreateLesson(l); err != nil {
				t.Fatalf("create lesson: %v", err)
			}
			lessons = append(lessons, *l)
		}
	}
	return course, lessons
}

// createAssessment attaches an assessment with nQuestions single-answer
// questions to the module; the correct option is always index 0.
func (e *testEnv) createAssessment(t *testing.T, moduleID uint, passingScore, nQuestions int) (*model.Assessment, []model.Question) {
	t.Helper()

	a := &model.Assessment{ModuleID: moduleID, Title: "Check", PassingScore: passingScore}
	if err := e.assessments.Create(a); err != nil {
		t.Fatalf("create assessment: %v", err)
	}

	options, _ := json.Marshal([]string{"right", "wrong", "also wrong"})
	var questions []model.Question
	for i := 0; i < nQuestions; i++ {
		q := &model.Question{
			AssessmentID:  a.ID,
			Content:       fmt.Sprintf("Q%d", i+1),
			Options:       options,
			CorrectOption: 0,
			Order:         i + 1,
		}
		if err := e.assessments.CreateQuestion(q); err != nil {
			t.Fatalf("create question: %v", err)
		}
		questions = append(questions, *q)
	}
	return a, questions
}

func (e *testEnv) userXP(t *testing.T, userID uint) int {
	t.Helper()
	u, err := e.users.FindByID(userID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return u.XPPoints
}

// correctAnswers builds an all-correct answer set for the given questions.
func correctAnswers(questions []model.Question) map[uint]int {
	answers := make(map[uint]int, len(questions))
	for _, q := range questions {
		answers[q.ID] = q.CorrectOption
	}
	return answers
}
