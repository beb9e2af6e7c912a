package service

import (
	"errors"
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
)

func newCatalog(e *testEnv) *CatalogService {
	return NewCatalogService(e.courses, e.assessments, e.enrollments, nil)
}

func claimsFor(u *model.User) *util.Claims {
	return &util.Claims{UserID: u.ID, Role: u.Role, Email: u.Email, FullName: u.FullName}
}

func TestDeleteCourse_ArchivesWhenEnrolled(t *testing.T) {
	e := newTestEnv(t)
	catalog := newCatalog(e)
	course, _ := e.createCourse(t, 1)
	instructor, err := e.users.FindByID(course.InstructorID)
	if err != nil {
		t.Fatalf("load instructor: %v", err)
	}
	student := e.createUser(t, "student", model.Student)
	if _, err := e.enrollment.Enroll(student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	archived, err := catalog.DeleteCourse(claimsFor(instructor), course.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !archived {
		t.Fatalf("enrolled course was hard-deleted")
	}

	reloaded, err := e.courses.FindByID(course.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != model.CourseArchived {
		t.Fatalf("expected archived, got %q", reloaded.Status)
	}

	// The enrollment must still resolve.
	if _, err := e.enrollments.FindByUserAndCourse(student.ID, course.ID); err != nil {
		t.Fatalf("enrollment lost after archive: %v", err)
	}
}

func TestDeleteCourse_HardDeletesWhenUnenrolled(t *testing.T) {
	e := newTestEnv(t)
	catalog := newCatalog(e)
	course, _ := e.createCourse(t, 1)
	instructor, _ := e.users.FindByID(course.InstructorID)

	archived, err := catalog.DeleteCourse(claimsFor(instructor), course.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if archived {
		t.Fatalf("course without enrollments was archived instead of deleted")
	}
	if _, err := e.courses.FindByID(course.ID); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestCatalog_OwnershipEnforced(t *testing.T) {
	e := newTestEnv(t)
	catalog := newCatalog(e)
	course, _ := e.createCourse(t, 1)
	other := e.createUser(t, "other", model.Instructor)

	if _, err := catalog.UpdateCourse(claimsFor(other), course.ID, CourseRequest{Title: "Hijack"}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if err := catalog.PublishCourse(claimsFor(other), course.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := catalog.DeleteCourse(claimsFor(other), course.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestCatalog_AdminMayEditAnyCourse(t *testing.T) {
	e := newTestEnv(t)
	catalog := newCatalog(e)
	course, _ := e.createCourse(t, 1)
	admin := e.createUser(t, "admin", model.Admin)

	updated, err := catalog.UpdateCourse(claimsFor(admin), course.ID, CourseRequest{Title: "Curated"})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Title != "Curated" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
}

func TestPublishCourse_OpensEnrollment(t *testing.T) {
	e := newTestEnv(t)
	catalog := newCatalog(e)
	instructor := e.createUser(t, "instructor", model.Instructor)

	course, err := catalog.CreateCourse(claimsFor(instructor), CourseRequest{Title: "New"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if course.Status != model.CourseDraft {
		t.Fatalf("new course not a draft: %q", course.Status)
	}

	student := e.createUser(t, "student", model.Student)
	if _, err := e.enrollment.Enroll(student.ID, course.ID); !errors.Is(err, util.ErrCourseNotPublished) {
		t.Fatalf("draft enrollable: %v", err)
	}

	if err := catalog.PublishCourse(claimsFor(instructor), course.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := e.enrollment.Enroll(student.ID, course.ID); err != nil {
		t.Fatalf("enroll after publish: %v", err)
	}
}

func TestAddQuestion_ValidatesOptions(t *testing.T) {
	e := newTestEnv(t)
	catalog := newCatalog(e)
	course, lessons := e.createCourse(t, 1)
	instructor, _ := e.users.FindByID(course.InstructorID)
	module, _ := e.courses.FindModuleByID(lessons[0].ModuleID)

	a, err := catalog.AddAssessment(claimsFor(instructor), module.ID, AssessmentRequest{Title: "Quiz", PassingScore: 70})
	if err != nil {
		t.Fatalf("add assessment: %v", err)
	}

	cases := []QuestionRequest{
		{Content: "one option", Options: []string{"only"}, CorrectOption: 0},
		{Content: "index out of range", Options: []string{"a", "b"}, CorrectOption: 2},
		{Content: "negative index", Options: []string{"a", "b"}, CorrectOption: -1},
	}
	for _, req := range cases {
		if _, err := catalog.AddQuestion(claimsFor(instructor), a.ID, req); !errors.Is(err, util.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", req.Content, err)
		}
	}

	if _, err := catalog.AddQuestion(claimsFor(instructor), a.ID, QuestionRequest{
		Content: "valid", Options: []string{"a", "b"}, CorrectOption: 1, Order: 1,
	}); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}
}

func TestNextLesson_WalksModulesInOrder(t *testing.T) {
	e := newTestEnv(t)
	catalog := newCatalog(e)
	_, lessons := e.createCourse(t, 2, 1)

	next, err := catalog.NextLesson(lessons[0].ID)
	if err != nil {
		t.Fatalf("next within module: %v", err)
	}
	if next.ID != lessons[1].ID {
		t.Fatalf("expected lesson %d, got %d", lessons[1].ID, next.ID)
	}

	next, err = catalog.NextLesson(lessons[1].ID)
	if err != nil {
		t.Fatalf("next across modules: %v", err)
	}
	if next.ID != lessons[2].ID {
		t.Fatalf("expected lesson %d, got %d", lessons[2].ID, next.ID)
	}

	if _, err := catalog.NextLesson(lessons[2].ID); !errors.Is(err, util.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound at course end, got %v", err)
	}
}

func TestGetCourse_ContentInDisplayOrder(t *testing.T) {
	e := newTestEnv(t)
	catalog := newCatalog(e)

	instructor := e.createUser(t, "instructor", model.Instructor)
	course := &model.Course{Title: "Ordering", Status: model.CoursePublished, InstructorID: instructor.ID}
	if err := e.courses.Create(course); err != nil {
		t.Fatalf("create course: %v", err)
	}

	// Insert everything in reverse of display order so the load has to sort.
	second := &model.CourseModule{CourseID: course.ID, Title: "Second", Order: 2}
	first := &model.CourseModule{CourseID: course.ID, Title: "First", Order: 1}
	for _, m := range []*model.CourseModule{second, first} {
		if err := e.courses.CreateModule(m); err != nil {
			t.Fatalf("create module: %v", err)
		}
	}
	for _, l := range []*model.Lesson{
		{ModuleID: first.ID, Title: "L1.2", Kind: model.LessonVideo, Order: 2},
		{ModuleID: first.ID, Title: "L1.1", Kind: model.LessonVideo, Order: 1},
		{ModuleID: second.ID, Title: "L2.1", Kind: model.LessonVideo, Order: 1},
	} {
		if err := e.courses.CreateLesson(l); err != nil {
			t.Fatalf("create lesson: %v", err)
		}
	}

	loaded, err := catalog.GetCourse(course.ID)
	if err != nil {
		t.Fatalf("get course: %v", err)
	}
	if len(loaded.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(loaded.Modules))
	}
	if loaded.Modules[0].Title != "First" || loaded.Modules[1].Title != "Second" {
		t.Fatalf("modules out of order: %q before %q", loaded.Modules[0].Title, loaded.Modules[1].Title)
	}
	lessons := loaded.Modules[0].Lessons
	if len(lessons) != 2 || lessons[0].Title != "L1.1" || lessons[1].Title != "L1.2" {
		t.Fatalf("first module lessons out of order: %+v", lessons)
	}
	if len(loaded.Modules[1].Lessons) != 1 || loaded.Modules[1].Lessons[0].Title != "L2.1" {
		t.Fatalf("second module lessons wrong: %+v", loaded.Modules[1].Lessons)
	}
}
