package service

import (
	"errors"
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
)

func TestRecordLessonProgress_CompletionIsIdempotent(t *testing.T) {
	e := newTestEnv(t)
	course, lessons := e.createCourse(t, 2)
	student := e.createUser(t, "student", model.Student)
	if _, err := e.enrollment.Enroll(student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	baseXP := e.userXP(t, student.ID)

	first, err := e.progress.RecordLessonProgress(student.ID, lessons[0].ID, 120, true)
	if err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if first.Status != model.ProgressCompleted {
		t.Fatalf("expected completed, got %q", first.Status)
	}
	if first.CompletedAt == nil {
		t.Fatalf("expected CompletedAt to be set")
	}
	xpAfterFirst := e.userXP(t, student.ID)
	if xpAfterFirst != baseXP+XPLessonCompleteBonus {
		t.Fatalf("expected xp %d after first completion, got %d", baseXP+XPLessonCompleteBonus, xpAfterFirst)
	}

	second, err := e.progress.RecordLessonProgress(student.ID, lessons[0].ID, 60, true)
	if err != nil {
		t.Fatalf("repeat completion: %v", err)
	}
	if second.Status != model.ProgressCompleted {
		t.Fatalf("status reverted to %q", second.Status)
	}
	if !second.CompletedAt.Equal(*first.CompletedAt) {
		t.Fatalf("CompletedAt changed on repeat: %v vs %v", second.CompletedAt, first.CompletedAt)
	}
	if second.WatchTime != 120 {
		t.Fatalf("watch time lowered to %d", second.WatchTime)
	}
	if got := e.userXP(t, student.ID); got != xpAfterFirst {
		t.Fatalf("repeat completion awarded xp: %d -> %d", xpAfterFirst, got)
	}
}

func TestRecordLessonProgress_WatchTimeNeverDecreases(t *testing.T) {
	e := newTestEnv(t)
	_, lessons := e.createCourse(t, 1)
	student := e.createUser(t, "student", model.Student)

	if _, err := e.progress.RecordLessonProgress(student.ID, lessons[0].ID, 300, false); err != nil {
		t.Fatalf("record: %v", err)
	}
	p, err := e.progress.RecordLessonProgress(student.ID, lessons[0].ID, 100, false)
	if err != nil {
		t.Fatalf("record lower: %v", err)
	}
	if p.WatchTime != 300 {
		t.Fatalf("expected watch time 300, got %d", p.WatchTime)
	}
	if p.Status != model.ProgressInProgress {
		t.Fatalf("expected in_progress, got %q", p.Status)
	}
}

func TestRecordLessonProgress_RejectsNegativeWatchTime(t *testing.T) {
	e := newTestEnv(t)
	_, lessons := e.createCourse(t, 1)
	student := e.createUser(t, "student", model.Student)

	if _, err := e.progress.RecordLessonProgress(student.ID, lessons[0].ID, -1, false); !errors.Is(err, util.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRecordLessonProgress_UnknownLesson(t *testing.T) {
	e := newTestEnv(t)
	student := e.createUser(t, "student", model.Student)

	if _, err := e.progress.RecordLessonProgress(student.ID, 9999, 10, false); !errors.Is(err, util.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
}

func TestRecomputeCourseProgress_Percentage(t *testing.T) {
	e := newTestEnv(t)
	course, lessons := e.createCourse(t, 2, 1) // 3 lessons across 2 modules
	student := e.createUser(t, "student", model.Student)
	if _, err := e.enrollment.Enroll(student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	if _, err := e.progress.RecordLessonProgress(student.ID, lessons[0].ID, 10, true); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}

	cp, err := e.progress.RecomputeCourseProgress(student.ID, course.ID)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	// 1 of 3 lessons: 33.33 rounds half up to 33.
	if cp.Percentage != 33 {
		t.Fatalf("expected 33%%, got %d%%", cp.Percentage)
	}
	if cp.TotalLessons != 3 || len(cp.CompletedLessons) != 1 {
		t.Fatalf("unexpected lesson counts: total=%d completed=%d", cp.TotalLessons, len(cp.CompletedLessons))
	}

	if _, err := e.progress.RecordLessonProgress(student.ID, lessons[1].ID, 10, true); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}
	cp, err = e.progress.RecomputeCourseProgress(student.ID, course.ID)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	// 2 of 3: 66.67 rounds half up to 67.
	if cp.Percentage != 67 {
		t.Fatalf("expected 67%%, got %d%%", cp.Percentage)
	}
}

func TestRecomputeCourseProgress_ZeroLessonsStaysAtZero(t *testing.T) {
	e := newTestEnv(t)
	course, _ := e.createCourse(t) // no modules, no lessons
	student := e.createUser(t, "student", model.Student)
	if _, err := e.enrollment.Enroll(student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	cp, err := e.progress.RecomputeCourseProgress(student.ID, course.ID)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if cp.Percentage != 0 {
		t.Fatalf("empty course reported %d%%", cp.Percentage)
	}

	enr, err := e.enrollments.FindByUserAndCourse(student.ID, course.ID)
	if err != nil {
		t.Fatalf("reload enrollment: %v", err)
	}
	if enr.CompletedAt != nil {
		t.Fatalf("empty course was marked completed")
	}
	certs, err := e.certificate.ListForUser(student.ID)
	if err != nil {
		t.Fatalf("list certificates: %v", err)
	}
	if len(certs) != 0 {
		t.Fatalf("empty course issued a certificate")
	}
}

func TestRecomputeCourseProgress_EnrollmentProgressIsMonotonic(t *testing.T) {
	e := newTestEnv(t)
	course, lessons := e.createCourse(t, 2)
	student := e.createUser(t, "student", model.Student)
	if _, err := e.enrollment.Enroll(student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	if _, err := e.progress.RecordLessonProgress(student.ID, lessons[0].ID, 10, true); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}
	enr, _ := e.enrollments.FindByUserAndCourse(student.ID, course.ID)
	if enr.Progress != 50 {
		t.Fatalf("expected stored progress 50, got %d", enr.Progress)
	}

	// A stale recompute attempting to write a lower value must not stick.
	if err := e.enrollments.UpdateProgress(student.ID, course.ID, 10); err != nil {
		t.Fatalf("stale update: %v", err)
	}
	enr, _ = e.enrollments.FindByUserAndCourse(student.ID, course.ID)
	if enr.Progress != 50 {
		t.Fatalf("stored progress regressed to %d", enr.Progress)
	}
}

// Completing every lesson of a course without assessments finishes the
// enrollment, mints the certificate and grants the completion bonus.
func TestCourseCompletion_NoAssessments(t *testing.T) {
	e := newTestEnv(t)
	course, lessons := e.createCourse(t, 1, 1)
	student := e.createUser(t, "student", model.Student)
	if _, err := e.enrollment.Enroll(student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	for _, l := range lessons {
		if _, err := e.progress.RecordLessonProgress(student.ID, l.ID, 10, true); err != nil {
			t.Fatalf("complete lesson %d: %v", l.ID, err)
		}
	}

	enr, _ := e.enrollments.FindByUserAndCourse(student.ID, course.ID)
	if enr.Progress != 100 {
		t.Fatalf("expected 100%%, got %d%%", enr.Progress)
	}
	if enr.CompletedAt == nil {
		t.Fatalf("enrollment not marked completed")
	}

	certs, err := e.certificate.ListForUser(student.ID)
	if err != nil {
		t.Fatalf("list certificates: %v", err)
	}
	if len(certs) != 1 {
		t.Fatalf("expected exactly one certificate, got %d", len(certs))
	}
	if certs[0].CourseTitle != course.Title || certs[0].RecipientName != student.FullName {
		t.Fatalf("certificate snapshots wrong: %+v", certs[0])
	}

	wantXP := XPEnrollBonus + 2*XPLessonCompleteBonus + XPCourseCompleteBonus
	if got := e.userXP(t, student.ID); got != wantXP {
		t.Fatalf("expected %d xp, got %d", wantXP, got)
	}
}

// With an unpassed assessment the course reaches 100% but certification waits
// for the passing attempt; the pass then unlocks the certificate.
func TestCourseCompletion_AssessmentGate(t *testing.T) {
	e := newTestEnv(t)
	course, lessons := e.createCourse(t, 1)
	student := e.createUser(t, "student", model.Student)
	if _, err := e.enrollment.Enroll(student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	module, err := e.courses.FindModuleByID(lessons[0].ModuleID)
	if err != nil {
		t.Fatalf("find module: %v", err)
	}
	assessment, questions := e.createAssessment(t, module.ID, 70, 2)

	if _, err := e.progress.RecordLessonProgress(student.ID, lessons[0].ID, 10, true); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}

	enr, _ := e.enrollments.FindByUserAndCourse(student.ID, course.ID)
	if enr.Progress != 100 || enr.CompletedAt == nil {
		t.Fatalf("lessons-only completion broken: progress=%d completedAt=%v", enr.Progress, enr.CompletedAt)
	}
	if certs, _ := e.certificate.ListForUser(student.ID); len(certs) != 0 {
		t.Fatalf("certificate issued before assessment was passed")
	}

	// A failed attempt keeps the gate closed.
	wrong := map[uint]int{questions[0].ID: 1, questions[1].ID: 1}
	result, err := e.assessment.Submit(student.ID, assessment.ID, wrong)
	if err != nil {
		t.Fatalf("failing submit: %v", err)
	}
	if result.Passed {
		t.Fatalf("wrong answers passed with score %d", result.Score)
	}
	if certs, _ := e.certificate.ListForUser(student.ID); len(certs) != 0 {
		t.Fatalf("certificate issued after a failed attempt")
	}

	// Any later passing attempt opens it.
	result, err = e.assessment.Submit(student.ID, assessment.ID, correctAnswers(questions))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Passed {
		t.Fatalf("expected pass, got score %d", result.Score)
	}

	certs, _ := e.certificate.ListForUser(student.ID)
	if len(certs) != 1 {
		t.Fatalf("expected certificate after passing, got %d", len(certs))
	}
	serial := certs[0].Serial

	// Best-attempt semantics: a subsequent failure does not revoke anything.
	if _, err := e.assessment.Submit(student.ID, assessment.ID, wrong); err != nil {
		t.Fatalf("post-pass failing submit: %v", err)
	}
	if _, err := e.progress.RecomputeCourseProgress(student.ID, course.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	certs, _ = e.certificate.ListForUser(student.ID)
	if len(certs) != 1 || certs[0].Serial != serial {
		t.Fatalf("certificate changed after a later failed attempt: %+v", certs)
	}
}

// An instructor previewing a course they are not enrolled in gets the view
// without any enrollment write-back.
func TestRecomputeCourseProgress_NoEnrollment(t *testing.T) {
	e := newTestEnv(t)
	course, _ := e.createCourse(t, 1)
	viewer := e.createUser(t, "viewer", model.Instructor)

	cp, err := e.progress.RecomputeCourseProgress(viewer.ID, course.ID)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if cp.Percentage != 0 || cp.TotalLessons != 1 {
		t.Fatalf("unexpected view: %+v", cp)
	}
}
