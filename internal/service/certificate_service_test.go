package service

import (
	"errors"
	"sync"
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
)

func TestIssue_AtMostOncePerUserAndCourse(t *testing.T) {
	e := newTestEnv(t)
	course, _ := e.createCourse(t, 1)
	student := e.createUser(t, "student", model.Student)

	first, created, err := e.certificate.Issue(student.ID, course)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !created {
		t.Fatalf("first issue reported not created")
	}
	if first.Serial == "" {
		t.Fatalf("serial missing")
	}

	second, created, err := e.certificate.Issue(student.ID, course)
	if err != nil {
		t.Fatalf("reissue: %v", err)
	}
	if created {
		t.Fatalf("second issue claimed to create")
	}
	if second.ID != first.ID || second.Serial != first.Serial {
		t.Fatalf("reissue returned a different certificate: %+v vs %+v", second, first)
	}

	certs, _ := e.certificate.ListForUser(student.ID)
	if len(certs) != 1 {
		t.Fatalf("expected one row, got %d", len(certs))
	}
}

func TestIssue_SnapshotsNamesAtIssuance(t *testing.T) {
	e := newTestEnv(t)
	course, _ := e.createCourse(t, 1)
	student := e.createUser(t, "Grace Hopper", model.Student)

	cert, _, err := e.certificate.Issue(student.ID, course)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Rename both parties after issuance; the certificate must not follow.
	student.FullName = "G. Hopper"
	if err := e.users.Update(student); err != nil {
		t.Fatalf("rename user: %v", err)
	}
	course.Title = "Renamed Course"
	if err := e.courses.Update(course); err != nil {
		t.Fatalf("rename course: %v", err)
	}

	reloaded, err := e.certificate.Verify(cert.Serial)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if reloaded.RecipientName != "Grace Hopper" || reloaded.CourseTitle != "Test Course" {
		t.Fatalf("snapshots drifted: %+v", reloaded)
	}
}

func TestVerify_UnknownSerial(t *testing.T) {
	e := newTestEnv(t)
	if _, err := e.certificate.Verify("not-a-serial"); !errors.Is(err, util.ErrCertificateNotFound) {
		t.Fatalf("expected ErrCertificateNotFound, got %v", err)
	}
}

func TestIssue_DistinctSerialsAcrossCourses(t *testing.T) {
	e := newTestEnv(t)
	courseA, _ := e.createCourse(t, 1)
	courseB, _ := e.createCourse(t, 1)
	student := e.createUser(t, "student", model.Student)

	a, _, err := e.certificate.Issue(student.ID, courseA)
	if err != nil {
		t.Fatalf("issue a: %v", err)
	}
	b, _, err := e.certificate.Issue(student.ID, courseB)
	if err != nil {
		t.Fatalf("issue b: %v", err)
	}
	if a.Serial == b.Serial {
		t.Fatalf("serial reused across courses: %s", a.Serial)
	}
}

func TestIssue_ConcurrentIssueConvergesOnOneRow(t *testing.T) {
	e := newFileTestEnv(t)
	course, _ := e.createCourse(t, 1)
	student := e.createUser(t, "student", model.Student)

	const workers = 8
	var wg sync.WaitGroup
	type outcome struct {
		serial  string
		created bool
		err     error
	}
	results := make(chan outcome, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cert, created, err := e.certificate.Issue(student.ID, course)
			if err != nil {
				results <- outcome{err: err}
				return
			}
			results <- outcome{serial: cert.Serial, created: created}
		}()
	}
	wg.Wait()
	close(results)

	createdCount := 0
	serial := ""
	for r := range results {
		if r.err != nil {
			t.Fatalf("issue: %v", r.err)
		}
		if r.created {
			createdCount++
		}
		if serial == "" {
			serial = r.serial
		} else if r.serial != serial {
			t.Fatalf("issuers saw different serials: %q vs %q", r.serial, serial)
		}
	}
	if createdCount != 1 {
		t.Fatalf("%d calls claimed to create the certificate", createdCount)
	}

	certs, _ := e.certificate.ListForUser(student.ID)
	if len(certs) != 1 {
		t.Fatalf("expected one row, got %d", len(certs))
	}
}
