package service

import (
	"errors"
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
)

func TestCreateThread_RequiresEnrollmentOrTeaching(t *testing.T) {
	e := newTestEnv(t)
	course, _ := e.createCourse(t, 1)
	instructor, _ := e.users.FindByID(course.InstructorID)
	enrolled := e.createUser(t, "enrolled", model.Student)
	outsider := e.createUser(t, "outsider", model.Student)
	if _, err := e.enrollment.Enroll(enrolled.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	req := ThreadRequest{Title: "Stuck on lesson 2", Content: "Any hints?"}

	if _, err := e.forumSvc.CreateThread(claimsFor(enrolled), course.ID, req); err != nil {
		t.Fatalf("enrolled student rejected: %v", err)
	}
	if _, err := e.forumSvc.CreateThread(claimsFor(instructor), course.ID, req); err != nil {
		t.Fatalf("instructor rejected: %v", err)
	}
	if _, err := e.forumSvc.CreateThread(claimsFor(outsider), course.ID, req); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for outsider, got %v", err)
	}
}

func TestUpvote_SelfVoteForbidden(t *testing.T) {
	e := newTestEnv(t)
	course, _ := e.createCourse(t, 1)
	author := e.createUser(t, "author", model.Student)
	if _, err := e.enrollment.Enroll(author.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	thread, err := e.forumSvc.CreateThread(claimsFor(author), course.ID, ThreadRequest{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}

	if _, err := e.forumSvc.Upvote(claimsFor(author), thread.ID); !errors.Is(err, util.ErrOwnThreadVote) {
		t.Fatalf("expected ErrOwnThreadVote, got %v", err)
	}
}

func TestUpvote_OncePerUser(t *testing.T) {
	e := newTestEnv(t)
	course, _ := e.createCourse(t, 1)
	author := e.createUser(t, "author", model.Student)
	voter := e.createUser(t, "voter", model.Student)
	for _, u := range []*model.User{author, voter} {
		if _, err := e.enrollment.Enroll(u.ID, course.ID); err != nil {
			t.Fatalf("enroll %d: %v", u.ID, err)
		}
	}

	thread, err := e.forumSvc.CreateThread(claimsFor(author), course.ID, ThreadRequest{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}

	voted, err := e.forumSvc.Upvote(claimsFor(voter), thread.ID)
	if err != nil {
		t.Fatalf("upvote: %v", err)
	}
	if voted.Upvotes != 1 {
		t.Fatalf("expected 1 upvote, got %d", voted.Upvotes)
	}

	if _, err := e.forumSvc.Upvote(claimsFor(voter), thread.ID); !errors.Is(err, util.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
	reloaded, _ := e.forum.FindThreadByID(thread.ID)
	if reloaded.Upvotes != 1 {
		t.Fatalf("double vote counted: %d", reloaded.Upvotes)
	}
}

func TestReply_AppendsToThread(t *testing.T) {
	e := newTestEnv(t)
	course, _ := e.createCourse(t, 1)
	instructor, _ := e.users.FindByID(course.InstructorID)
	student := e.createUser(t, "student", model.Student)
	if _, err := e.enrollment.Enroll(student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	thread, err := e.forumSvc.CreateThread(claimsFor(student), course.ID, ThreadRequest{Title: "Q", Content: "?"})
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}
	if _, err := e.forumSvc.Reply(claimsFor(instructor), thread.ID, ReplyRequest{Content: "Answer"}); err != nil {
		t.Fatalf("reply: %v", err)
	}

	_, replies, err := e.forumSvc.GetThread(thread.ID)
	if err != nil {
		t.Fatalf("get thread: %v", err)
	}
	if len(replies) != 1 || replies[0].Content != "Answer" {
		t.Fatalf("unexpected replies: %+v", replies)
	}
}
