package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrCourseNotFound      = errors.New("course not found")
	ErrModuleNotFound      = errors.New("module not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrAssessmentNotFound  = errors.New("assessment not found")
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrThreadNotFound      = errors.New("thread not found")
	ErrEnrollmentNotFound  = errors.New("not enrolled in this course")

	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrAlreadyEnrolled     = errors.New("already enrolled in this course")
	ErrAlreadyVoted        = errors.New("already voted on this thread")
	ErrOwnThreadVote       = errors.New("cannot vote on your own thread")
	ErrCourseNotPublished  = errors.New("course is not published")
	ErrAssessmentEmpty     = errors.New("assessment has no questions")
	ErrAttemptLimitReached = errors.New("attempt limit reached for this assessment")
)
