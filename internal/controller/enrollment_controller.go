package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	Enrollments *service.EnrollmentService
}

func NewEnrollmentController(enrollments *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{Enrollments: enrollments}
}

// Enroll godoc
// @Summary Enroll in a course
// @Description Creates the enrollment and awards the signup XP bonus
// @Tags enrollments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 400 {object} util.Response "course not published"
// @Failure 409 {object} util.Response "already enrolled"
// @Router /api/courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	enrollment, err := c.Enrollments.Enroll(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// ListMine godoc
// @Summary Current user's enrollments
// @Tags enrollments
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	enrollments, err := c.Enrollments.ListMine(claims.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// CourseProgress godoc
// @Summary Progress in one course
// @Description Percentage plus the completed lesson and assessment ids
// @Tags enrollments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Success 200 {object} util.Response{data=service.CourseProgress}
// @Failure 404 {object} util.Response "not enrolled"
// @Router /api/courses/{id}/progress [get]
func (c *EnrollmentController) CourseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	progress, err := c.Enrollments.GetCourseProgress(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
