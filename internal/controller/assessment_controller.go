package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Assessments *service.AssessmentService
}

func NewAssessmentController(assessments *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Assessments: assessments}
}

// swagger:model SubmitRequest
type SubmitRequest struct {
	// Answers maps question id to the chosen option index.
	Answers map[uint]int `json:"answers" binding:"required"`
}

// Get godoc
// @Summary Assessment for taking
// @Description Questions with correct options stripped, plus attempts used
// @Tags assessments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "assessment id"
// @Success 200 {object} util.Response{data=service.StudentAssessment}
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	view, err := c.Assessments.GetForStudent(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Submit godoc
// @Summary Submit assessment answers
// @Description Grades deterministically against stored correct options; unanswered questions count as incorrect
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "assessment id"
// @Param   body body SubmitRequest true "answers keyed by question id"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response "no questions"
// @Failure 409 {object} util.Response "attempt limit reached"
// @Router /api/assessments/{id}/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.Assessments.Submit(claims.UserID, util.MustParseUint(ctx.Param("id")), req.Answers)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ListAttempts godoc
// @Summary Current user's attempts on an assessment
// @Tags assessments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "assessment id"
// @Success 200 {object} util.Response{data=[]model.AssessmentAttempt}
// @Router /api/assessments/{id}/attempts [get]
func (c *AssessmentController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attempts, err := c.Assessments.ListAttempts(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}
