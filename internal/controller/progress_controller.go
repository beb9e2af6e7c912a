package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progress *service.ProgressService
}

func NewProgressController(progress *service.ProgressService) *ProgressController {
	return &ProgressController{Progress: progress}
}

// swagger:model LessonProgressRequest
type LessonProgressRequest struct {
	WatchTime int  `json:"watchTime"`
	Completed bool `json:"completed"`
}

// RecordLessonProgress godoc
// @Summary Record lesson watch progress
// @Description Upserts watch state for the lesson; the first transition to completed awards XP and recomputes course progress
// @Tags progress
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "lesson id"
// @Param   body body LessonProgressRequest true "watch state"
// @Success 200 {object} util.Response{data=model.LessonProgress}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/progress [post]
func (c *ProgressController) RecordLessonProgress(ctx *gin.Context) {
	var req LessonProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	record, err := c.Progress.RecordLessonProgress(claims.UserID, util.MustParseUint(ctx.Param("id")), req.WatchTime, req.Completed)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, record)
}
