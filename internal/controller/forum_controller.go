package controller

import (
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ForumController struct {
	Forum *service.ForumService
}

func NewForumController(forum *service.ForumService) *ForumController {
	return &ForumController{Forum: forum}
}

// ListThreads godoc
// @Summary Threads in a course forum
// @Tags forum
// @Produce  json
// @Param   id path int true "course id"
// @Param   page query int false "page number (default 1)"
// @Param   limit query int false "page size (default 20)"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses/{id}/threads [get]
func (c *ForumController) ListThreads(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	threads, total, err := c.Forum.ListThreads(util.MustParseUint(ctx.Param("id")), page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: threads, Total: total, Page: page, Limit: limit})
}

// CreateThread godoc
// @Summary Open a thread in a course forum
// @Description Posting requires enrollment in the course or teaching it
// @Tags forum
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Param   body body service.ThreadRequest true "thread fields"
// @Success 201 {object} util.Response{data=model.ForumThread}
// @Failure 403 {object} util.Response
// @Router /api/courses/{id}/threads [post]
func (c *ForumController) CreateThread(ctx *gin.Context) {
	var req service.ThreadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	thread, err := c.Forum.CreateThread(util.GetUserFromContext(ctx), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, thread)
}

// GetThread godoc
// @Summary Thread with its replies
// @Tags forum
// @Produce  json
// @Param   id path int true "thread id"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/threads/{id} [get]
func (c *ForumController) GetThread(ctx *gin.Context) {
	thread, replies, err := c.Forum.GetThread(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"thread": thread, "replies": replies})
}

// Reply godoc
// @Summary Reply to a thread
// @Tags forum
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "thread id"
// @Param   body body service.ReplyRequest true "reply content"
// @Success 201 {object} util.Response{data=model.ForumReply}
// @Failure 403 {object} util.Response
// @Router /api/threads/{id}/replies [post]
func (c *ForumController) Reply(ctx *gin.Context) {
	var req service.ReplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.Forum.Reply(util.GetUserFromContext(ctx), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, reply)
}

// Upvote godoc
// @Summary Upvote a thread
// @Description One vote per user per thread; authors cannot vote on their own threads
// @Tags forum
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "thread id"
// @Success 200 {object} util.Response{data=model.ForumThread}
// @Failure 403 {object} util.Response "own thread"
// @Failure 409 {object} util.Response "already voted"
// @Router /api/threads/{id}/upvote [post]
func (c *ForumController) Upvote(ctx *gin.Context) {
	thread, err := c.Forum.Upvote(util.GetUserFromContext(ctx), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, thread)
}
