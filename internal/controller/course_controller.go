package controller

import (
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Catalog *service.CatalogService
}

func NewCourseController(catalog *service.CatalogService) *CourseController {
	return &CourseController{Catalog: catalog}
}

// List godoc
// @Summary List published courses
// @Tags courses
// @Produce  json
// @Param   domain query string false "filter by domain"
// @Param   page query int false "page number (default 1)"
// @Param   limit query int false "page size (default 20)"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	courses, total, err := c.Catalog.ListPublished(ctx.Query("domain"), page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Course detail
// @Description Course with its modules and lessons in display order
// @Tags courses
// @Produce  json
// @Param   id path int true "course id"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	course, err := c.Catalog.GetCourse(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Create godoc
// @Summary Create a course
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CourseRequest true "course fields"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Router /api/instructor/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Catalog.CreateCourse(util.GetUserFromContext(ctx), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// Update godoc
// @Summary Update a course
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Param   body body service.CourseRequest true "course fields"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response
// @Router /api/instructor/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Catalog.UpdateCourse(util.GetUserFromContext(ctx), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Publish godoc
// @Summary Publish a course
// @Description Makes the course visible to students and open for enrollment
// @Tags instructor
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/instructor/courses/{id}/publish [post]
func (c *CourseController) Publish(ctx *gin.Context) {
	if err := c.Catalog.PublishCourse(util.GetUserFromContext(ctx), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Delete godoc
// @Summary Delete or archive a course
// @Description A course with enrollments is archived instead of deleted
// @Tags instructor
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response
// @Router /api/instructor/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	archived, err := c.Catalog.DeleteCourse(util.GetUserFromContext(ctx), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"archived": archived})
}

// ListMine godoc
// @Summary Courses taught by the current instructor
// @Tags instructor
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/instructor/courses [get]
func (c *CourseController) ListMine(ctx *gin.Context) {
	courses, err := c.Catalog.ListByInstructor(util.GetUserFromContext(ctx).UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// AddModule godoc
// @Summary Add a module to a course
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Param   body body service.ModuleRequest true "module fields"
// @Success 201 {object} util.Response{data=model.CourseModule}
// @Failure 403 {object} util.Response
// @Router /api/instructor/courses/{id}/modules [post]
func (c *CourseController) AddModule(ctx *gin.Context) {
	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.Catalog.AddModule(util.GetUserFromContext(ctx), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, m)
}

// AddLesson godoc
// @Summary Add a lesson to a module
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "module id"
// @Param   body body service.LessonRequest true "lesson fields"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 403 {object} util.Response
// @Router /api/instructor/modules/{id}/lessons [post]
func (c *CourseController) AddLesson(ctx *gin.Context) {
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.Catalog.AddLesson(util.GetUserFromContext(ctx), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// UploadLessonVideo godoc
// @Summary Upload a lesson video
// @Description Stores the video and probes it for duration
// @Tags instructor
// @Accept  mpfd
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "lesson id"
// @Param   file formData file true "video file"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response
// @Router /api/instructor/lessons/{id}/video [post]
func (c *CourseController) UploadLessonVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	lesson, err := c.Catalog.UploadLessonVideo(ctx.Request.Context(), util.GetUserFromContext(ctx), util.MustParseUint(ctx.Param("id")), file)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// AddAssessment godoc
// @Summary Attach an assessment to a module
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "module id"
// @Param   body body service.AssessmentRequest true "assessment fields"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 403 {object} util.Response
// @Router /api/instructor/modules/{id}/assessments [post]
func (c *CourseController) AddAssessment(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Catalog.AddAssessment(util.GetUserFromContext(ctx), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// AddQuestion godoc
// @Summary Add a question to an assessment
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "assessment id"
// @Param   body body service.QuestionRequest true "question fields"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 403 {object} util.Response
// @Router /api/instructor/assessments/{id}/questions [post]
func (c *CourseController) AddQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Catalog.AddQuestion(util.GetUserFromContext(ctx), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// NextLesson godoc
// @Summary Next lesson after the given one
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "lesson id"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response "no next lesson"
// @Router /api/lessons/{id}/next [get]
func (c *CourseController) NextLesson(ctx *gin.Context) {
	lesson, err := c.Catalog.NextLesson(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}
