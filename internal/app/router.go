package app

import (
	"learnhub_backend/docs"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/leaderboard", c.user.Leaderboard)

		// Employers verify certificates without an account.
		public.GET("/certificates/:serial/verify", c.certificate.Verify)
	}

	// Catalog browsing is open; a token, when present, personalizes nothing
	// yet but keeps activity fresh.
	catalog := router.Group("/api")
	catalog.Use(middleware.TryAuthMiddleware(a.Config))
	{
		catalog.GET("/courses", c.course.List)
		catalog.GET("/courses/:id", c.course.Get)
		catalog.GET("/courses/:id/threads", c.forum.ListThreads)
		catalog.GET("/threads/:id", c.forum.GetThread)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.user.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)

	rg.POST("/courses/:id/enroll", c.enrollment.Enroll)
	rg.GET("/enrollments", c.enrollment.ListMine)
	rg.GET("/courses/:id/progress", c.enrollment.CourseProgress)

	rg.POST("/lessons/:id/progress", c.progress.RecordLessonProgress)
	rg.GET("/lessons/:id/next", c.course.NextLesson)

	rg.GET("/assessments/:id", c.assessment.Get)
	rg.POST("/assessments/:id/submit", c.assessment.Submit)
	rg.GET("/assessments/:id/attempts", c.assessment.ListAttempts)

	rg.GET("/certificates", c.certificate.ListMine)

	rg.POST("/courses/:id/threads", c.forum.CreateThread)
	rg.POST("/threads/:id/replies", c.forum.Reply)
	rg.POST("/threads/:id/upvote", c.forum.Upvote)
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/instructor")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.GET("/courses", c.course.ListMine)
		instructor.POST("/courses", c.course.Create)
		instructor.PUT("/courses/:id", c.course.Update)
		instructor.DELETE("/courses/:id", c.course.Delete)
		instructor.POST("/courses/:id/publish", c.course.Publish)
		instructor.POST("/courses/:id/modules", c.course.AddModule)
		instructor.POST("/modules/:id/lessons", c.course.AddLesson)
		instructor.POST("/modules/:id/assessments", c.course.AddAssessment)
		instructor.POST("/lessons/:id/video", c.course.UploadLessonVideo)
		instructor.POST("/assessments/:id/questions", c.course.AddQuestion)
	}
}
