package app

import (
	"school_survey_backend/docs"
	"school_survey_backend/internal/config"
	"school_survey_backend/internal/middleware"
	"school_survey_backend/internal/model"

	"school_survey_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 审核后台：审核员与管理员均可访问
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
		public.GET("/regions", c.region.GetRegions)

		// 问卷提交与公开查询（仅已通过审核的数据）
		public.POST("/submissions", c.submission.Create)
		public.GET("/submissions", c.submission.PublicQuery)

		// 旧版学校问卷
		public.POST("/school-surveys", c.schoolSurvey.Create)
		public.GET("/school-surveys", c.schoolSurvey.PublicQuery)
	}
}

func (a *App) registerAdminRoutes(authGroup *gin.RouterGroup, c *controllers) {
	admin := authGroup.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Reviewer))
	{
		admin.GET("/submissions", c.submission.Dashboard)
		admin.PATCH("/submissions", c.submission.Edit)
		admin.PATCH("/submissions/review", c.submission.Review)
		admin.GET("/submissions/export", c.submission.Export)

		admin.GET("/school-surveys", c.schoolSurvey.Dashboard)
		admin.PATCH("/school-surveys", c.schoolSurvey.Edit)
		admin.PATCH("/school-surveys/review", c.schoolSurvey.Review)

		admin.POST("/uploads/evidence", c.upload.UploadEvidence)

		// 账号管理仅限管理员
		users := admin.Group("/")
		users.Use(middleware.RoleMiddleware(model.Admin))
		{
			users.POST("/users", c.auth.CreateUser)
		}
	}
}
