package router

import (
	"net/http"

	"github.com/engineeringdigest/buildtrack-app/controllers"
	"github.com/engineeringdigest/buildtrack-app/middlewares"
	"github.com/engineeringdigest/buildtrack-app/models"
	"github.com/engineeringdigest/buildtrack-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// 50 requests per second per IP across the whole API
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	// Stored site photos
	r.Static("/uploads", utils.UploadDir())

	userCtrl := controllers.NewUserController(db)
	cityCtrl := controllers.NewCityController(db)
	projectCtrl := controllers.NewProjectController(db)
	labourCtrl := controllers.NewLabourController(db)
	supervisorCtrl := controllers.NewSupervisorController(db)
	measurementCtrl := controllers.NewMeasurementController(db)
	dashboardCtrl := controllers.NewDashboardController(db)
	publicCtrl := controllers.NewPublicController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Client view, no auth
	r.GET("/public/project/:id", publicCtrl.GetProjectDetails)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	api.GET("/profile", userCtrl.GetProfile)
	api.GET("/dashboard", dashboardCtrl.GetDashboard)

	// LABOUR & ATTENDANCE (admin and supervisor)
	labour := api.Group("/labour")
	labour.Use(middlewares.RequireRoles(models.RoleAdmin, models.RoleSupervisor))
	{
		labour.GET("/project/:project_id", labourCtrl.GetTeam)
		labour.GET("/project/:project_id/attendance", labourCtrl.GetAttendance)
		labour.POST("", labourCtrl.AddWorker)
		labour.PUT("/:id", labourCtrl.UpdateWorker)
		labour.DELETE("/:id", labourCtrl.DeleteWorker)
		labour.POST("/attendance", labourCtrl.MarkAttendance)
	}

	// MEASUREMENTS & BOQ
	measurements := api.Group("/measurements")
	{
		measurements.GET("/project/:project_id", measurementCtrl.GetProjectBOQ)

		record := measurements.Group("")
		record.Use(middlewares.RequireRoles(models.RoleAdmin, models.RoleSupervisor))
		record.POST("/record", measurementCtrl.RecordMeasurement)

		boq := measurements.Group("/boq")
		boq.Use(middlewares.RequireRoles(models.RoleAdmin))
		{
			boq.POST("", measurementCtrl.AddBOQItem)
			boq.PUT("/:id", measurementCtrl.UpdateBOQItem)
			boq.DELETE("/:id", measurementCtrl.DeleteBOQItem)
		}
	}

	// SUPERVISOR
	supervisor := api.Group("/supervisor")
	supervisor.Use(middlewares.RequireRoles(models.RoleSupervisor, models.RoleAdmin))
	{
		supervisor.GET("/my-projects", supervisorCtrl.MyProjects)
		supervisor.POST("/daily-update", supervisorCtrl.DailyUpdate)
		supervisor.POST("/weekly-update", supervisorCtrl.WeeklyUpdate)
	}

	// ADMIN
	admin := api.Group("/admin")
	admin.Use(middlewares.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/projects", projectCtrl.GetAllProjects)
		admin.GET("/projects/:id", projectCtrl.GetProjectByID)
		admin.POST("/projects", projectCtrl.CreateProject)
		admin.PUT("/projects/:id", projectCtrl.UpdateProject)
		admin.PATCH("/projects/:id/status", projectCtrl.UpdateProjectStatus)
		admin.DELETE("/projects/:id", projectCtrl.DeleteProject)

		admin.GET("/cities", cityCtrl.GetAllCities)
		admin.POST("/cities", cityCtrl.CreateCity)

		admin.GET("/supervisors", projectCtrl.GetSupervisors)
		admin.POST("/post-update", projectCtrl.PostSiteUpdate)
	}

	return r
}
