package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"carbontrack/internal/config"
	"carbontrack/internal/database"
	_ "carbontrack/internal/docs" // Import swagger docs
	"carbontrack/internal/handlers"
	"carbontrack/internal/metrics"
	"carbontrack/internal/middleware"
	"carbontrack/internal/models"
	"carbontrack/internal/services"
)

type routerDeps struct {
	cfg     *config.Config
	metrics *metrics.Prometheus
	pinger  database.Pinger

	userService     services.UserServicer
	adminService    services.AdminServicer
	emissionService services.EmissionServicer
	reportService   services.ReportServicer
	auditService    services.AuditServicer

	authLimiter  *middleware.RateLimiter
	emailLimiter *middleware.RateLimiter
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.GuestSessionHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, "+middleware.GuestSessionHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func newRouter(d routerDeps) *gin.Engine {
	authHandler := handlers.NewAuthHandler(d.userService, d.auditService)
	categoryHandler := handlers.NewCategoryHandler()
	emissionHandler := handlers.NewEmissionHandler(d.emissionService)
	reportHandler := handlers.NewReportHandler(d.reportService)
	adminHandler := handlers.NewAdminHandler(d.adminService)
	healthHandler := handlers.NewHealthHandler(d.pinger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.RequestMetrics(d.metrics))
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", healthHandler.Health)
	router.GET("/metrics", middleware.APIKeyAuth(d.cfg.MetricsAPIKey), gin.WrapH(d.metrics.Handler()))

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth", d.authLimiter.Middleware())
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	v1.GET("/categories", categoryHandler.ListCategories)
	v1.GET("/categories/:id", categoryHandler.GetCategory)
	v1.GET("/tips", categoryHandler.ListTips)

	// Users or guests
	session := v1.Group("/", middleware.OptionalAuth())

	emissions := session.Group("/emissions")
	emissions.GET("", emissionHandler.GetSnapshot)
	emissions.POST("/calculate", emissionHandler.Calculate)
	emissions.POST("/reset", emissionHandler.Reset)
	emissions.GET("/recommendations", emissionHandler.GetRecommendations)

	reports := session.Group("/reports")
	reports.GET("/pdf", reportHandler.DownloadPDF)
	reports.POST("/email", d.emailLimiter.Middleware(), reportHandler.EmailReport)

	// Protected routes
	protected := v1.Group("/", middleware.AuthMiddleware())
	protected.GET("/profile", authHandler.GetProfile)

	admin := protected.Group("/admin", middleware.RequireRole(d.userService, models.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/role", adminHandler.ChangeRole)

	return router
}
