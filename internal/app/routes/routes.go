package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/conduct/internal/app/controllers"
	"github.com/yigit/conduct/internal/app/models/dto"
	"github.com/yigit/conduct/internal/middleware"
)

// Pinger reports whether the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	behaviorTypeController *controllers.BehaviorTypeController,
	behaviorController *controllers.BehaviorController,
	statisticsController *controllers.StatisticsController,
	uploadController *controllers.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	db Pinger,
) {
	api := router.Group("/api")

	// --- Public routes ---
	api.POST("/auth/login", authController.Login)
	api.GET("/health", healthHandler(db))

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/verify", authController.Verify)

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.ListStudents)
			students.POST("", studentController.CreateStudent)
			// static segments before /:id
			students.GET("/template", studentController.DownloadTemplate)
			students.POST("/import", studentController.ImportStudents)
			students.GET("/:id", studentController.GetStudent)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)
			students.GET("/:id/behavior-stats", studentController.GetBehaviorStats)
		}

		behaviorTypes := authenticated.Group("/behavior-types")
		{
			behaviorTypes.GET("", behaviorTypeController.GetAllBehaviorTypes)
			behaviorTypes.POST("", behaviorTypeController.CreateBehaviorType)
			behaviorTypes.PUT("/:id", behaviorTypeController.UpdateBehaviorType)
			behaviorTypes.DELETE("/:id", behaviorTypeController.DeleteBehaviorType)
		}

		behaviors := authenticated.Group("/behaviors")
		{
			behaviors.GET("", behaviorController.ListBehaviors)
			behaviors.POST("", behaviorController.CreateBehavior)
			behaviors.GET("/:id", behaviorController.GetBehavior)
			behaviors.PUT("/:id", behaviorController.UpdateBehavior)
			behaviors.DELETE("/:id", behaviorController.DeleteBehavior)
		}

		stats := authenticated.Group("/statistics")
		{
			stats.GET("", statisticsController.GetStatistics)
			stats.GET("/behavior-trends", statisticsController.GetBehaviorTrends)
			stats.GET("/grade-comparison", statisticsController.GetGradeComparison)
			stats.GET("/behavior-types", statisticsController.GetBehaviorTypeStats)
		}

		authenticated.POST("/upload", uploadController.UploadImage)
	}
}

// healthHandler godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse "Service and database are up"
// @Failure 503 {object} dto.ErrorResponse "Database unreachable"
// @Router /health [get]
func healthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
					dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unreachable")))
				return
			}
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	}
}
