package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coursetalk/coursetalk/internal/app/controllers"
	"github.com/coursetalk/coursetalk/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	questionController *controllers.QuestionController,
	responseController *controllers.ResponseController,
	notificationController *controllers.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		students := authenticated.Group("/students")
		{
			students.GET("/me", studentController.GetMe)
			students.PATCH("/me", studentController.UpdateMe)
		}

		courses := authenticated.Group("/courses")
		{
			courses.POST("", courseController.CreateCourse)
			courses.GET("/mine", courseController.ListMyCourses)
			courses.GET("/activity", courseController.RecentActivity)
			courses.GET("/:id", courseController.GetCourse)
			courses.POST("/:id/enroll", courseController.Enroll)
			courses.DELETE("/:id/enroll", courseController.Unenroll)
			courses.GET("/:id/questions", questionController.ListForCourse)
		}

		questions := authenticated.Group("/questions")
		{
			questions.POST("", questionController.CreateQuestion)
			questions.GET("/:id", questionController.GetQuestion)
			questions.PATCH("/:id", questionController.UpdateQuestion)
			questions.DELETE("/:id", questionController.DeleteQuestion)
			questions.GET("/:id/responses", responseController.ListForQuestion)
		}

		responses := authenticated.Group("/responses")
		{
			responses.POST("", responseController.CreateResponse)
			responses.GET("/:id", responseController.GetResponse)
			responses.PATCH("/:id", responseController.UpdateResponse)
			responses.DELETE("/:id", responseController.DeleteResponse)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.ListNotifications)
			notifications.GET("/unread-count", notificationController.UnreadCount)
			notifications.POST("/read-all", notificationController.MarkAllRead)
			notifications.POST("/:id/read", notificationController.MarkRead)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
