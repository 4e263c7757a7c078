package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/liqa/liqa-backend/internal/app/controllers"
	"github.com/liqa/liqa-backend/internal/middleware"
	"github.com/liqa/liqa-backend/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	meetingController *controllers.MeetingController,
	annotationController *controllers.AnnotationController,
	recommendationController *controllers.RecommendationController,
	adminController *controllers.AdminController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Public Meeting routes ---
	meetings := v1.Group("/meetings")
	{
		meetings.GET("", meetingController.GetMeetings)
		meetings.GET("/:id", meetingController.GetMeeting)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		authenticated.GET("/profile", userController.GetProfile)
		authenticated.PUT("/profile", userController.UpdateProfile)
		authenticated.DELETE("/account", userController.DeleteAccount)

		authenticated.POST("/meetings/:id/register", meetingController.RegisterForMeeting)
		authenticated.GET("/meetings/:id/annotations", annotationController.GetAnnotations)
		authenticated.POST("/meetings/:id/annotations", annotationController.CreateAnnotation)

		authenticated.GET("/recommendations", recommendationController.GetRecommendations)

		// Real-time notification channel
		authenticated.GET("/ws", wsHandler.HandleConnection)

		// --- Admin routes ---
		admin := authenticated.Group("")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.POST("/meetings", meetingController.CreateMeeting)
			admin.PUT("/meetings/:id", meetingController.UpdateMeeting)
			admin.DELETE("/meetings/:id", meetingController.DeleteMeeting)

			admin.GET("/admin/users", adminController.GetUsers)
			admin.PATCH("/admin/users/:id/role", adminController.UpdateUserRole)
			admin.DELETE("/admin/users/:id", adminController.DeleteUser)
			admin.GET("/admin/registrations", adminController.GetRegistrations)
			admin.GET("/admin/activity-logs", adminController.GetActivityLogs)
		}
	}
}
