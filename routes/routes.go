package routes

import (
	"os"
	"rotationcrm-backend/config"
	"rotationcrm-backend/controllers"
	"rotationcrm-backend/utils"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Public booking page endpoint, no auth
	r.POST("/book/:userId", controllers.CreateBookingRequest)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client roster routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
			clients.GET("/:id/appointments", controllers.GetAppointments)
		}

		// Service catalog routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Appointment lifecycle routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.POST("/:id/complete", controllers.CompleteAppointment)
			appointments.POST("/:id/miss", controllers.MissAppointment)
			appointments.PUT("/:id", controllers.EditAppointment)
		}

		// Booking request routes
		bookings := api.Group("/bookings")
		{
			bookings.GET("", controllers.GetBookingRequests)
			bookings.POST("/:id/confirm", controllers.ConfirmBookingRequest)
			bookings.POST("/:id/decline", controllers.DeclineBookingRequest)
			bookings.POST("/:id/cancel", controllers.CancelBookingRequest)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Outreach routes
		outreach := api.Group("/outreach")
		{
			outreach.GET("/logs", controllers.GetOutreachLogs)
			outreach.POST("/sweep", controllers.TriggerOutreachSweep)
		}

		// Settings routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/notifications", controllers.UpdateNotificationSettings)
			profile.GET("/templates", controllers.GetOutreachTemplates)
			profile.PUT("/templates", controllers.UpdateOutreachTemplate)
		}
	}

	return r
}
