package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wastecare/wastecare-api/config"
	"github.com/wastecare/wastecare-api/controllers"
	"github.com/wastecare/wastecare-api/middleware"
	"github.com/wastecare/wastecare-api/models"
	"github.com/wastecare/wastecare-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting WasteCare API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := config.InitLogger(cfg)

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Appointment{},
		&models.ServiceHistory{},
		&models.AppointmentHistory{},
		&models.Notification{},
		&models.Feedback{},
		&models.Article{},
		&models.JournalEntry{},
		&models.SubscriptionPlan{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize the outbound email transport
	services.InitEmailSender(cfg)

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.RequestID(logger))
	router.Use(cors.Default())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Authentication
		auth := v1.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
		}

		// Everything below requires a valid token
		authed := v1.Group("")
		authed.Use(middleware.RequireAuth())
		{
			authed.GET("/users/me", controllers.GetMyProfile)
			authed.PUT("/users/me", controllers.UpdateMyProfile)

			authed.POST("/appointments", controllers.CreateAppointment)
			authed.GET("/appointments", controllers.ListAppointments)
			authed.GET("/appointments/:id", controllers.GetAppointment)
			authed.PUT("/appointments/:id", controllers.UpdateAppointment)
			authed.DELETE("/appointments/:id", controllers.DeleteAppointment)
			authed.GET("/appointments/:id/history", controllers.GetAppointmentHistory)
			authed.POST("/appointments/:id/status",
				middleware.RequireElevated(), controllers.UpdateAppointmentStatus)

			authed.GET("/schedule/time-slots", controllers.GetTimeSlots)
			authed.GET("/schedule/route", middleware.RequireElevated(), controllers.GetRoute)
			authed.GET("/schedule/map", controllers.GetMapAppointments)
			authed.GET("/schedule/calendar", controllers.GetCalendarEvents)
			authed.GET("/stats/dashboard", controllers.GetDashboardStats)

			authed.GET("/notifications", controllers.ListNotifications)
			authed.POST("/notifications/:id/read", controllers.MarkNotificationRead)
			authed.POST("/notifications/read-all", controllers.MarkAllNotificationsRead)
			authed.POST("/notifications/announce",
				middleware.RequireAdmin(), controllers.CreateAnnouncement)

			authed.POST("/feedback", controllers.CreateFeedback)
			authed.GET("/feedback", controllers.ListFeedback)

			authed.GET("/history", controllers.ListServiceHistory)

			authed.GET("/articles", controllers.ListArticles)
			authed.GET("/plans", controllers.ListPlans)
			authed.GET("/journal", controllers.ListJournalEntries)
			authed.POST("/journal", controllers.CreateJournalEntry)
		}
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "WasteCare API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
