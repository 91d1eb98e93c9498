package routes

import (
	"sti-clinic-server/internal/config"
	"sti-clinic-server/internal/handlers"
	"sti-clinic-server/internal/middleware"
	"sti-clinic-server/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	testHandler := handlers.NewTestHandler(db, cfg)
	resultHandler := handlers.NewResultHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)

	router.Use(middleware.RateLimitMiddleware())

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// The payment gateway calls this without our auth
		public.POST("/payments/notification", paymentHandler.HandleNotification)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Consultant listing is available to any authenticated user
			// so the booking surface can show who is on duty.
			userRoutes.GET("/consultants", userHandler.GetConsultants)

			// Admin-only routes
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// STI test routes
		testRoutes := private.Group("/tests")
		{
			// Customers book for themselves
			testRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleCustomer), testHandler.BookTest)
			testRoutes.GET("/slots", testHandler.GetSlotAvailability)

			// Customers see their own tests, management roles see all
			testRoutes.GET("", testHandler.GetTests)
			testRoutes.GET("/:id", testHandler.GetTestByID)

			// Status transitions: guard-checked in the handler; customers
			// may only cancel their own bookings (enforced in handler)
			testRoutes.PATCH("/:id/status", testHandler.UpdateTestStatus)

			// Result entry is restricted to the clinical roles
			testRoutes.PUT("/:id/results",
				middleware.RoleAuthMiddleware(models.RoleStaff, models.RoleConsultant),
				resultHandler.UpsertResult)
		}

		// Notification routes
		notificationRoutes := private.Group("/notifications")
		{
			notificationRoutes.GET("", notificationHandler.GetNotifications)
			notificationRoutes.PATCH("/:id/read", notificationHandler.MarkNotificationRead)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
