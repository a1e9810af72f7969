package routes

import (
	"orbit-api/controllers"
	"orbit-api/middleware"
	"orbit-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/register", controllers.Register)

			// Public catalog and content
			public.GET("/innovations", controllers.GetInnovations)
			public.GET("/innovations/:id", controllers.GetInnovation)
			public.GET("/categories", controllers.GetCategories)
			public.GET("/innovators", controllers.GetInnovators)
			public.GET("/news", controllers.GetNewsList)
			public.GET("/news/:slug", controllers.GetNewsBySlug)
			public.GET("/events", controllers.GetEvents)
			public.GET("/carousel", controllers.GetCarousel)

			// Contact form
			public.POST("/contact", controllers.SubmitContactMessage)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "ORBIT Jatim API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Update requests: innovators propose edits to their own entries
			protected.POST("/innovations/:id/update-requests",
				middleware.RequireRole(models.RoleInnovator), controllers.SubmitUpdateRequest)
			protected.GET("/update-requests", controllers.GetMyUpdateRequests)

			// Admin back-office
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				// Update-request moderation queue
				admin.GET("/update-requests", controllers.GetPendingUpdateRequests)
				admin.POST("/update-requests/:id/approve", controllers.ApproveUpdateRequest)
				admin.POST("/update-requests/:id/reject", controllers.RejectUpdateRequest)

				// Catalog management
				admin.POST("/innovations", controllers.CreateInnovation)
				admin.PUT("/innovations/:id", controllers.UpdateInnovation)
				admin.DELETE("/innovations/:id", controllers.DeleteInnovation)

				admin.POST("/categories", controllers.CreateCategory)
				admin.PUT("/categories/:id", controllers.UpdateCategory)
				admin.DELETE("/categories/:id", controllers.DeleteCategory)

				// Editorial content
				admin.POST("/news", controllers.CreateNews)
				admin.PUT("/news/:id", controllers.UpdateNews)
				admin.DELETE("/news/:id", controllers.DeleteNews)

				admin.POST("/events", controllers.CreateEvent)
				admin.PUT("/events/:id", controllers.UpdateEvent)
				admin.DELETE("/events/:id", controllers.DeleteEvent)

				admin.POST("/carousel", controllers.CreateCarouselItem)
				admin.PUT("/carousel/:id", controllers.UpdateCarouselItem)
				admin.DELETE("/carousel/:id", controllers.DeleteCarouselItem)

				// Innovator account approval
				admin.GET("/innovators/pending", controllers.GetPendingInnovators)
				admin.POST("/innovators/:id/approve", controllers.ApproveInnovator)
				admin.POST("/innovators/:id/suspend", controllers.SuspendInnovator)

				// Contact inbox
				admin.GET("/contact-messages", controllers.GetContactMessages)
				admin.POST("/contact-messages/:id/handle", controllers.HandleContactMessage)
			}
		}
	}
}
