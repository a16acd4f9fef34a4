package routes

import (
	"net/http"
	"time"

	"huduma/handlers"
	"huduma/middleware"
	"huduma/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the public register/login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)
	}
}

// RegisterServiceRoutes registers catalog endpoints. Reads are public;
// writes require a provider account.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.Services.ListServices)
		api.GET("/:id", hb.Services.GetService)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.UserRepo))
		protected.POST("", middleware.RequireRoles(models.RoleProvider), hb.Services.CreateService)
		protected.PUT("/:id", middleware.RequireRoles(models.RoleProvider), hb.Services.UpdateService)
		protected.DELETE("/:id", middleware.RequireRoles(models.RoleProvider, models.RoleAdmin), hb.Services.DeleteService)
	}
}

// RegisterOrderRoutes registers the order engine endpoints.
func RegisterOrderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/orders")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireRoles(models.RoleCustomer), hb.Orders.CreateOrder)
		api.GET("", middleware.RequireRoles(models.RoleCustomer), hb.Orders.ListOrders)
		api.GET("/:id", hb.Orders.GetOrder)
	}
}

// RegisterBookingRoutes registers booking reads and status transitions.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("", hb.Bookings.ListBookings)
		api.GET("/:id", hb.Bookings.GetBooking)
		api.PATCH("/:id", hb.Bookings.UpdateStatus)
	}
}

// RegisterPaymentRoutes registers checkout and the webhook. The webhook is
// unauthenticated: Stripe signs the payload instead of carrying a token.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/webhook", hb.Payments.Webhook)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.UserRepo))
		protected.POST("/create-checkout-session", hb.Payments.CreateCheckoutSession)
	}
}

// RegisterReviewRoutes registers review endpoints. Listing is public.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.GET("", hb.Reviews.ListReviews)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.UserRepo), middleware.RequireRoles(models.RoleCustomer))
		protected.POST("", hb.Reviews.CreateReview)
		protected.PUT("/:id", hb.Reviews.UpdateReview)
		protected.DELETE("/:id", hb.Reviews.DeleteReview)
	}
}

// RegisterNotificationRoutes registers the notification inbox endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("", hb.Notifications.ListNotifications)
		api.PATCH("/:id/read", hb.Notifications.MarkRead)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Huduma"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, maxRequestsPerMin int) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(maxRequestsPerMin))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}
