package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/handler"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	amenityHandler *handler.AmenityHandler,
	placeHandler *handler.PlaceHandler,
	reviewHandler *handler.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter middleware.RateLimiter,
	logger *slog.Logger,
) *gin.Engine {
	handler.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.SetTrustedProxies(nil)

	requireAuth := authMiddleware.RequireAuth()
	requireAdmin := authMiddleware.RequireAdmin()

	v1 := r.Group("/api/v1")

	// Public routes
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", middleware.LimitLogin(loginLimiter, logger), authHandler.Login)
		authGroup.POST("/refresh", authHandler.RefreshToken)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/protected", requireAuth, authHandler.Protected)
	}

	// Users: creation is public, the admin flag is checked by the handler
	users := v1.Group("/users")
	{
		users.POST("", authMiddleware.OptionalAuth(), userHandler.Create)
		users.GET("", requireAuth, userHandler.List)
		users.GET("/:user_id", requireAuth, userHandler.Get)
		users.PUT("/:user_id", requireAuth, userHandler.Update)
	}

	amenities := v1.Group("/amenities")
	{
		amenities.GET("", amenityHandler.List)
		amenities.GET("/:amenity_id", amenityHandler.Get)
		amenities.POST("", requireAuth, requireAdmin, amenityHandler.Create)
		amenities.PUT("/:amenity_id", requireAuth, requireAdmin, amenityHandler.Update)
		amenities.DELETE("/:amenity_id", requireAuth, requireAdmin, amenityHandler.Delete)
	}

	places := v1.Group("/places")
	{
		places.GET("", placeHandler.List)
		places.GET("/:place_id", placeHandler.Get)
		places.GET("/:place_id/amenities", placeHandler.ListAmenities)
		places.GET("/:place_id/reviews", placeHandler.ListReviews)
		places.POST("", requireAuth, placeHandler.Create)
		places.PUT("/:place_id", requireAuth, placeHandler.Update)
		places.DELETE("/:place_id", requireAuth, placeHandler.Delete)
		places.POST("/:place_id/reviews", requireAuth, placeHandler.CreateReview)
	}

	reviews := v1.Group("/reviews")
	{
		reviews.GET("", reviewHandler.List)
		reviews.GET("/:review_id", reviewHandler.Get)
		reviews.PUT("/:review_id", requireAuth, reviewHandler.Update)
		reviews.DELETE("/:review_id", requireAuth, reviewHandler.Delete)
	}

	return r
}
