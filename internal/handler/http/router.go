package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/config"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/models"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/handler/http/middleware"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/infrastructure/ratelimit"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/service"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Tokens   *service.TokenService
	Auth     *service.AuthService
	Sessions *service.SessionService
	Trips    *service.TripService
	Limiter  ratelimit.RateLimiter
}

// NewRouter builds the gin engine with all routes and middleware wired.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.CorsMiddleware())

	authHandler := NewAuthHandler(deps.Auth, deps.Sessions, deps.Logger)
	sessionHandler := NewSessionHandler(deps.Sessions, deps.Logger)
	tripHandler := NewTripHandler(deps.Trips, deps.Logger)
	adminHandler := NewAdminHandler(deps.Sessions, deps.Logger)

	authenticated := middleware.AuthMiddleware(deps.Tokens, deps.Logger)
	rl := deps.Config.Security.RateLimiting

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login",
				middleware.RateLimitMiddleware(deps.Limiter, rl.LoginIP, "login", deps.Logger),
				authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/verify-email/:token", authHandler.VerifyEmail)
			auth.POST("/forgot-password",
				middleware.RateLimitMiddleware(deps.Limiter, rl.ForgotPasswordIP, "forgot-password", deps.Logger),
				authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.POST("/resend-verification",
				middleware.RateLimitMiddleware(deps.Limiter, rl.ResendVerification, "resend-verification", deps.Logger),
				authHandler.ResendVerification)

			auth.GET("/verify-token", authenticated, authHandler.VerifyToken)
			auth.GET("/sessions", authenticated, sessionHandler.ListSessions)
		}

		trips := v1.Group("/trips", authenticated)
		{
			trips.POST("", tripHandler.CreateTrip)
			trips.GET("", tripHandler.ListTrips)
			trips.GET("/:id", tripHandler.GetTrip)
			trips.PUT("/:id", tripHandler.UpdateTrip)
			trips.DELETE("/:id", tripHandler.DeleteTrip)
		}

		v1.GET("/community", authenticated, tripHandler.CommunityFeed)

		admin := v1.Group("/admin", authenticated, middleware.RoleMiddleware(models.RoleAdmin))
		{
			admin.POST("/users/:id/force-logout", adminHandler.ForceLogout)
		}
	}

	return router
}
