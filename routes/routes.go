package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"kovan/handlers"
	"kovan/middleware"
)

type Config struct {
	JWTSecret      string
	AllowedOrigins []string
	RateLimiter    *middleware.IPRateLimiter
	// WebSocket serves GET /ws; it authenticates with the ?token= parameter
	// itself.
	WebSocket http.HandlerFunc
	// Health reports dependency status for GET /health.
	Health func() map[string]string
}

func SetupRouter(h *handlers.Handler, cfg Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		body := gin.H{"status": "ok", "time": time.Now().Unix()}
		if cfg.Health != nil {
			deps := cfg.Health()
			body["dependencies"] = deps
			for _, state := range deps {
				if state != "ok" && state != "disabled" {
					body["status"] = "degraded"
				}
			}
		}
		c.JSON(http.StatusOK, body)
	})

	if cfg.WebSocket != nil {
		router.GET("/ws", gin.WrapF(cfg.WebSocket))
	}

	api := router.Group("/api")
	if cfg.RateLimiter != nil {
		api.Use(middleware.RateLimitMiddleware(cfg.RateLimiter))
	}

	// Public routes (no auth required)
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.GET("/google/login", h.GoogleLoginURL)
	api.GET("/google/callback", h.GoogleCallback)
	api.GET("/vapid-public-key", h.GetVapidPublicKey)

	api.GET("/posts", h.GetFeed)
	api.GET("/posts/:id", h.GetPost)
	api.GET("/posts/:id/comments", h.GetComments)
	api.GET("/hashtags", h.TrendingHashtags)
	api.GET("/hashtags/:tag/posts", h.HashtagPosts)

	api.GET("/users", h.DiscoverUsers)
	api.GET("/users/search", h.SearchUsers)
	api.GET("/users/:id", h.GetUser)
	api.GET("/users/:id/posts", h.GetUserPosts)
	api.GET("/users/:id/followers", h.Followers)
	api.GET("/users/:id/following", h.Following)
	api.GET("/leaderboard", h.Leaderboard)

	api.GET("/programs", h.ListPrograms)
	api.GET("/programs/:id", h.GetProgram)
	api.GET("/badges", h.ListBadges)

	api.GET("/statistics", h.GetStatistics)
	api.GET("/statistics/provinces", h.GetProvinceMap)
	api.GET("/statistics/countries", h.GetCountryMap)
	api.GET("/pages/:name", h.GetPage)
	api.GET("/media/*path", h.GetMediaURL)

	// Protected routes group
	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	// Profile
	protected.GET("/me", h.GetMyProfile)
	protected.PUT("/me", h.UpdateMyProfile)
	protected.POST("/me/avatar", h.UploadAvatar)
	protected.POST("/me/banner", h.UploadBanner)
	protected.POST("/me/skills", h.AddSkill)
	protected.POST("/me/badges", h.AddBadge)
	protected.GET("/me/applications", h.MyApplications)
	protected.POST("/users/:id/follow", h.Follow)
	protected.DELETE("/users/:id/follow", h.Unfollow)

	// Posts
	protected.POST("/posts", h.CreatePost)
	protected.PUT("/posts/:id", h.UpdatePost)
	protected.DELETE("/posts/:id", h.DeletePost)
	protected.POST("/posts/:id/like", h.ToggleLike)
	protected.GET("/posts/:id/liked", h.HasLiked)
	protected.POST("/posts/:id/view", h.ViewPost)
	protected.POST("/posts/:id/images", h.UploadPostImage)
	protected.POST("/posts/:id/comments", h.AddComment)
	protected.DELETE("/posts/:id/comments/:commentId", h.DeleteComment)
	protected.POST("/posts/:id/comments/:commentId/like", h.LikeComment)

	// Programs
	protected.POST("/programs/:id/apply", h.ApplyToProgram)
	protected.POST("/programs/:id/images", h.UploadProgramImage)

	// Notifications
	protected.GET("/notifications", h.GetNotifications)
	protected.POST("/notifications/read-all", h.MarkAllNotificationsRead)
	protected.POST("/notifications/:id/read", h.MarkNotificationRead)
	protected.POST("/push/subscribe", h.SubscribePush)

	// Conversations
	protected.GET("/conversations", h.GetConversations)
	protected.POST("/conversations", h.CreateConversation)
	protected.GET("/conversations/:id/messages", h.GetMessages)
	protected.POST("/conversations/:id/messages", h.SendMessage)
	protected.POST("/conversations/:id/read", h.MarkConversationRead)

	// Add a catch-all for undefined API routes
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Endpoint not found",
				"path":    c.Request.URL.Path,
				"message": "Check the API documentation for available endpoints",
			})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}
