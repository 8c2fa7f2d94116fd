package router

import (
	"time"

	"bubbles/config"
	"bubbles/internal/handler"
	"bubbles/internal/middleware"
	"bubbles/internal/repository"
	"bubbles/internal/service"
	"bubbles/internal/ws"
	"bubbles/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client, hub *ws.Hub) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	bubbleRepo := repository.NewBubbleRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	notifSvc := service.NewNotificationService(notificationRepo, bubbleRepo, cfg.Feed.ExcerptLength)
	feedSvc := service.NewFeedService(bubbleRepo, commentRepo, messageRepo, followRepo, notifSvc, hub)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	bubbleHandler := handler.NewBubbleHandler(feedSvc, bubbleRepo, commentRepo, messageRepo, cfg.Feed.TrendingLimit)
	followHandler := handler.NewFollowHandler(feedSvc, followRepo)
	notificationHandler := handler.NewNotificationHandler(notifSvc)
	userHandler := handler.NewUserHandler(userRepo, bubbleRepo, cloud)

	authMw := middleware.AuthRequired(&cfg.JWT)

	r.GET("/ws", ws.Upgrade(&cfg.JWT, &cfg.Feed, hub))

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		api.GET("/bubbles", bubbleHandler.List)
		api.GET("/bubbles/trending", bubbleHandler.Trending)
		api.POST("/bubbles", authMw, bubbleHandler.Create)
		api.POST("/bubbles/:id/like", authMw, bubbleHandler.Like)
		api.GET("/bubbles/:id/comments", bubbleHandler.ListComments)
		api.POST("/bubbles/:id/comments", authMw, bubbleHandler.CreateComment)
		api.GET("/bubbles/:id/messages", bubbleHandler.ListMessages)
		api.POST("/bubbles/:id/messages", authMw, bubbleHandler.SendMessage)

		users := api.Group("/users")
		users.Use(authMw)
		{
			users.GET("/:id", userHandler.Get)
			users.GET("/:id/bubbles", userHandler.Bubbles)
			users.POST("/:id/follow", followHandler.Follow)
			users.DELETE("/:id/follow", followHandler.Unfollow)
			users.GET("/:id/followers", followHandler.Followers)
			users.GET("/:id/following", followHandler.Following)
			users.GET("/:id/is-following", followHandler.IsFollowing)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.PATCH("/profile", userHandler.UpdateProfile)
			me.POST("/avatar", userHandler.UploadAvatar)
		}

		notifications := api.Group("/notifications")
		notifications.Use(authMw)
		{
			notifications.GET("", notificationHandler.List)
			notifications.POST("/mark-read", notificationHandler.MarkAllRead)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
		}
	}

	return r
}
