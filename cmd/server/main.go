package main

import (
	"fmt"
	"log"
	"net/http"

	"socialnet/backend/internal/auth"
	"socialnet/backend/internal/config"
	"socialnet/backend/internal/database"
	"socialnet/backend/internal/handler"
	"socialnet/backend/internal/metrics"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "socialnet/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Socialnet API
// @version         1.0
// @description     REST backend for accounts, friendships, posts, groups and messaging.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Redis backs logout revocation; without it, logout is cookie-clear only.
	if config.AppConfig.RedisAddr != "" {
		if err := auth.InitSessionStore(config.AppConfig.RedisAddr); err != nil {
			log.Printf("Warning: session store unavailable: %v", err)
		}
	}

	router := gin.Default()
	router.Use(metrics.Middleware())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", metrics.Handler())

	// Uploaded images
	router.Static("/static/uploads", config.AppConfig.UploadDir)

	registerRoutes(router)

	addr := ":" + config.AppConfig.Port
	fmt.Println("Server is running on " + addr)
	fmt.Println("Swagger UI is available at http://localhost" + addr + "/swagger/index.html")
	log.Fatal(router.Run(addr))
}

func registerRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Public routes
		api.POST("/register", handler.RegisterUser)
		api.POST("/login", handler.LoginUser)
		api.POST("/request-password-reset", handler.RequestPasswordReset)
		api.POST("/reset-password", handler.ResetPassword)

		// Session-protected routes
		session := api.Group("")
		session.Use(auth.AuthMiddleware())
		{
			session.POST("/logout", handler.LogoutUser)
			session.GET("/me", handler.GetMe)
			session.GET("/users", handler.SearchUsers)
			session.GET("/profile/:id", handler.GetProfile)
			session.PUT("/profile", handler.UpdateProfile)

			// Friendship routes
			session.POST("/friend-request", handler.SendFriendRequest)
			session.PUT("/friend-request/:id", handler.RespondFriendRequest)
			session.GET("/friends", handler.ListFriends)

			// Content routes
			session.GET("/feed", handler.GetFeed)
			session.POST("/posts", handler.CreatePost)
			session.POST("/posts/:id/like", handler.ToggleLike)
			session.POST("/posts/:id/comments", handler.CreateComment)
			session.GET("/posts/:id/comments", handler.ListComments)

			// Group routes
			session.POST("/groups", handler.CreateGroup)
			session.GET("/groups", handler.ListGroups)
			session.POST("/groups/:id/join", handler.JoinGroup)
			session.GET("/groups/:id/members", handler.ListGroupMembers)

			// Messaging routes
			session.POST("/messages", handler.SendMessage)
			session.GET("/messages/user/:id", handler.GetDirectMessages)
			session.GET("/messages/group/:id", handler.GetGroupMessages)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			adminRoutes.GET("/users", handler.AdminListUsers)
			adminRoutes.DELETE("/users/:id", handler.AdminDeleteUser)
			adminRoutes.GET("/posts", handler.AdminListPosts)
			adminRoutes.DELETE("/posts/:id", handler.AdminDeletePost)
			adminRoutes.GET("/dashboard-stats", handler.AdminDashboardStats)
		}
	}
}
