package main

import (
	"net/http"

	"reelmatch/backend/internal/auth"
	"reelmatch/backend/internal/cache"
	"reelmatch/backend/internal/config"
	"reelmatch/backend/internal/database"
	"reelmatch/backend/internal/handler"
	"reelmatch/backend/pkg/logger"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "reelmatch/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           ReelMatch API
// @version         1.0
// @description     This is the API for the ReelMatch service.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	defer logger.Sync()

	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Optional Redis match-count cache; disabled when REDIS_ADDR is empty.
	handler.MatchCache = cache.NewMatchCache(config.AppConfig.RedisAddr)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", handler.Signup)
			authRoutes.POST("/login", handler.Login)
			authRoutes.GET("/me", auth.AuthMiddleware(), handler.Me)
		}

		// Movie catalog (public; viewer identity picked up when a token is sent)
		movieRoutes := api.Group("/movies")
		movieRoutes.Use(auth.OptionalAuthMiddleware())
		{
			movieRoutes.GET("", handler.GetMovies)
			movieRoutes.GET("/:id", handler.GetMovieByID)
		}

		// Swipe routes (protected)
		swipeRoutes := api.Group("/swipes")
		swipeRoutes.Use(auth.AuthMiddleware())
		{
			swipeRoutes.POST("", handler.CreateSwipe)
			swipeRoutes.GET("", handler.GetUserSwipes)
		}

		// Match routes (protected)
		matchRoutes := api.Group("/matches")
		matchRoutes.Use(auth.AuthMiddleware())
		{
			matchRoutes.GET("", handler.GetMatches)
			matchRoutes.GET("/count", handler.GetMatchCount) // Must be before /:id
			matchRoutes.GET("/:id", handler.GetMatchByID)
		}

		// User & partner routes (protected)
		userRoutes := api.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("/search", handler.SearchUserByEmail)

			userRoutes.POST("/partner", handler.SetPartner)
			userRoutes.GET("/partner", handler.GetPartner)
			userRoutes.DELETE("/partner", handler.RemovePartner)

			userRoutes.POST("/partner-requests", handler.CreatePartnerRequest)
			userRoutes.GET("/partner-requests", handler.GetPartnerRequests)
			userRoutes.GET("/partner-requests/pending", handler.GetPendingPartnerRequests)
			userRoutes.POST("/partner-requests/respond", handler.RespondToPartnerRequest)
		}
	}

	addr := ":" + config.AppConfig.Port
	logger.Info("Server starting", "addr", addr)
	logger.Info("Swagger UI available", "url", "http://localhost"+addr+"/swagger/index.html")
	if err := router.Run(addr); err != nil {
		logger.Fatal("Server stopped", err)
	}
}
