package main

import (
	"github.com/aibutsu/server/api/rest/chat"
	"github.com/aibutsu/server/api/rest/favorites"
	"github.com/aibutsu/server/api/rest/health"
	"github.com/aibutsu/server/api/rest/share"
	"github.com/aibutsu/server/api/rest/token"
	"github.com/aibutsu/server/api/rest/users"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.GET("/health", health.Handler)
	router.GET("/check_db", health.CheckDBHandler(server.db))

	root := router.Group("/")
	rateLimit := RateLimitMiddleware()

	{
		chat.RegisterRoutes(root, server.services.Orchestrator, server.turnRepo, server.services.ChatLog, rateLimit)
		token.RegisterRoutes(root, server.tokenRepo, server.services.Adjustor, server.config.Quota.FreeDailyLimit, server.config.ResetLocation, server.config.AdminToken)
		share.RegisterRoutes(root, server.shareRepo)
		favorites.RegisterRoutes(root, server.shareRepo)
		users.RegisterRoutes(root, server.turnRepo)
	}
}
