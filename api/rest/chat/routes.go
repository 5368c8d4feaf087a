package chat

import (
	"github.com/aibutsu/server/internal/answer"
	"github.com/aibutsu/server/internal/chatlog"
	"github.com/gin-gonic/gin"
)

// registers chat routes; rateLimit guards the LLM-backed endpoints
func RegisterRoutes(router *gin.RouterGroup, orchestrator *answer.Orchestrator, turns TurnLister, logClient *chatlog.Client, rateLimit gin.HandlerFunc) {
	router.POST("/new_chat", rateLimit, NewChatHandler(orchestrator))
	router.POST("/chat", rateLimit, Handler(orchestrator))
	router.GET("/chat/:chat_id", GetChatHandler(turns))
	router.GET("/storage_chat/:chat_id", StorageChatHandler(logClient))
}
