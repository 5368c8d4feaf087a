package users

import (
	"github.com/aibutsu/server/aibutsu/conversations"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the per-user chat listing endpoint.
func RegisterRoutes(router *gin.RouterGroup, repo *conversations.Repository) {
	router.GET("/user_chats/:user_id", ChatsHandler(repo))
}
