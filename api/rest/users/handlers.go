package users

import (
	"net/http"

	"github.com/aibutsu/server/aibutsu/conversations"
	"github.com/aibutsu/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// creates the handler for GET /user_chats/:user_id
func ChatsHandler(repo *conversations.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")

		if !errors.IsValidUUID(userID) {
			errors.BadRequest(c, "invalid user_id", nil)
			return
		}

		threads, err := repo.ListUserThreads(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to list user chats", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user_id": userID,
			"chats":   threads,
		})
	}
}
