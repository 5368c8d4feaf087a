package favorites

import (
	"net/http"

	"github.com/aibutsu/server/aibutsu/shares"
	"github.com/aibutsu/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// creates the handler for GET /favorites/:user_id
func ListHandler(repo *shares.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")

		if !errors.IsValidUUID(userID) {
			errors.BadRequest(c, "invalid user_id", nil)
			return
		}

		words, err := repo.ListFavorites(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to list favorites", err)
			return
		}

		c.JSON(http.StatusOK, words)
	}
}
