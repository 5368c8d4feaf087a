package favorites

import (
	"github.com/aibutsu/server/aibutsu/shares"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the favorites endpoints.
func RegisterRoutes(router *gin.RouterGroup, repo *shares.Repository) {
	router.GET("/favorites/:user_id", ListHandler(repo))
}
