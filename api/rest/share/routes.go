package share

import (
	"github.com/aibutsu/server/aibutsu/shares"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the shared word endpoints.
func RegisterRoutes(router *gin.RouterGroup, repo *shares.Repository) {
	router.POST("/share_word", ShareHandler(repo))
	router.GET("/words/:slug", GetWordHandler(repo))
	router.GET("/shared_words/all", ListAllHandler(repo))
	router.GET("/shared_words/user/:user_id", ListByUserHandler(repo))
	router.POST("/shared_words/:slug/like", ToggleLikeHandler(repo))
}
