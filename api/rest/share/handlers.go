package share

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/aibutsu/server/aibutsu/shares"
	"github.com/aibutsu/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// creates the handler for POST /share_word
func ShareHandler(repo *shares.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ShareWordRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if !errors.IsValidUUID(req.UserID) || !errors.IsValidUUID(req.ChatID) {
			errors.BadRequest(c, "invalid user_id or chat_id", nil)
			return
		}

		content := strings.TrimSpace(req.Content)
		if content == "" {
			errors.BadRequest(c, "共有内容が空です", nil)
			return
		}

		var comment *string
		if req.Comment != nil {
			trimmed := strings.TrimSpace(*req.Comment)
			if trimmed != "" {
				comment = &trimmed
			}
		}

		slug, err := repo.Share(c.Request.Context(), req.UserID, req.ChatID, content, comment)

		if err == shares.ErrAlreadyShared {
			errors.Conflict(c, "すでに共有されています")
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to share word", err)
			return
		}

		c.JSON(http.StatusOK, ShareWordResponse{
			Slug: slug,
			URL:  fmt.Sprintf("/words/%s", slug),
		})
	}
}

// creates the handler for GET /words/:slug
func GetWordHandler(repo *shares.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		word, err := repo.GetBySlug(c.Request.Context(), c.Param("slug"))

		if err == shares.ErrNotFound {
			errors.NotFound(c, "shared word")
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to load shared word", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"content":    word.Content,
			"user_id":    word.UserID,
			"created_at": word.CreatedAt,
		})
	}
}

// creates the handler for GET /shared_words/all
func ListAllHandler(repo *shares.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		words, err := repo.ListAll(c.Request.Context())
		if err != nil {
			errors.InternalError(c, "failed to list shared words", err)
			return
		}

		c.JSON(http.StatusOK, words)
	}
}

// creates the handler for GET /shared_words/user/:user_id
func ListByUserHandler(repo *shares.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")

		if !errors.IsValidUUID(userID) {
			errors.BadRequest(c, "invalid user_id", nil)
			return
		}

		words, err := repo.ListByUser(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to list shared words", err)
			return
		}

		c.JSON(http.StatusOK, words)
	}
}

// creates the handler for POST /shared_words/:slug/like
func ToggleLikeHandler(repo *shares.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LikeRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if !errors.IsValidUUID(req.UserID) {
			errors.BadRequest(c, "invalid user_id", nil)
			return
		}

		liked, err := repo.ToggleLike(c.Request.Context(), c.Param("slug"), req.UserID)

		if err == shares.ErrNotFound {
			errors.NotFound(c, "shared word")
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to toggle like", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"liked": liked})
	}
}
