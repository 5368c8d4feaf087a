package chat

import (
	"context"
	"net/http"

	"github.com/aibutsu/server/aibutsu/conversations"
	"github.com/aibutsu/server/internal/answer"
	"github.com/aibutsu/server/internal/chatlog"
	"github.com/aibutsu/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// the thread-reading subset of the conversation repository
type TurnLister interface {
	ListByChat(ctx context.Context, chatID string) ([]conversations.Turn, error)
}

// creates the handler for POST /new_chat
func NewChatHandler(orchestrator *answer.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NewChatRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if !errors.IsValidUUID(req.UserID) {
			errors.BadRequest(c, "invalid user_id", nil)
			return
		}

		result, err := orchestrator.StartThread(c.Request.Context(), req.UserID, req.Question)

		if err == answer.ErrEmptyQuestion {
			errors.BadRequest(c, "質問が空です。", nil)
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to answer question", err)
			return
		}

		c.JSON(http.StatusOK, NewChatResponse{
			ChatID:  result.ChatID,
			Message: "新しいチャットを作成しました",
			Answer:  result.Answer,
			Limited: result.Limited,
		})
	}
}

// creates the handler for POST /chat
func Handler(orchestrator *answer.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if !errors.IsValidUUID(req.ChatID) {
			errors.BadRequest(c, "invalid chat_id", nil)
			return
		}

		if !errors.IsValidUUID(req.UserID) {
			errors.BadRequest(c, "invalid user_id", nil)
			return
		}

		result, err := orchestrator.ContinueThread(c.Request.Context(), req.ChatID, req.UserID, req.Question)

		if err == answer.ErrEmptyQuestion {
			errors.BadRequest(c, "質問が空です。", nil)
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to answer question", err)
			return
		}

		c.JSON(http.StatusOK, ChatResponse{
			ChatID:   req.ChatID,
			Question: req.Question,
			Answer:   result.Answer,
			Limited:  result.Limited,
		})
	}
}

// creates the handler for GET /chat/:chat_id
func GetChatHandler(turns TurnLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chat_id")

		if !errors.IsValidUUID(chatID) {
			errors.BadRequest(c, "invalid chat_id", nil)
			return
		}

		messages, err := turns.ListByChat(c.Request.Context(), chatID)
		if err != nil {
			errors.InternalError(c, "failed to load chat", err)
			return
		}

		if len(messages) == 0 {
			errors.NotFound(c, "chat")
			return
		}

		c.JSON(http.StatusOK, messages)
	}
}

// creates the handler for GET /storage_chat/:chat_id
func StorageChatHandler(logClient *chatlog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chat_id")

		if !errors.IsValidUUID(chatID) {
			errors.BadRequest(c, "invalid chat_id", nil)
			return
		}

		records, err := logClient.Fetch(c.Request.Context(), chatID)
		if err != nil {
			errors.InternalError(c, "failed to load chat log", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"chat_id":  chatID,
			"messages": records,
		})
	}
}
