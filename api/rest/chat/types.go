package chat

// NewChatRequest starts a new thread.
type NewChatRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Question string `json:"question" binding:"required"`
}

// ChatRequest continues an existing thread.
type ChatRequest struct {
	ChatID   string `json:"chat_id" binding:"required"`
	UserID   string `json:"user_id" binding:"required"`
	Question string `json:"question" binding:"required"`
}

// NewChatResponse is returned by POST /new_chat.
type NewChatResponse struct {
	ChatID  string `json:"chat_id"`
	Message string `json:"message"`
	Answer  string `json:"answer"`
	Limited bool   `json:"limited"`
}

// ChatResponse is returned by POST /chat.
type ChatResponse struct {
	ChatID   string `json:"chat_id"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer"`
	Limited  bool   `json:"limited"`
}
