package share

// ShareWordRequest publishes an assistant message.
type ShareWordRequest struct {
	UserID  string  `json:"user_id" binding:"required"`
	ChatID  string  `json:"chat_id" binding:"required"`
	Content string  `json:"content" binding:"required"`
	Comment *string `json:"comment"`
}

// LikeRequest toggles a like on a shared word.
type LikeRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// ShareWordResponse carries the public slug of a fresh share.
type ShareWordResponse struct {
	Slug string `json:"slug"`
	URL  string `json:"url"`
}
