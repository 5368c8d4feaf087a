package shares

import (
	"errors"
	"time"
)

// returned when the same user shares the same content from the same
// chat twice
var ErrAlreadyShared = errors.New("already shared")

// returned when no shared word exists for a slug
var ErrNotFound = errors.New("shared word not found")

// SharedWord is a publicly shared assistant message.
type SharedWord struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	ChatID    string    `json:"chat_id,omitempty"`
	Content   string    `json:"content"`
	Comment   *string   `json:"comment"`
	ShareSlug string    `json:"share_slug"`
	CreatedAt time.Time `json:"created_at"`
	LikeCount int64     `json:"like_count"`
}
