package conversations

import "time"

// Turn is one question/answer exchange within a chat thread. Turns are
// immutable once written; a thread's turns are ordered by created_at
// and exactly one of them (the first) is the root.
type Turn struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	UserID    string    `json:"user_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	IsRoot    bool      `json:"is_root"`
}

// ThreadSummary is a thread listing entry: the root turn's id doubles
// as the chat id.
type ThreadSummary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Question  string    `json:"question"`
}
