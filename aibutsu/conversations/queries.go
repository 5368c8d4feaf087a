package conversations

const (
	queryInsertTurn = `
		INSERT INTO conversations
			(id, chat_id, user_id, question, answer, embedding, created_at, is_root)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), $7)
	`

	queryListByChat = `
		SELECT id, chat_id, user_id, question, answer, created_at, is_root
		FROM conversations
		WHERE chat_id = $1
		ORDER BY created_at ASC
	`

	queryListUserThreads = `
		SELECT id, created_at, question
		FROM conversations
		WHERE user_id = $1 AND is_root = true
		ORDER BY created_at DESC
	`
)
