package shares

const (
	queryCheckDuplicate = `
		SELECT 1 FROM shared_words
		WHERE user_id = $1 AND chat_id = $2 AND content = $3
	`

	queryInsertSharedWord = `
		INSERT INTO shared_words (user_id, chat_id, content, comment, share_slug, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	queryGetBySlug = `
		SELECT content, user_id, created_at
		FROM shared_words
		WHERE share_slug = $1
	`

	queryListAll = `
		SELECT s.id, s.content, s.share_slug, s.created_at, s.comment,
		       COUNT(f.id) AS like_count
		FROM shared_words s
		LEFT JOIN favorites f ON s.id = f.shared_id
		GROUP BY s.id
		ORDER BY s.created_at DESC
		LIMIT 100
	`

	queryListByUser = `
		SELECT s.id, s.content, s.share_slug, s.created_at, s.comment,
		       COUNT(f.id) AS like_count
		FROM shared_words s
		LEFT JOIN favorites f ON s.id = f.shared_id
		WHERE s.user_id = $1
		GROUP BY s.id
		ORDER BY s.created_at DESC
	`

	queryGetIDBySlug = `
		SELECT id FROM shared_words WHERE share_slug = $1
	`

	queryCheckFavorite = `
		SELECT 1 FROM favorites WHERE user_id = $1 AND shared_id = $2
	`

	queryDeleteFavorite = `
		DELETE FROM favorites WHERE user_id = $1 AND shared_id = $2
	`

	queryInsertFavorite = `
		INSERT INTO favorites (user_id, shared_id, created_at)
		VALUES ($1, $2, NOW())
	`

	queryListFavorites = `
		SELECT s.id, s.content, s.comment, s.share_slug, s.created_at
		FROM favorites f
		JOIN shared_words s ON f.shared_id = s.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`
)
