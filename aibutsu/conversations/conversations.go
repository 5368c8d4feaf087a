package conversations

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// dimensionality of the embedding column; inserts write a zero vector
// placeholder (embeddings are backfilled by an offline job, not here)
const embeddingDim = 1536

// creates a new conversation turn repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

type Repository struct {
	db *pgxpool.Pool
}

// CreateRoot persists the first turn of a new thread. The turn's id is
// also the thread's chat id.
func (r *Repository) CreateRoot(ctx context.Context, userID, question, answer string) (string, error) {
	chatID := uuid.New().String()

	err := r.insertTurn(ctx, chatID, chatID, userID, question, answer, true)
	if err != nil {
		return "", err
	}

	return chatID, nil
}

// Append persists a follow-up turn on an existing thread.
func (r *Repository) Append(ctx context.Context, chatID, userID, question, answer string) (string, error) {
	turnID := uuid.New().String()

	err := r.insertTurn(ctx, turnID, chatID, userID, question, answer, false)
	if err != nil {
		return "", err
	}

	return turnID, nil
}

func (r *Repository) insertTurn(ctx context.Context, id, chatID, userID, question, answer string, isRoot bool) error {
	embedding := pgvector.NewVector(make([]float32, embeddingDim))

	_, err := r.db.Exec(ctx, queryInsertTurn, id, chatID, userID, question, answer, embedding, isRoot)
	if err != nil {
		return fmt.Errorf("failed to insert conversation turn: %w", err)
	}

	return nil
}

// ListByChat returns every turn of a thread in creation order.
func (r *Repository) ListByChat(ctx context.Context, chatID string) ([]Turn, error) {
	rows, err := r.db.Query(ctx, queryListByChat, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn

	for rows.Next() {
		var t Turn

		err := rows.Scan(&t.ID, &t.ChatID, &t.UserID, &t.Question, &t.Answer, &t.CreatedAt, &t.IsRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation turn: %w", err)
		}

		turns = append(turns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conversation turns: %w", err)
	}

	return turns, nil
}

// ListUserThreads returns the user's threads, newest first.
func (r *Repository) ListUserThreads(ctx context.Context, userID string) ([]ThreadSummary, error) {
	rows, err := r.db.Query(ctx, queryListUserThreads, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user threads: %w", err)
	}
	defer rows.Close()

	threads := []ThreadSummary{}

	for rows.Next() {
		var t ThreadSummary

		if err := rows.Scan(&t.ID, &t.CreatedAt, &t.Question); err != nil {
			return nil, fmt.Errorf("failed to scan thread summary: %w", err)
		}

		threads = append(threads, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user threads: %w", err)
	}

	return threads, nil
}
