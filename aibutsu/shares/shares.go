package shares

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new shared-word repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

type Repository struct {
	db *pgxpool.Pool
}

// Share publishes a message under a fresh slug. The same user sharing
// the same content from the same chat twice returns ErrAlreadyShared.
//
// The duplicate check and the insert are separate statements with no
// unique constraint behind them; two identical concurrent shares can
// both pass the check and both land. Known race, harmless duplicate
// rows only.
func (r *Repository) Share(ctx context.Context, userID, chatID, content string, comment *string) (string, error) {
	var exists int

	err := r.db.QueryRow(ctx, queryCheckDuplicate, userID, chatID, content).Scan(&exists)

	if err == nil {
		return "", ErrAlreadyShared
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("failed to check existing share: %w", err)
	}

	slug := generateSlug(slugLength)

	if _, err := r.db.Exec(ctx, queryInsertSharedWord, userID, chatID, content, comment, slug); err != nil {
		return "", fmt.Errorf("failed to insert shared word: %w", err)
	}

	return slug, nil
}

// GetBySlug fetches one shared word by its public slug.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*SharedWord, error) {
	var word SharedWord

	err := r.db.QueryRow(ctx, queryGetBySlug, slug).Scan(&word.Content, &word.UserID, &word.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch shared word: %w", err)
	}

	word.ShareSlug = slug

	return &word, nil
}

// ListAll returns the latest 100 shared words with like counts.
func (r *Repository) ListAll(ctx context.Context) ([]SharedWord, error) {
	return r.list(ctx, queryListAll)
}

// ListByUser returns one user's shared words with like counts.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]SharedWord, error) {
	return r.list(ctx, queryListByUser, userID)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]SharedWord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared words: %w", err)
	}
	defer rows.Close()

	words := []SharedWord{}

	for rows.Next() {
		var w SharedWord

		err := rows.Scan(&w.ID, &w.Content, &w.ShareSlug, &w.CreatedAt, &w.Comment, &w.LikeCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shared word: %w", err)
		}

		words = append(words, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shared words: %w", err)
	}

	return words, nil
}

// ToggleLike flips a user's like on a shared word. Returns the new
// liked state, or ErrNotFound for an unknown slug.
func (r *Repository) ToggleLike(ctx context.Context, slug, userID string) (bool, error) {
	var sharedID int64

	err := r.db.QueryRow(ctx, queryGetIDBySlug, slug).Scan(&sharedID)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrNotFound
	}

	if err != nil {
		return false, fmt.Errorf("failed to resolve shared word: %w", err)
	}

	var exists int

	err = r.db.QueryRow(ctx, queryCheckFavorite, userID, sharedID).Scan(&exists)

	if err == nil {
		if _, err := r.db.Exec(ctx, queryDeleteFavorite, userID, sharedID); err != nil {
			return false, fmt.Errorf("failed to remove like: %w", err)
		}

		return false, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	if _, err := r.db.Exec(ctx, queryInsertFavorite, userID, sharedID); err != nil {
		return false, fmt.Errorf("failed to add like: %w", err)
	}

	return true, nil
}

// ListFavorites returns the shared words a user has liked, newest like
// first.
func (r *Repository) ListFavorites(ctx context.Context, userID string) ([]SharedWord, error) {
	rows, err := r.db.Query(ctx, queryListFavorites, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	words := []SharedWord{}

	for rows.Next() {
		var w SharedWord

		err := rows.Scan(&w.ID, &w.Content, &w.Comment, &w.ShareSlug, &w.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}

		words = append(words, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}

	return words, nil
}
