package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/riding-hub/internal/domain"
)

// MessageRepository manages the append-only message log.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListConversation(ctx context.Context, a, b string) ([]domain.Message, error)
	ListAll(ctx context.Context) ([]domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository builds repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

const messageColumns = `id, from_id, from_name, to_id, to_name, text, timestamp`

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (from_id, from_name, to_id, to_name, text)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, timestamp`
	return r.pool.QueryRow(ctx, query,
		msg.FromID,
		msg.FromName,
		msg.ToID,
		msg.ToName,
		msg.Text,
	).Scan(&msg.ID, &msg.Timestamp)
}

// ListConversation returns both directions of a two-party thread,
// oldest first.
func (r *messageRepository) ListConversation(ctx context.Context, a, b string) ([]domain.Message, error) {
	const query = `
        SELECT ` + messageColumns + `
        FROM messages
        WHERE (from_id=$1 AND to_id=$2) OR (from_id=$2 AND to_id=$1)
        ORDER BY timestamp ASC`
	return r.fetchMany(ctx, query, a, b)
}

// ListAll returns the whole log newest first, for the admin system log.
func (r *messageRepository) ListAll(ctx context.Context) ([]domain.Message, error) {
	return r.fetchMany(ctx, `SELECT `+messageColumns+` FROM messages ORDER BY timestamp DESC`)
}

func (r *messageRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.FromID,
			&msg.FromName,
			&msg.ToID,
			&msg.ToName,
			&msg.Text,
			&msg.Timestamp,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
