package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vperic/linguachat/internal/domain"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

const convColumns = `id, user1_id, user2_id, details, last_message, last_message_at,
	user1_unread, user2_unread, user1_archived, user2_archived, created_at, updated_at`

// Upsert creates the conversation or, when the row already exists, refreshes
// only the details snapshot. Unread counters and archive flags of an existing
// row are never overwritten here.
func (r *ConversationRepo) Upsert(ctx context.Context, conv *domain.Conversation) error {
	query := `
		INSERT INTO conversations
			(id, user1_id, user2_id, details, last_message, last_message_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, '', now(), now(), now())
		ON CONFLICT (id) DO UPDATE
		SET details = EXCLUDED.details, updated_at = now()`
	_, err := r.pool.Exec(ctx, query, conv.ID, conv.User1ID, conv.User2ID, conv.Details)
	return err
}

func (r *ConversationRepo) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	var c domain.Conversation
	err := r.pool.QueryRow(ctx, `SELECT `+convColumns+` FROM conversations WHERE id = $1`, id).Scan(
		&c.ID, &c.User1ID, &c.User2ID, &c.Details, &c.LastMessage, &c.LastMessageAt,
		&c.User1Unread, &c.User2Unread, &c.User1Archived, &c.User2Archived,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConversationRepo) ListForUser(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]domain.Conversation, error) {
	query := `
		SELECT ` + convColumns + `
		FROM conversations
		WHERE (user1_id = $1 OR user2_id = $1)`
	if !includeArchived {
		query += `
			AND NOT (user1_id = $1 AND user1_archived)
			AND NOT (user2_id = $1 AND user2_archived)`
	}
	query += `
		ORDER BY last_message_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(
			&c.ID, &c.User1ID, &c.User2ID, &c.Details, &c.LastMessage, &c.LastMessageAt,
			&c.User1Unread, &c.User2Unread, &c.User1Archived, &c.User2Archived,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

// RecordActivity bumps the preview and, when incrementUnreadFor is given,
// increments that participant's unread counter server-side in the same UPDATE.
// Concurrent senders therefore cannot lose increments.
func (r *ConversationRepo) RecordActivity(ctx context.Context, id string, preview string, incrementUnreadFor *uuid.UUID) error {
	if incrementUnreadFor == nil {
		query := `
			UPDATE conversations
			SET last_message = $1, last_message_at = now(), updated_at = now()
			WHERE id = $2`
		_, err := r.pool.Exec(ctx, query, preview, id)
		return err
	}

	query := `
		UPDATE conversations
		SET last_message = $1,
			last_message_at = now(),
			updated_at = now(),
			user1_unread = user1_unread + CASE WHEN user1_id = $2 THEN 1 ELSE 0 END,
			user2_unread = user2_unread + CASE WHEN user2_id = $2 THEN 1 ELSE 0 END
		WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, preview, *incrementUnreadFor, id)
	return err
}

func (r *ConversationRepo) SetUnread(ctx context.Context, id string, userID uuid.UUID, count int) error {
	query := `
		UPDATE conversations
		SET user1_unread = CASE WHEN user1_id = $1 THEN $2 ELSE user1_unread END,
			user2_unread = CASE WHEN user2_id = $1 THEN $2 ELSE user2_unread END,
			updated_at = now()
		WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, userID, count, id)
	return err
}

func (r *ConversationRepo) SetArchived(ctx context.Context, id string, userID uuid.UUID, archived bool) error {
	query := `
		UPDATE conversations
		SET user1_archived = CASE WHEN user1_id = $1 THEN $2 ELSE user1_archived END,
			user2_archived = CASE WHEN user2_id = $1 THEN $2 ELSE user2_archived END,
			updated_at = now()
		WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, userID, archived, id)
	return err
}

// Delete removes the conversation. Messages go with it via ON DELETE CASCADE.
func (r *ConversationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM conversations WHERE id = $1`, id)
	return err
}
