package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vperic/linguachat/internal/domain"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

const messageColumns = `id, conversation_id, sender_id, text, translated_text, sender_language,
	attachments, link_preview, read, edited, edited_at, created_at`

// Create persists the message. created_at is assigned by the database clock
// so ordering within a conversation does not depend on skewed client clocks.
func (r *MessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages
			(id, conversation_id, sender_id, text, translated_text, sender_language,
			 attachments, link_preview, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, now())
		RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		msg.ID, msg.ConversationID, msg.SenderID, msg.Text, msg.TranslatedText,
		msg.SenderLanguage, msg.Attachments, msg.LinkPreview,
	).Scan(&msg.CreatedAt)
}

func (r *MessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	var m domain.Message
	err := r.pool.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id).Scan(
		&m.ID, &m.ConversationID, &m.SenderID, &m.Text, &m.TranslatedText, &m.SenderLanguage,
		&m.Attachments, &m.LinkPreview, &m.Read, &m.Edited, &m.EditedAt, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID string, before *uuid.UUID, limit int) ([]domain.Message, error) {
	var query string
	var args []any

	// id breaks ties between messages sharing a created_at, so the cursor
	// never skips or repeats a row.
	if before != nil {
		query = fmt.Sprintf(`
			SELECT `+messageColumns+`
			FROM messages
			WHERE conversation_id = $1
				AND (created_at, id) < (SELECT created_at, id FROM messages WHERE id = $2)
			ORDER BY created_at DESC, id DESC
			LIMIT %d`, limit)
		args = []any{conversationID, *before}
	} else {
		query = fmt.Sprintf(`
			SELECT `+messageColumns+`
			FROM messages
			WHERE conversation_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT %d`, limit)
		args = []any{conversationID}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(
			&m.ID, &m.ConversationID, &m.SenderID, &m.Text, &m.TranslatedText, &m.SenderLanguage,
			&m.Attachments, &m.LinkPreview, &m.Read, &m.Edited, &m.EditedAt, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	// Reverse to chronological order (query returns DESC)
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, rows.Err()
}

func (r *MessageRepo) Update(ctx context.Context, msg *domain.Message) error {
	query := `
		UPDATE messages
		SET text = $1, translated_text = $2, edited = true, edited_at = now()
		WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, msg.Text, msg.TranslatedText, msg.ID)
	return err
}

func (r *MessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return err
}

// MarkRead flags every message in the conversation not sent by the reader.
func (r *MessageRepo) MarkRead(ctx context.Context, conversationID string, readerID uuid.UUID) error {
	query := `
		UPDATE messages
		SET read = true
		WHERE conversation_id = $1 AND sender_id != $2 AND NOT read`
	_, err := r.pool.Exec(ctx, query, conversationID, readerID)
	return err
}
