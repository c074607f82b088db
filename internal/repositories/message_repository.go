package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"blogupBack/internal/models"
)

type MessageRepository struct {
	DB *sql.DB
}

func (r *MessageRepository) CreateMessage(ctx context.Context, message models.Message) (int, error) {
	attachments, err := marshalAttachments(message.Attachments)
	if err != nil {
		return 0, err
	}
	query := `INSERT INTO messages (response_id, sender_id, content, attachments, is_read, created_at)
	          VALUES (?, ?, ?, ?, 0, ?)`
	res, err := r.DB.ExecContext(ctx, query,
		message.ResponseID, message.SenderID, message.Content, attachments, message.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *MessageRepository) GetMessageByID(ctx context.Context, id int) (models.Message, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, response_id, sender_id, content, attachments, is_read, read_at, created_at
		FROM messages WHERE id = ?`, id)
	msg, err := scanMessage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Message{}, models.ErrMessageNotFound
		}
		return models.Message{}, err
	}
	return msg, nil
}

// ListByResponseID returns one page of thread messages, newest first, plus
// the total row count for the thread.
func (r *MessageRepository) ListByResponseID(ctx context.Context, responseID, page, limit int) ([]models.Message, int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE response_id = ?`, responseID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, response_id, sender_id, content, attachments, is_read, read_at, created_at
		FROM messages
		WHERE response_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, responseID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, 0, err
		}
		messages = append(messages, msg)
	}
	return messages, total, rows.Err()
}

// MarkRead flips is_read exactly once. Rows already read are left untouched,
// which keeps the operation idempotent and read_at stable.
func (r *MessageRepository) MarkRead(ctx context.Context, id int, at time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE messages SET is_read = 1, read_at = ? WHERE id = ? AND is_read = 0`, at, id)
	return err
}

// UnreadCountForUser counts unread messages addressed to the user across all
// threads the user participates in.
func (r *MessageRepository) UnreadCountForUser(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM messages m
		JOIN responses rs ON rs.id = m.response_id
		WHERE m.is_read = 0
		  AND m.sender_id <> ?
		  AND (rs.blogger_id = ? OR rs.advertiser_id = ?)`,
		userID, userID, userID,
	).Scan(&count)
	return count, err
}

func scanMessage(row interface{ Scan(...any) error }) (models.Message, error) {
	var msg models.Message
	var attachments sql.NullString
	err := row.Scan(
		&msg.ID, &msg.ResponseID, &msg.SenderID, &msg.Content,
		&attachments, &msg.IsRead, &msg.ReadAt, &msg.CreatedAt,
	)
	if err != nil {
		return models.Message{}, err
	}
	if attachments.Valid && attachments.String != "" {
		if err := json.Unmarshal([]byte(attachments.String), &msg.Attachments); err != nil {
			return models.Message{}, err
		}
	}
	return msg, nil
}

func marshalAttachments(attachments []models.Attachment) (any, error) {
	if len(attachments) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(attachments)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
