package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"blogupBack/internal/fsm"
	"blogupBack/internal/models"
)

type ChatRepository struct {
	DB *sql.DB
}

// GetThreadParticipants resolves the two identities entitled to a thread.
// The thread id is the response id.
func (r *ChatRepository) GetThreadParticipants(ctx context.Context, responseID int) (models.ThreadParticipants, error) {
	var p models.ThreadParticipants
	err := r.DB.QueryRowContext(ctx,
		`SELECT blogger_id, advertiser_id, status FROM responses WHERE id = ?`, responseID,
	).Scan(&p.BloggerID, &p.AdvertiserID, &p.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ThreadParticipants{}, models.ErrResponseNotFound
		}
		return models.ThreadParticipants{}, err
	}
	return p, nil
}

// ListChatsByUserID enumerates every accepted-response thread the user takes
// part in, with the latest message and the per-thread unread counter.
func (r *ChatRepository) ListChatsByUserID(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	query := `
WITH last_messages AS (
    SELECT m.response_id, m.id, m.sender_id, m.content, m.attachments, m.is_read, m.read_at, m.created_at
    FROM messages m
    JOIN (
        SELECT response_id, MAX(id) AS max_id
        FROM messages
        GROUP BY response_id
    ) t ON t.response_id = m.response_id AND t.max_id = m.id
)

SELECT rs.id, rs.listing_id, rs.offer_id, COALESCE(l.title, '') AS listing_title,
       rs.blogger_id, ub.name, rs.advertiser_id, ua.name,
       lm.id, lm.sender_id, lm.content, lm.attachments, lm.is_read, lm.read_at, lm.created_at,
       (SELECT COUNT(*) FROM messages mu
         WHERE mu.response_id = rs.id AND mu.is_read = 0 AND mu.sender_id <> ?) AS unread_count,
       rs.created_at
FROM responses rs
JOIN users ub ON ub.id = rs.blogger_id
JOIN users ua ON ua.id = rs.advertiser_id
LEFT JOIN listings l ON l.id = rs.listing_id
LEFT JOIN last_messages lm ON lm.response_id = rs.id
WHERE rs.status = ? AND (rs.blogger_id = ? OR rs.advertiser_id = ?)`

	rows, err := r.DB.QueryContext(ctx, query, userID, fsm.StatusAccepted, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := []models.ChatSummary{}
	for rows.Next() {
		var chat models.ChatSummary
		var lmID, lmSenderID sql.NullInt64
		var lmContent, lmAttachments sql.NullString
		var lmIsRead sql.NullBool
		var lmReadAt, lmCreatedAt sql.NullTime

		if err := rows.Scan(
			&chat.ResponseID, &chat.ListingID, &chat.OfferID, &chat.ListingTitle,
			&chat.Blogger.ID, &chat.Blogger.Name, &chat.Advertiser.ID, &chat.Advertiser.Name,
			&lmID, &lmSenderID, &lmContent, &lmAttachments, &lmIsRead, &lmReadAt, &lmCreatedAt,
			&chat.UnreadCount, &chat.CreatedAt,
		); err != nil {
			return nil, err
		}
		chat.Blogger.Role = models.RoleBlogger
		chat.Advertiser.Role = models.RoleAdvertiser

		if lmID.Valid {
			msg := models.Message{
				ID:         int(lmID.Int64),
				ResponseID: chat.ResponseID,
				SenderID:   int(lmSenderID.Int64),
				Content:    lmContent.String,
				IsRead:     lmIsRead.Bool,
				CreatedAt:  lmCreatedAt.Time,
			}
			if lmReadAt.Valid {
				t := lmReadAt.Time
				msg.ReadAt = &t
			}
			if lmAttachments.Valid && lmAttachments.String != "" {
				if err := json.Unmarshal([]byte(lmAttachments.String), &msg.Attachments); err != nil {
					return nil, err
				}
			}
			chat.LastMessage = &msg
		}

		chats = append(chats, chat)
	}
	return chats, rows.Err()
}
