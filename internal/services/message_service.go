package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"blogupBack/internal/models"
	"blogupBack/internal/notify"
)

const previewLimit = 80

type MessageService struct {
	MessageRepo MessageStore
	ThreadRepo  ThreadStore
	UserRepo    UserStore
	Notify      Notifier
	Hub         MessageBroadcaster
	Unread      UnreadCounterCache
	Policy      Policy
}

// SendMessage persists a chat message, fans it out to connected sockets and
// queues a notification for the counterpart.
func (s *MessageService) SendMessage(ctx context.Context, senderID, responseID int, content string, attachments []models.Attachment) (models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" && len(attachments) == 0 {
		return models.Message{}, models.ErrEmptyContent
	}

	participants, err := s.ThreadRepo.GetThreadParticipants(ctx, responseID)
	if err != nil {
		return models.Message{}, err
	}
	if err := s.Policy.SendMessage(senderID, participants); err != nil {
		return models.Message{}, err
	}

	for i := range attachments {
		if attachments[i].ID == "" {
			attachments[i].ID = uuid.New().String()
		}
	}

	msg := models.Message{
		ResponseID:  responseID,
		SenderID:    senderID,
		Content:     content,
		Attachments: attachments,
		CreatedAt:   time.Now(),
	}
	id, err := s.MessageRepo.CreateMessage(ctx, msg)
	if err != nil {
		return models.Message{}, err
	}
	msg.ID = id

	recipient := participants.Other(senderID)
	if s.Unread != nil {
		s.Unread.Invalidate(ctx, recipient)
	}
	if s.Hub != nil {
		s.Hub.BroadcastMessage(responseID, msg)
	}
	s.Notify.Enqueue(notify.Event{
		Type:        notify.EventChatMessage,
		RecipientID: recipient,
		ActorName:   s.userName(ctx, senderID),
		ResponseID:  responseID,
		Preview:     truncate(content, previewLimit),
	})
	return msg, nil
}

// ListMessages pages through a thread newest-first for one of its
// participants.
func (s *MessageService) ListMessages(ctx context.Context, actorID, responseID, page, limit int) ([]models.Message, int, bool, error) {
	participants, err := s.ThreadRepo.GetThreadParticipants(ctx, responseID)
	if err != nil {
		return nil, 0, false, err
	}
	if err := s.Policy.ViewThread(actorID, participants); err != nil {
		return nil, 0, false, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	messages, total, err := s.MessageRepo.ListByResponseID(ctx, responseID, page, limit)
	if err != nil {
		return nil, 0, false, err
	}
	hasMore := page*limit < total
	return messages, total, hasMore, nil
}

// MarkRead flags a message as read by its recipient. Re-reading an already
// read message is a no-op, the original read_at is kept.
func (s *MessageService) MarkRead(ctx context.Context, actorID, messageID int) (models.Message, error) {
	msg, err := s.MessageRepo.GetMessageByID(ctx, messageID)
	if err != nil {
		return models.Message{}, err
	}
	participants, err := s.ThreadRepo.GetThreadParticipants(ctx, msg.ResponseID)
	if err != nil {
		return models.Message{}, err
	}
	if err := s.Policy.MarkRead(actorID, msg, participants); err != nil {
		return models.Message{}, err
	}
	if msg.IsRead {
		return msg, nil
	}

	now := time.Now()
	if err := s.MessageRepo.MarkRead(ctx, messageID, now); err != nil {
		return models.Message{}, err
	}
	msg.IsRead = true
	msg.ReadAt = &now
	if s.Unread != nil {
		s.Unread.Invalidate(ctx, actorID)
	}
	return msg, nil
}

// UnreadCount returns the user's total unread messages across all threads,
// served from cache when warm.
func (s *MessageService) UnreadCount(ctx context.Context, userID int) (int, error) {
	if s.Unread != nil {
		if count, ok := s.Unread.Get(ctx, userID); ok {
			return count, nil
		}
	}
	count, err := s.MessageRepo.UnreadCountForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if s.Unread != nil {
		s.Unread.Set(ctx, userID, count)
	}
	return count, nil
}

func (s *MessageService) userName(ctx context.Context, id int) string {
	if s.UserRepo == nil {
		return ""
	}
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return ""
	}
	return user.Name
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "…"
}
