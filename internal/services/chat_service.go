package services

import (
	"context"

	"golang.org/x/exp/slices"

	"blogupBack/internal/models"
)

type ChatService struct {
	ChatRepo ChatStore
}

// ChatList returns the user's threads sorted by recency: threads with
// messages first, newest message on top, then message-less threads by
// creation time.
func (s *ChatService) ChatList(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	chats, err := s.ChatRepo.ListChatsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(chats, func(a, b models.ChatSummary) int {
		switch {
		case a.LastMessage != nil && b.LastMessage != nil:
			return b.LastMessage.CreatedAt.Compare(a.LastMessage.CreatedAt)
		case a.LastMessage != nil:
			return -1
		case b.LastMessage != nil:
			return 1
		default:
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	})
	return chats, nil
}
