package services

import (
	"context"
	"time"

	"blogupBack/internal/models"
	"blogupBack/internal/notify"
)

// Store interfaces kept small so tests can stub them out; the production
// implementations live in internal/repositories.

type ListingStore interface {
	GetListingByID(ctx context.Context, id int) (models.Listing, error)
	IncrementResponsesCount(ctx context.Context, id int) error
}

type ResponseStore interface {
	CreateResponse(ctx context.Context, resp models.Response) (int, error)
	GetResponseByID(ctx context.Context, id int) (models.Response, error)
	MarkAccepted(ctx context.Context, id int, at time.Time) error
	MarkRejected(ctx context.Context, id int, reason string, at time.Time) error
	MarkWithdrawn(ctx context.Context, id int) error
	ListByListingID(ctx context.Context, listingID int) ([]models.Response, error)
	ListByBloggerID(ctx context.Context, bloggerID int) ([]models.Response, error)
	ListByAdvertiserID(ctx context.Context, advertiserID int) ([]models.Response, error)
}

type OfferStore interface {
	CreateOffer(ctx context.Context, offer models.Offer) (int, error)
	GetOfferByID(ctx context.Context, id int) (models.Offer, error)
	HasPendingOffer(ctx context.Context, advertiserID, bloggerID int) (bool, error)
	// Accept переводит pending-оффер в accepted и в той же транзакции
	// создаёт тред; возвращает id созданного отклика.
	Accept(ctx context.Context, offer models.Offer, at time.Time) (int, error)
	MarkRejected(ctx context.Context, id int, reason *string, at time.Time) error
	ListByUserID(ctx context.Context, userID int) ([]models.Offer, error)
}

type MessageStore interface {
	CreateMessage(ctx context.Context, message models.Message) (int, error)
	GetMessageByID(ctx context.Context, id int) (models.Message, error)
	ListByResponseID(ctx context.Context, responseID, page, limit int) ([]models.Message, int, error)
	MarkRead(ctx context.Context, id int, at time.Time) error
	UnreadCountForUser(ctx context.Context, userID int) (int, error)
}

type ThreadStore interface {
	GetThreadParticipants(ctx context.Context, responseID int) (models.ThreadParticipants, error)
}

type ChatStore interface {
	ListChatsByUserID(ctx context.Context, userID int) ([]models.ChatSummary, error)
}

type UserStore interface {
	GetUserByID(ctx context.Context, id int) (models.User, error)
}

// Notifier is the outbox: enqueue never fails and never blocks the caller.
type Notifier interface {
	Enqueue(ev notify.Event)
}

// MessageBroadcaster relays a persisted message to sockets joined to the
// thread room.
type MessageBroadcaster interface {
	BroadcastMessage(responseID int, msg models.Message)
}

// UnreadCounterCache caches per-user unread totals.
type UnreadCounterCache interface {
	Get(ctx context.Context, userID int) (int, bool)
	Set(ctx context.Context, userID, count int)
	Invalidate(ctx context.Context, userID int)
}
