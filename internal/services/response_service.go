package services

import (
	"context"
	"log"
	"strings"
	"time"

	"blogupBack/internal/fsm"
	"blogupBack/internal/models"
	"blogupBack/internal/notify"
)

const responseGreeting = "Отклик принят. Обсудите детали сотрудничества."

type ResponseService struct {
	ResponseRepo ResponseStore
	ListingRepo  ListingStore
	MessageRepo  MessageStore
	UserRepo     UserStore
	Notify       Notifier
	Policy       Policy
}

// CreateResponse persists a blogger's bid against an active listing and
// notifies the listing owner.
func (s *ResponseService) CreateResponse(ctx context.Context, actorID int, role string, listingID int, message string, proposedPrice float64) (models.Response, error) {
	if role != models.RoleBlogger {
		return models.Response{}, models.ErrRoleMismatch
	}

	listing, err := s.ListingRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return models.Response{}, err
	}
	if listing.Status != models.ListingStatusActive {
		return models.Response{}, models.ErrListingNotActive
	}

	resp := models.Response{
		ListingID:     &listingID,
		AdvertiserID:  listing.AdvertiserID,
		BloggerID:     actorID,
		Message:       message,
		ProposedPrice: proposedPrice,
		Status:        fsm.StatusPending,
		CreatedAt:     time.Now(),
	}
	id, err := s.ResponseRepo.CreateResponse(ctx, resp)
	if err != nil {
		return models.Response{}, err
	}
	resp.ID = id

	// Счётчик не атомарный; периодическая сверка чинит расхождения.
	if err := s.ListingRepo.IncrementResponsesCount(ctx, listingID); err != nil {
		log.Printf("responses_count increment listing=%d: %v", listingID, err)
	}

	s.Notify.Enqueue(notify.Event{
		Type:         notify.EventResponseCreated,
		RecipientID:  listing.AdvertiserID,
		ActorName:    s.userName(ctx, actorID),
		ListingTitle: listing.Title,
		ResponseID:   id,
		Amount:       proposedPrice,
	})
	return resp, nil
}

// ReviewResponse lets the listing owner accept or reject a pending bid.
// Accepting opens the chat thread with a greeting message.
func (s *ResponseService) ReviewResponse(ctx context.Context, actorID, responseID int, accept bool, reason string) (models.Response, error) {
	resp, err := s.ResponseRepo.GetResponseByID(ctx, responseID)
	if err != nil {
		return models.Response{}, err
	}
	if err := s.Policy.ReviewResponse(actorID, resp); err != nil {
		return models.Response{}, err
	}

	target := fsm.StatusAccepted
	if !accept {
		target = fsm.StatusRejected
	}
	if !fsm.CanTransitionResponse(resp.Status, target) {
		return models.Response{}, models.ErrNotPending
	}

	now := time.Now()
	if accept {
		if err := s.ResponseRepo.MarkAccepted(ctx, responseID, now); err != nil {
			return models.Response{}, err
		}
		resp.Status = fsm.StatusAccepted
		resp.AcceptedAt = &now

		greeting := models.Message{
			ResponseID: responseID,
			SenderID:   actorID,
			Content:    responseGreeting,
			CreatedAt:  now,
		}
		if _, err := s.MessageRepo.CreateMessage(ctx, greeting); err != nil {
			log.Printf("greeting message response=%d: %v", responseID, err)
		}

		s.Notify.Enqueue(notify.Event{
			Type:         notify.EventResponseAccepted,
			RecipientID:  resp.BloggerID,
			ActorName:    s.userName(ctx, actorID),
			ListingTitle: s.listingTitle(ctx, resp.ListingID),
			ResponseID:   responseID,
		})
		return resp, nil
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.Response{}, models.ErrReasonRequired
	}
	if err := s.ResponseRepo.MarkRejected(ctx, responseID, reason, now); err != nil {
		return models.Response{}, err
	}
	resp.Status = fsm.StatusRejected
	resp.RejectionReason = &reason
	resp.RejectedAt = &now

	s.Notify.Enqueue(notify.Event{
		Type:         notify.EventResponseRejected,
		RecipientID:  resp.BloggerID,
		ActorName:    s.userName(ctx, actorID),
		ListingTitle: s.listingTitle(ctx, resp.ListingID),
		ResponseID:   responseID,
		Reason:       reason,
	})
	return resp, nil
}

// WithdrawResponse lets the owning blogger pull back a pending bid. No
// notification is sent.
func (s *ResponseService) WithdrawResponse(ctx context.Context, actorID, responseID int) error {
	resp, err := s.ResponseRepo.GetResponseByID(ctx, responseID)
	if err != nil {
		return err
	}
	if err := s.Policy.WithdrawResponse(actorID, resp); err != nil {
		return err
	}
	if !fsm.CanTransitionResponse(resp.Status, fsm.StatusWithdrawn) {
		return models.ErrNotPending
	}
	return s.ResponseRepo.MarkWithdrawn(ctx, responseID)
}

// ListForListing returns the bids against a listing for its owner. Anybody
// else gets an empty list, not an error.
func (s *ResponseService) ListForListing(ctx context.Context, actorID, listingID int) ([]models.Response, error) {
	listing, err := s.ListingRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.AdvertiserID != actorID {
		return []models.Response{}, nil
	}
	return s.ResponseRepo.ListByListingID(ctx, listingID)
}

func (s *ResponseService) ListSent(ctx context.Context, bloggerID int) ([]models.Response, error) {
	return s.ResponseRepo.ListByBloggerID(ctx, bloggerID)
}

func (s *ResponseService) ListReceived(ctx context.Context, advertiserID int) ([]models.Response, error) {
	return s.ResponseRepo.ListByAdvertiserID(ctx, advertiserID)
}

func (s *ResponseService) userName(ctx context.Context, id int) string {
	if s.UserRepo == nil {
		return ""
	}
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return ""
	}
	return user.Name
}

func (s *ResponseService) listingTitle(ctx context.Context, listingID *int) string {
	if listingID == nil {
		return ""
	}
	listing, err := s.ListingRepo.GetListingByID(ctx, *listingID)
	if err != nil {
		return ""
	}
	return listing.Title
}
