package services

import (
	"context"
	"log"
	"time"

	"blogupBack/internal/fsm"
	"blogupBack/internal/models"
	"blogupBack/internal/notify"
)

const offerWelcome = "Предложение принято. Обсудите детали сотрудничества."

type OfferService struct {
	OfferRepo   OfferStore
	MessageRepo MessageStore
	UserRepo    UserStore
	Notify      Notifier
	Policy      Policy
}

// CreateOffer persists an advertiser's direct proposal to a blogger. At most
// one pending offer may exist per (advertiser, blogger) pair.
func (s *OfferService) CreateOffer(ctx context.Context, actorID int, role string, bloggerID int, message string, proposedBudget float64, deadline *time.Time) (models.Offer, error) {
	if role != models.RoleAdvertiser {
		return models.Offer{}, models.ErrRoleMismatch
	}

	exists, err := s.OfferRepo.HasPendingOffer(ctx, actorID, bloggerID)
	if err != nil {
		return models.Offer{}, err
	}
	if exists {
		return models.Offer{}, models.ErrDuplicatePendingOffer
	}

	offer := models.Offer{
		AdvertiserID:   actorID,
		BloggerID:      bloggerID,
		Message:        message,
		ProposedBudget: proposedBudget,
		Deadline:       deadline,
		Status:         fsm.StatusPending,
		CreatedAt:      time.Now(),
	}
	id, err := s.OfferRepo.CreateOffer(ctx, offer)
	if err != nil {
		return models.Offer{}, err
	}
	offer.ID = id

	s.Notify.Enqueue(notify.Event{
		Type:        notify.EventOfferCreated,
		RecipientID: bloggerID,
		ActorName:   s.userName(ctx, actorID),
		OfferID:     id,
		Amount:      proposedBudget,
	})
	return offer, nil
}

// RespondToOffer lets the targeted blogger accept or reject a pending offer.
// Accepting materializes the chat thread and posts a welcome message; the
// advertiser is notified either way.
func (s *OfferService) RespondToOffer(ctx context.Context, actorID, offerID int, accept bool, rejectionReason *string) (models.Offer, error) {
	offer, err := s.OfferRepo.GetOfferByID(ctx, offerID)
	if err != nil {
		return models.Offer{}, err
	}
	if err := s.Policy.RespondToOffer(actorID, offer); err != nil {
		return models.Offer{}, err
	}

	target := fsm.StatusAccepted
	if !accept {
		target = fsm.StatusRejected
	}
	if !fsm.CanTransitionOffer(offer.Status, target) {
		return models.Offer{}, models.ErrNotPending
	}

	now := time.Now()
	if accept {
		// статус и тред меняются атомарно: принятый оффер без треда
		// уже не починить
		responseID, err := s.OfferRepo.Accept(ctx, offer, now)
		if err != nil {
			return models.Offer{}, err
		}
		offer.Status = fsm.StatusAccepted
		offer.AcceptedAt = &now

		welcome := models.Message{
			ResponseID: responseID,
			SenderID:   actorID,
			Content:    offerWelcome,
			CreatedAt:  now,
		}
		if _, err := s.MessageRepo.CreateMessage(ctx, welcome); err != nil {
			log.Printf("welcome message offer=%d: %v", offerID, err)
		}

		s.Notify.Enqueue(notify.Event{
			Type:        notify.EventOfferAccepted,
			RecipientID: offer.AdvertiserID,
			ActorName:   s.userName(ctx, actorID),
			OfferID:     offerID,
			ResponseID:  responseID,
		})
		return offer, nil
	}

	if err := s.OfferRepo.MarkRejected(ctx, offerID, rejectionReason, now); err != nil {
		return models.Offer{}, err
	}
	offer.Status = fsm.StatusRejected
	offer.RejectionReason = rejectionReason
	offer.RejectedAt = &now

	reason := ""
	if rejectionReason != nil {
		reason = *rejectionReason
	}
	s.Notify.Enqueue(notify.Event{
		Type:        notify.EventOfferRejected,
		RecipientID: offer.AdvertiserID,
		ActorName:   s.userName(ctx, actorID),
		OfferID:     offerID,
		Reason:      reason,
	})
	return offer, nil
}

// GetOffer returns the offer to one of its two parties.
func (s *OfferService) GetOffer(ctx context.Context, actorID, offerID int) (models.Offer, error) {
	offer, err := s.OfferRepo.GetOfferByID(ctx, offerID)
	if err != nil {
		return models.Offer{}, err
	}
	if err := s.Policy.ViewOffer(actorID, offer); err != nil {
		return models.Offer{}, err
	}
	return offer, nil
}

func (s *OfferService) ListMy(ctx context.Context, userID int) ([]models.Offer, error) {
	return s.OfferRepo.ListByUserID(ctx, userID)
}

func (s *OfferService) userName(ctx context.Context, id int) string {
	if s.UserRepo == nil {
		return ""
	}
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return ""
	}
	return user.Name
}
