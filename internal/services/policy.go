package services

import (
	"blogupBack/internal/fsm"
	"blogupBack/internal/models"
)

// Policy is the single place where ownership and participancy rules are
// decided. Every service goes through it instead of repeating inline checks.
type Policy struct{}

// ReviewResponse: only the advertiser who owns the listing (carried on the
// response row) may accept or reject.
func (Policy) ReviewResponse(actorID int, resp models.Response) error {
	if actorID != resp.AdvertiserID {
		return models.ErrForbidden
	}
	return nil
}

// WithdrawResponse: only the blogger who made the bid may withdraw it.
func (Policy) WithdrawResponse(actorID int, resp models.Response) error {
	if actorID != resp.BloggerID {
		return models.ErrForbidden
	}
	return nil
}

// RespondToOffer: only the targeted blogger may accept or reject.
func (Policy) RespondToOffer(actorID int, offer models.Offer) error {
	if actorID != offer.BloggerID {
		return models.ErrForbidden
	}
	return nil
}

// ViewOffer: the offer is visible to its two parties only.
func (Policy) ViewOffer(actorID int, offer models.Offer) error {
	if actorID != offer.AdvertiserID && actorID != offer.BloggerID {
		return models.ErrForbidden
	}
	return nil
}

// ViewThread: messages are visible to the two thread participants, and only
// while the owning response is accepted. A pending, rejected or withdrawn
// response has no thread to read or write.
func (Policy) ViewThread(actorID int, p models.ThreadParticipants) error {
	if !p.Contains(actorID) || p.Status != fsm.StatusAccepted {
		return models.ErrForbidden
	}
	return nil
}

// SendMessage: same rule as reading the thread.
func (pol Policy) SendMessage(actorID int, p models.ThreadParticipants) error {
	return pol.ViewThread(actorID, p)
}

// MarkRead: the reader must be a thread participant and must not be the
// sender. Letting the sender (or anyone else) flip the flag would corrupt
// the counterpart's unread counter.
func (Policy) MarkRead(actorID int, msg models.Message, p models.ThreadParticipants) error {
	if !p.Contains(actorID) || actorID == msg.SenderID {
		return models.ErrForbidden
	}
	return nil
}
