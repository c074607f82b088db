package models

import (
	"time"
)

// ThreadParticipants are the two identities entitled to read and write a
// thread, taken from the owning response row. Status carries the row's
// status: a thread is live only while the response is accepted.
type ThreadParticipants struct {
	BloggerID    int    `json:"blogger_id"`
	AdvertiserID int    `json:"advertiser_id"`
	Status       string `json:"-"`
}

// Contains reports whether the user is one of the two participants.
func (p ThreadParticipants) Contains(userID int) bool {
	return userID == p.BloggerID || userID == p.AdvertiserID
}

// Other returns the counterpart of the given participant.
func (p ThreadParticipants) Other(userID int) int {
	if userID == p.BloggerID {
		return p.AdvertiserID
	}
	return p.BloggerID
}

// ChatUser is the short participant card shown in the chat list.
type ChatUser struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// ChatSummary is a computed per-thread view: the thread is identified by the
// accepted response, the two participants come from the response row.
type ChatSummary struct {
	ResponseID   int       `json:"response_id"`
	ListingID    *int      `json:"listing_id,omitempty"`
	OfferID      *int      `json:"offer_id,omitempty"`
	ListingTitle string    `json:"listing_title,omitempty"`
	Blogger      ChatUser  `json:"blogger"`
	Advertiser   ChatUser  `json:"advertiser"`
	LastMessage  *Message  `json:"last_message,omitempty"`
	UnreadCount  int       `json:"unread_count"`
	CreatedAt    time.Time `json:"created_at"`
}
