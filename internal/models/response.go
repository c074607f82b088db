package models

import (
	"time"
)

// Response is a blogger's bid against a listing. A response created from an
// accepted offer has no listing: ListingID is nil and OfferID points back at
// the offer. AdvertiserID is denormalized here so that thread participants
// can always be resolved from the response row alone.
type Response struct {
	ID              int        `json:"id"`
	ListingID       *int       `json:"listing_id,omitempty"`
	OfferID         *int       `json:"offer_id,omitempty"`
	AdvertiserID    int        `json:"advertiser_id"`
	BloggerID       int        `json:"blogger_id"`
	Message         string     `json:"message"`
	ProposedPrice   float64    `json:"proposed_price"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
