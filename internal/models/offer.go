package models

import (
	"time"
)

// Offer is an advertiser's direct proposal to one blogger, independent of
// any listing.
type Offer struct {
	ID              int        `json:"id"`
	AdvertiserID    int        `json:"advertiser_id"`
	BloggerID       int        `json:"blogger_id"`
	Message         string     `json:"message"`
	ProposedBudget  float64    `json:"proposed_budget"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
