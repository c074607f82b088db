package models

import (
	"time"
)

const (
	ListingStatusActive    = "active"
	ListingStatusPaused    = "paused"
	ListingStatusClosed    = "closed"
	ListingStatusCompleted = "completed"
)

type Listing struct {
	ID             int       `json:"id"`
	AdvertiserID   int       `json:"advertiser_id"`
	Title          string    `json:"title"`
	Status         string    `json:"status"`
	Budget         float64   `json:"budget"`
	ResponsesCount int       `json:"responses_count"`
	ViewsCount     int       `json:"views_count"`
	CreatedAt      time.Time `json:"created_at"`
}
