package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"blogupBack/internal/fsm"
	"blogupBack/internal/models"
)

type OfferRepository struct {
	DB *sql.DB
}

const offerColumns = `id, advertiser_id, blogger_id, message, proposed_budget, deadline,
	status, rejection_reason, accepted_at, rejected_at, created_at`

func scanOffer(row interface{ Scan(...any) error }) (models.Offer, error) {
	var offer models.Offer
	err := row.Scan(
		&offer.ID, &offer.AdvertiserID, &offer.BloggerID, &offer.Message,
		&offer.ProposedBudget, &offer.Deadline, &offer.Status,
		&offer.RejectionReason, &offer.AcceptedAt, &offer.RejectedAt, &offer.CreatedAt,
	)
	return offer, err
}

func (r *OfferRepository) CreateOffer(ctx context.Context, offer models.Offer) (int, error) {
	query := `INSERT INTO offers (advertiser_id, blogger_id, message, proposed_budget, deadline, status, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, query,
		offer.AdvertiserID, offer.BloggerID, offer.Message,
		offer.ProposedBudget, offer.Deadline, offer.Status, offer.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *OfferRepository) GetOfferByID(ctx context.Context, id int) (models.Offer, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = ?`, id)
	offer, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Offer{}, models.ErrOfferNotFound
		}
		return models.Offer{}, err
	}
	return offer, nil
}

// HasPendingOffer reports whether a pending offer already exists for the
// (advertiser, blogger) pair.
func (r *OfferRepository) HasPendingOffer(ctx context.Context, advertiserID, bloggerID int) (bool, error) {
	var x int
	err := r.DB.QueryRowContext(ctx,
		`SELECT 1 FROM offers WHERE advertiser_id = ? AND blogger_id = ? AND status = ? LIMIT 1`,
		advertiserID, bloggerID, fsm.StatusPending,
	).Scan(&x)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Accept flips a pending offer to accepted and materializes its chat thread
// as an already-accepted response row, in one transaction: an accepted offer
// without a thread would be unrepairable, the offer status is terminal.
func (r *OfferRepository) Accept(ctx context.Context, offer models.Offer, at time.Time) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE offers SET status = ?, accepted_at = ? WHERE id = ? AND status = ?`,
		fsm.StatusAccepted, at, offer.ID, fsm.StatusPending,
	)
	if err != nil {
		return 0, err
	}
	if err := requireRow(res); err != nil {
		return 0, err
	}

	res, err = tx.ExecContext(ctx,
		`INSERT INTO responses (listing_id, offer_id, advertiser_id, blogger_id, message, proposed_price, status, accepted_at, created_at)
		 VALUES (NULL, ?, ?, ?, ?, ?, ?, ?, ?)`,
		offer.ID, offer.AdvertiserID, offer.BloggerID,
		offer.Message, offer.ProposedBudget, fsm.StatusAccepted, at, at,
	)
	if err != nil {
		return 0, err
	}
	responseID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(responseID), nil
}

func (r *OfferRepository) MarkRejected(ctx context.Context, id int, reason *string, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE offers SET status = ?, rejection_reason = ?, rejected_at = ? WHERE id = ? AND status = ?`,
		fsm.StatusRejected, reason, at, id, fsm.StatusPending,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// MarkExpired exists for manual/administrative expiry. Nothing in the system
// triggers it on a timer.
func (r *OfferRepository) MarkExpired(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE offers SET status = ? WHERE id = ? AND status = ?`,
		fsm.StatusExpired, id, fsm.StatusPending,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ListByUserID returns offers where the user is either side, newest first.
func (r *OfferRepository) ListByUserID(ctx context.Context, userID int) ([]models.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE advertiser_id = ? OR blogger_id = ? ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := []models.Offer{}
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, rows.Err()
}
