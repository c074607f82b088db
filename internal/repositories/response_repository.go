package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"blogupBack/internal/fsm"
	"blogupBack/internal/models"
)

type ResponseRepository struct {
	DB *sql.DB
}

const responseColumns = `id, listing_id, offer_id, advertiser_id, blogger_id, message, proposed_price,
	status, rejection_reason, accepted_at, rejected_at, created_at`

func scanResponse(row interface{ Scan(...any) error }) (models.Response, error) {
	var resp models.Response
	err := row.Scan(
		&resp.ID, &resp.ListingID, &resp.OfferID, &resp.AdvertiserID, &resp.BloggerID,
		&resp.Message, &resp.ProposedPrice, &resp.Status, &resp.RejectionReason,
		&resp.AcceptedAt, &resp.RejectedAt, &resp.CreatedAt,
	)
	return resp, err
}

func (r *ResponseRepository) CreateResponse(ctx context.Context, resp models.Response) (int, error) {
	query := `INSERT INTO responses (listing_id, offer_id, advertiser_id, blogger_id, message, proposed_price, status, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, query,
		resp.ListingID, resp.OfferID, resp.AdvertiserID, resp.BloggerID,
		resp.Message, resp.ProposedPrice, resp.Status, resp.CreatedAt,
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

func (r *ResponseRepository) GetResponseByID(ctx context.Context, id int) (models.Response, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+responseColumns+` FROM responses WHERE id = ?`, id)
	resp, err := scanResponse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Response{}, models.ErrResponseNotFound
		}
		return models.Response{}, err
	}
	return resp, nil
}

// MarkAccepted flips a pending response to accepted. The WHERE guard keeps
// the transition optimistic: a concurrent review loses and gets ErrNotPending.
func (r *ResponseRepository) MarkAccepted(ctx context.Context, id int, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE responses SET status = ?, accepted_at = ? WHERE id = ? AND status = ?`,
		fsm.StatusAccepted, at, id, fsm.StatusPending,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ResponseRepository) MarkRejected(ctx context.Context, id int, reason string, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE responses SET status = ?, rejection_reason = ?, rejected_at = ? WHERE id = ? AND status = ?`,
		fsm.StatusRejected, reason, at, id, fsm.StatusPending,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ResponseRepository) MarkWithdrawn(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE responses SET status = ? WHERE id = ? AND status = ?`,
		fsm.StatusWithdrawn, id, fsm.StatusPending,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ResponseRepository) ListByListingID(ctx context.Context, listingID int) ([]models.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM responses WHERE listing_id = ? ORDER BY created_at DESC`
	return r.list(ctx, query, listingID)
}

// ListByBloggerID returns the blogger's sent bids, newest first.
func (r *ResponseRepository) ListByBloggerID(ctx context.Context, bloggerID int) ([]models.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM responses WHERE blogger_id = ? AND offer_id IS NULL ORDER BY created_at DESC`
	return r.list(ctx, query, bloggerID)
}

// ListByAdvertiserID returns bids received against the advertiser's listings.
func (r *ResponseRepository) ListByAdvertiserID(ctx context.Context, advertiserID int) ([]models.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM responses WHERE advertiser_id = ? AND offer_id IS NULL ORDER BY created_at DESC`
	return r.list(ctx, query, advertiserID)
}

func (r *ResponseRepository) list(ctx context.Context, query string, args ...any) ([]models.Response, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []models.Response{}
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrNotPending
	}
	return nil
}
