package repositories

import (
	"context"
	"database/sql"
	"errors"

	"blogupBack/internal/models"
)

type ListingRepository struct {
	DB *sql.DB
}

func (r *ListingRepository) GetListingByID(ctx context.Context, id int) (models.Listing, error) {
	var listing models.Listing
	query := `SELECT id, advertiser_id, title, status, budget, responses_count, views_count, created_at
	          FROM listings WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&listing.ID, &listing.AdvertiserID, &listing.Title, &listing.Status,
		&listing.Budget, &listing.ResponsesCount, &listing.ViewsCount, &listing.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Listing{}, models.ErrListingNotFound
		}
		return models.Listing{}, err
	}
	return listing, nil
}

// IncrementResponsesCount bumps the denormalized counter with a plain
// read-then-write. Concurrent response creation can under-count here; the
// periodic counter sync recomputes the value from actual rows.
func (r *ListingRepository) IncrementResponsesCount(ctx context.Context, id int) error {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT responses_count FROM listings WHERE id = ?`, id).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrListingNotFound
		}
		return err
	}
	_, err = r.DB.ExecContext(ctx, `UPDATE listings SET responses_count = ? WHERE id = ?`, count+1, id)
	return err
}

// SyncResponseCounters recomputes responses_count for every listing from the
// responses table and returns the number of rows touched.
func (r *ListingRepository) SyncResponseCounters(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE listings l
		SET l.responses_count = (
			SELECT COUNT(*) FROM responses rs WHERE rs.listing_id = l.id
		)`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
