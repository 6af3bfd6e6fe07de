package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/listing-service/internal/domain"
)

// ReviewRepository stores immutable moderation audit entries. Rows are only
// ever inserted and read, never updated.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.ListingReview) error
	ListByListing(ctx context.Context, listingID string) ([]domain.ListingReview, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository builds repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.ListingReview) error {
	const query = `
        INSERT INTO listing_reviews (listing_id, moderator_id, status, reason, reviewed_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		review.ListingID,
		review.ModeratorID,
		review.Decision,
		review.Reason,
		review.ReviewedAt,
	).Scan(&review.ID)
}

func (r *reviewRepository) ListByListing(ctx context.Context, listingID string) ([]domain.ListingReview, error) {
	const query = `
        SELECT id, listing_id, moderator_id, status, reason, reviewed_at
        FROM listing_reviews WHERE listing_id=$1 ORDER BY reviewed_at ASC`
	rows, err := r.pool.Query(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ListingReview
	for rows.Next() {
		var review domain.ListingReview
		if err := rows.Scan(
			&review.ID,
			&review.ListingID,
			&review.ModeratorID,
			&review.Decision,
			&review.Reason,
			&review.ReviewedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}
