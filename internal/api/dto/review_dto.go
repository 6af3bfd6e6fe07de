package dto

import (
	"time"

	"github.com/spec-kit/listing-service/internal/domain"
)

// CreateReviewRequest is the moderation decision payload. Decision is a
// pointer so an absent field is distinguishable from Approved(0).
type CreateReviewRequest struct {
	ListingID string  `json:"listing_id"`
	Decision  *int    `json:"decision"`
	Reason    *string `json:"reason"`
}

// ReviewResponse is the created audit record.
type ReviewResponse struct {
	ID          string                `json:"id"`
	ListingID   string                `json:"listing_id"`
	ModeratorID string                `json:"moderator_id"`
	Decision    domain.ReviewDecision `json:"decision"`
	Reason      *string               `json:"reason"`
	ReviewedAt  time.Time             `json:"reviewed_at"`
}

// PendingListingResponse is a queue entry for moderators: the listing plus
// the owner contact summary and resolved location names.
type PendingListingResponse struct {
	ListingResponse
	Owner    OwnerSummary    `json:"owner"`
	Location LocationSummary `json:"location"`
}

// OwnerSummary is the owner contact block shown to moderators.
type OwnerSummary struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

// LocationSummary resolves the listing's location ids to names.
type LocationSummary struct {
	State        *string `json:"state"`
	Municipality *string `json:"municipality"`
}

// FromReview maps the domain record to its response shape.
func FromReview(review *domain.ListingReview) ReviewResponse {
	return ReviewResponse{
		ID:          review.ID,
		ListingID:   review.ListingID,
		ModeratorID: review.ModeratorID,
		Decision:    review.Decision,
		Reason:      review.Reason,
		ReviewedAt:  review.ReviewedAt,
	}
}

// FromPendingListing maps a joined queue row to its response shape.
func FromPendingListing(pending *domain.PendingListing) PendingListingResponse {
	return PendingListingResponse{
		ListingResponse: FromListing(&pending.Listing),
		Owner: OwnerSummary{
			FirstName: pending.OwnerFirstName,
			LastName:  pending.OwnerLastName,
			Phone:     pending.OwnerPhone,
		},
		Location: LocationSummary{
			State:        pending.StateName,
			Municipality: pending.MunicipalityName,
		},
	}
}
