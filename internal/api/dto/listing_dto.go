package dto

import (
	"time"

	"github.com/spec-kit/listing-service/internal/domain"
)

// UpdateListingRequest is the draft edit payload. All fields are optional;
// absent fields leave the stored value untouched. Identity and ownership
// fields are not accepted.
type UpdateListingRequest struct {
	Title                    *string           `json:"title"`
	PropertyType             *int              `json:"property_type"`
	Address                  *string           `json:"address"`
	StateID                  *int              `json:"state_id"`
	MunicipalityID           *int              `json:"municipality_id"`
	Images                   []string          `json:"images"`
	Video                    *string           `json:"video"`
	OperationType            *int              `json:"operation_type"`
	SellerPrice              *float64          `json:"seller_price"`
	IsNegotiable             *bool             `json:"is_negotiable"`
	HighestBiddingPrice      *float64          `json:"highest_bidding_price"`
	PaymentType              *int              `json:"payment_type"`
	NeighborhoodDescription  *string           `json:"neighborhood_description"`
	DocumentsType            *int              `json:"documents_type"`
	Rooms                    *int              `json:"rooms"`
	Stories                  *int              `json:"stories"`
	TotalArea                *float64          `json:"total_area"`
	Specifications           map[string]bool   `json:"specifications"`
	Notes                    *string           `json:"notes"`
	CommunicationPreferences map[string]string `json:"communication_preferences"`
}

// ListingResponse is the full listing representation.
type ListingResponse struct {
	ID                       string               `json:"id"`
	UserID                   string               `json:"user_id"`
	Title                    *string              `json:"title"`
	PropertyType             *int                 `json:"property_type"`
	Address                  *string              `json:"address"`
	StateID                  *int                 `json:"state_id"`
	MunicipalityID           *int                 `json:"municipality_id"`
	Images                   []string             `json:"images"`
	Video                    *string              `json:"video"`
	OperationType            *int                 `json:"operation_type"`
	SellerPrice              *float64             `json:"seller_price"`
	IsNegotiable             *bool                `json:"is_negotiable"`
	HighestBiddingPrice      *float64             `json:"highest_bidding_price"`
	PaymentType              *int                 `json:"payment_type"`
	NeighborhoodDescription  *string              `json:"neighborhood_description"`
	DocumentsType            *int                 `json:"documents_type"`
	ViewCount                int                  `json:"view_count"`
	Rooms                    *int                 `json:"rooms"`
	Stories                  *int                 `json:"stories"`
	TotalArea                *float64             `json:"total_area"`
	Specifications           map[string]bool      `json:"specifications"`
	Notes                    *string              `json:"notes"`
	CommunicationPreferences map[string]string    `json:"communication_preferences"`
	Status                   domain.ListingStatus `json:"status"`
	CreatedAt                time.Time            `json:"created_at"`
	UpdatedAt                time.Time            `json:"updated_at"`
}

// Pagination carries page metadata alongside list responses.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes the page count from a total and limit.
func NewPagination(total, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

// FromListing maps the domain aggregate to its response shape.
func FromListing(listing *domain.Listing) ListingResponse {
	return ListingResponse{
		ID:                       listing.ID,
		UserID:                   listing.UserID,
		Title:                    listing.Title,
		PropertyType:             listing.PropertyType,
		Address:                  listing.Address,
		StateID:                  listing.StateID,
		MunicipalityID:           listing.MunicipalityID,
		Images:                   listing.Images,
		Video:                    listing.Video,
		OperationType:            listing.OperationType,
		SellerPrice:              listing.SellerPrice,
		IsNegotiable:             listing.IsNegotiable,
		HighestBiddingPrice:      listing.HighestBiddingPrice,
		PaymentType:              listing.PaymentType,
		NeighborhoodDescription:  listing.NeighborhoodDescription,
		DocumentsType:            listing.DocumentsType,
		ViewCount:                listing.ViewCount,
		Rooms:                    listing.Rooms,
		Stories:                  listing.Stories,
		TotalArea:                listing.TotalArea,
		Specifications:           listing.Specifications,
		Notes:                    listing.Notes,
		CommunicationPreferences: listing.CommunicationPreferences,
		Status:                   listing.Status,
		CreatedAt:                listing.CreatedAt,
		UpdatedAt:                listing.UpdatedAt,
	}
}
