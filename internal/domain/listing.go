package domain

import "time"

// ListingStatus enumerates lifecycle states for listings. The numeric values
// are part of the wire and storage contract and must not be reordered.
type ListingStatus int

const (
	ListingStatusDraft         ListingStatus = 0
	ListingStatusPendingReview ListingStatus = 1
	ListingStatusApproved      ListingStatus = 2
	ListingStatusRejected      ListingStatus = 3
)

// Valid reports whether the status is one of the known lifecycle states.
func (s ListingStatus) Valid() bool {
	return s >= ListingStatusDraft && s <= ListingStatusRejected
}

// OperationType distinguishes sale from rental listings.
type OperationType int

const (
	OperationTypeSale   OperationType = 0
	OperationTypeRental OperationType = 1
)

// Listing is the aggregate for property classifieds. Content fields are
// freely editable while the listing is a draft and frozen afterwards.
type Listing struct {
	ID                       string
	UserID                   string
	Title                    *string
	PropertyType             *int
	Address                  *string
	StateID                  *int
	MunicipalityID           *int
	Images                   []string
	Video                    *string
	OperationType            *int
	SellerPrice              *float64
	IsNegotiable             *bool
	HighestBiddingPrice      *float64
	PaymentType              *int
	NeighborhoodDescription  *string
	DocumentsType            *int
	ViewCount                int
	Rooms                    *int
	Stories                  *int
	TotalArea                *float64
	Specifications           map[string]bool
	Notes                    *string
	CommunicationPreferences map[string]string
	Status                   ListingStatus
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// MediaPaths collects every blob path referenced by the listing.
func (l *Listing) MediaPaths() []string {
	paths := make([]string, 0, len(l.Images)+1)
	paths = append(paths, l.Images...)
	if l.Video != nil && *l.Video != "" {
		paths = append(paths, *l.Video)
	}
	return paths
}

// lifecycle edges; any transition not listed here is invalid.
var allowedTransitions = map[ListingStatus][]ListingStatus{
	ListingStatusDraft:         {ListingStatusDraft, ListingStatusPendingReview},
	ListingStatusPendingReview: {ListingStatusApproved, ListingStatusRejected},
	ListingStatusApproved:      {},
	ListingStatusRejected:      {},
}

// CanTransition reports whether current may move to next along the lifecycle.
// Rejected and Approved are terminal; there is no resubmission path.
func CanTransition(current, next ListingStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// PendingListing is a pending-review row joined with the owner's contact
// summary and resolved location names for the moderation queue.
type PendingListing struct {
	Listing
	OwnerFirstName   *string
	OwnerLastName    *string
	OwnerPhone       *string
	StateName        *string
	MunicipalityName *string
}
