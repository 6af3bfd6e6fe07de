package events

import (
	"time"

	"github.com/spec-kit/listing-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventListingCreated   EventType = "listing_created"
	EventListingSubmitted EventType = "listing_submitted"
	EventListingReviewed  EventType = "listing_reviewed"
	EventListingDeleted   EventType = "listing_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ListingID string      `json:"listing_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ListingCreatedPayload payload.
type ListingCreatedPayload struct {
	OwnerID string `json:"owner_id"`
}

// ListingSubmittedPayload payload.
type ListingSubmittedPayload struct {
	OwnerID string  `json:"owner_id"`
	Title   *string `json:"title,omitempty"`
}

// ListingReviewedPayload payload.
type ListingReviewedPayload struct {
	OwnerID   string                `json:"owner_id"`
	Decision  domain.ReviewDecision `json:"decision"`
	NewStatus domain.ListingStatus  `json:"new_status"`
	Reason    *string               `json:"reason,omitempty"`
}

// ListingDeletedPayload payload.
type ListingDeletedPayload struct {
	OwnerID    string `json:"owner_id"`
	MediaCount int    `json:"media_count"`
}
