package domain

import "time"

// ReviewDecision enumerates moderation outcomes. Values follow the stored
// review status ordering: 0 approves, 1 rejects.
type ReviewDecision int

const (
	ReviewDecisionApproved ReviewDecision = 0
	ReviewDecisionRejected ReviewDecision = 1
)

// Valid reports whether the decision is one of the two known outcomes.
func (d ReviewDecision) Valid() bool {
	return d == ReviewDecisionApproved || d == ReviewDecisionRejected
}

// ListingStatus returns the lifecycle status a listing moves to when this
// decision is recorded.
func (d ReviewDecision) ListingStatus() ListingStatus {
	if d == ReviewDecisionApproved {
		return ListingStatusApproved
	}
	return ListingStatusRejected
}

// ListingReview is an immutable audit entry capturing one moderation
// decision. A listing accumulates at most one per moderation action.
type ListingReview struct {
	ID          string
	ListingID   string
	ModeratorID string
	Decision    ReviewDecision
	Reason      *string
	ReviewedAt  time.Time
}
