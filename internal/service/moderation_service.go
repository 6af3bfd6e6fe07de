package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/listing-service/internal/domain"
	"github.com/spec-kit/listing-service/internal/events"
	"github.com/spec-kit/listing-service/internal/repository"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// ModerationService records moderator decisions as immutable review entries
// and drives the pending-review transitions. The owner notification is
// written here, in the same operation as the transition, so the
// one-notification-per-transition contract lives in application code.
type ModerationService struct {
	listings      repository.ListingRepository
	reviews       repository.ReviewRepository
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
}

// ModerationDependencies bundles repositories for the moderation service.
type ModerationDependencies struct {
	ListingRepo      repository.ListingRepository
	ReviewRepo       repository.ReviewRepository
	NotificationRepo repository.NotificationRepository
	Dispatcher       events.Dispatcher
}

// NewModerationService constructs the service.
func NewModerationService(deps ModerationDependencies) *ModerationService {
	return &ModerationService{
		listings:      deps.ListingRepo,
		reviews:       deps.ReviewRepo,
		notifications: deps.NotificationRepo,
		dispatcher:    deps.Dispatcher,
	}
}

// ReviewInput describes one moderation decision.
type ReviewInput struct {
	ListingID string
	Decision  domain.ReviewDecision
	Reason    *string
}

// ListPending returns pending-review listings newest first, joined with the
// owner contact summary, for moderator callers only.
func (s *ModerationService) ListPending(ctx context.Context, caller *domain.User, limit, offset int) ([]domain.PendingListing, int, error) {
	if caller == nil {
		return nil, 0, apperrors.NewUnauthorized("authentication required")
	}
	if !caller.IsModerator() {
		return nil, 0, apperrors.NewForbidden("insufficient permissions")
	}
	pending, total, err := s.listings.ListPending(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return pending, total, nil
}

// RecordReview validates the guard ladder in order (identity, permission,
// input, existence, pending status), transitions the listing with a
// conditional write, persists the immutable review record and emits exactly
// one notification to the owner. Returns the created record.
func (s *ModerationService) RecordReview(ctx context.Context, caller *domain.User, input ReviewInput) (*domain.ListingReview, error) {
	if caller == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !caller.IsModerator() {
		return nil, apperrors.NewForbidden("insufficient permissions")
	}
	if input.ListingID == "" {
		return nil, apperrors.NewValidationError("listing_id is required", nil)
	}
	if !input.Decision.Valid() {
		return nil, apperrors.NewValidationError("invalid decision value", nil)
	}
	if input.Decision == domain.ReviewDecisionRejected && emptyReason(input.Reason) {
		return nil, apperrors.NewValidationError("reason is required when rejecting a listing", nil)
	}

	listing, err := s.listings.GetByID(ctx, input.ListingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("listing", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if listing.Status != domain.ListingStatusPendingReview {
		return nil, apperrors.NewValidationError("listing is not in pending review status", nil)
	}

	// Conditional write closes the window between the status check above
	// and the transition: if another moderator got there first, zero rows
	// match and this decision is refused without side effects.
	newStatus := input.Decision.ListingStatus()
	ok, err := s.listings.UpdateStatus(ctx, listing.ID, domain.ListingStatusPendingReview, newStatus)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !ok {
		return nil, apperrors.NewValidationError("listing is not in pending review status", nil)
	}

	review := &domain.ListingReview{
		ListingID:   listing.ID,
		ModeratorID: caller.ID,
		Decision:    input.Decision,
		Reason:      input.Reason,
		ReviewedAt:  time.Now().UTC(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperrors.MapError(err)
	}

	notification := &domain.Notification{
		UserID:    listing.UserID,
		ListingID: &listing.ID,
		Message:   reviewMessage(listing, input.Decision, input.Reason),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventListingReviewed,
		ListingID: listing.ID,
		ActorID:   caller.ID,
		Payload: events.ListingReviewedPayload{
			OwnerID:   listing.UserID,
			Decision:  input.Decision,
			NewStatus: newStatus,
			Reason:    input.Reason,
		},
	})
	return review, nil
}

// ListReviews returns the audit trail for one listing, moderator-only.
func (s *ModerationService) ListReviews(ctx context.Context, caller *domain.User, listingID string) ([]domain.ListingReview, error) {
	if caller == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !caller.IsModerator() {
		return nil, apperrors.NewForbidden("insufficient permissions")
	}
	reviews, err := s.reviews.ListByListing(ctx, listingID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reviews, nil
}

func emptyReason(reason *string) bool {
	return reason == nil || strings.TrimSpace(*reason) == ""
}

func reviewMessage(listing *domain.Listing, decision domain.ReviewDecision, reason *string) string {
	subject := "Your listing"
	if listing.Title != nil && strings.TrimSpace(*listing.Title) != "" {
		subject = fmt.Sprintf("Your listing %q", *listing.Title)
	}
	if decision == domain.ReviewDecisionApproved {
		return fmt.Sprintf("%s has been approved and is now published.", subject)
	}
	return fmt.Sprintf("%s has been rejected: %s", subject, strings.TrimSpace(*reason))
}

func (s *ModerationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
