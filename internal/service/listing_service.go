package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/listing-service/internal/domain"
	"github.com/spec-kit/listing-service/internal/events"
	"github.com/spec-kit/listing-service/internal/repository"
	"github.com/spec-kit/listing-service/internal/storage"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// ListingService owns the listing lifecycle: draft creation and editing,
// submission for review, public reads, search and deletion. Status moves
// only along the edges in domain.CanTransition.
type ListingService struct {
	listings   repository.ListingRepository
	media      storage.MediaStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ListingDependencies bundles collaborators for the listing service.
type ListingDependencies struct {
	ListingRepo repository.ListingRepository
	MediaStore  storage.MediaStore
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewListingService constructs the service.
func NewListingService(deps ListingDependencies) *ListingService {
	return &ListingService{
		listings:   deps.ListingRepo,
		media:      deps.MediaStore,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ListingPatch carries the editable content fields of a draft. Nil fields
// are left untouched; identity and ownership are never patchable.
type ListingPatch struct {
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
	Rooms                    *int
	Stories                  *int
	TotalArea                *float64
	Specifications           map[string]bool
	Notes                    *string
	CommunicationPreferences map[string]string
}

// SearchFilter describes the public search parameters.
type SearchFilter struct {
	PropertyType   *int
	OperationType  *int
	StateID        *int
	MunicipalityID *int
	MinPrice       *float64
	MaxPrice       *float64
	MinRooms       *int
	MinStories     *int
	MinArea        *float64
	MaxArea        *float64
	Query          *string
	SortBy         string
	SortAsc        bool
	Limit          int
	Offset         int
}

// CreateDraft inserts an empty listing owned by ownerID with status Draft.
// Always succeeds for an authenticated caller.
func (s *ListingService) CreateDraft(ctx context.Context, ownerID string) (*domain.Listing, error) {
	if ownerID == "" {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	listing := &domain.Listing{
		UserID: ownerID,
		Status: domain.ListingStatusDraft,
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventListingCreated,
		ListingID: listing.ID,
		ActorID:   ownerID,
		Payload:   events.ListingCreatedPayload{OwnerID: ownerID},
	})
	return listing, nil
}

// UpdateDraft merges patch over a draft owned by callerID. Guard order is
// fixed: existence, then draft status, then ownership.
func (s *ListingService) UpdateDraft(ctx context.Context, callerID, listingID string, patch ListingPatch) (*domain.Listing, error) {
	listing, err := s.guardDraftEdit(ctx, callerID, listingID)
	if err != nil {
		return nil, err
	}

	applyPatch(listing, patch)
	listing.UserID = callerID

	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, apperrors.MapError(err)
	}
	return listing, nil
}

// SubmitForReview moves a draft to pending review under the same guards as
// UpdateDraft, using a conditional write so the store enforces the
// draft-status precondition atomically.
func (s *ListingService) SubmitForReview(ctx context.Context, callerID, listingID string) (*domain.Listing, error) {
	listing, err := s.guardDraftEdit(ctx, callerID, listingID)
	if err != nil {
		return nil, err
	}

	ok, err := s.listings.UpdateStatus(ctx, listing.ID, domain.ListingStatusDraft, domain.ListingStatusPendingReview)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !ok {
		return nil, apperrors.NewConflict("listing status changed during submission", nil)
	}
	listing.Status = domain.ListingStatusPendingReview

	s.publishEvent(ctx, events.Event{
		Type:      events.EventListingSubmitted,
		ListingID: listing.ID,
		ActorID:   callerID,
		Payload: events.ListingSubmittedPayload{
			OwnerID: listing.UserID,
			Title:   listing.Title,
		},
	})
	return listing, nil
}

// Delete removes a listing owned by callerID. Any status may be deleted.
// Referenced media blobs are removed best-effort after the row is gone.
func (s *ListingService) Delete(ctx context.Context, callerID, listingID string) error {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("listing", nil)
		}
		return apperrors.MapError(err)
	}
	if listing.UserID != callerID {
		return apperrors.NewForbidden("you do not have permission to delete this listing")
	}

	if err := s.listings.Delete(ctx, listing.ID); err != nil {
		return apperrors.MapError(err)
	}

	media := listing.MediaPaths()
	s.removeMedia(ctx, listing.ID, media)

	s.publishEvent(ctx, events.Event{
		Type:      events.EventListingDeleted,
		ListingID: listing.ID,
		ActorID:   callerID,
		Payload: events.ListingDeletedPayload{
			OwnerID:    listing.UserID,
			MediaCount: len(media),
		},
	})
	return nil
}

// FetchPublic returns a listing by id and counts the view. Every successful
// fetch bumps view_count; a failed bump is logged but does not fail the read.
func (s *ListingService) FetchPublic(ctx context.Context, listingID string) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("listing", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.listings.IncrementViewCount(ctx, listing.ID); err != nil {
		s.logger.Warn("failed to increment view count",
			zap.String("listing_id", listing.ID), zap.Error(err))
	} else {
		listing.ViewCount++
	}
	return listing, nil
}

// Search returns approved listings matching the filter, plus the total
// match count for pagination.
func (s *ListingService) Search(ctx context.Context, filter SearchFilter) ([]domain.Listing, int, error) {
	repoFilter := repository.SearchFilter{
		PropertyType:   filter.PropertyType,
		OperationType:  filter.OperationType,
		StateID:        filter.StateID,
		MunicipalityID: filter.MunicipalityID,
		MinPrice:       filter.MinPrice,
		MaxPrice:       filter.MaxPrice,
		MinRooms:       filter.MinRooms,
		MinStories:     filter.MinStories,
		MinArea:        filter.MinArea,
		MaxArea:        filter.MaxArea,
		Query:          filter.Query,
		SortBy:         filter.SortBy,
		SortAsc:        filter.SortAsc,
		Limit:          filter.Limit,
		Offset:         filter.Offset,
	}
	listings, total, err := s.listings.Search(ctx, repoFilter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return listings, total, nil
}

// ListByOwner returns a user's listings newest first, optionally filtered
// to one status, with an independent total count.
func (s *ListingService) ListByOwner(ctx context.Context, ownerID string, status *domain.ListingStatus, limit, offset int) ([]domain.Listing, int, error) {
	if status != nil && !status.Valid() {
		return nil, 0, apperrors.NewValidationError("invalid status value", nil)
	}
	listings, total, err := s.listings.ListByOwner(ctx, ownerID, status, limit, offset)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return listings, total, nil
}

// guardDraftEdit runs the shared guard ladder for draft mutations:
// existence first, draft status second, ownership last. The order is part
// of the API contract since it decides which error an ambiguous caller sees.
func (s *ListingService) guardDraftEdit(ctx context.Context, callerID, listingID string) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("listing", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if listing.Status != domain.ListingStatusDraft {
		return nil, apperrors.NewForbidden("only listings in draft status can be updated")
	}
	if listing.UserID != callerID {
		return nil, apperrors.NewForbidden("you do not have permission to modify this listing")
	}
	return listing, nil
}

func applyPatch(listing *domain.Listing, patch ListingPatch) {
	if patch.Title != nil {
		listing.Title = patch.Title
	}
	if patch.PropertyType != nil {
		listing.PropertyType = patch.PropertyType
	}
	if patch.Address != nil {
		listing.Address = patch.Address
	}
	if patch.StateID != nil {
		listing.StateID = patch.StateID
	}
	if patch.MunicipalityID != nil {
		listing.MunicipalityID = patch.MunicipalityID
	}
	if patch.Images != nil {
		listing.Images = patch.Images
	}
	if patch.Video != nil {
		listing.Video = patch.Video
	}
	if patch.OperationType != nil {
		listing.OperationType = patch.OperationType
	}
	if patch.SellerPrice != nil {
		listing.SellerPrice = patch.SellerPrice
	}
	if patch.IsNegotiable != nil {
		listing.IsNegotiable = patch.IsNegotiable
	}
	if patch.HighestBiddingPrice != nil {
		listing.HighestBiddingPrice = patch.HighestBiddingPrice
	}
	if patch.PaymentType != nil {
		listing.PaymentType = patch.PaymentType
	}
	if patch.NeighborhoodDescription != nil {
		listing.NeighborhoodDescription = patch.NeighborhoodDescription
	}
	if patch.DocumentsType != nil {
		listing.DocumentsType = patch.DocumentsType
	}
	if patch.Rooms != nil {
		listing.Rooms = patch.Rooms
	}
	if patch.Stories != nil {
		listing.Stories = patch.Stories
	}
	if patch.TotalArea != nil {
		listing.TotalArea = patch.TotalArea
	}
	if patch.Specifications != nil {
		listing.Specifications = patch.Specifications
	}
	if patch.Notes != nil {
		listing.Notes = patch.Notes
	}
	if patch.CommunicationPreferences != nil {
		listing.CommunicationPreferences = patch.CommunicationPreferences
	}
}

// removeMedia attempts to delete every referenced blob. Failures are logged
// and swallowed; cleanup never fails the delete operation.
func (s *ListingService) removeMedia(ctx context.Context, listingID string, paths []string) {
	if s.media == nil {
		return
	}
	for _, path := range paths {
		if err := s.media.Remove(ctx, path); err != nil {
			s.logger.Warn("failed to remove listing media",
				zap.String("listing_id", listingID),
				zap.String("path", path),
				zap.Error(err))
		}
	}
}

func (s *ListingService) publishEvent(ctx context.Context, event events.Event) {
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
