package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/listing-service/internal/domain"
	"github.com/spec-kit/listing-service/internal/events"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func statusPtr(s domain.ListingStatus) *domain.ListingStatus { return &s }

func newListingService(repo *fakeListingRepo, media *fakeMediaStore, dispatcher *capturingDispatcher) *ListingService {
	return NewListingService(ListingDependencies{
		ListingRepo: repo,
		MediaStore:  media,
		Dispatcher:  dispatcher,
		Logger:      zap.NewNop(),
	})
}

func assertHTTPStatus(t *testing.T, err error, status int) *apperrors.DomainError {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
	assert.Equal(t, status, domainErr.HTTPStatus)
	return domainErr
}

func TestCreateDraft(t *testing.T) {
	repo := newFakeListingRepo()
	dispatcher := &capturingDispatcher{}
	svc := newListingService(repo, nil, dispatcher)

	listing, err := svc.CreateDraft(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", listing.UserID)
	assert.Equal(t, domain.ListingStatusDraft, listing.Status)
	assert.Equal(t, 0, listing.ViewCount)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventListingCreated, published[0].Type)
}

func TestCreateDraftRequiresCaller(t *testing.T) {
	svc := newListingService(newFakeListingRepo(), nil, nil)

	_, err := svc.CreateDraft(context.Background(), "")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestUpdateDraftAppliesPatch(t *testing.T) {
	repo := newFakeListingRepo()
	repo.add(&domain.Listing{ID: "l1", UserID: "user-1", Status: domain.ListingStatusDraft})
	svc := newListingService(repo, nil, nil)

	patch := ListingPatch{
		Title:       strPtr("Casa en Caracas"),
		Rooms:       intPtr(3),
		SellerPrice: floatPtr(85000),
		Images:      []string{"listings/l1/a.jpg"},
	}
	listing, err := svc.UpdateDraft(context.Background(), "user-1", "l1", patch)
	require.NoError(t, err)

	assert.Equal(t, "Casa en Caracas", *listing.Title)
	assert.Equal(t, 3, *listing.Rooms)
	assert.Equal(t, 85000.0, *listing.SellerPrice)
	assert.Equal(t, []string{"listings/l1/a.jpg"}, listing.Images)
	assert.Nil(t, listing.Address)
}

func TestUpdateDraftCannotReassignOwner(t *testing.T) {
	repo := newFakeListingRepo()
	repo.add(&domain.Listing{ID: "l1", UserID: "user-1", Status: domain.ListingStatusDraft})
	svc := newListingService(repo, nil, nil)

	listing, err := svc.UpdateDraft(context.Background(), "user-1", "l1", ListingPatch{Title: strPtr("t")})
	require.NoError(t, err)
	assert.Equal(t, "user-1", listing.UserID)
}

func TestDraftGuardOrder(t *testing.T) {
	repo := newFakeListingRepo()
	repo.add(&domain.Listing{ID: "approved", UserID: "user-1", Status: domain.ListingStatusApproved})
	repo.add(&domain.Listing{ID: "foreign", UserID: "user-2", Status: domain.ListingStatusDraft})
	svc := newListingService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.UpdateDraft(ctx, "user-1", "missing", ListingPatch{})
	assertHTTPStatus(t, err, http.StatusNotFound)

	// Non-draft status is reported before ownership, even to a non-owner.
	_, err = svc.UpdateDraft(ctx, "user-1", "approved", ListingPatch{})
	domainErr := assertHTTPStatus(t, err, http.StatusForbidden)
	assert.Contains(t, domainErr.Message, "draft status")

	_, err = svc.UpdateDraft(ctx, "user-1", "foreign", ListingPatch{})
	domainErr = assertHTTPStatus(t, err, http.StatusForbidden)
	assert.Contains(t, domainErr.Message, "permission")
}

func TestSubmitForReview(t *testing.T) {
	repo := newFakeListingRepo()
	repo.add(&domain.Listing{ID: "l1", UserID: "user-1", Status: domain.ListingStatusDraft})
	dispatcher := &capturingDispatcher{}
	svc := newListingService(repo, nil, dispatcher)

	listing, err := svc.SubmitForReview(context.Background(), "user-1", "l1")
	require.NoError(t, err)

	assert.Equal(t, domain.ListingStatusPendingReview, listing.Status)
	assert.Equal(t, domain.ListingStatusPendingReview, repo.status("l1"))

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventListingSubmitted, published[0].Type)
}

func TestSubmitForReviewGuards(t *testing.T) {
	repo := newFakeListingRepo()
	repo.add(&domain.Listing{ID: "pending", UserID: "user-1", Status: domain.ListingStatusPendingReview})
	repo.add(&domain.Listing{ID: "rejected", UserID: "user-1", Status: domain.ListingStatusRejected})
	svc := newListingService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.SubmitForReview(ctx, "user-1", "pending")
	assertHTTPStatus(t, err, http.StatusForbidden)

	// Rejection is terminal; there is no resubmission path.
	_, err = svc.SubmitForReview(ctx, "user-1", "rejected")
	assertHTTPStatus(t, err, http.StatusForbidden)
}

func TestDeleteRemovesMediaBestEffort(t *testing.T) {
	repo := newFakeListingRepo()
	repo.add(&domain.Listing{
		ID:     "l1",
		UserID: "user-1",
		Status: domain.ListingStatusApproved,
		Images: []string{"listings/l1/a.jpg", "listings/l1/b.jpg"},
		Video:  strPtr("listings/l1/tour.mp4"),
	})
	media := &fakeMediaStore{failPaths: map[string]error{
		"listings/l1/b.jpg": errors.New("blob gone"),
	}}
	dispatcher := &capturingDispatcher{}
	svc := newListingService(repo, media, dispatcher)

	err := svc.Delete(context.Background(), "user-1", "l1")
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), "l1")
	assert.Error(t, err)
	assert.Equal(t, []string{"listings/l1/a.jpg", "listings/l1/tour.mp4"}, media.removed)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventListingDeleted, published[0].Type)
}

func TestDeleteGuards(t *testing.T) {
	repo := newFakeListingRepo()
	repo.add(&domain.Listing{ID: "l1", UserID: "user-1", Status: domain.ListingStatusDraft})
	svc := newListingService(repo, nil, nil)
	ctx := context.Background()

	err := svc.Delete(ctx, "user-1", "missing")
	assertHTTPStatus(t, err, http.StatusNotFound)

	err = svc.Delete(ctx, "user-2", "l1")
	assertHTTPStatus(t, err, http.StatusForbidden)
}

func TestFetchPublicCountsViews(t *testing.T) {
	repo := newFakeListingRepo()
	repo.add(&domain.Listing{ID: "l1", UserID: "user-1", Status: domain.ListingStatusApproved})
	svc := newListingService(repo, nil, nil)
	ctx := context.Background()

	listing, err := svc.FetchPublic(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, 1, listing.ViewCount)

	listing, err = svc.FetchPublic(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, 2, listing.ViewCount)
}

func TestFetchPublicSurvivesCounterFailure(t *testing.T) {
	repo := newFakeListingRepo()
	repo.add(&domain.Listing{ID: "l1", UserID: "user-1", Status: domain.ListingStatusApproved, ViewCount: 7})
	repo.incrErr = errors.New("connection reset")
	svc := newListingService(repo, nil, nil)

	listing, err := svc.FetchPublic(context.Background(), "l1")
	require.NoError(t, err)
	assert.Equal(t, 7, listing.ViewCount)
}

func TestFetchPublicNotFound(t *testing.T) {
	svc := newListingService(newFakeListingRepo(), nil, nil)

	_, err := svc.FetchPublic(context.Background(), "missing")
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestListByOwnerValidatesStatus(t *testing.T) {
	svc := newListingService(newFakeListingRepo(), nil, nil)

	bad := domain.ListingStatus(9)
	_, _, err := svc.ListByOwner(context.Background(), "user-1", &bad, 10, 0)
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestListByOwnerFiltersStatus(t *testing.T) {
	repo := newFakeListingRepo()
	repo.add(&domain.Listing{ID: "d1", UserID: "user-1", Status: domain.ListingStatusDraft})
	repo.add(&domain.Listing{ID: "a1", UserID: "user-1", Status: domain.ListingStatusApproved})
	repo.add(&domain.Listing{ID: "x1", UserID: "user-2", Status: domain.ListingStatusDraft})
	svc := newListingService(repo, nil, nil)

	listings, total, err := svc.ListByOwner(context.Background(), "user-1", statusPtr(domain.ListingStatusDraft), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, listings, 1)
	assert.Equal(t, "d1", listings[0].ID)
}
