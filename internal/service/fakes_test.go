package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/listing-service/internal/domain"
	"github.com/spec-kit/listing-service/internal/events"
	"github.com/spec-kit/listing-service/internal/repository"
)

// fakeListingRepo is an in-memory ListingRepository for service tests.
type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[string]*domain.Listing
	nextID   int
	incrErr  error
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[string]*domain.Listing{}}
}

func (f *fakeListingRepo) add(listing *domain.Listing) *domain.Listing {
	f.mu.Lock()
	defer f.mu.Unlock()
	if listing.ID == "" {
		f.nextID++
		listing.ID = fmt.Sprintf("listing-%d", f.nextID)
	}
	copied := *listing
	f.listings[listing.ID] = &copied
	return listing
}

func (f *fakeListingRepo) Create(_ context.Context, listing *domain.Listing) error {
	f.add(listing)
	return nil
}

func (f *fakeListingRepo) Update(_ context.Context, listing *domain.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.listings[listing.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *listing
	f.listings[listing.ID] = &copied
	return nil
}

func (f *fakeListingRepo) GetByID(_ context.Context, id string) (*domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	listing, ok := f.listings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *listing
	return &copied, nil
}

func (f *fakeListingRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.listings[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.listings, id)
	return nil
}

func (f *fakeListingRepo) IncrementViewCount(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.incrErr != nil {
		return f.incrErr
	}
	listing, ok := f.listings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	listing.ViewCount++
	return nil
}

func (f *fakeListingRepo) UpdateStatus(_ context.Context, id string, from, to domain.ListingStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	listing, ok := f.listings[id]
	if !ok || listing.Status != from {
		return false, nil
	}
	listing.Status = to
	return true, nil
}

func (f *fakeListingRepo) Search(_ context.Context, filter repository.SearchFilter) ([]domain.Listing, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Listing
	for _, listing := range f.listings {
		if listing.Status == domain.ListingStatusApproved {
			result = append(result, *listing)
		}
	}
	return result, len(result), nil
}

func (f *fakeListingRepo) ListByOwner(_ context.Context, ownerID string, status *domain.ListingStatus, limit, offset int) ([]domain.Listing, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Listing
	for _, listing := range f.listings {
		if listing.UserID != ownerID {
			continue
		}
		if status != nil && listing.Status != *status {
			continue
		}
		result = append(result, *listing)
	}
	return result, len(result), nil
}

func (f *fakeListingRepo) ListPending(_ context.Context, limit, offset int) ([]domain.PendingListing, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.PendingListing
	for _, listing := range f.listings {
		if listing.Status == domain.ListingStatusPendingReview {
			result = append(result, domain.PendingListing{Listing: *listing})
		}
	}
	return result, len(result), nil
}

func (f *fakeListingRepo) status(id string) domain.ListingStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listings[id].Status
}

// fakeReviewRepo collects review rows in insertion order.
type fakeReviewRepo struct {
	mu      sync.Mutex
	nextID  int
	reviews []domain.ListingReview
}

func (f *fakeReviewRepo) Create(_ context.Context, review *domain.ListingReview) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	review.ID = fmt.Sprintf("review-%d", f.nextID)
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewRepo) ListByListing(_ context.Context, listingID string) ([]domain.ListingReview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.ListingReview
	for _, review := range f.reviews {
		if review.ListingID == listingID {
			result = append(result, review)
		}
	}
	return result, nil
}

// fakeNotificationRepo collects notification rows.
type fakeNotificationRepo struct {
	mu            sync.Mutex
	nextID        int
	notifications []domain.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, notification *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	notification.ID = fmt.Sprintf("notification-%d", f.nextID)
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id string) (*domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, notification := range f.notifications {
		if notification.ID == id {
			copied := notification
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Notification
	for _, notification := range f.notifications {
		if notification.UserID == userID {
			result = append(result, notification)
		}
	}
	return result, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications[i].IsRead = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// fakeMediaStore records Remove calls and optionally fails specific paths.
type fakeMediaStore struct {
	mu        sync.Mutex
	removed   []string
	failPaths map[string]error
}

func (f *fakeMediaStore) Remove(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failPaths[path]; ok {
		return err
	}
	f.removed = append(f.removed, path)
	return nil
}

// capturingDispatcher records published events.
type capturingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (c *capturingDispatcher) published() []events.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]events.Event{}, c.events...)
}
