package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/listing-service/internal/config"
	"github.com/spec-kit/listing-service/internal/domain"
)

func newNotificationService(repo *fakeNotificationRepo) *NotificationService {
	return NewNotificationService(repo, nil, zap.NewNop(), config.NotifyConfig{})
}

func TestListForUser(t *testing.T) {
	repo := &fakeNotificationRepo{}
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &domain.Notification{UserID: "user-1", Message: "one"}))
	require.NoError(t, repo.Create(ctx, &domain.Notification{UserID: "user-2", Message: "two"}))
	svc := newNotificationService(repo)

	items, err := svc.ListForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "one", items[0].Message)
}

func TestMarkRead(t *testing.T) {
	repo := &fakeNotificationRepo{}
	ctx := context.Background()
	notification := &domain.Notification{UserID: "user-1", Message: "approved"}
	require.NoError(t, repo.Create(ctx, notification))
	svc := newNotificationService(repo)

	require.NoError(t, svc.MarkRead(ctx, "user-1", notification.ID))
	assert.True(t, repo.notifications[0].IsRead)
}

func TestMarkReadHidesForeignNotifications(t *testing.T) {
	repo := &fakeNotificationRepo{}
	ctx := context.Background()
	notification := &domain.Notification{UserID: "user-1", Message: "approved"}
	require.NoError(t, repo.Create(ctx, notification))
	svc := newNotificationService(repo)

	// Someone else's notification is reported as missing, not forbidden.
	err := svc.MarkRead(ctx, "user-2", notification.ID)
	assertHTTPStatus(t, err, http.StatusNotFound)

	err = svc.MarkRead(ctx, "user-1", "missing")
	assertHTTPStatus(t, err, http.StatusNotFound)
}
