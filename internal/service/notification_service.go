package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/listing-service/internal/config"
	"github.com/spec-kit/listing-service/internal/domain"
	"github.com/spec-kit/listing-service/internal/events"
	"github.com/spec-kit/listing-service/internal/repository"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// NotificationService serves a user's notification feed and mirrors domain
// events to external sinks. The notification rows themselves are written by
// the services performing the transition, not by event handlers.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	cfg           config.NotifyConfig
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		dispatcher:    dispatcher,
		logger:        logger,
		cfg:           cfg,
	}
}

// ListForUser returns the caller's notifications, newest first.
func (n *NotificationService) ListForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	items, err := n.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

// MarkRead flags one of the caller's notifications as read. A notification
// owned by someone else is indistinguishable from a missing one.
func (n *NotificationService) MarkRead(ctx context.Context, callerID, notificationID string) error {
	notification, err := n.notifications.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("notification", nil)
		}
		return apperrors.MapError(err)
	}
	if notification.UserID != callerID {
		return apperrors.NewNotFound("notification", nil)
	}
	if err := n.notifications.MarkRead(ctx, notification.ID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// RegisterHandlers subscribes to lifecycle events for observability sinks.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventListingCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventListingSubmitted, n.handleEvent)
	n.dispatcher.Subscribe(events.EventListingReviewed, n.handleEvent)
	n.dispatcher.Subscribe(events.EventListingDeleted, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("listing_id", event.ListingID),
		zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("listing_id", event.ListingID),
		zap.String("event_type", string(event.Type)))
}
