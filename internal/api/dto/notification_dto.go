package dto

import (
	"time"

	"github.com/spec-kit/listing-service/internal/domain"
)

// NotificationResponse is the notification feed entry.
type NotificationResponse struct {
	ID        string    `json:"id"`
	ListingID *string   `json:"listing_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// FromNotification maps the domain notification to its response shape.
func FromNotification(notification *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID,
		ListingID: notification.ListingID,
		Message:   notification.Message,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
}
