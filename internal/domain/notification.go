package domain

import "time"

// Notification is a message queued for a user, optionally linked to a
// listing. Created as a side effect of moderation decisions.
type Notification struct {
	ID        string
	UserID    string
	ListingID *string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
