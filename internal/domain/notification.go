package domain

import "time"

const (
	NotificationEventApproved  = "event_approved"
	NotificationDocumentReview = "document_review"
)

type Notification struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	RelatedEventID *uint     `json:"related_event_id"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}
