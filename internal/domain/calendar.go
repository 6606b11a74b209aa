package domain

import "time"

// Admission limits for the shared event calendar.
const (
	MaxEventsPerDay = 2
	LeadTimeDays    = 10
)

// CalendarBlock tracks how many approved events occupy a calendar date.
// A block is created lazily on the first reservation for a date.
type CalendarBlock struct {
	ID         uint      `json:"id"`
	EventDate  time.Time `json:"event_date"`
	EventCount int       `json:"event_count"`
	Blocked    bool      `json:"blocked"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CalendarCountedStatuses are the statuses that occupy a calendar slot.
// An event keeps its slot once approved, including after it closes; only
// a rejection that follows approval releases it.
func CalendarCountedStatuses() []EventStatus {
	return []EventStatus{StatusApproved, StatusDocumentationSubmitted, StatusClosed}
}

// IsCalendarCounted reports whether events in the given status occupy a
// slot on their proposed date.
func IsCalendarCounted(status EventStatus) bool {
	for _, s := range CalendarCountedStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
