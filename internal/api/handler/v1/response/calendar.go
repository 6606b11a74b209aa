package response

import "github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"

type AvailabilityResponse struct {
	Date       string `json:"date"`
	Available  bool   `json:"available"`
	EventCount int    `json:"event_count"`
	MaxPerDay  int    `json:"max_per_day"`
}

type CalendarResponse struct {
	Start  string         `json:"start"`
	End    string         `json:"end"`
	Events []domain.Event `json:"events"`
}
