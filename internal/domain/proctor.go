package domain

import "time"

// Proctor ledger limits.
const (
	MaxExecomsPerProctor = 5

	// Update periods cover roughly two weeks.
	MinUpdatePeriodDays = 13
	MaxUpdatePeriodDays = 15
)

// ProctorMapping binds one execom to exactly one proctor. An execom can
// appear in at most one mapping system-wide; a proctor carries at most
// MaxExecomsPerProctor mappings.
type ProctorMapping struct {
	ID        uint      `json:"id"`
	ProctorID uint      `json:"proctor_id"`
	ExecomID  uint      `json:"execom_id"`
	Proctor   *User     `json:"proctor,omitempty"`
	Execom    *User     `json:"execom,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProctorUpdate is an immutable periodic report. At most one update exists
// per (proctor, execom, period) triple.
type ProctorUpdate struct {
	ID          uint      `json:"id"`
	ProctorID   uint      `json:"proctor_id"`
	ExecomID    uint      `json:"execom_id"`
	UpdateText  string    `json:"update_text"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Proctor     *User     `json:"proctor,omitempty"`
	Execom      *User     `json:"execom,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidUpdatePeriod checks that the reporting window is contiguous and
// within the allowed two-week band.
func ValidUpdatePeriod(start, end time.Time) bool {
	days := int(end.Sub(start).Hours() / 24)
	return days >= MinUpdatePeriodDays && days <= MaxUpdatePeriodDays
}
