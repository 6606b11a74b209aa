package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type AssignProctorRequest struct {
	ProctorID uint `json:"proctor_id"`
	ExecomID  uint `json:"execom_id"`
}

func (req *AssignProctorRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProctorID, validation.Required),
		validation.Field(&req.ExecomID, validation.Required),
	)
}

type ProctorUpdateRequest struct {
	ExecomID    uint   `json:"execom_id"`
	UpdateText  string `json:"update_text"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (req *ProctorUpdateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ExecomID, validation.Required),
		validation.Field(&req.UpdateText, validation.Required, validation.Length(10, 5000)),
		validation.Field(&req.PeriodStart, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.PeriodEnd, validation.Required, validation.Date("2006-01-02")),
	)
}

func (req *ProctorUpdateRequest) ParsedPeriod() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", req.PeriodStart)
	end, _ := time.Parse("2006-01-02", req.PeriodEnd)
	return start, end
}
