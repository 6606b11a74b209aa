package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type ProposeEventRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	EventType    string `json:"event_type"`
	ProposedDate string `json:"proposed_date"`
	ChapterID    uint   `json:"chapter_id"`
}

func (req *ProposeEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.EventType, validation.Required,
			validation.In("technical", "non_technical", "workshop", "outreach")),
		validation.Field(&req.ProposedDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.ChapterID, validation.Required),
	)
}

func (req *ProposeEventRequest) ParsedDate() time.Time {
	date, _ := time.Parse("2006-01-02", req.ProposedDate)
	return date
}

type SubmitApprovalRequest struct {
	ApprovalType string `json:"approval_type"`
	Decision     string `json:"decision"`
	Comments     string `json:"comments"`
}

func (req *SubmitApprovalRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ApprovalType, validation.Required,
			validation.In("senior_core", "treasurer", "counsellor")),
		validation.Field(&req.Decision, validation.Required,
			validation.In("approved", "rejected")),
		validation.Field(&req.Comments, validation.Length(0, 1000)),
	)
}
