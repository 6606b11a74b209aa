package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type AssignTeamRequest struct {
	TeamType string `json:"team_type"`
	ExecomID uint   `json:"execom_id"`
}

func (req *AssignTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TeamType, validation.Required,
			validation.In("documentation", "pr", "design", "coverage")),
		validation.Field(&req.ExecomID, validation.Required),
	)
}

type SubmitDocumentRequest struct {
	DocumentType string `json:"document_type"`
	Title        string `json:"title"`
	FileURL      string `json:"file_url"`
}

func (req *SubmitDocumentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.DocumentType, validation.Required,
			validation.In("final_document", "design_file")),
		validation.Field(&req.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&req.FileURL, validation.Required, is.URL),
	)
}

type ReviewDocumentRequest struct {
	Verdict string `json:"verdict"`
}

func (req *ReviewDocumentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Verdict, validation.Required,
			validation.In("approved", "rejected")),
	)
}
