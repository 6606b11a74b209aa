package domain

import "time"

type TeamType string

const (
	TeamDocumentation TeamType = "documentation"
	TeamPR            TeamType = "pr"
	TeamDesign        TeamType = "design"
	TeamCoverage      TeamType = "coverage"
)

type DocumentType string

const (
	DocumentFinal  DocumentType = "final_document"
	DocumentDesign DocumentType = "design_file"
)

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// EventAssignment binds an execom to an approved event for one team.
type EventAssignment struct {
	ID         uint      `json:"id"`
	EventID    uint      `json:"event_id"`
	TeamType   TeamType  `json:"team_type"`
	AssignedTo uint      `json:"assigned_to"`
	AssignedBy uint      `json:"assigned_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EventDocument records an uploaded deliverable. The file itself lives in
// external storage; only its URL is kept here.
type EventDocument struct {
	ID           uint         `json:"id"`
	EventID      uint         `json:"event_id"`
	DocumentType DocumentType `json:"document_type"`
	Title        string       `json:"title"`
	FileURL      string       `json:"file_url"`
	UploadedBy   uint         `json:"uploaded_by"`
	ReviewedBy   *uint        `json:"reviewed_by"`
	ReviewStatus ReviewStatus `json:"review_status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
