package domain

import "time"

type EventType string

const (
	EventTechnical    EventType = "technical"
	EventNonTechnical EventType = "non_technical"
	EventWorkshop     EventType = "workshop"
	EventOutreach     EventType = "outreach"
)

type EventStatus string

const (
	StatusSeniorCorePending      EventStatus = "senior_core_pending"
	StatusTreasurerPending       EventStatus = "treasurer_pending"
	StatusCounsellorPending      EventStatus = "counsellor_pending"
	StatusApproved               EventStatus = "approved"
	StatusDocumentationSubmitted EventStatus = "documentation_submitted"
	StatusClosed                 EventStatus = "closed"
	StatusRejected               EventStatus = "rejected"
)

type ApprovalType string

const (
	ApprovalSeniorCore ApprovalType = "senior_core"
	ApprovalTreasurer  ApprovalType = "treasurer"
	ApprovalCounsellor ApprovalType = "counsellor"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type Event struct {
	ID           uint        `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	EventType    EventType   `json:"event_type"`
	ProposedDate time.Time   `json:"proposed_date"`
	ProposedBy   uint        `json:"proposed_by"`
	ChapterID    uint        `json:"chapter_id"`
	Chapter      *Chapter    `json:"chapter,omitempty"`
	Status       EventStatus `json:"status"`
	ApprovedDate *time.Time  `json:"approved_date"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type EventApproval struct {
	ID           uint           `json:"id"`
	EventID      uint           `json:"event_id"`
	ApproverID   uint           `json:"approver_id"`
	ApprovalType ApprovalType   `json:"approval_type"`
	Status       ApprovalStatus `json:"status"`
	Comments     string         `json:"comments,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
