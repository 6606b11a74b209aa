package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrApprovalNotFound = errors.New("approval record not found")
	ErrApprovalExists   = errors.New("approval record already exists")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title        string `gorm:"not null"`
	Description  string
	EventType    string    `gorm:"not null"`
	ProposedDate time.Time `gorm:"type:date;not null;index"`

	ProposedBy uint `gorm:"not null"`
	Proposer   User `gorm:"foreignKey:ProposedBy"`

	ChapterID uint    `gorm:"not null;index"`
	Chapter   Chapter `gorm:"foreignKey:ChapterID"`

	Status       string `gorm:"not null;index"`
	ApprovedDate *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventApproval struct {
	ID uint `gorm:"primaryKey"`

	EventID      uint   `gorm:"not null;uniqueIndex:idx_event_approver_type"`
	ApproverID   uint   `gorm:"not null;uniqueIndex:idx_event_approver_type"`
	ApprovalType string `gorm:"not null;uniqueIndex:idx_event_approver_type"`

	Status   string `gorm:"not null"`
	Comments string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, d.db, fn)
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := conn(ctx, d.db).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) GetByID(ctx context.Context, id uint) (Event, error) {
	var event Event
	result := conn(ctx, d.db).Preload("Chapter").First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// GetForUpdate locks the event row for the surrounding transaction. All
// status mutations and ledger writes for one event go through this lock.
func (d *EventDAO) GetForUpdate(ctx context.Context, id uint) (Event, error) {
	var event Event
	result := conn(ctx, d.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) List(ctx context.Context, status string, chapterID uint) ([]Event, error) {
	query := conn(ctx, d.db).Preload("Chapter").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if chapterID != 0 {
		query = query.Where("chapter_id = ?", chapterID)
	}

	var events []Event
	if result := query.Find(&events); result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// ListBetween returns events with a proposed date inside [start, end]
// holding one of the given statuses, ordered by date.
func (d *EventDAO) ListBetween(ctx context.Context, start, end time.Time, statuses []string) ([]Event, error) {
	var events []Event
	result := conn(ctx, d.db).
		Preload("Chapter").
		Where("proposed_date >= ? AND proposed_date <= ?", start, end).
		Where("status IN ?", statuses).
		Order("proposed_date ASC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) UpdateStatus(ctx context.Context, id uint, status string, approvedDate *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if approvedDate != nil {
		updates["approved_date"] = *approvedDate
	}

	result := conn(ctx, d.db).Model(&Event{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) InsertApprovals(ctx context.Context, approvals []EventApproval) error {
	if len(approvals) == 0 {
		return nil
	}

	result := conn(ctx, d.db).Create(&approvals)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrApprovalExists
		}

		return result.Error
	}

	return nil
}

func (d *EventDAO) FindApproval(ctx context.Context, eventID, approverID uint, approvalType string) (EventApproval, error) {
	var approval EventApproval
	result := conn(ctx, d.db).
		Where("event_id = ? AND approver_id = ? AND approval_type = ?", eventID, approverID, approvalType).
		First(&approval)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventApproval{}, ErrApprovalNotFound
		}

		return EventApproval{}, result.Error
	}

	return approval, nil
}

// RecordDecision finalizes a pending approval. The WHERE clause keeps the
// write conditional on the row still being pending, so a decided slot can
// never flip.
func (d *EventDAO) RecordDecision(ctx context.Context, approvalID uint, status, comments string) error {
	result := conn(ctx, d.db).Model(&EventApproval{}).
		Where("id = ? AND status = ?", approvalID, "pending").
		Updates(map[string]interface{}{
			"status":     status,
			"comments":   comments,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApprovalNotFound
	}

	return nil
}

func (d *EventDAO) ListApprovals(ctx context.Context, eventID uint) ([]EventApproval, error) {
	var approvals []EventApproval
	result := conn(ctx, d.db).Where("event_id = ?", eventID).Find(&approvals)
	if result.Error != nil {
		return nil, result.Error
	}

	return approvals, nil
}

func (d *EventDAO) ListApprovalsByApprover(ctx context.Context, approverID uint, status string) ([]EventApproval, error) {
	query := conn(ctx, d.db).Where("approver_id = ?", approverID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var approvals []EventApproval
	if result := query.Order("created_at DESC").Find(&approvals); result.Error != nil {
		return nil, result.Error
	}

	return approvals, nil
}
