package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrAssignmentNotFound = errors.New("event assignment not found")
	ErrAssignmentExists   = errors.New("event assignment already exists")
	ErrDocumentNotFound   = errors.New("event document not found")
)

type EventAssignment struct {
	ID uint `gorm:"primaryKey"`

	EventID  uint   `gorm:"not null;uniqueIndex:idx_event_team"`
	TeamType string `gorm:"not null;uniqueIndex:idx_event_team"`

	AssignedTo uint `gorm:"not null;index"`
	AssignedBy uint `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDocument struct {
	ID uint `gorm:"primaryKey"`

	EventID      uint   `gorm:"not null;index"`
	DocumentType string `gorm:"not null"`
	Title        string `gorm:"not null"`
	FileURL      string `gorm:"not null"`

	UploadedBy   uint `gorm:"not null"`
	ReviewedBy   *uint
	ReviewStatus string `gorm:"not null;default:pending"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type DocumentDAO struct {
	db *gorm.DB
}

func NewDocumentDAO(db *gorm.DB) *DocumentDAO {
	return &DocumentDAO{
		db: db,
	}
}

func (d *DocumentDAO) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, d.db, fn)
}

func (d *DocumentDAO) InsertAssignment(ctx context.Context, assignment EventAssignment) (EventAssignment, error) {
	result := conn(ctx, d.db).Create(&assignment)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return EventAssignment{}, ErrAssignmentExists
		}

		return EventAssignment{}, result.Error
	}

	return assignment, nil
}

func (d *DocumentDAO) FindAssignment(ctx context.Context, eventID uint, teamType string, assignedTo uint) (EventAssignment, error) {
	var assignment EventAssignment
	result := conn(ctx, d.db).
		Where("event_id = ? AND team_type = ? AND assigned_to = ?", eventID, teamType, assignedTo).
		First(&assignment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventAssignment{}, ErrAssignmentNotFound
		}

		return EventAssignment{}, result.Error
	}

	return assignment, nil
}

func (d *DocumentDAO) ListAssignments(ctx context.Context, eventID uint) ([]EventAssignment, error) {
	var assignments []EventAssignment
	result := conn(ctx, d.db).Where("event_id = ?", eventID).Find(&assignments)
	if result.Error != nil {
		return nil, result.Error
	}

	return assignments, nil
}

func (d *DocumentDAO) InsertDocument(ctx context.Context, document EventDocument) (EventDocument, error) {
	result := conn(ctx, d.db).Create(&document)
	if result.Error != nil {
		return EventDocument{}, result.Error
	}

	return document, nil
}

func (d *DocumentDAO) GetDocument(ctx context.Context, id uint) (EventDocument, error) {
	var document EventDocument
	result := conn(ctx, d.db).First(&document, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventDocument{}, ErrDocumentNotFound
		}

		return EventDocument{}, result.Error
	}

	return document, nil
}

func (d *DocumentDAO) ListDocuments(ctx context.Context, eventID uint) ([]EventDocument, error) {
	var documents []EventDocument
	result := conn(ctx, d.db).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&documents)
	if result.Error != nil {
		return nil, result.Error
	}

	return documents, nil
}

func (d *DocumentDAO) UpdateReview(ctx context.Context, id uint, status string, reviewedBy uint) error {
	result := conn(ctx, d.db).Model(&EventDocument{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"review_status": status,
			"reviewed_by":   reviewedBy,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}
