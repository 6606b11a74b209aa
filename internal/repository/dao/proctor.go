package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrMappingExists   = errors.New("proctor mapping already exists")
	ErrMappingNotFound = errors.New("proctor mapping not found")
	ErrUpdateExists    = errors.New("proctor update already exists for this period")
)

type ProctorMapping struct {
	ID uint `gorm:"primaryKey"`

	ProctorID uint `gorm:"not null;uniqueIndex:idx_proctor_execom"`
	Proctor   User `gorm:"foreignKey:ProctorID"`

	// An execom belongs to at most one proctor system-wide.
	ExecomID uint `gorm:"not null;unique;uniqueIndex:idx_proctor_execom"`
	Execom   User `gorm:"foreignKey:ExecomID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ProctorUpdate struct {
	ID uint `gorm:"primaryKey"`

	ProctorID uint `gorm:"not null;uniqueIndex:idx_update_period"`
	Proctor   User `gorm:"foreignKey:ProctorID"`

	ExecomID uint `gorm:"not null;uniqueIndex:idx_update_period"`
	Execom   User `gorm:"foreignKey:ExecomID"`

	UpdateText  string    `gorm:"not null"`
	PeriodStart time.Time `gorm:"type:date;not null;uniqueIndex:idx_update_period"`
	PeriodEnd   time.Time `gorm:"type:date;not null;uniqueIndex:idx_update_period"`

	CreatedAt time.Time `gorm:"not null"`
}

type ProctorDAO struct {
	db *gorm.DB
}

func NewProctorDAO(db *gorm.DB) *ProctorDAO {
	return &ProctorDAO{
		db: db,
	}
}

func (d *ProctorDAO) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, d.db, fn)
}

func (d *ProctorDAO) InsertMapping(ctx context.Context, mapping ProctorMapping) (ProctorMapping, error) {
	result := conn(ctx, d.db).Create(&mapping)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ProctorMapping{}, ErrMappingExists
		}

		return ProctorMapping{}, result.Error
	}

	return mapping, nil
}

func (d *ProctorDAO) DeleteMapping(ctx context.Context, proctorID, execomID uint) error {
	result := conn(ctx, d.db).
		Where("proctor_id = ? AND execom_id = ?", proctorID, execomID).
		Delete(&ProctorMapping{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMappingNotFound
	}

	return nil
}

func (d *ProctorDAO) FindMapping(ctx context.Context, proctorID, execomID uint) (ProctorMapping, error) {
	var mapping ProctorMapping
	result := conn(ctx, d.db).
		Where("proctor_id = ? AND execom_id = ?", proctorID, execomID).
		First(&mapping)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ProctorMapping{}, ErrMappingNotFound
		}

		return ProctorMapping{}, result.Error
	}

	return mapping, nil
}

func (d *ProctorDAO) FindMappingByExecom(ctx context.Context, execomID uint) (ProctorMapping, error) {
	var mapping ProctorMapping
	result := conn(ctx, d.db).Where("execom_id = ?", execomID).First(&mapping)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ProctorMapping{}, ErrMappingNotFound
		}

		return ProctorMapping{}, result.Error
	}

	return mapping, nil
}

func (d *ProctorDAO) CountMappingsByProctor(ctx context.Context, proctorID uint) (int, error) {
	var count int64
	result := conn(ctx, d.db).Model(&ProctorMapping{}).
		Where("proctor_id = ?", proctorID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(count), nil
}

func (d *ProctorDAO) ListMappingsByProctor(ctx context.Context, proctorID uint) ([]ProctorMapping, error) {
	var mappings []ProctorMapping
	result := conn(ctx, d.db).
		Preload("Execom").Preload("Execom.Role").
		Where("proctor_id = ?", proctorID).
		Find(&mappings)
	if result.Error != nil {
		return nil, result.Error
	}

	return mappings, nil
}

func (d *ProctorDAO) ListAllMappings(ctx context.Context) ([]ProctorMapping, error) {
	var mappings []ProctorMapping
	result := conn(ctx, d.db).
		Preload("Proctor").Preload("Proctor.Role").
		Preload("Execom").Preload("Execom.Role").
		Find(&mappings)
	if result.Error != nil {
		return nil, result.Error
	}

	return mappings, nil
}

func (d *ProctorDAO) InsertUpdate(ctx context.Context, update ProctorUpdate) (ProctorUpdate, error) {
	result := conn(ctx, d.db).Create(&update)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ProctorUpdate{}, ErrUpdateExists
		}

		return ProctorUpdate{}, result.Error
	}

	return update, nil
}

// ListUpdates filters by proctor and/or execom; zero means no filter.
func (d *ProctorDAO) ListUpdates(ctx context.Context, proctorID, execomID uint) ([]ProctorUpdate, error) {
	query := conn(ctx, d.db).
		Preload("Proctor").Preload("Execom").
		Order("created_at DESC")
	if proctorID != 0 {
		query = query.Where("proctor_id = ?", proctorID)
	}
	if execomID != 0 {
		query = query.Where("execom_id = ?", execomID)
	}

	var updates []ProctorUpdate
	if result := query.Find(&updates); result.Error != nil {
		return nil, result.Error
	}

	return updates, nil
}
