package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrDateFull = errors.New("calendar date has no free slots")

type CalendarBlock struct {
	ID uint `gorm:"primaryKey"`

	EventDate  time.Time `gorm:"type:date;unique;not null"`
	EventCount int       `gorm:"not null;default:0"`
	Blocked    bool      `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CalendarDAO struct {
	db    *gorm.DB
	limit int
}

func NewCalendarDAO(db *gorm.DB, limit int) *CalendarDAO {
	return &CalendarDAO{
		db:    db,
		limit: limit,
	}
}

func (d *CalendarDAO) Get(ctx context.Context, date time.Time) (CalendarBlock, error) {
	var block CalendarBlock
	result := conn(ctx, d.db).Where("event_date = ?", date).First(&block)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CalendarBlock{EventDate: date}, nil
		}

		return CalendarBlock{}, result.Error
	}

	return block, nil
}

// Reserve claims one slot on the date. The check and the increment are a
// single conditional UPDATE, so two concurrent reservations for the last
// slot cannot both succeed.
func (d *CalendarDAO) Reserve(ctx context.Context, date time.Time) error {
	db := conn(ctx, d.db)

	// Make sure the counter row exists; first reservation for a date
	// creates it at zero.
	seed := CalendarBlock{EventDate: date}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_date"}},
		DoNothing: true,
	}).Create(&seed)
	if result.Error != nil {
		return result.Error
	}

	result = db.Model(&CalendarBlock{}).
		Where("event_date = ? AND event_count < ?", date, d.limit).
		Updates(map[string]interface{}{
			"event_count": gorm.Expr("event_count + 1"),
			"blocked":     gorm.Expr("event_count + 1 >= ?", d.limit),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDateFull
	}

	return nil
}

// Release frees one slot. The counter never drops below zero.
func (d *CalendarDAO) Release(ctx context.Context, date time.Time) error {
	result := conn(ctx, d.db).Model(&CalendarBlock{}).
		Where("event_date = ? AND event_count > 0", date).
		Updates(map[string]interface{}{
			"event_count": gorm.Expr("event_count - 1"),
			"blocked":     false,
			"updated_at":  time.Now(),
		})

	return result.Error
}
