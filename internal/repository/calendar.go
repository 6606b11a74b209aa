package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository/dao"
)

var ErrDateFull = dao.ErrDateFull

type CalendarDAO interface {
	Get(ctx context.Context, date time.Time) (dao.CalendarBlock, error)
	Reserve(ctx context.Context, date time.Time) error
	Release(ctx context.Context, date time.Time) error
}

type CalendarRepository struct {
	dao CalendarDAO
}

func NewCalendarRepository(dao CalendarDAO) *CalendarRepository {
	return &CalendarRepository{
		dao: dao,
	}
}

func (r *CalendarRepository) GetBlock(ctx context.Context, date time.Time) (domain.CalendarBlock, error) {
	block, err := r.dao.Get(ctx, date)
	if err != nil {
		return domain.CalendarBlock{}, fmt.Errorf("r.dao.Get -> %w", err)
	}

	return domain.CalendarBlock{
		ID:         block.ID,
		EventDate:  block.EventDate,
		EventCount: block.EventCount,
		Blocked:    block.Blocked,
		CreatedAt:  block.CreatedAt,
		UpdatedAt:  block.UpdatedAt,
	}, nil
}

func (r *CalendarRepository) ReserveSlot(ctx context.Context, date time.Time) error {
	if err := r.dao.Reserve(ctx, date); err != nil {
		if err == dao.ErrDateFull {
			return ErrDateFull
		}

		return fmt.Errorf("r.dao.Reserve -> %w", err)
	}

	return nil
}

func (r *CalendarRepository) ReleaseSlot(ctx context.Context, date time.Time) error {
	if err := r.dao.Release(ctx, date); err != nil {
		return fmt.Errorf("r.dao.Release -> %w", err)
	}

	return nil
}
