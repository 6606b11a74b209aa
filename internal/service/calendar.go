package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/clock"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository"
)

var (
	ErrDateFull         = repository.ErrDateFull
	ErrLeadTimeTooShort = errors.New("proposed date does not meet the minimum lead time")
)

type CalendarRepository interface {
	GetBlock(ctx context.Context, date time.Time) (domain.CalendarBlock, error)
	ReserveSlot(ctx context.Context, date time.Time) error
	ReleaseSlot(ctx context.Context, date time.Time) error
}

type CalendarEventRepository interface {
	ListBetween(ctx context.Context, start, end time.Time, statuses []domain.EventStatus) ([]domain.Event, error)
}

type CalendarService struct {
	repo   CalendarRepository
	events CalendarEventRepository
	clock  clock.Clock
}

func NewCalendarService(repo CalendarRepository, events CalendarEventRepository, clk clock.Clock) *CalendarService {
	return &CalendarService{
		repo:   repo,
		events: events,
		clock:  clk,
	}
}

// ValidateLeadTime rejects dates closer than the minimum lead time. The
// comparison is on calendar days, so a proposal made late in the evening
// is not penalized for the remaining hours of today.
func (s *CalendarService) ValidateLeadTime(proposedDate time.Time) error {
	today := truncateToDay(s.clock.Now())
	earliest := today.AddDate(0, 0, domain.LeadTimeDays)

	if truncateToDay(proposedDate).Before(earliest) {
		return fmt.Errorf("%w: earliest allowed date is %s", ErrLeadTimeTooShort, earliest.Format("2006-01-02"))
	}

	return nil
}

// CheckAvailability reports whether the date can still accept an event.
// This is advisory; the authoritative check happens on reservation.
func (s *CalendarService) CheckAvailability(ctx context.Context, date time.Time) (bool, domain.CalendarBlock, error) {
	block, err := s.repo.GetBlock(ctx, truncateToDay(date))
	if err != nil {
		return false, domain.CalendarBlock{}, fmt.Errorf("s.repo.GetBlock -> %w", err)
	}

	available := !block.Blocked && block.EventCount < domain.MaxEventsPerDay

	return available, block, nil
}

// ReserveSlot atomically claims a slot on the date, failing with
// ErrDateFull once the daily cap is reached.
func (s *CalendarService) ReserveSlot(ctx context.Context, date time.Time) error {
	if err := s.repo.ReserveSlot(ctx, truncateToDay(date)); err != nil {
		if errors.Is(err, repository.ErrDateFull) {
			return ErrDateFull
		}

		return fmt.Errorf("s.repo.ReserveSlot -> %w", err)
	}

	return nil
}

// ReleaseSlot frees a previously reserved slot. Releasing an empty date
// is a no-op; the count never goes below zero.
func (s *CalendarService) ReleaseSlot(ctx context.Context, date time.Time) error {
	if err := s.repo.ReleaseSlot(ctx, truncateToDay(date)); err != nil {
		return fmt.Errorf("s.repo.ReleaseSlot -> %w", err)
	}

	return nil
}

// ListApprovedEvents returns the events occupying calendar slots in the
// given range, for the shared calendar view.
func (s *CalendarService) ListApprovedEvents(ctx context.Context, start, end time.Time) ([]domain.Event, error) {
	events, err := s.events.ListBetween(ctx, truncateToDay(start), truncateToDay(end), domain.CalendarCountedStatuses())
	if err != nil {
		return nil, fmt.Errorf("s.events.ListBetween -> %w", err)
	}

	return events, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
