package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository"
)

var (
	ErrEventNotFound      = repository.ErrEventNotFound
	ErrEventFinalized     = domain.ErrEventFinalized
	ErrWrongApprovalStage = domain.ErrWrongApprovalStage

	ErrProposerNotAllowed     = errors.New("role cannot propose events")
	ErrOutsideChapter         = errors.New("action is outside the user's chapter")
	ErrQuorumPoolTooSmall     = errors.New("not enough eligible senior core approvers")
	ErrApprovalNotAssigned    = errors.New("approval is not assigned to this user")
	ErrApprovalAlreadyDecided = errors.New("approval has already been decided")
	ErrTreasurerMissing       = errors.New("no treasurer on record to review the event")
	ErrEventNotApproved       = errors.New("event has not completed the approval pipeline")
	ErrDocumentationPending   = errors.New("event documentation has not been submitted")
)

type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	GetByID(ctx context.Context, id uint) (domain.Event, error)
	GetForUpdate(ctx context.Context, id uint) (domain.Event, error)
	List(ctx context.Context, status domain.EventStatus, chapterID uint) ([]domain.Event, error)
	UpdateStatus(ctx context.Context, id uint, status domain.EventStatus, approvedDate *time.Time) error
	CreateApprovals(ctx context.Context, approvals []domain.EventApproval) error
	FindApproval(ctx context.Context, eventID, approverID uint, approvalType domain.ApprovalType) (domain.EventApproval, error)
	RecordDecision(ctx context.Context, approvalID uint, status domain.ApprovalStatus, comments string) error
	ListApprovals(ctx context.Context, eventID uint) ([]domain.EventApproval, error)
	ListApprovalsByApprover(ctx context.Context, approverID uint, status domain.ApprovalStatus) ([]domain.EventApproval, error)
	SummarizeApprovals(ctx context.Context, eventID uint) (domain.ApprovalSummary, error)
}

type EventUserRepository interface {
	FindEligibleApprovers(ctx context.Context, approvalType domain.ApprovalType) ([]domain.User, error)
}

// EventNotifier delivers best-effort notifications after status changes.
type EventNotifier interface {
	NotifyEventApproved(ctx context.Context, event domain.Event) error
}

type EventService struct {
	repo     EventRepository
	users    EventUserRepository
	calendar *CalendarService
	notifier EventNotifier
	logger   *zap.Logger
}

func NewEventService(
	repo EventRepository,
	users EventUserRepository,
	calendar *CalendarService,
	notifier EventNotifier,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		repo:     repo,
		users:    users,
		calendar: calendar,
		notifier: notifier,
		logger:   logger,
	}
}

// ProposeEvent validates a proposal and creates the event with its initial
// senior core approval slots. The proposer never approves their own event,
// so they are excluded from the slot set and the quorum pool must still
// hold at least the quorum without them.
func (s *EventService) ProposeEvent(ctx context.Context, proposer domain.User, event domain.Event) (domain.Event, error) {
	if !domain.CanProposeEvents(proposer.Role.Name) {
		return domain.Event{}, ErrProposerNotAllowed
	}
	if proposer.ChapterID == nil || *proposer.ChapterID != event.ChapterID {
		return domain.Event{}, ErrOutsideChapter
	}

	if err := s.calendar.ValidateLeadTime(event.ProposedDate); err != nil {
		return domain.Event{}, err
	}

	// Advisory check so a full date is rejected up front. The binding
	// check happens when the event reaches approved.
	available, _, err := s.calendar.CheckAvailability(ctx, event.ProposedDate)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.calendar.CheckAvailability -> %w", err)
	}
	if !available {
		return domain.Event{}, ErrDateFull
	}

	approvers, err := s.users.FindEligibleApprovers(ctx, domain.ApprovalSeniorCore)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.users.FindEligibleApprovers -> %w", err)
	}

	pool := make([]domain.User, 0, len(approvers))
	for _, a := range approvers {
		if a.ID != proposer.ID {
			pool = append(pool, a)
		}
	}
	if len(pool) < domain.SeniorCoreQuorum {
		return domain.Event{}, ErrQuorumPoolTooSmall
	}

	event.ProposedBy = proposer.ID
	event.Status = domain.StatusSeniorCorePending

	var created domain.Event
	err = s.repo.WithTx(ctx, func(ctx context.Context) error {
		created, err = s.repo.Create(ctx, event)
		if err != nil {
			return fmt.Errorf("s.repo.Create -> %w", err)
		}

		approvals := make([]domain.EventApproval, len(pool))
		for i, a := range pool {
			approvals[i] = domain.EventApproval{
				EventID:      created.ID,
				ApproverID:   a.ID,
				ApprovalType: domain.ApprovalSeniorCore,
				Status:       domain.ApprovalPending,
			}
		}

		if err = s.repo.CreateApprovals(ctx, approvals); err != nil {
			return fmt.Errorf("s.repo.CreateApprovals -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}

	return created, nil
}

// SubmitApproval records one approver's decision, then attempts to advance
// the event. The decision is committed before the transition runs, so a
// transition failure (for example the date filling up) never loses it;
// RefreshEventStatus retries the transition later.
func (s *EventService) SubmitApproval(
	ctx context.Context,
	approver domain.User,
	eventID uint,
	approvalType domain.ApprovalType,
	decision domain.ApprovalStatus,
	comments string,
) (domain.Event, error) {
	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		event, err := s.repo.GetForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, repository.ErrEventNotFound) {
				return ErrEventNotFound
			}

			return fmt.Errorf("s.repo.GetForUpdate -> %w", err)
		}

		if err = domain.CheckApprovalStage(event.Status, approvalType); err != nil {
			return err
		}

		approval, err := s.repo.FindApproval(ctx, eventID, approver.ID, approvalType)
		if err != nil {
			if errors.Is(err, repository.ErrApprovalNotFound) {
				return ErrApprovalNotAssigned
			}

			return fmt.Errorf("s.repo.FindApproval -> %w", err)
		}
		if approval.Status != domain.ApprovalPending {
			return ErrApprovalAlreadyDecided
		}

		if err = s.repo.RecordDecision(ctx, approval.ID, decision, comments); err != nil {
			if errors.Is(err, repository.ErrApprovalNotFound) {
				return ErrApprovalAlreadyDecided
			}

			return fmt.Errorf("s.repo.RecordDecision -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}

	return s.applyTransition(ctx, eventID)
}

// RefreshEventStatus re-derives the event status from its ledger and
// applies any pending transition. It exists to retry transitions that
// failed after a decision was already recorded.
func (s *EventService) RefreshEventStatus(ctx context.Context, eventID uint) (domain.Event, error) {
	return s.applyTransition(ctx, eventID)
}

// applyTransition recomputes the target status and applies it in one
// transaction, materializing the next stage's approval slots and settling
// the calendar slot as needed.
func (s *EventService) applyTransition(ctx context.Context, eventID uint) (domain.Event, error) {
	var (
		result         domain.Event
		becameApproved bool
	)

	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		event, err := s.repo.GetForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, repository.ErrEventNotFound) {
				return ErrEventNotFound
			}

			return fmt.Errorf("s.repo.GetForUpdate -> %w", err)
		}
		result = event

		if domain.IsTerminalStatus(event.Status) {
			return nil
		}

		summary, err := s.repo.SummarizeApprovals(ctx, eventID)
		if err != nil {
			return fmt.Errorf("s.repo.SummarizeApprovals -> %w", err)
		}

		target := domain.ComputeEventStatus(summary)
		// The ledger alone cannot distinguish approved from the
		// documentation statuses; never regress past approved.
		if target == domain.StatusApproved && domain.IsCalendarCounted(event.Status) {
			return nil
		}

		// Materialize the next stage's slots even when the status itself
		// is unchanged, so a counsellor added after the advance gets
		// their slot on the next refresh.
		switch target {
		case domain.StatusTreasurerPending:
			if !summary.TreasurerMaterialized {
				if err = s.materializeStage(ctx, eventID, domain.ApprovalTreasurer); err != nil {
					return err
				}
			}
		case domain.StatusCounsellorPending:
			if !summary.CounsellorMaterialized {
				counsellors, err := s.users.FindEligibleApprovers(ctx, domain.ApprovalCounsellor)
				if err != nil {
					return fmt.Errorf("s.users.FindEligibleApprovers -> %w", err)
				}
				if len(counsellors) == 0 {
					// A missing counsellor must not block the
					// pipeline; the event advances without a slot
					// and the slot is created once one exists.
					s.logger.Warn("no branch counsellor on record, advancing without a counsellor slot",
						zap.Uint("event_id", eventID))
				} else if err = s.createStageApprovals(ctx, eventID, domain.ApprovalCounsellor, counsellors); err != nil {
					return err
				}
			}
		}

		if target == event.Status {
			return nil
		}

		if target == domain.StatusApproved {
			if err = s.calendar.ReserveSlot(ctx, event.ProposedDate); err != nil {
				return err
			}

			approvedDate := truncateToDay(event.ProposedDate)
			if err = s.repo.UpdateStatus(ctx, eventID, target, &approvedDate); err != nil {
				return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
			}

			result.ApprovedDate = &approvedDate
			becameApproved = true
		} else {
			if target == domain.StatusRejected && domain.IsCalendarCounted(event.Status) {
				if err = s.calendar.ReleaseSlot(ctx, event.ProposedDate); err != nil {
					return err
				}
			}

			if err = s.repo.UpdateStatus(ctx, eventID, target, nil); err != nil {
				return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
			}
		}

		result.Status = target

		return nil
	})
	if err != nil {
		return result, err
	}

	if becameApproved && s.notifier != nil {
		if err := s.notifier.NotifyEventApproved(ctx, result); err != nil {
			s.logger.Warn("failed to send approval notifications",
				zap.Uint("event_id", eventID), zap.Error(err))
		}
	}

	return result, nil
}

// materializeStage creates the approval slots for a single-approver stage.
// The treasurer stage is mandatory, so an empty pool aborts the transition.
func (s *EventService) materializeStage(ctx context.Context, eventID uint, approvalType domain.ApprovalType) error {
	approvers, err := s.users.FindEligibleApprovers(ctx, approvalType)
	if err != nil {
		return fmt.Errorf("s.users.FindEligibleApprovers -> %w", err)
	}
	if len(approvers) == 0 {
		return ErrTreasurerMissing
	}

	return s.createStageApprovals(ctx, eventID, approvalType, approvers)
}

func (s *EventService) createStageApprovals(ctx context.Context, eventID uint, approvalType domain.ApprovalType, approvers []domain.User) error {
	approvals := make([]domain.EventApproval, len(approvers))
	for i, a := range approvers {
		approvals[i] = domain.EventApproval{
			EventID:      eventID,
			ApproverID:   a.ID,
			ApprovalType: approvalType,
			Status:       domain.ApprovalPending,
		}
	}

	if err := s.repo.CreateApprovals(ctx, approvals); err != nil {
		return fmt.Errorf("s.repo.CreateApprovals -> %w", err)
	}

	return nil
}

// MarkDocumentationSubmitted moves an approved event forward once its
// final documentation is uploaded.
func (s *EventService) MarkDocumentationSubmitted(ctx context.Context, eventID uint) (domain.Event, error) {
	var result domain.Event

	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		event, err := s.repo.GetForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, repository.ErrEventNotFound) {
				return ErrEventNotFound
			}

			return fmt.Errorf("s.repo.GetForUpdate -> %w", err)
		}

		if domain.IsTerminalStatus(event.Status) {
			return ErrEventFinalized
		}
		if event.Status == domain.StatusDocumentationSubmitted {
			result = event
			return nil
		}
		if event.Status != domain.StatusApproved {
			return ErrEventNotApproved
		}

		if err = s.repo.UpdateStatus(ctx, eventID, domain.StatusDocumentationSubmitted, nil); err != nil {
			return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
		}

		event.Status = domain.StatusDocumentationSubmitted
		result = event

		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}

	return result, nil
}

// CloseEvent finalizes an event whose documentation has been reviewed.
// The calendar slot is kept; the event happened.
func (s *EventService) CloseEvent(ctx context.Context, eventID uint) (domain.Event, error) {
	var result domain.Event

	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		event, err := s.repo.GetForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, repository.ErrEventNotFound) {
				return ErrEventNotFound
			}

			return fmt.Errorf("s.repo.GetForUpdate -> %w", err)
		}

		if domain.IsTerminalStatus(event.Status) {
			return ErrEventFinalized
		}
		if event.Status != domain.StatusDocumentationSubmitted {
			return ErrDocumentationPending
		}

		if err = s.repo.UpdateStatus(ctx, eventID, domain.StatusClosed, nil); err != nil {
			return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
		}

		event.Status = domain.StatusClosed
		result = event

		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}

	return result, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID uint) (domain.Event, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, status domain.EventStatus, chapterID uint) ([]domain.Event, error) {
	events, err := s.repo.List(ctx, status, chapterID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return events, nil
}

func (s *EventService) GetEventApprovals(ctx context.Context, eventID uint) ([]domain.EventApproval, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	approvals, err := s.repo.ListApprovals(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListApprovals -> %w", err)
	}

	return approvals, nil
}

// ListPendingApprovals returns the undecided approval slots assigned to
// one approver, i.e. their review inbox.
func (s *EventService) ListPendingApprovals(ctx context.Context, approverID uint) ([]domain.EventApproval, error) {
	approvals, err := s.repo.ListApprovalsByApprover(ctx, approverID, domain.ApprovalPending)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListApprovalsByApprover -> %w", err)
	}

	return approvals, nil
}
