package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository/dao"
)

var (
	ErrEventNotFound    = dao.ErrEventNotFound
	ErrApprovalNotFound = dao.ErrApprovalNotFound
	ErrApprovalExists   = dao.ErrApprovalExists
)

type EventDAO interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	GetByID(ctx context.Context, id uint) (dao.Event, error)
	GetForUpdate(ctx context.Context, id uint) (dao.Event, error)
	List(ctx context.Context, status string, chapterID uint) ([]dao.Event, error)
	ListBetween(ctx context.Context, start, end time.Time, statuses []string) ([]dao.Event, error)
	UpdateStatus(ctx context.Context, id uint, status string, approvedDate *time.Time) error
	InsertApprovals(ctx context.Context, approvals []dao.EventApproval) error
	FindApproval(ctx context.Context, eventID, approverID uint, approvalType string) (dao.EventApproval, error)
	RecordDecision(ctx context.Context, approvalID uint, status, comments string) error
	ListApprovals(ctx context.Context, eventID uint) ([]dao.EventApproval, error)
	ListApprovalsByApprover(ctx context.Context, approverID uint, status string) ([]dao.EventApproval, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	event := domain.Event{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		EventType:    domain.EventType(e.EventType),
		ProposedDate: e.ProposedDate,
		ProposedBy:   e.ProposedBy,
		ChapterID:    e.ChapterID,
		Status:       domain.EventStatus(e.Status),
		ApprovedDate: e.ApprovedDate,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}

	if e.Chapter.ID != 0 {
		event.Chapter = &domain.Chapter{
			ID:        e.Chapter.ID,
			Name:      e.Chapter.Name,
			Code:      e.Chapter.Code,
			CreatedAt: e.Chapter.CreatedAt,
			UpdatedAt: e.Chapter.UpdatedAt,
		}
	}

	return event
}

func (r *EventRepository) daosToDomain(events []dao.Event) []domain.Event {
	result := make([]domain.Event, len(events))
	for i, e := range events {
		result[i] = r.daoToDomain(e)
	}
	return result
}

func (r *EventRepository) approvalDaoToDomain(a dao.EventApproval) domain.EventApproval {
	return domain.EventApproval{
		ID:           a.ID,
		EventID:      a.EventID,
		ApproverID:   a.ApproverID,
		ApprovalType: domain.ApprovalType(a.ApprovalType),
		Status:       domain.ApprovalStatus(a.Status),
		Comments:     a.Comments,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.dao.WithTx(ctx, fn)
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		Title:        event.Title,
		Description:  event.Description,
		EventType:    string(event.EventType),
		ProposedDate: event.ProposedDate,
		ProposedBy:   event.ProposedBy,
		ChapterID:    event.ChapterID,
		Status:       string(event.Status),
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uint) (domain.Event, error) {
	event, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.GetByID -> %w", err)
	}

	return r.daoToDomain(event), nil
}

func (r *EventRepository) GetForUpdate(ctx context.Context, id uint) (domain.Event, error) {
	event, err := r.dao.GetForUpdate(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.GetForUpdate -> %w", err)
	}

	return r.daoToDomain(event), nil
}

func (r *EventRepository) List(ctx context.Context, status domain.EventStatus, chapterID uint) ([]domain.Event, error) {
	events, err := r.dao.List(ctx, string(status), chapterID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	return r.daosToDomain(events), nil
}

func (r *EventRepository) ListBetween(ctx context.Context, start, end time.Time, statuses []domain.EventStatus) ([]domain.Event, error) {
	raw := make([]string, len(statuses))
	for i, s := range statuses {
		raw[i] = string(s)
	}

	events, err := r.dao.ListBetween(ctx, start, end, raw)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListBetween -> %w", err)
	}

	return r.daosToDomain(events), nil
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id uint, status domain.EventStatus, approvedDate *time.Time) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status), approvedDate); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *EventRepository) CreateApprovals(ctx context.Context, approvals []domain.EventApproval) error {
	rows := make([]dao.EventApproval, len(approvals))
	for i, a := range approvals {
		rows[i] = dao.EventApproval{
			EventID:      a.EventID,
			ApproverID:   a.ApproverID,
			ApprovalType: string(a.ApprovalType),
			Status:       string(a.Status),
			Comments:     a.Comments,
		}
	}

	if err := r.dao.InsertApprovals(ctx, rows); err != nil {
		return fmt.Errorf("r.dao.InsertApprovals -> %w", err)
	}

	return nil
}

func (r *EventRepository) FindApproval(ctx context.Context, eventID, approverID uint, approvalType domain.ApprovalType) (domain.EventApproval, error) {
	approval, err := r.dao.FindApproval(ctx, eventID, approverID, string(approvalType))
	if err != nil {
		return domain.EventApproval{}, fmt.Errorf("r.dao.FindApproval -> %w", err)
	}

	return r.approvalDaoToDomain(approval), nil
}

func (r *EventRepository) RecordDecision(ctx context.Context, approvalID uint, status domain.ApprovalStatus, comments string) error {
	if err := r.dao.RecordDecision(ctx, approvalID, string(status), comments); err != nil {
		return fmt.Errorf("r.dao.RecordDecision -> %w", err)
	}

	return nil
}

func (r *EventRepository) ListApprovals(ctx context.Context, eventID uint) ([]domain.EventApproval, error) {
	approvals, err := r.dao.ListApprovals(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListApprovals -> %w", err)
	}

	result := make([]domain.EventApproval, len(approvals))
	for i, a := range approvals {
		result[i] = r.approvalDaoToDomain(a)
	}

	return result, nil
}

func (r *EventRepository) ListApprovalsByApprover(ctx context.Context, approverID uint, status domain.ApprovalStatus) ([]domain.EventApproval, error) {
	approvals, err := r.dao.ListApprovalsByApprover(ctx, approverID, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListApprovalsByApprover -> %w", err)
	}

	result := make([]domain.EventApproval, len(approvals))
	for i, a := range approvals {
		result[i] = r.approvalDaoToDomain(a)
	}

	return result, nil
}

// SummarizeApprovals condenses the event's ledger into the aggregate used
// by the status computation. Senior-core approvals are counted by
// distinct approver identity.
func (r *EventRepository) SummarizeApprovals(ctx context.Context, eventID uint) (domain.ApprovalSummary, error) {
	approvals, err := r.dao.ListApprovals(ctx, eventID)
	if err != nil {
		return domain.ApprovalSummary{}, fmt.Errorf("r.dao.ListApprovals -> %w", err)
	}

	var summary domain.ApprovalSummary
	seniorApprovers := make(map[uint]struct{})

	for _, a := range approvals {
		switch domain.ApprovalType(a.ApprovalType) {
		case domain.ApprovalSeniorCore:
			switch domain.ApprovalStatus(a.Status) {
			case domain.ApprovalApproved:
				seniorApprovers[a.ApproverID] = struct{}{}
			case domain.ApprovalRejected:
				summary.SeniorCoreRejected = true
			}
		case domain.ApprovalTreasurer:
			summary.TreasurerMaterialized = true
			switch domain.ApprovalStatus(a.Status) {
			case domain.ApprovalApproved:
				summary.TreasurerApproved = true
			case domain.ApprovalRejected:
				summary.TreasurerRejected = true
			}
		case domain.ApprovalCounsellor:
			summary.CounsellorMaterialized = true
			switch domain.ApprovalStatus(a.Status) {
			case domain.ApprovalApproved:
				summary.CounsellorApproved = true
			case domain.ApprovalRejected:
				summary.CounsellorRejected = true
			}
		}
	}

	summary.SeniorCoreApproved = len(seniorApprovers)

	return summary, nil
}
