package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository"
)

// In-memory fakes. They mirror the repository semantics closely enough
// for the services under test, including the sentinel errors.

type fakeEventRepo struct {
	nextEventID    uint
	nextApprovalID uint
	events         map[uint]domain.Event
	approvals      []domain.EventApproval
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		nextEventID:    1,
		nextApprovalID: 1,
		events:         make(map[uint]domain.Event),
	}
}

func (r *fakeEventRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *fakeEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	event.ID = r.nextEventID
	r.nextEventID++
	r.events[event.ID] = event

	return event, nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id uint) (domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (r *fakeEventRepo) GetForUpdate(ctx context.Context, id uint) (domain.Event, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeEventRepo) List(ctx context.Context, status domain.EventStatus, chapterID uint) ([]domain.Event, error) {
	var events []domain.Event
	for _, e := range r.events {
		if status != "" && e.Status != status {
			continue
		}
		if chapterID != 0 && e.ChapterID != chapterID {
			continue
		}
		events = append(events, e)
	}

	return events, nil
}

func (r *fakeEventRepo) UpdateStatus(ctx context.Context, id uint, status domain.EventStatus, approvedDate *time.Time) error {
	event, ok := r.events[id]
	if !ok {
		return repository.ErrEventNotFound
	}

	event.Status = status
	if approvedDate != nil {
		event.ApprovedDate = approvedDate
	}
	r.events[id] = event

	return nil
}

func (r *fakeEventRepo) CreateApprovals(ctx context.Context, approvals []domain.EventApproval) error {
	for _, a := range approvals {
		a.ID = r.nextApprovalID
		r.nextApprovalID++
		r.approvals = append(r.approvals, a)
	}

	return nil
}

func (r *fakeEventRepo) FindApproval(ctx context.Context, eventID, approverID uint, approvalType domain.ApprovalType) (domain.EventApproval, error) {
	for _, a := range r.approvals {
		if a.EventID == eventID && a.ApproverID == approverID && a.ApprovalType == approvalType {
			return a, nil
		}
	}

	return domain.EventApproval{}, repository.ErrApprovalNotFound
}

func (r *fakeEventRepo) RecordDecision(ctx context.Context, approvalID uint, status domain.ApprovalStatus, comments string) error {
	for i, a := range r.approvals {
		if a.ID == approvalID && a.Status == domain.ApprovalPending {
			r.approvals[i].Status = status
			r.approvals[i].Comments = comments

			return nil
		}
	}

	return repository.ErrApprovalNotFound
}

func (r *fakeEventRepo) ListApprovals(ctx context.Context, eventID uint) ([]domain.EventApproval, error) {
	var approvals []domain.EventApproval
	for _, a := range r.approvals {
		if a.EventID == eventID {
			approvals = append(approvals, a)
		}
	}

	return approvals, nil
}

func (r *fakeEventRepo) ListApprovalsByApprover(ctx context.Context, approverID uint, status domain.ApprovalStatus) ([]domain.EventApproval, error) {
	var approvals []domain.EventApproval
	for _, a := range r.approvals {
		if a.ApproverID == approverID && a.Status == status {
			approvals = append(approvals, a)
		}
	}

	return approvals, nil
}

func (r *fakeEventRepo) SummarizeApprovals(ctx context.Context, eventID uint) (domain.ApprovalSummary, error) {
	var summary domain.ApprovalSummary
	seniorApprovers := make(map[uint]struct{})

	for _, a := range r.approvals {
		if a.EventID != eventID {
			continue
		}

		switch a.ApprovalType {
		case domain.ApprovalSeniorCore:
			if a.Status == domain.ApprovalApproved {
				seniorApprovers[a.ApproverID] = struct{}{}
			}
			if a.Status == domain.ApprovalRejected {
				summary.SeniorCoreRejected = true
			}
		case domain.ApprovalTreasurer:
			summary.TreasurerMaterialized = true
			summary.TreasurerApproved = summary.TreasurerApproved || a.Status == domain.ApprovalApproved
			summary.TreasurerRejected = summary.TreasurerRejected || a.Status == domain.ApprovalRejected
		case domain.ApprovalCounsellor:
			summary.CounsellorMaterialized = true
			summary.CounsellorApproved = summary.CounsellorApproved || a.Status == domain.ApprovalApproved
			summary.CounsellorRejected = summary.CounsellorRejected || a.Status == domain.ApprovalRejected
		}
	}
	summary.SeniorCoreApproved = len(seniorApprovers)

	return summary, nil
}

type fakeUserRepo struct {
	users     map[uint]domain.User
	approvers map[domain.ApprovalType][]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     make(map[uint]domain.User),
		approvers: make(map[domain.ApprovalType][]domain.User),
	}
}

func (r *fakeUserRepo) add(user domain.User) domain.User {
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) addApprover(approvalType domain.ApprovalType, user domain.User) domain.User {
	r.add(user)
	r.approvers[approvalType] = append(r.approvers[approvalType], user)

	return user
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) FindByRoleNames(ctx context.Context, names []string) ([]domain.User, error) {
	var users []domain.User
	for _, u := range r.users {
		for _, name := range names {
			if u.Role.Name == name {
				users = append(users, u)
				break
			}
		}
	}

	return users, nil
}

func (r *fakeUserRepo) FindEligibleApprovers(ctx context.Context, approvalType domain.ApprovalType) ([]domain.User, error) {
	return r.approvers[approvalType], nil
}

func (r *fakeUserRepo) LockUser(ctx context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}

	return nil
}

type fakeCalendarRepo struct {
	limit   uint
	counts  map[time.Time]int
	blocked map[time.Time]bool
}

func newFakeCalendarRepo() *fakeCalendarRepo {
	return &fakeCalendarRepo{
		limit:   domain.MaxEventsPerDay,
		counts:  make(map[time.Time]int),
		blocked: make(map[time.Time]bool),
	}
}

func (r *fakeCalendarRepo) GetBlock(ctx context.Context, date time.Time) (domain.CalendarBlock, error) {
	return domain.CalendarBlock{
		EventDate:  date,
		EventCount: r.counts[date],
		Blocked:    r.blocked[date],
	}, nil
}

func (r *fakeCalendarRepo) ReserveSlot(ctx context.Context, date time.Time) error {
	if r.blocked[date] || r.counts[date] >= int(r.limit) {
		return repository.ErrDateFull
	}
	r.counts[date]++

	return nil
}

func (r *fakeCalendarRepo) ReleaseSlot(ctx context.Context, date time.Time) error {
	if r.counts[date] > 0 {
		r.counts[date]--
	}

	return nil
}

type fakeCalendarEvents struct {
	events []domain.Event
}

func (r *fakeCalendarEvents) ListBetween(ctx context.Context, start, end time.Time, statuses []domain.EventStatus) ([]domain.Event, error) {
	var events []domain.Event
	for _, e := range r.events {
		if e.ProposedDate.Before(start) || e.ProposedDate.After(end) {
			continue
		}
		for _, s := range statuses {
			if e.Status == s {
				events = append(events, e)
				break
			}
		}
	}

	return events, nil
}

type fakeEventNotifier struct {
	approved []domain.Event
	fail     bool
}

func (n *fakeEventNotifier) NotifyEventApproved(ctx context.Context, event domain.Event) error {
	if n.fail {
		return fmt.Errorf("notifier down")
	}
	n.approved = append(n.approved, event)

	return nil
}

type fakeProctorRepo struct {
	nextMappingID uint
	nextUpdateID  uint
	mappings      []domain.ProctorMapping
	updates       []domain.ProctorUpdate
}

func newFakeProctorRepo() *fakeProctorRepo {
	return &fakeProctorRepo{
		nextMappingID: 1,
		nextUpdateID:  1,
	}
}

func (r *fakeProctorRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *fakeProctorRepo) CreateMapping(ctx context.Context, proctorID, execomID uint) (domain.ProctorMapping, error) {
	for _, m := range r.mappings {
		if m.ExecomID == execomID {
			return domain.ProctorMapping{}, repository.ErrMappingExists
		}
	}

	mapping := domain.ProctorMapping{ID: r.nextMappingID, ProctorID: proctorID, ExecomID: execomID}
	r.nextMappingID++
	r.mappings = append(r.mappings, mapping)

	return mapping, nil
}

func (r *fakeProctorRepo) DeleteMapping(ctx context.Context, proctorID, execomID uint) error {
	for i, m := range r.mappings {
		if m.ProctorID == proctorID && m.ExecomID == execomID {
			r.mappings = append(r.mappings[:i], r.mappings[i+1:]...)
			return nil
		}
	}

	return repository.ErrMappingNotFound
}

func (r *fakeProctorRepo) FindMappingByExecom(ctx context.Context, execomID uint) (domain.ProctorMapping, error) {
	for _, m := range r.mappings {
		if m.ExecomID == execomID {
			return m, nil
		}
	}

	return domain.ProctorMapping{}, repository.ErrMappingNotFound
}

func (r *fakeProctorRepo) CountMappingsByProctor(ctx context.Context, proctorID uint) (int, error) {
	var count int
	for _, m := range r.mappings {
		if m.ProctorID == proctorID {
			count++
		}
	}

	return count, nil
}

func (r *fakeProctorRepo) ListMappings(ctx context.Context, proctorID uint) ([]domain.ProctorMapping, error) {
	if proctorID == 0 {
		return r.mappings, nil
	}

	var mappings []domain.ProctorMapping
	for _, m := range r.mappings {
		if m.ProctorID == proctorID {
			mappings = append(mappings, m)
		}
	}

	return mappings, nil
}

func (r *fakeProctorRepo) CreateUpdate(ctx context.Context, update domain.ProctorUpdate) (domain.ProctorUpdate, error) {
	for _, u := range r.updates {
		if u.ProctorID == update.ProctorID && u.ExecomID == update.ExecomID &&
			u.PeriodStart.Equal(update.PeriodStart) && u.PeriodEnd.Equal(update.PeriodEnd) {
			return domain.ProctorUpdate{}, repository.ErrUpdateExists
		}
	}

	update.ID = r.nextUpdateID
	r.nextUpdateID++
	r.updates = append(r.updates, update)

	return update, nil
}

func (r *fakeProctorRepo) ListUpdates(ctx context.Context, proctorID, execomID uint) ([]domain.ProctorUpdate, error) {
	var updates []domain.ProctorUpdate
	for _, u := range r.updates {
		if proctorID != 0 && u.ProctorID != proctorID {
			continue
		}
		if execomID != 0 && u.ExecomID != execomID {
			continue
		}
		updates = append(updates, u)
	}

	return updates, nil
}

type fakeDocumentRepo struct {
	nextAssignmentID uint
	nextDocumentID   uint
	assignments      []domain.EventAssignment
	documents        map[uint]domain.EventDocument
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{
		nextAssignmentID: 1,
		nextDocumentID:   1,
		documents:        make(map[uint]domain.EventDocument),
	}
}

func (r *fakeDocumentRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *fakeDocumentRepo) CreateAssignment(ctx context.Context, assignment domain.EventAssignment) (domain.EventAssignment, error) {
	for _, a := range r.assignments {
		if a.EventID == assignment.EventID && a.TeamType == assignment.TeamType && a.AssignedTo == assignment.AssignedTo {
			return domain.EventAssignment{}, repository.ErrAssignmentExists
		}
	}

	assignment.ID = r.nextAssignmentID
	r.nextAssignmentID++
	r.assignments = append(r.assignments, assignment)

	return assignment, nil
}

func (r *fakeDocumentRepo) FindAssignment(ctx context.Context, eventID uint, teamType domain.TeamType, assignedTo uint) (domain.EventAssignment, error) {
	for _, a := range r.assignments {
		if a.EventID == eventID && a.TeamType == teamType && a.AssignedTo == assignedTo {
			return a, nil
		}
	}

	return domain.EventAssignment{}, repository.ErrAssignmentNotFound
}

func (r *fakeDocumentRepo) ListAssignments(ctx context.Context, eventID uint) ([]domain.EventAssignment, error) {
	var assignments []domain.EventAssignment
	for _, a := range r.assignments {
		if a.EventID == eventID {
			assignments = append(assignments, a)
		}
	}

	return assignments, nil
}

func (r *fakeDocumentRepo) CreateDocument(ctx context.Context, document domain.EventDocument) (domain.EventDocument, error) {
	document.ID = r.nextDocumentID
	r.nextDocumentID++
	document.ReviewStatus = domain.ReviewPending
	r.documents[document.ID] = document

	return document, nil
}

func (r *fakeDocumentRepo) GetDocument(ctx context.Context, id uint) (domain.EventDocument, error) {
	document, ok := r.documents[id]
	if !ok {
		return domain.EventDocument{}, repository.ErrDocumentNotFound
	}

	return document, nil
}

func (r *fakeDocumentRepo) ListDocuments(ctx context.Context, eventID uint) ([]domain.EventDocument, error) {
	var documents []domain.EventDocument
	for _, d := range r.documents {
		if d.EventID == eventID {
			documents = append(documents, d)
		}
	}

	return documents, nil
}

func (r *fakeDocumentRepo) UpdateReview(ctx context.Context, id uint, status domain.ReviewStatus, reviewedBy uint) error {
	document, ok := r.documents[id]
	if !ok {
		return repository.ErrDocumentNotFound
	}

	document.ReviewStatus = status
	document.ReviewedBy = &reviewedBy
	r.documents[id] = document

	return nil
}

type fakeNotificationRepo struct {
	nextID        uint
	notifications []domain.Notification
	failFor       map[uint]bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		nextID:  1,
		failFor: make(map[uint]bool),
	}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification domain.Notification) (domain.Notification, error) {
	if r.failFor[notification.UserID] {
		return domain.Notification{}, fmt.Errorf("insert failed")
	}

	notification.ID = r.nextID
	r.nextID++
	r.notifications = append(r.notifications, notification)

	return notification, nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID uint) ([]domain.Notification, error) {
	var notifications []domain.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}

	return notifications, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID uint) error {
	for i, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			r.notifications[i].Read = true
			return nil
		}
	}

	return repository.ErrNotificationNotFound
}
