package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/clock"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
)

var testNow = time.Date(2026, time.March, 1, 15, 30, 0, 0, time.UTC)

func uintPtr(v uint) *uint {
	return &v
}

type eventTestEnv struct {
	repo     *fakeEventRepo
	users    *fakeUserRepo
	calRepo  *fakeCalendarRepo
	notifier *fakeEventNotifier
	svc      *EventService

	proposer   domain.User
	seniors    []domain.User
	treasurer  domain.User
	counsellor domain.User
}

// newEventTestEnv wires the service against in-memory fakes with a full
// approver roster: three senior core members, a treasurer and a counsellor.
func newEventTestEnv(t *testing.T) *eventTestEnv {
	t.Helper()

	env := &eventTestEnv{
		repo:     newFakeEventRepo(),
		users:    newFakeUserRepo(),
		calRepo:  newFakeCalendarRepo(),
		notifier: &fakeEventNotifier{},
	}

	env.seniors = []domain.User{
		env.users.addApprover(domain.ApprovalSeniorCore, domain.User{
			ID: 1, Name: "Chair", Role: domain.Role{Name: domain.RoleSBChair, Level: domain.RoleLevelSeniorCore},
		}),
		env.users.addApprover(domain.ApprovalSeniorCore, domain.User{
			ID: 2, Name: "Secretary", Role: domain.Role{Name: domain.RoleSBSecretary, Level: domain.RoleLevelSeniorCore},
		}),
		env.users.addApprover(domain.ApprovalSeniorCore, domain.User{
			ID: 3, Name: "Convener", Role: domain.Role{Name: domain.RoleSBConvener, Level: domain.RoleLevelSeniorCore},
		}),
	}
	env.treasurer = env.users.addApprover(domain.ApprovalTreasurer, domain.User{
		ID: 4, Name: "Treasurer", Role: domain.Role{Name: domain.RoleSBTreasurer, Level: domain.RoleLevelSeniorCore},
	})
	env.counsellor = env.users.addApprover(domain.ApprovalCounsellor, domain.User{
		ID: 5, Name: "Counsellor", Role: domain.Role{Name: domain.RoleBranchCounsellor, Level: domain.RoleLevelSeniorCore},
	})

	env.proposer = env.users.add(domain.User{
		ID: 10, Name: "Chapter Chair",
		Role:      domain.Role{Name: domain.RoleChapterChair, Level: domain.RoleLevelChapterLeadership},
		ChapterID: uintPtr(1),
	})

	calendar := NewCalendarService(env.calRepo, &fakeCalendarEvents{}, clock.NewFixed(testNow))
	env.svc = NewEventService(env.repo, env.users, calendar, env.notifier, zap.NewNop())

	return env
}

func (env *eventTestEnv) proposal() domain.Event {
	return domain.Event{
		Title:        "Intro to Embedded Systems",
		Description:  "A hands-on workshop",
		EventType:    domain.EventWorkshop,
		ProposedDate: testNow.AddDate(0, 0, 20),
		ChapterID:    1,
	}
}

func (env *eventTestEnv) propose(t *testing.T) domain.Event {
	t.Helper()

	event, err := env.svc.ProposeEvent(context.Background(), env.proposer, env.proposal())
	require.NoError(t, err)

	return event
}

func (env *eventTestEnv) approveSeniorQuorum(t *testing.T, eventID uint) domain.Event {
	t.Helper()

	_, err := env.svc.SubmitApproval(context.Background(), env.seniors[0], eventID, domain.ApprovalSeniorCore, domain.ApprovalApproved, "")
	require.NoError(t, err)

	event, err := env.svc.SubmitApproval(context.Background(), env.seniors[1], eventID, domain.ApprovalSeniorCore, domain.ApprovalApproved, "")
	require.NoError(t, err)

	return event
}

func (env *eventTestEnv) approveFully(t *testing.T, eventID uint) domain.Event {
	t.Helper()

	env.approveSeniorQuorum(t, eventID)

	_, err := env.svc.SubmitApproval(context.Background(), env.treasurer, eventID, domain.ApprovalTreasurer, domain.ApprovalApproved, "budget fine")
	require.NoError(t, err)

	event, err := env.svc.SubmitApproval(context.Background(), env.counsellor, eventID, domain.ApprovalCounsellor, domain.ApprovalApproved, "")
	require.NoError(t, err)

	return event
}

func TestEventService_ProposeEvent(t *testing.T) {
	t.Run("creates the event with senior core slots", func(t *testing.T) {
		env := newEventTestEnv(t)

		event := env.propose(t)
		assert.Equal(t, domain.StatusSeniorCorePending, event.Status)
		assert.Equal(t, env.proposer.ID, event.ProposedBy)

		approvals, err := env.svc.GetEventApprovals(context.Background(), event.ID)
		require.NoError(t, err)
		assert.Len(t, approvals, 3)
		for _, a := range approvals {
			assert.Equal(t, domain.ApprovalSeniorCore, a.ApprovalType)
			assert.Equal(t, domain.ApprovalPending, a.Status)
			assert.NotEqual(t, env.proposer.ID, a.ApproverID)
		}
	})

	t.Run("rejects proposer roles outside chapter leadership", func(t *testing.T) {
		env := newEventTestEnv(t)

		_, err := env.svc.ProposeEvent(context.Background(), env.treasurer, env.proposal())
		assert.ErrorIs(t, err, ErrProposerNotAllowed)
	})

	t.Run("rejects proposals for another chapter", func(t *testing.T) {
		env := newEventTestEnv(t)

		proposal := env.proposal()
		proposal.ChapterID = 2

		_, err := env.svc.ProposeEvent(context.Background(), env.proposer, proposal)
		assert.ErrorIs(t, err, ErrOutsideChapter)
	})

	t.Run("enforces the minimum lead time", func(t *testing.T) {
		env := newEventTestEnv(t)

		proposal := env.proposal()
		proposal.ProposedDate = testNow.AddDate(0, 0, domain.LeadTimeDays-1)

		_, err := env.svc.ProposeEvent(context.Background(), env.proposer, proposal)
		assert.ErrorIs(t, err, ErrLeadTimeTooShort)
	})

	t.Run("the lead time boundary day is allowed", func(t *testing.T) {
		env := newEventTestEnv(t)

		proposal := env.proposal()
		proposal.ProposedDate = testNow.AddDate(0, 0, domain.LeadTimeDays)

		_, err := env.svc.ProposeEvent(context.Background(), env.proposer, proposal)
		assert.NoError(t, err)
	})

	t.Run("rejects a date that is already full", func(t *testing.T) {
		env := newEventTestEnv(t)

		date := truncateToDay(env.proposal().ProposedDate)
		env.calRepo.counts[date] = domain.MaxEventsPerDay

		_, err := env.svc.ProposeEvent(context.Background(), env.proposer, env.proposal())
		assert.ErrorIs(t, err, ErrDateFull)
	})

	t.Run("requires a quorum-sized pool excluding the proposer", func(t *testing.T) {
		env := newEventTestEnv(t)
		env.users.approvers[domain.ApprovalSeniorCore] = env.seniors[:1]

		_, err := env.svc.ProposeEvent(context.Background(), env.proposer, env.proposal())
		assert.ErrorIs(t, err, ErrQuorumPoolTooSmall)
	})
}

func TestEventService_SubmitApproval(t *testing.T) {
	t.Run("one approval is below quorum", func(t *testing.T) {
		env := newEventTestEnv(t)
		event := env.propose(t)

		updated, err := env.svc.SubmitApproval(context.Background(), env.seniors[0], event.ID, domain.ApprovalSeniorCore, domain.ApprovalApproved, "")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSeniorCorePending, updated.Status)
	})

	t.Run("two distinct approvers reach quorum", func(t *testing.T) {
		env := newEventTestEnv(t)
		event := env.propose(t)

		updated := env.approveSeniorQuorum(t, event.ID)
		assert.Equal(t, domain.StatusTreasurerPending, updated.Status)

		// The treasurer slot is materialized lazily on the transition.
		approvals, err := env.svc.GetEventApprovals(context.Background(), event.ID)
		require.NoError(t, err)

		var treasurerSlots int
		for _, a := range approvals {
			if a.ApprovalType == domain.ApprovalTreasurer {
				treasurerSlots++
			}
		}
		assert.Equal(t, 1, treasurerSlots)
	})

	t.Run("the same approver cannot decide twice", func(t *testing.T) {
		env := newEventTestEnv(t)
		event := env.propose(t)

		_, err := env.svc.SubmitApproval(context.Background(), env.seniors[0], event.ID, domain.ApprovalSeniorCore, domain.ApprovalApproved, "")
		require.NoError(t, err)

		_, err = env.svc.SubmitApproval(context.Background(), env.seniors[0], event.ID, domain.ApprovalSeniorCore, domain.ApprovalApproved, "")
		assert.ErrorIs(t, err, ErrApprovalAlreadyDecided)
	})

	t.Run("decisions out of stage are rejected", func(t *testing.T) {
		env := newEventTestEnv(t)
		event := env.propose(t)

		_, err := env.svc.SubmitApproval(context.Background(), env.treasurer, event.ID, domain.ApprovalTreasurer, domain.ApprovalApproved, "")
		assert.ErrorIs(t, err, ErrWrongApprovalStage)
	})

	t.Run("unassigned approvers are rejected", func(t *testing.T) {
		env := newEventTestEnv(t)
		event := env.propose(t)

		_, err := env.svc.SubmitApproval(context.Background(), env.proposer, event.ID, domain.ApprovalSeniorCore, domain.ApprovalApproved, "")
		assert.ErrorIs(t, err, ErrApprovalNotAssigned)
	})

	t.Run("a single rejection finalizes the event", func(t *testing.T) {
		env := newEventTestEnv(t)
		event := env.propose(t)

		updated, err := env.svc.SubmitApproval(context.Background(), env.seniors[0], event.ID, domain.ApprovalSeniorCore, domain.ApprovalRejected, "clashes with exams")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, updated.Status)

		_, err = env.svc.SubmitApproval(context.Background(), env.seniors[1], event.ID, domain.ApprovalSeniorCore, domain.ApprovalApproved, "")
		assert.ErrorIs(t, err, ErrEventFinalized)
	})

	t.Run("unknown event", func(t *testing.T) {
		env := newEventTestEnv(t)

		_, err := env.svc.SubmitApproval(context.Background(), env.seniors[0], 999, domain.ApprovalSeniorCore, domain.ApprovalApproved, "")
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventService_FullPipeline(t *testing.T) {
	env := newEventTestEnv(t)
	event := env.propose(t)

	updated := env.approveFully(t, event.ID)
	assert.Equal(t, domain.StatusApproved, updated.Status)

	require.NotNil(t, updated.ApprovedDate)
	assert.Equal(t, truncateToDay(event.ProposedDate), *updated.ApprovedDate)

	// The approval reserved a calendar slot.
	assert.Equal(t, 1, env.calRepo.counts[truncateToDay(event.ProposedDate)])

	// Team heads were notified.
	require.Len(t, env.notifier.approved, 1)
	assert.Equal(t, event.ID, env.notifier.approved[0].ID)
}

func TestEventService_CounsellorMissingToleratedWithWarning(t *testing.T) {
	env := newEventTestEnv(t)
	env.users.approvers[domain.ApprovalCounsellor] = nil

	event := env.propose(t)
	env.approveSeniorQuorum(t, event.ID)

	// With no counsellor on record the event still advances, just
	// without a counsellor slot.
	updated, err := env.svc.SubmitApproval(context.Background(), env.treasurer, event.ID, domain.ApprovalTreasurer, domain.ApprovalApproved, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCounsellorPending, updated.Status)

	approvals, err := env.svc.GetEventApprovals(context.Background(), event.ID)
	require.NoError(t, err)
	for _, a := range approvals {
		assert.NotEqual(t, domain.ApprovalCounsellor, a.ApprovalType)
	}

	// Once a counsellor exists, a refresh creates the missing slot and
	// their approval completes the pipeline.
	env.users.approvers[domain.ApprovalCounsellor] = []domain.User{env.counsellor}

	refreshed, err := env.svc.RefreshEventStatus(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCounsellorPending, refreshed.Status)

	final, err := env.svc.SubmitApproval(context.Background(), env.counsellor, event.ID, domain.ApprovalCounsellor, domain.ApprovalApproved, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, final.Status)
	assert.Equal(t, 1, env.calRepo.counts[truncateToDay(event.ProposedDate)])
}

func TestEventService_TreasurerMissingAbortsTransition(t *testing.T) {
	env := newEventTestEnv(t)
	env.users.approvers[domain.ApprovalTreasurer] = nil

	event := env.propose(t)

	_, err := env.svc.SubmitApproval(context.Background(), env.seniors[0], event.ID, domain.ApprovalSeniorCore, domain.ApprovalApproved, "")
	require.NoError(t, err)

	// The quorum-completing decision is recorded but the transition fails.
	_, err = env.svc.SubmitApproval(context.Background(), env.seniors[1], event.ID, domain.ApprovalSeniorCore, domain.ApprovalApproved, "")
	assert.ErrorIs(t, err, ErrTreasurerMissing)

	current, err := env.svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSeniorCorePending, current.Status)

	// Once a treasurer exists, a refresh replays the transition without
	// requiring anyone to re-decide.
	env.users.approvers[domain.ApprovalTreasurer] = []domain.User{env.treasurer}

	refreshed, err := env.svc.RefreshEventStatus(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTreasurerPending, refreshed.Status)
}

func TestEventService_DateFullAtFinalApproval(t *testing.T) {
	env := newEventTestEnv(t)
	event := env.propose(t)
	date := truncateToDay(event.ProposedDate)

	env.approveSeniorQuorum(t, event.ID)
	_, err := env.svc.SubmitApproval(context.Background(), env.treasurer, event.ID, domain.ApprovalTreasurer, domain.ApprovalApproved, "")
	require.NoError(t, err)

	// The date fills up while the counsellor deliberates.
	env.calRepo.counts[date] = domain.MaxEventsPerDay

	_, err = env.svc.SubmitApproval(context.Background(), env.counsellor, event.ID, domain.ApprovalCounsellor, domain.ApprovalApproved, "")
	assert.ErrorIs(t, err, ErrDateFull)

	// The decision survived the failed transition.
	current, err := env.svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCounsellorPending, current.Status)

	// A slot frees up and a refresh completes the approval.
	env.calRepo.counts[date] = domain.MaxEventsPerDay - 1

	refreshed, err := env.svc.RefreshEventStatus(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, refreshed.Status)
	assert.Equal(t, domain.MaxEventsPerDay, env.calRepo.counts[date])
}

func TestEventService_DocumentationAndClose(t *testing.T) {
	t.Run("approved events advance and close", func(t *testing.T) {
		env := newEventTestEnv(t)
		event := env.propose(t)
		env.approveFully(t, event.ID)

		updated, err := env.svc.MarkDocumentationSubmitted(context.Background(), event.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDocumentationSubmitted, updated.Status)

		// Marking again is a no-op.
		updated, err = env.svc.MarkDocumentationSubmitted(context.Background(), event.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDocumentationSubmitted, updated.Status)

		closed, err := env.svc.CloseEvent(context.Background(), event.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusClosed, closed.Status)
	})

	t.Run("closing keeps the calendar slot", func(t *testing.T) {
		env := newEventTestEnv(t)
		event := env.propose(t)
		env.approveFully(t, event.ID)
		date := truncateToDay(event.ProposedDate)

		_, err := env.svc.MarkDocumentationSubmitted(context.Background(), event.ID)
		require.NoError(t, err)
		_, err = env.svc.CloseEvent(context.Background(), event.ID)
		require.NoError(t, err)

		assert.Equal(t, 1, env.calRepo.counts[date])

		// A refresh on a closed event changes nothing.
		refreshed, err := env.svc.RefreshEventStatus(context.Background(), event.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusClosed, refreshed.Status)
		assert.Equal(t, 1, env.calRepo.counts[date])
	})

	t.Run("documentation requires an approved event", func(t *testing.T) {
		env := newEventTestEnv(t)
		event := env.propose(t)

		_, err := env.svc.MarkDocumentationSubmitted(context.Background(), event.ID)
		assert.ErrorIs(t, err, ErrEventNotApproved)
	})

	t.Run("closing requires submitted documentation", func(t *testing.T) {
		env := newEventTestEnv(t)
		event := env.propose(t)
		env.approveFully(t, event.ID)

		_, err := env.svc.CloseEvent(context.Background(), event.ID)
		assert.ErrorIs(t, err, ErrDocumentationPending)
	})

	t.Run("closed events cannot advance again", func(t *testing.T) {
		env := newEventTestEnv(t)
		event := env.propose(t)
		env.approveFully(t, event.ID)

		_, err := env.svc.MarkDocumentationSubmitted(context.Background(), event.ID)
		require.NoError(t, err)
		_, err = env.svc.CloseEvent(context.Background(), event.ID)
		require.NoError(t, err)

		_, err = env.svc.MarkDocumentationSubmitted(context.Background(), event.ID)
		assert.ErrorIs(t, err, ErrEventFinalized)
	})
}

func TestEventService_ListPendingApprovals(t *testing.T) {
	env := newEventTestEnv(t)
	event := env.propose(t)

	pending, err := env.svc.ListPendingApprovals(context.Background(), env.seniors[0].ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, event.ID, pending[0].EventID)

	_, err = env.svc.SubmitApproval(context.Background(), env.seniors[0], event.ID, domain.ApprovalSeniorCore, domain.ApprovalApproved, "")
	require.NoError(t, err)

	pending, err = env.svc.ListPendingApprovals(context.Background(), env.seniors[0].ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestEventService_NotifierFailureDoesNotFailApproval(t *testing.T) {
	env := newEventTestEnv(t)
	env.notifier.fail = true

	event := env.propose(t)
	updated := env.approveFully(t, event.ID)
	assert.Equal(t, domain.StatusApproved, updated.Status)
}
