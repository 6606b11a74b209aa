package domain

import (
	"errors"
	"fmt"
)

// SeniorCoreQuorum is the number of distinct senior-core approvers an
// event needs before it advances to the treasurer stage.
const SeniorCoreQuorum = 2

var (
	ErrEventFinalized     = errors.New("event is in a terminal state and cannot be modified")
	ErrWrongApprovalStage = errors.New("approval type is not valid for the event's current stage")
)

// ApprovalSummary condenses the full approval ledger of one event.
// SeniorCoreApproved counts distinct approver identities, not rows.
type ApprovalSummary struct {
	SeniorCoreApproved     int
	SeniorCoreRejected     bool
	TreasurerApproved      bool
	TreasurerRejected      bool
	CounsellorApproved     bool
	CounsellorRejected     bool
	TreasurerMaterialized  bool
	CounsellorMaterialized bool
}

func IsTerminalStatus(status EventStatus) bool {
	return status == StatusClosed || status == StatusRejected
}

// ComputeEventStatus derives the target status from the ledger. Any
// rejection wins, then the furthest satisfied stage.
func ComputeEventStatus(s ApprovalSummary) EventStatus {
	if s.SeniorCoreRejected || s.TreasurerRejected || s.CounsellorRejected {
		return StatusRejected
	}
	if s.CounsellorApproved {
		return StatusApproved
	}
	if s.TreasurerApproved {
		return StatusCounsellorPending
	}
	if s.SeniorCoreApproved >= SeniorCoreQuorum {
		return StatusTreasurerPending
	}

	return StatusSeniorCorePending
}

// allowedApprovals gates which approval type may be decided at each stage.
var allowedApprovals = map[EventStatus]ApprovalType{
	StatusSeniorCorePending: ApprovalSeniorCore,
	StatusTreasurerPending:  ApprovalTreasurer,
	StatusCounsellorPending: ApprovalCounsellor,
}

// CheckApprovalStage rejects decisions that do not match the event's
// current stage. Terminal and post-approval statuses accept nothing.
func CheckApprovalStage(status EventStatus, approvalType ApprovalType) error {
	if IsTerminalStatus(status) {
		return fmt.Errorf("%w: event is %s", ErrEventFinalized, status)
	}

	allowed, ok := allowedApprovals[status]
	if !ok || allowed != approvalType {
		return fmt.Errorf("%w: %s cannot be decided while event is %s", ErrWrongApprovalStage, approvalType, status)
	}

	return nil
}
