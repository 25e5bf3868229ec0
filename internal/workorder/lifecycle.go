// internal/workorder/lifecycle.go
package workorder

import (
	"errors"
	"fmt"
	"time"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
)

// ErrNotAtGate is returned when a reject lands on a state that has no
// rework path.
var ErrNotAtGate = errors.New("not a gate state")

// Pipeline is the fixed forward order of work order states. Transitions
// either step forward along this list or jump backward via an explicit
// rework action at one of the two manager gates.
var Pipeline = []models.WorkOrderStatus{
	models.StatusMRGenerated,
	models.StatusManagerReview,
	models.StatusPartsPlanning,
	models.StatusScheduled,
	models.StatusExecution,
	models.StatusClosing,
	models.StatusCompleted,
}

// Gate states require an explicit approve/reject decision instead of a
// plain forward step. Rejection at Manager Review rolls back to MR
// Generated; rejection at Closing rolls back to Execution.
var reworkTarget = map[models.WorkOrderStatus]models.WorkOrderStatus{
	models.StatusManagerReview: models.StatusMRGenerated,
	models.StatusClosing:       models.StatusExecution,
}

// IsGate reports whether the status carries a side-channel reject action.
func IsGate(s models.WorkOrderStatus) bool {
	_, ok := reworkTarget[s]
	return ok
}

// ReworkTarget returns the rollback state for a gate status.
func ReworkTarget(s models.WorkOrderStatus) (models.WorkOrderStatus, bool) {
	t, ok := reworkTarget[s]
	return t, ok
}

func indexOf(s models.WorkOrderStatus) int {
	for i, st := range Pipeline {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the state following s in the pipeline. Completed has no
// successor and returns itself.
func Next(s models.WorkOrderStatus) models.WorkOrderStatus {
	i := indexOf(s)
	if i < 0 || i >= len(Pipeline)-1 {
		if i < 0 {
			return s
		}
		return models.StatusCompleted
	}
	return Pipeline[i+1]
}

// Advance moves the work order one state forward. It is a no-op at
// Completed so repeated calls are idempotent. Outside the gate states this
// is an unconditional status increment with no approval payload.
func Advance(wo *models.WorkOrder) {
	wo.Status = Next(wo.Status)
}

// Approve records a manager approval: the work order advances one state,
// any prior rejection notes are cleared, and an Approved entry is pushed to
// the front of the history. Valid at any state awaiting a manager action;
// at Completed it only logs, matching the forward-advance no-op.
func Approve(wo *models.WorkOrder, actor string) {
	pushHistory(wo, models.ActionApproved, actor, "")
	wo.RejectionNotes = ""
	Advance(wo)
}

// Reject returns the work order for rework. The caller supplies the reason;
// the core assumes it is non-empty (blank reasons are refused at the HTTP
// boundary). Rejecting a non-gate state is an error.
func Reject(wo *models.WorkOrder, actor, reason string) error {
	target, ok := reworkTarget[wo.Status]
	if !ok {
		return fmt.Errorf("work order %s: status %q: %w", wo.ID, wo.Status, ErrNotAtGate)
	}
	pushHistory(wo, models.ActionRejected, actor, reason)
	wo.RejectionNotes = reason
	wo.Status = target
	return nil
}

// pushHistory prepends an audit entry. History is append-only newest-first;
// existing entries are never touched.
func pushHistory(wo *models.WorkOrder, action models.ApprovalAction, actor, notes string) {
	entry := models.ApprovalEntry{
		Status: wo.Status,
		Action: action,
		By:     actor,
		Date:   time.Now(),
		Notes:  notes,
	}
	wo.ApprovalHistory = append([]models.ApprovalEntry{entry}, wo.ApprovalHistory...)
}
