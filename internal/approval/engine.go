// internal/approval/engine.go
package approval

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/workorder"
)

var (
	// ErrNotReviewable flags an approval aimed at a work order outside the
	// review phases.
	ErrNotReviewable = errors.New("not awaiting review")
	// ErrNotIssuable flags an issue attempt on a requisition that has not
	// been approved.
	ErrNotIssuable = errors.New("not approved for issue")
)

// The engine generalizes pending-queue review across the three request
// kinds. Work orders go through the seven-state lifecycle with an audit
// history; part requests and annual requests use the flat RequestStatus
// enum with no history. Permission checks are the caller's job.

// reviewPhases are the work order states awaiting the next manager action.
// MR Generated and Closing are included even though the manager gate
// proper sits at Manager Review and Closing: a work order in MR Generated
// is waiting to be admitted into review.
var reviewPhases = []models.WorkOrderStatus{
	models.StatusMRGenerated,
	models.StatusManagerReview,
	models.StatusClosing,
}

// InReview reports whether a work order belongs to the approval queue.
func InReview(wo models.WorkOrder) bool {
	for _, s := range reviewPhases {
		if wo.Status == s {
			return true
		}
	}
	return false
}

// WorkOrderQueue filters the pending set of work orders, preserving order.
func WorkOrderQueue(all []models.WorkOrder) []models.WorkOrder {
	out := make([]models.WorkOrder, 0)
	for _, wo := range all {
		if InReview(wo) {
			out = append(out, wo)
		}
	}
	return out
}

// RequestPending reports whether a requisition awaits review. An empty
// status is tolerated as legacy data and treated as pending.
func RequestPending(status models.RequestStatus) bool {
	return status == models.RequestPending || status == ""
}

// PartRequestQueue filters the pending set of part requests.
func PartRequestQueue(all []models.PartRequest) []models.PartRequest {
	out := make([]models.PartRequest, 0)
	for _, req := range all {
		if RequestPending(req.Status) {
			out = append(out, req)
		}
	}
	return out
}

// AnnualRequestQueue filters the pending set of annual planning requests.
func AnnualRequestQueue(all []models.AnnualPartRequest) []models.AnnualPartRequest {
	out := make([]models.AnnualPartRequest, 0)
	for _, req := range all {
		if RequestPending(req.Status) {
			out = append(out, req)
		}
	}
	return out
}

// ApproveWorkOrder delegates to the lifecycle gate logic: advance, clear
// rejection notes, log an Approved entry.
func ApproveWorkOrder(wo *models.WorkOrder, actor string) {
	workorder.Approve(wo, actor)
}

// RejectWorkOrder returns a work order for rework. Only the two gate states
// accept a rejection; the rollback target is derived from the current
// state (Manager Review falls back to MR Generated, Closing to Execution).
func RejectWorkOrder(wo *models.WorkOrder, actor, reason string) error {
	return workorder.Reject(wo, actor, reason)
}

// ApproveRequest marks a requisition approved. Single step; the later
// Approved -> Issued transition is not gated by the engine.
func ApproveRequest(status *models.RequestStatus) {
	*status = models.RequestApproved
}

// RejectRequest cancels a requisition and records the reviewer's reason.
// The reason is appended to any existing notes so the requester's original
// justification survives the rejection.
func RejectRequest(status *models.RequestStatus, notes *string, reason string) {
	*status = models.RequestCancelled
	if strings.TrimSpace(*notes) == "" {
		*notes = reason
		return
	}
	*notes = fmt.Sprintf("%s\nRejected: %s", *notes, reason)
}

// IssueRequest moves an approved part request to Issued. Pending or
// cancelled requests cannot be issued.
func IssueRequest(req *models.PartRequest) error {
	if req.Status != models.RequestApproved {
		return fmt.Errorf("request %s: status %q: %w", req.ID, req.Status, ErrNotIssuable)
	}
	req.Status = models.RequestIssued
	return nil
}
