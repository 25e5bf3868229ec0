// internal/service/maintenance.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/approval"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/inventory"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/metrics"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/repo"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/workorder"
)

// Service orchestrates the core transition functions against the blob
// repositories. Core packages stay pure; every load/mutate/save round trip
// lives here. Writes to different blobs are separate and non-atomic, per
// the storage model.
type Service struct {
	repo *repo.Repo
}

func New(r *repo.Repo) *Service {
	return &Service{repo: r}
}

func NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.NewString()[:8]))
}

// ---------- Work orders ----------

func (s *Service) CreateWorkOrder(ctx context.Context, wo models.WorkOrder) (models.WorkOrder, error) {
	if wo.ID == "" {
		wo.ID = NewID("WO")
	}
	wo.Status = models.StatusMRGenerated
	wos, err := s.repo.WorkOrders(ctx)
	if err != nil {
		return models.WorkOrder{}, err
	}
	wos = append([]models.WorkOrder{wo}, wos...)
	if err := s.repo.SaveWorkOrders(ctx, wos); err != nil {
		return models.WorkOrder{}, err
	}
	return wo, nil
}

// AdvanceWorkOrder performs the plain forward step.
func (s *Service) AdvanceWorkOrder(ctx context.Context, id string) (models.WorkOrder, error) {
	wo, err := s.repo.GetWorkOrder(ctx, id)
	if err != nil {
		return models.WorkOrder{}, err
	}
	workorder.Advance(&wo)
	if err := s.repo.UpdateWorkOrder(ctx, wo); err != nil {
		return models.WorkOrder{}, err
	}
	return wo, nil
}

// ApproveWorkOrder applies the manager approval at a review phase. When
// the approval lands the work order in Completed, the referenced asset is
// restored (WorkOrderCompleted event).
func (s *Service) ApproveWorkOrder(ctx context.Context, id, actor string) (models.WorkOrder, error) {
	wo, err := s.repo.GetWorkOrder(ctx, id)
	if err != nil {
		return models.WorkOrder{}, err
	}
	if !approval.InReview(wo) {
		return models.WorkOrder{}, fmt.Errorf("work order %s: status %q: %w", wo.ID, wo.Status, approval.ErrNotReviewable)
	}
	approval.ApproveWorkOrder(&wo, actor)
	if err := s.repo.UpdateWorkOrder(ctx, wo); err != nil {
		return models.WorkOrder{}, err
	}
	metrics.ApprovalActionsTotal.WithLabelValues("workorder", "approved").Inc()
	if wo.Status == models.StatusCompleted {
		s.onWorkOrderCompleted(ctx, wo)
	}
	return wo, nil
}

// RejectWorkOrder returns a gated work order for rework.
func (s *Service) RejectWorkOrder(ctx context.Context, id, actor, reason string) (models.WorkOrder, error) {
	wo, err := s.repo.GetWorkOrder(ctx, id)
	if err != nil {
		return models.WorkOrder{}, err
	}
	if err := approval.RejectWorkOrder(&wo, actor, reason); err != nil {
		return models.WorkOrder{}, err
	}
	if err := s.repo.UpdateWorkOrder(ctx, wo); err != nil {
		return models.WorkOrder{}, err
	}
	metrics.ApprovalActionsTotal.WithLabelValues("workorder", "rejected").Inc()
	return wo, nil
}

// onWorkOrderCompleted restores the serviced asset: health back to 100,
// status Operational, lastService stamped. A dangling asset reference
// degrades to a log line and nothing else.
func (s *Service) onWorkOrderCompleted(ctx context.Context, wo models.WorkOrder) {
	asset, err := s.repo.GetAsset(ctx, wo.AssetID)
	if err != nil {
		slog.Warn("completed work order references unknown asset", "work_order", wo.ID, "asset", wo.AssetID)
		return
	}
	asset.Health = 100
	asset.Status = models.AssetOperational
	asset.LastService = time.Now().Format("2006-01-02")
	if err := s.repo.UpdateAsset(ctx, asset); err != nil {
		slog.Error("asset restore failed", "asset", asset.ID, "err", err)
	}
}

// WorkOrders lists every work order, newest first.
func (s *Service) WorkOrders(ctx context.Context) ([]models.WorkOrder, error) {
	return s.repo.WorkOrders(ctx)
}

// UpdateWorkOrderFields overwrites the editable fields of a stored work
// order. Status, approval history and rejection notes belong to the
// lifecycle and are preserved from the stored copy.
func (s *Service) UpdateWorkOrderFields(ctx context.Context, id string, patch models.WorkOrder) (models.WorkOrder, error) {
	wo, err := s.repo.GetWorkOrder(ctx, id)
	if err != nil {
		return models.WorkOrder{}, err
	}
	patch.ID = wo.ID
	patch.Status = wo.Status
	patch.ApprovalHistory = wo.ApprovalHistory
	patch.RejectionNotes = wo.RejectionNotes
	if err := s.repo.UpdateWorkOrder(ctx, patch); err != nil {
		return models.WorkOrder{}, err
	}
	return patch, nil
}

// ---------- Requisitions ----------

func (s *Service) CreatePartRequest(ctx context.Context, req models.PartRequest) (models.PartRequest, error) {
	if req.ID == "" {
		req.ID = NewID("REQ")
	}
	req.Status = models.RequestPending
	if req.RequestDate == "" {
		req.RequestDate = time.Now().Format("2006-01-02")
	}
	reqs, err := s.repo.PartRequests(ctx)
	if err != nil {
		return models.PartRequest{}, err
	}
	reqs = append([]models.PartRequest{req}, reqs...)
	if err := s.repo.SavePartRequests(ctx, reqs); err != nil {
		return models.PartRequest{}, err
	}
	return req, nil
}

func (s *Service) ApprovePartRequest(ctx context.Context, id string) (models.PartRequest, error) {
	req, err := s.repo.GetPartRequest(ctx, id)
	if err != nil {
		return models.PartRequest{}, err
	}
	if !approval.RequestPending(req.Status) {
		return models.PartRequest{}, fmt.Errorf("request %s: status %q: %w", req.ID, req.Status, approval.ErrNotReviewable)
	}
	approval.ApproveRequest(&req.Status)
	if err := s.repo.UpdatePartRequest(ctx, req); err != nil {
		return models.PartRequest{}, err
	}
	metrics.ApprovalActionsTotal.WithLabelValues("request", "approved").Inc()
	return req, nil
}

func (s *Service) RejectPartRequest(ctx context.Context, id, reason string) (models.PartRequest, error) {
	req, err := s.repo.GetPartRequest(ctx, id)
	if err != nil {
		return models.PartRequest{}, err
	}
	if !approval.RequestPending(req.Status) {
		return models.PartRequest{}, fmt.Errorf("request %s: status %q: %w", req.ID, req.Status, approval.ErrNotReviewable)
	}
	approval.RejectRequest(&req.Status, &req.Notes, reason)
	if err := s.repo.UpdatePartRequest(ctx, req); err != nil {
		return models.PartRequest{}, err
	}
	metrics.ApprovalActionsTotal.WithLabelValues("request", "rejected").Inc()
	return req, nil
}

// IssuePartRequest releases an approved requisition from the store and
// decrements ledger stock for every line (RequisitionIssued event). Stock
// floors at zero; shortages are flagged, not enforced.
func (s *Service) IssuePartRequest(ctx context.Context, id string) (models.PartRequest, error) {
	req, err := s.repo.GetPartRequest(ctx, id)
	if err != nil {
		return models.PartRequest{}, err
	}
	if err := approval.IssueRequest(&req); err != nil {
		return models.PartRequest{}, err
	}
	if err := s.repo.UpdatePartRequest(ctx, req); err != nil {
		return models.PartRequest{}, err
	}
	ledger, err := s.repo.Ledger(ctx)
	if err != nil {
		return models.PartRequest{}, err
	}
	ledger = inventory.Deduct(ledger, req.Items)
	if err := s.repo.SaveLedger(ctx, ledger); err != nil {
		return models.PartRequest{}, err
	}
	slog.Info("requisition issued", "request", req.ID, "lines", len(req.Items))
	return req, nil
}

func (s *Service) CreateAnnualRequest(ctx context.Context, req models.AnnualPartRequest) (models.AnnualPartRequest, error) {
	if req.ID == "" {
		req.ID = NewID("ANN")
	}
	req.Status = models.RequestPending
	if req.RequestDate == "" {
		req.RequestDate = time.Now().Format("2006-01-02")
	}
	reqs, err := s.repo.AnnualRequests(ctx)
	if err != nil {
		return models.AnnualPartRequest{}, err
	}
	reqs = append([]models.AnnualPartRequest{req}, reqs...)
	if err := s.repo.SaveAnnualRequests(ctx, reqs); err != nil {
		return models.AnnualPartRequest{}, err
	}
	return req, nil
}

func (s *Service) ApproveAnnualRequest(ctx context.Context, id string) (models.AnnualPartRequest, error) {
	req, err := s.repo.GetAnnualRequest(ctx, id)
	if err != nil {
		return models.AnnualPartRequest{}, err
	}
	if !approval.RequestPending(req.Status) {
		return models.AnnualPartRequest{}, fmt.Errorf("request %s: status %q: %w", req.ID, req.Status, approval.ErrNotReviewable)
	}
	approval.ApproveRequest(&req.Status)
	if err := s.repo.UpdateAnnualRequest(ctx, req); err != nil {
		return models.AnnualPartRequest{}, err
	}
	metrics.ApprovalActionsTotal.WithLabelValues("annual", "approved").Inc()
	return req, nil
}

func (s *Service) RejectAnnualRequest(ctx context.Context, id, reason string) (models.AnnualPartRequest, error) {
	req, err := s.repo.GetAnnualRequest(ctx, id)
	if err != nil {
		return models.AnnualPartRequest{}, err
	}
	if !approval.RequestPending(req.Status) {
		return models.AnnualPartRequest{}, fmt.Errorf("request %s: status %q: %w", req.ID, req.Status, approval.ErrNotReviewable)
	}
	approval.RejectRequest(&req.Status, &req.Notes, reason)
	if err := s.repo.UpdateAnnualRequest(ctx, req); err != nil {
		return models.AnnualPartRequest{}, err
	}
	metrics.ApprovalActionsTotal.WithLabelValues("annual", "rejected").Inc()
	return req, nil
}

func (s *Service) PartRequests(ctx context.Context) ([]models.PartRequest, error) {
	return s.repo.PartRequests(ctx)
}

func (s *Service) AnnualRequests(ctx context.Context) ([]models.AnnualPartRequest, error) {
	return s.repo.AnnualRequests(ctx)
}

// AddPartRequests prepends a batch of imported requisitions. Each entry
// keeps its imported status; missing ids are assigned.
func (s *Service) AddPartRequests(ctx context.Context, batch []models.PartRequest) ([]models.PartRequest, error) {
	if len(batch) == 0 {
		return nil, nil
	}
	for i := range batch {
		if batch[i].ID == "" {
			batch[i].ID = NewID("REQ")
		}
	}
	reqs, err := s.repo.PartRequests(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SavePartRequests(ctx, append(batch, reqs...)); err != nil {
		return nil, err
	}
	return batch, nil
}

// AddAnnualRequests prepends a batch of imported annual requests.
func (s *Service) AddAnnualRequests(ctx context.Context, batch []models.AnnualPartRequest) ([]models.AnnualPartRequest, error) {
	if len(batch) == 0 {
		return nil, nil
	}
	for i := range batch {
		if batch[i].ID == "" {
			batch[i].ID = NewID("ANN")
		}
	}
	reqs, err := s.repo.AnnualRequests(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveAnnualRequests(ctx, append(batch, reqs...)); err != nil {
		return nil, err
	}
	return batch, nil
}

// ---------- Assets ----------

func (s *Service) Assets(ctx context.Context) ([]models.Asset, error) {
	return s.repo.Assets(ctx)
}

func (s *Service) CreateAsset(ctx context.Context, asset models.Asset) (models.Asset, error) {
	if asset.ID == "" {
		asset.ID = NewID("AST")
	}
	if asset.Status == "" {
		asset.Status = models.AssetOperational
	}
	assets, err := s.repo.Assets(ctx)
	if err != nil {
		return models.Asset{}, err
	}
	assets = append([]models.Asset{asset}, assets...)
	if err := s.repo.SaveAssets(ctx, assets); err != nil {
		return models.Asset{}, err
	}
	return asset, nil
}

func (s *Service) UpdateAsset(ctx context.Context, asset models.Asset) (models.Asset, error) {
	if err := s.repo.UpdateAsset(ctx, asset); err != nil {
		return models.Asset{}, err
	}
	return asset, nil
}

func (s *Service) DeleteAsset(ctx context.Context, id string) error {
	assets, err := s.repo.Assets(ctx)
	if err != nil {
		return err
	}
	kept := assets[:0:0]
	for _, a := range assets {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(assets) {
		return models.ErrAssetNotFound
	}
	return s.repo.SaveAssets(ctx, kept)
}

// AddAssets prepends a batch of imported assets.
func (s *Service) AddAssets(ctx context.Context, batch []models.Asset) ([]models.Asset, error) {
	if len(batch) == 0 {
		return nil, nil
	}
	assets, err := s.repo.Assets(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveAssets(ctx, append(batch, assets...)); err != nil {
		return nil, err
	}
	return batch, nil
}

// ---------- Inventory ----------

// ReconciledLedger loads the live ledger after the catch-up merge from the
// master catalog. New catalog parts are persisted into the ledger blob;
// existing ledger entries are never overwritten.
func (s *Service) ReconciledLedger(ctx context.Context) ([]models.Part, error) {
	md, err := s.repo.Master(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.repo.Ledger(ctx)
	if err != nil {
		return nil, err
	}
	merged := inventory.Reconcile(md.Parts, ledger)
	if len(merged) != len(ledger) {
		if err := s.repo.SaveLedger(ctx, merged); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// MergeLedger folds incoming parts into the live ledger: a matching id
// replaces the stored entry, anything new is appended. Used by spreadsheet
// pulls and file imports.
func (s *Service) MergeLedger(ctx context.Context, incoming []models.Part) ([]models.Part, error) {
	ledger, err := s.repo.Ledger(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range incoming {
		if p.ID == "" {
			continue
		}
		replaced := false
		for i := range ledger {
			if ledger[i].ID == p.ID {
				ledger[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			ledger = append(ledger, p)
		}
	}
	if err := s.repo.SaveLedger(ctx, ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

func (s *Service) StockMetrics(ctx context.Context, partID, targetLocation string, requestedQty int) (inventory.StockMetrics, error) {
	ledger, err := s.ReconciledLedger(ctx)
	if err != nil {
		return inventory.StockMetrics{}, err
	}
	return inventory.Metrics(ledger, partID, targetLocation, requestedQty), nil
}

// ---------- Queues and dashboard ----------

type Queues struct {
	WorkOrders     []models.WorkOrder         `json:"workOrders"`
	PartRequests   []models.PartRequest       `json:"partRequests"`
	AnnualRequests []models.AnnualPartRequest `json:"annualRequests"`
}

func (s *Service) PendingQueues(ctx context.Context) (Queues, error) {
	wos, err := s.repo.WorkOrders(ctx)
	if err != nil {
		return Queues{}, err
	}
	reqs, err := s.repo.PartRequests(ctx)
	if err != nil {
		return Queues{}, err
	}
	annual, err := s.repo.AnnualRequests(ctx)
	if err != nil {
		return Queues{}, err
	}
	return Queues{
		WorkOrders:     approval.WorkOrderQueue(wos),
		PartRequests:   approval.PartRequestQueue(reqs),
		AnnualRequests: approval.AnnualRequestQueue(annual),
	}, nil
}

type DashboardStats struct {
	Assets             int            `json:"assets"`
	AssetsDown         int            `json:"assetsDown"`
	OpenWorkOrders     int            `json:"openWorkOrders"`
	PendingReviews     int            `json:"pendingReviews"`
	LowStockParts      int            `json:"lowStockParts"`
	WorkOrdersByStatus map[string]int `json:"workOrdersByStatus"`
}

func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	assets, err := s.repo.Assets(ctx)
	if err != nil {
		return stats, err
	}
	stats.Assets = len(assets)
	for _, a := range assets {
		if a.Status == models.AssetDown {
			stats.AssetsDown++
		}
	}

	wos, err := s.repo.WorkOrders(ctx)
	if err != nil {
		return stats, err
	}
	stats.WorkOrdersByStatus = make(map[string]int)
	for _, wo := range wos {
		stats.WorkOrdersByStatus[string(wo.Status)]++
		if wo.Status != models.StatusCompleted {
			stats.OpenWorkOrders++
		}
		if approval.InReview(wo) {
			stats.PendingReviews++
		}
	}

	ledger, err := s.ReconciledLedger(ctx)
	if err != nil {
		return stats, err
	}
	for _, p := range ledger {
		if inventory.BelowReorderPoint(p) {
			stats.LowStockParts++
		}
	}
	return stats, nil
}
