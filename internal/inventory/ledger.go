// internal/inventory/ledger.go
package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
)

// Reconcile performs the one-directional catch-up merge from the master
// catalog into the live stock ledger: catalog parts missing from the ledger
// are appended, ids present in both keep the ledger's fields (the ledger
// wins on conflict), and catalog deletions never remove ledger entries.
// The input ledger is not mutated; a new slice is returned.
func Reconcile(catalog, ledger []models.Part) []models.Part {
	out := make([]models.Part, len(ledger))
	copy(out, ledger)

	seen := make(map[string]struct{}, len(ledger))
	for _, p := range ledger {
		seen[p.ID] = struct{}{}
	}
	for _, p := range catalog {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// StockMetrics is the projection used by requisition and annual planning
// review.
type StockMetrics struct {
	GlobalStock  int  `json:"globalStock"`
	LocalStock   int  `json:"localStock"`
	OverCapacity bool `json:"isOverCapacity"`
	MaxStock     int  `json:"maxStock"`
}

// Metrics answers a stock-vs-demand query for one part.
//
// GlobalStock sums stock across every ledger entry sharing the part id;
// ids are nominally unique but multi-location duplicates are tolerated.
// LocalStock comes from the entry whose location matches targetLocation by
// symmetric case-insensitive substring; with no target location the first
// ledger entry for the part is used. OverCapacity holds when adding the
// requested quantity to the local stock would exceed maxStock, and is only
// meaningful when maxStock > 0.
func Metrics(ledger []models.Part, partID, targetLocation string, requestedQty int) StockMetrics {
	var m StockMetrics
	var local *models.Part

	for i := range ledger {
		p := &ledger[i]
		if p.ID != partID {
			continue
		}
		m.GlobalStock += p.Stock
		if local == nil {
			if targetLocation == "" || locationMatches(p.Location, targetLocation) {
				local = p
			}
		}
	}
	if local != nil {
		m.LocalStock = local.Stock
		m.MaxStock = local.MaxStock
		if local.MaxStock > 0 {
			m.OverCapacity = m.LocalStock+requestedQty > local.MaxStock
		}
	}
	return m
}

func locationMatches(location, target string) bool {
	a := strings.ToLower(strings.TrimSpace(location))
	b := strings.ToLower(strings.TrimSpace(target))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// BelowReorderPoint flags stock at or under the minimum threshold.
func BelowReorderPoint(p models.Part) bool {
	return p.Stock <= p.MinStock
}

// OverCapacity flags stock above the maximum threshold. Zero maxStock means
// no capacity is tracked for the part.
func OverCapacity(p models.Part) bool {
	return p.MaxStock > 0 && p.Stock > p.MaxStock
}

// LineCost is the extended cost of one requisition line.
func LineCost(p models.Part, quantity int) decimal.Decimal {
	return p.Cost.Mul(decimal.NewFromInt(int64(quantity)))
}

// RequestCost totals a requisition against the ledger. Lines referencing
// unknown parts contribute nothing; dangling references degrade, they
// never fail.
func RequestCost(ledger []models.Part, items []models.PartRequestItem) decimal.Decimal {
	total := decimal.Zero
	byID := make(map[string]models.Part, len(ledger))
	for _, p := range ledger {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = p
		}
	}
	for _, it := range items {
		p, ok := byID[it.PartID]
		if !ok {
			continue
		}
		total = total.Add(LineCost(p, it.Quantity))
	}
	return total
}

// Deduct decrements ledger stock for each line item, flooring at zero.
// Stock never goes negative even when a requisition exceeds it; the ledger
// model flags shortages instead of enforcing them. Returns the updated
// ledger; the input is not mutated.
func Deduct(ledger []models.Part, items []models.PartRequestItem) []models.Part {
	out := make([]models.Part, len(ledger))
	copy(out, ledger)
	for _, it := range items {
		remaining := it.Quantity
		for i := range out {
			if remaining <= 0 {
				break
			}
			if out[i].ID != it.PartID {
				continue
			}
			take := remaining
			if take > out[i].Stock {
				take = out[i].Stock
			}
			out[i].Stock -= take
			remaining -= take
		}
	}
	return out
}
