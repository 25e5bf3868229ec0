// internal/importer/rows.go
//
// Bulk import mapping. An external tabular parser produces raw row
// objects; this package maps them into core entities using explicit alias
// tables with permissive defaulting. No schema validation beyond type
// coercion: missing fields fall back to sensible values, and only rows
// that lack the minimum identifying data are dropped.
package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
)

// Row is one parsed spreadsheet row, keyed by column header.
type Row map[string]string

func (r Row) str(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func (r Row) strDefault(def string, keys ...string) string {
	if s := r.str(keys...); s != "" {
		return s
	}
	return def
}

func (r Row) integer(keys ...string) int {
	s := r.str(keys...)
	if s == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// money tolerates currency symbols, codes and thousands separators, e.g.
// "EGP 1,250.50" or "$12.00".
func (r Row) money(keys ...string) decimal.Decimal {
	s := r.str(keys...)
	if s == "" {
		return decimal.Zero
	}
	cleaned := strings.Map(func(c rune) rune {
		if (c >= '0' && c <= '9') || c == '.' || c == '-' {
			return c
		}
		return -1
	}, s)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.NewString()[:8]))
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// Assets maps rows from the asset registration template.
func Assets(rows []Row) []models.Asset {
	out := make([]models.Asset, 0, len(rows))
	for _, row := range rows {
		name := row.str("Asset Name", "name")
		if name == "" {
			continue
		}
		out = append(out, models.Asset{
			ID:         newID("AST"),
			Name:       name,
			Category:   row.strDefault("General", "Category", "Asset Type", "category"),
			Department: row.strDefault("Unassigned", "Department", "department"),
			Brand:      row.str("Brand", "brand"),
			Model:      row.str("Model", "model"),
			YearModel:  row.str("Year", "Year Model", "yearModel"),
			Location:   row.strDefault("Unspecified", "Location", "location"),
			Status:     models.AssetOperational,
			Power:      row.str("Power Rating", "Power", "power"),
			SerialNo:   row.str("Serial No", "Serial Number", "serialNo"),
			Health:     100,
		})
	}
	return out
}

// Parts maps rows from either the master catalog or the live inventory
// template; the two share columns apart from the stock level.
func Parts(rows []Row) []models.Part {
	out := make([]models.Part, 0, len(rows))
	for _, row := range rows {
		id := row.str("Part ID", "id", "partId")
		if id == "" {
			continue
		}
		out = append(out, models.Part{
			ID:       id,
			Name:     row.strDefault(id, "Part Name", "Description", "name"),
			Category: row.strDefault("General", "Related Equipment Category", "Category", "category"),
			Stock:    row.integer("Stock Level", "Stock", "stock"),
			MinStock: row.integer("Min Stock Level", "Min Level Stock", "minStock"),
			MaxStock: row.integer("Max Stock Level", "Max Level Stock", "maxStock"),
			Unit:     row.strDefault("pcs", "Unit", "unit"),
			Cost:     row.money("Unit Cost", "cost"),
			Location: row.strDefault("Unspecified", "Storage Location", "Location", "location"),
		})
	}
	return out
}

// PartRequests maps rows from the requisition template. Each row becomes a
// single-line request; rows without a part id or a positive quantity are
// skipped.
func PartRequests(rows []Row) []models.PartRequest {
	out := make([]models.PartRequest, 0, len(rows))
	for _, row := range rows {
		partID := row.str("Part ID", "partId")
		qty := row.integer("Quantity", "quantity")
		if partID == "" || qty <= 0 {
			continue
		}
		out = append(out, models.PartRequest{
			ID:          newID("REQ"),
			WorkOrderID: row.str("Work Order ID", "workOrderId"),
			AssetID:     row.str("Asset ID", "assetId"),
			RequestedBy: row.strDefault("System User", "Requested By", "requestedBy"),
			RequestDate: today(),
			Status:      models.RequestPending,
			Items:       []models.PartRequestItem{{PartID: partID, Quantity: qty}},
			Notes:       row.str("Notes", "notes"),
		})
	}
	return out
}

// AnnualRequests maps rows from the annual planning template.
func AnnualRequests(rows []Row) []models.AnnualPartRequest {
	out := make([]models.AnnualPartRequest, 0, len(rows))
	for _, row := range rows {
		partID := row.str("Part ID", "partId")
		qty := row.integer("Quantity", "quantity")
		if partID == "" || qty <= 0 {
			continue
		}
		out = append(out, models.AnnualPartRequest{
			ID:            newID("ANN"),
			RequestedBy:   row.strDefault("System User", "Requested By", "requestedBy"),
			StoreLocation: row.strDefault("Unspecified Store", "Store Location", "storeLocation"),
			RequestDate:   today(),
			TargetYear:    row.strDefault(strconv.Itoa(time.Now().Year()), "Target Year", "targetYear"),
			Status:        models.RequestPending,
			Items:         []models.PartRequestItem{{PartID: partID, Quantity: qty}},
			Notes:         row.strDefault("Annual planning upload.", "Notes", "notes"),
		})
	}
	return out
}
