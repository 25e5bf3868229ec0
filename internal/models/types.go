// internal/models/types.go
package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ModuleKey identifies one page of the application. The set is closed:
// roles declare permissions per module and lookups for anything outside
// this list resolve to all-false.
type ModuleKey string

const (
	ModuleDashboard  ModuleKey = "dashboard"
	ModuleAssets     ModuleKey = "assets"
	ModuleWorkOrders ModuleKey = "workorders"
	ModuleApprovals  ModuleKey = "approvals"
	ModuleInventory  ModuleKey = "inventory"
	ModuleRequests   ModuleKey = "requests"
	ModuleAnnual     ModuleKey = "annual"
	ModuleAI         ModuleKey = "ai"
	ModuleMasterData ModuleKey = "masterdata"
)

// AllModules lists every module key. Order matters for display only.
var AllModules = []ModuleKey{
	ModuleDashboard,
	ModuleAssets,
	ModuleWorkOrders,
	ModuleApprovals,
	ModuleInventory,
	ModuleRequests,
	ModuleAnnual,
	ModuleAI,
	ModuleMasterData,
}

// PagePermissions holds the four independent capability flags for one
// module. No flag implies another.
type PagePermissions struct {
	Read   bool `json:"read"`
	Add    bool `json:"add"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

type Role struct {
	ID          string                        `json:"id"`
	Name        string                        `json:"name"`
	Permissions map[ModuleKey]PagePermissions `json:"permissions"`
}

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile,omitempty"`
	JobTitle string `json:"jobTitle,omitempty"`
	RoleID   string `json:"roleId"`
	Password string `json:"password,omitempty"`
}

type AssetStatus string

const (
	AssetOperational   AssetStatus = "Operational"
	AssetDown          AssetStatus = "Down"
	AssetInMaintenance AssetStatus = "In Maintenance"
	AssetRestricted    AssetStatus = "Restricted"
)

type Asset struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Department  string      `json:"department"`
	Brand       string      `json:"brand"`
	Model       string      `json:"model"`
	YearModel   string      `json:"yearModel"`
	Location    string      `json:"location"`
	Status      AssetStatus `json:"status"`
	Power       string      `json:"power"`
	SerialNo    string      `json:"serialNo"`
	LastService string      `json:"lastService"`
	NextService string      `json:"nextService"`
	Health      int         `json:"health"`
	ImageURL    string      `json:"imageUrl,omitempty"`
}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "PM"
	MaintenanceCorrective MaintenanceType = "CM"
)

// WorkOrderStatus is one of the seven lifecycle states. Transitions move
// forward along the fixed order, or jump backward via an explicit rework
// action at one of the two manager gates.
type WorkOrderStatus string

const (
	StatusMRGenerated   WorkOrderStatus = "MR Generated"
	StatusManagerReview WorkOrderStatus = "Manager Review"
	StatusPartsPlanning WorkOrderStatus = "Parts Planning"
	StatusScheduled     WorkOrderStatus = "Scheduled"
	StatusExecution     WorkOrderStatus = "Execution"
	StatusClosing       WorkOrderStatus = "Closing"
	StatusCompleted     WorkOrderStatus = "Completed"
)

type ApprovalAction string

const (
	ActionApproved ApprovalAction = "Approved"
	ActionRejected ApprovalAction = "Rejected"
)

// ApprovalEntry is an immutable audit record. Entries are appended
// newest-first to a work order's history and never mutated afterwards.
type ApprovalEntry struct {
	Status WorkOrderStatus `json:"status"`
	Action ApprovalAction  `json:"action"`
	By     string          `json:"by"`
	Date   time.Time       `json:"date"`
	Notes  string          `json:"notes,omitempty"`
}

type WorkOrder struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	AssetID         string          `json:"assetId"`
	Priority        Priority        `json:"priority"`
	Status          WorkOrderStatus `json:"status"`
	MaintenanceType MaintenanceType `json:"maintenanceType"`
	AssignedTo      string          `json:"assignedTo"`
	DueDate         string          `json:"dueDate"`
	Description     string          `json:"description"`
	IsEmergency     bool            `json:"isEmergency,omitempty"`
	PartsAvailable  bool            `json:"partsAvailable"`
	IsOperational   bool            `json:"isOperational,omitempty"`
	LoggedHours     float64         `json:"loggedHours,omitempty"`
	PhotosAttached  []string        `json:"photosAttached,omitempty"`
	ApprovalHistory []ApprovalEntry `json:"approvalHistory,omitempty"`
	// RejectionNotes is present only immediately after a rejection and is
	// cleared by the next approval.
	RejectionNotes string `json:"rejectionNotes,omitempty"`
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "Pending"
	RequestApproved  RequestStatus = "Approved"
	RequestIssued    RequestStatus = "Issued"
	RequestCancelled RequestStatus = "Cancelled"
)

type PartRequestItem struct {
	PartID   string `json:"partId"`
	Quantity int    `json:"quantity"`
}

// PartRequest is a store requisition tied to one asset and optionally one
// work order.
type PartRequest struct {
	ID          string            `json:"id"`
	WorkOrderID string            `json:"workOrderId,omitempty"`
	AssetID     string            `json:"assetId"`
	RequestedBy string            `json:"requestedBy"`
	RequestDate string            `json:"requestDate"`
	Status      RequestStatus     `json:"status"`
	Items       []PartRequestItem `json:"items"`
	Notes       string            `json:"notes,omitempty"`
}

// AnnualPartRequest is a yearly forecasting requisition. It shares the
// RequestStatus enum with PartRequest but is not linked to a work order.
type AnnualPartRequest struct {
	ID            string            `json:"id"`
	RequestedBy   string            `json:"requestedBy"`
	StoreLocation string            `json:"storeLocation"`
	RequestDate   string            `json:"requestDate"`
	TargetYear    string            `json:"targetYear"`
	Status        RequestStatus     `json:"status"`
	Items         []PartRequestItem `json:"items"`
	Notes         string            `json:"notes,omitempty"`
}

// Part is a catalog/stock entity. Two populations share this shape: the
// master catalog (authoritative definitions) and the live inventory ledger
// (stock tracking). minStock <= stock <= maxStock is intended but never
// enforced; violations are only flagged for display.
type Part struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Stock    int             `json:"stock"`
	MinStock int             `json:"minStock"`
	MaxStock int             `json:"maxStock"`
	Unit     string          `json:"unit"`
	Cost     decimal.Decimal `json:"cost"`
	Location string          `json:"location"`
}

// MasterData is the single blob holding facility reference lists, the user
// directory, roles and the spreadsheet sync endpoint.
type MasterData struct {
	Departments  []string `json:"departments"`
	Brands       []string `json:"brands"`
	AssetTypes   []string `json:"assetTypes"`
	PowerRatings []string `json:"powerRatings"`
	Years        []string `json:"years"`
	Parts        []Part   `json:"parts"`
	Users        []User   `json:"users"`
	Roles        []Role   `json:"roles"`
	SheetsURL    string   `json:"googleSheetsUrl,omitempty"`
}

type Session struct {
	UserID string
	RoleID string
	Name   string
	Expiry time.Time
}

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrRoleNotFound      = errors.New("role not found")
	ErrAssetNotFound     = errors.New("asset not found")
	ErrWorkOrderNotFound = errors.New("work order not found")
	ErrRequestNotFound   = errors.New("request not found")
	ErrPartNotFound      = errors.New("part not found")
)
