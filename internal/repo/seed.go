// internal/repo/seed.go
package repo

import (
	"github.com/shopspring/decimal"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
)

// SeedAdminID is the built-in administrator account. It can be edited but
// never deleted.
const SeedAdminID = "USR-ADMIN"

func SeedAssets() []models.Asset {
	return []models.Asset{
		{
			ID:          "AST-001",
			Name:        "Industrial HVAC Unit 4",
			Category:    "HVAC",
			Department:  "Facilities",
			Brand:       "Carrier",
			Model:       "WeatherMaker 8000",
			YearModel:   "2021",
			Location:    "Roof - Section A",
			Status:      models.AssetOperational,
			Power:       "460V / 3PH",
			SerialNo:    "CR-99201-X",
			LastService: "2024-02-15",
			NextService: "2024-05-15",
			Health:      92,
		},
		{
			ID:          "AST-002",
			Name:        "Hydraulic Press P200",
			Category:    "Production",
			Department:  "Manufacturing",
			Brand:       "Enerpac",
			Model:       "VLP-Series 200T",
			YearModel:   "2019",
			Location:    "Floor 1 - Line B",
			Status:      models.AssetInMaintenance,
			Power:       "220V / 30A",
			SerialNo:    "EP-HP-200-88",
			LastService: "2024-03-01",
			NextService: "2024-06-01",
			Health:      45,
		},
	}
}

func SeedWorkOrders() []models.WorkOrder {
	return []models.WorkOrder{
		{
			ID:              "WO-101",
			Title:           "Filter Replacement",
			AssetID:         "AST-001",
			Priority:        models.PriorityMedium,
			Status:          models.StatusMRGenerated,
			MaintenanceType: models.MaintenancePreventive,
			AssignedTo:      "John Doe",
			DueDate:         "2024-04-10",
			Description:     "Replace standard air filters and check coolant levels.",
			PartsAvailable:  true,
			IsOperational:   true,
		},
		{
			ID:              "WO-102",
			Title:           "Hydraulic Leak Repair",
			AssetID:         "AST-002",
			Priority:        models.PriorityHigh,
			Status:          models.StatusExecution,
			MaintenanceType: models.MaintenanceCorrective,
			AssignedTo:      "Sarah Smith",
			DueDate:         "2024-03-25",
			Description:     "Repairing main seal leak on the hydraulic piston.",
			IsEmergency:     true,
			PartsAvailable:  false,
		},
	}
}

func SeedParts() []models.Part {
	return []models.Part{
		{
			ID: "PRT-001", Name: "HVAC Air Filter 24x24", Category: "HVAC",
			Stock: 42, MinStock: 10, MaxStock: 100, Unit: "pcs",
			Cost: decimal.NewFromFloat(18.50), Location: "Central Store A",
		},
		{
			ID: "PRT-002", Name: "Hydraulic Seal Kit 200T", Category: "Production",
			Stock: 6, MinStock: 8, MaxStock: 30, Unit: "kits",
			Cost: decimal.NewFromFloat(240.00), Location: "Central Store A",
		},
		{
			ID: "PRT-003", Name: "Coolant Fluid 20L", Category: "General",
			Stock: 15, MinStock: 5, MaxStock: 40, Unit: "cans",
			Cost: decimal.NewFromFloat(64.75), Location: "Sub-store B",
		},
	}
}

func SeedPartRequests() []models.PartRequest {
	return []models.PartRequest{
		{
			ID:          "REQ-501",
			WorkOrderID: "WO-102",
			AssetID:     "AST-002",
			RequestedBy: "Sarah Smith",
			RequestDate: "2024-03-20",
			Status:      models.RequestPending,
			Items: []models.PartRequestItem{
				{PartID: "PRT-002", Quantity: 1},
			},
			Notes: "Main seal kit for piston repair.",
		},
	}
}

func SeedMasterData() models.MasterData {
	return models.MasterData{
		Departments:  []string{"Facilities", "Manufacturing", "Utilities"},
		Brands:       []string{"Carrier", "Enerpac", "Siemens"},
		AssetTypes:   []string{"HVAC", "Production", "Electrical"},
		PowerRatings: []string{"220V / 30A", "460V / 3PH"},
		Years:        []string{"2019", "2020", "2021", "2022", "2023", "2024"},
		Parts:        SeedParts(),
		Users: []models.User{
			{
				ID:       SeedAdminID,
				Name:     "Admin",
				Email:    "admin@maintenx.local",
				JobTitle: "System Administrator",
				RoleID:   "ROLE-ADMIN",
				Password: "admin123",
			},
			{
				ID:       "USR-002",
				Name:     "Maintenance Manager",
				Email:    "manager@maintenx.local",
				JobTitle: "Maintenance Manager",
				RoleID:   "ROLE-MANAGER",
				Password: "manager123",
			},
			{
				ID:       "USR-003",
				Name:     "John Doe",
				Email:    "technician@maintenx.local",
				JobTitle: "Field Technician",
				RoleID:   "ROLE-TECH",
				Password: "tech123",
			},
		},
		Roles: SeedRoles(),
	}
}

func SeedRoles() []models.Role {
	full := models.PagePermissions{Read: true, Add: true, Edit: true, Delete: true}
	readOnly := models.PagePermissions{Read: true}

	adminPerms := make(map[models.ModuleKey]models.PagePermissions, len(models.AllModules))
	for _, m := range models.AllModules {
		adminPerms[m] = full
	}

	managerPerms := map[models.ModuleKey]models.PagePermissions{
		models.ModuleDashboard:  readOnly,
		models.ModuleAssets:     {Read: true, Add: true, Edit: true},
		models.ModuleWorkOrders: {Read: true, Add: true, Edit: true},
		models.ModuleApprovals:  {Read: true, Edit: true},
		models.ModuleInventory:  {Read: true, Add: true, Edit: true},
		models.ModuleRequests:   {Read: true, Add: true, Edit: true},
		models.ModuleAnnual:     {Read: true, Add: true, Edit: true},
		models.ModuleAI:         readOnly,
		models.ModuleMasterData: readOnly,
	}

	techPerms := map[models.ModuleKey]models.PagePermissions{
		models.ModuleDashboard:  readOnly,
		models.ModuleAssets:     readOnly,
		models.ModuleWorkOrders: {Read: true, Add: true},
		models.ModuleApprovals:  {},
		models.ModuleInventory:  readOnly,
		models.ModuleRequests:   {Read: true, Add: true},
		models.ModuleAnnual:     readOnly,
		models.ModuleAI:         readOnly,
		models.ModuleMasterData: {},
	}

	return []models.Role{
		{ID: "ROLE-ADMIN", Name: "Administrator", Permissions: adminPerms},
		{ID: "ROLE-MANAGER", Name: "Manager", Permissions: managerPerms},
		{ID: "ROLE-TECH", Name: "Technician", Permissions: techPerms},
	}
}
