// internal/rbac/permissions.go
package rbac

import (
	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
)

// noAccess is the zero permission set returned for any lookup that cannot
// be resolved. The UI treats it as access-denied rather than an error.
var noAccess = models.PagePermissions{}

// Permissions returns the role's capability flags for a module. A role with
// no entry for the module, a nil permission map, or an unknown module key
// all yield all-false.
func Permissions(role models.Role, module models.ModuleKey) models.PagePermissions {
	if role.Permissions == nil {
		return noAccess
	}
	if !knownModule(module) {
		return noAccess
	}
	p, ok := role.Permissions[module]
	if !ok {
		return noAccess
	}
	return p
}

func knownModule(module models.ModuleKey) bool {
	switch module {
	case models.ModuleDashboard,
		models.ModuleAssets,
		models.ModuleWorkOrders,
		models.ModuleApprovals,
		models.ModuleInventory,
		models.ModuleRequests,
		models.ModuleAnnual,
		models.ModuleAI,
		models.ModuleMasterData:
		return true
	}
	return false
}

// ResolveRole finds the user's role by id. A dangling role reference falls
// back to the first defined role so the user keeps a working session.
// Only an empty role list is an error.
func ResolveRole(user models.User, roles []models.Role) (models.Role, error) {
	for _, r := range roles {
		if r.ID == user.RoleID {
			return r, nil
		}
	}
	if len(roles) > 0 {
		return roles[0], nil
	}
	return models.Role{}, models.ErrRoleNotFound
}

// Can reports whether the role holds the given capability on a module.
func Can(role models.Role, module models.ModuleKey, cap Capability) bool {
	p := Permissions(role, module)
	switch cap {
	case Read:
		return p.Read
	case Add:
		return p.Add
	case Edit:
		return p.Edit
	case Delete:
		return p.Delete
	}
	return false
}

// Capability names one of the four permission flags.
type Capability string

const (
	Read   Capability = "read"
	Add    Capability = "add"
	Edit   Capability = "edit"
	Delete Capability = "delete"
)
