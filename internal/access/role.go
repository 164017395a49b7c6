// Package access holds the closed role model and the menu/guard decisions
// derived from it. Rendering decisions here are presentation only; the
// central API enforces real authorization on every call.
package access

import "fmt"

// Role is the closed set of operator roles. New roles are a compile-time
// visible change: every switch below must be extended.
type Role int

const (
	RoleSuperuser Role = iota
	RoleManager
	RoleCashier
)

func (r Role) String() string {
	switch r {
	case RoleSuperuser:
		return "superuser"
	case RoleManager:
		return "manager"
	case RoleCashier:
		return "cashier"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole maps the central API's role string onto the closed set. Unknown
// roles are rejected so a misconfigured account fails at login instead of
// silently becoming a zero-privilege session.
func ParseRole(s string) (Role, error) {
	switch s {
	case "superuser":
		return RoleSuperuser, nil
	case "manager":
		return RoleManager, nil
	case "cashier":
		return RoleCashier, nil
	default:
		return 0, fmt.Errorf("access: unknown role %q", s)
	}
}

// In reports whether r is in the allow-list.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// MenuEntry is one item of the navigation shell.
type MenuEntry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var (
	menuDashboard = MenuEntry{"Dashboard", "/dashboard"}
	menuSales     = MenuEntry{"Sales", "/sales"}
	menuExpenses  = MenuEntry{"Expenses", "/expenses"}
	menuProducts  = MenuEntry{"Products", "/products"}
	menuBatches   = MenuEntry{"Batches", "/batches"}
	menuTransfers = MenuEntry{"Transfers", "/transfers"}
	menuReports   = MenuEntry{"Reports", "/reports"}
	menuUsers     = MenuEntry{"Users", "/users"}
	menuLocations = MenuEntry{"Locations", "/locations"}
)

// Menu returns the navigation entries for a role. Exhaustive by construction.
func Menu(r Role) []MenuEntry {
	switch r {
	case RoleCashier:
		return []MenuEntry{menuDashboard, menuSales, menuExpenses}
	case RoleManager:
		return []MenuEntry{
			menuDashboard, menuSales, menuExpenses,
			menuProducts, menuBatches, menuTransfers, menuReports,
		}
	case RoleSuperuser:
		return []MenuEntry{
			menuDashboard, menuSales, menuExpenses,
			menuProducts, menuBatches, menuTransfers, menuReports,
			menuUsers, menuLocations,
		}
	default:
		return nil
	}
}
