package model

// Role is the simulated user role selected on the client. It drives menu
// visibility and the cashier name stamped on transactions. This is a trusted
// client-side toggle, NOT an authorization boundary: a real multi-user
// deployment needs its own trust boundary in front of this API.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleKasir Role = "Kasir"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleKasir
}

// CashierName is the display name recorded on transactions made under this role.
func (r Role) CashierName() string {
	return string(r)
}

// Menu identifiers, mirrored by the client navigation.
const (
	MenuDashboard = "dashboard"
	MenuPOS       = "pos"
	MenuStock     = "stock"
	MenuReports   = "reports"
)

// MenuAccess maps each menu to the roles that see it.
var MenuAccess = map[string][]Role{
	MenuDashboard: {RoleAdmin},
	MenuPOS:       {RoleAdmin, RoleKasir},
	MenuStock:     {RoleAdmin},
	MenuReports:   {RoleAdmin, RoleKasir},
}

func (r Role) CanAccess(menu string) bool {
	for _, allowed := range MenuAccess[menu] {
		if allowed == r {
			return true
		}
	}
	return false
}

// Menus returns the menu ids visible to this role, in navigation order.
func (r Role) Menus() []string {
	order := []string{MenuDashboard, MenuPOS, MenuStock, MenuReports}
	visible := make([]string, 0, len(order))
	for _, m := range order {
		if r.CanAccess(m) {
			visible = append(visible, m)
		}
	}
	return visible
}
