// Package nav is the console's route table and role-filtered menu.
package nav

import (
	"path"
	"strings"

	"github.com/dmitrijs2005/storeconsole/internal/client/models"
)

const (
	PathLogin        = "/login"
	PathOverview     = "/"
	PathInventory    = "/inventory"
	PathPointOfSale  = "/point-of-sale"
	PathProducts     = "/products"
	PathTransactions = "/transactions"
	PathReports      = "/reports"
	PathUsers        = "/users"
	PathSettings     = "/settings"
)

// Route is one screen of the console. MinRole is empty for public routes.
type Route struct {
	Path    string
	Title   string
	MinRole models.Role
}

func (r Route) IsPublic() bool { return r.MinRole == "" }

// VisibleTo reports whether role may open the route.
func (r Route) VisibleTo(role models.Role) bool { return role.IsAtLeast(r.MinRole) }

var routes = []Route{
	{Path: PathLogin, Title: "Sign in"},
	{Path: PathOverview, Title: "Overview", MinRole: models.RoleStaff},
	{Path: PathInventory, Title: "Inventory", MinRole: models.RoleStaff},
	{Path: PathPointOfSale, Title: "Point of Sale", MinRole: models.RoleStaff},
	{Path: PathProducts, Title: "Products", MinRole: models.RoleStaff},
	{Path: PathTransactions, Title: "Transactions", MinRole: models.RoleStaff},
	{Path: PathReports, Title: "Reports", MinRole: models.RoleManager},
	{Path: PathUsers, Title: "Users", MinRole: models.RoleAdmin},
	{Path: PathSettings, Title: "Settings", MinRole: models.RoleAdmin},
}

// Routes returns the full table in display order.
func Routes() []Route {
	return append([]Route(nil), routes...)
}

// Menu lists the protected routes role may open, in table order.
func Menu(role models.Role) []Route {
	var out []Route
	for _, r := range routes {
		if !r.IsPublic() && r.VisibleTo(role) {
			out = append(out, r)
		}
	}
	return out
}

// Normalize turns user input such as "Inventory/" or "reports" into a
// canonical route path.
func Normalize(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return PathOverview
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Lookup finds the route for p after normalising it.
func Lookup(p string) (Route, bool) {
	p = Normalize(p)
	for _, r := range routes {
		if r.Path == p {
			return r, true
		}
	}
	return Route{}, false
}
