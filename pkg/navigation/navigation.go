// Package navigation declares the role-gated menu. The table is static
// configuration; visibility is recomputed from the current principal on
// every call.
package navigation

import "github.com/wellnessvoyage60-gif/contract-management-app/pkg/session"

// Entry is one navigation item. Icon names follow the web front end's
// icon set so the two surfaces stay in step.
type Entry struct {
	Label string
	Path  string
	Icon  string
	Roles []session.Role
}

func (e Entry) allows(role session.Role) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// menu is the declared order; filtering must never reorder it.
var menu = []Entry{
	{Label: "Dashboard", Path: "/dashboard", Icon: "dashboard", Roles: []session.Role{session.RoleAdmin, session.RoleUser}},
	{Label: "Contracts", Path: "/contracts", Icon: "description", Roles: []session.Role{session.RoleAdmin, session.RoleUser}},
	{Label: "Upload Contract", Path: "/contracts/upload", Icon: "cloud_upload", Roles: []session.Role{session.RoleAdmin, session.RoleUser}},
	{Label: "User Management", Path: "/users", Icon: "people", Roles: []session.Role{session.RoleAdmin}},
	{Label: "Archive", Path: "/archive", Icon: "archive", Roles: []session.Role{session.RoleAdmin, session.RoleUser}},
	{Label: "Reports", Path: "/reports", Icon: "assessment", Roles: []session.Role{session.RoleAdmin, session.RoleUser}},
	{Label: "Vendor Portal", Path: "/vendor/dashboard", Icon: "storefront", Roles: []session.Role{session.RoleVendor}},
	{Label: "Vendor Profile", Path: "/vendor/profile", Icon: "storefront", Roles: []session.Role{session.RoleVendor}},
}

// Entries returns the full declared table, in order.
func Entries() []Entry {
	out := make([]Entry, len(menu))
	copy(out, menu)
	return out
}

// VisibleEntries filters the table to entries the principal's role may
// see, preserving declared order. A nil principal sees nothing.
func VisibleEntries(p *session.Principal) []Entry {
	if p == nil {
		return nil
	}
	var out []Entry
	for _, e := range menu {
		if e.allows(p.Role) {
			out = append(out, e)
		}
	}
	return out
}
