package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnessvoyage60-gif/contract-management-app/pkg/session"
)

func labels(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}

func TestVendorSeesOnlyVendorEntries(t *testing.T) {
	p := &session.Principal{Username: "acme", Role: session.RoleVendor}
	assert.Equal(t, []string{"Vendor Portal", "Vendor Profile"}, labels(VisibleEntries(p)))
}

func TestAdminSeesEverythingButVendorPages(t *testing.T) {
	p := &session.Principal{Username: "root", Role: session.RoleAdmin}
	assert.Equal(t, []string{
		"Dashboard", "Contracts", "Upload Contract", "User Management", "Archive", "Reports",
	}, labels(VisibleEntries(p)))
}

func TestUserLacksUserManagement(t *testing.T) {
	p := &session.Principal{Username: "clerk", Role: session.RoleUser}
	got := labels(VisibleEntries(p))
	assert.NotContains(t, got, "User Management")
	assert.Equal(t, []string{"Dashboard", "Contracts", "Upload Contract", "Archive", "Reports"}, got)
}

func TestNoPrincipalSeesNothing(t *testing.T) {
	assert.Empty(t, VisibleEntries(nil))
}

func TestFilteringPreservesDeclaredOrder(t *testing.T) {
	declared := Entries()
	for _, role := range []session.Role{session.RoleAdmin, session.RoleUser, session.RoleVendor} {
		visible := VisibleEntries(&session.Principal{Username: "x", Role: role})
		idx := 0
		for _, e := range visible {
			found := false
			for ; idx < len(declared); idx++ {
				if declared[idx].Label == e.Label {
					found = true
					idx++
					break
				}
			}
			require.True(t, found, "role %s: entry %q out of declared order", role, e.Label)
		}
	}
}

func TestEveryEntryVisibleToSomeRole(t *testing.T) {
	for _, e := range Entries() {
		assert.NotEmpty(t, e.Roles, "entry %q is unreachable", e.Label)
		assert.NotEmpty(t, e.Path)
	}
}
