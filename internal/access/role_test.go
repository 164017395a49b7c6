package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for s, want := range map[string]Role{
		"superuser": RoleSuperuser,
		"manager":   RoleManager,
		"cashier":   RoleCashier,
	} {
		got, err := ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "admin", "Cashier", "CASHIER", "owner"} {
		_, err := ParseRole(s)
		assert.Error(t, err, "role %q must be rejected", s)
	}
}

func TestCashierMenuIsExactlyThreeEntries(t *testing.T) {
	labels := menuLabels(Menu(RoleCashier))
	assert.Equal(t, []string{"Dashboard", "Sales", "Expenses"}, labels)
}

func TestManagerMenuAddsInventoryScreens(t *testing.T) {
	labels := menuLabels(Menu(RoleManager))
	assert.Equal(t, []string{
		"Dashboard", "Sales", "Expenses",
		"Products", "Batches", "Transfers", "Reports",
	}, labels)
	assert.NotContains(t, labels, "Users")
	assert.NotContains(t, labels, "Locations")
}

func TestSuperuserMenuAddsAdministration(t *testing.T) {
	labels := menuLabels(Menu(RoleSuperuser))
	assert.Contains(t, labels, "Users")
	assert.Contains(t, labels, "Locations")
	assert.Len(t, labels, 9)
}

func TestRoleIn(t *testing.T) {
	assert.True(t, RoleManager.In(RoleSuperuser, RoleManager))
	assert.False(t, RoleCashier.In(RoleSuperuser, RoleManager))
	assert.False(t, RoleCashier.In())
}

func menuLabels(entries []MenuEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}
