package nav

import (
	"testing"

	"github.com/dmitrijs2005/storeconsole/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(rs []Route) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Path)
	}
	return out
}

func TestMenu(t *testing.T) {
	staff := []string{PathOverview, PathInventory, PathPointOfSale, PathProducts, PathTransactions}

	tests := []struct {
		role models.Role
		want []string
	}{
		{models.RoleStaff, staff},
		{models.RoleManager, append(append([]string{}, staff...), PathReports)},
		{models.RoleAdmin, append(append([]string{}, staff...), PathReports, PathUsers, PathSettings)},
		{models.Role("auditor"), nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got := paths(Menu(tt.role))
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMenu_NeverListsLogin(t *testing.T) {
	for _, r := range Menu(models.RoleAdmin) {
		assert.NotEqual(t, PathLogin, r.Path)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"/inventory", PathInventory, true},
		{"inventory", PathInventory, true},
		{" Reports/ ", PathReports, true},
		{"", PathOverview, true},
		{"/", PathOverview, true},
		{"/login", PathLogin, true},
		{"/users/../settings", PathSettings, true},
		{"/nope", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, ok := Lookup(tt.in)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, r.Path)
		})
	}
}

func TestRoute_Visibility(t *testing.T) {
	login, _ := Lookup(PathLogin)
	assert.True(t, login.IsPublic())
	assert.True(t, login.VisibleTo(""))

	reports, _ := Lookup(PathReports)
	assert.False(t, reports.VisibleTo(models.RoleStaff))
	assert.True(t, reports.VisibleTo(models.RoleManager))
	assert.True(t, reports.VisibleTo(models.RoleAdmin))
}

func TestRoutes_ReturnsCopy(t *testing.T) {
	rs := Routes()
	rs[0].Path = "/hacked"
	_, ok := Lookup(PathLogin)
	require.True(t, ok)
}
