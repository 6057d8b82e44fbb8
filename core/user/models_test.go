package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nebras-project/nebras-dashboard/core"
)

func TestHasAnyRole(t *testing.T) {
	tests := []struct {
		name    string
		roles   []string
		allowed []string
		want    bool
	}{
		{"no guard", nil, nil, true},
		{"no roles", nil, []string{RoleAdmin}, false},
		{"owner passes admin guard", []string{RoleAdminOwner}, []string{RoleAdmin}, true},
		{"exact role", []string{RoleManagerContent}, []string{RoleManagerContent}, true},
		{"sibling role", []string{RoleManagerContent}, []string{RoleManagerCompetition}, false},
		{"group role covers its members", []string{RoleManager}, []string{RoleManagerCompetition}, true},
		{"manager is not admin", []string{RoleManager}, []string{RoleAdmin}, false},
		{"any of many", []string{RoleManagerCompetition}, []string{RoleAdmin, RoleManager}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasAnyRole(tt.roles, tt.allowed))
		})
	}
}

func TestMaxRolePriority(t *testing.T) {
	assert.Equal(t, 0, MaxRolePriority(nil))
	assert.Equal(t, 12, MaxRolePriority([]string{RoleManagerCompetition, RoleManagerContent}))
	assert.Equal(t, 30, MaxRolePriority([]string{RoleManager, RoleAdminOwner}))
	assert.True(t, RolesHavePrefix([]string{RoleManagerContent, RoleManager}, RoleManager))
	assert.False(t, RolesHavePrefix([]string{RoleManagerContent, RoleAdmin}, RoleManager))
}

func TestUser_Password(t *testing.T) {
	var usr User
	require.NoError(t, usr.SetPassword("Sup3rS3cret!"))
	assert.NoError(t, usr.CheckPassword("Sup3rS3cret!"))
	assert.Error(t, usr.CheckPassword("sup3rs3cret!"))
}

func TestQueryFilter_Match(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	usr := User{ID: "1", Name: "Sara Ali", Username: "sara", Email: "sara@nebras.sa", Roles: []string{RoleManagerContent}, CreatedAt: created}
	usr.SetActive(true)

	tests := []struct {
		name   string
		filter *QueryFilter
		want   bool
	}{
		{"nil", nil, true},
		{"search name", &QueryFilter{Search: "ALI"}, true},
		{"search miss", &QueryFilter{Search: "omar"}, false},
		{"role group", &QueryFilter{Roles: []string{RoleManager}}, true},
		{"other role", &QueryFilter{Roles: []string{RoleAdmin}}, false},
		{"inactive only", &QueryFilter{IsActive: core.BoolPtr(false)}, false},
		{"created window", &QueryFilter{CreatedFrom: created.Add(-time.Hour), CreatedTo: created.Add(time.Hour)}, true},
		{"created later", &QueryFilter{CreatedFrom: created.Add(time.Hour)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(usr))
		})
	}
}
