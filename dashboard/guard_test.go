package dashboard

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

func signSession(t *testing.T, roles []string, lang string, exp time.Time) string {
	t.Helper()
	claims := sessionClaims{
		StandardClaims: jwt.StandardClaims{Subject: "u-1", ExpiresAt: exp.Unix()},
		Username:       "sara",
		Roles:          roles,
		Settings:       user.Settings{Language: lang, Theme: core.ThemeDark},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any key"))
	require.NoError(t, err)
	return token
}

func TestParseSession(t *testing.T) {
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return now }
	defer func() { nowFunc = time.Now }()

	s, err := ParseSession(signSession(t, []string{user.RoleManagerContent}, core.LangDefault, now.Add(time.Hour)))
	require.NoError(t, err)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "u-1", s.UserID)
	assert.Equal(t, "sara", s.Username)
	assert.Equal(t, core.ThemeDark, s.Settings.Theme)
	assert.Equal(t, core.LangArabic, s.Language(core.LangArabic), "default follows the detected language")

	s, err = ParseSession(signSession(t, nil, core.LangEnglish, now.Add(-time.Minute)))
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated(), "expired")
	assert.Equal(t, core.LangEnglish, s.Language(core.LangArabic))

	_, err = ParseSession("not a token")
	assert.Error(t, err)
}

func TestGuard_Check(t *testing.T) {
	admin := Session{Authenticated: true, Roles: []string{user.RoleAdminOwner}}
	content := Session{Authenticated: true, Roles: []string{user.RoleManagerContent}}
	manager := Session{Authenticated: true, Roles: []string{user.RoleManager}}

	tests := []struct {
		name    string
		guard   Guard
		session Session
		want    string
	}{
		{name: "public", guard: Guard{}, session: Session{}, want: ""},
		{name: "anonymous", guard: Guard{RequireAuth: true}, session: Session{}, want: LoginPath},
		{name: "anonymous with roles", guard: Guard{AllowedRoles: []string{user.RoleAdmin}}, session: Session{}, want: LoginPath},
		{name: "authenticated", guard: Guard{RequireAuth: true}, session: content, want: ""},
		{name: "admin", guard: Guard{RequireAuth: true, AllowedRoles: []string{user.RoleAdmin}}, session: admin, want: ""},
		{name: "missing role", guard: Guard{RequireAuth: true, AllowedRoles: []string{user.RoleAdmin}}, session: content, want: UnauthorizedPath},
		{name: "head manager covers sub roles", guard: Guard{RequireAuth: true, AllowedRoles: []string{user.RoleManagerContent}}, session: manager, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.guard.Check(tt.session))
		})
	}
}

func TestCheckRoute(t *testing.T) {
	content := Session{Authenticated: true, Roles: []string{user.RoleManagerContent}}
	competition := Session{Authenticated: true, Roles: []string{user.RoleManagerCompetition}}

	assert.Equal(t, "", CheckRoute("/grades/42", content))
	assert.Equal(t, UnauthorizedPath, CheckRoute("/admins", content))
	assert.Equal(t, UnauthorizedPath, CheckRoute("/lessons", competition))
	assert.Equal(t, "", CheckRoute("/questions", competition))
	assert.Equal(t, "", CheckRoute("/settings", competition))
	assert.Equal(t, LoginPath, CheckRoute("/students", Session{}))
	assert.Equal(t, "", CheckRoute(LoginPath, Session{}))

	noRoles := Session{Authenticated: true}
	assert.Equal(t, UnauthorizedPath, CheckRoute("/", noRoles))
	assert.Equal(t, "", CheckRoute("/help", noRoles))
	assert.Equal(t, "", CheckRoute("/reports/weekly", noRoles))
	assert.Equal(t, LoginPath, CheckRoute("/help", Session{}))
}
