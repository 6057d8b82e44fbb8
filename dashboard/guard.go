package dashboard

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

// Redirects
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

var nowFunc = time.Now

type sessionClaims struct {
	jwt.StandardClaims
	Name     string        `json:"name,omitempty"`
	Username string        `json:"username,omitempty"`
	Email    string        `json:"email,omitempty"`
	Roles    []string      `json:"roles,omitempty"`
	Settings user.Settings `json:"settings"`
}

// Session is what the dashboard knows of the logged in user.
// It is read from the token without verifying it: the API does that.
type Session struct {
	Authenticated bool
	UserID        string
	Name          string
	Username      string
	Email         string
	Roles         []string
	Settings      user.Settings
	ExpiresAt     time.Time
}

func ParseSession(token string) (Session, error) {
	var claims sessionClaims
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &claims); err != nil {
		return Session{}, errors.Wrap(err, "parsing token")
	}

	s := Session{
		Authenticated: true,
		UserID:        claims.Subject,
		Name:          claims.Name,
		Username:      claims.Username,
		Email:         claims.Email,
		Roles:         claims.Roles,
		Settings:      claims.Settings,
	}
	if claims.ExpiresAt > 0 {
		s.ExpiresAt = time.Unix(claims.ExpiresAt, 0)
	}
	return s, nil
}

func (s Session) IsAuthenticated() bool {
	return s.Authenticated && (s.ExpiresAt.IsZero() || nowFunc().Before(s.ExpiresAt))
}

func (s Session) HasRole(allowed ...string) bool {
	return user.HasAnyRole(s.Roles, allowed)
}

// Language resolves the stored preference against the detected language.
func (s Session) Language(detected string) string {
	return core.ResolveLanguage(s.Settings.Language, detected)
}

// Guard protects a route.
type Guard struct {
	RequireAuth  bool
	AllowedRoles []string
}

// Check returns where to redirect s, or "" when access is allowed.
func (g Guard) Check(s Session) string {
	if (g.RequireAuth || len(g.AllowedRoles) > 0) && !s.IsAuthenticated() {
		return LoginPath
	}
	if len(g.AllowedRoles) > 0 && !s.HasRole(g.AllowedRoles...) {
		return UnauthorizedPath
	}
	return ""
}

var staff = []string{user.RoleAdmin, user.RoleManager}

// RouteGuards mirror the API guards of each page.
var RouteGuards = map[string]Guard{
	"/":             {RequireAuth: true, AllowedRoles: staff},
	"/settings":     {RequireAuth: true, AllowedRoles: staff},
	"/admins":       {RequireAuth: true, AllowedRoles: []string{user.RoleAdmin}},
	"/managers":     {RequireAuth: true, AllowedRoles: []string{user.RoleAdmin}},
	"/students":     {RequireAuth: true, AllowedRoles: staff},
	"/grades":       {RequireAuth: true, AllowedRoles: []string{user.RoleAdmin, user.RoleManagerContent}},
	"/curriculums":  {RequireAuth: true, AllowedRoles: []string{user.RoleAdmin, user.RoleManagerContent}},
	"/subjects":     {RequireAuth: true, AllowedRoles: []string{user.RoleAdmin, user.RoleManagerContent}},
	"/units":        {RequireAuth: true, AllowedRoles: []string{user.RoleAdmin, user.RoleManagerContent}},
	"/lessons":      {RequireAuth: true, AllowedRoles: []string{user.RoleAdmin, user.RoleManagerContent}},
	"/competitions": {RequireAuth: true, AllowedRoles: []string{user.RoleAdmin, user.RoleManagerCompetition}},
	"/questions": {RequireAuth: true, AllowedRoles: []string{
		user.RoleAdmin, user.RoleManagerCompetition, user.RoleManagerContent,
	}},
}

// CheckRoute applies the guard of the longest matching route prefix.
// "/" guards the home page only; unknown routes only need a session.
func CheckRoute(path string, s Session) string {
	if path == LoginPath || path == UnauthorizedPath {
		return ""
	}

	var (
		best  Guard
		found bool
		size  int
	)
	for route, g := range RouteGuards {
		matches := path == route || (route != "/" && strings.HasPrefix(path, route+"/"))
		if matches && len(route) > size {
			best, found, size = g, true, len(route)
		}
	}
	if !found {
		best = Guard{RequireAuth: true}
	}
	return best.Check(s)
}
