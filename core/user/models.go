package user

import (
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nebras-project/nebras-dashboard/core"
)

// Roles
const (
	// Admin
	RoleAdmin      = "admin:"
	RoleAdminOwner = "admin:owner"

	// Manager
	RoleManager            = "manager:"
	RoleManagerContent     = "manager:content"
	RoleManagerCompetition = "manager:competition"
)

var (
	AdminRoles   = []string{RoleAdmin, RoleAdminOwner}
	ManagerRoles = []string{RoleManager, RoleManagerContent, RoleManagerCompetition}
	AllRoles     = getAllRoles()

	rolePriorities = map[string]int{
		// Admins: 30 - 21
		RoleAdminOwner: 30,
		RoleAdmin:      21,

		// Managers: 20 - 11
		RoleManager:            20,
		RoleManagerContent:     12,
		RoleManagerCompetition: 11,
	}

	Roles = []Role{
		{Name: "Manager (competitions)", Value: RoleManagerCompetition},
		{Name: "Manager (content)", Value: RoleManagerContent},
		{Name: "Manager", Value: RoleManager},
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Admin Owner", Value: RoleAdminOwner},
	}

	// OrderFields are the fields users can be ordered by.
	OrderFields = []string{"name", "username", "email", "is_active", "created_at", "updated_at", "last_login"}
)

func getAllRoles() []string {
	all := make([]string, 0, len(AdminRoles)+len(ManagerRoles))
	all = append(all, AdminRoles...)
	all = append(all, ManagerRoles...)
	return all
}

func RolePriority(role string) int {
	return rolePriorities[role]
}

func MaxRolePriority(roles []string) int {
	var max int
	for _, role := range roles {
		if RolePriority(role) > max {
			max = RolePriority(role)
		}
	}
	return max
}

// RolesHavePrefix reports whether every role starts with prefix.
func RolesHavePrefix(roles []string, prefix string) bool {
	for _, role := range roles {
		if !strings.HasPrefix(role, prefix) {
			return false
		}
	}
	return true
}

// roleCovers reports whether role grants allowed. A role ending with ":" covers
// every role under it ("manager:" covers "manager:content"), and "admin:owner"
// passes a guard on "admin:".
func roleCovers(role, allowed string) bool {
	if strings.HasPrefix(role, allowed) {
		return true
	}
	return strings.HasSuffix(role, ":") && strings.HasPrefix(allowed, role)
}

// HasAnyRole reports whether roles grant any of allowed. An empty allowed list grants everyone.
func HasAnyRole(roles, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, role := range roles {
		for _, a := range allowed {
			if roleCovers(role, a) {
				return true
			}
		}
	}
	return false
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Settings are the per-user dashboard preferences.
type Settings struct {
	Language string `json:"language" validate:"omitempty,oneof=default en ar"`
	Theme    string `json:"theme" validate:"omitempty,oneof=light dark system"`
}

func DefaultSettings() Settings {
	return Settings{Language: core.LangDefault, Theme: core.ThemeSystem}
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	IsActive     *bool     `json:"is_active"`
	Roles        []string  `json:"roles"`
	PasswordHash []byte    `json:"-"`
	Settings     Settings  `json:"settings"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) SetActive(active bool) {
	u.IsActive = &active
}

func (u User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

func (u User) RoleStartsWith(prefix string) bool {
	for _, role := range u.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (u User) IsAdmin() bool {
	return u.RoleStartsWith(RoleAdmin)
}

func (u User) IsManager() bool {
	return u.RoleStartsWith(RoleManager)
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name            string    `json:"name" validate:"required,max=150"`
	Username        string    `json:"username" validate:"omitempty,min=3,max=150,alphanum_"`
	Email           string    `json:"email" validate:"omitempty,email"`
	Phone           string    `json:"phone" validate:"omitempty,phone"`
	Password        string    `json:"password" validate:"required"`
	PasswordConfirm string    `json:"password_confirm" validate:"required,eqfield=Password"`
	Roles           []string  `json:"roles" validate:"omitempty,allroles"`
	Settings        *Settings `json:"settings"`
}

func (nu *NewUser) Clean() {
	nu.Name = core.CleanName(nu.Name)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Phone = core.NormalizePhone(nu.Phone)
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Clean()
	return validate.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing User.
// Empty fields keep their current value.
type UpdateUser struct {
	Name            string   `json:"name" validate:"omitempty,max=150"`
	Username        string   `json:"username" validate:"omitempty,min=3,max=150,alphanum_"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Phone           string   `json:"phone" validate:"omitempty,phone"`
	IsActive        *bool    `json:"is_active"`
	Roles           []string `json:"roles" validate:"omitempty,allroles"`
	Password        string   `json:"password" validate:"omitempty"`
	PasswordConfirm string   `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

// Validate fills the blank fields of uu from origUsr then validates it.
func (uu *UpdateUser) Validate(origUsr User, validate *validator.Validate) error {
	if name := core.CleanName(uu.Name); name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}

	if uname := core.CleanString(uu.Username, true /* lower */); uname != "" {
		uu.Username = uname
	} else {
		uu.Username = origUsr.Username
	}

	if email := core.CleanString(uu.Email, true /* lower */); email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if phone := core.NormalizePhone(uu.Phone); phone != "" {
		uu.Phone = phone
	} else {
		uu.Phone = origUsr.Phone
	}

	return validate.Struct(uu)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate(validate *validator.Validate) error { return validate.Struct(rp) }

// QueryFilter applies an AND operation on its set fields.
// Search does a case-insensitive match on one of Name, Username, Email or Phone.
// Roles matches users having any role starting with any of the provided roles.
type QueryFilter struct {
	IDs         []string
	Search      string
	Roles       []string
	IsActive    *bool
	CreatedFrom time.Time
	CreatedTo   time.Time
}

func (qf *QueryFilter) Bind(values url.Values) error {
	p := core.NewQueryParser(values)
	qf.IDs = p.Strings("id")
	qf.Search = p.String("search")
	qf.Roles = p.Strings("role")
	qf.IsActive = p.Bool("is_active")
	qf.CreatedFrom = p.Time("created_from")
	qf.CreatedTo = p.Time("created_to")
	return p.Err()
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.IDs == nil && qf.Search == "" && qf.Roles == nil && qf.IsActive == nil && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

// Match reports whether usr satisfies the filter.
func (qf *QueryFilter) Match(usr User) bool {
	if qf == nil {
		return true
	}
	if qf.IDs != nil && !core.ContainsString(qf.IDs, usr.ID) {
		return false
	}
	if qf.Search != "" {
		s := strings.ToLower(qf.Search)
		if !(strings.Contains(strings.ToLower(usr.Name), s) ||
			strings.Contains(usr.Username, s) ||
			strings.Contains(usr.Email, s) ||
			strings.Contains(usr.Phone, s)) {
			return false
		}
	}
	if qf.Roles != nil {
		var found bool
		for _, role := range qf.Roles {
			if usr.RoleStartsWith(role) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if qf.IsActive != nil && usr.Active() != *qf.IsActive {
		return false
	}
	if !qf.CreatedFrom.IsZero() && usr.CreatedAt.Before(qf.CreatedFrom) {
		return false
	}
	if !qf.CreatedTo.IsZero() && usr.CreatedAt.After(qf.CreatedTo) {
		return false
	}
	return true
}

// GetFilter selects a single user; the first set field wins.
type GetFilter struct {
	ID              string
	Username        string
	Email           string
	UsernameOrEmail string
}
