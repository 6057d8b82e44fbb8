package student

import (
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Nebras-project/nebras-dashboard/core"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// OrderFields are the fields students can be ordered by.
var OrderFields = []string{"name", "username", "email", "birth_date", "is_active", "created_at", "updated_at", "last_login"}

type Student struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	GradeID      string    `json:"grade_id"`
	BirthDate    time.Time `json:"birth_date"`
	Gender       string    `json:"gender"`
	IsActive     *bool     `json:"is_active"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (s *Student) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = hash
	return nil
}

func (s Student) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(pwd))
}

func (s *Student) SetActive(active bool) {
	s.IsActive = &active
}

func (s Student) Active() bool {
	return s.IsActive == nil || *s.IsActive
}

type NewStudent struct {
	Name            string    `json:"name" validate:"required,max=150"`
	Username        string    `json:"username" validate:"required,min=3,max=150,alphanum_"`
	Email           string    `json:"email" validate:"omitempty,email"`
	Phone           string    `json:"phone" validate:"omitempty,phone"`
	GradeID         string    `json:"grade_id" validate:"required,uuid"`
	BirthDate       time.Time `json:"birth_date"`
	Gender          string    `json:"gender" validate:"required,oneof=male female"`
	Password        string    `json:"password" validate:"required,min=8"`
	PasswordConfirm string    `json:"password_confirm" validate:"omitempty,eqfield=Password"`
}

func (ns *NewStudent) Clean() {
	ns.Name = core.CleanName(ns.Name)
	ns.Username = core.CleanString(ns.Username, true /* lower */)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.NormalizePhone(ns.Phone)
}

// UpdateStudent holds the modifiable fields; blank ones keep their current value.
type UpdateStudent struct {
	Name            string     `json:"name" validate:"omitempty,max=150"`
	Username        string     `json:"username" validate:"omitempty,min=3,max=150,alphanum_"`
	Email           string     `json:"email" validate:"omitempty,email"`
	Phone           string     `json:"phone" validate:"omitempty,phone"`
	GradeID         string     `json:"grade_id" validate:"omitempty,uuid"`
	BirthDate       *time.Time `json:"birth_date"`
	Gender          string     `json:"gender" validate:"omitempty,oneof=male female"`
	IsActive        *bool      `json:"is_active"`
	Password        string     `json:"password" validate:"omitempty,min=8"`
	PasswordConfirm string     `json:"password_confirm" validate:"omitempty,eqfield=Password"`
}

func (us *UpdateStudent) Clean() {
	us.Name = core.CleanName(us.Name)
	us.Username = core.CleanString(us.Username, true /* lower */)
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.Phone = core.NormalizePhone(us.Phone)
}

// QueryFilter applies an AND operation on its set fields.
type QueryFilter struct {
	IDs      []string
	Search   string
	GradeIDs []string
	Gender   string
	IsActive *bool
}

func (qf *QueryFilter) Bind(values url.Values) error {
	p := core.NewQueryParser(values)
	qf.IDs = p.Strings("id")
	qf.Search = p.String("search")
	qf.GradeIDs = p.Strings("grade_id")
	qf.Gender = p.String("gender")
	qf.IsActive = p.Bool("is_active")
	return p.Err()
}

func (qf *QueryFilter) Match(s Student) bool {
	if qf == nil {
		return true
	}
	if qf.IDs != nil && !core.ContainsString(qf.IDs, s.ID) {
		return false
	}
	if qf.Search != "" {
		q := strings.ToLower(qf.Search)
		if !(strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(s.Username, q) ||
			strings.Contains(s.Email, q) ||
			strings.Contains(s.Phone, q)) {
			return false
		}
	}
	if qf.GradeIDs != nil && !core.ContainsString(qf.GradeIDs, s.GradeID) {
		return false
	}
	if qf.Gender != "" && qf.Gender != s.Gender {
		return false
	}
	if qf.IsActive != nil && s.Active() != *qf.IsActive {
		return false
	}
	return true
}
