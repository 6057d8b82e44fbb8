package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Nebras-project/nebras-dashboard/core/user"
)

// NotAvailable is shown for fields the API left empty.
const NotAvailable = "N/A"

const displayTimeLayout = "2006-01-02 15:04"

// Field returns the first non-empty value among keys, formatted as text.
// Keys list the spellings the backends used for the same field.
func (r Record) Field(keys ...string) (string, bool) {
	for _, key := range keys {
		if s := formatValue(r[key]); s != "" {
			return s, true
		}
	}
	return "", false
}

func (r Record) FieldOr(fallback string, keys ...string) string {
	if s, ok := r.Field(keys...); ok {
		return s
	}
	return fallback
}

func formatValue(v interface{}) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case float64:
		if typed == float64(int64(typed)) {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	case []interface{}:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			if s := formatValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(typed, ", ")
	}
	return fmt.Sprint(v)
}

func (r Record) strings(keys ...string) []string {
	for _, key := range keys {
		switch typed := r[key].(type) {
		case []string:
			return typed
		case []interface{}:
			out := make([]string, 0, len(typed))
			for _, item := range typed {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case string:
			if typed != "" {
				return []string{typed}
			}
		}
	}
	return nil
}

func GetID(rec Record) string {
	return rec.FieldOr("", "id", "Id", "ID", "_id")
}

func GetAdminName(rec Record) string {
	return rec.FieldOr(NotAvailable, "userName", "UserName", "username", "name", "Name")
}

func GetManagerName(rec Record) string {
	return GetAdminName(rec)
}

func GetStudentName(rec Record) string {
	return rec.FieldOr(NotAvailable, "studentName", "StudentName", "name", "Name", "userName", "UserName", "username")
}

func GetEmail(rec Record) string {
	return rec.FieldOr(NotAvailable, "email", "Email")
}

func GetPhone(rec Record) string {
	return rec.FieldOr(NotAvailable, "phone", "phoneNumber", "PhoneNumber", "Phone")
}

// GetAdminRole returns the admin role of rec, looking at "role" before the "roles" list.
func GetAdminRole(rec Record) string {
	return getRole(rec, user.RoleAdmin)
}

func GetManagerRole(rec Record) string {
	return getRole(rec, user.RoleManager)
}

func getRole(rec Record, prefix string) string {
	if role, ok := rec.Field("role", "Role"); ok {
		return role
	}
	for _, role := range rec.strings("roles", "Roles") {
		if strings.HasPrefix(role, prefix) {
			return role
		}
	}
	return NotAvailable
}

// GetRoleName returns the display name of role, or role itself when unknown.
func GetRoleName(role string) string {
	for _, r := range user.Roles {
		if r.Value == role {
			return r.Name
		}
	}
	return role
}

func GetGradeName(rec Record) string {
	return rec.FieldOr(NotAvailable, "gradeName", "GradeName", "grade_name", "grade_id", "gradeId")
}

func GetTitle(rec Record) string {
	return rec.FieldOr(NotAvailable, "title", "Title", "name", "Name")
}

// GetActiveStatus maps is_active to "active" or "inactive".
func GetActiveStatus(rec Record) string {
	for _, key := range []string{"is_active", "isActive", "IsActive"} {
		if active, ok := rec[key].(bool); ok {
			if active {
				return "active"
			}
			return "inactive"
		}
	}
	return NotAvailable
}

// GetTime formats the first time field found; RFC3339 values are shown in UTC.
func GetTime(rec Record, keys ...string) string {
	s, ok := rec.Field(keys...)
	if !ok {
		return NotAvailable
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	if t.IsZero() {
		return NotAvailable
	}
	return t.UTC().Format(displayTimeLayout)
}

func GetCreatedAt(rec Record) string {
	return GetTime(rec, "created_at", "createdAt", "CreatedAt")
}
