package inmemdb

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/academic"
	"github.com/Nebras-project/nebras-dashboard/core/competition"
	"github.com/Nebras-project/nebras-dashboard/core/student"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

// DB is an in-memory database; every table is safe for concurrent use.
type DB struct {
	users        *table[user.User]
	students     *table[student.Student]
	grades       *table[academic.Grade]
	curriculums  *table[academic.Curriculum]
	subjects     *table[academic.Subject]
	units        *table[academic.Unit]
	lessons      *table[academic.Lesson]
	competitions *table[competition.Competition]
	questions    *table[competition.Question]
}

func Open() *DB {
	return &DB{
		users: newTable(
			func(u user.User) string { return u.ID },
			func(u *user.User, id string) { u.ID = id },
			fields[user.User]{
				"name":       func(u user.User) interface{} { return strings.ToLower(u.Name) },
				"username":   func(u user.User) interface{} { return u.Username },
				"email":      func(u user.User) interface{} { return u.Email },
				"is_active":  func(u user.User) interface{} { return u.Active() },
				"created_at": func(u user.User) interface{} { return u.CreatedAt },
				"updated_at": func(u user.User) interface{} { return u.UpdatedAt },
				"last_login": func(u user.User) interface{} { return u.LastLogin },
			},
		),
		students: newTable(
			func(s student.Student) string { return s.ID },
			func(s *student.Student, id string) { s.ID = id },
			fields[student.Student]{
				"name":       func(s student.Student) interface{} { return strings.ToLower(s.Name) },
				"username":   func(s student.Student) interface{} { return s.Username },
				"email":      func(s student.Student) interface{} { return s.Email },
				"birth_date": func(s student.Student) interface{} { return s.BirthDate },
				"is_active":  func(s student.Student) interface{} { return s.Active() },
				"created_at": func(s student.Student) interface{} { return s.CreatedAt },
				"updated_at": func(s student.Student) interface{} { return s.UpdatedAt },
				"last_login": func(s student.Student) interface{} { return s.LastLogin },
			},
		),
		grades: newTable(
			func(g academic.Grade) string { return g.ID },
			func(g *academic.Grade, id string) { g.ID = id },
			fields[academic.Grade]{
				"name":       func(g academic.Grade) interface{} { return strings.ToLower(g.Name) },
				"level":      func(g academic.Grade) interface{} { return g.Level },
				"stage":      func(g academic.Grade) interface{} { return g.Stage },
				"created_at": func(g academic.Grade) interface{} { return g.CreatedAt },
				"updated_at": func(g academic.Grade) interface{} { return g.UpdatedAt },
			},
		),
		curriculums: newTable(
			func(c academic.Curriculum) string { return c.ID },
			func(c *academic.Curriculum, id string) { c.ID = id },
			fields[academic.Curriculum]{
				"name":       func(c academic.Curriculum) interface{} { return strings.ToLower(c.Name) },
				"year":       func(c academic.Curriculum) interface{} { return c.Year },
				"semester":   func(c academic.Curriculum) interface{} { return c.Semester },
				"created_at": func(c academic.Curriculum) interface{} { return c.CreatedAt },
				"updated_at": func(c academic.Curriculum) interface{} { return c.UpdatedAt },
			},
		),
		subjects: newTable(
			func(s academic.Subject) string { return s.ID },
			func(s *academic.Subject, id string) { s.ID = id },
			fields[academic.Subject]{
				"name":       func(s academic.Subject) interface{} { return strings.ToLower(s.Name) },
				"created_at": func(s academic.Subject) interface{} { return s.CreatedAt },
				"updated_at": func(s academic.Subject) interface{} { return s.UpdatedAt },
			},
		),
		units: newTable(
			func(u academic.Unit) string { return u.ID },
			func(u *academic.Unit, id string) { u.ID = id },
			fields[academic.Unit]{
				"name":       func(u academic.Unit) interface{} { return strings.ToLower(u.Name) },
				"position":   func(u academic.Unit) interface{} { return u.Position },
				"created_at": func(u academic.Unit) interface{} { return u.CreatedAt },
				"updated_at": func(u academic.Unit) interface{} { return u.UpdatedAt },
			},
		),
		lessons: newTable(
			func(l academic.Lesson) string { return l.ID },
			func(l *academic.Lesson, id string) { l.ID = id },
			fields[academic.Lesson]{
				"title":            func(l academic.Lesson) interface{} { return strings.ToLower(l.Title) },
				"position":         func(l academic.Lesson) interface{} { return l.Position },
				"duration_minutes": func(l academic.Lesson) interface{} { return l.DurationMinutes },
				"created_at":       func(l academic.Lesson) interface{} { return l.CreatedAt },
				"updated_at":       func(l academic.Lesson) interface{} { return l.UpdatedAt },
			},
		),
		competitions: newTable(
			func(c competition.Competition) string { return c.ID },
			func(c *competition.Competition, id string) { c.ID = id },
			fields[competition.Competition]{
				"name":             func(c competition.Competition) interface{} { return strings.ToLower(c.Name) },
				"starts_at":        func(c competition.Competition) interface{} { return c.StartsAt },
				"ends_at":          func(c competition.Competition) interface{} { return c.EndsAt },
				"max_participants": func(c competition.Competition) interface{} { return c.MaxParticipants },
				"created_at":       func(c competition.Competition) interface{} { return c.CreatedAt },
				"updated_at":       func(c competition.Competition) interface{} { return c.UpdatedAt },
			},
		),
		questions: newTable(
			func(q competition.Question) string { return q.ID },
			func(q *competition.Question, id string) { q.ID = id },
			fields[competition.Question]{
				"text":       func(q competition.Question) interface{} { return strings.ToLower(q.Text) },
				"category":   func(q competition.Question) interface{} { return q.Category },
				"kind":       func(q competition.Question) interface{} { return q.Kind },
				"difficulty": func(q competition.Question) interface{} { return q.Difficulty },
				"year":       func(q competition.Question) interface{} { return q.Year },
				"created_at": func(q competition.Question) interface{} { return q.CreatedAt },
				"updated_at": func(q competition.Question) interface{} { return q.UpdatedAt },
			},
		),
	}
}

// fields maps an ordering field name to its value accessor.
type fields[T any] map[string]func(T) interface{}

type table[T any] struct {
	mutex  sync.RWMutex
	rows   map[string]T
	ids    []string // insertion order
	getID  func(T) string
	setID  func(*T, string)
	fields fields[T]
}

func newTable[T any](getID func(T) string, setID func(*T, string), flds fields[T]) *table[T] {
	return &table[T]{
		rows:   make(map[string]T),
		getID:  getID,
		setID:  setID,
		fields: flds,
	}
}

func (t *table[T]) insert(row T) T {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	id := uuid.New().String()
	t.setID(&row, id)
	t.rows[id] = row
	t.ids = append(t.ids, id)
	return row
}

func (t *table[T]) get(id string) (T, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) update(row T) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	id := t.getID(row)
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = row
	return true
}

// find returns the first row (in insertion order) satisfying pred.
func (t *table[T]) find(pred func(T) bool) (T, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	for _, id := range t.ids {
		if row := t.rows[id]; pred(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) filter(pred func(T) bool) []T {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	rows := make([]T, 0, len(t.ids))
	for _, id := range t.ids {
		if row := t.rows[id]; pred(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

func (t *table[T]) count(pred func(T) bool) int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	var n int
	for _, row := range t.rows {
		if pred(row) {
			n++
		}
	}
	return n
}

// query filters, orders then paginates the rows.
// Rows keep their insertion order when params has no ordering.
func (t *table[T]) query(pred func(T) bool, params core.ListParams) []T {
	rows := t.filter(pred)
	if len(params.Ordering) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			for _, ord := range params.Ordering {
				get, ok := t.fields[ord.Field]
				if !ok {
					continue
				}
				c := compare(get(rows[i]), get(rows[j]))
				if c == 0 {
					continue
				}
				if ord.Ascending {
					return c < 0
				}
				return c > 0
			}
			return false
		})
	}
	start, end := params.Paginate(len(rows))
	return rows[start:end]
}

func (t *table[T]) delete(ids []string) int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	var n int
	for _, id := range ids {
		if _, ok := t.rows[id]; ok {
			delete(t.rows, id)
			n++
		}
	}
	if n > 0 {
		kept := t.ids[:0]
		for _, id := range t.ids {
			if _, ok := t.rows[id]; ok {
				kept = append(kept, id)
			}
		}
		t.ids = kept
	}
	return n
}

func compare(a, b interface{}) int {
	switch x := a.(type) {
	case string:
		y, _ := b.(string)
		return strings.Compare(x, y)
	case int:
		y, _ := b.(int)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	case bool:
		y, _ := b.(bool)
		switch {
		case !x && y:
			return -1
		case x && !y:
			return 1
		}
	case time.Time:
		y, _ := b.(time.Time)
		switch {
		case x.Before(y):
			return -1
		case x.After(y):
			return 1
		}
	}
	return 0
}
