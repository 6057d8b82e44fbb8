package dashboard

import (
	"sort"
	"time"

	ut "github.com/go-playground/universal-translator"

	"github.com/Nebras-project/nebras-dashboard/core"
)

// Column is one grid column. Enum, when set, prefixes the value to build its
// message key ("status" + "active" -> "status.active").
type Column struct {
	Field     string
	HeaderKey string
	Value     func(rec Record) string
	Enum      string
}

func (c Column) Header(trans ut.Translator) string {
	return core.Translate(trans, c.HeaderKey)
}

// Cell is the text shown for rec in this column.
func (c Column) Cell(trans ut.Translator, rec Record) string {
	var val string
	if c.Value != nil {
		val = c.Value(rec)
	} else {
		val = rec.FieldOr(NotAvailable, c.Field)
	}
	if c.Enum == "" || val == NotAvailable {
		return val
	}
	key := c.Enum + "." + val
	if text := core.Translate(trans, key); text != key {
		return text
	}
	return val
}

func fieldColumn(field, headerKey string) Column {
	return Column{Field: field, HeaderKey: headerKey}
}

// BaseColumns wraps the entity columns with the id and created_at columns.
func BaseColumns(cols ...Column) []Column {
	out := make([]Column, 0, len(cols)+2)
	out = append(out, Column{Field: "id", HeaderKey: "column.id", Value: GetID})
	out = append(out, cols...)
	out = append(out, Column{Field: "created_at", HeaderKey: "column.createdAt", Value: GetCreatedAt})
	return out
}

func staffColumns(roleFn func(Record) string) []Column {
	return BaseColumns(
		Column{Field: "name", HeaderKey: "column.name", Value: GetAdminName},
		Column{Field: "email", HeaderKey: "column.email", Value: GetEmail},
		Column{Field: "phone", HeaderKey: "column.phone", Value: GetPhone},
		Column{Field: "role", HeaderKey: "column.role", Value: func(rec Record) string { return GetRoleName(roleFn(rec)) }},
		Column{Field: "is_active", HeaderKey: "column.status", Value: GetActiveStatus, Enum: "status"},
		Column{Field: "last_login", HeaderKey: "column.lastLogin", Value: func(rec Record) string {
			return GetTime(rec, "last_login", "lastLogin", "LastLogin")
		}},
	)
}

func AdminColumns() []Column {
	return staffColumns(GetAdminRole)
}

func ManagerColumns() []Column {
	return staffColumns(GetManagerRole)
}

func StudentColumns() []Column {
	return BaseColumns(
		Column{Field: "name", HeaderKey: "column.name", Value: GetStudentName},
		fieldColumn("username", "column.username"),
		Column{Field: "email", HeaderKey: "column.email", Value: GetEmail},
		Column{Field: "phone", HeaderKey: "column.phone", Value: GetPhone},
		Column{Field: "grade_id", HeaderKey: "column.grade", Value: GetGradeName},
		fieldColumn("gender", "column.gender"),
		Column{Field: "birth_date", HeaderKey: "column.birthDate", Value: func(rec Record) string {
			return GetTime(rec, "birth_date", "birthDate")
		}},
		Column{Field: "is_active", HeaderKey: "column.status", Value: GetActiveStatus, Enum: "status"},
	)
}

func GradeColumns() []Column {
	return BaseColumns(
		fieldColumn("name", "column.name"),
		fieldColumn("level", "column.level"),
		fieldColumn("stage", "column.stage"),
	)
}

func CurriculumColumns() []Column {
	return BaseColumns(
		fieldColumn("name", "column.name"),
		Column{Field: "grade_id", HeaderKey: "column.grade", Value: GetGradeName},
		fieldColumn("year", "column.year"),
		fieldColumn("semester", "column.semester"),
	)
}

func SubjectColumns() []Column {
	return BaseColumns(
		fieldColumn("name", "column.name"),
		fieldColumn("curriculum_id", "column.curriculum"),
		fieldColumn("color", "column.color"),
	)
}

func UnitColumns() []Column {
	return BaseColumns(
		fieldColumn("name", "column.name"),
		fieldColumn("subject_id", "column.subject"),
		fieldColumn("position", "column.position"),
	)
}

func LessonColumns() []Column {
	return BaseColumns(
		Column{Field: "title", HeaderKey: "column.title", Value: GetTitle},
		fieldColumn("unit_id", "column.unit"),
		fieldColumn("position", "column.position"),
		fieldColumn("duration_minutes", "column.duration"),
	)
}

func CompetitionColumns() []Column {
	return BaseColumns(
		fieldColumn("name", "column.name"),
		Column{Field: "grade_id", HeaderKey: "column.grade", Value: GetGradeName},
		fieldColumn("subject_id", "column.subject"),
		Column{Field: "starts_at", HeaderKey: "column.startsAt", Value: func(rec Record) string { return GetTime(rec, "starts_at", "startsAt") }},
		Column{Field: "ends_at", HeaderKey: "column.endsAt", Value: func(rec Record) string { return GetTime(rec, "ends_at", "endsAt") }},
		Column{Field: "status", HeaderKey: "column.status", Enum: "status"},
	)
}

func QuestionColumns() []Column {
	return BaseColumns(
		fieldColumn("text", "column.text"),
		fieldColumn("category", "column.category"),
		fieldColumn("kind", "column.kind"),
		fieldColumn("difficulty", "column.difficulty"),
		fieldColumn("year", "column.year"),
	)
}

// Entity describes one dashboard page: its API resource, columns and filter.
type Entity struct {
	Resource   string
	MessageKey string
	Columns    func() []Column
	NewFilter  func(delay time.Duration, onChange func(string)) *DebouncedFilter
}

var entities = map[string]Entity{
	"admins":       {"admins", "entity.admin", AdminColumns, NewAdminFilter},
	"managers":     {"managers", "entity.manager", ManagerColumns, NewManagerFilter},
	"students":     {"students", "entity.student", StudentColumns, NewStudentFilter},
	"grades":       {"grades", "entity.grade", GradeColumns, NewGradeFilter},
	"curriculums":  {"curriculums", "entity.curriculum", CurriculumColumns, NewCurriculumFilter},
	"subjects":     {"subjects", "entity.subject", SubjectColumns, NewSubjectFilter},
	"units":        {"units", "entity.unit", UnitColumns, NewUnitFilter},
	"lessons":      {"lessons", "entity.lesson", LessonColumns, NewLessonFilter},
	"competitions": {"competitions", "entity.competition", CompetitionColumns, NewCompetitionFilter},
	"questions":    {"questions", "entity.question", QuestionColumns, NewQuestionFilter},
}

func LookupEntity(name string) (Entity, bool) {
	e, ok := entities[name]
	return e, ok
}

func EntityNames() []string {
	names := make([]string, 0, len(entities))
	for name := range entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
