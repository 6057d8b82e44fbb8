package academic

import (
	"net/url"
	"strings"
	"time"

	"github.com/Nebras-project/nebras-dashboard/core"
)

// Stages
const (
	StagePrimary      = "primary"
	StageIntermediate = "intermediate"
	StageSecondary    = "secondary"
)

var (
	Stages = []string{StagePrimary, StageIntermediate, StageSecondary}

	GradeOrderFields      = []string{"name", "level", "stage", "created_at", "updated_at"}
	CurriculumOrderFields = []string{"name", "year", "semester", "created_at", "updated_at"}
	SubjectOrderFields    = []string{"name", "created_at", "updated_at"}
	UnitOrderFields       = []string{"name", "position", "created_at", "updated_at"}
	LessonOrderFields     = []string{"title", "position", "duration_minutes", "created_at", "updated_at"}
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Grade

type Grade struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Level     int       `json:"level"`
	Stage     string    `json:"stage"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type NewGrade struct {
	Name  string `json:"name" validate:"required,max=100"`
	Level int    `json:"level" validate:"required,gte=1,lte=12"`
	Stage string `json:"stage" validate:"required,oneof=primary intermediate secondary"`
}

type UpdateGrade struct {
	Name  string `json:"name" validate:"omitempty,max=100"`
	Level *int   `json:"level" validate:"omitempty,gte=1,lte=12"`
	Stage string `json:"stage" validate:"omitempty,oneof=primary intermediate secondary"`
}

type GradeFilter struct {
	IDs    []string
	Search string
	Stages []string
	Level  int
}

func (f *GradeFilter) Bind(values url.Values) error {
	p := core.NewQueryParser(values)
	f.IDs = p.Strings("id")
	f.Search = p.String("search")
	f.Stages = p.Strings("stage")
	f.Level = p.Int("level")
	return p.Err()
}

func (f *GradeFilter) Match(g Grade) bool {
	if f == nil {
		return true
	}
	return (f.IDs == nil || core.ContainsString(f.IDs, g.ID)) &&
		(f.Search == "" || containsFold(g.Name, f.Search)) &&
		(f.Stages == nil || core.ContainsString(f.Stages, g.Stage)) &&
		(f.Level == 0 || f.Level == g.Level)
}

// Curriculum

type Curriculum struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	GradeID   string    `json:"grade_id"`
	Year      int       `json:"year"`
	Semester  int       `json:"semester"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type NewCurriculum struct {
	Name     string `json:"name" validate:"required,max=150"`
	GradeID  string `json:"grade_id" validate:"required,uuid"`
	Year     int    `json:"year" validate:"required,gte=2000,lte=2100"`
	Semester int    `json:"semester" validate:"required,oneof=1 2"`
}

type UpdateCurriculum struct {
	Name     string `json:"name" validate:"omitempty,max=150"`
	GradeID  string `json:"grade_id" validate:"omitempty,uuid"`
	Year     int    `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	Semester int    `json:"semester" validate:"omitempty,oneof=1 2"`
}

type CurriculumFilter struct {
	IDs      []string
	Search   string
	GradeIDs []string
	Year     int
	Semester int
}

func (f *CurriculumFilter) Bind(values url.Values) error {
	p := core.NewQueryParser(values)
	f.IDs = p.Strings("id")
	f.Search = p.String("search")
	f.GradeIDs = p.Strings("grade_id")
	f.Year = p.Int("year")
	f.Semester = p.Int("semester")
	return p.Err()
}

func (f *CurriculumFilter) Match(c Curriculum) bool {
	if f == nil {
		return true
	}
	return (f.IDs == nil || core.ContainsString(f.IDs, c.ID)) &&
		(f.Search == "" || containsFold(c.Name, f.Search)) &&
		(f.GradeIDs == nil || core.ContainsString(f.GradeIDs, c.GradeID)) &&
		(f.Year == 0 || f.Year == c.Year) &&
		(f.Semester == 0 || f.Semester == c.Semester)
}

// Subject

type Subject struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CurriculumID string    `json:"curriculum_id"`
	Color        string    `json:"color"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

// DefaultSubjectColor is used when a subject is created without a color.
const DefaultSubjectColor = "#1976d2"

type NewSubject struct {
	Name         string `json:"name" validate:"required,max=150"`
	CurriculumID string `json:"curriculum_id" validate:"required,uuid"`
	Color        string `json:"color" validate:"omitempty,hexcolor_"`
}

type UpdateSubject struct {
	Name         string `json:"name" validate:"omitempty,max=150"`
	CurriculumID string `json:"curriculum_id" validate:"omitempty,uuid"`
	Color        string `json:"color" validate:"omitempty,hexcolor_"`
}

type SubjectFilter struct {
	IDs           []string
	Search        string
	CurriculumIDs []string
}

func (f *SubjectFilter) Bind(values url.Values) error {
	p := core.NewQueryParser(values)
	f.IDs = p.Strings("id")
	f.Search = p.String("search")
	f.CurriculumIDs = p.Strings("curriculum_id")
	return p.Err()
}

func (f *SubjectFilter) Match(s Subject) bool {
	if f == nil {
		return true
	}
	return (f.IDs == nil || core.ContainsString(f.IDs, s.ID)) &&
		(f.Search == "" || containsFold(s.Name, f.Search)) &&
		(f.CurriculumIDs == nil || core.ContainsString(f.CurriculumIDs, s.CurriculumID))
}

// Unit

type Unit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SubjectID string    `json:"subject_id"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type NewUnit struct {
	Name      string `json:"name" validate:"required,max=150"`
	SubjectID string `json:"subject_id" validate:"required,uuid"`
	Position  int    `json:"position" validate:"gte=0"`
}

type UpdateUnit struct {
	Name      string `json:"name" validate:"omitempty,max=150"`
	SubjectID string `json:"subject_id" validate:"omitempty,uuid"`
	Position  *int   `json:"position" validate:"omitempty,gte=0"`
}

type UnitFilter struct {
	IDs        []string
	Search     string
	SubjectIDs []string
}

func (f *UnitFilter) Bind(values url.Values) error {
	p := core.NewQueryParser(values)
	f.IDs = p.Strings("id")
	f.Search = p.String("search")
	f.SubjectIDs = p.Strings("subject_id")
	return p.Err()
}

func (f *UnitFilter) Match(u Unit) bool {
	if f == nil {
		return true
	}
	return (f.IDs == nil || core.ContainsString(f.IDs, u.ID)) &&
		(f.Search == "" || containsFold(u.Name, f.Search)) &&
		(f.SubjectIDs == nil || core.ContainsString(f.SubjectIDs, u.SubjectID))
}

// Lesson

type Lesson struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	UnitID          string    `json:"unit_id"`
	Position        int       `json:"position"`
	Content         string    `json:"content"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"` // UTC
	UpdatedAt       time.Time `json:"updated_at"` // UTC
}

type NewLesson struct {
	Title           string `json:"title" validate:"required,max=200"`
	UnitID          string `json:"unit_id" validate:"required,uuid"`
	Position        int    `json:"position" validate:"gte=0"`
	Content         string `json:"content"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0,lte=600"`
}

type UpdateLesson struct {
	Title           string  `json:"title" validate:"omitempty,max=200"`
	UnitID          string  `json:"unit_id" validate:"omitempty,uuid"`
	Position        *int    `json:"position" validate:"omitempty,gte=0"`
	Content         *string `json:"content"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,gte=0,lte=600"`
}

type LessonFilter struct {
	IDs     []string
	Search  string
	UnitIDs []string
}

func (f *LessonFilter) Bind(values url.Values) error {
	p := core.NewQueryParser(values)
	f.IDs = p.Strings("id")
	f.Search = p.String("search")
	f.UnitIDs = p.Strings("unit_id")
	return p.Err()
}

func (f *LessonFilter) Match(l Lesson) bool {
	if f == nil {
		return true
	}
	return (f.IDs == nil || core.ContainsString(f.IDs, l.ID)) &&
		(f.Search == "" || containsFold(l.Title, f.Search) || containsFold(l.Content, f.Search)) &&
		(f.UnitIDs == nil || core.ContainsString(f.UnitIDs, l.UnitID))
}
