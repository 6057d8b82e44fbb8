package competition

import (
	"net/url"
	"strings"
	"time"

	"github.com/Nebras-project/nebras-dashboard/core"
)

// Competition statuses; derived from the current time, never stored.
const (
	StatusUpcoming = "upcoming"
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Question categories, kinds & difficulties
const (
	CategoryMinisterial = "ministerial"
	CategoryEnrichment  = "enrichment"

	KindMultipleChoice = "multiple_choice"
	KindTrueFalse      = "true_false"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var (
	Statuses        = []string{StatusUpcoming, StatusActive, StatusFinished}
	TrueFalseOptions = []string{"true", "false"}

	OrderFields         = []string{"name", "starts_at", "ends_at", "max_participants", "created_at", "updated_at"}
	QuestionOrderFields = []string{"text", "category", "kind", "difficulty", "year", "created_at", "updated_at"}

	// nowFunc is overridden in tests.
	nowFunc = func() time.Time { return time.Now().UTC() }
)

type Competition struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	GradeID         string    `json:"grade_id"`
	SubjectID       string    `json:"subject_id"`
	StartsAt        time.Time `json:"starts_at"` // UTC
	EndsAt          time.Time `json:"ends_at"`   // UTC
	MaxParticipants int       `json:"max_participants"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"` // UTC
	UpdatedAt       time.Time `json:"updated_at"` // UTC
}

// StatusAt returns the status of c at t.
func (c Competition) StatusAt(t time.Time) string {
	switch {
	case t.Before(c.StartsAt):
		return StatusUpcoming
	case t.Before(c.EndsAt):
		return StatusActive
	default:
		return StatusFinished
	}
}

func (c Competition) withStatus(t time.Time) Competition {
	c.Status = c.StatusAt(t)
	return c
}

type NewCompetition struct {
	Name            string    `json:"name" validate:"required,max=200"`
	Description     string    `json:"description" validate:"max=2000"`
	GradeID         string    `json:"grade_id" validate:"required,uuid"`
	SubjectID       string    `json:"subject_id" validate:"omitempty,uuid"`
	StartsAt        time.Time `json:"starts_at" validate:"required"`
	EndsAt          time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	MaxParticipants int       `json:"max_participants" validate:"gte=0"`
}

type UpdateCompetition struct {
	Name            string     `json:"name" validate:"omitempty,max=200"`
	Description     *string    `json:"description" validate:"omitempty,max=2000"`
	GradeID         string     `json:"grade_id" validate:"omitempty,uuid"`
	SubjectID       *string    `json:"subject_id" validate:"omitempty"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	MaxParticipants *int       `json:"max_participants" validate:"omitempty,gte=0"`
}

// Filter applies an AND operation on its set fields.
// Status is evaluated at At, which the service sets to the current time.
type Filter struct {
	IDs        []string
	Search     string
	GradeIDs   []string
	SubjectIDs []string
	Status     string
	At         time.Time
}

func (f *Filter) Bind(values url.Values) error {
	p := core.NewQueryParser(values)
	f.IDs = p.Strings("id")
	f.Search = p.String("search")
	f.GradeIDs = p.Strings("grade_id")
	f.SubjectIDs = p.Strings("subject_id")
	f.Status = p.String("status")
	if f.Status != "" && !core.ContainsString(Statuses, f.Status) {
		return core.NewValidationError(nil, core.FieldError{Field: "status", Error: core.MsgInvalidInput})
	}
	return p.Err()
}

func (f *Filter) Match(c Competition) bool {
	if f == nil {
		return true
	}
	return (f.IDs == nil || core.ContainsString(f.IDs, c.ID)) &&
		(f.Search == "" || containsFold(c.Name, f.Search) || containsFold(c.Description, f.Search)) &&
		(f.GradeIDs == nil || core.ContainsString(f.GradeIDs, c.GradeID)) &&
		(f.SubjectIDs == nil || core.ContainsString(f.SubjectIDs, c.SubjectID)) &&
		(f.Status == "" || c.StatusAt(f.At) == f.Status)
}

type Question struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Category      string    `json:"category"`
	Kind          string    `json:"kind"`
	Options       []string  `json:"options"`
	CorrectOption string    `json:"correct_option"`
	LessonID      string    `json:"lesson_id"`
	CompetitionID string    `json:"competition_id"`
	Year          int       `json:"year"`
	Difficulty    string    `json:"difficulty"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

type NewQuestion struct {
	Text          string   `json:"text" validate:"required,max=2000"`
	Category      string   `json:"category" validate:"required,oneof=ministerial enrichment"`
	Kind          string   `json:"kind" validate:"required,oneof=multiple_choice true_false"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correct_option" validate:"required"`
	LessonID      string   `json:"lesson_id" validate:"omitempty,uuid"`
	CompetitionID string   `json:"competition_id" validate:"omitempty,uuid"`
	Year          int      `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	Difficulty    string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

func (nq *NewQuestion) Clean() {
	nq.Text = core.CleanString(nq.Text)
	nq.Options = cleanOptions(nq.Options)
	nq.CorrectOption = core.CleanString(nq.CorrectOption)
	if nq.Kind == KindTrueFalse {
		nq.Options = TrueFalseOptions
		nq.CorrectOption = strings.ToLower(nq.CorrectOption)
	}
	if nq.Difficulty == "" {
		nq.Difficulty = DifficultyMedium
	}
}

// UpdateQuestion holds the modifiable fields; it is merged into the stored
// question and the result validated as a NewQuestion.
type UpdateQuestion struct {
	Text          string   `json:"text"`
	Category      string   `json:"category"`
	Kind          string   `json:"kind"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correct_option"`
	LessonID      *string  `json:"lesson_id"`
	CompetitionID *string  `json:"competition_id"`
	Year          *int     `json:"year"`
	Difficulty    string   `json:"difficulty"`
}

func (uq UpdateQuestion) merge(q Question) NewQuestion {
	nq := NewQuestion{
		Text:          q.Text,
		Category:      q.Category,
		Kind:          q.Kind,
		Options:       q.Options,
		CorrectOption: q.CorrectOption,
		LessonID:      q.LessonID,
		CompetitionID: q.CompetitionID,
		Year:          q.Year,
		Difficulty:    q.Difficulty,
	}
	if uq.Text != "" {
		nq.Text = uq.Text
	}
	if uq.Category != "" {
		nq.Category = uq.Category
	}
	if uq.Kind != "" {
		nq.Kind = uq.Kind
	}
	if uq.Options != nil {
		nq.Options = uq.Options
	}
	if uq.CorrectOption != "" {
		nq.CorrectOption = uq.CorrectOption
	}
	if uq.LessonID != nil {
		nq.LessonID = *uq.LessonID
	}
	if uq.CompetitionID != nil {
		nq.CompetitionID = *uq.CompetitionID
	}
	if uq.Year != nil {
		nq.Year = *uq.Year
	}
	if uq.Difficulty != "" {
		nq.Difficulty = uq.Difficulty
	}
	return nq
}

type QuestionFilter struct {
	IDs            []string
	Search         string
	Categories     []string
	Kinds          []string
	Difficulties   []string
	LessonIDs      []string
	CompetitionIDs []string
	Year           int
}

func (f *QuestionFilter) Bind(values url.Values) error {
	p := core.NewQueryParser(values)
	f.IDs = p.Strings("id")
	f.Search = p.String("search")
	f.Categories = p.Strings("category")
	f.Kinds = p.Strings("kind")
	f.Difficulties = p.Strings("difficulty")
	f.LessonIDs = p.Strings("lesson_id")
	f.CompetitionIDs = p.Strings("competition_id")
	f.Year = p.Int("year")
	return p.Err()
}

func (f *QuestionFilter) Match(q Question) bool {
	if f == nil {
		return true
	}
	return (f.IDs == nil || core.ContainsString(f.IDs, q.ID)) &&
		(f.Search == "" || containsFold(q.Text, f.Search)) &&
		(f.Categories == nil || core.ContainsString(f.Categories, q.Category)) &&
		(f.Kinds == nil || core.ContainsString(f.Kinds, q.Kind)) &&
		(f.Difficulties == nil || core.ContainsString(f.Difficulties, q.Difficulty)) &&
		(f.LessonIDs == nil || core.ContainsString(f.LessonIDs, q.LessonID)) &&
		(f.CompetitionIDs == nil || core.ContainsString(f.CompetitionIDs, q.CompetitionID)) &&
		(f.Year == 0 || f.Year == q.Year)
}

func cleanOptions(opts []string) []string {
	if opts == nil {
		return nil
	}
	cleaned := make([]string, 0, len(opts))
	for _, opt := range opts {
		if opt = core.CleanString(opt); opt != "" {
			cleaned = append(cleaned, opt)
		}
	}
	return cleaned
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
