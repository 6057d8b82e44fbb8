package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/competition"
)

type competitionRow struct {
	ID              string      `db:"id"`
	Name            string      `db:"name"`
	Description     string      `db:"description"`
	GradeID         string      `db:"grade_id"`
	SubjectID       null.String `db:"subject_id"`
	StartsAt        time.Time   `db:"starts_at"`
	EndsAt          time.Time   `db:"ends_at"`
	MaxParticipants int         `db:"max_participants"`
	CreatedAt       time.Time   `db:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at"`
}

func toCompetitionRow(c competition.Competition) competitionRow {
	return competitionRow{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		GradeID:         c.GradeID,
		SubjectID:       null.NewString(c.SubjectID, c.SubjectID != ""),
		StartsAt:        c.StartsAt.UTC(),
		EndsAt:          c.EndsAt.UTC(),
		MaxParticipants: c.MaxParticipants,
		CreatedAt:       c.CreatedAt.UTC(),
		UpdatedAt:       c.UpdatedAt.UTC(),
	}
}

func (row competitionRow) model() competition.Competition {
	return competition.Competition{
		ID:              row.ID,
		Name:            row.Name,
		Description:     row.Description,
		GradeID:         row.GradeID,
		SubjectID:       row.SubjectID.String,
		StartsAt:        row.StartsAt.UTC(),
		EndsAt:          row.EndsAt.UTC(),
		MaxParticipants: row.MaxParticipants,
		CreatedAt:       row.CreatedAt.UTC(),
		UpdatedAt:       row.UpdatedAt.UTC(),
	}
}

type competitionRepository struct {
	t table[competition.Competition, competitionRow]
}

var _ competition.Repository = (*competitionRepository)(nil)

func NewCompetitionRepository(db *sqlx.DB) competition.Repository {
	return &competitionRepository{t: table[competition.Competition, competitionRow]{
		baseRepo: baseRepo{db: db},
		name:     "competition",
		columns: []string{
			"id", "name", "description", "grade_id", "subject_id", "starts_at", "ends_at", "max_participants", "created_at", "updated_at",
		},
		orderFields: competition.OrderFields,
		notFound:    competition.ErrNotFound,
		toRow:       toCompetitionRow,
		toModel:     competitionRow.model,
		setID:       func(c *competition.Competition, id string) { c.ID = id },
	}}
}

func competitionWhere(filter *competition.Filter) *where {
	w := &where{}
	if filter == nil {
		return w
	}
	w.inIDs("id", filter.IDs)
	w.search(filter.Search, "name", "description")
	w.inIDs("grade_id", filter.GradeIDs)
	w.inIDs("subject_id", filter.SubjectIDs)

	at := filter.At.UTC()
	switch filter.Status {
	case competition.StatusUpcoming:
		w.add("starts_at > ?", at)
	case competition.StatusActive:
		w.add("starts_at <= ? AND ends_at > ?", at, at)
	case competition.StatusFinished:
		w.add("ends_at <= ?", at)
	}
	return w
}

func (repo competitionRepository) CreateCompetition(ctx context.Context, c competition.Competition, exec ...core.DBExecutor) (competition.Competition, error) {
	return repo.t.create(ctx, exec, c)
}

func (repo competitionRepository) QueryCompetitions(ctx context.Context, filter *competition.Filter, params core.ListParams, exec ...core.DBExecutor) ([]competition.Competition, error) {
	return repo.t.query(ctx, exec, competitionWhere(filter), params)
}

func (repo competitionRepository) CountCompetitions(ctx context.Context, filter *competition.Filter, exec ...core.DBExecutor) (int, error) {
	return repo.t.countWhere(ctx, exec, competitionWhere(filter))
}

func (repo competitionRepository) GetCompetition(ctx context.Context, id string, exec ...core.DBExecutor) (competition.Competition, error) {
	return repo.t.get(ctx, exec, id)
}

func (repo competitionRepository) UpdateCompetition(ctx context.Context, c competition.Competition, exec ...core.DBExecutor) (competition.Competition, error) {
	return repo.t.save(ctx, exec, c.ID, c)
}

func (repo competitionRepository) DeleteCompetitionsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	return repo.t.remove(ctx, exec, ids)
}

type questionRow struct {
	ID            string         `db:"id"`
	Text          string         `db:"text"`
	Category      string         `db:"category"`
	Kind          string         `db:"kind"`
	Options       pq.StringArray `db:"options"`
	CorrectOption string         `db:"correct_option"`
	LessonID      null.String    `db:"lesson_id"`
	CompetitionID null.String    `db:"competition_id"`
	Year          int            `db:"year"`
	Difficulty    string         `db:"difficulty"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func toQuestionRow(q competition.Question) questionRow {
	opts := q.Options
	if opts == nil {
		opts = []string{}
	}
	return questionRow{
		ID:            q.ID,
		Text:          q.Text,
		Category:      q.Category,
		Kind:          q.Kind,
		Options:       opts,
		CorrectOption: q.CorrectOption,
		LessonID:      null.NewString(q.LessonID, q.LessonID != ""),
		CompetitionID: null.NewString(q.CompetitionID, q.CompetitionID != ""),
		Year:          q.Year,
		Difficulty:    q.Difficulty,
		CreatedAt:     q.CreatedAt.UTC(),
		UpdatedAt:     q.UpdatedAt.UTC(),
	}
}

func (row questionRow) model() competition.Question {
	return competition.Question{
		ID:            row.ID,
		Text:          row.Text,
		Category:      row.Category,
		Kind:          row.Kind,
		Options:       row.Options,
		CorrectOption: row.CorrectOption,
		LessonID:      row.LessonID.String,
		CompetitionID: row.CompetitionID.String,
		Year:          row.Year,
		Difficulty:    row.Difficulty,
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
}

type questionRepository struct {
	t table[competition.Question, questionRow]
}

var _ competition.QuestionRepository = (*questionRepository)(nil)

func NewQuestionRepository(db *sqlx.DB) competition.QuestionRepository {
	return &questionRepository{t: table[competition.Question, questionRow]{
		baseRepo: baseRepo{db: db},
		name:     "question",
		columns: []string{
			"id", "text", "category", "kind", "options", "correct_option", "lesson_id", "competition_id", "year", "difficulty", "created_at", "updated_at",
		},
		orderFields: competition.QuestionOrderFields,
		notFound:    competition.ErrQuestionNotFound,
		toRow:       toQuestionRow,
		toModel:     questionRow.model,
		setID:       func(q *competition.Question, id string) { q.ID = id },
	}}
}

func questionWhere(filter *competition.QuestionFilter) *where {
	w := &where{}
	if filter == nil {
		return w
	}
	w.inIDs("id", filter.IDs)
	w.search(filter.Search, "text")
	w.in("category", filter.Categories)
	w.in("kind", filter.Kinds)
	w.in("difficulty", filter.Difficulties)
	w.inIDs("lesson_id", filter.LessonIDs)
	w.inIDs("competition_id", filter.CompetitionIDs)
	if filter.Year != 0 {
		w.add("year = ?", filter.Year)
	}
	return w
}

func (repo questionRepository) CreateQuestion(ctx context.Context, q competition.Question, exec ...core.DBExecutor) (competition.Question, error) {
	return repo.t.create(ctx, exec, q)
}

func (repo questionRepository) QueryQuestions(ctx context.Context, filter *competition.QuestionFilter, params core.ListParams, exec ...core.DBExecutor) ([]competition.Question, error) {
	return repo.t.query(ctx, exec, questionWhere(filter), params)
}

func (repo questionRepository) CountQuestions(ctx context.Context, filter *competition.QuestionFilter, exec ...core.DBExecutor) (int, error) {
	return repo.t.countWhere(ctx, exec, questionWhere(filter))
}

func (repo questionRepository) GetQuestion(ctx context.Context, id string, exec ...core.DBExecutor) (competition.Question, error) {
	return repo.t.get(ctx, exec, id)
}

func (repo questionRepository) UpdateQuestion(ctx context.Context, q competition.Question, exec ...core.DBExecutor) (competition.Question, error) {
	return repo.t.save(ctx, exec, q.ID, q)
}

func (repo questionRepository) DeleteQuestionsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	return repo.t.remove(ctx, exec, ids)
}
