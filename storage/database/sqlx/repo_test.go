package sqlxrepos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/academic"
	"github.com/Nebras-project/nebras-dashboard/core/competition"
)

const validUUID = "6f1c2f0e-6a57-4a4e-9a55-3b1c44e4a8f1"

func TestWhere(t *testing.T) {
	tests := []struct {
		name     string
		build    func(w *where)
		wantSQL  string
		wantArgs []interface{}
	}{
		{"empty", func(w *where) {}, "", nil},
		{"nil list is ignored", func(w *where) { w.in("stage", nil) }, "", nil},
		{"empty list matches nothing", func(w *where) { w.in("stage", []string{}) }, " WHERE false", nil},
		{
			"search and list",
			func(w *where) {
				w.search("ali", "name", "email")
				w.in("stage", []string{"primary"})
			},
			" WHERE (name ILIKE ? OR email ILIKE ?) AND stage IN (?)",
			[]interface{}{"%ali%", "%ali%", []string{"primary"}},
		},
		{
			"malformed ids are dropped",
			func(w *where) { w.inIDs("id", []string{"nope", validUUID}) },
			" WHERE id IN (?)",
			[]interface{}{[]string{validUUID}},
		},
		{"only malformed ids", func(w *where) { w.inIDs("id", []string{"nope"}) }, " WHERE false", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &where{}
			tt.build(w)
			assert.Equal(t, tt.wantSQL, w.sql())
			assert.Equal(t, tt.wantArgs, w.args)
		})
	}
}

func TestOrderBy(t *testing.T) {
	params := core.ListParams{
		Page:     3,
		PageSize: 10,
		Ordering: []core.DBOrdering{{Field: "name", Ascending: true}, {Field: "password_hash"}},
	}
	assert.Equal(t, " ORDER BY name ASC, created_at ASC, id ASC LIMIT 10 OFFSET 20", orderBy(params, academic.GradeOrderFields))
	assert.Equal(t, " ORDER BY created_at ASC, id ASC", orderBy(core.ListParams{}, academic.GradeOrderFields))
}

func TestTable_SQL(t *testing.T) {
	repo := NewGradeRepository(nil).(*gradeRepository)
	assert.Equal(t, "SELECT id, name, level, stage, created_at, updated_at FROM grade", repo.t.selectSQL())
	assert.Equal(t,
		"INSERT INTO grade (id, name, level, stage, created_at, updated_at) VALUES (:id, :name, :level, :stage, :created_at, :updated_at)",
		repo.t.insertSQL())
	assert.Equal(t,
		"UPDATE grade SET name = :name, level = :level, stage = :stage, updated_at = :updated_at WHERE id = :id",
		repo.t.updateSQL())
}

func TestCompetitionWhere_Status(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		status  string
		wantSQL string
		nArgs   int
	}{
		{competition.StatusUpcoming, " WHERE starts_at > ?", 1},
		{competition.StatusActive, " WHERE starts_at <= ? AND ends_at > ?", 2},
		{competition.StatusFinished, " WHERE ends_at <= ?", 1},
		{"", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			w := competitionWhere(&competition.Filter{Status: tt.status, At: at})
			assert.Equal(t, tt.wantSQL, w.sql())
			assert.Len(t, w.args, tt.nArgs)
		})
	}
}

func TestRowConversion(t *testing.T) {
	q := competition.Question{ID: validUUID, Text: "2+2?", Kind: competition.KindMultipleChoice}
	row := toQuestionRow(q)
	assert.False(t, row.LessonID.Valid)
	assert.Equal(t, []string{}, []string(row.Options))
	assert.Equal(t, "", row.model().LessonID)

	c := competition.Competition{ID: validUUID, SubjectID: validUUID}
	assert.True(t, toCompetitionRow(c).SubjectID.Valid)
	assert.Equal(t, validUUID, toCompetitionRow(c).model().SubjectID)
}
