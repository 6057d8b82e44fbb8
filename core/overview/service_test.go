package overview_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/academic"
	"github.com/Nebras-project/nebras-dashboard/core/competition"
	"github.com/Nebras-project/nebras-dashboard/core/overview"
	"github.com/Nebras-project/nebras-dashboard/core/student"
	"github.com/Nebras-project/nebras-dashboard/core/user"
	logsvc "github.com/Nebras-project/nebras-dashboard/services/logger"
	inmemdb "github.com/Nebras-project/nebras-dashboard/storage/database/inmem"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func (c *mapCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *mapCache) Set(_ context.Context, key string, val interface{}, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	c.sets++
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.data, key)
	}
	return nil
}

type brokenCache struct{}

var errDown = errors.New("cache down")

func (brokenCache) Get(context.Context, string, interface{}) (bool, error)        { return false, errDown }
func (brokenCache) Set(context.Context, string, interface{}, time.Duration) error { return errDown }
func (brokenCache) Delete(context.Context, ...string) error                      { return errDown }

func setup(t *testing.T) (overview.Deps, *inmemdb.DB) {
	t.Helper()
	validate := validator.New()
	core.InitValidators(validate, core.NewUniversalTranslator())

	db := inmemdb.Open()
	grades := inmemdb.NewGradeRepository(db)
	subjects := inmemdb.NewSubjectRepository(db)
	comps := inmemdb.NewCompetitionRepository(db)
	deps := overview.Deps{
		Users:        user.NewService(inmemdb.NewUserRepository(db), nil, &core.Config{}),
		Students:     student.NewService(validate, inmemdb.NewStudentRepository(db), grades),
		Grades:       academic.NewGradeService(validate, grades),
		Curriculums:  academic.NewCurriculumService(validate, inmemdb.NewCurriculumRepository(db), grades),
		Subjects:     academic.NewSubjectService(validate, subjects, inmemdb.NewCurriculumRepository(db)),
		Units:        academic.NewUnitService(validate, inmemdb.NewUnitRepository(db), subjects),
		Lessons:      academic.NewLessonService(validate, inmemdb.NewLessonRepository(db), inmemdb.NewUnitRepository(db)),
		Competitions: competition.NewService(validate, comps, grades, subjects),
		Questions:    competition.NewQuestionService(validate, inmemdb.NewQuestionRepository(db), inmemdb.NewLessonRepository(db), comps),
	}
	return deps, db
}

func seed(t *testing.T, db *inmemdb.DB) {
	t.Helper()
	ctx := context.Background()
	users := inmemdb.NewUserRepository(db)
	for _, roles := range [][]string{
		{user.RoleAdminOwner},
		{user.RoleManagerContent},
		{user.RoleManagerContent, user.RoleManagerCompetition},
	} {
		_, err := users.CreateUser(ctx, user.User{Roles: roles})
		require.NoError(t, err)
	}

	grade, err := inmemdb.NewGradeRepository(db).CreateGrade(ctx, academic.Grade{Name: "Grade 1", Level: 1})
	require.NoError(t, err)
	students := inmemdb.NewStudentRepository(db)
	_, err = students.CreateStudent(ctx, student.Student{GradeID: grade.ID, IsActive: core.BoolPtr(true)})
	require.NoError(t, err)
	_, err = students.CreateStudent(ctx, student.Student{GradeID: grade.ID, IsActive: core.BoolPtr(false)})
	require.NoError(t, err)

	now := time.Now().UTC()
	comps := inmemdb.NewCompetitionRepository(db)
	_, err = comps.CreateCompetition(ctx, competition.Competition{GradeID: grade.ID, StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)})
	require.NoError(t, err)
	_, err = comps.CreateCompetition(ctx, competition.Competition{GradeID: grade.ID, StartsAt: now.Add(time.Hour), EndsAt: now.Add(2 * time.Hour)})
	require.NoError(t, err)

	questions := inmemdb.NewQuestionRepository(db)
	for _, cat := range []string{competition.CategoryMinisterial, competition.CategoryEnrichment, competition.CategoryEnrichment} {
		_, err = questions.CreateQuestion(ctx, competition.Question{Category: cat})
		require.NoError(t, err)
	}
}

func newLogger() *logsvc.RollbarLogger {
	return logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), &core.Config{TestMode: true})
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()
	deps, db := setup(t)
	seed(t, db)

	cache := &mapCache{data: map[string][]byte{}}
	svc := overview.NewService(deps, cache, time.Minute, newLogger())

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Admins)
	assert.Equal(t, 2, stats.Managers)
	assert.Equal(t, 2, stats.Students)
	assert.Equal(t, 1, stats.ActiveStudents)
	assert.Equal(t, 1, stats.Grades)
	assert.Equal(t, 2, stats.Competitions)
	assert.Equal(t, 1, stats.ActiveCompetitions)
	assert.Equal(t, 3, stats.Questions)
	assert.Equal(t, 1, stats.MinisterialQuestions)
	assert.Equal(t, 2, stats.EnrichmentQuestions)
	assert.False(t, stats.GeneratedAt.IsZero())
	assert.Equal(t, 1, cache.sets)

	// served from the cache
	_, err = inmemdb.NewGradeRepository(db).CreateGrade(ctx, academic.Grade{Name: "Grade 2", Level: 2})
	require.NoError(t, err)
	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Grades)
	assert.Equal(t, 1, cache.sets)

	require.NoError(t, svc.Invalidate(ctx))
	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Grades)
	assert.Equal(t, 2, cache.sets)
}

func TestService_Stats_brokenCache(t *testing.T) {
	ctx := context.Background()
	deps, db := setup(t)
	seed(t, db)

	svc := overview.NewService(deps, brokenCache{}, time.Minute, newLogger())
	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Students)

	err = svc.Invalidate(ctx)
	assert.ErrorIs(t, err, errDown)
}
