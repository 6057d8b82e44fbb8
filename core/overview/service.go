// Package overview aggregates the dashboard home page counters.
package overview

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/academic"
	"github.com/Nebras-project/nebras-dashboard/core/competition"
	"github.com/Nebras-project/nebras-dashboard/core/student"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

// CacheKey is where the stats are cached.
const CacheKey = "overview:stats"

type Stats struct {
	Admins               int       `json:"admins"`
	Managers             int       `json:"managers"`
	Students             int       `json:"students"`
	ActiveStudents       int       `json:"active_students"`
	Grades               int       `json:"grades"`
	Curriculums          int       `json:"curriculums"`
	Subjects             int       `json:"subjects"`
	Units                int       `json:"units"`
	Lessons              int       `json:"lessons"`
	Competitions         int       `json:"competitions"`
	ActiveCompetitions   int       `json:"active_competitions"`
	Questions            int       `json:"questions"`
	MinisterialQuestions int       `json:"ministerial_questions"`
	EnrichmentQuestions  int       `json:"enrichment_questions"`
	GeneratedAt          time.Time `json:"generated_at"` // UTC
}

// Cache stores JSON-serializable values. Get reports false on a miss.
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, val interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Deps struct {
	Users        user.Service
	Students     student.Service
	Grades       academic.GradeService
	Curriculums  academic.CurriculumService
	Subjects     academic.SubjectService
	Units        academic.UnitService
	Lessons      academic.LessonService
	Competitions competition.Service
	Questions    competition.QuestionService
}

type Service interface {
	Stats(ctx context.Context) (Stats, error)
	Invalidate(ctx context.Context) error
}

type service struct {
	deps   Deps
	cache  Cache
	ttl    time.Duration
	logger core.Logger
}

var _ Service = (*service)(nil)

func NewService(deps Deps, cache Cache, ttl time.Duration, logger core.Logger) Service {
	return &service{deps: deps, cache: cache, ttl: ttl, logger: logger}
}

// Stats returns the cached stats when available. Cache failures are logged, never returned.
func (svc *service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	found, err := svc.cache.Get(ctx, CacheKey, &stats)
	if err != nil {
		svc.logger.Error("reading overview cache: "+err.Error(), err)
	} else if found {
		return stats, nil
	}

	if stats, err = svc.compute(ctx); err != nil {
		return Stats{}, err
	}
	if err = svc.cache.Set(ctx, CacheKey, stats, svc.ttl); err != nil {
		svc.logger.Error("writing overview cache: "+err.Error(), err)
	}
	return stats, nil
}

func (svc *service) Invalidate(ctx context.Context) error {
	return errors.Wrap(svc.cache.Delete(ctx, CacheKey), "invalidating overview cache")
}

func (svc *service) compute(ctx context.Context) (Stats, error) {
	stats := Stats{GeneratedAt: time.Now().UTC()}
	counters := []struct {
		dst   *int
		name  string
		count func() (int, error)
	}{
		{&stats.Admins, "admins", func() (int, error) {
			return svc.deps.Users.Count(ctx, &user.QueryFilter{Roles: []string{user.RoleAdmin}})
		}},
		{&stats.Managers, "managers", func() (int, error) {
			return svc.deps.Users.Count(ctx, &user.QueryFilter{Roles: []string{user.RoleManager}})
		}},
		{&stats.Students, "students", func() (int, error) {
			return svc.deps.Students.Count(ctx, nil)
		}},
		{&stats.ActiveStudents, "active students", func() (int, error) {
			return svc.deps.Students.Count(ctx, &student.QueryFilter{IsActive: core.BoolPtr(true)})
		}},
		{&stats.Grades, "grades", func() (int, error) { return svc.deps.Grades.Count(ctx, nil) }},
		{&stats.Curriculums, "curriculums", func() (int, error) { return svc.deps.Curriculums.Count(ctx, nil) }},
		{&stats.Subjects, "subjects", func() (int, error) { return svc.deps.Subjects.Count(ctx, nil) }},
		{&stats.Units, "units", func() (int, error) { return svc.deps.Units.Count(ctx, nil) }},
		{&stats.Lessons, "lessons", func() (int, error) { return svc.deps.Lessons.Count(ctx, nil) }},
		{&stats.Competitions, "competitions", func() (int, error) { return svc.deps.Competitions.Count(ctx, nil) }},
		{&stats.ActiveCompetitions, "active competitions", func() (int, error) {
			return svc.deps.Competitions.Count(ctx, &competition.Filter{Status: competition.StatusActive})
		}},
		{&stats.Questions, "questions", func() (int, error) { return svc.deps.Questions.Count(ctx, nil) }},
		{&stats.MinisterialQuestions, "ministerial questions", func() (int, error) {
			return svc.deps.Questions.Count(ctx, &competition.QuestionFilter{Categories: []string{competition.CategoryMinisterial}})
		}},
		{&stats.EnrichmentQuestions, "enrichment questions", func() (int, error) {
			return svc.deps.Questions.Count(ctx, &competition.QuestionFilter{Categories: []string{competition.CategoryEnrichment}})
		}},
	}
	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return Stats{}, errors.Wrap(err, "counting "+c.name)
		}
		*c.dst = n
	}
	return stats, nil
}
