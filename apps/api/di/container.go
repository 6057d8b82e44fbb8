// Package di assembles the API dependencies by hand.
package di

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	echoapi "github.com/Nebras-project/nebras-dashboard/apps/api/echo"
	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/academic"
	"github.com/Nebras-project/nebras-dashboard/core/competition"
	"github.com/Nebras-project/nebras-dashboard/core/overview"
	"github.com/Nebras-project/nebras-dashboard/core/student"
	"github.com/Nebras-project/nebras-dashboard/core/user"
	emailsvc "github.com/Nebras-project/nebras-dashboard/services/email"
	logsvc "github.com/Nebras-project/nebras-dashboard/services/logger"
	"github.com/Nebras-project/nebras-dashboard/storage/cache"
	"github.com/Nebras-project/nebras-dashboard/storage/database"
	inmemdb "github.com/Nebras-project/nebras-dashboard/storage/database/inmem"
	sqlxrepos "github.com/Nebras-project/nebras-dashboard/storage/database/sqlx"
)

// Repositories groups one repository per entity.
type Repositories struct {
	Users        user.Repository
	Students     student.Repository
	Grades       academic.GradeRepository
	Curriculums  academic.CurriculumRepository
	Subjects     academic.SubjectRepository
	Units        academic.UnitRepository
	Lessons      academic.LessonRepository
	Competitions competition.Repository
	Questions    competition.QuestionRepository
}

func NewInMemoryRepositories(db *inmemdb.DB) Repositories {
	return Repositories{
		Users:        inmemdb.NewUserRepository(db),
		Students:     inmemdb.NewStudentRepository(db),
		Grades:       inmemdb.NewGradeRepository(db),
		Curriculums:  inmemdb.NewCurriculumRepository(db),
		Subjects:     inmemdb.NewSubjectRepository(db),
		Units:        inmemdb.NewUnitRepository(db),
		Lessons:      inmemdb.NewLessonRepository(db),
		Competitions: inmemdb.NewCompetitionRepository(db),
		Questions:    inmemdb.NewQuestionRepository(db),
	}
}

func NewSQLRepositories(db *sqlx.DB) Repositories {
	return Repositories{
		Users:        sqlxrepos.NewUserRepository(db),
		Students:     sqlxrepos.NewStudentRepository(db),
		Grades:       sqlxrepos.NewGradeRepository(db),
		Curriculums:  sqlxrepos.NewCurriculumRepository(db),
		Subjects:     sqlxrepos.NewSubjectRepository(db),
		Units:        sqlxrepos.NewUnitRepository(db),
		Lessons:      sqlxrepos.NewLessonRepository(db),
		Competitions: sqlxrepos.NewCompetitionRepository(db),
		Questions:    sqlxrepos.NewQuestionRepository(db),
	}
}

func NewLogger(conf *core.Config, prefix string) *logsvc.RollbarLogger {
	stdLogger := log.New(os.Stdout, prefix, log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

// NewValidation returns a validator whose messages are translated in every supported language.
func NewValidation() (*validator.Validate, *ut.UniversalTranslator) {
	validate := validator.New()
	uni := core.NewUniversalTranslator()
	core.InitValidators(validate, uni)
	user.InitValidators(validate, uni)
	competition.InitValidators(validate, uni)
	return validate, uni
}

func NewEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	switch {
	case conf.TestMode:
		return emailsvc.NewConsoleServiceMock(conf, logger)
	case conf.Debug || conf.SendgridApiKey == "":
		return emailsvc.NewConsoleService(conf, logger)
	default:
		return emailsvc.NewSendgridService(conf, logger)
	}
}

// SetUpDB creates the database when needed, opens it and applies the pending migrations.
func SetUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, errors.Wrap(err, "creating database")
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	if err = database.Migrate(db.DB, "up"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "migrating database")
	}
	return db, nil
}

// NewServerDeps builds the services on repos. Records cannot be deleted while
// the references wired here still point at them.
func NewServerDeps(
	conf *core.Config,
	logger core.Logger,
	validate *validator.Validate,
	uni *ut.UniversalTranslator,
	repos Repositories,
	mailSvc core.EmailService,
	statsCache overview.Cache,
) echoapi.ServerDeps {
	curriculumsByGrade := core.Reference{Field: "curriculums", Count: func(ctx context.Context, ids []string) (int, error) {
		return repos.Curriculums.CountCurriculums(ctx, &academic.CurriculumFilter{GradeIDs: ids})
	}}
	studentsByGrade := core.Reference{Field: "students", Count: func(ctx context.Context, ids []string) (int, error) {
		return repos.Students.CountStudents(ctx, &student.QueryFilter{GradeIDs: ids})
	}}
	competitionsByGrade := core.Reference{Field: "competitions", Count: func(ctx context.Context, ids []string) (int, error) {
		return repos.Competitions.CountCompetitions(ctx, &competition.Filter{GradeIDs: ids})
	}}
	subjectsByCurriculum := core.Reference{Field: "subjects", Count: func(ctx context.Context, ids []string) (int, error) {
		return repos.Subjects.CountSubjects(ctx, &academic.SubjectFilter{CurriculumIDs: ids})
	}}
	unitsBySubject := core.Reference{Field: "units", Count: func(ctx context.Context, ids []string) (int, error) {
		return repos.Units.CountUnits(ctx, &academic.UnitFilter{SubjectIDs: ids})
	}}
	competitionsBySubject := core.Reference{Field: "competitions", Count: func(ctx context.Context, ids []string) (int, error) {
		return repos.Competitions.CountCompetitions(ctx, &competition.Filter{SubjectIDs: ids})
	}}
	lessonsByUnit := core.Reference{Field: "lessons", Count: func(ctx context.Context, ids []string) (int, error) {
		return repos.Lessons.CountLessons(ctx, &academic.LessonFilter{UnitIDs: ids})
	}}
	questionsByLesson := core.Reference{Field: "questions", Count: func(ctx context.Context, ids []string) (int, error) {
		return repos.Questions.CountQuestions(ctx, &competition.QuestionFilter{LessonIDs: ids})
	}}
	questionsByCompetition := core.Reference{Field: "questions", Count: func(ctx context.Context, ids []string) (int, error) {
		return repos.Questions.CountQuestions(ctx, &competition.QuestionFilter{CompetitionIDs: ids})
	}}

	deps := overview.Deps{
		Users:    user.NewService(repos.Users, mailSvc, conf),
		Students: student.NewService(validate, repos.Students, repos.Grades),
		Grades: academic.NewGradeService(validate, repos.Grades,
			curriculumsByGrade, studentsByGrade, competitionsByGrade),
		Curriculums: academic.NewCurriculumService(validate, repos.Curriculums, repos.Grades, subjectsByCurriculum),
		Subjects: academic.NewSubjectService(validate, repos.Subjects, repos.Curriculums,
			unitsBySubject, competitionsBySubject),
		Units:        academic.NewUnitService(validate, repos.Units, repos.Subjects, lessonsByUnit),
		Lessons:      academic.NewLessonService(validate, repos.Lessons, repos.Units, questionsByLesson),
		Competitions: competition.NewService(validate, repos.Competitions, repos.Grades, repos.Subjects, questionsByCompetition),
		Questions:    competition.NewQuestionService(validate, repos.Questions, repos.Lessons, repos.Competitions),
	}

	return echoapi.ServerDeps{
		Conf:           conf,
		Logger:         logger,
		Validate:       validate,
		Translator:     uni,
		UserSvc:        deps.Users,
		StudentSvc:     deps.Students,
		GradeSvc:       deps.Grades,
		CurriculumSvc:  deps.Curriculums,
		SubjectSvc:     deps.Subjects,
		UnitSvc:        deps.Units,
		LessonSvc:      deps.Lessons,
		CompetitionSvc: deps.Competitions,
		QuestionSvc:    deps.Questions,
		OverviewSvc:    overview.NewService(deps, statsCache, conf.Redis.OverviewTTL, logger),
		DisableReqLogs: conf.TestMode,
	}
}

// Container owns the long-lived resources of the API process.
type Container struct {
	Conf     *core.Config
	Logger   *logsvc.RollbarLogger
	DBLogger *logsvc.RollbarLogger
	Deps     echoapi.ServerDeps

	closers []func() error
}

// NewContainer wires the API on postgres, or on the in-memory store when conf.Database.InMemory is set.
func NewContainer(ctx context.Context, conf *core.Config) (*Container, error) {
	c := &Container{
		Conf:     conf,
		Logger:   NewLogger(conf, "API : "),
		DBLogger: NewLogger(conf, "DB : "),
	}

	var repos Repositories
	if conf.Database.InMemory {
		c.Logger.Warn("using the in-memory database: data is lost on exit")
		repos = NewInMemoryRepositories(inmemdb.Open())
	} else {
		db, err := SetUpDB(conf)
		if err != nil {
			return nil, errors.Wrap(err, "setting up database")
		}
		c.closers = append(c.closers, db.Close)
		repos = NewSQLRepositories(db)
	}

	statsCache, closeCache := cache.New(ctx, conf, c.Logger)
	c.closers = append(c.closers, closeCache)

	validate, uni := NewValidation()
	core.ParseEmailTemplates(c.Logger, conf)
	user.LoadCommonPasswords(c.Logger)

	c.Deps = NewServerDeps(conf, c.Logger, validate, uni, repos, NewEmailService(conf, c.Logger), statsCache)
	return c, nil
}

// Close releases the resources in reverse order of acquisition.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.DBLogger.Error(fmt.Sprintf("closing: %v", err), err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	c.Logger.Close()
	c.DBLogger.Close()
	return firstErr
}
