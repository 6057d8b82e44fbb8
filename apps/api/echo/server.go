package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/academic"
	"github.com/Nebras-project/nebras-dashboard/core/competition"
	"github.com/Nebras-project/nebras-dashboard/core/overview"
	"github.com/Nebras-project/nebras-dashboard/core/student"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

// ServerDeps holds everything the API needs to serve requests.
type ServerDeps struct {
	Conf           *core.Config
	Logger         core.Logger
	Validate       *validator.Validate
	Translator     *ut.UniversalTranslator
	UserSvc        user.Service
	StudentSvc     student.Service
	GradeSvc       academic.GradeService
	CurriculumSvc  academic.CurriculumService
	SubjectSvc     academic.SubjectService
	UnitSvc        academic.UnitService
	LessonSvc      academic.LessonService
	CompetitionSvc competition.Service
	QuestionSvc    competition.QuestionService
	OverviewSvc    overview.Service
	DisableReqLogs bool
}

type Server struct {
	deps     ServerDeps
	app      *echo.Echo
	auth     *authenticator
	errors   chan error
	shutdown chan os.Signal
}

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		auth:     newAuthenticator(deps.Conf, deps.UserSvc),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  conf.Server.CORSOrigins,
		ExposeHeaders: []string{totalCountHeader},
	}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug
	s.app.Logger.SetLevel(log.INFO)

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(s.auth.jwtConfig)
	invalidate := invalidateOverviewMiddleware(s.deps.OverviewSvc, s.deps.Logger)
	guard := func(roles ...string) []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{jwt, requireRoles(roles...), invalidate}
	}

	registerAuthAPI(v1, jwt, s.auth, s.deps)
	registerMeAPI(v1, jwt, s.auth, s.deps)
	registerStaffAPI(v1.Group("/admins", guard(user.RoleAdmin)...), s.auth, s.deps, user.RoleAdmin)
	registerStaffAPI(v1.Group("/managers", guard(user.RoleAdmin)...), s.auth, s.deps, user.RoleManager)

	registerCRUD[student.Student, student.QueryFilter, student.NewStudent, student.UpdateStudent](
		v1.Group("/students", guard(user.RoleAdmin, user.RoleManager)...),
		s.deps.StudentSvc, student.OrderFields,
	)

	content := guard(user.RoleAdmin, user.RoleManagerContent)
	registerCRUD[academic.Grade, academic.GradeFilter, academic.NewGrade, academic.UpdateGrade](
		v1.Group("/grades", content...), s.deps.GradeSvc, academic.GradeOrderFields,
	)
	registerCRUD[academic.Curriculum, academic.CurriculumFilter, academic.NewCurriculum, academic.UpdateCurriculum](
		v1.Group("/curriculums", content...), s.deps.CurriculumSvc, academic.CurriculumOrderFields,
	)
	registerCRUD[academic.Subject, academic.SubjectFilter, academic.NewSubject, academic.UpdateSubject](
		v1.Group("/subjects", content...), s.deps.SubjectSvc, academic.SubjectOrderFields,
	)
	registerCRUD[academic.Unit, academic.UnitFilter, academic.NewUnit, academic.UpdateUnit](
		v1.Group("/units", content...), s.deps.UnitSvc, academic.UnitOrderFields,
	)
	registerCRUD[academic.Lesson, academic.LessonFilter, academic.NewLesson, academic.UpdateLesson](
		v1.Group("/lessons", content...), s.deps.LessonSvc, academic.LessonOrderFields,
	)

	registerCRUD[competition.Competition, competition.Filter, competition.NewCompetition, competition.UpdateCompetition](
		v1.Group("/competitions", guard(user.RoleAdmin, user.RoleManagerCompetition)...),
		s.deps.CompetitionSvc, competition.OrderFields,
	)
	registerCRUD[competition.Question, competition.QuestionFilter, competition.NewQuestion, competition.UpdateQuestion](
		v1.Group("/questions", guard(user.RoleAdmin, user.RoleManagerCompetition, user.RoleManagerContent)...),
		s.deps.QuestionSvc, competition.QuestionOrderFields,
	)
}

// Start serves until the server is shut down; failures are sent on Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks the owner of the server to shut it down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" dashboard API!")
}
