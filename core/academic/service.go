package academic

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
)

var (
	// errors
	ErrGradeNotFound      = core.NewNotFoundError("grade")
	ErrCurriculumNotFound = core.NewNotFoundError("curriculum")
	ErrSubjectNotFound    = core.NewNotFoundError("subject")
	ErrUnitNotFound       = core.NewNotFoundError("unit")
	ErrLessonNotFound     = core.NewNotFoundError("lesson")
)

type (
	GradeRepository interface {
		CreateGrade(ctx context.Context, grade Grade, exec ...core.DBExecutor) (Grade, error)
		QueryGrades(ctx context.Context, filter *GradeFilter, params core.ListParams, exec ...core.DBExecutor) ([]Grade, error)
		CountGrades(ctx context.Context, filter *GradeFilter, exec ...core.DBExecutor) (int, error)
		GetGrade(ctx context.Context, id string, exec ...core.DBExecutor) (Grade, error)
		UpdateGrade(ctx context.Context, grade Grade, exec ...core.DBExecutor) (Grade, error)
		DeleteGradesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	CurriculumRepository interface {
		CreateCurriculum(ctx context.Context, cur Curriculum, exec ...core.DBExecutor) (Curriculum, error)
		QueryCurriculums(ctx context.Context, filter *CurriculumFilter, params core.ListParams, exec ...core.DBExecutor) ([]Curriculum, error)
		CountCurriculums(ctx context.Context, filter *CurriculumFilter, exec ...core.DBExecutor) (int, error)
		GetCurriculum(ctx context.Context, id string, exec ...core.DBExecutor) (Curriculum, error)
		UpdateCurriculum(ctx context.Context, cur Curriculum, exec ...core.DBExecutor) (Curriculum, error)
		DeleteCurriculumsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	SubjectRepository interface {
		CreateSubject(ctx context.Context, sub Subject, exec ...core.DBExecutor) (Subject, error)
		QuerySubjects(ctx context.Context, filter *SubjectFilter, params core.ListParams, exec ...core.DBExecutor) ([]Subject, error)
		CountSubjects(ctx context.Context, filter *SubjectFilter, exec ...core.DBExecutor) (int, error)
		GetSubject(ctx context.Context, id string, exec ...core.DBExecutor) (Subject, error)
		UpdateSubject(ctx context.Context, sub Subject, exec ...core.DBExecutor) (Subject, error)
		DeleteSubjectsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	UnitRepository interface {
		CreateUnit(ctx context.Context, unit Unit, exec ...core.DBExecutor) (Unit, error)
		QueryUnits(ctx context.Context, filter *UnitFilter, params core.ListParams, exec ...core.DBExecutor) ([]Unit, error)
		CountUnits(ctx context.Context, filter *UnitFilter, exec ...core.DBExecutor) (int, error)
		GetUnit(ctx context.Context, id string, exec ...core.DBExecutor) (Unit, error)
		UpdateUnit(ctx context.Context, unit Unit, exec ...core.DBExecutor) (Unit, error)
		DeleteUnitsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	LessonRepository interface {
		CreateLesson(ctx context.Context, lesson Lesson, exec ...core.DBExecutor) (Lesson, error)
		QueryLessons(ctx context.Context, filter *LessonFilter, params core.ListParams, exec ...core.DBExecutor) ([]Lesson, error)
		CountLessons(ctx context.Context, filter *LessonFilter, exec ...core.DBExecutor) (int, error)
		GetLesson(ctx context.Context, id string, exec ...core.DBExecutor) (Lesson, error)
		UpdateLesson(ctx context.Context, lesson Lesson, exec ...core.DBExecutor) (Lesson, error)
		DeleteLessonsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}
)

// checkParent turns a missing parent record into a validation error on field.
func checkParent(err error, field string) error {
	if err == nil {
		return nil
	}
	if core.IsNotFound(err) {
		return core.NewValidationError(err, core.FieldError{Field: field, Error: core.MsgNotFound})
	}
	return errors.Wrap(err, "finding "+field)
}
