package inmemdb

import (
	"context"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/academic"
)

type gradeRepository struct {
	db *table[academic.Grade]
}

var _ academic.GradeRepository = (*gradeRepository)(nil)

func NewGradeRepository(db *DB) academic.GradeRepository {
	return &gradeRepository{db: db.grades}
}

func (repo *gradeRepository) CreateGrade(_ context.Context, grade academic.Grade, _ ...core.DBExecutor) (academic.Grade, error) {
	return repo.db.insert(grade), nil
}

func (repo *gradeRepository) QueryGrades(_ context.Context, filter *academic.GradeFilter, params core.ListParams, _ ...core.DBExecutor) ([]academic.Grade, error) {
	return repo.db.query(filter.Match, params), nil
}

func (repo *gradeRepository) CountGrades(_ context.Context, filter *academic.GradeFilter, _ ...core.DBExecutor) (int, error) {
	return repo.db.count(filter.Match), nil
}

func (repo *gradeRepository) GetGrade(_ context.Context, id string, _ ...core.DBExecutor) (academic.Grade, error) {
	if grade, ok := repo.db.get(id); ok {
		return grade, nil
	}
	return academic.Grade{}, academic.ErrGradeNotFound
}

func (repo *gradeRepository) UpdateGrade(_ context.Context, grade academic.Grade, _ ...core.DBExecutor) (academic.Grade, error) {
	if !repo.db.update(grade) {
		return academic.Grade{}, academic.ErrGradeNotFound
	}
	return grade, nil
}

func (repo *gradeRepository) DeleteGradesByID(_ context.Context, ids []string, _ ...core.DBExecutor) (int, error) {
	return repo.db.delete(ids), nil
}

type curriculumRepository struct {
	db *table[academic.Curriculum]
}

var _ academic.CurriculumRepository = (*curriculumRepository)(nil)

func NewCurriculumRepository(db *DB) academic.CurriculumRepository {
	return &curriculumRepository{db: db.curriculums}
}

func (repo *curriculumRepository) CreateCurriculum(_ context.Context, cur academic.Curriculum, _ ...core.DBExecutor) (academic.Curriculum, error) {
	return repo.db.insert(cur), nil
}

func (repo *curriculumRepository) QueryCurriculums(_ context.Context, filter *academic.CurriculumFilter, params core.ListParams, _ ...core.DBExecutor) ([]academic.Curriculum, error) {
	return repo.db.query(filter.Match, params), nil
}

func (repo *curriculumRepository) CountCurriculums(_ context.Context, filter *academic.CurriculumFilter, _ ...core.DBExecutor) (int, error) {
	return repo.db.count(filter.Match), nil
}

func (repo *curriculumRepository) GetCurriculum(_ context.Context, id string, _ ...core.DBExecutor) (academic.Curriculum, error) {
	if cur, ok := repo.db.get(id); ok {
		return cur, nil
	}
	return academic.Curriculum{}, academic.ErrCurriculumNotFound
}

func (repo *curriculumRepository) UpdateCurriculum(_ context.Context, cur academic.Curriculum, _ ...core.DBExecutor) (academic.Curriculum, error) {
	if !repo.db.update(cur) {
		return academic.Curriculum{}, academic.ErrCurriculumNotFound
	}
	return cur, nil
}

func (repo *curriculumRepository) DeleteCurriculumsByID(_ context.Context, ids []string, _ ...core.DBExecutor) (int, error) {
	return repo.db.delete(ids), nil
}

type subjectRepository struct {
	db *table[academic.Subject]
}

var _ academic.SubjectRepository = (*subjectRepository)(nil)

func NewSubjectRepository(db *DB) academic.SubjectRepository {
	return &subjectRepository{db: db.subjects}
}

func (repo *subjectRepository) CreateSubject(_ context.Context, sub academic.Subject, _ ...core.DBExecutor) (academic.Subject, error) {
	return repo.db.insert(sub), nil
}

func (repo *subjectRepository) QuerySubjects(_ context.Context, filter *academic.SubjectFilter, params core.ListParams, _ ...core.DBExecutor) ([]academic.Subject, error) {
	return repo.db.query(filter.Match, params), nil
}

func (repo *subjectRepository) CountSubjects(_ context.Context, filter *academic.SubjectFilter, _ ...core.DBExecutor) (int, error) {
	return repo.db.count(filter.Match), nil
}

func (repo *subjectRepository) GetSubject(_ context.Context, id string, _ ...core.DBExecutor) (academic.Subject, error) {
	if sub, ok := repo.db.get(id); ok {
		return sub, nil
	}
	return academic.Subject{}, academic.ErrSubjectNotFound
}

func (repo *subjectRepository) UpdateSubject(_ context.Context, sub academic.Subject, _ ...core.DBExecutor) (academic.Subject, error) {
	if !repo.db.update(sub) {
		return academic.Subject{}, academic.ErrSubjectNotFound
	}
	return sub, nil
}

func (repo *subjectRepository) DeleteSubjectsByID(_ context.Context, ids []string, _ ...core.DBExecutor) (int, error) {
	return repo.db.delete(ids), nil
}

type unitRepository struct {
	db *table[academic.Unit]
}

var _ academic.UnitRepository = (*unitRepository)(nil)

func NewUnitRepository(db *DB) academic.UnitRepository {
	return &unitRepository{db: db.units}
}

func (repo *unitRepository) CreateUnit(_ context.Context, unit academic.Unit, _ ...core.DBExecutor) (academic.Unit, error) {
	return repo.db.insert(unit), nil
}

func (repo *unitRepository) QueryUnits(_ context.Context, filter *academic.UnitFilter, params core.ListParams, _ ...core.DBExecutor) ([]academic.Unit, error) {
	return repo.db.query(filter.Match, params), nil
}

func (repo *unitRepository) CountUnits(_ context.Context, filter *academic.UnitFilter, _ ...core.DBExecutor) (int, error) {
	return repo.db.count(filter.Match), nil
}

func (repo *unitRepository) GetUnit(_ context.Context, id string, _ ...core.DBExecutor) (academic.Unit, error) {
	if unit, ok := repo.db.get(id); ok {
		return unit, nil
	}
	return academic.Unit{}, academic.ErrUnitNotFound
}

func (repo *unitRepository) UpdateUnit(_ context.Context, unit academic.Unit, _ ...core.DBExecutor) (academic.Unit, error) {
	if !repo.db.update(unit) {
		return academic.Unit{}, academic.ErrUnitNotFound
	}
	return unit, nil
}

func (repo *unitRepository) DeleteUnitsByID(_ context.Context, ids []string, _ ...core.DBExecutor) (int, error) {
	return repo.db.delete(ids), nil
}

type lessonRepository struct {
	db *table[academic.Lesson]
}

var _ academic.LessonRepository = (*lessonRepository)(nil)

func NewLessonRepository(db *DB) academic.LessonRepository {
	return &lessonRepository{db: db.lessons}
}

func (repo *lessonRepository) CreateLesson(_ context.Context, lesson academic.Lesson, _ ...core.DBExecutor) (academic.Lesson, error) {
	return repo.db.insert(lesson), nil
}

func (repo *lessonRepository) QueryLessons(_ context.Context, filter *academic.LessonFilter, params core.ListParams, _ ...core.DBExecutor) ([]academic.Lesson, error) {
	return repo.db.query(filter.Match, params), nil
}

func (repo *lessonRepository) CountLessons(_ context.Context, filter *academic.LessonFilter, _ ...core.DBExecutor) (int, error) {
	return repo.db.count(filter.Match), nil
}

func (repo *lessonRepository) GetLesson(_ context.Context, id string, _ ...core.DBExecutor) (academic.Lesson, error) {
	if lesson, ok := repo.db.get(id); ok {
		return lesson, nil
	}
	return academic.Lesson{}, academic.ErrLessonNotFound
}

func (repo *lessonRepository) UpdateLesson(_ context.Context, lesson academic.Lesson, _ ...core.DBExecutor) (academic.Lesson, error) {
	if !repo.db.update(lesson) {
		return academic.Lesson{}, academic.ErrLessonNotFound
	}
	return lesson, nil
}

func (repo *lessonRepository) DeleteLessonsByID(_ context.Context, ids []string, _ ...core.DBExecutor) (int, error) {
	return repo.db.delete(ids), nil
}
