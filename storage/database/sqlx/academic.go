package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/academic"
)

// The row types mirror the academic models field for field so that they convert directly.
type (
	gradeRow struct {
		ID        string    `db:"id"`
		Name      string    `db:"name"`
		Level     int       `db:"level"`
		Stage     string    `db:"stage"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}

	curriculumRow struct {
		ID        string    `db:"id"`
		Name      string    `db:"name"`
		GradeID   string    `db:"grade_id"`
		Year      int       `db:"year"`
		Semester  int       `db:"semester"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}

	subjectRow struct {
		ID           string    `db:"id"`
		Name         string    `db:"name"`
		CurriculumID string    `db:"curriculum_id"`
		Color        string    `db:"color"`
		CreatedAt    time.Time `db:"created_at"`
		UpdatedAt    time.Time `db:"updated_at"`
	}

	unitRow struct {
		ID        string    `db:"id"`
		Name      string    `db:"name"`
		SubjectID string    `db:"subject_id"`
		Position  int       `db:"position"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}

	lessonRow struct {
		ID              string    `db:"id"`
		Title           string    `db:"title"`
		UnitID          string    `db:"unit_id"`
		Position        int       `db:"position"`
		Content         string    `db:"content"`
		DurationMinutes int       `db:"duration_minutes"`
		CreatedAt       time.Time `db:"created_at"`
		UpdatedAt       time.Time `db:"updated_at"`
	}
)

// Grade

type gradeRepository struct {
	t table[academic.Grade, gradeRow]
}

var _ academic.GradeRepository = (*gradeRepository)(nil)

func NewGradeRepository(db *sqlx.DB) academic.GradeRepository {
	return &gradeRepository{t: table[academic.Grade, gradeRow]{
		baseRepo:    baseRepo{db: db},
		name:        "grade",
		columns:     []string{"id", "name", "level", "stage", "created_at", "updated_at"},
		orderFields: academic.GradeOrderFields,
		notFound:    academic.ErrGradeNotFound,
		toRow:       func(g academic.Grade) gradeRow { return gradeRow(g) },
		toModel:     func(r gradeRow) academic.Grade { return academic.Grade(r) },
		setID:       func(g *academic.Grade, id string) { g.ID = id },
	}}
}

func gradeWhere(filter *academic.GradeFilter) *where {
	w := &where{}
	if filter == nil {
		return w
	}
	w.inIDs("id", filter.IDs)
	w.search(filter.Search, "name")
	w.in("stage", filter.Stages)
	if filter.Level != 0 {
		w.add("level = ?", filter.Level)
	}
	return w
}

func (repo gradeRepository) CreateGrade(ctx context.Context, grade academic.Grade, exec ...core.DBExecutor) (academic.Grade, error) {
	return repo.t.create(ctx, exec, grade)
}

func (repo gradeRepository) QueryGrades(ctx context.Context, filter *academic.GradeFilter, params core.ListParams, exec ...core.DBExecutor) ([]academic.Grade, error) {
	return repo.t.query(ctx, exec, gradeWhere(filter), params)
}

func (repo gradeRepository) CountGrades(ctx context.Context, filter *academic.GradeFilter, exec ...core.DBExecutor) (int, error) {
	return repo.t.countWhere(ctx, exec, gradeWhere(filter))
}

func (repo gradeRepository) GetGrade(ctx context.Context, id string, exec ...core.DBExecutor) (academic.Grade, error) {
	return repo.t.get(ctx, exec, id)
}

func (repo gradeRepository) UpdateGrade(ctx context.Context, grade academic.Grade, exec ...core.DBExecutor) (academic.Grade, error) {
	return repo.t.save(ctx, exec, grade.ID, grade)
}

func (repo gradeRepository) DeleteGradesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	return repo.t.remove(ctx, exec, ids)
}

// Curriculum

type curriculumRepository struct {
	t table[academic.Curriculum, curriculumRow]
}

var _ academic.CurriculumRepository = (*curriculumRepository)(nil)

func NewCurriculumRepository(db *sqlx.DB) academic.CurriculumRepository {
	return &curriculumRepository{t: table[academic.Curriculum, curriculumRow]{
		baseRepo:    baseRepo{db: db},
		name:        "curriculum",
		columns:     []string{"id", "name", "grade_id", "year", "semester", "created_at", "updated_at"},
		orderFields: academic.CurriculumOrderFields,
		notFound:    academic.ErrCurriculumNotFound,
		toRow:       func(c academic.Curriculum) curriculumRow { return curriculumRow(c) },
		toModel:     func(r curriculumRow) academic.Curriculum { return academic.Curriculum(r) },
		setID:       func(c *academic.Curriculum, id string) { c.ID = id },
	}}
}

func curriculumWhere(filter *academic.CurriculumFilter) *where {
	w := &where{}
	if filter == nil {
		return w
	}
	w.inIDs("id", filter.IDs)
	w.search(filter.Search, "name")
	w.inIDs("grade_id", filter.GradeIDs)
	if filter.Year != 0 {
		w.add("year = ?", filter.Year)
	}
	if filter.Semester != 0 {
		w.add("semester = ?", filter.Semester)
	}
	return w
}

func (repo curriculumRepository) CreateCurriculum(ctx context.Context, cur academic.Curriculum, exec ...core.DBExecutor) (academic.Curriculum, error) {
	return repo.t.create(ctx, exec, cur)
}

func (repo curriculumRepository) QueryCurriculums(ctx context.Context, filter *academic.CurriculumFilter, params core.ListParams, exec ...core.DBExecutor) ([]academic.Curriculum, error) {
	return repo.t.query(ctx, exec, curriculumWhere(filter), params)
}

func (repo curriculumRepository) CountCurriculums(ctx context.Context, filter *academic.CurriculumFilter, exec ...core.DBExecutor) (int, error) {
	return repo.t.countWhere(ctx, exec, curriculumWhere(filter))
}

func (repo curriculumRepository) GetCurriculum(ctx context.Context, id string, exec ...core.DBExecutor) (academic.Curriculum, error) {
	return repo.t.get(ctx, exec, id)
}

func (repo curriculumRepository) UpdateCurriculum(ctx context.Context, cur academic.Curriculum, exec ...core.DBExecutor) (academic.Curriculum, error) {
	return repo.t.save(ctx, exec, cur.ID, cur)
}

func (repo curriculumRepository) DeleteCurriculumsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	return repo.t.remove(ctx, exec, ids)
}

// Subject

type subjectRepository struct {
	t table[academic.Subject, subjectRow]
}

var _ academic.SubjectRepository = (*subjectRepository)(nil)

func NewSubjectRepository(db *sqlx.DB) academic.SubjectRepository {
	return &subjectRepository{t: table[academic.Subject, subjectRow]{
		baseRepo:    baseRepo{db: db},
		name:        "subject",
		columns:     []string{"id", "name", "curriculum_id", "color", "created_at", "updated_at"},
		orderFields: academic.SubjectOrderFields,
		notFound:    academic.ErrSubjectNotFound,
		toRow:       func(s academic.Subject) subjectRow { return subjectRow(s) },
		toModel:     func(r subjectRow) academic.Subject { return academic.Subject(r) },
		setID:       func(s *academic.Subject, id string) { s.ID = id },
	}}
}

func subjectWhere(filter *academic.SubjectFilter) *where {
	w := &where{}
	if filter == nil {
		return w
	}
	w.inIDs("id", filter.IDs)
	w.search(filter.Search, "name")
	w.inIDs("curriculum_id", filter.CurriculumIDs)
	return w
}

func (repo subjectRepository) CreateSubject(ctx context.Context, sub academic.Subject, exec ...core.DBExecutor) (academic.Subject, error) {
	return repo.t.create(ctx, exec, sub)
}

func (repo subjectRepository) QuerySubjects(ctx context.Context, filter *academic.SubjectFilter, params core.ListParams, exec ...core.DBExecutor) ([]academic.Subject, error) {
	return repo.t.query(ctx, exec, subjectWhere(filter), params)
}

func (repo subjectRepository) CountSubjects(ctx context.Context, filter *academic.SubjectFilter, exec ...core.DBExecutor) (int, error) {
	return repo.t.countWhere(ctx, exec, subjectWhere(filter))
}

func (repo subjectRepository) GetSubject(ctx context.Context, id string, exec ...core.DBExecutor) (academic.Subject, error) {
	return repo.t.get(ctx, exec, id)
}

func (repo subjectRepository) UpdateSubject(ctx context.Context, sub academic.Subject, exec ...core.DBExecutor) (academic.Subject, error) {
	return repo.t.save(ctx, exec, sub.ID, sub)
}

func (repo subjectRepository) DeleteSubjectsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	return repo.t.remove(ctx, exec, ids)
}

// Unit

type unitRepository struct {
	t table[academic.Unit, unitRow]
}

var _ academic.UnitRepository = (*unitRepository)(nil)

func NewUnitRepository(db *sqlx.DB) academic.UnitRepository {
	return &unitRepository{t: table[academic.Unit, unitRow]{
		baseRepo:    baseRepo{db: db},
		name:        "unit",
		columns:     []string{"id", "name", "subject_id", "position", "created_at", "updated_at"},
		orderFields: academic.UnitOrderFields,
		notFound:    academic.ErrUnitNotFound,
		toRow:       func(u academic.Unit) unitRow { return unitRow(u) },
		toModel:     func(r unitRow) academic.Unit { return academic.Unit(r) },
		setID:       func(u *academic.Unit, id string) { u.ID = id },
	}}
}

func unitWhere(filter *academic.UnitFilter) *where {
	w := &where{}
	if filter == nil {
		return w
	}
	w.inIDs("id", filter.IDs)
	w.search(filter.Search, "name")
	w.inIDs("subject_id", filter.SubjectIDs)
	return w
}

func (repo unitRepository) CreateUnit(ctx context.Context, unit academic.Unit, exec ...core.DBExecutor) (academic.Unit, error) {
	return repo.t.create(ctx, exec, unit)
}

func (repo unitRepository) QueryUnits(ctx context.Context, filter *academic.UnitFilter, params core.ListParams, exec ...core.DBExecutor) ([]academic.Unit, error) {
	return repo.t.query(ctx, exec, unitWhere(filter), params)
}

func (repo unitRepository) CountUnits(ctx context.Context, filter *academic.UnitFilter, exec ...core.DBExecutor) (int, error) {
	return repo.t.countWhere(ctx, exec, unitWhere(filter))
}

func (repo unitRepository) GetUnit(ctx context.Context, id string, exec ...core.DBExecutor) (academic.Unit, error) {
	return repo.t.get(ctx, exec, id)
}

func (repo unitRepository) UpdateUnit(ctx context.Context, unit academic.Unit, exec ...core.DBExecutor) (academic.Unit, error) {
	return repo.t.save(ctx, exec, unit.ID, unit)
}

func (repo unitRepository) DeleteUnitsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	return repo.t.remove(ctx, exec, ids)
}

// Lesson

type lessonRepository struct {
	t table[academic.Lesson, lessonRow]
}

var _ academic.LessonRepository = (*lessonRepository)(nil)

func NewLessonRepository(db *sqlx.DB) academic.LessonRepository {
	return &lessonRepository{t: table[academic.Lesson, lessonRow]{
		baseRepo:    baseRepo{db: db},
		name:        "lesson",
		columns:     []string{"id", "title", "unit_id", "position", "content", "duration_minutes", "created_at", "updated_at"},
		orderFields: academic.LessonOrderFields,
		notFound:    academic.ErrLessonNotFound,
		toRow:       func(l academic.Lesson) lessonRow { return lessonRow(l) },
		toModel:     func(r lessonRow) academic.Lesson { return academic.Lesson(r) },
		setID:       func(l *academic.Lesson, id string) { l.ID = id },
	}}
}

func lessonWhere(filter *academic.LessonFilter) *where {
	w := &where{}
	if filter == nil {
		return w
	}
	w.inIDs("id", filter.IDs)
	w.search(filter.Search, "title", "content")
	w.inIDs("unit_id", filter.UnitIDs)
	return w
}

func (repo lessonRepository) CreateLesson(ctx context.Context, lesson academic.Lesson, exec ...core.DBExecutor) (academic.Lesson, error) {
	return repo.t.create(ctx, exec, lesson)
}

func (repo lessonRepository) QueryLessons(ctx context.Context, filter *academic.LessonFilter, params core.ListParams, exec ...core.DBExecutor) ([]academic.Lesson, error) {
	return repo.t.query(ctx, exec, lessonWhere(filter), params)
}

func (repo lessonRepository) CountLessons(ctx context.Context, filter *academic.LessonFilter, exec ...core.DBExecutor) (int, error) {
	return repo.t.countWhere(ctx, exec, lessonWhere(filter))
}

func (repo lessonRepository) GetLesson(ctx context.Context, id string, exec ...core.DBExecutor) (academic.Lesson, error) {
	return repo.t.get(ctx, exec, id)
}

func (repo lessonRepository) UpdateLesson(ctx context.Context, lesson academic.Lesson, exec ...core.DBExecutor) (academic.Lesson, error) {
	return repo.t.save(ctx, exec, lesson.ID, lesson)
}

func (repo lessonRepository) DeleteLessonsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	return repo.t.remove(ctx, exec, ids)
}
