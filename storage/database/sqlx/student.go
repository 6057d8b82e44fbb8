package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/student"
)

const studentColumns = `id, name, username, email, phone, grade_id, birth_date, gender, is_active, password_hash, created_at, updated_at, last_login`

type studentRow struct {
	ID           string      `db:"id"`
	Name         string      `db:"name"`
	Username     string      `db:"username"`
	Email        null.String `db:"email"`
	Phone        null.String `db:"phone"`
	GradeID      string      `db:"grade_id"`
	BirthDate    null.Time   `db:"birth_date"`
	Gender       string      `db:"gender"`
	IsActive     bool        `db:"is_active"`
	PasswordHash null.Bytes  `db:"password_hash"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
	LastLogin    null.Time   `db:"last_login"`
}

func toStudentRow(s student.Student) studentRow {
	return studentRow{
		ID:           s.ID,
		Name:         s.Name,
		Username:     s.Username,
		Email:        null.NewString(s.Email, s.Email != ""),
		Phone:        null.NewString(s.Phone, s.Phone != ""),
		GradeID:      s.GradeID,
		BirthDate:    null.NewTime(s.BirthDate.UTC(), !s.BirthDate.IsZero()),
		Gender:       s.Gender,
		IsActive:     s.Active(),
		PasswordHash: null.NewBytes(s.PasswordHash, s.PasswordHash != nil),
		CreatedAt:    s.CreatedAt.UTC(),
		UpdatedAt:    s.UpdatedAt.UTC(),
		LastLogin:    null.NewTime(s.LastLogin.UTC(), !s.LastLogin.IsZero()),
	}
}

func (row studentRow) model() student.Student {
	s := student.Student{
		ID:           row.ID,
		Name:         row.Name,
		Username:     row.Username,
		Email:        row.Email.String,
		Phone:        row.Phone.String,
		GradeID:      row.GradeID,
		Gender:       row.Gender,
		PasswordHash: row.PasswordHash.Bytes,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
	if row.BirthDate.Valid {
		s.BirthDate = row.BirthDate.Time.UTC()
	}
	if row.LastLogin.Valid {
		s.LastLogin = row.LastLogin.Time.UTC()
	}
	s.SetActive(row.IsActive)
	return s
}

type studentRepository struct {
	baseRepo
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{baseRepo{db: db}}
}

func studentWhere(filter *student.QueryFilter) *where {
	w := &where{}
	if filter == nil {
		return w
	}
	w.inIDs("id", filter.IDs)
	w.search(filter.Search, "name", "username", "email", "phone")
	w.inIDs("grade_id", filter.GradeIDs)
	if filter.Gender != "" {
		w.add("gender = ?", filter.Gender)
	}
	if filter.IsActive != nil {
		w.add("is_active = ?", *filter.IsActive)
	}
	return w
}

func (repo studentRepository) CheckUniqueness(ctx context.Context, username, email, phone, excludedID string, exec ...core.DBExecutor) error {
	w := &where{}
	w.add("(username = ? OR email = ? OR phone = ?)", username, email, phone)
	if validID(excludedID) {
		w.add("id <> ?", excludedID)
	}

	var rows []studentRow
	if err := repo.selectRows(ctx, exec, &rows, "SELECT "+studentColumns+" FROM student"+w.sql()+" LIMIT 1", w.args...); err != nil {
		return errors.Wrap(err, "checking student uniqueness")
	}
	if len(rows) == 0 {
		return nil
	}
	switch s := rows[0]; {
	case username != "" && s.Username == username:
		return student.ErrUsernameExists
	case email != "" && s.Email.String == email:
		return student.ErrEmailExists
	default:
		return student.ErrPhoneExists
	}
}

func (repo studentRepository) CreateStudent(ctx context.Context, s student.Student, exec ...core.DBExecutor) (student.Student, error) {
	s.ID = uuid.New().String()
	row := toStudentRow(s)
	err := repo.insert(ctx, exec, `INSERT INTO student (`+studentColumns+`) VALUES (
		:id, :name, :username, :email, :phone, :grade_id, :birth_date, :gender, :is_active, :password_hash, :created_at, :updated_at, :last_login)`, row)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return row.model(), nil
}

func (repo studentRepository) QueryStudents(ctx context.Context, filter *student.QueryFilter, params core.ListParams, exec ...core.DBExecutor) ([]student.Student, error) {
	w := studentWhere(filter)
	var rows []studentRow
	q := "SELECT " + studentColumns + " FROM student" + w.sql() + orderBy(params, student.OrderFields)
	if err := repo.selectRows(ctx, exec, &rows, q, w.args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.model())
	}
	return students, nil
}

func (repo studentRepository) CountStudents(ctx context.Context, filter *student.QueryFilter, exec ...core.DBExecutor) (int, error) {
	n, err := repo.count(ctx, exec, "student", studentWhere(filter))
	return n, errors.Wrap(err, "counting students")
}

func (repo studentRepository) GetStudent(ctx context.Context, id string, exec ...core.DBExecutor) (student.Student, error) {
	if !validID(id) {
		return student.Student{}, student.ErrNotFound
	}
	var row studentRow
	if err := repo.getRow(ctx, exec, &row, "SELECT "+studentColumns+" FROM student WHERE id = ?", id); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "finding student")
	}
	return row.model(), nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, s student.Student, exec ...core.DBExecutor) (student.Student, error) {
	if !validID(s.ID) {
		return student.Student{}, student.ErrNotFound
	}
	row := toStudentRow(s)
	found, err := repo.update(ctx, exec, `UPDATE student SET
		name = :name, username = :username, email = :email, phone = :phone, grade_id = :grade_id,
		birth_date = :birth_date, gender = :gender, is_active = :is_active, password_hash = :password_hash,
		updated_at = :updated_at, last_login = :last_login
		WHERE id = :id`, row)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if !found {
		return student.Student{}, student.ErrNotFound
	}
	return row.model(), nil
}

func (repo studentRepository) DeleteStudentsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	n, err := repo.deleteByID(ctx, exec, "student", ids)
	return n, errors.Wrap(err, "deleting students")
}
