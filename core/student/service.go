package student

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/academic"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("student")
	ErrUsernameExists = errors.New("a student with this username already exists")
	ErrEmailExists    = errors.New("a student with this email already exists")
	ErrPhoneExists    = errors.New("a student with this phone already exists")
)

type (
	Repository interface {
		// CheckUniqueness returns one of ErrUsernameExists, ErrEmailExists or ErrPhoneExists
		// when a student other than excludedID already holds a value.
		CheckUniqueness(ctx context.Context, username, email, phone, excludedID string, exec ...core.DBExecutor) error
		CreateStudent(ctx context.Context, s Student, exec ...core.DBExecutor) (Student, error)
		QueryStudents(ctx context.Context, filter *QueryFilter, params core.ListParams, exec ...core.DBExecutor) ([]Student, error)
		CountStudents(ctx context.Context, filter *QueryFilter, exec ...core.DBExecutor) (int, error)
		GetStudent(ctx context.Context, id string, exec ...core.DBExecutor) (Student, error)
		UpdateStudent(ctx context.Context, s Student, exec ...core.DBExecutor) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	Service interface {
		Create(ctx context.Context, data NewStudent) (Student, error)
		Query(ctx context.Context, filter *QueryFilter, params core.ListParams) ([]Student, int, error)
		Count(ctx context.Context, filter *QueryFilter) (int, error)
		Get(ctx context.Context, id string) (Student, error)
		Update(ctx context.Context, id string, data UpdateStudent) (Student, error)
		Delete(ctx context.Context, ids ...string) error
	}

	service struct {
		validate *validator.Validate
		repo     Repository
		grades   academic.GradeRepository
	}
)

var _ Service = (*service)(nil)

func NewService(validate *validator.Validate, repo Repository, grades academic.GradeRepository) Service {
	return &service{validate: validate, repo: repo, grades: grades}
}

func (svc *service) checkUniqueness(ctx context.Context, uname, email, phone, exclID string) error {
	if err := svc.repo.CheckUniqueness(ctx, uname, email, phone, exclID); err != nil {
		var field, key string
		switch errors.Cause(err) {
		case ErrUsernameExists:
			field, key = "username", core.MsgUsernameExists
		case ErrEmailExists:
			field, key = "email", core.MsgEmailExists
		case ErrPhoneExists:
			field, key = "phone", core.MsgPhoneExists
		default:
			return errors.Wrap(err, "checking uniqueness")
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: key})
	}
	return nil
}

func (svc *service) checkGrade(ctx context.Context, id string) error {
	if _, err := svc.grades.GetGrade(ctx, id); err != nil {
		if core.IsNotFound(err) {
			return core.NewValidationError(err, core.FieldError{Field: "grade_id", Error: core.MsgNotFound})
		}
		return errors.Wrap(err, "finding grade")
	}
	return nil
}

func (svc *service) Create(ctx context.Context, data NewStudent) (Student, error) {
	data.Clean()
	if err := svc.validate.Struct(data); err != nil {
		return Student{}, err
	}
	if err := svc.checkGrade(ctx, data.GradeID); err != nil {
		return Student{}, err
	}
	if err := svc.checkUniqueness(ctx, data.Username, data.Email, data.Phone, ""); err != nil {
		return Student{}, err
	}

	now := time.Now().UTC()
	s := Student{
		Name:      data.Name,
		Username:  data.Username,
		Email:     data.Email,
		Phone:     data.Phone,
		GradeID:   data.GradeID,
		BirthDate: data.BirthDate.UTC(),
		Gender:    data.Gender,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.SetActive(true)
	if err := s.SetPassword(data.Password); err != nil {
		return Student{}, errors.Wrap(err, "setting password")
	}

	s, err := svc.repo.CreateStudent(ctx, s)
	return s, errors.Wrap(err, "creating student")
}

func (svc *service) Query(ctx context.Context, filter *QueryFilter, params core.ListParams) ([]Student, int, error) {
	total, err := svc.repo.CountStudents(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting students")
	}
	if total == 0 {
		return []Student{}, 0, nil
	}
	students, err := svc.repo.QueryStudents(ctx, filter, params)
	return students, total, errors.Wrap(err, "querying students")
}

func (svc *service) Count(ctx context.Context, filter *QueryFilter) (int, error) {
	return svc.repo.CountStudents(ctx, filter)
}

func (svc *service) Get(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudent(ctx, id)
}

func (svc *service) Update(ctx context.Context, id string, data UpdateStudent) (Student, error) {
	s, err := svc.repo.GetStudent(ctx, id)
	if err != nil {
		return Student{}, err
	}
	data.Clean()
	if err = svc.validate.Struct(data); err != nil {
		return Student{}, err
	}

	if data.GradeID != "" && data.GradeID != s.GradeID {
		if err = svc.checkGrade(ctx, data.GradeID); err != nil {
			return Student{}, err
		}
		s.GradeID = data.GradeID
	}
	if data.Name != "" {
		s.Name = data.Name
	}
	if data.Username != "" {
		s.Username = data.Username
	}
	if data.Email != "" {
		s.Email = data.Email
	}
	if data.Phone != "" {
		s.Phone = data.Phone
	}
	if err = svc.checkUniqueness(ctx, s.Username, s.Email, s.Phone, s.ID); err != nil {
		return Student{}, err
	}
	if data.BirthDate != nil {
		s.BirthDate = data.BirthDate.UTC()
	}
	if data.Gender != "" {
		s.Gender = data.Gender
	}
	if data.IsActive != nil {
		s.SetActive(*data.IsActive)
	}
	if data.Password != "" {
		if err = s.SetPassword(data.Password); err != nil {
			return Student{}, errors.Wrap(err, "setting password")
		}
	}
	s.UpdatedAt = time.Now().UTC()

	s, err = svc.repo.UpdateStudent(ctx, s)
	return s, errors.Wrap(err, "updating student")
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := svc.repo.DeleteStudentsByID(ctx, ids)
	return errors.Wrap(err, "deleting students")
}
