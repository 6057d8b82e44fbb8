package academic

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
)

type GradeService interface {
	Create(ctx context.Context, data NewGrade) (Grade, error)
	Query(ctx context.Context, filter *GradeFilter, params core.ListParams) ([]Grade, int, error)
	Count(ctx context.Context, filter *GradeFilter) (int, error)
	Get(ctx context.Context, id string) (Grade, error)
	Update(ctx context.Context, id string, data UpdateGrade) (Grade, error)
	Delete(ctx context.Context, ids ...string) error
}

type gradeService struct {
	validate *validator.Validate
	repo     GradeRepository
	refs     []core.Reference
}

var _ GradeService = (*gradeService)(nil)

// NewGradeService returns a GradeService; grades stay undeletable while any of refs points at them.
func NewGradeService(validate *validator.Validate, repo GradeRepository, refs ...core.Reference) GradeService {
	return &gradeService{validate: validate, repo: repo, refs: refs}
}

func (svc *gradeService) Create(ctx context.Context, data NewGrade) (Grade, error) {
	data.Name = core.CleanName(data.Name)
	if err := svc.validate.Struct(data); err != nil {
		return Grade{}, err
	}

	now := time.Now().UTC()
	grade, err := svc.repo.CreateGrade(ctx, Grade{
		Name:      data.Name,
		Level:     data.Level,
		Stage:     data.Stage,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return grade, errors.Wrap(err, "creating grade")
}

func (svc *gradeService) Query(ctx context.Context, filter *GradeFilter, params core.ListParams) ([]Grade, int, error) {
	total, err := svc.repo.CountGrades(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting grades")
	}
	if total == 0 {
		return []Grade{}, 0, nil
	}
	grades, err := svc.repo.QueryGrades(ctx, filter, params)
	return grades, total, errors.Wrap(err, "querying grades")
}

func (svc *gradeService) Count(ctx context.Context, filter *GradeFilter) (int, error) {
	return svc.repo.CountGrades(ctx, filter)
}

func (svc *gradeService) Get(ctx context.Context, id string) (Grade, error) {
	return svc.repo.GetGrade(ctx, id)
}

func (svc *gradeService) Update(ctx context.Context, id string, data UpdateGrade) (Grade, error) {
	grade, err := svc.repo.GetGrade(ctx, id)
	if err != nil {
		return Grade{}, err
	}
	data.Name = core.CleanName(data.Name)
	if err = svc.validate.Struct(data); err != nil {
		return Grade{}, err
	}

	if data.Name != "" {
		grade.Name = data.Name
	}
	if data.Level != nil {
		grade.Level = *data.Level
	}
	if data.Stage != "" {
		grade.Stage = data.Stage
	}
	grade.UpdatedAt = time.Now().UTC()

	grade, err = svc.repo.UpdateGrade(ctx, grade)
	return grade, errors.Wrap(err, "updating grade")
}

func (svc *gradeService) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := core.CheckReferences(ctx, ids, svc.refs...); err != nil {
		return err
	}
	_, err := svc.repo.DeleteGradesByID(ctx, ids)
	return errors.Wrap(err, "deleting grades")
}
