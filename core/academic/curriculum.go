package academic

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
)

type CurriculumService interface {
	Create(ctx context.Context, data NewCurriculum) (Curriculum, error)
	Query(ctx context.Context, filter *CurriculumFilter, params core.ListParams) ([]Curriculum, int, error)
	Count(ctx context.Context, filter *CurriculumFilter) (int, error)
	Get(ctx context.Context, id string) (Curriculum, error)
	Update(ctx context.Context, id string, data UpdateCurriculum) (Curriculum, error)
	Delete(ctx context.Context, ids ...string) error
}

type curriculumService struct {
	validate *validator.Validate
	repo     CurriculumRepository
	grades   GradeRepository
	refs     []core.Reference
}

var _ CurriculumService = (*curriculumService)(nil)

func NewCurriculumService(validate *validator.Validate, repo CurriculumRepository, grades GradeRepository, refs ...core.Reference) CurriculumService {
	return &curriculumService{validate: validate, repo: repo, grades: grades, refs: refs}
}

func (svc *curriculumService) Create(ctx context.Context, data NewCurriculum) (Curriculum, error) {
	data.Name = core.CleanName(data.Name)
	if err := svc.validate.Struct(data); err != nil {
		return Curriculum{}, err
	}
	if _, err := svc.grades.GetGrade(ctx, data.GradeID); err != nil {
		return Curriculum{}, checkParent(err, "grade_id")
	}

	now := time.Now().UTC()
	cur, err := svc.repo.CreateCurriculum(ctx, Curriculum{
		Name:      data.Name,
		GradeID:   data.GradeID,
		Year:      data.Year,
		Semester:  data.Semester,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return cur, errors.Wrap(err, "creating curriculum")
}

func (svc *curriculumService) Query(ctx context.Context, filter *CurriculumFilter, params core.ListParams) ([]Curriculum, int, error) {
	total, err := svc.repo.CountCurriculums(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting curriculums")
	}
	if total == 0 {
		return []Curriculum{}, 0, nil
	}
	curs, err := svc.repo.QueryCurriculums(ctx, filter, params)
	return curs, total, errors.Wrap(err, "querying curriculums")
}

func (svc *curriculumService) Count(ctx context.Context, filter *CurriculumFilter) (int, error) {
	return svc.repo.CountCurriculums(ctx, filter)
}

func (svc *curriculumService) Get(ctx context.Context, id string) (Curriculum, error) {
	return svc.repo.GetCurriculum(ctx, id)
}

func (svc *curriculumService) Update(ctx context.Context, id string, data UpdateCurriculum) (Curriculum, error) {
	cur, err := svc.repo.GetCurriculum(ctx, id)
	if err != nil {
		return Curriculum{}, err
	}
	data.Name = core.CleanName(data.Name)
	if err = svc.validate.Struct(data); err != nil {
		return Curriculum{}, err
	}

	if data.Name != "" {
		cur.Name = data.Name
	}
	if data.GradeID != "" && data.GradeID != cur.GradeID {
		if _, err = svc.grades.GetGrade(ctx, data.GradeID); err != nil {
			return Curriculum{}, checkParent(err, "grade_id")
		}
		cur.GradeID = data.GradeID
	}
	if data.Year != 0 {
		cur.Year = data.Year
	}
	if data.Semester != 0 {
		cur.Semester = data.Semester
	}
	cur.UpdatedAt = time.Now().UTC()

	cur, err = svc.repo.UpdateCurriculum(ctx, cur)
	return cur, errors.Wrap(err, "updating curriculum")
}

func (svc *curriculumService) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := core.CheckReferences(ctx, ids, svc.refs...); err != nil {
		return err
	}
	_, err := svc.repo.DeleteCurriculumsByID(ctx, ids)
	return errors.Wrap(err, "deleting curriculums")
}
