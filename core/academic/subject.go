package academic

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
)

type SubjectService interface {
	Create(ctx context.Context, data NewSubject) (Subject, error)
	Query(ctx context.Context, filter *SubjectFilter, params core.ListParams) ([]Subject, int, error)
	Count(ctx context.Context, filter *SubjectFilter) (int, error)
	Get(ctx context.Context, id string) (Subject, error)
	Update(ctx context.Context, id string, data UpdateSubject) (Subject, error)
	Delete(ctx context.Context, ids ...string) error
}

type subjectService struct {
	validate    *validator.Validate
	repo        SubjectRepository
	curriculums CurriculumRepository
	refs        []core.Reference
}

var _ SubjectService = (*subjectService)(nil)

func NewSubjectService(validate *validator.Validate, repo SubjectRepository, curriculums CurriculumRepository, refs ...core.Reference) SubjectService {
	return &subjectService{validate: validate, repo: repo, curriculums: curriculums, refs: refs}
}

func (svc *subjectService) Create(ctx context.Context, data NewSubject) (Subject, error) {
	data.Name = core.CleanName(data.Name)
	data.Color = core.CleanString(data.Color, true /* lower */)
	if err := svc.validate.Struct(data); err != nil {
		return Subject{}, err
	}
	if _, err := svc.curriculums.GetCurriculum(ctx, data.CurriculumID); err != nil {
		return Subject{}, checkParent(err, "curriculum_id")
	}
	if data.Color == "" {
		data.Color = DefaultSubjectColor
	}

	now := time.Now().UTC()
	sub, err := svc.repo.CreateSubject(ctx, Subject{
		Name:         data.Name,
		CurriculumID: data.CurriculumID,
		Color:        data.Color,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	return sub, errors.Wrap(err, "creating subject")
}

func (svc *subjectService) Query(ctx context.Context, filter *SubjectFilter, params core.ListParams) ([]Subject, int, error) {
	total, err := svc.repo.CountSubjects(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting subjects")
	}
	if total == 0 {
		return []Subject{}, 0, nil
	}
	subs, err := svc.repo.QuerySubjects(ctx, filter, params)
	return subs, total, errors.Wrap(err, "querying subjects")
}

func (svc *subjectService) Count(ctx context.Context, filter *SubjectFilter) (int, error) {
	return svc.repo.CountSubjects(ctx, filter)
}

func (svc *subjectService) Get(ctx context.Context, id string) (Subject, error) {
	return svc.repo.GetSubject(ctx, id)
}

func (svc *subjectService) Update(ctx context.Context, id string, data UpdateSubject) (Subject, error) {
	sub, err := svc.repo.GetSubject(ctx, id)
	if err != nil {
		return Subject{}, err
	}
	data.Name = core.CleanName(data.Name)
	data.Color = core.CleanString(data.Color, true /* lower */)
	if err = svc.validate.Struct(data); err != nil {
		return Subject{}, err
	}

	if data.Name != "" {
		sub.Name = data.Name
	}
	if data.CurriculumID != "" && data.CurriculumID != sub.CurriculumID {
		if _, err = svc.curriculums.GetCurriculum(ctx, data.CurriculumID); err != nil {
			return Subject{}, checkParent(err, "curriculum_id")
		}
		sub.CurriculumID = data.CurriculumID
	}
	if data.Color != "" {
		sub.Color = data.Color
	}
	sub.UpdatedAt = time.Now().UTC()

	sub, err = svc.repo.UpdateSubject(ctx, sub)
	return sub, errors.Wrap(err, "updating subject")
}

func (svc *subjectService) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := core.CheckReferences(ctx, ids, svc.refs...); err != nil {
		return err
	}
	_, err := svc.repo.DeleteSubjectsByID(ctx, ids)
	return errors.Wrap(err, "deleting subjects")
}
