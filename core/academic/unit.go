package academic

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
)

type UnitService interface {
	Create(ctx context.Context, data NewUnit) (Unit, error)
	Query(ctx context.Context, filter *UnitFilter, params core.ListParams) ([]Unit, int, error)
	Count(ctx context.Context, filter *UnitFilter) (int, error)
	Get(ctx context.Context, id string) (Unit, error)
	Update(ctx context.Context, id string, data UpdateUnit) (Unit, error)
	Delete(ctx context.Context, ids ...string) error
}

type unitService struct {
	validate *validator.Validate
	repo     UnitRepository
	subjects SubjectRepository
	refs     []core.Reference
}

var _ UnitService = (*unitService)(nil)

func NewUnitService(validate *validator.Validate, repo UnitRepository, subjects SubjectRepository, refs ...core.Reference) UnitService {
	return &unitService{validate: validate, repo: repo, subjects: subjects, refs: refs}
}

func (svc *unitService) Create(ctx context.Context, data NewUnit) (Unit, error) {
	data.Name = core.CleanName(data.Name)
	if err := svc.validate.Struct(data); err != nil {
		return Unit{}, err
	}
	if _, err := svc.subjects.GetSubject(ctx, data.SubjectID); err != nil {
		return Unit{}, checkParent(err, "subject_id")
	}

	now := time.Now().UTC()
	unit, err := svc.repo.CreateUnit(ctx, Unit{
		Name:      data.Name,
		SubjectID: data.SubjectID,
		Position:  data.Position,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return unit, errors.Wrap(err, "creating unit")
}

func (svc *unitService) Query(ctx context.Context, filter *UnitFilter, params core.ListParams) ([]Unit, int, error) {
	total, err := svc.repo.CountUnits(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting units")
	}
	if total == 0 {
		return []Unit{}, 0, nil
	}
	units, err := svc.repo.QueryUnits(ctx, filter, params)
	return units, total, errors.Wrap(err, "querying units")
}

func (svc *unitService) Count(ctx context.Context, filter *UnitFilter) (int, error) {
	return svc.repo.CountUnits(ctx, filter)
}

func (svc *unitService) Get(ctx context.Context, id string) (Unit, error) {
	return svc.repo.GetUnit(ctx, id)
}

func (svc *unitService) Update(ctx context.Context, id string, data UpdateUnit) (Unit, error) {
	unit, err := svc.repo.GetUnit(ctx, id)
	if err != nil {
		return Unit{}, err
	}
	data.Name = core.CleanName(data.Name)
	if err = svc.validate.Struct(data); err != nil {
		return Unit{}, err
	}

	if data.Name != "" {
		unit.Name = data.Name
	}
	if data.SubjectID != "" && data.SubjectID != unit.SubjectID {
		if _, err = svc.subjects.GetSubject(ctx, data.SubjectID); err != nil {
			return Unit{}, checkParent(err, "subject_id")
		}
		unit.SubjectID = data.SubjectID
	}
	if data.Position != nil {
		unit.Position = *data.Position
	}
	unit.UpdatedAt = time.Now().UTC()

	unit, err = svc.repo.UpdateUnit(ctx, unit)
	return unit, errors.Wrap(err, "updating unit")
}

func (svc *unitService) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := core.CheckReferences(ctx, ids, svc.refs...); err != nil {
		return err
	}
	_, err := svc.repo.DeleteUnitsByID(ctx, ids)
	return errors.Wrap(err, "deleting units")
}
