package academic

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
)

type LessonService interface {
	Create(ctx context.Context, data NewLesson) (Lesson, error)
	Query(ctx context.Context, filter *LessonFilter, params core.ListParams) ([]Lesson, int, error)
	Count(ctx context.Context, filter *LessonFilter) (int, error)
	Get(ctx context.Context, id string) (Lesson, error)
	Update(ctx context.Context, id string, data UpdateLesson) (Lesson, error)
	Delete(ctx context.Context, ids ...string) error
}

type lessonService struct {
	validate *validator.Validate
	repo     LessonRepository
	units    UnitRepository
	refs     []core.Reference
}

var _ LessonService = (*lessonService)(nil)

func NewLessonService(validate *validator.Validate, repo LessonRepository, units UnitRepository, refs ...core.Reference) LessonService {
	return &lessonService{validate: validate, repo: repo, units: units, refs: refs}
}

func (svc *lessonService) Create(ctx context.Context, data NewLesson) (Lesson, error) {
	data.Title = core.CleanName(data.Title)
	if err := svc.validate.Struct(data); err != nil {
		return Lesson{}, err
	}
	if _, err := svc.units.GetUnit(ctx, data.UnitID); err != nil {
		return Lesson{}, checkParent(err, "unit_id")
	}

	now := time.Now().UTC()
	lesson, err := svc.repo.CreateLesson(ctx, Lesson{
		Title:           data.Title,
		UnitID:          data.UnitID,
		Position:        data.Position,
		Content:         data.Content,
		DurationMinutes: data.DurationMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	return lesson, errors.Wrap(err, "creating lesson")
}

func (svc *lessonService) Query(ctx context.Context, filter *LessonFilter, params core.ListParams) ([]Lesson, int, error) {
	total, err := svc.repo.CountLessons(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting lessons")
	}
	if total == 0 {
		return []Lesson{}, 0, nil
	}
	lessons, err := svc.repo.QueryLessons(ctx, filter, params)
	return lessons, total, errors.Wrap(err, "querying lessons")
}

func (svc *lessonService) Count(ctx context.Context, filter *LessonFilter) (int, error) {
	return svc.repo.CountLessons(ctx, filter)
}

func (svc *lessonService) Get(ctx context.Context, id string) (Lesson, error) {
	return svc.repo.GetLesson(ctx, id)
}

func (svc *lessonService) Update(ctx context.Context, id string, data UpdateLesson) (Lesson, error) {
	lesson, err := svc.repo.GetLesson(ctx, id)
	if err != nil {
		return Lesson{}, err
	}
	data.Title = core.CleanName(data.Title)
	if err = svc.validate.Struct(data); err != nil {
		return Lesson{}, err
	}

	if data.Title != "" {
		lesson.Title = data.Title
	}
	if data.UnitID != "" && data.UnitID != lesson.UnitID {
		if _, err = svc.units.GetUnit(ctx, data.UnitID); err != nil {
			return Lesson{}, checkParent(err, "unit_id")
		}
		lesson.UnitID = data.UnitID
	}
	if data.Position != nil {
		lesson.Position = *data.Position
	}
	if data.Content != nil {
		lesson.Content = *data.Content
	}
	if data.DurationMinutes != nil {
		lesson.DurationMinutes = *data.DurationMinutes
	}
	lesson.UpdatedAt = time.Now().UTC()

	lesson, err = svc.repo.UpdateLesson(ctx, lesson)
	return lesson, errors.Wrap(err, "updating lesson")
}

func (svc *lessonService) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := core.CheckReferences(ctx, ids, svc.refs...); err != nil {
		return err
	}
	_, err := svc.repo.DeleteLessonsByID(ctx, ids)
	return errors.Wrap(err, "deleting lessons")
}
