package competition

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
	ErrNotFound         = core.NewNotFoundError("competition")
	ErrQuestionNotFound = core.NewNotFoundError("question")
)

type (
	Repository interface {
		CreateCompetition(ctx context.Context, c Competition, exec ...core.DBExecutor) (Competition, error)
		QueryCompetitions(ctx context.Context, filter *Filter, params core.ListParams, exec ...core.DBExecutor) ([]Competition, error)
		CountCompetitions(ctx context.Context, filter *Filter, exec ...core.DBExecutor) (int, error)
		GetCompetition(ctx context.Context, id string, exec ...core.DBExecutor) (Competition, error)
		UpdateCompetition(ctx context.Context, c Competition, exec ...core.DBExecutor) (Competition, error)
		DeleteCompetitionsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	QuestionRepository interface {
		CreateQuestion(ctx context.Context, q Question, exec ...core.DBExecutor) (Question, error)
		QueryQuestions(ctx context.Context, filter *QuestionFilter, params core.ListParams, exec ...core.DBExecutor) ([]Question, error)
		CountQuestions(ctx context.Context, filter *QuestionFilter, exec ...core.DBExecutor) (int, error)
		GetQuestion(ctx context.Context, id string, exec ...core.DBExecutor) (Question, error)
		UpdateQuestion(ctx context.Context, q Question, exec ...core.DBExecutor) (Question, error)
		DeleteQuestionsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	Service interface {
		Create(ctx context.Context, data NewCompetition) (Competition, error)
		Query(ctx context.Context, filter *Filter, params core.ListParams) ([]Competition, int, error)
		Count(ctx context.Context, filter *Filter) (int, error)
		Get(ctx context.Context, id string) (Competition, error)
		Update(ctx context.Context, id string, data UpdateCompetition) (Competition, error)
		Delete(ctx context.Context, ids ...string) error
	}

	service struct {
		validate *validator.Validate
		repo     Repository
		grades   academic.GradeRepository
		subjects academic.SubjectRepository
		refs     []core.Reference
	}
)

var _ Service = (*service)(nil)

// NewService returns a competition Service; competitions stay undeletable while any of refs points at them.
func NewService(validate *validator.Validate, repo Repository, grades academic.GradeRepository, subjects academic.SubjectRepository, refs ...core.Reference) Service {
	return &service{validate: validate, repo: repo, grades: grades, subjects: subjects, refs: refs}
}

func (svc *service) checkParents(ctx context.Context, gradeID, subjectID string) error {
	if gradeID != "" {
		if _, err := svc.grades.GetGrade(ctx, gradeID); err != nil {
			return parentError(err, "grade_id")
		}
	}
	if subjectID != "" {
		if _, err := svc.subjects.GetSubject(ctx, subjectID); err != nil {
			return parentError(err, "subject_id")
		}
	}
	return nil
}

func (svc *service) Create(ctx context.Context, data NewCompetition) (Competition, error) {
	data.Name = core.CleanName(data.Name)
	data.Description = core.CleanString(data.Description)
	if err := svc.validate.Struct(data); err != nil {
		return Competition{}, err
	}
	if err := svc.checkParents(ctx, data.GradeID, data.SubjectID); err != nil {
		return Competition{}, err
	}

	now := nowFunc()
	c, err := svc.repo.CreateCompetition(ctx, Competition{
		Name:            data.Name,
		Description:     data.Description,
		GradeID:         data.GradeID,
		SubjectID:       data.SubjectID,
		StartsAt:        data.StartsAt.UTC(),
		EndsAt:          data.EndsAt.UTC(),
		MaxParticipants: data.MaxParticipants,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return Competition{}, errors.Wrap(err, "creating competition")
	}
	return c.withStatus(now), nil
}

func (svc *service) Query(ctx context.Context, filter *Filter, params core.ListParams) ([]Competition, int, error) {
	now := nowFunc()
	filter = svc.at(filter, now)
	total, err := svc.repo.CountCompetitions(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting competitions")
	}
	if total == 0 {
		return []Competition{}, 0, nil
	}
	comps, err := svc.repo.QueryCompetitions(ctx, filter, params)
	if err != nil {
		return nil, 0, errors.Wrap(err, "querying competitions")
	}
	for i := range comps {
		comps[i] = comps[i].withStatus(now)
	}
	return comps, total, nil
}

func (svc *service) Count(ctx context.Context, filter *Filter) (int, error) {
	return svc.repo.CountCompetitions(ctx, svc.at(filter, nowFunc()))
}

// at returns a copy of filter evaluating statuses at now.
func (svc *service) at(filter *Filter, now time.Time) *Filter {
	if filter == nil {
		return nil
	}
	f := *filter
	if f.At.IsZero() {
		f.At = now
	}
	return &f
}

func (svc *service) Get(ctx context.Context, id string) (Competition, error) {
	c, err := svc.repo.GetCompetition(ctx, id)
	if err != nil {
		return Competition{}, err
	}
	return c.withStatus(nowFunc()), nil
}

func (svc *service) Update(ctx context.Context, id string, data UpdateCompetition) (Competition, error) {
	c, err := svc.repo.GetCompetition(ctx, id)
	if err != nil {
		return Competition{}, err
	}
	data.Name = core.CleanName(data.Name)
	if err = svc.validate.Struct(data); err != nil {
		return Competition{}, err
	}

	var gradeID, subjectID string
	if data.GradeID != "" && data.GradeID != c.GradeID {
		gradeID = data.GradeID
	}
	if data.SubjectID != nil && *data.SubjectID != c.SubjectID {
		subjectID = *data.SubjectID
	}
	if err = svc.checkParents(ctx, gradeID, subjectID); err != nil {
		return Competition{}, err
	}

	if data.Name != "" {
		c.Name = data.Name
	}
	if data.Description != nil {
		c.Description = core.CleanString(*data.Description)
	}
	if data.GradeID != "" {
		c.GradeID = data.GradeID
	}
	if data.SubjectID != nil {
		c.SubjectID = *data.SubjectID
	}
	if data.StartsAt != nil {
		c.StartsAt = data.StartsAt.UTC()
	}
	if data.EndsAt != nil {
		c.EndsAt = data.EndsAt.UTC()
	}
	if !c.EndsAt.After(c.StartsAt) {
		return Competition{}, core.NewValidationError(nil, core.FieldError{Field: "ends_at", Error: core.MsgInvalidInput})
	}
	if data.MaxParticipants != nil {
		c.MaxParticipants = *data.MaxParticipants
	}
	now := nowFunc()
	c.UpdatedAt = now

	c, err = svc.repo.UpdateCompetition(ctx, c)
	if err != nil {
		return Competition{}, errors.Wrap(err, "updating competition")
	}
	return c.withStatus(now), nil
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := core.CheckReferences(ctx, ids, svc.refs...); err != nil {
		return err
	}
	_, err := svc.repo.DeleteCompetitionsByID(ctx, ids)
	return errors.Wrap(err, "deleting competitions")
}

func parentError(err error, field string) error {
	if core.IsNotFound(err) {
		return core.NewValidationError(err, core.FieldError{Field: field, Error: core.MsgNotFound})
	}
	return errors.Wrap(err, "finding "+field)
}
