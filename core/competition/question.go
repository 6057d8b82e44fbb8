package competition

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/academic"
)

type QuestionService interface {
	Create(ctx context.Context, data NewQuestion) (Question, error)
	Query(ctx context.Context, filter *QuestionFilter, params core.ListParams) ([]Question, int, error)
	Count(ctx context.Context, filter *QuestionFilter) (int, error)
	Get(ctx context.Context, id string) (Question, error)
	Update(ctx context.Context, id string, data UpdateQuestion) (Question, error)
	Delete(ctx context.Context, ids ...string) error
}

type questionService struct {
	validate     *validator.Validate
	repo         QuestionRepository
	lessons      academic.LessonRepository
	competitions Repository
}

var _ QuestionService = (*questionService)(nil)

func NewQuestionService(validate *validator.Validate, repo QuestionRepository, lessons academic.LessonRepository, competitions Repository) QuestionService {
	return &questionService{validate: validate, repo: repo, lessons: lessons, competitions: competitions}
}

func (svc *questionService) checkParents(ctx context.Context, lessonID, competitionID string) error {
	if lessonID != "" {
		if _, err := svc.lessons.GetLesson(ctx, lessonID); err != nil {
			return parentError(err, "lesson_id")
		}
	}
	if competitionID != "" {
		if _, err := svc.competitions.GetCompetition(ctx, competitionID); err != nil {
			return parentError(err, "competition_id")
		}
	}
	return nil
}

func (svc *questionService) Create(ctx context.Context, data NewQuestion) (Question, error) {
	data.Clean()
	if err := svc.validate.Struct(data); err != nil {
		return Question{}, err
	}
	if err := svc.checkParents(ctx, data.LessonID, data.CompetitionID); err != nil {
		return Question{}, err
	}

	now := nowFunc()
	q, err := svc.repo.CreateQuestion(ctx, Question{
		Text:          data.Text,
		Category:      data.Category,
		Kind:          data.Kind,
		Options:       data.Options,
		CorrectOption: data.CorrectOption,
		LessonID:      data.LessonID,
		CompetitionID: data.CompetitionID,
		Year:          data.Year,
		Difficulty:    data.Difficulty,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	return q, errors.Wrap(err, "creating question")
}

func (svc *questionService) Query(ctx context.Context, filter *QuestionFilter, params core.ListParams) ([]Question, int, error) {
	total, err := svc.repo.CountQuestions(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting questions")
	}
	if total == 0 {
		return []Question{}, 0, nil
	}
	qs, err := svc.repo.QueryQuestions(ctx, filter, params)
	return qs, total, errors.Wrap(err, "querying questions")
}

func (svc *questionService) Count(ctx context.Context, filter *QuestionFilter) (int, error) {
	return svc.repo.CountQuestions(ctx, filter)
}

func (svc *questionService) Get(ctx context.Context, id string) (Question, error) {
	return svc.repo.GetQuestion(ctx, id)
}

func (svc *questionService) Update(ctx context.Context, id string, data UpdateQuestion) (Question, error) {
	q, err := svc.repo.GetQuestion(ctx, id)
	if err != nil {
		return Question{}, err
	}
	nq := data.merge(q)
	nq.Clean()
	if err = svc.validate.Struct(nq); err != nil {
		return Question{}, err
	}

	var lessonID, competitionID string
	if nq.LessonID != q.LessonID {
		lessonID = nq.LessonID
	}
	if nq.CompetitionID != q.CompetitionID {
		competitionID = nq.CompetitionID
	}
	if err = svc.checkParents(ctx, lessonID, competitionID); err != nil {
		return Question{}, err
	}

	q.Text = nq.Text
	q.Category = nq.Category
	q.Kind = nq.Kind
	q.Options = nq.Options
	q.CorrectOption = nq.CorrectOption
	q.LessonID = nq.LessonID
	q.CompetitionID = nq.CompetitionID
	q.Year = nq.Year
	q.Difficulty = nq.Difficulty
	q.UpdatedAt = nowFunc()

	q, err = svc.repo.UpdateQuestion(ctx, q)
	return q, errors.Wrap(err, "updating question")
}

func (svc *questionService) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := svc.repo.DeleteQuestionsByID(ctx, ids)
	return errors.Wrap(err, "deleting questions")
}
