package inmemdb

import (
	"context"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/competition"
)

type competitionRepository struct {
	db *table[competition.Competition]
}

var _ competition.Repository = (*competitionRepository)(nil)

func NewCompetitionRepository(db *DB) competition.Repository {
	return &competitionRepository{db: db.competitions}
}

func (repo *competitionRepository) CreateCompetition(_ context.Context, c competition.Competition, _ ...core.DBExecutor) (competition.Competition, error) {
	c.Status = ""
	return repo.db.insert(c), nil
}

func (repo *competitionRepository) QueryCompetitions(_ context.Context, filter *competition.Filter, params core.ListParams, _ ...core.DBExecutor) ([]competition.Competition, error) {
	return repo.db.query(filter.Match, params), nil
}

func (repo *competitionRepository) CountCompetitions(_ context.Context, filter *competition.Filter, _ ...core.DBExecutor) (int, error) {
	return repo.db.count(filter.Match), nil
}

func (repo *competitionRepository) GetCompetition(_ context.Context, id string, _ ...core.DBExecutor) (competition.Competition, error) {
	if c, ok := repo.db.get(id); ok {
		return c, nil
	}
	return competition.Competition{}, competition.ErrNotFound
}

func (repo *competitionRepository) UpdateCompetition(_ context.Context, c competition.Competition, _ ...core.DBExecutor) (competition.Competition, error) {
	c.Status = ""
	if !repo.db.update(c) {
		return competition.Competition{}, competition.ErrNotFound
	}
	return c, nil
}

func (repo *competitionRepository) DeleteCompetitionsByID(_ context.Context, ids []string, _ ...core.DBExecutor) (int, error) {
	return repo.db.delete(ids), nil
}

type questionRepository struct {
	db *table[competition.Question]
}

var _ competition.QuestionRepository = (*questionRepository)(nil)

func NewQuestionRepository(db *DB) competition.QuestionRepository {
	return &questionRepository{db: db.questions}
}

func (repo *questionRepository) CreateQuestion(_ context.Context, q competition.Question, _ ...core.DBExecutor) (competition.Question, error) {
	q.Options = append([]string(nil), q.Options...)
	return repo.db.insert(q), nil
}

func (repo *questionRepository) QueryQuestions(_ context.Context, filter *competition.QuestionFilter, params core.ListParams, _ ...core.DBExecutor) ([]competition.Question, error) {
	return repo.db.query(filter.Match, params), nil
}

func (repo *questionRepository) CountQuestions(_ context.Context, filter *competition.QuestionFilter, _ ...core.DBExecutor) (int, error) {
	return repo.db.count(filter.Match), nil
}

func (repo *questionRepository) GetQuestion(_ context.Context, id string, _ ...core.DBExecutor) (competition.Question, error) {
	if q, ok := repo.db.get(id); ok {
		return q, nil
	}
	return competition.Question{}, competition.ErrQuestionNotFound
}

func (repo *questionRepository) UpdateQuestion(_ context.Context, q competition.Question, _ ...core.DBExecutor) (competition.Question, error) {
	q.Options = append([]string(nil), q.Options...)
	if !repo.db.update(q) {
		return competition.Question{}, competition.ErrQuestionNotFound
	}
	return q, nil
}

func (repo *questionRepository) DeleteQuestionsByID(_ context.Context, ids []string, _ ...core.DBExecutor) (int, error) {
	return repo.db.delete(ids), nil
}
