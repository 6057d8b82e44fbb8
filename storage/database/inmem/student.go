package inmemdb

import (
	"context"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/student"
)

type studentRepository struct {
	db *table[student.Student]
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.students}
}

func (repo *studentRepository) CheckUniqueness(_ context.Context, username, email, phone, excludedID string, _ ...core.DBExecutor) error {
	var err error
	repo.db.find(func(s student.Student) bool {
		if s.ID == excludedID {
			return false
		}
		switch {
		case username != "" && s.Username == username:
			err = student.ErrUsernameExists
		case email != "" && s.Email == email:
			err = student.ErrEmailExists
		case phone != "" && s.Phone == phone:
			err = student.ErrPhoneExists
		}
		return err != nil
	})
	return err
}

func (repo *studentRepository) CreateStudent(_ context.Context, s student.Student, _ ...core.DBExecutor) (student.Student, error) {
	return repo.db.insert(s), nil
}

func (repo *studentRepository) QueryStudents(_ context.Context, filter *student.QueryFilter, params core.ListParams, _ ...core.DBExecutor) ([]student.Student, error) {
	return repo.db.query(filter.Match, params), nil
}

func (repo *studentRepository) CountStudents(_ context.Context, filter *student.QueryFilter, _ ...core.DBExecutor) (int, error) {
	return repo.db.count(filter.Match), nil
}

func (repo *studentRepository) GetStudent(_ context.Context, id string, _ ...core.DBExecutor) (student.Student, error) {
	if s, ok := repo.db.get(id); ok {
		return s, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(_ context.Context, s student.Student, _ ...core.DBExecutor) (student.Student, error) {
	if !repo.db.update(s) {
		return student.Student{}, student.ErrNotFound
	}
	return s, nil
}

func (repo *studentRepository) DeleteStudentsByID(_ context.Context, ids []string, _ ...core.DBExecutor) (int, error) {
	return repo.db.delete(ids), nil
}

