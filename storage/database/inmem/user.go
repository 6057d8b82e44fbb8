package inmemdb

import (
	"context"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

type userRepository struct {
	db *table[user.User]
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.users}
}

func (repo *userRepository) CheckUniqueness(_ context.Context, username, email, phone string, excludedUsers []user.User, _ ...core.DBExecutor) error {
	excluded := make(map[string]bool, len(excludedUsers))
	for _, usr := range excludedUsers {
		excluded[usr.ID] = true
	}

	var err error
	repo.db.find(func(usr user.User) bool {
		if excluded[usr.ID] {
			return false
		}
		switch {
		case username != "" && usr.Username == username:
			err = user.ErrUsernameExists
		case email != "" && usr.Email == email:
			err = user.ErrEmailExists
		case phone != "" && usr.Phone == phone:
			err = user.ErrPhoneExists
		}
		return err != nil
	})
	return err
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User, _ ...core.DBExecutor) (user.User, error) {
	return repo.db.insert(usr), nil
}

func (repo *userRepository) QueryUsers(_ context.Context, filter *user.QueryFilter, params core.ListParams, _ ...core.DBExecutor) ([]user.User, error) {
	return repo.db.query(filter.Match, params), nil
}

func (repo *userRepository) CountUsers(_ context.Context, filter *user.QueryFilter, _ ...core.DBExecutor) (int, error) {
	return repo.db.count(filter.Match), nil
}

func (repo *userRepository) GetUser(_ context.Context, filter user.GetFilter, _ ...core.DBExecutor) (user.User, error) {
	var (
		usr   user.User
		found bool
	)
	switch {
	case filter.ID != "":
		usr, found = repo.db.get(filter.ID)
	case filter.Username != "":
		usr, found = repo.db.find(func(u user.User) bool { return u.Username == filter.Username })
	case filter.Email != "":
		usr, found = repo.db.find(func(u user.User) bool { return u.Email == filter.Email })
	case filter.UsernameOrEmail != "":
		usr, found = repo.db.find(func(u user.User) bool {
			return u.Username == filter.UsernameOrEmail || u.Email == filter.UsernameOrEmail
		})
	}
	if !found {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User, _ ...core.DBExecutor) (user.User, error) {
	if !repo.db.update(usr) {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) UpdateOrCreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	if usr.ID == "" {
		return repo.CreateUser(ctx, usr, exec...)
	}
	return repo.UpdateUser(ctx, usr, exec...)
}

func (repo *userRepository) DeleteUsersByID(_ context.Context, ids []string, _ ...core.DBExecutor) (int, error) {
	return repo.db.delete(ids), nil
}
