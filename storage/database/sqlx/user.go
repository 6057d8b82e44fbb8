package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

const userColumns = `id, name, username, email, phone, is_active, roles, password_hash, language, theme, created_at, updated_at, last_login`

type userRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Username     null.String    `db:"username"`
	Email        null.String    `db:"email"`
	Phone        null.String    `db:"phone"`
	IsActive     bool           `db:"is_active"`
	Roles        pq.StringArray `db:"roles"`
	PasswordHash null.Bytes     `db:"password_hash"`
	Language     string         `db:"language"`
	Theme        string         `db:"theme"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	LastLogin    null.Time      `db:"last_login"`
}

func toUserRow(usr user.User) userRow {
	roles := usr.Roles
	if roles == nil {
		roles = []string{}
	}
	return userRow{
		ID:           usr.ID,
		Name:         usr.Name,
		Username:     null.NewString(usr.Username, usr.Username != ""),
		Email:        null.NewString(usr.Email, usr.Email != ""),
		Phone:        null.NewString(usr.Phone, usr.Phone != ""),
		IsActive:     usr.Active(),
		Roles:        roles,
		PasswordHash: null.NewBytes(usr.PasswordHash, usr.PasswordHash != nil),
		Language:     usr.Settings.Language,
		Theme:        usr.Settings.Theme,
		CreatedAt:    usr.CreatedAt.UTC(),
		UpdatedAt:    usr.UpdatedAt.UTC(),
		LastLogin:    null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	}
}

func (row userRow) model() user.User {
	usr := user.User{
		ID:           row.ID,
		Name:         row.Name,
		Username:     row.Username.String,
		Email:        row.Email.String,
		Phone:        row.Phone.String,
		Roles:        row.Roles,
		PasswordHash: row.PasswordHash.Bytes,
		Settings:     user.Settings{Language: row.Language, Theme: row.Theme},
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
	if row.LastLogin.Valid {
		usr.LastLogin = row.LastLogin.Time.UTC()
	}
	usr.SetActive(row.IsActive)
	return usr
}

type userRepository struct {
	baseRepo
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{baseRepo{db: db}}
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func userWhere(filter *user.QueryFilter) *where {
	w := &where{}
	if filter == nil {
		return w
	}
	w.inIDs("id", filter.IDs)
	w.search(filter.Search, "name", "username", "email", "phone")
	// users with any role that starts with any of the provided roles
	if filter.Roles != nil {
		prefixes := make([]string, 0, len(filter.Roles))
		for _, role := range filter.Roles {
			prefixes = append(prefixes, role+"%")
		}
		w.add("EXISTS (SELECT 1 FROM UNNEST(roles) user_role WHERE user_role LIKE ANY(?))", pq.Array(prefixes))
	}
	if filter.IsActive != nil {
		w.add("is_active = ?", *filter.IsActive)
	}
	if !filter.CreatedFrom.IsZero() {
		w.add("created_at >= ?", filter.CreatedFrom.UTC())
	}
	if !filter.CreatedTo.IsZero() {
		w.add("created_at <= ?", filter.CreatedTo.UTC())
	}
	return w
}

func (repo userRepository) CheckUniqueness(ctx context.Context, username, email, phone string, excludedUsers []user.User, exec ...core.DBExecutor) error {
	w := &where{}
	w.add("(username = ? OR email = ? OR phone = ?)", username, email, phone)
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, u := range excludedUsers {
			ids = append(ids, u.ID)
		}
		w.add("id NOT IN (?)", ids)
	}

	var rows []userRow
	if err := repo.selectRows(ctx, exec, &rows, "SELECT "+userColumns+` FROM "user"`+w.sql()+" LIMIT 1", w.args...); err != nil {
		return errors.Wrap(err, "checking user uniqueness")
	}
	if len(rows) == 0 {
		return nil
	}
	switch usr := rows[0]; {
	case username != "" && usr.Username.String == username:
		return user.ErrUsernameExists
	case email != "" && usr.Email.String == email:
		return user.ErrEmailExists
	default:
		return user.ErrPhoneExists
	}
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	usr.ID = uuid.New().String()
	row := toUserRow(usr)
	err := repo.insert(ctx, exec, `INSERT INTO "user" (`+userColumns+`) VALUES (
		:id, :name, :username, :email, :phone, :is_active, :roles, :password_hash, :language, :theme, :created_at, :updated_at, :last_login)`, row)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return row.model(), nil
}

func (repo userRepository) QueryUsers(ctx context.Context, filter *user.QueryFilter, params core.ListParams, exec ...core.DBExecutor) ([]user.User, error) {
	w := userWhere(filter)
	var rows []userRow
	q := "SELECT " + userColumns + ` FROM "user"` + w.sql() + orderBy(params, user.OrderFields)
	if err := repo.selectRows(ctx, exec, &rows, q, w.args...); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.model())
	}
	return users, nil
}

func (repo userRepository) CountUsers(ctx context.Context, filter *user.QueryFilter, exec ...core.DBExecutor) (int, error) {
	n, err := repo.count(ctx, exec, `"user"`, userWhere(filter))
	return n, errors.Wrap(err, "counting users")
}

func (repo userRepository) GetUser(ctx context.Context, filter user.GetFilter, exec ...core.DBExecutor) (user.User, error) {
	q := "SELECT " + userColumns + ` FROM "user" WHERE `
	var args []interface{}
	switch {
	case filter.ID != "":
		if !validID(filter.ID) {
			return user.User{}, user.ErrNotFound
		}
		q += "id = ?"
		args = append(args, filter.ID)
	case filter.Username != "":
		q += "username = ?"
		args = append(args, filter.Username)
	case filter.Email != "":
		q += "email = ?"
		args = append(args, filter.Email)
	case filter.UsernameOrEmail != "":
		q += "(username = ? OR email = ?)"
		args = append(args, filter.UsernameOrEmail, filter.UsernameOrEmail)
	default:
		return user.User{}, user.ErrNotFound
	}

	var row userRow
	if err := repo.getRow(ctx, exec, &row, q+" LIMIT 1", args...); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user")
	}
	return row.model(), nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	if !validID(usr.ID) {
		return user.User{}, user.ErrNotFound
	}
	row := toUserRow(usr)
	found, err := repo.update(ctx, exec, `UPDATE "user" SET
		name = :name, username = :username, email = :email, phone = :phone, is_active = :is_active,
		roles = :roles, password_hash = :password_hash, language = :language, theme = :theme,
		updated_at = :updated_at, last_login = :last_login
		WHERE id = :id`, row)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if !found {
		return user.User{}, user.ErrNotFound
	}
	return row.model(), nil
}

func (repo userRepository) UpdateOrCreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	if usr.ID == "" {
		return repo.CreateUser(ctx, usr, exec...)
	}
	return repo.UpdateUser(ctx, usr, exec...)
}

func (repo userRepository) DeleteUsersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	n, err := repo.deleteByID(ctx, exec, `"user"`, ids)
	return n, errors.Wrap(err, "deleting users")
}
