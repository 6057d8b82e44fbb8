// Package sqlxrepos implements the domain repositories on postgres.
package sqlxrepos

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
)

const defaultOrdering = "created_at ASC, id ASC"

type baseRepo struct {
	db *sqlx.DB
}

// ext returns the executor passed by the service (usually a *sqlx.Tx) or the repo DB.
func (repo baseRepo) ext(exec []core.DBExecutor) sqlx.ExtContext {
	if len(exec) > 0 {
		if e, ok := exec[0].(sqlx.ExtContext); ok {
			return e
		}
	}
	return repo.db
}

// selectRows expands slice args (IN (?)), binds then runs query.
func (repo baseRepo) selectRows(ctx context.Context, exec []core.DBExecutor, dest interface{}, query string, args ...interface{}) error {
	e := repo.ext(exec)
	q, args, err := sqlx.In(query, args...)
	if err != nil {
		return errors.Wrap(err, "expanding query")
	}
	return sqlx.SelectContext(ctx, e, dest, e.Rebind(q), args...)
}

func (repo baseRepo) getRow(ctx context.Context, exec []core.DBExecutor, dest interface{}, query string, args ...interface{}) error {
	e := repo.ext(exec)
	return sqlx.GetContext(ctx, e, dest, e.Rebind(query), args...)
}

func (repo baseRepo) count(ctx context.Context, exec []core.DBExecutor, table string, w *where) (int, error) {
	e := repo.ext(exec)
	q, args, err := sqlx.In("SELECT COUNT(*) FROM "+table+w.sql(), w.args...)
	if err != nil {
		return 0, errors.Wrap(err, "expanding query")
	}
	var n int
	err = sqlx.GetContext(ctx, e, &n, e.Rebind(q), args...)
	return n, err
}

func (repo baseRepo) insert(ctx context.Context, exec []core.DBExecutor, query string, row interface{}) error {
	_, err := sqlx.NamedExecContext(ctx, repo.ext(exec), query, row)
	return err
}

// update reports false when no row matched.
func (repo baseRepo) update(ctx context.Context, exec []core.DBExecutor, query string, row interface{}) (bool, error) {
	res, err := sqlx.NamedExecContext(ctx, repo.ext(exec), query, row)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (repo baseRepo) deleteByID(ctx context.Context, exec []core.DBExecutor, table string, ids []string) (int, error) {
	ids = validIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	e := repo.ext(exec)
	q, args, err := sqlx.In("DELETE FROM "+table+" WHERE id IN (?)", ids)
	if err != nil {
		return 0, errors.Wrap(err, "expanding query")
	}
	res, err := e.ExecContext(ctx, e.Rebind(q), args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// where accumulates AND-ed conditions written with ? placeholders.
type where struct {
	conds []string
	args  []interface{}
}

func (w *where) add(cond string, args ...interface{}) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

// search matches val case-insensitively against any of cols.
func (w *where) search(val string, cols ...string) {
	if val == "" {
		return
	}
	like := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		like = append(like, col+" ILIKE ?")
		args = append(args, "%"+val+"%")
	}
	w.add("("+strings.Join(like, " OR ")+")", args...)
}

// in is a no-op for nil vals; an empty (non nil) vals matches nothing.
func (w *where) in(col string, vals []string) {
	if vals == nil {
		return
	}
	if len(vals) == 0 {
		w.add("false")
		return
	}
	w.add(col+" IN (?)", vals)
}

// inIDs is in for uuid columns; malformed ids can never match.
func (w *where) inIDs(col string, ids []string) {
	if ids == nil {
		return
	}
	w.in(col, validIDs(ids))
}

func (w *where) sql() string {
	if w == nil || len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// orderBy renders the ORDER BY, LIMIT & OFFSET clauses; fields outside allowed are ignored.
func orderBy(params core.ListParams, allowed []string) string {
	ords := make([]string, 0, len(params.Ordering)+1)
	for _, ord := range params.Ordering {
		if core.ContainsString(allowed, ord.Field) {
			ords = append(ords, ord.String())
		}
	}
	ords = append(ords, defaultOrdering)

	clause := " ORDER BY " + strings.Join(ords, ", ")
	if params.Limit() > 0 {
		clause += fmt.Sprintf(" LIMIT %d OFFSET %d", params.Limit(), params.Offset())
	}
	return clause
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validIDs(ids []string) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	return valid
}
