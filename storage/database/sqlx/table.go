package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
)

// table implements the plain CRUD statements of an entity M stored as rows R.
type table[M, R any] struct {
	baseRepo
	name        string
	columns     []string // first one is the primary key
	orderFields []string
	notFound    error
	toRow       func(M) R
	toModel     func(R) M
	setID       func(*M, string)
}

func (t table[M, R]) selectSQL() string {
	return "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.name
}

func (t table[M, R]) insertSQL() string {
	return "INSERT INTO " + t.name + " (" + strings.Join(t.columns, ", ") + ") VALUES (:" + strings.Join(t.columns, ", :") + ")"
}

func (t table[M, R]) updateSQL() string {
	sets := make([]string, 0, len(t.columns))
	for _, col := range t.columns[1:] {
		if col == "created_at" {
			continue
		}
		sets = append(sets, col+" = :"+col)
	}
	return "UPDATE " + t.name + " SET " + strings.Join(sets, ", ") + " WHERE id = :id"
}

func (t table[M, R]) create(ctx context.Context, exec []core.DBExecutor, m M) (M, error) {
	t.setID(&m, uuid.New().String())
	row := t.toRow(m)
	if err := t.insert(ctx, exec, t.insertSQL(), row); err != nil {
		var zero M
		return zero, errors.Wrap(err, "inserting "+t.name)
	}
	return t.toModel(row), nil
}

func (t table[M, R]) query(ctx context.Context, exec []core.DBExecutor, w *where, params core.ListParams) ([]M, error) {
	var rows []R
	if err := t.selectRows(ctx, exec, &rows, t.selectSQL()+w.sql()+orderBy(params, t.orderFields), w.args...); err != nil {
		return nil, errors.Wrap(err, "querying "+t.name)
	}
	models := make([]M, 0, len(rows))
	for _, row := range rows {
		models = append(models, t.toModel(row))
	}
	return models, nil
}

func (t table[M, R]) countWhere(ctx context.Context, exec []core.DBExecutor, w *where) (int, error) {
	n, err := t.count(ctx, exec, t.name, w)
	return n, errors.Wrap(err, "counting "+t.name)
}

func (t table[M, R]) get(ctx context.Context, exec []core.DBExecutor, id string) (M, error) {
	var row R
	if !validID(id) {
		var zero M
		return zero, t.notFound
	}
	if err := t.getRow(ctx, exec, &row, t.selectSQL()+" WHERE id = ?", id); err != nil {
		var zero M
		if err == sql.ErrNoRows {
			return zero, t.notFound
		}
		return zero, errors.Wrap(err, "finding "+t.name)
	}
	return t.toModel(row), nil
}

func (t table[M, R]) save(ctx context.Context, exec []core.DBExecutor, id string, m M) (M, error) {
	var zero M
	if !validID(id) {
		return zero, t.notFound
	}
	row := t.toRow(m)
	found, err := t.update(ctx, exec, t.updateSQL(), row)
	if err != nil {
		return zero, errors.Wrap(err, "updating "+t.name)
	}
	if !found {
		return zero, t.notFound
	}
	return t.toModel(row), nil
}

func (t table[M, R]) remove(ctx context.Context, exec []core.DBExecutor, ids []string) (int, error) {
	n, err := t.deleteByID(ctx, exec, t.name, ids)
	return n, errors.Wrap(err, "deleting "+t.name)
}
