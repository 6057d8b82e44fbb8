package core

import (
	"context"
	"database/sql"
)

type (
	DBExecutor interface {
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
		QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	}

	DB interface {
		DBExecutor

		BeginTx(context.Context, *sql.TxOptions) (*sql.Tx, error)
		Close() error
	}
)

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// ListParams carries paging and ordering for list queries.
// A zero PageSize means "no limit".
type ListParams struct {
	Page     int
	PageSize int
	Ordering []DBOrdering
}

func (p ListParams) Limit() int { return p.PageSize }

func (p ListParams) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Paginate returns the window of a slice of length n selected by p.
func (p ListParams) Paginate(n int) (start, end int) {
	start = p.Offset()
	if start > n {
		start = n
	}
	end = n
	if p.PageSize > 0 && start+p.PageSize < n {
		end = start + p.PageSize
	}
	return start, end
}
