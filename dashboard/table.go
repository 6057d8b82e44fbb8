package dashboard

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
)

// Transform turns a list body into rows. A zero RowCount lets the table count the rows.
type Transform func(body []byte) (TableData, error)

type TableOptions struct {
	Transform Transform
	Initial   TableData
	Toaster   *Toaster
	Entity    string // message key used in toasts, e.g. "entity.grade"
}

// TableState is a snapshot of a Table.
type TableState struct {
	Rows     []Record
	RowCount int
	Loading  bool
	Err      error
}

// Table is a server paginated grid. It keeps at most one request in flight:
// a new Fetch cancels the previous one and only the latest result is committed.
type Table struct {
	client   *Client
	endpoint string
	opts     TableOptions

	mu     sync.Mutex
	state  TableState
	query  string
	gen    uint64
	cancel context.CancelFunc
}

func NewTable(client *Client, endpoint string, opts TableOptions) *Table {
	if opts.Transform == nil {
		opts.Transform = DecodeRows
	}
	return &Table{
		client:   client,
		endpoint: endpoint,
		opts:     opts,
		state:    TableState{Rows: opts.Initial.Rows, RowCount: opts.Initial.RowCount},
	}
}

// Fetch loads endpoint?query. A request aborted by a newer Fetch, or by ctx,
// returns nil and leaves the state alone.
func (t *Table) Fetch(ctx context.Context, query string) error {
	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.cancel = cancel
	t.gen++
	gen := t.gen
	t.query = query
	t.state.Loading = true
	t.mu.Unlock()

	data, err := t.load(reqCtx, query)

	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return nil
	}
	t.cancel = nil
	t.state.Loading = false
	if errors.Is(err, context.Canceled) {
		t.mu.Unlock()
		return nil
	}
	if err != nil {
		t.state = TableState{Rows: t.opts.Initial.Rows, RowCount: t.opts.Initial.RowCount, Err: err}
		t.mu.Unlock()
		t.opts.Toaster.LoadFailed(err, t.opts.Entity)
		return err
	}
	t.state = TableState{Rows: data.Rows, RowCount: data.RowCount}
	t.mu.Unlock()
	return nil
}

func (t *Table) load(ctx context.Context, query string) (TableData, error) {
	resp, err := t.client.Send(ctx, rest.Get, t.endpoint, query, nil)
	if err != nil {
		return TableData{}, err
	}
	data, err := t.opts.Transform([]byte(resp.Body))
	if err != nil {
		return TableData{}, errors.Wrap(err, "transforming rows")
	}
	if data.Rows == nil {
		data.Rows = []Record{}
	}
	data.RowCount = rowCount(resp, data)
	return data, nil
}

// Refetch repeats the last query.
func (t *Table) Refetch(ctx context.Context) error {
	return t.Fetch(ctx, t.Query())
}

// Cancel aborts the request in flight, if any.
func (t *Table) Cancel() {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.mu.Unlock()
}

func (t *Table) Query() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.query
}

func (t *Table) State() TableState {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.state
	st.Rows = append([]Record(nil), t.state.Rows...)
	return st
}
