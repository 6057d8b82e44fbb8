package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
)

// MaxPageSize mirrors the largest page the API serves.
const MaxPageSize = 200

// Record is an entity as decoded from the API, without a fixed schema.
type Record map[string]interface{}

// Values are the fields submitted by a form.
type Values map[string]interface{}

// Resource is one CRUD collection of the admin API, e.g. "admins" or "grades".
type Resource struct {
	client *Client
	path   string
}

// Endpoint is the path of the collection, relative to /v1.
func (r *Resource) Endpoint() string {
	return r.path
}

// List returns one page of records and the total count of the query.
func (r *Resource) List(ctx context.Context, query string) ([]Record, int, error) {
	resp, err := r.client.Send(ctx, rest.Get, r.path, query, nil)
	if err != nil {
		return nil, 0, err
	}
	data, err := DecodeRows([]byte(resp.Body))
	if err != nil {
		return nil, 0, err
	}
	return data.Rows, rowCount(resp, data), nil
}

// ListAll walks every page of query.
func (r *Resource) ListAll(ctx context.Context, query string) ([]Record, error) {
	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, errors.Wrap(err, "parsing query")
	}
	values.Del("per_page")
	values.Set("page_size", strconv.Itoa(MaxPageSize))

	var all []Record
	for page := 1; ; page++ {
		values.Set("page", strconv.Itoa(page))
		rows, total, err := r.List(ctx, values.Encode())
		if err != nil {
			return nil, errors.Wrapf(err, "listing page %d", page)
		}
		all = append(all, rows...)
		if len(rows) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

func (r *Resource) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	if _, err := r.client.do(ctx, rest.Get, r.path+"/"+url.PathEscape(id), "", nil, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Resource) Create(ctx context.Context, values Values) (Record, error) {
	var rec Record
	if _, err := r.client.do(ctx, rest.Post, r.path, "", values, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Resource) Update(ctx context.Context, id string, values Values) (Record, error) {
	var rec Record
	if _, err := r.client.do(ctx, rest.Put, r.path+"/"+url.PathEscape(id), "", values, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes one record, or several at once through the bulk endpoint.
func (r *Resource) Delete(ctx context.Context, ids ...string) error {
	switch len(ids) {
	case 0:
		return nil
	case 1:
		_, err := r.client.Send(ctx, rest.Delete, r.path+"/"+url.PathEscape(ids[0]), "", nil)
		return err
	}
	_, err := r.client.Send(ctx, rest.Delete, r.path, "", map[string][]string{"ids": ids})
	return err
}

// TableData is what a Table commits.
type TableData struct {
	Rows     []Record
	RowCount int
}

// DecodeRows reads a list body: a bare JSON array, or an object holding
// the rows under "rows", "data", "items" or "results" next to an optional count.
func DecodeRows(body []byte) (TableData, error) {
	var rows []Record
	if err := json.Unmarshal(body, &rows); err == nil {
		return TableData{Rows: rows}, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return TableData{}, errors.Wrap(err, "decoding rows")
	}

	var data TableData
	for _, key := range []string{"rows", "data", "items", "results"} {
		if raw, ok := obj[key]; ok {
			if err := json.Unmarshal(raw, &data.Rows); err != nil {
				return TableData{}, errors.Wrapf(err, "decoding %q", key)
			}
			break
		}
	}
	for _, key := range []string{"rowCount", "row_count", "total", "count"} {
		if raw, ok := obj[key]; ok {
			if err := json.Unmarshal(raw, &data.RowCount); err != nil {
				return TableData{}, errors.Wrapf(err, "decoding %q", key)
			}
			break
		}
	}
	return data, nil
}

// rowCount prefers the X-Total-Count header, then the decoded count, then len(rows).
func rowCount(resp *rest.Response, data TableData) int {
	if v := http.Header(resp.Headers).Get(totalCountHeader); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if data.RowCount > 0 {
		return data.RowCount
	}
	return len(data.Rows)
}
