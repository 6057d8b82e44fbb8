// Package dashboard is the Go client of the admin API: a REST client, server
// paginated tables, entity forms, debounced filters, column sets with CSV/XLSX
// export, route guards and toast notifications.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/Nebras-project/nebras-dashboard/core"
)

const (
	totalCountHeader = "X-Total-Count"
	apiPrefix        = "/v1"
)

// APIError is a non 2xx answer of the admin API.
// Message is set for {"error": "..."} bodies, Fields for validation bodies.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	}
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.fieldsString())
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) fieldsString() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

func newAPIError(resp *rest.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body map[string]interface{}
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		apiErr.Message = strings.TrimSpace(resp.Body)
		return apiErr
	}
	if msg, ok := body["error"].(string); ok && len(body) == 1 {
		apiErr.Message = msg
		return apiErr
	}
	apiErr.Fields = make(map[string]string, len(body))
	for field, msg := range body {
		apiErr.Fields[field] = fmt.Sprint(msg)
	}
	return apiErr
}

type Option func(*Client)

// WithHTTPClient replaces rest.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.rest = &rest.Client{HTTPClient: hc} }
}

// WithLanguage sends lang as Accept-Language so that API messages come back translated.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.lang = lang }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// Client talks to the admin API. It is safe for concurrent use.
type Client struct {
	baseURL string
	rest    *rest.Client

	mu    sync.RWMutex
	token string
	lang  string
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		rest:    rest.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lang
}

func (c *Client) SetLanguage(lang string) {
	c.mu.Lock()
	c.lang = lang
	c.mu.Unlock()
}

// Login exchanges credentials for a token, keeps it for the next requests and returns its session.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if _, err := c.do(ctx, rest.Post, "/auth/login", "", body, &out); err != nil {
		return Session{}, errors.Wrap(err, "logging in")
	}
	c.SetToken(out.Token)
	return ParseSession(out.Token)
}

// RefreshToken swaps the current token for a fresh one.
func (c *Client) RefreshToken(ctx context.Context) (Session, error) {
	var out struct {
		Token string `json:"token"`
	}
	if _, err := c.do(ctx, rest.Post, "/auth/token-refresh", "", nil, &out); err != nil {
		return Session{}, errors.Wrap(err, "refreshing token")
	}
	c.SetToken(out.Token)
	return ParseSession(out.Token)
}

// Me returns the profile of the logged in user.
func (c *Client) Me(ctx context.Context) (Record, error) {
	var rec Record
	if _, err := c.do(ctx, rest.Get, "/me", "", nil, &rec); err != nil {
		return nil, errors.Wrap(err, "getting profile")
	}
	return rec, nil
}

func (c *Client) Overview(ctx context.Context) (Record, error) {
	var rec Record
	if _, err := c.do(ctx, rest.Get, "/overview", "", nil, &rec); err != nil {
		return nil, errors.Wrap(err, "getting overview")
	}
	return rec, nil
}

// Resource returns the CRUD endpoints under /v1/<name>.
func (c *Client) Resource(name string) *Resource {
	return &Resource{client: c, path: "/" + strings.Trim(name, "/")}
}

// Send issues a request on an API path (relative to /v1). query is an encoded query string.
func (c *Client) Send(ctx context.Context, method rest.Method, path, query string, body interface{}) (*rest.Response, error) {
	req := rest.Request{
		Method:  method,
		BaseURL: c.url(path, query),
		Headers: map[string]string{"Accept": "application/json"},
	}
	if token := c.Token(); token != "" {
		req.Headers["Authorization"] = "Bearer " + token
	}
	if lang := c.Language(); lang != "" {
		req.Headers["Accept-Language"] = lang
	}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "marshalling body")
		}
		req.Body = data
		req.Headers["Content-Type"] = "application/json"
	}

	httpReq, err := rest.BuildRequestObject(req)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	res, err := c.rest.MakeRequest(httpReq.WithContext(ctx))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	resp, err := rest.BuildResponse(res)
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, newAPIError(resp)
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method rest.Method, path, query string, body, dst interface{}) (*rest.Response, error) {
	resp, err := c.Send(ctx, method, path, query, body)
	if err != nil {
		return resp, err
	}
	if dst != nil && resp.StatusCode != http.StatusNoContent && resp.Body != "" {
		if err = json.Unmarshal([]byte(resp.Body), dst); err != nil {
			return resp, errors.Wrap(err, "decoding response")
		}
	}
	return resp, nil
}

func (c *Client) url(path, query string) string {
	u := c.baseURL + apiPrefix + path
	if query != "" {
		u += "?" + query
	}
	return u
}

// QueryString builds a query string from filter params and list params.
func QueryString(filters map[string]interface{}, page, pageSize int, ordering ...string) string {
	params := make(map[string]interface{}, len(filters)+3)
	for k, v := range filters {
		params[k] = v
	}
	if page > 0 {
		params["page"] = page
	}
	if pageSize > 0 {
		params["page_size"] = pageSize
	}
	if len(ordering) > 0 {
		params["ordering"] = strings.Join(ordering, ",")
	}
	return core.FilterParamsToQueryString(params)
}
