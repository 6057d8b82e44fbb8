package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Login(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/auth/login", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "right" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"فشل تسجيل الدخول"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"` + signSession(t, []string{"admin:"}, "ar", time.Now().Add(time.Hour)) + `"}`))
	})
	client.SetToken("")

	_, err := client.Login(context.Background(), "sara", "wrong")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.Empty(t, client.Token())
	assert.Contains(t, err.Error(), "فشل تسجيل الدخول")

	s, err := client.Login(context.Background(), "sara", "right")
	require.NoError(t, err)
	assert.NotEmpty(t, client.Token())
	assert.True(t, s.HasRole("admin:"))
}

func TestClient_Send(t *testing.T) {
	var calls int
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "status=active", r.URL.RawQuery)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"Cup"}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	})

	resp, err := client.Send(context.Background(), http.MethodPost, "/competitions", "status=active", map[string]string{"name": "Cup"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"id":"1"}`, resp.Body)

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.Send(ctx, http.MethodPost, "/competitions", "status=active", map[string]string{"name": "Cup"})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestResource(t *testing.T) {
	var (
		deleted  []string
		bulkBody []byte
	)
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ar", r.Header.Get("Accept-Language"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/grades":
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			assert.Equal(t, "200", r.URL.Query().Get("page_size"))
			assert.Empty(t, r.URL.Query().Get("per_page"))
			w.Header().Set("X-Total-Count", "3")
			switch page {
			case 1:
				_, _ = w.Write([]byte(`[{"id":"1"},{"id":"2"}]`))
			case 2:
				_, _ = w.Write([]byte(`[{"id":"3"}]`))
			default:
				_, _ = w.Write([]byte(`[]`))
			}
		case r.Method == http.MethodGet && r.URL.Path == "/v1/grades/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"name":"this field is required","level":"level must be 12 or less"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/v1/grades":
			bulkBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete:
			deleted = append(deleted, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	})
	client.SetLanguage("ar")
	grades := client.Resource("grades")
	ctx := context.Background()

	rows, err := grades.ListAll(ctx, "stage=primary&per_page=2")
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = grades.Get(ctx, "missing")
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Equal(t, "api: 404 not found", err.Error())

	_, err = grades.Create(ctx, Values{"level": 13})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, map[string]string{"name": "this field is required", "level": "level must be 12 or less"}, apiErr.Fields)
	assert.Equal(t, "api: 400 level: level must be 12 or less; name: this field is required", err.Error())

	require.NoError(t, grades.Delete(ctx, "7"))
	assert.Equal(t, []string{"/v1/grades/7"}, deleted)
	require.NoError(t, grades.Delete(ctx, "8", "9"))
	assert.JSONEq(t, `{"ids":["8","9"]}`, string(bulkBody))
	require.NoError(t, grades.Delete(ctx))
}
