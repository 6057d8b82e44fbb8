package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nebras-project/nebras-dashboard/apps/api/di"
	echoapi "github.com/Nebras-project/nebras-dashboard/apps/api/echo"
	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/user"
	"github.com/Nebras-project/nebras-dashboard/storage/cache"
	inmemdb "github.com/Nebras-project/nebras-dashboard/storage/database/inmem"
)

const testPassword = "Str0ng!Passw"

var (
	errMissingToken     = httpErr{Error: "missing or malformed jwt"}
	errPermissionDenied = httpErr{Error: "permission denied"}
)

type testApp struct {
	server *echoapi.Server
	repos  di.Repositories
	conf   *core.Config
}

func setup(t *testing.T) testApp {
	t.Helper()
	conf := core.NewTestConfig()
	logger := di.NewLogger(conf, "TEST : ")
	validate, uni := di.NewValidation()
	repos := di.NewInMemoryRepositories(inmemdb.Open())

	deps := di.NewServerDeps(conf, logger, validate, uni, repos, di.NewEmailService(conf, logger), cache.Nop{})
	return testApp{server: echoapi.NewServer(deps), repos: repos, conf: conf}
}

func (app testApp) createUser(t *testing.T, uname string, active bool, roles ...string) user.User {
	t.Helper()
	now := time.Now().UTC()
	usr := user.User{
		Name:      uname,
		Username:  uname,
		Email:     uname + "@test.sa",
		Roles:     roles,
		Settings:  user.DefaultSettings(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	usr.SetActive(active)
	require.NoError(t, usr.SetPassword(testPassword))

	usr, err := app.repos.Users.CreateUser(context.Background(), usr)
	require.NoError(t, err)
	return usr
}

func (app testApp) token(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := echoapi.GenerateToken(app.conf, echoapi.NewClaims(app.conf, usr))
	require.NoError(t, err)
	return token
}

func (app testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) *http.Request {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func newRequest(method, path string, data ...[]byte) *http.Request {
	return newAuthRequest(method, path, "", data...)
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func unmarshall(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("unmarshall(%s) failed: %v", rec.Body.String(), err)
	}
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, "code; body %s", rec.Body.String())
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app testApp, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(newAuthRequest(tt.method, tt.path, tt.token, tt.body))
			checkCodeAndData(t, tt, rec)
		})
	}
}
