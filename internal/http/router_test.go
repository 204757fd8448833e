package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spycats/internal/agency"
	"github.com/MrJamesThe3rd/spycats/internal/agency/memstore"
	"github.com/MrJamesThe3rd/spycats/internal/breed"
	spyHttp "github.com/MrJamesThe3rd/spycats/internal/http"
	breedHandler "github.com/MrJamesThe3rd/spycats/internal/http/breed"
	catHandler "github.com/MrJamesThe3rd/spycats/internal/http/cat"
	missionHandler "github.com/MrJamesThe3rd/spycats/internal/http/mission"
	targetHandler "github.com/MrJamesThe3rd/spycats/internal/http/target"
)

type registry struct {
	names []string
	err   error
}

func (r registry) Breeds(context.Context) ([]string, error) { return r.names, r.err }

func (r registry) Admit(ctx context.Context, b string) bool {
	if r.err != nil {
		return true
	}

	return breed.Contains(r.names, b)
}

func newServer(t *testing.T, reg registry, opts spyHttp.Options) *httptest.Server {
	t.Helper()

	svc := agency.NewService(memstore.New(), reg)

	if opts.AllowedOrigins == nil {
		opts.AllowedOrigins = []string{"http://localhost:3000"}
	}

	router := spyHttp.New(
		opts,
		catHandler.NewHandler(svc),
		missionHandler.NewHandler(svc),
		targetHandler.NewHandler(svc),
		breedHandler.NewHandler(reg),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c client) do(method, path, body string) (int, map[string]any) {
	c.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)

	var out map[string]any
	if len(raw) > 0 {
		require.NoError(c.t, json.Unmarshal(raw, &out), string(raw))
	}

	return resp.StatusCode, out
}

const tomJSON = `{"name": "Tom", "years_of_experience": 5, "breed": "siamese", "salary": 1500.5}`

func TestAPI_Cats(t *testing.T) {
	srv := newServer(t, registry{names: []string{"Siamese"}}, spyHttp.Options{})
	c := client{t: t, base: srv.URL}

	status, body := c.do(http.MethodPost, "/api/v1/cats", tomJSON)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "Tom", body["name"])
	assert.Equal(t, 1500.5, body["salary"])

	id := body["id"].(string)

	status, body = c.do(http.MethodPost, "/api/v1/cats", `{"name": "Rex", "years_of_experience": 1, "breed": "Dragon", "salary": 10}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["detail"], "invalid breed")

	status, body = c.do(http.MethodPost, "/api/v1/cats", `{"name": "  ", "years_of_experience": 1, "breed": "Siamese", "salary": 10}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body["detail"], "name")

	status, _ = c.do(http.MethodPost, "/api/v1/cats", `{"name": "Rex", "breed": "Siamese", "salary": 10}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = c.do(http.MethodPost, "/api/v1/cats", `{"name": "Rex"`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = c.do(http.MethodPatch, "/api/v1/cats/"+id, `{"salary": 2000}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, 2000.0, body["salary"])

	status, _ = c.do(http.MethodPatch, "/api/v1/cats/"+id, `{"salary": -1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, body = c.do(http.MethodGet, "/api/v1/cats?limit=10", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])
	assert.Len(t, body["cats"], 1)

	status, _ = c.do(http.MethodGet, "/api/v1/cats?limit=500", "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, body = c.do(http.MethodGet, "/api/v1/cats/"+id+"/availability", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["available"])

	status, _ = c.do(http.MethodDelete, "/api/v1/cats/"+id, "")
	assert.Equal(t, http.StatusNoContent, status)

	status, body = c.do(http.MethodGet, "/api/v1/cats/"+id, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body["detail"], "not found")

	status, _ = c.do(http.MethodGet, "/api/v1/cats/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_SalaryIsFixedPoint(t *testing.T) {
	srv := newServer(t, registry{names: []string{"Siamese"}}, spyHttp.Options{})

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/cats", strings.NewReader(tomJSON))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"salary":1500.50`)
}

func TestAPI_MissionLifecycle(t *testing.T) {
	srv := newServer(t, registry{names: []string{"Siamese"}}, spyHttp.Options{})
	c := client{t: t, base: srv.URL}

	_, cat := c.do(http.MethodPost, "/api/v1/cats", tomJSON)
	catID := cat["id"].(string)

	status, _ := c.do(http.MethodPost, "/api/v1/missions", `{"targets": []}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = c.do(http.MethodPost, "/api/v1/missions", `{"targets": [{"name": "Boris", "country": "UK"}, {"name": "Boris", "country": "FR"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, mission := c.do(http.MethodPost, "/api/v1/missions", `{"targets": [{"name": "Boris", "country": "UK", "notes": "  "}, {"name": "Ivan", "country": "RU"}]}`)
	require.Equal(t, http.StatusCreated, status, mission)
	assert.Nil(t, mission["cat_id"])

	missionID := mission["id"].(string)
	targets := mission["targets"].([]any)
	require.Len(t, targets, 2)
	assert.Nil(t, targets[0].(map[string]any)["notes"])

	_, other := c.do(http.MethodPost, "/api/v1/missions", `{"targets": [{"name": "Olga", "country": "PL"}]}`)

	status, assigned := c.do(http.MethodPatch, fmt.Sprintf("/api/v1/missions/%s/assign/%s", missionID, catID), "")
	require.Equal(t, http.StatusOK, status, assigned)
	assert.Equal(t, catID, assigned["cat_id"])
	assert.Equal(t, "Tom", assigned["cat"].(map[string]any)["name"])

	status, body := c.do(http.MethodPatch, fmt.Sprintf("/api/v1/missions/%s/assign/%s", other["id"], catID), "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body["detail"], "active mission")

	status, _ = c.do(http.MethodDelete, "/api/v1/cats/"+catID, "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = c.do(http.MethodDelete, "/api/v1/missions/"+missionID, "")
	assert.Equal(t, http.StatusConflict, status)

	for _, raw := range targets {
		id := raw.(map[string]any)["id"].(string)

		status, body = c.do(http.MethodPatch, "/api/v1/targets/"+id, `{"notes": "done", "is_complete": true}`)
		require.Equal(t, http.StatusOK, status, body)
		assert.Equal(t, true, body["is_complete"])
		assert.NotNil(t, body["completed_at"])
	}

	first := targets[0].(map[string]any)["id"].(string)
	status, _ = c.do(http.MethodPatch, "/api/v1/targets/"+first, `{"notes": "too late"}`)
	assert.Equal(t, http.StatusConflict, status)

	status, body = c.do(http.MethodGet, "/api/v1/missions/"+missionID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["is_complete"])

	status, _ = c.do(http.MethodDelete, "/api/v1/cats/"+catID, "")
	assert.Equal(t, http.StatusNoContent, status)

	status, body = c.do(http.MethodGet, "/api/v1/missions", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["total"])

	status, _ = c.do(http.MethodDelete, "/api/v1/missions/"+other["id"].(string), "")
	assert.Equal(t, http.StatusNoContent, status)
}

func TestAPI_Breeds(t *testing.T) {
	srv := newServer(t, registry{names: []string{"Bengal", "Siamese"}}, spyHttp.Options{})
	c := client{t: t, base: srv.URL}

	status, body := c.do(http.MethodGet, "/api/v1/breeds", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"Bengal", "Siamese"}, body["breeds"])

	down := newServer(t, registry{err: errors.New("dial tcp: refused")}, spyHttp.Options{})
	c = client{t: t, base: down.URL}

	status, _ = c.do(http.MethodGet, "/api/v1/breeds", "")
	assert.Equal(t, http.StatusBadGateway, status)

	// Admission fails open while the registry is down.
	status, _ = c.do(http.MethodPost, "/api/v1/cats", tomJSON)
	assert.Equal(t, http.StatusCreated, status)
}

func TestAPI_Auth(t *testing.T) {
	const secret = "s3cret"

	srv := newServer(t, registry{names: []string{"Siamese"}}, spyHttp.Options{JWTSecret: secret})
	c := client{t: t, base: srv.URL}

	status, _ := c.do(http.MethodGet, "/api/v1/cats", "")
	assert.Equal(t, http.StatusOK, status)

	status, body := c.do(http.MethodPost, "/api/v1/cats", tomJSON)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "authentication required", body["detail"])

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "ops"}).SignedString([]byte(secret))
	require.NoError(t, err)

	c.token = token
	status, _ = c.do(http.MethodPost, "/api/v1/cats", tomJSON)
	assert.Equal(t, http.StatusCreated, status)
}

func TestAPI_Infrastructure(t *testing.T) {
	srv := newServer(t, registry{}, spyHttp.Options{})

	noRedirect := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}

	resp, err := noRedirect.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/api/v1/cats", resp.Header.Get("Location"))

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/cats", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAPI_HealthzReportsBackendFailure(t *testing.T) {
	srv := newServer(t, registry{}, spyHttp.Options{
		Ping: func(context.Context) error { return errors.New("connection refused") },
	})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
