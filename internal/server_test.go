package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"healthdash/internal/config"
	"healthdash/internal/foodlog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(NewServerParams{
		Config: &config.Config{
			Environment: "development",
			DataDirPath: t.TempDir(),
		},
		VersionInfo: "test-version",
	})
	require.NoError(t, err)
	return server
}

func TestServer_routerSetup_version(t *testing.T) {
	router := newTestServer(t).routerSetup()

	req := httptest.NewRequest("GET", "/version", nil)
	req.Header.Set("User-Agent", "test-agent")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "test-version", rr.Body.String())
}

func TestServer_routerSetup_unknownPath(t *testing.T) {
	router := newTestServer(t).routerSetup()

	req := httptest.NewRequest("GET", "/nonexistent", nil)
	req.Header.Set("User-Agent", "test-agent")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_routerSetup_paceTools(t *testing.T) {
	router := newTestServer(t).routerSetup()

	req := httptest.NewRequest("GET", "/tools/pace?distance=10&m=50", nil)
	req.Header.Set("User-Agent", "test-agent")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "5:00")
}

func TestServer_routerSetup_foodLogRoundtrip(t *testing.T) {
	router := newTestServer(t).routerSetup()

	addReq := httptest.NewRequest(
		"POST",
		"/foodlog",
		strings.NewReader(`[{"date": "01/01/2024", "meal": "Lunch", "food": "Salad", "caloriesIn": 50}]`),
	)
	addReq.Header.Set("Content-Type", "application/json")
	addReq.Header.Set("User-Agent", "test-agent")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, addReq)
	require.Equal(t, http.StatusCreated, rr.Code)

	listReq := httptest.NewRequest("GET", "/foodlog", nil)
	listReq.Header.Set("User-Agent", "test-agent")
	rr = httptest.NewRecorder()

	router.ServeHTTP(rr, listReq)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp foodlog.ListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Salad", resp.Entries[0].Food)
}
