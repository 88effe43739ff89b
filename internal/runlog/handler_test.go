package runlog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"healthdash/internal/telemetry/metrics"
	"healthdash/pkg"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testRouter(handler *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/runs", handler.HandleAdd).Methods("POST", "OPTIONS")
	r.HandleFunc("/runs", handler.HandleList).Methods("GET")
	r.HandleFunc("/runs/stats", handler.HandleStats).Methods("GET")
	r.HandleFunc("/runs/month/{year}/{month}", handler.HandleMonth).Methods("GET")
	r.HandleFunc("/runs/calendar/{year}/{month}", handler.HandleCalendar).Methods("GET")
	return r
}

func TestHandler_Add(t *testing.T) {
	repo := newRepoMock()
	metricsManager := metrics.NewTestManager()
	router := testRouter(NewHandler(repo, metricsManager))

	reqBody := `{"date": "03/05/2024", "distanceKm": 10, "hours": 0, "minutes": 52, "seconds": 30}`
	req := httptest.NewRequest("POST", "/runs", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp AddResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 5.25, resp.Run.PaceMinPerKm)
	assert.Equal(t, "5:15", resp.Pace)

	require.Len(t, repo.runs, 1)
	assert.Equal(t, pkg.NewDay(2024, time.May, 3), repo.runs[0].Date)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterRuns))
}

func TestHandler_Add_invalidDistance(t *testing.T) {
	repo := newRepoMock()
	router := testRouter(NewHandler(repo, metrics.NewTestManager()))

	req := httptest.NewRequest("POST", "/runs", strings.NewReader(`{"distanceKm": 0, "minutes": 30}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, repo.runs)
}

func TestHandler_Add_repoError(t *testing.T) {
	repo := newRepoMock()
	repo.returnErr = errRunsRepoMock
	router := testRouter(NewHandler(repo, metrics.NewTestManager()))

	req := httptest.NewRequest("POST", "/runs", strings.NewReader(`{"distanceKm": 5, "minutes": 25}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandler_List(t *testing.T) {
	repo := newRepoMock()
	repo.runs = []Run{
		mustRun(t, pkg.NewDay(2024, time.May, 3), 10, 60),
	}
	router := testRouter(NewHandler(repo, metrics.NewTestManager()))

	req := httptest.NewRequest("GET", "/runs", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Runs, 1)
	assert.Equal(t, 10.0, resp.Runs[0].DistanceKm)
}

func TestHandler_Stats(t *testing.T) {
	repo := newRepoMock()
	repo.runs = []Run{
		mustRun(t, pkg.NewDay(2024, time.May, 3), 10, 60),
		mustRun(t, pkg.NewDay(2024, time.May, 5), 5, 20),
	}
	router := testRouter(NewHandler(repo, metrics.NewTestManager()))

	req := httptest.NewRequest("GET", "/runs/stats", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 15.0, stats.TotalKm)
	assert.Equal(t, "4:00", stats.BestPace)
}

func TestHandler_Month(t *testing.T) {
	repo := newRepoMock()
	repo.runs = []Run{
		mustRun(t, pkg.NewDay(2024, time.May, 3), 1, 4),
		mustRun(t, pkg.NewDay(2024, time.May, 10), 9, 54),
		mustRun(t, pkg.NewDay(2024, time.June, 1), 5, 25),
	}
	router := testRouter(NewHandler(repo, metrics.NewTestManager()))

	req := httptest.NewRequest("GET", "/runs/month/2024/5", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp MonthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Summary.Count)
	assert.Equal(t, 5.0, resp.Summary.AvgPaceMinPerKm)
	require.Len(t, resp.Runs, 2)
}

func TestHandler_Calendar_invalidMonth(t *testing.T) {
	router := testRouter(NewHandler(newRepoMock(), metrics.NewTestManager()))

	req := httptest.NewRequest("GET", "/runs/calendar/2024/0", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Calendar(t *testing.T) {
	repo := newRepoMock()
	repo.runs = []Run{
		mustRun(t, pkg.NewDay(2024, time.February, 10), 8, 40),
	}
	router := testRouter(NewHandler(repo, metrics.NewTestManager()))

	req := httptest.NewRequest("GET", "/runs/calendar/2024/2", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp CalendarResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Cells, 29)
	assert.True(t, resp.Cells[9].HasRuns)
	assert.Equal(t, 8.0, resp.Cells[9].DistanceKm)
}
