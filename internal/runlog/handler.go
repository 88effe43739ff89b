package runlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"healthdash/internal/pace"
	"healthdash/internal/telemetry/metrics"
	"healthdash/internal/telemetry/tracing"
	"healthdash/pkg"
)

type runsRepo interface {
	List(ctx context.Context) ([]Run, error)
	Add(ctx context.Context, run Run) error
}

// AddRequest carries the time as an hours/minutes/seconds split, the
// way it is entered in the UI.
type AddRequest struct {
	Date       pkg.Day `json:"date"`
	DistanceKm float64 `json:"distanceKm"`
	Hours      int     `json:"hours"`
	Minutes    int     `json:"minutes"`
	Seconds    int     `json:"seconds"`
}

type AddResponse struct {
	Run  Run    `json:"run"`
	Pace string `json:"pace"`
}

type ListResponse struct {
	Runs  []Run `json:"runs"`
	Total int   `json:"total"`
}

type MonthResponse struct {
	Summary MonthSummary `json:"summary"`
	Runs    []Run        `json:"runs"`
}

type CalendarResponse struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Cells []CalendarCell `json:"cells"`
}

type Handler struct {
	repo    runsRepo
	metrics *metrics.Manager
}

func NewHandler(repo runsRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runlog.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var addReq AddRequest
	if err := json.NewDecoder(r.Body).Decode(&addReq); err != nil {
		log.Tracef("add run, unmarshal json params: %s", err)
		http.Error(w, "add run failed", http.StatusBadRequest)
		return
	}

	if addReq.Date.IsZero() {
		addReq.Date = pkg.Today()
	}

	run, err := NewRun(addReq.Date, addReq.DistanceKm, pace.ToMinutes(addReq.Hours, addReq.Minutes, addReq.Seconds))
	if err != nil {
		if errors.Is(err, pace.ErrInvalidInput) {
			http.Error(w, "error, distance and time must be positive", http.StatusBadRequest)
			return
		}
		log.Errorf("add run: %s", err)
		http.Error(w, "error, failed to add run", http.StatusInternalServerError)
		return
	}

	if err := handler.repo.Add(ctx, run); err != nil {
		log.Errorf("failed to add run: %s", err)
		http.Error(w, "error, failed to add run", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterRuns.Inc()

	log.Debugf("added run: %s, %.2f km", run.Date, run.DistanceKm)
	responseJson, err := json.Marshal(AddResponse{
		Run:  run,
		Pace: pace.FormatPace(run.PaceMinPerKm),
	})
	if err != nil {
		log.Errorf("marshal add run response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, responseJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runlog.list")
	defer span.End()

	runs, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list runs: %s", err)
		http.Error(w, "failed to get runs", http.StatusInternalServerError)
		return
	}

	if len(runs) == 0 {
		runs = []Run{}
	}

	responseJson, err := json.Marshal(ListResponse{
		Runs:  runs,
		Total: len(runs),
	})
	if err != nil {
		log.Errorf("marshal runs: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, responseJson)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runlog.stats")
	defer span.End()

	runs, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("run stats, list runs: %s", err)
		http.Error(w, "failed to get runs", http.StatusInternalServerError)
		return
	}

	responseJson, err := json.Marshal(StatsOf(runs))
	if err != nil {
		log.Errorf("marshal run stats: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, responseJson)
}

func (handler *Handler) HandleMonth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runlog.month")
	defer span.End()

	year, month, err := yearMonthVars(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	runs, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("runs for month, list runs: %s", err)
		http.Error(w, "failed to get runs", http.StatusInternalServerError)
		return
	}

	monthRuns := RunsForMonth(runs, year, month)
	if len(monthRuns) == 0 {
		monthRuns = []Run{}
	}

	responseJson, err := json.Marshal(MonthResponse{
		Summary: SummaryForMonth(runs, year, month),
		Runs:    monthRuns,
	})
	if err != nil {
		log.Errorf("marshal runs month: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, responseJson)
}

func (handler *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runlog.calendar")
	defer span.End()

	year, month, err := yearMonthVars(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	runs, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("runs calendar, list runs: %s", err)
		http.Error(w, "failed to get runs", http.StatusInternalServerError)
		return
	}

	responseJson, err := json.Marshal(CalendarResponse{
		Year:  year,
		Month: int(month),
		Cells: CalendarMonth(runs, year, month),
	})
	if err != nil {
		log.Errorf("marshal runs calendar: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, responseJson)
}

func yearMonthVars(r *http.Request) (int, time.Month, error) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		return 0, 0, fmt.Errorf("error, year invalid")
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("error, month invalid")
	}
	return year, time.Month(month), nil
}
