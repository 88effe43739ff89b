package foodlog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"healthdash/internal/telemetry/metrics"
	"healthdash/internal/telemetry/tracing"
	"healthdash/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type foodLogRepo interface {
	List(ctx context.Context) ([]Entry, error)
	Add(ctx context.Context, entries []Entry) error
}

type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

type AddResponse struct {
	Added int `json:"added"`
}

type SummaryResponse struct {
	Days []DaySummary `json:"days"`
}

type CalendarResponse struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Cells []CalendarCell `json:"cells"`
}

type Handler struct {
	repo    foodLogRepo
	metrics *metrics.Manager
}

func NewHandler(repo foodLogRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

// HandleAdd stores a batch of entries, e.g. all meals of a day plus an
// optional exercise row.
func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.foodlog.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var entries []Entry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		log.Tracef("add food log entries, unmarshal json params: %s", err)
		http.Error(w, "add entries failed", http.StatusBadRequest)
		return
	}
	if len(entries) == 0 {
		http.Error(w, "error, no entries", http.StatusBadRequest)
		return
	}

	for i := range entries {
		if entries[i].Date.IsZero() {
			entries[i].Date = pkg.Today()
		}
		if !entries[i].Meal.Valid() {
			http.Error(w, fmt.Sprintf("error, invalid meal [%s]", entries[i].Meal), http.StatusBadRequest)
			return
		}
		if entries[i].CaloriesIn < 0 || entries[i].CaloriesOut < 0 {
			http.Error(w, "error, negative calories", http.StatusBadRequest)
			return
		}
	}

	if err := handler.repo.Add(ctx, entries); err != nil {
		log.Errorf("failed to add %d food log entries: %s", len(entries), err)
		http.Error(w, "error, failed to add entries", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterFoodLogEntries.Add(float64(len(entries)))

	log.Debugf("added %d food log entries", len(entries))
	responseJson, err := json.Marshal(AddResponse{Added: len(entries)})
	if err != nil {
		log.Errorf("marshal add food log response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, responseJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.foodlog.list")
	defer span.End()

	entries, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list food log entries: %s", err)
		http.Error(w, "failed to get entries", http.StatusInternalServerError)
		return
	}

	if len(entries) == 0 {
		entries = []Entry{}
	}

	responseJson, err := json.Marshal(ListResponse{
		Entries: entries,
		Total:   len(entries),
	})
	if err != nil {
		log.Errorf("marshal food log entries: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, responseJson)
}

// HandleDailySummary returns per-day calorie totals with the band used
// for row coloring.
func (handler *Handler) HandleDailySummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.foodlog.dailySummary")
	defer span.End()

	entries, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("food log daily summary, list entries: %s", err)
		http.Error(w, "failed to get entries", http.StatusInternalServerError)
		return
	}

	days := DailySummary(entries)
	if len(days) == 0 {
		days = []DaySummary{}
	}

	responseJson, err := json.Marshal(SummaryResponse{Days: days})
	if err != nil {
		log.Errorf("marshal food log daily summary: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, responseJson)
}

func (handler *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.foodlog.calendar")
	defer span.End()

	year, month, err := yearMonthVars(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("food log calendar, list entries: %s", err)
		http.Error(w, "failed to get entries", http.StatusInternalServerError)
		return
	}

	responseJson, err := json.Marshal(CalendarResponse{
		Year:  year,
		Month: int(month),
		Cells: CalendarMonth(entries, year, month),
	})
	if err != nil {
		log.Errorf("marshal food log calendar: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, responseJson)
}

func (handler *Handler) HandleFoodCatalog(w http.ResponseWriter, _ *http.Request) {
	responseJson, err := json.Marshal(Catalog())
	if err != nil {
		log.Errorf("marshal food catalog: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, responseJson)
}

// yearMonthVars reads and validates the {year} and {month} path vars.
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
