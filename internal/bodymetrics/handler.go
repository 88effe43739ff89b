package bodymetrics

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"healthdash/internal/telemetry/tracing"
	"healthdash/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// HandleAnalyze computes BMI, BMR, the daily calorie estimate, the
// healthy weight range and a recommendation for the given measurements.
func (handler *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodymetrics.analyze")
	defer span.End()

	weight, err := parseFloatParam(r, "weight")
	if err != nil {
		http.Error(w, "error, invalid weight", http.StatusBadRequest)
		return
	}
	height, err := parseFloatParam(r, "height")
	if err != nil {
		http.Error(w, "error, invalid height", http.StatusBadRequest)
		return
	}
	age, err := parseFloatParam(r, "age")
	if err != nil {
		http.Error(w, "error, invalid age", http.StatusBadRequest)
		return
	}
	sex := Sex(r.URL.Query().Get("sex"))

	analysis, err := Analyze(weight, height, age, sex)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("body analyze failed: %s", err)
		http.Error(w, "analyze failed", http.StatusInternalServerError)
		return
	}

	analysisJson, err := json.Marshal(analysis)
	if err != nil {
		log.Errorf("marshal body analysis: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, analysisJson)
}

func parseFloatParam(r *http.Request, name string) (float64, error) {
	return strconv.ParseFloat(r.URL.Query().Get(name), 64)
}
