package pace

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"healthdash/internal/telemetry/tracing"
	"healthdash/pkg"

	log "github.com/sirupsen/logrus"
)

// Handler serves the pace/speed/time conversion tools.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type PaceResponse struct {
	PaceMinPerKm float64 `json:"paceMinPerKm"`
	Formatted    string  `json:"formatted"`
}

type DistanceResponse struct {
	DistanceKm float64 `json:"distanceKm"`
}

type TimeResponse struct {
	TotalMinutes float64 `json:"totalMinutes"`
	Clock        Clock   `json:"clock"`
	Formatted    string  `json:"formatted"`
}

type SpeedResponse struct {
	SpeedKmh    float64      `json:"speedKmh"`
	FinishTimes []FinishTime `json:"finishTimes"`
}

type PaceFromSpeedResponse struct {
	PaceMinPerKm float64      `json:"paceMinPerKm"`
	Formatted    string       `json:"formatted"`
	FinishTimes  []FinishTime `json:"finishTimes"`
}

// HandlePace: pace from distance and an h/m/s time split.
func (handler *Handler) HandlePace(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.pace.pace")
	defer span.End()

	distance, err := floatParam(r, "distance")
	if err != nil {
		http.Error(w, "error, invalid distance", http.StatusBadRequest)
		return
	}
	totalMinutes, err := timeSplitParam(r)
	if err != nil {
		http.Error(w, "error, invalid time", http.StatusBadRequest)
		return
	}

	p, err := FromDistanceTime(distance, totalMinutes)
	if err != nil {
		writeConversionErr(w, err)
		return
	}

	writeJson(w, PaceResponse{
		PaceMinPerKm: p,
		Formatted:    FormatPace(p),
	})
}

// HandleDistance: distance from pace and an h/m/s time split.
func (handler *Handler) HandleDistance(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.pace.distance")
	defer span.End()

	p, err := floatParam(r, "pace")
	if err != nil {
		http.Error(w, "error, invalid pace", http.StatusBadRequest)
		return
	}
	totalMinutes, err := timeSplitParam(r)
	if err != nil {
		http.Error(w, "error, invalid time", http.StatusBadRequest)
		return
	}

	distance, err := DistanceFor(p, totalMinutes)
	if err != nil {
		writeConversionErr(w, err)
		return
	}

	writeJson(w, DistanceResponse{DistanceKm: distance})
}

// HandleTime: time from distance and pace.
func (handler *Handler) HandleTime(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.pace.time")
	defer span.End()

	distance, err := floatParam(r, "distance")
	if err != nil {
		http.Error(w, "error, invalid distance", http.StatusBadRequest)
		return
	}
	p, err := floatParam(r, "pace")
	if err != nil {
		http.Error(w, "error, invalid pace", http.StatusBadRequest)
		return
	}

	totalMinutes, err := TimeFor(distance, p)
	if err != nil {
		writeConversionErr(w, err)
		return
	}

	clock := ClockFromMinutes(totalMinutes)
	writeJson(w, TimeResponse{
		TotalMinutes: totalMinutes,
		Clock:        clock,
		Formatted:    clock.String(),
	})
}

// HandleSpeed: speed in km/h from pace, with the finish times table.
func (handler *Handler) HandleSpeed(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.pace.speed")
	defer span.End()

	p, err := floatParam(r, "pace")
	if err != nil {
		http.Error(w, "error, invalid pace", http.StatusBadRequest)
		return
	}

	speed, err := SpeedFromPace(p)
	if err != nil {
		writeConversionErr(w, err)
		return
	}
	finishTimes, err := FinishTimes(p)
	if err != nil {
		writeConversionErr(w, err)
		return
	}

	writeJson(w, SpeedResponse{
		SpeedKmh:    speed,
		FinishTimes: finishTimes,
	})
}

// HandlePaceFromSpeed: pace in min/km from speed, with the finish times table.
func (handler *Handler) HandlePaceFromSpeed(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.pace.paceFromSpeed")
	defer span.End()

	speed, err := floatParam(r, "speed")
	if err != nil {
		http.Error(w, "error, invalid speed", http.StatusBadRequest)
		return
	}

	p, err := PaceFromSpeed(speed)
	if err != nil {
		writeConversionErr(w, err)
		return
	}
	finishTimes, err := FinishTimes(p)
	if err != nil {
		writeConversionErr(w, err)
		return
	}

	writeJson(w, PaceFromSpeedResponse{
		PaceMinPerKm: p,
		Formatted:    FormatPace(p),
		FinishTimes:  finishTimes,
	})
}

func floatParam(r *http.Request, name string) (float64, error) {
	return strconv.ParseFloat(r.URL.Query().Get(name), 64)
}

// timeSplitParam reads the h/m/s query params, all optional, default 0.
func timeSplitParam(r *http.Request) (float64, error) {
	intParam := func(name string) (int, error) {
		value := r.URL.Query().Get(name)
		if value == "" {
			return 0, nil
		}
		return strconv.Atoi(value)
	}

	hours, err := intParam("h")
	if err != nil {
		return 0, err
	}
	minutes, err := intParam("m")
	if err != nil {
		return 0, err
	}
	seconds, err := intParam("s")
	if err != nil {
		return 0, err
	}
	return ToMinutes(hours, minutes, seconds), nil
}

func writeConversionErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Errorf("pace conversion failed: %s", err)
	http.Error(w, "conversion failed", http.StatusInternalServerError)
}

func writeJson(w http.ResponseWriter, response any) {
	responseJson, err := json.Marshal(response)
	if err != nil {
		log.Errorf("marshal pace tools response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, responseJson)
}
