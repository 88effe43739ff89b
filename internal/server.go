package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"healthdash/internal/bodymetrics"
	"healthdash/internal/config"
	"healthdash/internal/foodlog"
	"healthdash/internal/middleware"
	"healthdash/internal/notes"
	"healthdash/internal/pace"
	"healthdash/internal/runlog"
	"healthdash/internal/telemetry/metrics"
	"healthdash/pkg"
)

// file names inside the data directory, fixed for compatibility with
// existing data files
const (
	foodLogFileName = "food_log.csv"
	runsFileName    = "runs.csv"
	notesFileName   = "notes.csv"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	foodLogRepo *foodlog.Repo
	runsRepo    *runlog.Repo
	notesRepo   *notes.Repo

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config      *config.Config
	VersionInfo string
}

func NewServer(params NewServerParams) (*Server, error) {
	dataDir := params.Config.DataDirPath
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("healthdash", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	return &Server{
		config:      params.Config,
		versionInfo: params.VersionInfo,

		foodLogRepo: foodlog.NewRepo(filepath.Join(dataDir, foodLogFileName)),
		runsRepo:    runlog.NewRepo(filepath.Join(dataDir, runsFileName)),
		notesRepo:   notes.NewRepo(filepath.Join(dataDir, notesFileName)),

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	bodyMetricsHandler := bodymetrics.NewHandler()
	r.HandleFunc("/body/analyze", bodyMetricsHandler.HandleAnalyze).Methods("GET", "OPTIONS").Name("body-analyze")

	paceHandler := pace.NewHandler()
	r.HandleFunc("/tools/pace", paceHandler.HandlePace).Methods("GET", "OPTIONS").Name("tools-pace")
	r.HandleFunc("/tools/distance", paceHandler.HandleDistance).Methods("GET", "OPTIONS").Name("tools-distance")
	r.HandleFunc("/tools/time", paceHandler.HandleTime).Methods("GET", "OPTIONS").Name("tools-time")
	r.HandleFunc("/tools/speed", paceHandler.HandleSpeed).Methods("GET", "OPTIONS").Name("tools-speed")
	r.HandleFunc("/tools/pace-from-speed", paceHandler.HandlePaceFromSpeed).Methods("GET", "OPTIONS").Name("tools-pace-from-speed")

	foodLogHandler := foodlog.NewHandler(s.foodLogRepo, s.metricsManager)
	r.HandleFunc("/foodlog", foodLogHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-foodlog-entries")
	r.HandleFunc("/foodlog", foodLogHandler.HandleList).Methods("GET").Name("list-foodlog")
	r.HandleFunc("/foodlog/summary", foodLogHandler.HandleDailySummary).Methods("GET").Name("foodlog-summary")
	r.HandleFunc("/foodlog/calendar/{year}/{month}", foodLogHandler.HandleCalendar).Methods("GET").Name("foodlog-calendar")
	r.HandleFunc("/foodlog/foods", foodLogHandler.HandleFoodCatalog).Methods("GET").Name("foodlog-foods")

	runsHandler := runlog.NewHandler(s.runsRepo, s.metricsManager)
	r.HandleFunc("/runs", runsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-run")
	r.HandleFunc("/runs", runsHandler.HandleList).Methods("GET").Name("list-runs")
	r.HandleFunc("/runs/stats", runsHandler.HandleStats).Methods("GET").Name("runs-stats")
	r.HandleFunc("/runs/month/{year}/{month}", runsHandler.HandleMonth).Methods("GET").Name("runs-month")
	r.HandleFunc("/runs/calendar/{year}/{month}", runsHandler.HandleCalendar).Methods("GET").Name("runs-calendar")

	notesHandler := notes.NewHandler(s.notesRepo, s.metricsManager)
	r.HandleFunc("/notes", notesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-notes")
	r.HandleFunc("/notes", notesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-note")
	r.HandleFunc("/notes", notesHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-note")
	r.HandleFunc("/notes/{id}", notesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-note")

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
