package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/courtflow/courtflow/api"
	apicalendar "github.com/courtflow/courtflow/api/calendar"
	apicases "github.com/courtflow/courtflow/api/cases"
	apijudges "github.com/courtflow/courtflow/api/judges"
	apischeduling "github.com/courtflow/courtflow/api/scheduling"
	"github.com/courtflow/courtflow/config"
	"github.com/courtflow/courtflow/core/calendar"
	coremetrics "github.com/courtflow/courtflow/core/metrics"
	"github.com/courtflow/courtflow/core/prediction"
	"github.com/courtflow/courtflow/core/scheduling"
	corestore "github.com/courtflow/courtflow/core/store"
	"github.com/courtflow/courtflow/core/workload"
	"github.com/courtflow/courtflow/infra/logger"
	"github.com/courtflow/courtflow/infra/metrics"
	infraprediction "github.com/courtflow/courtflow/infra/prediction"
	infrastore "github.com/courtflow/courtflow/infra/store"
	"github.com/courtflow/courtflow/internal/eventbus"
)

// Service wires the scheduling core to its storage backend and exposes the
// HTTP surface.
type Service struct {
	Store       corestore.Store
	Finder      *scheduling.Finder
	Coordinator *scheduling.Coordinator
	Detector    *scheduling.Detector
	Analyzer    *workload.Analyzer
	Aggregator  *calendar.Aggregator
	Predictor   prediction.Engine

	server      *http.Server
	bus         eventbus.EventBus
	log         logger.Logger
	closer      func() error
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	st, closer, err := openStore(cfg.Storage)
	if err != nil {
		return nil, err
	}

	var sink coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err = metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
	}

	bus := eventbus.New()
	finder, err := scheduling.NewFinder(cfg.Scheduling, st, logg, sink)
	if err != nil {
		return nil, fmt.Errorf("slot finder: %w", err)
	}
	coordinator := scheduling.NewCoordinator(st, bus, sink, logg)

	svc := &Service{
		Store:       st,
		Finder:      finder,
		Coordinator: coordinator,
		Detector:    scheduling.NewDetector(st),
		Analyzer:    workload.NewAnalyzer(st, logg),
		Aggregator:  calendar.NewAggregator(st, logg),
		Predictor:   newPredictor(cfg.Prediction),
		bus:         bus,
		log:         logg,
		closer:      closer,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}
	svc.server = &http.Server{
		Addr:         cfg.API.Addr,
		Handler:      svc.routes(),
		ReadTimeout:  time.Duration(cfg.API.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.API.WriteTimeoutSeconds) * time.Second,
	}
	return svc, nil
}

func openStore(cfg config.StorageConfig) (corestore.Store, func() error, error) {
	switch cfg.Backend {
	case "sqlite":
		st, err := infrastore.NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite store: %w", err)
		}
		return st, st.Close, nil
	default:
		return corestore.NewMemoryStore(), nil, nil
	}
}

func newPredictor(cfg config.PredictionConfig) prediction.Engine {
	if cfg.Mode == "http" {
		return infraprediction.NewHTTPEngine(cfg)
	}
	return prediction.MockEngine{}
}

func (s *Service) routes() http.Handler {
	gate := func(h http.Handler) http.Handler {
		return api.RequireRole(api.SchedulingRoles, h)
	}
	mux := http.NewServeMux()
	mux.Handle("/api/scheduling/find-slots", apischeduling.NewFindSlotsHandler(s.Finder))
	mux.Handle("/api/scheduling/conflicts", apischeduling.NewConflictsHandler(s.Detector))
	mux.Handle("/api/scheduling/hearings", gate(apischeduling.NewScheduleHandler(s.Coordinator)))
	mux.Handle("/api/scheduling/hearings/reschedule", gate(apischeduling.NewRescheduleHandler(s.Coordinator)))
	mux.Handle("/api/cases/estimate", gate(apicases.NewEstimateHandler(s.Store, s.Predictor)))
	mux.Handle("/api/judges/workload", apijudges.NewWorkloadHandler(s.Analyzer))
	mux.Handle("/api/calendar/heatmap", apicalendar.NewHeatmapHandler(s.Aggregator))
	mux.Handle("/api/calendar/day-view", apicalendar.NewDayViewHandler(s.Aggregator))
	mux.Handle("/api/calendar/week-view", apicalendar.NewWeekViewHandler(s.Aggregator))
	mux.Handle("/api/calendar/upcoming", apicalendar.NewUpcomingHandler(s.Aggregator))
	return mux
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}
