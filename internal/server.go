package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/multierr"

	"github.com/2beens/cragjournal/internal/api"
	"github.com/2beens/cragjournal/internal/config"
	"github.com/2beens/cragjournal/internal/db"
	"github.com/2beens/cragjournal/internal/journal"
	"github.com/2beens/cragjournal/internal/middleware"
	"github.com/2beens/cragjournal/internal/notifications"
	"github.com/2beens/cragjournal/internal/reminders"
	"github.com/2beens/cragjournal/internal/scheduler"
	"github.com/2beens/cragjournal/internal/stats"
	"github.com/2beens/cragjournal/internal/telemetry/metrics"
	"github.com/2beens/cragjournal/internal/telemetry/tracing"
)

const serviceName = "cragjournal"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	rateLimiter middleware.RequestRateLimiter

	journalRepo       *journal.Repo
	statsService      *stats.Service
	notificationStore *notifications.Store
	scheduler         *scheduler.Scheduler
	stopScheduler     func()

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	DBPassword              string
	RedisPassword           string
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	loc := cfg.Location()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, serviceName)
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		otelShutdown()
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(params.VersionInfo, pgxpoolCollector)
	metricsManager := metrics.NewManager("cragjournal", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})
	if params.HoneycombTracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	journalRepo := journal.NewRepo(dbPool)
	statsService := stats.NewService(
		journalRepo,
		stats.NewAggregator(time.Now, loc),
		cfg.StatsCacheSizeMB*1024*1024,
		cfg.StatsCacheTTLSeconds,
		metricsManager,
	)

	// loads the persisted notifications once, a failed load starts empty
	notificationStore := notifications.NewStore(
		ctx,
		notifications.NewRedisPersister(rdb, cfg.NotificationsRedisKey),
		time.Now,
		loc,
		cfg.MaxNotifications,
		metricsManager,
	)

	s := &Server{
		config:      cfg,
		dbPool:      dbPool,
		redisClient: rdb,
		rateLimiter: redis_rate.NewLimiter(rdb),
		versionInfo: params.VersionInfo,

		journalRepo:       journalRepo,
		statsService:      statsService,
		notificationStore: notificationStore,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if cfg.RemindersEnabled {
		pollInterval, err := cfg.PollInterval()
		if err != nil {
			return nil, err
		}
		engine := reminders.NewEngine(journalRepo, notificationStore, metricsManager)
		s.scheduler = scheduler.New(reminderFamilies(cfg, engine), pollInterval, time.Now, loc)
	} else {
		log.Warnln("reminders disabled")
	}

	return s, nil
}

// reminderFamilies maps every reminder family to its configured checkpoint hour.
func reminderFamilies(cfg *config.Config, engine *reminders.Engine) []scheduler.Family {
	return []scheduler.Family{
		{Name: reminders.FamilyCycle, CheckpointHour: *cfg.CycleCheckpointHour, Run: engine.RunCycle},
		{Name: reminders.FamilyInactivity, CheckpointHour: *cfg.InactivityCheckpointHour, Run: engine.RunInactivity},
		{Name: reminders.FamilyActivity, CheckpointHour: *cfg.ActivityCheckpointHour, Run: engine.RunActivity},
		{Name: reminders.FamilyRetest, CheckpointHour: *cfg.RetestCheckpointHour, Run: engine.RunRetest},
	}
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET").Name("root")
	r.HandleFunc("/version", s.handleVersion).Methods("GET").Name("version")

	api.NewStatsHandler(s.statsService, s.config.Location()).SetupRoutes(r)
	api.NewCycleHandler(s.journalRepo, time.Now).SetupRoutes(r)
	notifications.NewHandler(s.notificationStore).SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigin))
	if s.rateLimiter != nil {
		r.Use(middleware.RateLimit(s.rateLimiter, "main", s.config.RateLimitAllowedPerMin, s.metricsManager))
	}
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("cragjournal"))
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.versionInfo))
}

// Serve starts the API and metrics servers and, when enabled, the reminder scheduler.
func (s *Server) Serve(ctx context.Context, host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
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

	if s.scheduler != nil {
		stop, err := s.scheduler.Start(ctx)
		if err != nil {
			log.Errorf("failed to start reminder scheduler: %s", err)
		} else {
			s.stopScheduler = stop
		}
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// GracefulShutdown stops the scheduler first, so no reminder run writes into closed clients.
func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.stopScheduler != nil {
		s.stopScheduler()
	}

	var shutdownErr error

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("shutdown http server: %w", err))
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("shutdown metrics server: %w", err))
		}
		log.Warnln("metrics server shut down")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("close redis client: %w", err))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); !ok {
		log.Debugln("sentry flush timed out")
	}

	return shutdownErr
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
