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
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/workoutware/internal/auth"
	"github.com/2beens/workoutware/internal/bodystats"
	"github.com/2beens/workoutware/internal/cache"
	"github.com/2beens/workoutware/internal/config"
	"github.com/2beens/workoutware/internal/db"
	"github.com/2beens/workoutware/internal/goals"
	"github.com/2beens/workoutware/internal/progress"
	"github.com/2beens/workoutware/internal/telemetry/metrics"
	"github.com/2beens/workoutware/internal/telemetry/tracing"
	"github.com/2beens/workoutware/internal/users"
	"github.com/2beens/workoutware/internal/validation"
	"github.com/2beens/workoutware/internal/workouts"
)

const sessionCleanupInterval = 8 * time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config       *config.Config
	dbPool       *pgxpool.Pool
	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service
	thresholds   validation.Thresholds

	progressService *progress.Service
	rebuilder       *progress.Rebuilder
	exerciseCache   cache.Cache

	// stops the session cleaner and the progress rebuilder
	cancelWorkers context.CancelFunc

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config        *config.Config
	VersionInfo   string
	RedisPassword string
	DBPassword    string
	OtelEnabled   bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	thresholds, err := validation.NewThresholds(params.Config.OutlierPct, params.Config.SuspiciousLowPct)
	if err != nil {
		return nil, fmt.Errorf("validation thresholds: %w", err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.OtelEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "workoutware", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.OtelEnabled, "workoutware-backend", rdb)
	if err != nil {
		return nil, err
	}

	progressService := progress.NewService(progress.NewRepo(dbPool), metricsManager)

	return &Server{
		versionInfo: params.VersionInfo,
		config:      params.Config,
		dbPool:      dbPool,
		thresholds:  thresholds,

		redisClient:  rdb,
		authService:  auth.NewAuthService(params.Config.LoginSessionTTL(), rdb),
		loginChecker: auth.NewLoginChecker(params.Config.LoginSessionTTL(), rdb),

		progressService: progressService,
		rebuilder:       progress.NewRebuilder(rdb, progressService),
		exerciseCache:   cache.NewFreeCache(cache.DefaultSizeBytes),

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	validator := validation.NewValidator(s.thresholds, s.config.RecentWindowDays)

	return newRouter(routerDeps{
		exercises: workouts.NewExercisesHandler(
			workouts.NewExercisesRepo(s.dbPool),
			s.exerciseCache,
			s.config.ExerciseCacheTTL(),
			workouts.NewCatalogVersion(s.redisClient),
			s.metricsManager,
		),
		sessions: workouts.NewSessionsHandler(
			workouts.NewSessionsRepo(s.dbPool),
			s.rebuilder,
		),
		sets: workouts.NewSetsHandler(
			workouts.NewSetsRepo(s.dbPool),
			validator,
			s.rebuilder,
			s.metricsManager,
		),
		validation: validation.NewHandler(validation.NewRepo(s.dbPool), validator),
		progress:   progress.NewHandler(s.progressService),
		goals:      goals.NewHandler(goals.NewRepo(s.dbPool)),
		bodyStats:  bodystats.NewHandler(bodystats.NewRepo(s.dbPool)),
		users:      users.NewHandler(users.NewRepo(s.dbPool), s.authService),

		loginChecker:     s.loginChecker,
		rateLimiter:      redis_rate.NewLimiter(s.redisClient),
		metricsManager:   s.metricsManager,
		allowedOrigins:   s.config.AllowedOrigins,
		loginRatePerMin:  s.config.LoginRateLimitAllowedPerMin,
		apiRatePerMin:    s.config.ApiRateLimitAllowedPerMin,
		versionInfo:      s.versionInfo,
		tracingRouteName: "main-router",
	})
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
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

	workersCtx, cancel := context.WithCancel(ctx)
	s.cancelWorkers = cancel
	go s.authService.RunCleaner(workersCtx, sessionCleanupInterval)
	go s.rebuilder.Run(workersCtx, s.config.ProgressRebuildInterval())

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.cancelWorkers != nil {
		s.cancelWorkers()
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var shutdownErr error
	if s.httpServer != nil {
		shutdownErr = multierr.Append(shutdownErr, s.httpServer.Shutdown(ctx))
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		shutdownErr = multierr.Append(shutdownErr, s.metricsHttpServer.Shutdown(ctx))
		log.Warnln("metrics server shut down")
	}
	if shutdownErr != nil {
		log.Errorf(" >>> failed to gracefully shutdown http servers: %s", shutdownErr)
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}
