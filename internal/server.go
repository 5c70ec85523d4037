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
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/rutinas/internal/auth"
	"github.com/2beens/rutinas/internal/calculator"
	"github.com/2beens/rutinas/internal/config"
	"github.com/2beens/rutinas/internal/dates"
	"github.com/2beens/rutinas/internal/db"
	"github.com/2beens/rutinas/internal/gym/exercises"
	"github.com/2beens/rutinas/internal/gym/musclegroups"
	"github.com/2beens/rutinas/internal/gym/routines"
	"github.com/2beens/rutinas/internal/middleware"
	"github.com/2beens/rutinas/internal/telemetry/metrics"
	"github.com/2beens/rutinas/internal/telemetry/tracing"
	"github.com/2beens/rutinas/internal/users"
	"github.com/2beens/rutinas/pkg"
)

const (
	apiPrefix       = "/api"
	maxRequestBytes = 1 << 20

	msgMethodNotAllowed = "Método no permitido"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	zone        *dates.Zone
	redisClient *redis.Client
	authService *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	Secrets     config.Secrets
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	zone, err := dates.NewZone(params.Config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.Secrets.PostgresPassword,
		TracingEnabled: params.Secrets.HoneycombEnabled,
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
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.Secrets.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.Secrets.HoneycombEnabled, params.Secrets.OtelServiceName, rdb)
	if err != nil {
		return nil, err
	}

	if params.Secrets.JWTSecret == "" {
		// not fatal, login and session checks answer with a configuration error
		log.Errorln("JWT_SECRET not set, sessions cannot be issued")
	}
	authService := auth.NewService(auth.NewTokenIssuer(params.Secrets.JWTSecret, auth.SessionTTL), rdb)

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		zone:        zone,
		versionInfo: params.VersionInfo,

		redisClient: rdb,
		authService: authService,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

// routerSetup mounts every resource under /api. CORS is applied around the router, see Serve.
func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("rutinas-router"))

	api := r.PathPrefix(apiPrefix).Subrouter()

	var loginMiddleware []mux.MiddlewareFunc
	if s.redisClient != nil {
		loginMiddleware = append(loginMiddleware, middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			"login",
			s.config.LoginRateLimitAllowedPerMin,
			s.metricsManager,
		))
	}

	usersRepo := users.NewRepo(s.dbPool)
	auth.NewHandler(
		s.authService,
		usersRepo,
		s.metricsManager,
		!s.config.IsDevelopment(),
	).SetupRoutes(api, loginMiddleware...)
	users.NewHandler(usersRepo).SetupRoutes(api)

	routinesRepo := routines.NewRepo(s.dbPool)
	routinesService := routines.NewService(routinesRepo, s.zone, s.metricsManager).
		WithTodayCache(s.config.TodayCacheSizeMB, s.config.TodayCacheTTLSecs)

	musclegroups.NewHandler(musclegroups.NewRepo(s.dbPool)).WithTodayCache(routinesService).SetupRoutes(api)
	exercises.NewHandler(exercises.NewRepo(s.dbPool)).WithTodayCache(routinesService).SetupRoutes(api)
	routines.NewHandler(routinesRepo, routinesService, s.zone).SetupRoutes(api)
	routines.NewLinksHandler(routinesRepo, routinesService).SetupRoutes(api)

	calculator.NewHandler().SetupRoutes(api)

	// all the rest - unhandled paths
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSONError(w, pkg.MsgNotFound, http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSONError(w, msgMethodNotAllowed, http.StatusMethodNotAllowed)
	})

	sessionMiddleware := middleware.NewSessionMiddlewareHandler(s.authService, s.config.AuthRequired)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(sessionMiddleware.RequireSession())
	r.Use(middleware.LimitAndDrainBody(maxRequestBytes))

	return r
}

// handler wraps the router with CORS, so preflight requests never reach route matching.
func (s *Server) handler() http.Handler {
	return middleware.Cors(s.config.AllowedOrigins)(s.routerSetup())
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.handler(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
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
		log.Infof(" > server listening on: [%s], version [%s]", ipAndPort, s.versionInfo)
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

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
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
