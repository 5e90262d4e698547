package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/taskflow-app/taskflow/internal/config"
	"github.com/taskflow-app/taskflow/internal/handlers"
	"github.com/taskflow-app/taskflow/internal/logger"
	"github.com/taskflow-app/taskflow/internal/middleware"
	"github.com/taskflow-app/taskflow/internal/services/ai"
	"github.com/taskflow-app/taskflow/internal/store"
	"github.com/taskflow-app/taskflow/internal/tasks"
	"github.com/taskflow-app/taskflow/internal/telemetry"
	"github.com/taskflow-app/taskflow/internal/workers"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug mode for LLM API logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	newLogger := logger.NewProductionLogger
	if cfg.LogFormat == "console" {
		newLogger = logger.NewDevelopmentLogger
	}
	zapLogger, err := newLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync(zapLogger)
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("store_backend", cfg.StoreBackend),
		zap.String("ai_provider", cfg.AIProvider),
		zap.String("ai_model", cfg.AIModel),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// OpenTelemetry, if enabled
	var tracerProvider interface{ Shutdown(context.Context) error }
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), "taskflow-api", cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracerProvider = tp
				zapLogger.Info("otel_tracer_initialized",
					zap.String("endpoint", cfg.OTELEndpoint),
				)
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Persistence backend
	st, err := buildStore(cfg)
	if err != nil {
		zapLogger.Fatal("failed_to_initialize_store", zap.Error(err))
	}
	defer func() {
		if err := st.Close(); err != nil {
			zapLogger.Warn("failed_to_close_store", zap.Error(err))
		}
	}()
	zapLogger.Info("store_initialized", zap.String("backend", cfg.StoreBackend))

	loc, err := resolveLocation(cfg.Timezone)
	if err != nil {
		zapLogger.Fatal("failed_to_load_timezone", zap.Error(err))
	}

	// AI provider (optional; suggestions are disabled without a key)
	aiProvider, err := createAIProvider(cfg, zapLogger, debugMode)
	if err != nil {
		zapLogger.Warn("failed_to_create_ai_provider_suggestions_disabled", zap.Error(err))
		aiProvider = nil
	}

	// State container
	service := tasks.NewService(st, aiProvider, zapLogger, loc)
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer loadCancel()
	if err := service.Load(loadCtx); err != nil {
		zapLogger.Fatal("failed_to_load_state", zap.Error(err))
	}

	// Handlers
	taskHandler := handlers.NewTaskHandler(service, loc)
	convertHandler := handlers.NewConvertHandler()
	profileHandler := handlers.NewProfileHandler(service)
	suggestHandler := handlers.NewSuggestHandler(service)
	statsHandler := handlers.NewStatsHandler(service)
	healthChecker := handlers.NewHealthChecker(st)

	// Router and middleware. gorilla/mux runs Use() middleware in
	// registration order, so the outermost concerns go first.
	r := mux.NewRouter()
	if cfg.OTELEnabled && tracerProvider != nil {
		r.Use(otelmux.Middleware("taskflow-api"))
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(middleware.DefaultRequestTimeout))
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	// Rate limiter shares the Redis client with the store when the redis
	// backend is active, falling back to an in-process store otherwise.
	var redisKV *store.RedisKV
	if rs, ok := st.(*store.Gateway); ok {
		if kv, ok := rs.KV().(*store.RedisKV); ok {
			redisKV = kv
		}
	}
	var rateLimitMW func(http.Handler) http.Handler
	if redisKV != nil {
		rateLimitMW, err = middleware.RateLimit(redisKV.Client(), cfg.RateLimit)
	} else {
		rateLimitMW, err = middleware.RateLimit(nil, cfg.RateLimit)
	}
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
	}

	// Health checks stay outside the rate limit
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET") // Legacy endpoint
	r.HandleFunc("/version", versionInfo).Methods("GET")

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(rateLimitMW)

	taskHandler.RegisterRoutes(apiRouter.PathPrefix("/tasks").Subrouter())
	apiRouter.HandleFunc("/convert", convertHandler.Convert).Methods("POST")
	apiRouter.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")
	apiRouter.HandleFunc("/profile", profileHandler.GetProfile).Methods("GET")
	apiRouter.HandleFunc("/profile", profileHandler.Onboard).Methods("POST")
	apiRouter.HandleFunc("/profile", profileHandler.ResetProfile).Methods("DELETE")
	apiRouter.HandleFunc("/theme", profileHandler.GetTheme).Methods("GET")
	apiRouter.HandleFunc("/theme", profileHandler.SetTheme).Methods("PUT")
	apiRouter.HandleFunc("/suggest", suggestHandler.Suggest).Methods("POST")

	// Preflight requests get a bare 204; CORS middleware sets the headers
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Countdown refresh loop
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	monitor := workers.NewCountdownMonitor(service, zapLogger, time.Duration(cfg.CountdownSecs)*time.Second)
	go monitor.Run(workerCtx)

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")
	workerCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

// buildStore constructs the persistence gateway named by the config.
func buildStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	case config.BackendRedis:
		return store.NewRedisStore(cfg.RedisURL)
	case config.BackendPostgres:
		return store.NewPostgresStore(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// resolveLocation loads the tz database entry named in config, defaulting
// to the process-local zone.
func resolveLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, `{"status":"healthy","timestamp":"%s"}`, time.Now().UTC().Format(time.RFC3339))
}

func versionInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, `{"version":"1.0.0","timestamp":"%s"}`, time.Now().UTC().Format(time.RFC3339))
}

// createAIProvider creates an AI provider based on configuration
func createAIProvider(cfg *config.Config, logger *zap.Logger, debugMode bool) (ai.SuggestionProvider, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	providerType := cfg.AIProvider
	if providerType == "" {
		providerType = "openai"
	}

	if providerType == "openai" {
		return ai.NewOpenAIProviderWithLogger(
			cfg.OpenAIKey,
			cfg.AIBaseURL,
			cfg.AIModel,
			logger,
			debugMode,
		), nil
	}

	// Fallback to registry for other providers (without logger)
	registry := ai.NewProviderRegistry()
	ai.RegisterOpenAI(registry)
	return registry.GetProvider(providerType, map[string]string{
		"api_key":  cfg.OpenAIKey,
		"model":    cfg.AIModel,
		"base_url": cfg.AIBaseURL,
	})
}
