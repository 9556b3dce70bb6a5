package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"gigledger/internal/audit"
	"gigledger/internal/auth"
	"gigledger/internal/observability/metrics"
	"gigledger/internal/reconcile/application"
	reconcile "gigledger/internal/reconcile/domain"
	"gigledger/internal/reconcile/infrastructure/postgres"
	reconcilehttp "gigledger/internal/reconcile/interfaces/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	reportCfg, err := application.LoadConfig()
	if err != nil {
		logger.Fatalf("report config error: %v", err)
	}
	policy, err := reconcile.ParseRoundingPolicy(reportCfg.RoundingPolicy)
	if err != nil {
		logger.Fatalf("rounding policy error: %v", err)
	}
	tax, err := reconcile.NewTaxNormalizer(policy)
	if err != nil {
		logger.Fatalf("tax normalizer error: %v", err)
	}

	store := postgres.NewRecordStore(db)
	engine, err := application.NewEngine(store)
	if err != nil {
		logger.Fatalf("report engine error: %v", err)
	}
	assembler := application.NewAssembler(tax)

	reportHandler, err := reconcilehttp.NewHandler(engine, assembler, reportCfg, auditRepo)
	if err != nil {
		logger.Fatalf("report handler error: %v", err)
	}

	authPolicy := auth.NewDefaultPolicy([]string{"/healthz", "/readyz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), authPolicy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/reports/", reportHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      loggingMiddleware(authMiddleware.Wrap(mux), logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL  string
	HTTPAddr     string
	JWTSecret    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func loadConfig() config {
	cfg := config{
		DatabaseURL:  getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:     getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:    getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
		ReadTimeout:  getenvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getenvDuration("HTTP_WRITE_TIMEOUT", 60*time.Second),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
