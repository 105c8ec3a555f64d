// Package main implements the Fleetly query API server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/FleetlyAI/fleetly-mvp/engine/catalog"
	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
	"github.com/FleetlyAI/fleetly-mvp/engine/gazetteer"
	"github.com/FleetlyAI/fleetly-mvp/engine/intent"
	"github.com/FleetlyAI/fleetly-mvp/engine/rules"
	"github.com/FleetlyAI/fleetly-mvp/engine/suggest"
	"github.com/FleetlyAI/fleetly-mvp/pkg/metrics"
	"github.com/FleetlyAI/fleetly-mvp/pkg/mid"
	"github.com/FleetlyAI/fleetly-mvp/pkg/resilience"
)

// Config holds all environment-based configuration.
type Config struct {
	Port          string
	CatalogSource string // "file" or "neo4j"
	CatalogPath   string
	Neo4jURL      string
	Neo4jUser     string
	Neo4jPass     string
	QdrantURL     string
	Collection    string
	OllamaURL     string
	EmbedModel    string
	SuggestOn     bool
	CORSOrigin    string
	RateLimit     float64
	RateBurst     int
}

func loadConfig() Config {
	return Config{
		Port:          envOr("PORT", "8080"),
		CatalogSource: envOr("CATALOG_SOURCE", "file"),
		CatalogPath:   envOr("CATALOG_PATH", "catalog.json"),
		Neo4jURL:      envOr("NEO4J_URL", "neo4j://localhost:7687"),
		Neo4jUser:     envOr("NEO4J_USER", "neo4j"),
		Neo4jPass:     envOr("NEO4J_PASS", "password"),
		QdrantURL:     envOr("QDRANT_URL", "localhost:6334"),
		Collection:    envOr("QDRANT_COLLECTION", "fleetly_topics"),
		OllamaURL:     envOr("OLLAMA_URL", "http://localhost:11434"),
		EmbedModel:    envOr("EMBED_MODEL", "nomic-embed-text"),
		SuggestOn:     envOr("SUGGEST_ENABLED", "false") == "true",
		CORSOrigin:    envOr("CORS_ORIGIN", "*"),
		RateLimit:     envFloat("RATE_LIMIT", 20),
		RateBurst:     envInt("RATE_BURST", 40),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Catalog source ---
	var src catalog.Source
	switch cfg.CatalogSource {
	case "neo4j":
		driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURL, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPass, ""))
		if err != nil {
			return fmt.Errorf("neo4j driver: %w", err)
		}
		defer driver.Close(ctx)
		src = catalog.NewNeo4jSource(driver, logger)
	default:
		src = catalog.NewFileSource(cfg.CatalogPath, logger)
	}

	// --- Dispatcher with initial catalog ---
	dispatcher := rules.NewDispatcher(rules.DefaultOptions(), logger)
	snap, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("initial catalog load: %w", err)
	}
	if err := dispatcher.LoadCatalog(snap.Vehicles, snap.Records, gazetteer.Default()); err != nil {
		return fmt.Errorf("initial catalog load: %w", err)
	}

	// --- Optional suggester for unclassified queries ---
	var suggester *suggest.Suggester
	if cfg.SuggestOn {
		store, err := suggest.NewStore(cfg.QdrantURL, cfg.Collection)
		if err != nil {
			return fmt.Errorf("qdrant connect: %w", err)
		}
		defer store.Close()

		embedder := suggest.NewOllamaEmbedder(cfg.OllamaURL, cfg.EmbedModel)
		if err := seedTopics(ctx, store, embedder); err != nil {
			// Suggestions are best-effort; the query path works without them.
			logger.Warn("topic seeding failed, suggestions disabled", "err", err)
		} else {
			suggester = suggest.NewSuggester(embedder, store, 3, logger)
		}
	}

	// --- Metrics and rate limiting ---
	reg := metrics.New()
	reloads := reg.Counter("fleetly_catalog_reloads_total", "Catalog reloads attempted")
	catalogSize := reg.Gauge("fleetly_catalog_vehicles", "Vehicles in the current catalog")
	catalogSize.Set(int64(dispatcher.VehicleCount()))

	limiter := resilience.NewLimiter(resilience.LimiterOpts{Rate: cfg.RateLimit, Burst: cfg.RateBurst})
	// The embedding backend fails independently of the query path; a breaker
	// keeps a dead backend from adding latency to every unknown query.
	breaker := resilience.NewBreaker(resilience.DefaultBreakerOpts)

	// --- HTTP server ---
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", handleHealth(dispatcher))
	mux.HandleFunc("POST /api/query", handleQuery(dispatcher, suggester, limiter, breaker, logger, reg))
	mux.HandleFunc("POST /api/reload", handleReload(src, dispatcher, logger, reloads, catalogSize))
	mux.Handle("GET /metrics", reg.Handler())

	handler := mid.Chain(mux,
		mid.Recover(logger),
		mid.Logger(logger),
		mid.CORS(cfg.CORSOrigin),
		mid.OTel("fleetly-api"),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful shutdown ---
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

func seedTopics(ctx context.Context, store *suggest.Store, embedder suggest.Embedder) error {
	probe, err := embedder.Embed(ctx, "dimension probe")
	if err != nil {
		return err
	}
	if err := store.EnsureCollection(ctx, len(probe)); err != nil {
		return err
	}
	return store.Upsert(ctx, suggest.DefaultTopics, embedder)
}

// --- Handlers ---

func handleHealth(d *rules.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		status := "ok"
		if !d.Loaded() {
			status = "no catalog"
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}

// QueryRequest is the JSON body for POST /api/query.
type QueryRequest struct {
	Query    string `json:"query"`
	Language string `json:"language,omitempty"`
}

// QueryResponse wraps the rule result with optional help suggestions.
type QueryResponse struct {
	Result      rules.RuleResult     `json:"result"`
	Suggestions []suggest.Suggestion `json:"suggestions,omitempty"`
}

func handleQuery(d *rules.Dispatcher, sg *suggest.Suggester, limiter *resilience.Limiter,
	breaker *resilience.Breaker, logger *slog.Logger, reg *metrics.Registry) http.HandlerFunc {
	queries := reg.Counter("fleetly_queries_total", "Total queries processed")
	failures := reg.Counter("fleetly_queries_failed_total", "Queries with success=false")
	latency := reg.Histogram("fleetly_query_duration_seconds", "Query processing latency", metrics.DefaultBuckets)
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
			return
		}

		var req QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Query == "" {
			http.Error(w, `{"error":"query is required"}`, http.StatusBadRequest)
			return
		}
		lang := domain.Language(req.Language)
		if lang == "" {
			lang = domain.LangEnglish
		}
		if !domain.ValidLanguages[lang] {
			http.Error(w, `{"error":"unsupported language"}`, http.StatusBadRequest)
			return
		}

		start := time.Now()
		result := d.Process(req.Query, lang)
		latency.Since(start)
		queries.Inc()
		reg.Counter(metrics.WithLabels("fleetly_queries_by_operation",
			"operation", string(result.Operation)), "Queries by classified operation").Inc()
		if !result.Success {
			failures.Inc()
		}

		resp := QueryResponse{Result: result}
		if sg != nil && result.Operation == intent.OpUnknown {
			err := breaker.Call(r.Context(), func(ctx context.Context) error {
				suggestions, err := sg.Suggest(ctx, req.Query)
				if err != nil {
					return err
				}
				resp.Suggestions = suggestions
				return nil
			})
			if err != nil {
				logger.Warn("suggestion lookup failed", "err", err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func handleReload(src catalog.Source, d *rules.Dispatcher, logger *slog.Logger,
	reloads *metrics.Counter, catalogSize *metrics.Gauge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reloads.Inc()
		if err := catalog.Refresh(r.Context(), src, d); err != nil {
			logger.Error("catalog reload failed", "err", err)
			http.Error(w, `{"error":"reload rejected, previous catalog stays in service"}`, http.StatusConflict)
			return
		}
		catalogSize.Set(int64(d.VehicleCount()))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "reloaded"})
	}
}
