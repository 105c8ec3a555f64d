// Package main implements the Fleetly NATS responder. It answers fleet
// queries over request-reply, reacts to catalog reload signals, and
// periodically broadcasts maintenance alerts.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"golang.org/x/time/rate"

	"github.com/FleetlyAI/fleetly-mvp/engine/catalog"
	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
	"github.com/FleetlyAI/fleetly-mvp/engine/gazetteer"
	"github.com/FleetlyAI/fleetly-mvp/engine/rules"
	"github.com/FleetlyAI/fleetly-mvp/pkg/fn"
	"github.com/FleetlyAI/fleetly-mvp/pkg/natsutil"
)

const (
	// QuerySubject serves fleet queries over request-reply.
	QuerySubject = "fleet.query"
	// ReloadSubject triggers a catalog reload from the external sync job.
	ReloadSubject = "fleet.catalog.reload"
	// AlertSubject carries periodic maintenance alert broadcasts.
	AlertSubject = "fleet.maint.alerts"
)

// Config holds all environment-based configuration.
type Config struct {
	NATSURL       string
	CatalogSource string
	CatalogPath   string
	Neo4jURL      string
	Neo4jUser     string
	Neo4jPass     string
	ReplyRate     float64 // replies per second
	AlertInterval time.Duration
}

func loadConfig() Config {
	return Config{
		NATSURL:       envOr("NATS_URL", nats.DefaultURL),
		CatalogSource: envOr("CATALOG_SOURCE", "file"),
		CatalogPath:   envOr("CATALOG_PATH", "catalog.json"),
		Neo4jURL:      envOr("NEO4J_URL", "neo4j://localhost:7687"),
		Neo4jUser:     envOr("NEO4J_USER", "neo4j"),
		Neo4jPass:     envOr("NEO4J_PASS", "password"),
		ReplyRate:     envFloat("REPLY_RATE", 10),
		AlertInterval: envDuration("ALERT_INTERVAL", time.Hour),
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(loadConfig(), logger); err != nil {
		logger.Error("responder exited with error", "err", err)
		os.Exit(1)
	}
}

// queryMessage is the request shape on QuerySubject.
type queryMessage struct {
	Query    string `json:"query"`
	Language string `json:"language,omitempty"`
}

// reloadSignal is the (empty) payload on ReloadSubject.
type reloadSignal struct {
	Reason string `json:"reason,omitempty"`
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- NATS, with backoff while the broker comes up ---
	connect := fn.Retry(ctx, fn.DefaultRetry, func(context.Context) fn.Result[*nats.Conn] {
		return fn.FromPair(nats.Connect(cfg.NATSURL))
	})
	nc, err := connect.Unwrap()
	if err != nil {
		return fmt.Errorf("nats connect: %w", err)
	}
	defer nc.Close()

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

	dispatcher := rules.NewDispatcher(rules.DefaultOptions(), logger)
	snap, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("initial catalog load: %w", err)
	}
	if err := dispatcher.LoadCatalog(snap.Vehicles, snap.Records, gazetteer.Default()); err != nil {
		return fmt.Errorf("initial catalog load: %w", err)
	}

	// Replies are paced so a flood of chat traffic cannot starve the broker.
	limiter := rate.NewLimiter(rate.Limit(cfg.ReplyRate), int(cfg.ReplyRate)+1)

	querySub, err := nc.Subscribe(QuerySubject, func(msg *nats.Msg) {
		var q queryMessage
		if err := json.Unmarshal(msg.Data, &q); err != nil {
			logger.Error("query unmarshal failed", "err", err)
			return
		}
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		lang := domain.Language(q.Language)
		if !domain.ValidLanguages[lang] {
			lang = domain.LangEnglish
		}
		result := dispatcher.Process(q.Query, lang)

		data, err := json.Marshal(result)
		if err != nil {
			logger.Error("result marshal failed", "err", err)
			return
		}
		if msg.Reply != "" {
			if err := msg.Respond(data); err != nil {
				logger.Error("reply failed", "err", err)
			}
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", QuerySubject, err)
	}
	defer querySub.Unsubscribe()

	reloadSub, err := natsutil.Subscribe(nc, ReloadSubject, func(ctx context.Context, sig reloadSignal) {
		if err := catalog.Refresh(ctx, src, dispatcher); err != nil {
			logger.Error("catalog reload rejected", "err", err, "reason", sig.Reason)
			return
		}
		logger.Info("catalog reloaded", "reason", sig.Reason)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", ReloadSubject, err)
	}
	defer reloadSub.Unsubscribe()

	// --- Periodic maintenance alert broadcast ---
	go func() {
		ticker := time.NewTicker(cfg.AlertInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				alerts := dispatcher.MaintenanceAlerts()
				if len(alerts) == 0 {
					continue
				}
				if err := natsutil.Publish(ctx, nc, AlertSubject, alerts); err != nil {
					logger.Error("alert publish failed", "err", err)
					continue
				}
				logger.Info("maintenance alerts published", "count", len(alerts))
			}
		}
	}()

	logger.Info("responder running",
		"query_subject", QuerySubject, "reload_subject", ReloadSubject)
	<-ctx.Done()
	logger.Info("shutdown signal received")
	return nil
}
