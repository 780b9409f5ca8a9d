// Package main implements the PaperMind API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/PaperMindAI/papermind-mvp/engine/embed"
	"github.com/PaperMindAI/papermind-mvp/engine/graph"
	"github.com/PaperMindAI/papermind-mvp/engine/retrieval"
	"github.com/PaperMindAI/papermind-mvp/engine/semantic"
	"github.com/PaperMindAI/papermind-mvp/pkg/metrics"
	"github.com/PaperMindAI/papermind-mvp/pkg/mid"
	"github.com/PaperMindAI/papermind-mvp/pkg/resilience"
)

// Config holds all environment-based configuration.
type Config struct {
	Port       string
	EmbedURL   string
	EmbedModel string
	EmbedRPS   float64
	Neo4jURL   string
	Neo4jUser  string
	Neo4jPass  string
	QdrantURL  string
	Collection string
	NATSURL    string
	CORSOrigin string
}

func loadConfig() Config {
	rps, _ := strconv.ParseFloat(envOr("EMBED_RPS", "0"), 64)
	return Config{
		Port:       envOr("PORT", "8080"),
		EmbedURL:   envOr("EMBED_URL", "http://localhost:11434"),
		EmbedModel: envOr("EMBED_MODEL", "nomic-embed-text"),
		EmbedRPS:   rps,
		Neo4jURL:   envOr("NEO4J_URL", "neo4j://localhost:7687"),
		Neo4jUser:  envOr("NEO4J_USER", "neo4j"),
		Neo4jPass:  envOr("NEO4J_PASS", "password"),
		QdrantURL:  envOr("QDRANT_URL", "localhost:6334"),
		Collection: envOr("QDRANT_COLLECTION", "papermind"),
		NATSURL:    os.Getenv("NATS_URL"),
		CORSOrigin: envOr("CORS_ORIGIN", "*"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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

	// --- Embedding model ---
	backend := embed.NewClient(cfg.EmbedURL, cfg.EmbedModel, cfg.EmbedRPS)
	breaker := resilience.NewBreaker(resilience.DefaultBreakerOpts)
	model := embed.NewModel(guardedEmbedder{backend: backend, breaker: breaker})
	if err := model.Load(ctx); err != nil {
		return fmt.Errorf("load embedding model: %w", err)
	}
	logger.Info("embedding model loaded", "model", cfg.EmbedModel, "dims", backend.Dimensions())

	// --- Qdrant ---
	vectorStore, err := semantic.New(cfg.QdrantURL, cfg.Collection)
	if err != nil {
		return fmt.Errorf("qdrant connect: %w", err)
	}
	defer vectorStore.Close()
	if err := vectorStore.EnsureCollection(ctx, backend.Dimensions()); err != nil {
		return fmt.Errorf("qdrant collection: %w", err)
	}

	// --- Neo4j ---
	neo4jDriver, err := neo4j.NewDriverWithContext(cfg.Neo4jURL, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPass, ""))
	if err != nil {
		return fmt.Errorf("neo4j driver: %w", err)
	}
	defer neo4jDriver.Close(ctx)
	conceptStore := graph.NewConceptStore(neo4jDriver)

	// --- Retrieval service ---
	sectionStore := retrieval.NewMemStore()
	svc := retrieval.NewService(sectionStore, model, vectorStore, retrieval.DefaultOptions(), logger)

	// --- Optional NATS ingest consumer ---
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			return fmt.Errorf("nats connect: %w", err)
		}
		defer nc.Drain()
		if _, err := retrieval.StartConsumer(nc, svc, logger); err != nil {
			return fmt.Errorf("nats subscribe: %w", err)
		}
		logger.Info("ingest consumer started", "subject", retrieval.IngestSubject)
	}

	// --- HTTP server ---
	reg := metrics.New()
	api := &apiServer{
		svc:      svc,
		sections: sectionStore,
		vectors:  vectorStore,
		concepts: conceptStore,
		metrics:  reg,
		log:      logger,
	}

	mux := http.NewServeMux()
	api.routes(mux)
	mux.Handle("GET /metrics", reg.Handler())

	handler := mid.Chain(mux,
		mid.Recover(logger),
		mid.RequestID(),
		mid.Logger(logger),
		mid.OTel("papermind-api"),
		mid.CORS(cfg.CORSOrigin),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

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

// guardedEmbedder runs the embedding backend through a circuit breaker so a
// dead model endpoint sheds load quickly.
type guardedEmbedder struct {
	backend *embed.Client
	breaker *resilience.Breaker
}

func (g guardedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	var out [][]float32
	err := g.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		out, err = g.backend.Embed(ctx, texts)
		return err
	})
	return out, err
}

func (g guardedEmbedder) Load(ctx context.Context) error {
	return g.breaker.Call(ctx, g.backend.Load)
}
