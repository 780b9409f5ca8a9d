// Package main implements the ingest CLI. It reads page-structured document
// JSON files and submits them as one cluster upload over NATS, waiting for
// the consumer's ingest summary.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
	"github.com/PaperMindAI/papermind-mvp/engine/retrieval"
	"github.com/PaperMindAI/papermind-mvp/pkg/fn"
	"github.com/PaperMindAI/papermind-mvp/pkg/natsutil"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	var (
		natsURL   = flag.String("nats", envOr("NATS_URL", nats.DefaultURL), "NATS server URL")
		clusterID = flag.String("cluster", "", "cluster id to ingest into (required)")
		timeout   = flag.Duration("timeout", 2*time.Minute, "per-request timeout")
		fireOnly  = flag.Bool("async", false, "publish without waiting for the ingest summary")
	)
	flag.Parse()

	if *clusterID == "" || flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s -cluster <id> [flags] <doc.json> [...]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(*natsURL, *clusterID, *timeout, *fireOnly, flag.Args(), logger); err != nil {
		logger.Error("ingest failed", "err", err)
		os.Exit(1)
	}
}

func run(natsURL, clusterID string, timeout time.Duration, async bool, paths []string, logger *slog.Logger) error {
	docs, err := loadDocuments(paths)
	if err != nil {
		return err
	}

	nc, err := nats.Connect(natsURL)
	if err != nil {
		return fmt.Errorf("nats connect: %w", err)
	}
	defer nc.Drain()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	upload := retrieval.ClusterUpload{ClusterID: clusterID, Documents: docs}

	if async {
		if err := natsutil.Publish(ctx, nc, retrieval.IngestSubject, upload); err != nil {
			return fmt.Errorf("publish upload: %w", err)
		}
		logger.Info("upload published", "cluster_id", clusterID, "documents", len(docs))
		return nil
	}

	result := fn.Retry(ctx, fn.DefaultRetry, func(ctx context.Context) fn.Result[retrieval.IngestResult] {
		return fn.FromPair(natsutil.Request[retrieval.ClusterUpload, retrieval.IngestResult](
			ctx, nc, retrieval.IngestSubject, upload, timeout))
	})
	summary, err := result.Unwrap()
	if err != nil {
		return fmt.Errorf("ingest request: %w", err)
	}

	logger.Info("cluster ingested",
		"cluster_id", summary.ClusterID,
		"documents", len(summary.Documents),
		"sections", summary.Sections)
	return json.NewEncoder(os.Stdout).Encode(summary)
}

// loadDocuments reads each path as a page-structured document. A file whose
// JSON omits the name falls back to its base filename.
func loadDocuments(paths []string) ([]domain.DocumentText, error) {
	docs := make([]domain.DocumentText, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var doc domain.DocumentText
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if doc.Name == "" {
			doc.Name = filepath.Base(path)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
