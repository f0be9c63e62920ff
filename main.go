package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-agent/agent"
	"github.com/campushq/campus-agent/api"
	"github.com/campushq/campus-agent/config"
	"github.com/campushq/campus-agent/database"
	"github.com/campushq/campus-agent/embeddings"
	"github.com/campushq/campus-agent/index"
	"github.com/campushq/campus-agent/llm"
	"github.com/campushq/campus-agent/tools"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()

	switch os.Args[1] {
	case "serve":
		serveCmd(cfg, logger, os.Args[2:])
	case "seed":
		seedCmd(cfg, logger)
	case "rebuild":
		rebuildCmd(cfg, logger)
	default:
		logger.Printf("unknown command: %s", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func serveCmd(cfg config.Config, logger *log.Logger, args []string) {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := flags.String("addr", cfg.HTTPAddr, "address for the HTTP server to listen on")
	if err := flags.Parse(args); err != nil {
		logger.Fatalf("parse serve flags: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool := mustOpenDatabase(ctx, cfg, logger)
	defer pool.Close()

	if err := database.Seed(ctx, pool); err != nil {
		logger.Fatalf("seed database: %v", err)
	}
	store := database.NewStore(pool)

	embedder, err := embeddings.NewEmbedder(cfg)
	if err != nil {
		logger.Printf("embedder setup failed, knowledge retrieval disabled: %v", err)
	}

	adapter, err := index.NewAdapter(pool, embedder, indexConfig(cfg), logger)
	if err != nil {
		logger.Fatalf("index setup: %v", err)
	}

	// Index activation is slow when a build is needed, so it happens
	// off the request path. Queries before it finishes see an empty
	// knowledge base.
	go func() {
		bctx := context.Background()
		if err := adapter.Load(bctx); err != nil {
			logger.Printf("index load: %v", err)
		}
		if adapter.Count() > 0 {
			return
		}
		if _, err := adapter.Rebuild(bctx); err != nil {
			logger.Printf("index build: %v", err)
		}
	}()

	var runner api.Runner
	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		logger.Printf("llm setup failed, chat disabled: %v", err)
	} else {
		registry := tools.NewRegistry(adapter, store, cfg.Retrieval.TopK)
		runner = agent.New(llmClient, registry, adapter, agent.Options{
			MaxIterations: cfg.Agent.MaxIterations,
			ParseRetries:  cfg.Agent.ParseRetries,
			TopK:          cfg.Retrieval.TopK,
		}, logger)
	}

	server := &http.Server{
		Addr:    *addr,
		Handler: api.New(cfg, runner, store, adapter, store, logger).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s (llm provider: %s)", *addr, strings.ToUpper(cfg.LLM.Provider))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	case <-ctx.Done():
		logger.Println("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}
}

func seedCmd(cfg config.Config, logger *log.Logger) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool := mustOpenDatabase(ctx, cfg, logger)
	defer pool.Close()

	if err := database.Seed(ctx, pool); err != nil {
		logger.Fatalf("seed database: %v", err)
	}
	logger.Println("database seeded")
}

func rebuildCmd(cfg config.Config, logger *log.Logger) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool := mustOpenDatabase(ctx, cfg, logger)
	defer pool.Close()

	embedder, err := embeddings.NewEmbedder(cfg)
	if err != nil {
		logger.Fatalf("embedder setup: %v", err)
	}

	adapter, err := index.NewAdapter(pool, embedder, indexConfig(cfg), logger)
	if err != nil {
		logger.Fatalf("index setup: %v", err)
	}

	count, err := adapter.Rebuild(ctx)
	if err != nil {
		logger.Fatalf("rebuild index: %v", err)
	}
	logger.Printf("indexed %d chunks into collection %q", count, cfg.Retrieval.Collection)
}

func mustOpenDatabase(ctx context.Context, cfg config.Config, logger *log.Logger) *pgxpool.Pool {
	pool, err := database.NewPostgresPool(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatalf("postgres connection: %v", err)
	}
	if err := database.EnsureSchema(ctx, pool, cfg.Embeddings.Dimension); err != nil {
		pool.Close()
		logger.Fatalf("ensure schema: %v", err)
	}
	return pool
}

func indexConfig(cfg config.Config) index.Config {
	return index.Config{
		Collection:        cfg.Retrieval.Collection,
		ChunkSize:         cfg.Retrieval.ChunkSize,
		ChunkOverlap:      cfg.Retrieval.ChunkOverlap,
		TopK:              cfg.Retrieval.TopK,
		FetchMultiplier:   cfg.Retrieval.FetchMultiplier,
		KnowledgeBasePath: cfg.KnowledgeBasePath,
		DocumentsDir:      cfg.DocumentsDir,
	}
}

func printUsage() {
	fmt.Println(`usage: campus-agent <command> [flags]

commands:
  serve    start the HTTP API server
  seed     initialize and seed the relational database
  rebuild  rebuild the knowledge index from source documents`)
}
