// cmd/server/main.go
package main

import (
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/presenton/search-advisor/internal/analyzer"
	"github.com/presenton/search-advisor/internal/config"
	"github.com/presenton/search-advisor/internal/llm"
	"github.com/presenton/search-advisor/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	llmProvider, err := llm.NewOpenAI(&cfg.OpenAI)
	if err != nil {
		log.Fatalf("failed to create LLM provider: %v", err)
	}

	analyzer := analyzer.New(llmProvider,
		analyzer.WithLLMTimeout(cfg.Analyzer.LLMTimeout),
		analyzer.WithBatchConcurrency(cfg.Analyzer.BatchConcurrency),
	)

	srv := server.New(*cfg, analyzer)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
