package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"pitchgraph/cache"
	"pitchgraph/internal/config"
	"pitchgraph/internal/graph"
	"pitchgraph/internal/handler"
	"pitchgraph/internal/storage"
	"pitchgraph/pkg/llm"
	"pitchgraph/pkg/market"
	"pitchgraph/pkg/news"
	"pitchgraph/pkg/search"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	if err := cache.Connect(); err != nil {
		slog.Warn("cache unavailable, continuing without it", "error", err)
	}
	defer cache.Close()

	searchClient := search.NewPerplexityClient(cfg.PerplexityAPIKey)
	newsClient := news.NewSerpAPIClient(cfg.SerpAPIKey)

	var marketClient market.Client
	if cfg.FinnhubAPIKey != "" {
		marketClient = market.NewFinnhubClient(cfg.FinnhubAPIKey)
	} else {
		slog.Warn("FINNHUB_API_KEY not set, market data disabled")
	}

	var llmClient llm.Client
	if cfg.OpenAIAPIKey != "" {
		llmClient = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	} else {
		llmClient = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	}
	slog.Info("using LLM", "model", llmClient.ModelName())

	finder := graph.NewFinder(searchClient, llmClient)
	enricher := graph.NewEnricher(newsClient, marketClient, searchClient, cfg.NewsLimit, cfg.CacheTTL)
	structurer := graph.NewStructurer(llmClient, cfg.StructureMaxAttempts)
	generator := graph.NewGenerator(finder, enricher, structurer, cfg.EnrichWorkers)

	var writer handler.ObjectWriter
	if gcs, err := storage.NewGCSWriter(context.Background()); err != nil {
		slog.Warn("GCS unavailable, destination_gcs disabled", "error", err)
	} else {
		writer = gcs
	}

	graphHandler := handler.NewGraphHandler(generator, writer, cfg.Providers())

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/graph", graphHandler.GenerateGraph)
	r.GET("/graph", graphHandler.GetUsage)
	r.GET("/health", graphHandler.GetHealth)

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
