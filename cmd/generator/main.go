package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"pitchgraph/cache"
	"pitchgraph/internal/config"
	"pitchgraph/internal/graph"
	"pitchgraph/internal/storage"
	"pitchgraph/pkg/llm"
	"pitchgraph/pkg/market"
	"pitchgraph/pkg/news"
	"pitchgraph/pkg/search"
	"strings"
)

// One-shot generator: reads a startup description, prints the knowledge
// graph as JSON, optionally writing it to GCS.
func main() {
	inputPath := flag.String("input", "", "path to a file with the startup description (default: stdin)")
	company := flag.String("company", "", "company name, inferred from the text when omitted")
	destination := flag.String("gcs", "", "optional gs://bucket/object to write the graph to")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	startupText, err := readInput(*inputPath)
	if err != nil {
		log.Fatalf("error reading input: %v", err)
	}
	startupText = strings.TrimSpace(startupText)
	if startupText == "" {
		log.Fatal("empty startup description")
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
	}

	var llmClient llm.Client
	if cfg.OpenAIAPIKey != "" {
		llmClient = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	} else {
		llmClient = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	}

	finder := graph.NewFinder(searchClient, llmClient)
	enricher := graph.NewEnricher(newsClient, marketClient, searchClient, cfg.NewsLimit, cfg.CacheTTL)
	structurer := graph.NewStructurer(llmClient, cfg.StructureMaxAttempts)
	generator := graph.NewGenerator(finder, enricher, structurer, cfg.EnrichWorkers)

	result, err := generator.Generate(startupText, *company)
	if err != nil {
		log.Fatalf("error generating graph: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("error encoding graph: %v", err)
	}
	fmt.Println(string(out))

	if *destination != "" {
		writer, err := storage.NewGCSWriter(context.Background())
		if err != nil {
			log.Fatalf("error creating GCS client: %v", err)
		}
		if err := writer.WriteJSON(*destination, result); err != nil {
			log.Fatalf("error writing graph to GCS: %v", err)
		}
		slog.Info("graph written to GCS", "uri", *destination)
	}
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
