package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"pitchgraph/internal/model"
	"pitchgraph/pkg/llm"
)

// ErrStructuring marks the one hard failure of the pipeline: the model could
// not produce contract-valid graph output within the allowed attempts.
var ErrStructuring = errors.New("graph structuring failed")

type Structurer struct {
	llm         llm.Client
	maxAttempts int
}

func NewStructurer(llmClient llm.Client, maxAttempts int) *Structurer {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Structurer{llm: llmClient, maxAttempts: maxAttempts}
}

func (s *Structurer) ModelName() string {
	return s.llm.ModelName()
}

// Structure normalizes the enriched nodes into the canonical graph shape.
// The earlier pipeline stages produced usable data by this point, so a bad
// model response is retried before the whole generation is failed.
func (s *Structurer) Structure(companyName, description string, nodes []model.Node) (*model.KnowledgeGraph, error) {
	input := llm.StructureInput{
		CompanyName: companyName,
		Description: description,
		Entities:    entitySummaries(nodes),
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		data, err := llm.StructureGraph(s.llm, input)
		if err != nil {
			lastErr = err
			slog.Warn("structuring attempt failed", "attempt", attempt, "error", err)
			continue
		}

		var graph model.KnowledgeGraph
		if err := json.Unmarshal(data, &graph); err != nil {
			lastErr = err
			slog.Warn("structuring attempt produced undecodable graph", "attempt", attempt, "error", err)
			continue
		}

		return &graph, nil
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", ErrStructuring, s.maxAttempts, lastErr)
}

func entitySummaries(nodes []model.Node) []llm.EntitySummary {
	summaries := make([]llm.EntitySummary, 0, len(nodes))
	for _, n := range nodes {
		summaries = append(summaries, llm.EntitySummary{
			ID:           n.ID,
			Name:         n.Name,
			Type:         n.Type,
			Category:     n.Category,
			Relationship: n.Relationship,
			NewsCount:    len(n.News),
			HasMarket:    n.MarketData != nil,
		})
	}
	return summaries
}
