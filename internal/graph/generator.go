package graph

import (
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"pitchgraph/internal/model"
)

type entityFinder interface {
	CompanyName(startupText string) (string, error)
	Dependencies(startupText string) ([]model.Entity, error)
	Dependents(startupText string) ([]model.Entity, error)
}

type nodeEnricher interface {
	Enrich(entity model.Entity) model.Node
}

type graphStructurer interface {
	Structure(companyName, description string, nodes []model.Node) (*model.KnowledgeGraph, error)
	ModelName() string
}

// Generator runs the whole pipeline: identify entities, enrich each one,
// structure the result. Identification and enrichment failures degrade to
// partial output; only structuring can fail the generation.
type Generator struct {
	finder     entityFinder
	enricher   nodeEnricher
	structurer graphStructurer
	workers    int
}

func NewGenerator(finder entityFinder, enricher nodeEnricher, structurer graphStructurer, workers int) *Generator {
	if workers < 1 {
		workers = 1
	}
	return &Generator{
		finder:     finder,
		enricher:   enricher,
		structurer: structurer,
		workers:    workers,
	}
}

func (g *Generator) Generate(startupText, companyName string) (*model.KnowledgeGraph, error) {
	if companyName == "" {
		name, err := g.finder.CompanyName(startupText)
		if err != nil {
			slog.Warn("company name lookup failed", "error", err)
			companyName = "Company"
		} else {
			companyName = name
		}
	}

	dependencies, err := g.finder.Dependencies(startupText)
	if err != nil {
		slog.Warn("dependency identification failed", "error", err)
	}
	dependents, err := g.finder.Dependents(startupText)
	if err != nil {
		slog.Warn("dependent identification failed", "error", err)
	}

	entities := make([]model.Entity, 0, len(dependencies)+len(dependents))
	entities = append(entities, dependencies...)
	entities = append(entities, dependents...)

	if len(entities) == 0 {
		return emptyGraph(companyName), nil
	}

	// Enrichment calls are independent and write to disjoint slots, so they
	// fan out under a bounded worker count.
	nodes := make([]model.Node, len(entities))
	eg := new(errgroup.Group)
	eg.SetLimit(g.workers)
	for i, entity := range entities {
		eg.Go(func() error {
			nodes[i] = g.enricher.Enrich(entity)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		slog.Warn("enrichment worker failed", "error", err)
	}

	structured, err := g.structurer.Structure(companyName, startupText, nodes)
	if err != nil {
		return nil, err
	}

	finalize(structured, nodes, companyName, g.structurer.ModelName())
	return structured, nil
}

func emptyGraph(companyName string) *model.KnowledgeGraph {
	return &model.KnowledgeGraph{
		Root:  rootNode(companyName),
		Nodes: []model.Node{},
		Edges: []model.Edge{},
		Metadata: model.Metadata{
			LLMProcessed: false,
			GeneratedAt:  time.Now().UTC(),
		},
	}
}

func rootNode(companyName string) model.Node {
	return model.Node{
		ID:        "company_root",
		Name:      companyName,
		Type:      model.TypeCompany,
		Category:  "company",
		News:      []model.NewsItem{},
		HoverInfo: companyName,
	}
}

// finalize repairs the structured graph into its contract shape: enrichment
// data re-attached, dropped entities restored, ids unique, edges referencing
// only existing nodes, strengths in [0,1], layout positions assigned.
func finalize(graph *model.KnowledgeGraph, enriched []model.Node, companyName, modelName string) {
	if graph.Root.ID == "" {
		graph.Root.ID = "company_root"
	}
	graph.Root.Type = model.TypeCompany
	if graph.Root.Name == "" {
		graph.Root.Name = companyName
	}
	if graph.Root.Category == "" {
		graph.Root.Category = "company"
	}
	if graph.Root.News == nil {
		graph.Root.News = []model.NewsItem{}
	}
	if graph.Root.HoverInfo == "" {
		graph.Root.HoverInfo = graph.Root.Name
	}

	mergeEnrichment(graph, enriched)
	restoreDroppedEntities(graph, enriched)
	dedupeNodes(graph)
	repairEdges(graph)
	applyLayout(graph)

	totalDeps, totalDependents := 0, 0
	for _, n := range graph.Nodes {
		switch n.Type {
		case model.TypeDependency:
			totalDeps++
		case model.TypeDependent:
			totalDependents++
		}
	}
	graph.Metadata = model.Metadata{
		TotalDependencies: totalDeps,
		TotalDependents:   totalDependents,
		TotalNodes:        len(graph.Nodes),
		LLMProcessed:      true,
		ModelUsed:         modelName,
		GeneratedAt:       time.Now().UTC(),
	}
}

// mergeEnrichment copies the news/market/trade records gathered during
// enrichment onto the structured nodes. The model only ever sees summaries,
// so the facts themselves cannot be garbled in transit.
func mergeEnrichment(graph *model.KnowledgeGraph, enriched []model.Node) {
	byName := make(map[string]model.Node, len(enriched))
	for _, n := range enriched {
		byName[strings.ToLower(n.Name)] = n
	}

	for i := range graph.Nodes {
		node := &graph.Nodes[i]
		source, ok := byName[strings.ToLower(node.Name)]
		if !ok {
			if node.News == nil {
				node.News = []model.NewsItem{}
			}
			continue
		}
		node.News = source.News
		node.MarketData = source.MarketData
		node.TradeData = source.TradeData
		if node.Category == "" {
			node.Category = source.Category
		}
		if node.Relationship == "" {
			node.Relationship = source.Relationship
		}
		if node.HoverInfo == "" {
			node.HoverInfo = source.HoverInfo
		}
		if node.News == nil {
			node.News = []model.NewsItem{}
		}
	}
}

// restoreDroppedEntities re-adds identified entities the model left out,
// each with a default edge to the root.
func restoreDroppedEntities(graph *model.KnowledgeGraph, enriched []model.Node) {
	present := make(map[string]bool, len(graph.Nodes))
	for _, n := range graph.Nodes {
		present[strings.ToLower(n.Name)] = true
	}

	for _, n := range enriched {
		if present[strings.ToLower(n.Name)] {
			continue
		}
		present[strings.ToLower(n.Name)] = true
		graph.Nodes = append(graph.Nodes, n)

		edge := model.Edge{Label: n.Relationship, Strength: 0.5}
		if n.Type == model.TypeDependent {
			edge.From = graph.Root.ID
			edge.To = n.ID
		} else {
			edge.From = n.ID
			edge.To = graph.Root.ID
		}
		graph.Edges = append(graph.Edges, edge)
	}
}

func dedupeNodes(graph *model.KnowledgeGraph) {
	seen := map[string]bool{graph.Root.ID: true}
	kept := make([]model.Node, 0, len(graph.Nodes))
	for _, n := range graph.Nodes {
		if n.ID == "" || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		kept = append(kept, n)
	}
	graph.Nodes = kept
}

func repairEdges(graph *model.KnowledgeGraph) {
	ids := map[string]bool{graph.Root.ID: true}
	for _, n := range graph.Nodes {
		ids[n.ID] = true
	}

	kept := make([]model.Edge, 0, len(graph.Edges))
	for _, e := range graph.Edges {
		if !ids[e.From] || !ids[e.To] {
			continue
		}
		if e.Strength < 0 {
			e.Strength = 0
		}
		if e.Strength > 1 {
			e.Strength = 1
		}
		kept = append(kept, e)
	}
	graph.Edges = kept
}

// applyLayout places dependencies on the left of the root and dependents on
// the right, spread vertically. A hint for the renderer, not a contract on
// exact coordinates.
func applyLayout(graph *model.KnowledgeGraph) {
	graph.Root.Position = model.Position{X: 0, Y: 0}

	const (
		columnX = 350.0
		rowGap  = 140.0
	)

	depIdx, deptIdx := 0, 0
	depCount, deptCount := 0, 0
	for _, n := range graph.Nodes {
		if n.Type == model.TypeDependent {
			deptCount++
		} else {
			depCount++
		}
	}

	for i := range graph.Nodes {
		node := &graph.Nodes[i]
		if node.Type == model.TypeDependent {
			node.Position = model.Position{
				X: columnX,
				Y: rowGap*float64(deptIdx) - rowGap*float64(deptCount-1)/2,
			}
			deptIdx++
		} else {
			node.Position = model.Position{
				X: -columnX,
				Y: rowGap*float64(depIdx) - rowGap*float64(depCount-1)/2,
			}
			depIdx++
		}
	}
}
