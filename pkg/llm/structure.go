package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

const structureSystemPrompt = `You turn a startup's identified dependencies and dependents into a knowledge graph.

Rules:
1. The root is the company itself, with id "company_root" and type "company"
2. Every listed entity becomes exactly one node; keep each node's given id, name, type, and category
3. Write a one-sentence "relationship" and a short "hover_info" for every node, grounded in the provided facts
4. Every node gets one edge connecting it to the root: dependencies point from the node to "company_root", dependents from "company_root" to the node
5. Edge "label" names the relationship (e.g. "supplies GPUs to"); "strength" is 0 to 1 reflecting how critical the link is
6. Never invent entities that are not in the list

Output as JSON only, no other text:
{
  "root": {"id": "company_root", "name": "...", "type": "company", "category": "company", "relationship": "", "hover_info": "..."},
  "nodes": [{"id": "...", "name": "...", "type": "dependency", "category": "...", "relationship": "...", "hover_info": "..."}],
  "edges": [{"from": "...", "to": "company_root", "label": "...", "strength": 0.8}]
}`

// EntitySummary is one enriched entity as presented to the structuring model.
type EntitySummary struct {
	ID           string
	Name         string
	Type         string
	Category     string
	Relationship string
	NewsCount    int
	HasMarket    bool
}

type StructureInput struct {
	CompanyName string
	Description string
	Entities    []EntitySummary
}

// StructureGraph asks the model to normalize the aggregated entities into the
// canonical graph shape and returns the repaired, contract-validated JSON.
// The caller owns retries and domain-level integrity checks.
func StructureGraph(c Client, in StructureInput) ([]byte, error) {
	raw, err := c.Complete(structureSystemPrompt, formatStructureInput(in))
	if err != nil {
		return nil, fmt.Errorf("structure graph: %w", err)
	}

	var parsed interface{}
	if err := ParseJSON(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse graph response: %w, content: %s", err, raw)
	}

	data, err := remarshal(parsed)
	if err != nil {
		return nil, err
	}

	if err := ValidateGraphJSON(data); err != nil {
		return nil, err
	}

	return data, nil
}

func remarshal(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("re-encode graph response: %w", err)
	}
	return data, nil
}

func formatStructureInput(in StructureInput) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company: %s\n\nDescription:\n%s\n\nEntities:\n", in.CompanyName, in.Description))
	for _, e := range in.Entities {
		sb.WriteString(fmt.Sprintf("- id: %s | name: %s | type: %s | category: %s\n", e.ID, e.Name, e.Type, e.Category))
		if e.Relationship != "" {
			sb.WriteString(fmt.Sprintf("  relationship: %s\n", e.Relationship))
		}
		sb.WriteString(fmt.Sprintf("  news articles: %d | market data: %t\n", e.NewsCount, e.HasMarket))
	}
	return sb.String()
}
