package llm

import (
	"fmt"
	"strings"
)

const (
	KindDependency = "dependency"
	KindDependent  = "dependent"
)

const extractSystemPrompt = `You extract business entities from research text about a startup.

Rules:
1. Identify every distinct named entity (company, technology, sector, service, commodity)
2. Skip the analyzed startup itself
3. Keep entity names short and canonical (e.g. "NVIDIA", not "NVIDIA Corporation's GPUs")
4. entity_type is one of: company, technology, sector, service, commodity
5. relationship is one short sentence describing the reliance
6. Return at most 10 entities, most important first

Output as JSON only, no other text:
[
  {
    "entity_name": "NVIDIA",
    "entity_type": "company",
    "relationship": "supplies the GPUs used for model training"
  }
]`

// Entity is the extraction DTO; the graph layer maps it onto its own types.
type Entity struct {
	Name         string
	Type         string
	Relationship string
}

// ExtractEntities pulls the entities named in a research answer. kind states
// whether the answer describes dependencies or dependents, which only
// changes the framing of the user prompt.
func ExtractEntities(c Client, answer string, kind string) ([]Entity, error) {
	var framing string
	switch kind {
	case KindDependency:
		framing = "The text below lists what a startup depends on. Extract the entities it relies on."
	case KindDependent:
		framing = "The text below lists who depends on a startup. Extract the entities that rely on it."
	default:
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}

	user := framing + "\n\nText:\n" + answer

	raw, err := c.Complete(extractSystemPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("extract entities: %w", err)
	}

	var parsed []struct {
		EntityName   string `json:"entity_name"`
		EntityType   string `json:"entity_type"`
		Relationship string `json:"relationship"`
	}
	if err := ParseJSON(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse entities: %w, content: %s", err, raw)
	}

	entities := make([]Entity, 0, len(parsed))
	for _, p := range parsed {
		name := strings.TrimSpace(p.EntityName)
		if name == "" {
			continue
		}
		entities = append(entities, Entity{
			Name:         name,
			Type:         p.EntityType,
			Relationship: p.Relationship,
		})
	}

	return entities, nil
}
