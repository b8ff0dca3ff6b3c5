package graph

import (
	"fmt"
	"strings"

	"pitchgraph/internal/model"
	"pitchgraph/pkg/llm"
	"pitchgraph/pkg/search"
)

// Finder identifies a startup's dependencies and dependents. The answer
// engine does the research; the LLM turns its prose into entity records.
type Finder struct {
	search search.Client
	llm    llm.Client
}

func NewFinder(searchClient search.Client, llmClient llm.Client) *Finder {
	return &Finder{search: searchClient, llm: llmClient}
}

func (f *Finder) CompanyName(startupText string) (string, error) {
	answer, err := f.search.Ask(
		"What is the name of the company described below? Answer with the company name only, nothing else.\n\n" + startupText,
	)
	if err != nil {
		return "", fmt.Errorf("company name lookup: %w", err)
	}

	name := strings.TrimSpace(answer.Text)
	if i := strings.IndexByte(name, '\n'); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	name = strings.Trim(name, `."`)
	if name == "" {
		return "", fmt.Errorf("company name lookup: empty answer")
	}
	return name, nil
}

func (f *Finder) Dependencies(startupText string) ([]model.Entity, error) {
	question := "What external companies, technologies, suppliers, and services does the startup described below depend on to operate? " +
		"Name each one and explain the reliance briefly.\n\nStartup description:\n" + startupText
	return f.identify(question, llm.KindDependency, model.TypeDependency)
}

func (f *Finder) Dependents(startupText string) ([]model.Entity, error) {
	question := "What industries, customer segments, and companies depend on the product of the startup described below? " +
		"Name each one and explain the reliance briefly.\n\nStartup description:\n" + startupText
	return f.identify(question, llm.KindDependent, model.TypeDependent)
}

func (f *Finder) identify(question, kind, nodeType string) ([]model.Entity, error) {
	answer, err := f.search.Ask(question)
	if err != nil {
		return nil, fmt.Errorf("identify %s entities: %w", nodeType, err)
	}

	extracted, err := llm.ExtractEntities(f.llm, answer.Text, kind)
	if err != nil {
		return nil, fmt.Errorf("identify %s entities: %w", nodeType, err)
	}

	entities := make([]model.Entity, 0, len(extracted))
	for _, e := range extracted {
		entities = append(entities, model.Entity{
			Name:         e.Name,
			Type:         nodeType,
			Category:     e.Type,
			Relationship: e.Relationship,
		})
	}
	return entities, nil
}
