package graph

import (
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"

	"pitchgraph/internal/model"
	"pitchgraph/pkg/search"
)

type cannedLLM struct {
	response string
	err      error
}

func (c *cannedLLM) Complete(system, user string) (string, error) {
	return c.response, c.err
}

func (c *cannedLLM) ModelName() string { return "canned-model" }

func TestFinderDependencies(t *testing.T) {
	searchClient := &fakeSearch{answer: &search.Answer{Text: "The company relies on NVIDIA for GPUs."}}
	llmClient := &cannedLLM{response: `[{"entity_name": "NVIDIA", "entity_type": "company", "relationship": "supplies GPUs"}]`}

	f := NewFinder(searchClient, llmClient)
	entities, err := f.Dependencies("CyberSwarm uses NVIDIA GPUs")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(entities))
	assert.Equal(t, "NVIDIA", entities[0].Name)
	assert.Equal(t, model.TypeDependency, entities[0].Type)
	assert.Equal(t, "company", entities[0].Category)
}

func TestFinderDependents(t *testing.T) {
	searchClient := &fakeSearch{answer: &search.Answer{Text: "Healthcare providers use the product."}}
	llmClient := &cannedLLM{response: `[{"entity_name": "Healthcare", "entity_type": "sector", "relationship": "uses the product"}]`}

	f := NewFinder(searchClient, llmClient)
	entities, err := f.Dependents("description")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(entities))
	assert.Equal(t, model.TypeDependent, entities[0].Type)
}

func TestFinderSearchFailure(t *testing.T) {
	f := NewFinder(&fakeSearch{err: errors.New("quota exceeded")}, &cannedLLM{})

	_, err := f.Dependencies("description")
	assert.NotEqual(t, nil, err)
}

func TestFinderCompanyName(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   string
	}{
		{"plain name", "CyberSwarm", "CyberSwarm"},
		{"trailing period", "CyberSwarm.", "CyberSwarm"},
		{"multi-line answer", "CyberSwarm\nIt is a cybersecurity company.", "CyberSwarm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFinder(&fakeSearch{answer: &search.Answer{Text: tt.answer}}, &cannedLLM{})
			got, err := f.CompanyName("description")
			assert.Equal(t, nil, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFinderCompanyNameEmptyAnswer(t *testing.T) {
	f := NewFinder(&fakeSearch{answer: &search.Answer{Text: "   "}}, &cannedLLM{})

	_, err := f.CompanyName("description")
	assert.NotEqual(t, nil, err)
}
