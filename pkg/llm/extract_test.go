package llm

import (
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
)

type fakeClient struct {
	response string
	err      error
	lastUser string
}

func (f *fakeClient) Complete(system, user string) (string, error) {
	f.lastUser = user
	return f.response, f.err
}

func (f *fakeClient) ModelName() string { return "fake-model" }

func TestExtractEntities(t *testing.T) {
	client := &fakeClient{response: `[
		{"entity_name": "NVIDIA", "entity_type": "company", "relationship": "supplies GPUs for training"},
		{"entity_name": "AWS", "entity_type": "company", "relationship": "hosts the platform"},
		{"entity_name": "", "entity_type": "company", "relationship": "ignored"}
	]`}

	entities, err := ExtractEntities(client, "NVIDIA supplies GPUs; AWS hosts infrastructure.", KindDependency)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(entities))
	assert.Equal(t, "NVIDIA", entities[0].Name)
	assert.Equal(t, "company", entities[0].Type)
	assert.Equal(t, "supplies GPUs for training", entities[0].Relationship)
}

func TestExtractEntitiesEmptyAnswer(t *testing.T) {
	client := &fakeClient{response: `[]`}

	entities, err := ExtractEntities(client, "No clear dependencies found.", KindDependent)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(entities))
}

func TestExtractEntitiesFencedOutput(t *testing.T) {
	client := &fakeClient{response: "```json\n[{\"entity_name\": \"Healthcare\", \"entity_type\": \"sector\", \"relationship\": \"uses the product\"}]\n```"}

	entities, err := ExtractEntities(client, "Healthcare providers rely on it.", KindDependent)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(entities))
	assert.Equal(t, "Healthcare", entities[0].Name)
}

func TestExtractEntitiesUnknownKind(t *testing.T) {
	client := &fakeClient{response: `[]`}

	_, err := ExtractEntities(client, "anything", "sideways")
	assert.NotEqual(t, nil, err)
}

func TestExtractEntitiesProviderError(t *testing.T) {
	client := &fakeClient{err: errors.New("rate limited")}

	_, err := ExtractEntities(client, "anything", KindDependency)
	assert.NotEqual(t, nil, err)
}

func TestStructureGraphValidOutput(t *testing.T) {
	client := &fakeClient{response: `<JSON>{
		"root": {"id": "company_root", "name": "CyberSwarm", "type": "company"},
		"nodes": [{"id": "dep_nvidia", "name": "NVIDIA", "type": "dependency", "relationship": "supplies GPUs"}],
		"edges": [{"from": "dep_nvidia", "to": "company_root", "label": "supplies GPUs to", "strength": 0.9}]
	}</JSON>`}

	data, err := StructureGraph(client, StructureInput{
		CompanyName: "CyberSwarm",
		Description: "Cybersecurity AI on NVIDIA GPUs",
		Entities: []EntitySummary{
			{ID: "dep_nvidia", Name: "NVIDIA", Type: "dependency", Category: "company"},
		},
	})

	assert.Equal(t, nil, err)
	assert.NotEqual(t, 0, len(data))
}

func TestStructureGraphContractViolation(t *testing.T) {
	// Parseable JSON that does not match the contract must be rejected, not
	// passed through half-valid.
	client := &fakeClient{response: `{"nodes": "not a list"}`}

	_, err := StructureGraph(client, StructureInput{CompanyName: "X"})
	assert.NotEqual(t, nil, err)
}
