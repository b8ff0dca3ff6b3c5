package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const perplexityURL = "https://api.perplexity.ai/chat/completions"

type PerplexityClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewPerplexityClient(apiKey string) *PerplexityClient {
	return &PerplexityClient{
		apiKey:     apiKey,
		model:      "sonar",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *PerplexityClient) Name() string {
	return "Perplexity"
}

func (c *PerplexityClient) Ask(question string) (*Answer, error) {
	body, err := json.Marshal(perplexityRequest{
		Model: c.model,
		Messages: []perplexityMessage{
			{Role: "user", Content: question},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("perplexity encode: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, perplexityURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("perplexity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perplexity fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("perplexity status %d", resp.StatusCode)
	}

	var raw perplexityResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("perplexity decode: %w", err)
	}

	if len(raw.Choices) == 0 {
		return nil, fmt.Errorf("perplexity returned no choices")
	}

	return &Answer{
		Text:    raw.Choices[0].Message.Content,
		Sources: raw.Citations,
	}, nil
}

type perplexityRequest struct {
	Model    string              `json:"model"`
	Messages []perplexityMessage `json:"messages"`
}

type perplexityMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type perplexityResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}
