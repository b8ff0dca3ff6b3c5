package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type SerpAPIClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewSerpAPIClient(apiKey string) *SerpAPIClient {
	return &SerpAPIClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *SerpAPIClient) Name() string {
	return "SerpAPI"
}

func (c *SerpAPIClient) Search(query string, limit int) ([]Item, error) {
	endpoint := fmt.Sprintf(
		"https://serpapi.com/search.json?engine=google_news&q=%s&api_key=%s",
		url.QueryEscape(query), c.apiKey,
	)

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("serpapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi status %d", resp.StatusCode)
	}

	var raw serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("serpapi decode: %w", err)
	}

	items := make([]Item, 0, limit)
	for _, r := range raw.NewsResults {
		if len(items) >= limit {
			break
		}
		items = append(items, Item{
			Title:   r.Title,
			Link:    r.Link,
			Source:  r.Source.Name,
			Date:    r.Date,
			Snippet: r.Snippet,
		})
	}

	return items, nil
}

type serpResponse struct {
	NewsResults []serpNewsResult `json:"news_results"`
}

type serpNewsResult struct {
	Title   string     `json:"title"`
	Link    string     `json:"link"`
	Date    string     `json:"date"`
	Snippet string     `json:"snippet"`
	Source  serpSource `json:"source"`
}

type serpSource struct {
	Name string `json:"name"`
}
