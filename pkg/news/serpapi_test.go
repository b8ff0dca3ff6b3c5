package news

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestSearch(t *testing.T) {
	payload := map[string]interface{}{
		"news_results": []map[string]interface{}{
			{
				"title":   "NVIDIA Reports Record Data Center Revenue",
				"link":    "https://example.com/nvidia-q3",
				"date":    "10/14/2026, 07:00 AM",
				"snippet": "The chipmaker posted another record quarter driven by AI demand.",
				"source": map[string]interface{}{
					"name": "Reuters",
				},
			},
			{
				"title":   "NVIDIA Announces Next GPU Generation",
				"link":    "https://example.com/nvidia-gpu",
				"date":    "10/13/2026, 09:00 AM",
				"snippet": "The new architecture targets inference workloads.",
				"source": map[string]interface{}{
					"name": "Bloomberg",
				},
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := &SerpAPIClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	items, err := client.Search("NVIDIA", 5)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(items))
	assert.Equal(t, "NVIDIA Reports Record Data Center Revenue", items[0].Title)
	assert.Equal(t, "https://example.com/nvidia-q3", items[0].Link)
	assert.Equal(t, "Reuters", items[0].Source)
	assert.Equal(t, "10/14/2026, 07:00 AM", items[0].Date)
	assert.Equal(t, "The chipmaker posted another record quarter driven by AI demand.", items[0].Snippet)
}

func TestSearchHonorsLimit(t *testing.T) {
	results := make([]map[string]interface{}, 10)
	for i := range results {
		results[i] = map[string]interface{}{
			"title":  "Headline",
			"link":   "https://example.com",
			"source": map[string]interface{}{"name": "Wire"},
		}
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"news_results": results})
	}))
	defer srv.Close()

	client := &SerpAPIClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	items, err := client.Search("anything", 3)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(items))
}

func TestSearchEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := &SerpAPIClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	items, err := client.Search("unknown entity", 5)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(items))
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}
