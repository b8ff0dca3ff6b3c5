package graph

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pitchgraph/cache"
	"pitchgraph/internal/model"
	"pitchgraph/pkg/market"
	"pitchgraph/pkg/news"
	"pitchgraph/pkg/search"
)

type factCache interface {
	Get(name, nodeType string) ([]byte, bool)
	Set(name, nodeType string, data []byte, ttl time.Duration) error
	Enabled() bool
}

type redisFactCache struct{}

func (redisFactCache) Get(name, nodeType string) ([]byte, bool) {
	return cache.GetNode(name, nodeType)
}

func (redisFactCache) Set(name, nodeType string, data []byte, ttl time.Duration) error {
	return cache.SetNode(name, nodeType, data, ttl)
}

func (redisFactCache) Enabled() bool { return cache.Enabled() }

// cachedFacts is what the cache stores per entity. Only provider facts are
// cached; relationship, category, and hover text describe the reliance on
// the company under analysis and must be rebuilt per request.
type cachedFacts struct {
	News       []model.NewsItem  `json:"news"`
	MarketData *model.MarketData `json:"market_data,omitempty"`
	TradeData  *model.TradeData  `json:"trade_data,omitempty"`
}

// Enricher attaches news, market, and trade facts to an identified entity.
// Every sub-fetch is independently optional: a provider failure is logged
// and leaves that field empty, it never fails the node.
type Enricher struct {
	news      news.Client
	market    market.Client
	search    search.Client
	cache     factCache
	newsLimit int
	cacheTTL  time.Duration
}

// NewEnricher builds an enricher. marketClient may be nil when no market
// data provider is configured.
func NewEnricher(newsClient news.Client, marketClient market.Client, searchClient search.Client, newsLimit int, cacheTTL time.Duration) *Enricher {
	if newsLimit < 1 {
		newsLimit = 5
	}
	return &Enricher{
		news:      newsClient,
		market:    marketClient,
		search:    searchClient,
		cache:     redisFactCache{},
		newsLimit: newsLimit,
		cacheTTL:  cacheTTL,
	}
}

func (e *Enricher) Enrich(entity model.Entity) model.Node {
	node := model.Node{
		ID:           nodeID(entity),
		Name:         entity.Name,
		Type:         entity.Type,
		Category:     entity.Category,
		Relationship: entity.Relationship,
		News:         []model.NewsItem{},
	}

	if data, ok := e.cache.Get(entity.Name, entity.Type); ok {
		var facts cachedFacts
		if err := json.Unmarshal(data, &facts); err == nil {
			if facts.News != nil {
				node.News = facts.News
			}
			node.MarketData = facts.MarketData
			node.TradeData = facts.TradeData
			node.HoverInfo = hoverInfo(node)
			return node
		}
	}

	items, err := e.news.Search(entity.Name, e.newsLimit)
	if err != nil {
		slog.Warn("news fetch failed", "entity", entity.Name, "error", err)
	} else {
		for _, item := range items {
			node.News = append(node.News, model.NewsItem{
				Title:   item.Title,
				Link:    item.Link,
				Source:  item.Source,
				Date:    item.Date,
				Snippet: item.Snippet,
			})
		}
	}

	if e.market != nil && strings.EqualFold(entity.Category, "company") {
		quote, err := e.market.Lookup(entity.Name)
		if err != nil {
			slog.Warn("market lookup failed", "entity", entity.Name, "error", err)
		} else {
			node.MarketData = marketDataFromQuote(quote)
		}
	}

	answer, err := e.search.Ask(tradeQuestion(entity.Name))
	if err != nil {
		slog.Warn("trade data fetch failed", "entity", entity.Name, "error", err)
	} else {
		node.TradeData = parseTradeAnswer(answer.Text)
	}

	node.HoverInfo = hoverInfo(node)

	if e.cache.Enabled() {
		facts := cachedFacts{News: node.News, MarketData: node.MarketData, TradeData: node.TradeData}
		if data, err := json.Marshal(facts); err == nil {
			e.cache.Set(entity.Name, entity.Type, data, e.cacheTTL)
		}
	}

	return node
}

func nodeID(entity model.Entity) string {
	prefix := "dep"
	if entity.Type == model.TypeDependent {
		prefix = "dept"
	}
	return prefix + "_" + slugify(entity.Name)
}

func slugify(name string) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && sb.Len() > 0 {
				sb.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "_")
}

func marketDataFromQuote(q *market.Quote) *model.MarketData {
	md := &model.MarketData{
		StockTicker: q.Ticker,
		StockPrice:  fmt.Sprintf("$%.2f", q.Price),
	}
	if q.High52wk > 0 {
		md.Week52High = fmt.Sprintf("$%.2f", q.High52wk)
	}
	if q.Low52wk > 0 {
		md.Week52Low = fmt.Sprintf("$%.2f", q.Low52wk)
	}
	return md
}

func tradeQuestion(name string) string {
	return fmt.Sprintf(
		"Summarize %s's export, import, and trade activity in India, the United States, and China. "+
			"Answer with exactly three lines, each starting with 'India:', 'US:', or 'China:'.", name)
}

// parseTradeAnswer pulls the per-country lines out of a free-text trade
// answer. Returns nil when no country could be parsed.
func parseTradeAnswer(text string) *model.TradeData {
	td := &model.TradeData{}
	found := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*• "))
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "india:"):
			td.India = strings.TrimSpace(line[len("india:"):])
			found = true
		case strings.HasPrefix(lower, "us:"):
			td.US = strings.TrimSpace(line[len("us:"):])
			found = true
		case strings.HasPrefix(lower, "united states:"):
			td.US = strings.TrimSpace(line[len("united states:"):])
			found = true
		case strings.HasPrefix(lower, "china:"):
			td.China = strings.TrimSpace(line[len("china:"):])
			found = true
		}
	}

	if !found {
		return nil
	}
	return td
}

func hoverInfo(node model.Node) string {
	var sb strings.Builder
	if node.Category != "" {
		sb.WriteString(fmt.Sprintf("%s (%s)", node.Name, node.Category))
	} else {
		sb.WriteString(node.Name)
	}
	if node.Relationship != "" {
		sb.WriteString(": " + node.Relationship)
	}
	if len(node.News) > 0 {
		sb.WriteString(" Latest news: " + node.News[0].Title + ".")
	}
	if node.MarketData != nil {
		sb.WriteString(fmt.Sprintf(" %s trading at %s.", node.MarketData.StockTicker, node.MarketData.StockPrice))
	}
	return sb.String()
}
