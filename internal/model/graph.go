package model

import "time"

const (
	TypeCompany    = "company"
	TypeDependency = "dependency"
	TypeDependent  = "dependent"
)

// Entity is a dependency or dependent identified from the startup
// description, before enrichment.
type Entity struct {
	Name         string
	Type         string
	Category     string
	Relationship string
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type NewsItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Source  string `json:"source"`
	Date    string `json:"date"`
	Snippet string `json:"snippet"`
}

type MarketData struct {
	StockTicker string `json:"stock_ticker"`
	StockPrice  string `json:"stock_price"`
	Week52High  string `json:"52_week_high"`
	Week52Low   string `json:"52_week_low"`
}

type TradeData struct {
	India string `json:"india"`
	US    string `json:"us"`
	China string `json:"china"`
}

// Node field names are a fixed contract with downstream visualizations.
type Node struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	Category     string      `json:"category"`
	Position     Position    `json:"position"`
	Relationship string      `json:"relationship"`
	News         []NewsItem  `json:"news"`
	MarketData   *MarketData `json:"market_data,omitempty"`
	TradeData    *TradeData  `json:"trade_data,omitempty"`
	HoverInfo    string      `json:"hover_info"`
}

type Edge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Label    string  `json:"label"`
	Strength float64 `json:"strength"`
}

type Metadata struct {
	TotalDependencies int       `json:"total_dependencies"`
	TotalDependents   int       `json:"total_dependents"`
	TotalNodes        int       `json:"total_nodes"`
	LLMProcessed      bool      `json:"llm_processed"`
	ModelUsed         string    `json:"model_used"`
	GeneratedAt       time.Time `json:"generated_at"`
}

type KnowledgeGraph struct {
	Root     Node     `json:"root"`
	Nodes    []Node   `json:"nodes"`
	Edges    []Edge   `json:"edges"`
	Metadata Metadata `json:"metadata"`
}
