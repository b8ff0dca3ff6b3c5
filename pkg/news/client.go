package news

// Item is one news result about an entity.
type Item struct {
	Title   string
	Link    string
	Source  string
	Date    string
	Snippet string
}

type Client interface {
	Search(query string, limit int) ([]Item, error)
	Name() string
}
