package search

// Answer is the synthesized response from an answer-engine query.
type Answer struct {
	Text    string
	Sources []string
}

type Client interface {
	Ask(question string) (*Answer, error)
	Name() string
}
