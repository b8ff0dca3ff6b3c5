package llm

// Client is a minimal chat-completion surface. Entity extraction and graph
// structuring build their prompts on top of it, so providers stay
// interchangeable.
type Client interface {
	Complete(system, user string) (string, error)
	ModelName() string
}
