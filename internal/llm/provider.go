package llm

import "context"

// Provider is the core abstraction for LLM interaction.
// Consumers send a prompt and receive the model's text output.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its text response.
	// Output classification (JSON extraction, shape checks) belongs to the
	// caller; providers only map transport and quota failures.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Optional.
	System string

	// Messages is the conversation history. Quiz generation is single-turn,
	// so this normally holds one user message.
	Messages []Message

	// JSON asks the provider for a JSON-only response where the backend
	// supports it (response MIME type, json_object format). The text is
	// still returned verbatim and may need extraction.
	JSON bool

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Prompt builds a single-turn request from a user prompt.
func Prompt(text string) Request {
	return Request{Messages: []Message{{Role: RoleUser, Content: text}}}
}

// Response holds the LLM's output.
type Response struct {
	// Text is the raw generated output.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
