// Package inference provides chat completions against OpenAI-compatible APIs.
//
// Callers depend on the Provider interface; Client is the HTTP
// implementation and Mock the test double. Anything speaking the
// OpenAI wire format works as a backend (hosted OpenAI, Ollama, vLLM,
// Together).
//
//	client, _ := inference.NewClient(
//	    inference.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    inference.WithModel("gpt-4o-mini"),
//	)
//	defer client.Close()
//
//	resp, _ := client.Chat(ctx, &inference.ChatRequest{
//	    Messages: []inference.Message{inference.NewUserMessage("Hello!")},
//	})
package inference

import "context"

// Provider generates chat completions.
type Provider interface {
	// Chat produces a completion for the given conversation.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Capabilities reports which features the provider supports.
	Capabilities() Capabilities

	// Health verifies connectivity and credentials.
	Health(ctx context.Context) error

	// Close releases held resources.
	Close() error
}

// Capabilities flags optional provider features.
type Capabilities struct {
	Chat bool
	JSON bool // JSON-constrained output via response_format
}

// ChatRequest describes one completion call. Zero-valued fields fall
// back to the provider's configured defaults.
type ChatRequest struct {
	Messages    []Message
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
	Stop        []string

	// JSONOnly constrains output to a single JSON object. The prompt
	// itself must still ask for JSON per the OpenAI API contract.
	JSONOnly bool
}

// ChatResponse is the first completion choice plus accounting data.
type ChatResponse struct {
	Message      Message
	FinishReason string
	Usage        Usage
	Model        string
	LatencyMs    int64
}

// Usage is the token count breakdown reported by the API.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
