package inference

import (
	"log/slog"
	"time"
)

// Config carries connection details and request defaults for a provider.
// Request-level fields on ChatRequest override these per call.
type Config struct {
	BaseURL string
	APIKey  string // optional for local providers

	Model       string // default chat model
	MaxTokens   int
	Temperature float64

	Timeout    time.Duration // per request
	MaxRetries int
	RetryDelay time.Duration // scaled linearly by attempt number

	Logger *slog.Logger
}

// DefaultConfig targets hosted OpenAI with conservative retry settings.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o-mini",
		MaxTokens:   1024,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
		MaxRetries:  3,
		RetryDelay:  100 * time.Millisecond,
		Logger:      slog.Default(),
	}
}

// Option mutates a Config during construction.
type Option func(*Config)

// Apply runs each option against the config in order.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// WithBaseURL points the client at a different endpoint, e.g.
// "http://localhost:11434/v1" for Ollama.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithAPIKey sets the bearer token.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithModel sets the default chat model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithMaxTokens sets the default completion token cap.
func WithMaxTokens(n int) Option {
	return func(c *Config) { c.MaxTokens = n }
}

// WithTemperature sets the default sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Config) { c.Temperature = t }
}

// WithTimeout bounds a single HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithRetry sets the retry count and base delay between attempts.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.RetryDelay = delay
	}
}

// WithLogger routes client logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}
