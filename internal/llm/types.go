package llm

import (
	"context"
	"encoding/json"
)

// Provider is the outbound LLM capability. Implementations must either
// return content conforming to the requested schema or an error; the caller
// treats any error as the provider being unavailable.
type Provider interface {
	StructuredComplete(ctx context.Context, system, user string, schema ResponseSchema, opts ...Option) (json.RawMessage, Usage, error)
}

// ResponseSchema is a strict JSON schema the completion must conform to.
type ResponseSchema struct {
	Name        string
	Description string
	Schema      map[string]interface{}
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

func WithMaxTokens(n int64) Option {
	return func(o *Options) { o.MaxTokens = n }
}
