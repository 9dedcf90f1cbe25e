package generator

import (
	"context"
	"strings"
)

// Provider submits a task to a hosted model and returns its streamed events.
type Provider interface {
	RunTask(ctx context.Context, prompt, model string) (EventStream, error)
}

// EventStream is a pull iterator over the events of one task.
// Next must be called before the first Current. Err reports the error that
// stopped iteration, if any.
type EventStream interface {
	Next() bool
	Current() Event
	Err() error
	Close() error
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	Provider  string
	APIKey    string
	BaseURL   string
	MaxTokens int64
}

// withTrailingSlash keeps the last path segment of a base URL such as
// https://api.groq.com/openai/v1 when the SDK resolves relative endpoints.
func withTrailingSlash(baseURL string) string {
	if strings.HasSuffix(baseURL, "/") {
		return baseURL
	}
	return baseURL + "/"
}
