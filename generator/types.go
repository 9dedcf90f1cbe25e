package generator

// EventKind discriminates the events of a streamed model response.
type EventKind string

const (
	EventText         EventKind = "text"
	EventMessageStart EventKind = "message_start"
	EventUsage        EventKind = "usage"
	EventStop         EventKind = "stop"
)

// Event is one unit of a streamed response. Only text events carry Content.
type Event struct {
	Kind         EventKind `json:"type"`
	Content      string    `json:"content,omitempty"`
	Model        string    `json:"model,omitempty"`
	StopReason   string    `json:"stop_reason,omitempty"`
	InputTokens  int64     `json:"input_tokens,omitempty"`
	OutputTokens int64     `json:"output_tokens,omitempty"`
}

// TextEvent builds a text fragment event.
func TextEvent(content string) Event {
	return Event{Kind: EventText, Content: content}
}

// Usage sums the token counts reported by usage events.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// Result summarizes one collected stream.
type Result struct {
	Text       string
	Events     int
	TextEvents int
	StopReason string
	Usage      Usage
}
