package generator

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
)

// DefaultAnthropicMaxTokens bounds a design response when the config leaves max_tokens unset.
const DefaultAnthropicMaxTokens int64 = 8192

// AnthropicLLM implements Provider using anthropic-sdk-go message streaming.
type AnthropicLLM struct {
	Opts      []option.RequestOption
	MaxTokens int64
}

func NewAnthropicLLMFromConfig(cfg *LLMSettings) (*AnthropicLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic api key missing")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(withTrailingSlash(cfg.BaseURL)))
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultAnthropicMaxTokens
	}
	return &AnthropicLLM{Opts: opts, MaxTokens: maxTokens}, nil
}

func (a *AnthropicLLM) RunTask(ctx context.Context, prompt, model string) (EventStream, error) {
	if model == "" {
		return nil, errors.New("llm model is required")
	}
	client := anthropic.NewClient(a.Opts...)

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: a.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	return &anthropicStream{stream: stream}, nil
}

type anthropicStream struct {
	stream  *ssestream.Stream[anthropic.MessageStreamEventUnion]
	pending []Event
	cur     Event
}

func (s *anthropicStream) Next() bool {
	for len(s.pending) == 0 {
		if !s.stream.Next() {
			return false
		}
		s.pending = translateAnthropic(s.stream.Current())
	}
	s.cur, s.pending = s.pending[0], s.pending[1:]
	return true
}

func translateAnthropic(event anthropic.MessageStreamEventUnion) []Event {
	switch event := event.AsAny().(type) {
	case anthropic.MessageStartEvent:
		return []Event{{
			Kind:        EventMessageStart,
			Model:       string(event.Message.Model),
			InputTokens: event.Message.Usage.InputTokens,
		}}
	case anthropic.ContentBlockStartEvent:
		// text blocks may open with a non-empty prefix
		if block, ok := event.ContentBlock.AsAny().(anthropic.TextBlock); ok && block.Text != "" {
			return []Event{TextEvent(block.Text)}
		}
	case anthropic.ContentBlockDeltaEvent:
		if delta, ok := event.Delta.AsAny().(anthropic.TextDelta); ok && delta.Text != "" {
			return []Event{TextEvent(delta.Text)}
		}
	case anthropic.MessageDeltaEvent:
		var out []Event
		if event.Delta.StopReason != "" {
			out = append(out, Event{Kind: EventStop, StopReason: string(event.Delta.StopReason)})
		}
		if event.Usage.OutputTokens > 0 {
			out = append(out, Event{Kind: EventUsage, OutputTokens: event.Usage.OutputTokens})
		}
		return out
	}
	return nil
}

func (s *anthropicStream) Current() Event { return s.cur }

func (s *anthropicStream) Err() error { return s.stream.Err() }

func (s *anthropicStream) Close() error { return s.stream.Close() }
