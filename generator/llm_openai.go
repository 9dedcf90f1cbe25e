package generator

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
)

// OpenAILLM implements Provider using the official openai-go SDK (streaming chat completions).
// It serves OpenAI itself and any OpenAI-compatible endpoint such as Groq.
type OpenAILLM struct {
	Opts      []option.RequestOption
	MaxTokens int64
}

func NewOpenAILLMFromConfig(cfg *LLMSettings) (*OpenAILLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(withTrailingSlash(cfg.BaseURL)))
	}
	return &OpenAILLM{Opts: opts, MaxTokens: cfg.MaxTokens}, nil
}

func (o *OpenAILLM) RunTask(ctx context.Context, prompt, model string) (EventStream, error) {
	if model == "" {
		return nil, errors.New("llm model is required")
	}
	client := openai.NewClient(o.Opts...)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		// the usage chunk is only sent when asked for
		StreamOptions: openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: openai.Bool(true),
		},
	}
	if o.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(o.MaxTokens)
	}

	return &openAIStream{stream: client.Chat.Completions.NewStreaming(ctx, params)}, nil
}

type openAIStream struct {
	stream  *ssestream.Stream[openai.ChatCompletionChunk]
	pending []Event
	cur     Event
	started bool
}

func (s *openAIStream) Next() bool {
	for len(s.pending) == 0 {
		if !s.stream.Next() {
			return false
		}
		s.pending = s.translate(s.stream.Current())
	}
	s.cur, s.pending = s.pending[0], s.pending[1:]
	return true
}

// translate maps one chunk to events in the order text, stop, usage.
func (s *openAIStream) translate(chunk openai.ChatCompletionChunk) []Event {
	var out []Event
	if !s.started {
		s.started = true
		out = append(out, Event{Kind: EventMessageStart, Model: chunk.Model})
	}
	if len(chunk.Choices) > 0 {
		choice := chunk.Choices[0]
		if choice.Delta.Content != "" {
			out = append(out, TextEvent(choice.Delta.Content))
		}
		if choice.FinishReason != "" {
			out = append(out, Event{Kind: EventStop, StopReason: choice.FinishReason})
		}
	}
	if chunk.Usage.TotalTokens > 0 {
		out = append(out, Event{
			Kind:         EventUsage,
			InputTokens:  chunk.Usage.PromptTokens,
			OutputTokens: chunk.Usage.CompletionTokens,
		})
	}
	return out
}

func (s *openAIStream) Current() Event { return s.cur }

func (s *openAIStream) Err() error { return s.stream.Err() }

func (s *openAIStream) Close() error { return s.stream.Close() }
