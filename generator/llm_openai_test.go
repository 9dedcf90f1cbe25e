package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSSE(w http.ResponseWriter, frames []string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)
	for _, frame := range frames {
		fmt.Fprint(w, frame)
	}
}

func openAIChunk(content, finish string) string {
	finishJSON := "null"
	if finish != "" {
		finishJSON = fmt.Sprintf("%q", finish)
	}
	return fmt.Sprintf(`data: {"id":"chatcmpl-1","object":"chat.completion.chunk","created":1,"model":"llama-test","choices":[{"index":0,"delta":{"role":"assistant","content":%q},"finish_reason":%s}]}`+"\n\n", content, finishJSON)
}

func TestNewOpenAILLMFromConfig_Validation(t *testing.T) {
	t.Parallel()
	_, err := NewOpenAILLMFromConfig(nil)
	assert.Error(t, err)

	_, err = NewOpenAILLMFromConfig(&LLMSettings{BaseURL: "https://api.groq.com/openai/v1"})
	assert.Error(t, err)
}

func TestOpenAILLM_RunTaskStreamsEvents(t *testing.T) {
	t.Parallel()
	var gotBody map[string]any
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		writeSSE(w, []string{
			openAIChunk("# Design", ""),
			openAIChunk("\nHello", ""),
			openAIChunk("", "stop"),
			`data: {"id":"chatcmpl-1","object":"chat.completion.chunk","created":1,"model":"llama-test","choices":[],"usage":{"prompt_tokens":10,"completion_tokens":3,"total_tokens":13}}` + "\n\n",
			"data: [DONE]\n\n",
		})
	}))
	defer srv.Close()

	llm, err := NewOpenAILLMFromConfig(&LLMSettings{APIKey: "test-key", BaseURL: srv.URL + "/openai/v1"})
	require.NoError(t, err)

	stream, err := llm.RunTask(context.Background(), "the prompt", "llama-test")
	require.NoError(t, err)

	var events []Event
	for stream.Next() {
		events = append(events, stream.Current())
	}
	require.NoError(t, stream.Err())
	require.NoError(t, stream.Close())

	assert.Equal(t, "/openai/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "llama-test", gotBody["model"])
	assert.Equal(t, true, gotBody["stream"])
	assert.Equal(t, map[string]any{"include_usage": true}, gotBody["stream_options"])
	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	assert.Equal(t, "the prompt", messages[0].(map[string]any)["content"])

	assert.Equal(t, []Event{
		{Kind: EventMessageStart, Model: "llama-test"},
		TextEvent("# Design"),
		TextEvent("\nHello"),
		{Kind: EventStop, StopReason: "stop"},
		{Kind: EventUsage, InputTokens: 10, OutputTokens: 3},
	}, events)
}

func TestOpenAILLM_RunTaskUpstreamError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`)
	}))
	defer srv.Close()

	llm, err := NewOpenAILLMFromConfig(&LLMSettings{APIKey: "bad", BaseURL: srv.URL})
	require.NoError(t, err)

	stream, err := llm.RunTask(context.Background(), "p", "llama-test")
	require.NoError(t, err)

	res, err := Collect(stream, OutputText, &recordingSink{})
	require.Error(t, err)
	assert.Equal(t, 0, res.Events)
}

func TestOpenAILLM_RunTaskRequiresModel(t *testing.T) {
	t.Parallel()
	llm, err := NewOpenAILLMFromConfig(&LLMSettings{APIKey: "k"})
	require.NoError(t, err)

	_, err = llm.RunTask(context.Background(), "p", "")
	assert.Error(t, err)
}
