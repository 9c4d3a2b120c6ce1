package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/folioworks/folio/pkg/infra/providers"
	"github.com/folioworks/folio/pkg/infra/providers/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk_MissingAPIKey(t *testing.T) {
	client := openai.NewOpenaiClient()

	resp, err := client.Ask(context.Background(), &providers.Config{Model: "gpt-4o-mini"}, nil, "hi")

	assert.ErrorIs(t, err, providers.ErrMissingAPIKey)
	assert.Nil(t, resp)
}

func TestAsk_MissingModel(t *testing.T) {
	client := openai.NewOpenaiClient()

	resp, err := client.Ask(context.Background(), &providers.Config{APIKey: "k"}, nil, "hi")

	assert.ErrorIs(t, err, providers.ErrMissingModel)
	assert.Nil(t, resp)
}

func TestAsk_SendsHistoryAndSystemPrompt(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Hello back"}}],
			"usage": {"prompt_tokens": 7, "completion_tokens": 2, "total_tokens": 9}
		}`))
	}))
	defer srv.Close()

	client := openai.NewOpenaiClient(openai.WithBaseURL(srv.URL))
	resp, err := client.Ask(context.Background(), &providers.Config{
		APIKey:       "test-key",
		Model:        "gpt-4o-mini",
		SystemPrompt: "be brief",
	}, []providers.Message{
		{Role: providers.RoleUser, Content: "earlier question"},
		{Role: providers.RoleAssistant, Content: "earlier answer"},
		{Role: "tool", Content: "ignored"},
	}, "hello")
	require.NoError(t, err)

	assert.Equal(t, "Hello back", resp.Text)
	assert.Equal(t, 9, resp.Usage.Total())
	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "earlier answer", got.Messages[2].Content)
	assert.Equal(t, "hello", got.Messages[3].Content)
}
