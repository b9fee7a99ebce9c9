package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openaiServer answers chat completions and captures the request body.
func openaiServer(t *testing.T, status int, body map[string]any) (*OpenAIProvider, *map[string]any) {
	t.Helper()
	var seen map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &seen)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	return p, &seen
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1760000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 20, "total_tokens": 50},
	}
}

func TestOpenAIProvider_Structured(t *testing.T) {
	p, seen := openaiServer(t, http.StatusOK, chatCompletion(`{"name":"Ada","age":36}`, "stop"))
	assert.Equal(t, "gpt-4o-mini", p.ModelID())

	req := UserRequest("be brief", "describe")
	req.Schema = personSchema()
	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.JSONEq(t, `{"name":"Ada","age":36}`, string(resp.Content))
	assert.Equal(t, 50, resp.Usage.TotalTokens)
	assert.Equal(t, "end", resp.StopReason)

	msgs, ok := (*seen)["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	format := (*seen)["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenAIProvider_InvalidContent(t *testing.T) {
	p, _ := openaiServer(t, http.StatusOK, chatCompletion(`{"name":"Ada"}`, "stop"))
	req := UserRequest("", "describe")
	req.Schema = personSchema()
	_, err := p.Generate(context.Background(), req)
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestOpenAIProvider_FreeText(t *testing.T) {
	p, _ := openaiServer(t, http.StatusOK, chatCompletion("All vitals look fine.", "length"))
	resp, err := p.Generate(context.Background(), UserRequest("", "describe"))
	require.NoError(t, err)
	assert.Equal(t, "All vitals look fine.", string(resp.Content))
	assert.Equal(t, "max_tokens", resp.StopReason)
}

func TestOpenAIProvider_Errors(t *testing.T) {
	apiErr := map[string]any{"error": map[string]any{"message": "nope", "type": "server_error"}}

	p, _ := openaiServer(t, http.StatusTooManyRequests, apiErr)
	_, err := p.Generate(context.Background(), UserRequest("", "x"))
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	p, _ = openaiServer(t, http.StatusBadGateway, apiErr)
	_, err = p.Generate(context.Background(), UserRequest("", "x"))
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}
