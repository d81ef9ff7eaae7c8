package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGemini_EmptyKeyMeansUnconfigured(t *testing.T) {
	assert.Nil(t, NewGemini("", "gemini-2.5-flash", "https://example.com", time.Second))
}

func TestGeminiComplete_SingleTurnRequest(t *testing.T) {
	var captured geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": "здравейте"}}}},
			},
		})
	}))
	defer server.Close()

	g := NewGemini("test-key", "gemini-2.5-flash", server.URL, time.Second)
	reply, err := g.Complete(context.Background(), "system prompt", "user message")
	require.NoError(t, err)
	assert.Equal(t, "здравейте", reply)

	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "system prompt", captured.SystemInstruction.Parts[0].Text)
	require.Len(t, captured.Contents, 1, "no conversation history is transmitted")
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "user message", captured.Contents[0].Parts[0].Text)
}

func TestGeminiComplete_NonOKStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := NewGemini("test-key", "gemini-2.5-flash", server.URL, time.Second)
	_, err := g.Complete(context.Background(), "s", "m")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGeminiComplete_NoCandidatesIsEmptyReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	g := NewGemini("test-key", "gemini-2.5-flash", server.URL, time.Second)
	reply, err := g.Complete(context.Background(), "s", "m")
	require.NoError(t, err)
	assert.Empty(t, reply)
}
