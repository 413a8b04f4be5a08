package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenRouterComplete(t *testing.T) {
	var gotAuth string
	var gotReq orChatReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"[{\"type\":\"malware\"}]"}}]}`))
	}))
	defer srv.Close()

	c, err := NewOpenRouterClient("test-key", "deepseek/deepseek-chat:free")
	require.NoError(t, err)
	c.SetBaseURL(srv.URL)

	out, err := c.Complete(context.Background(), "extract from: doc text")
	require.NoError(t, err)
	require.Equal(t, `[{"type":"malware"}]`, out)

	require.Equal(t, "Bearer test-key", gotAuth)
	require.Len(t, gotReq.Messages, 2)
	require.Equal(t, "system", gotReq.Messages[0].Role)
	require.Equal(t, "user", gotReq.Messages[1].Role)
	require.Equal(t, "extract from: doc text", gotReq.Messages[1].Content)
}

func TestOpenRouterNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := NewOpenRouterClient("k", "m")
	require.NoError(t, err)
	c.SetBaseURL(srv.URL)

	_, err = c.Complete(context.Background(), "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status")
}

func TestOpenRouterEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c, err := NewOpenRouterClient("k", "m")
	require.NoError(t, err)
	c.SetBaseURL(srv.URL)

	_, err = c.Complete(context.Background(), "p")
	require.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestOpenRouterMissingKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("DEEPSEEK_API_KEY", "")
	_, err := NewOpenRouterClient("", "m")
	require.Error(t, err)
}
