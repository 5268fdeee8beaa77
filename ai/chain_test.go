package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTripFunc lets a test stand in for the HTTP transport.
type roundTripFunc func(req *http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func candidateBody(text string) string {
	return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, text)
}

func testChain(models []string, rt roundTripFunc) *Chain {
	client := NewClient("test-key")
	client.HTTP = &http.Client{Transport: rt}
	return &Chain{Models: models, client: client}
}

func TestClientGenerate(t *testing.T) {
	var gotURL, gotKey string
	chainClient := NewClient("secret")
	chainClient.HTTP = &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
		gotURL = req.URL.String()
		gotKey = req.Header.Get("x-goog-api-key")
		return jsonResponse(http.StatusOK, candidateBody("hello"))
	})}

	text, err := chainClient.Generate(context.Background(), "models/gemini-2.0-flash", "hi")

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, "secret", gotKey)
	assert.Contains(t, gotURL, "models/gemini-2.0-flash:generateContent")
}

func TestClientGenerateAPIError(t *testing.T) {
	client := NewClient("k")
	client.HTTP = &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusTooManyRequests,
			`{"error":{"code":429,"message":"quota exceeded"}}`)
	})}

	_, err := client.Generate(context.Background(), "models/gemini-2.0-flash", "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestChainNoKey(t *testing.T) {
	chain := NewChain("")
	require.Nil(t, chain)

	_, err := chain.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestChainFallsThroughToSecondModel(t *testing.T) {
	var attempts []string
	chain := testChain([]string{"models/a", "models/b"}, func(req *http.Request) *http.Response {
		model := strings.TrimSuffix(strings.TrimPrefix(req.URL.Path, "/v1beta/"), ":generateContent")
		attempts = append(attempts, model)
		if model == "models/a" {
			return jsonResponse(http.StatusServiceUnavailable,
				`{"error":{"code":503,"message":"overloaded"}}`)
		}
		return jsonResponse(http.StatusOK, candidateBody("from b"))
	})

	text, err := chain.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "from b", text)
	assert.Equal(t, []string{"models/a", "models/b"}, attempts)
}

func TestChainSkipsEmptyResponses(t *testing.T) {
	calls := 0
	chain := testChain([]string{"models/a", "models/b"}, func(req *http.Request) *http.Response {
		calls++
		if calls == 1 {
			return jsonResponse(http.StatusOK, candidateBody("   "))
		}
		return jsonResponse(http.StatusOK, candidateBody("real answer"))
	})

	text, err := chain.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "real answer", text)
	assert.Equal(t, 2, calls)
}

func TestChainExhausted(t *testing.T) {
	chain := testChain([]string{"models/a", "models/b", "models/c"}, func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusInternalServerError,
			`{"error":{"code":500,"message":"boom"}}`)
	})

	_, err := chain.Generate(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrExhausted)
}
