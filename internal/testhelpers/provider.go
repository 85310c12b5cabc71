package testhelpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// FakeProvider is an httptest stand-in for the chat-completions API. It
// answers every request with the configured content string and counts calls.
type FakeProvider struct {
	Server *httptest.Server
	calls  atomic.Int64

	// Content is the message content returned to the client. Swap it
	// between calls to simulate different provider answers.
	Content func() string
}

// NewFakeProvider starts a provider that always answers with content.
func NewFakeProvider(t *testing.T, content string) *FakeProvider {
	t.Helper()

	p := &FakeProvider{Content: func() string { return content }}
	p.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.calls.Add(1)
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": p.Content()}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(p.Server.Close)

	return p
}

// Calls reports how many requests reached the provider.
func (p *FakeProvider) Calls() int {
	return int(p.calls.Load())
}
