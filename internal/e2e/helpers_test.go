package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalogd/internal/cache"
	"catalogd/internal/httpapi"
	"catalogd/internal/service"
	"catalogd/internal/source"
)

// upstreamDoc is a small pricing document exercising the whole pipeline:
// two keepers, one free entry, one sub-threshold entry, one blank mode.
const upstreamDoc = `{
  "openai/gpt-test": {"mode": "chat", "litellm_provider": "openai",
    "input_cost_per_token": 2.5e-06, "output_cost_per_token": 1e-05,
    "max_tokens": 16384, "supports_vision": true},
  "claude-test": {"mode": "chat", "litellm_provider": "anthropic",
    "input_cost_per_token": 3e-06, "output_cost_per_token": 1.5e-05,
    "supports_function_calling": true},
  "embed-test": {"mode": "embedding", "litellm_provider": "openai",
    "input_cost_per_token": 1e-07},
  "free-model": {"mode": "chat", "litellm_provider": "openrouter",
    "input_cost_per_token": 0.0, "output_cost_per_token": 0.0},
  "dust-model": {"mode": "chat", "litellm_provider": "openai",
    "input_cost_per_token": 1e-09, "output_cost_per_token": 2e-09},
  "no-mode-model": {"litellm_provider": "openai", "input_cost_per_token": 1e-06}
}`

// newStack starts a fake upstream serving doc, builds a service over it,
// and exposes the full HTTP API via an httptest server.
func newStack(t *testing.T, doc string, minRefresh time.Duration) (*httptest.Server, *service.Service) {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, doc)
	}))
	t.Cleanup(upstream.Close)

	svc := service.New(service.Config{
		Source:             source.NewClient(upstream.URL),
		Cache:              cache.NewMemory(),
		MinRefreshInterval: minRefresh,
	})
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv, svc
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPost(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
