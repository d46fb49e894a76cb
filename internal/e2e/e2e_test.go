package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"catalogd/pkg/types"
)

// TestE2E_LoadAndQuery walks the full flow: fake upstream, initial load,
// readiness flip, and the query surface over the resulting snapshot.
func TestE2E_LoadAndQuery(t *testing.T) {
	srv, svc := newStack(t, upstreamDoc, time.Hour)

	// 1) Before the first load everything but health is unavailable.
	resp, _ := httpGet(t, srv.URL+"/readyz")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("/readyz before load expected 503, got %d", resp.StatusCode)
	}
	resp, body := httpGet(t, srv.URL+"/v1/models")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("/v1/models before load expected 503, got %d body=%s", resp.StatusCode, body)
	}

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	resp, _ = httpGet(t, srv.URL+"/readyz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/readyz after load expected 200, got %d", resp.StatusCode)
	}

	// 2) /v1/models mirrors the upstream map shape, rejected entries dropped.
	resp, body = httpGet(t, srv.URL+"/v1/models")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/v1/models status=%d body=%s", resp.StatusCode, body)
	}
	var raw map[string]types.ModelRecord
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatalf("/v1/models json: %v body=%s", err, body)
	}
	if len(raw) != 3 {
		t.Fatalf("expected 3 surviving models, got %d: %v", len(raw), raw)
	}
	for _, dropped := range []string{"free-model", "dust-model", "no-mode-model"} {
		if _, ok := raw[dropped]; ok {
			t.Fatalf("rejected entry %q leaked into /v1/models", dropped)
		}
	}

	// 3) Filters compose: provider + mode narrows to the one embedding model.
	resp, body = httpGet(t, srv.URL+"/v1/models?provider=openai&mode=embedding")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("filtered /v1/models status=%d body=%s", resp.StatusCode, body)
	}
	raw = nil
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatalf("filtered json: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("expected 1 embedding model, got %d", len(raw))
	}
	if _, ok := raw["embed-test"]; !ok {
		t.Fatalf("expected embed-test, got %v", raw)
	}

	// 4) /v1/catalog paginates the processed view.
	resp, body = httpGet(t, srv.URL+"/v1/catalog?page=1&page_size=2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/v1/catalog status=%d body=%s", resp.StatusCode, body)
	}
	var page types.CatalogPage
	if err := json.Unmarshal(body, &page); err != nil {
		t.Fatalf("/v1/catalog json: %v", err)
	}
	if page.Total != 3 || page.TotalPages != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page: total=%d pages=%d items=%d", page.Total, page.TotalPages, len(page.Items))
	}
	if page.Items[0].ID != "openai/gpt-test" || page.Items[0].Name != "gpt-test" {
		t.Fatalf("unexpected first item: %+v", page.Items[0])
	}

	// 5) Providers and modes are the sorted sets from the snapshot.
	resp, body = httpGet(t, srv.URL+"/v1/providers")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/v1/providers status=%d", resp.StatusCode)
	}
	var provs types.ProvidersResponse
	if err := json.Unmarshal(body, &provs); err != nil {
		t.Fatalf("/v1/providers json: %v", err)
	}
	if len(provs.Providers) != 2 || provs.Providers[0].Key != "anthropic" || provs.Providers[1].Key != "openai" {
		t.Fatalf("unexpected providers: %+v", provs.Providers)
	}
	if provs.Providers[1].DisplayName != "OpenAI" {
		t.Fatalf("openai display name: %q", provs.Providers[1].DisplayName)
	}

	resp, body = httpGet(t, srv.URL+"/v1/modes")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/v1/modes status=%d", resp.StatusCode)
	}
	var modes types.ModesResponse
	if err := json.Unmarshal(body, &modes); err != nil {
		t.Fatalf("/v1/modes json: %v", err)
	}
	if len(modes.Modes) != 2 || modes.Modes[0] != "chat" || modes.Modes[1] != "embedding" {
		t.Fatalf("unexpected modes: %v", modes.Modes)
	}

	// 6) Stats are ordered by model count descending.
	resp, body = httpGet(t, srv.URL+"/v1/providers/stats")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/v1/providers/stats status=%d", resp.StatusCode)
	}
	var stats types.StatsResponse
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatalf("stats json: %v", err)
	}
	if len(stats.Providers) != 2 || stats.Providers[0].Name != "openai" || stats.Providers[0].Count != 2 {
		t.Fatalf("unexpected stats: %+v", stats.Providers)
	}

	// 7) /status reflects the loaded snapshot.
	resp, body = httpGet(t, srv.URL+"/status")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/status status=%d", resp.StatusCode)
	}
	var st types.StatusResponse
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("/status json: %v", err)
	}
	if st.State != "ready" || st.Models != 3 || st.BuildID == "" {
		t.Fatalf("unexpected status: %+v", st)
	}
}

// TestE2E_RefreshThrottle429 verifies a second immediate refresh is rejected
// with 429 while the first succeeds.
func TestE2E_RefreshThrottle429(t *testing.T) {
	srv, _ := newStack(t, upstreamDoc, time.Hour)

	resp, body := httpPost(t, srv.URL+"/v1/refresh")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first refresh status=%d body=%s", resp.StatusCode, body)
	}
	var st types.StatusResponse
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("refresh json: %v", err)
	}
	if st.Models != 3 {
		t.Fatalf("refresh status models=%d", st.Models)
	}

	resp, body = httpPost(t, srv.URL+"/v1/refresh")
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second refresh expected 429, got %d body=%s", resp.StatusCode, body)
	}
	var er types.ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		t.Fatalf("error json: %v body=%s", err, body)
	}
	if !strings.Contains(er.Error, "throttled") {
		t.Fatalf("unexpected error message: %q", er.Error)
	}
}

// TestE2E_UpstreamFailure502 verifies a fetch failure surfaces as 502 and
// does not mark the (never loaded) service ready.
func TestE2E_UpstreamFailure502(t *testing.T) {
	srv, _ := newStack(t, `not json`, time.Hour)

	resp, body := httpPost(t, srv.URL+"/v1/refresh")
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("refresh against bad upstream expected 502, got %d body=%s", resp.StatusCode, body)
	}

	resp, _ = httpGet(t, srv.URL+"/readyz")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("/readyz after failed refresh expected 503, got %d", resp.StatusCode)
	}

	resp, body = httpGet(t, srv.URL+"/status")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/status status=%d", resp.StatusCode)
	}
	var st types.StatusResponse
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("/status json: %v", err)
	}
	if st.State != "error" || st.LastError == "" {
		t.Fatalf("expected error state with message, got %+v", st)
	}
}
