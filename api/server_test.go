package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mvello/sentigauge/internal/config"
	"github.com/mvello/sentigauge/internal/gauge"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

func testConfig() *config.Config {
	return &config.Config{
		Data: config.DataConfig{Positive: 120, Negative: 30, Neutral: 50},
		Gauge: config.GaugeConfig{
			Target:        70.0,
			Title:         "Test Gauge",
			ShowBreakdown: true,
		},
		API: config.APIConfig{Host: "127.0.0.1", Port: 0},
	}
}

func testServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer(testConfig())
	if err != nil {
		t.Fatalf("NewServer() error: %v", err)
	}
	go srv.wsHub.Run()
	return srv
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func serve(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	srv.Router().ServeHTTP(rec, req)
	return rec
}

// ════════════════════════════════════════════════════════════════════
// Server construction
// ════════════════════════════════════════════════════════════════════

func TestNewServer_BuildsInitialSpec(t *testing.T) {
	srv := testServer(t)

	spec := srv.Spec()
	if spec == nil {
		t.Fatal("initial spec should not be nil")
	}
	if spec.Value != 60.0 {
		t.Errorf("initial value: got %v, want 60.0", spec.Value)
	}
	if spec.Title != "Test Gauge" {
		t.Errorf("initial title: got %q", spec.Title)
	}
}

func TestNewServer_ZeroCounts(t *testing.T) {
	cfg := testConfig()
	cfg.Data = config.DataConfig{}

	if _, err := NewServer(cfg); err == nil {
		t.Fatal("expected error for zero configured counts")
	}
}

// ════════════════════════════════════════════════════════════════════
// Health handler tests
// ════════════════════════════════════════════════════════════════════

func TestHandleHealth(t *testing.T) {
	srv := testServer(t)
	rec := serve(srv, "GET", "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("expected success=true")
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatal("data should be a map")
	}
	if data["status"] != "ok" {
		t.Errorf("status field: got %v, want ok", data["status"])
	}
	if val, ok := data["value"].(float64); !ok || val != 60 {
		t.Errorf("value: got %v, want 60", data["value"])
	}
}

func TestHandleHealth_Versioned(t *testing.T) {
	srv := testServer(t)
	rec := serve(srv, "GET", "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

// ════════════════════════════════════════════════════════════════════
// Spec handler tests
// ════════════════════════════════════════════════════════════════════

func TestHandleGetSpec(t *testing.T) {
	srv := testServer(t)
	rec := serve(srv, "GET", "/api/v1/spec", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("expected success=true")
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatal("data should be a map")
	}
	if val, ok := data["value"].(float64); !ok || val != 60 {
		t.Errorf("value: got %v, want 60", data["value"])
	}
	if data["tier"] != "medium" {
		t.Errorf("tier: got %v, want medium", data["tier"])
	}
	if data["bar_color"] == nil || data["bar_color"] == "" {
		t.Error("bar_color should be set")
	}
	zones, ok := data["zones"].([]interface{})
	if !ok || len(zones) != 3 {
		t.Errorf("zones: got %v, want 3 entries", data["zones"])
	}
}

// ════════════════════════════════════════════════════════════════════
// Build gauge handler tests
// ════════════════════════════════════════════════════════════════════

func TestHandleBuildGauge(t *testing.T) {
	srv := testServer(t)
	body := `{"positive":150,"negative":30,"neutral":20}`
	rec := serve(srv, "POST", "/api/v1/gauge", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("expected success=true")
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatal("data should be a map")
	}
	if val, ok := data["value"].(float64); !ok || val != 75 {
		t.Errorf("value: got %v, want 75", data["value"])
	}
	if data["tier"] != "high" {
		t.Errorf("tier: got %v, want high", data["tier"])
	}

	// The stored spec was replaced.
	if srv.Spec().Value != 75 {
		t.Errorf("stored spec value: got %v, want 75", srv.Spec().Value)
	}
}

func TestHandleBuildGauge_Overrides(t *testing.T) {
	srv := testServer(t)
	body := `{"positive":120,"negative":30,"neutral":50,"target":50,"title":"Custom","show_breakdown":false}`
	rec := serve(srv, "POST", "/api/v1/gauge", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	spec := srv.Spec()
	if spec.Title != "Custom" {
		t.Errorf("title override: got %q, want Custom", spec.Title)
	}
	// 60% against a 50% target reaches the high tier.
	if spec.Tier != "high" {
		t.Errorf("tier with lowered target: got %v, want high", spec.Tier)
	}
	if spec.Annotation != "" {
		t.Errorf("annotation should be suppressed, got %q", spec.Annotation)
	}
}

func TestHandleBuildGauge_InvalidJSON(t *testing.T) {
	srv := testServer(t)
	rec := serve(srv, "POST", "/api/v1/gauge", "{invalid")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("expected success=false")
	}
}

func TestHandleBuildGauge_ZeroCounts(t *testing.T) {
	srv := testServer(t)
	before := srv.Spec()

	rec := serve(srv, "POST", "/api/v1/gauge", `{"positive":0,"negative":0,"neutral":0}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == "" {
		t.Error("expected a non-empty error message")
	}

	// A rejected request must leave the stored spec untouched.
	if srv.Spec() != before {
		t.Error("stored spec should not change on rejected input")
	}
}

func TestHandleBuildGauge_NegativeCounts(t *testing.T) {
	srv := testServer(t)
	rec := serve(srv, "POST", "/api/v1/gauge", `{"positive":-5,"negative":3,"neutral":2}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decodeResponse(t, rec)
	if !strings.Contains(resp.Error, "non-negative") {
		t.Errorf("error: got %q, want mention of non-negative counts", resp.Error)
	}
}

// ════════════════════════════════════════════════════════════════════
// Rendered view tests
// ════════════════════════════════════════════════════════════════════

func TestHandlePage(t *testing.T) {
	srv := testServer(t)
	rec := serve(srv, "GET", "/", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<svg") {
		t.Error("page should embed the gauge SVG")
	}
	if !strings.Contains(body, "Test Gauge") {
		t.Error("page should carry the gauge title")
	}
}

func TestHandleSVG(t *testing.T) {
	srv := testServer(t)
	rec := serve(srv, "GET", "/gauge.svg", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type: got %q, want image/svg+xml", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg") {
		t.Error("response should be an SVG document")
	}
}

// ════════════════════════════════════════════════════════════════════
// Options mapping
// ════════════════════════════════════════════════════════════════════

func TestOptionsFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Gauge.Colors = config.ColorsConfig{Low: "#111111", Medium: "#222222", High: "#333333"}

	opts := optionsFromConfig(cfg)
	if opts.Target != 70.0 {
		t.Errorf("Target: got %v, want 70.0", opts.Target)
	}
	if opts.Title != "Test Gauge" {
		t.Errorf("Title: got %q", opts.Title)
	}
	if !opts.ShowBreakdown {
		t.Error("ShowBreakdown should carry over")
	}
	if opts.Colors.High != "#333333" {
		t.Errorf("Colors.High: got %q", opts.Colors.High)
	}

	// Sanity: the options build without error.
	if _, err := gauge.Build(cfg.Data.Counts(), opts); err != nil {
		t.Errorf("Build with config options: %v", err)
	}
}

// ════════════════════════════════════════════════════════════════════
// WebSocket Hub tests
// ════════════════════════════════════════════════════════════════════

func TestWSHub_NewWSHub(t *testing.T) {
	hub := NewWSHub()
	if hub == nil {
		t.Fatal("NewWSHub returned nil")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount: got %d, want 0", hub.ClientCount())
	}
}

func TestWSHub_RegisterAndUnregister(t *testing.T) {
	hub := NewWSHub()
	go hub.Run()
	time.Sleep(10 * time.Millisecond)

	client := &WSClient{hub: hub, send: make(chan WSMessage, 256)}

	hub.Register(client)
	time.Sleep(10 * time.Millisecond)
	if hub.ClientCount() != 1 {
		t.Errorf("after register: ClientCount=%d, want 1", hub.ClientCount())
	}

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)
	if hub.ClientCount() != 0 {
		t.Errorf("after unregister: ClientCount=%d, want 0", hub.ClientCount())
	}
}

func TestWSHub_Broadcast(t *testing.T) {
	hub := NewWSHub()
	go hub.Run()
	time.Sleep(10 * time.Millisecond)

	client := &WSClient{hub: hub, send: make(chan WSMessage, 256)}
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast(WSMessage{Type: "gauge_updated", Data: map[string]interface{}{"value": 75.0}})

	select {
	case got := <-client.send:
		if got.Type != "gauge_updated" {
			t.Errorf("type: got %q, want gauge_updated", got.Type)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive broadcast")
	}

	hub.Unregister(client)
}

func TestWSHub_BroadcastDoesNotBlock(t *testing.T) {
	hub := NewWSHub()
	// Hub loop intentionally not running; the buffered channel fills
	// and further messages are dropped.
	done := make(chan bool)
	go func() {
		for i := 0; i < 300; i++ {
			hub.Broadcast(WSMessage{Type: "gauge_updated"})
		}
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked with a full channel")
	}
}

func TestBuildGaugeNotifiesHub(t *testing.T) {
	srv := testServer(t)

	client := &WSClient{hub: srv.wsHub, send: make(chan WSMessage, 256)}
	srv.wsHub.Register(client)
	time.Sleep(10 * time.Millisecond)

	rec := serve(srv, "POST", "/api/v1/gauge", `{"positive":150,"negative":30,"neutral":20}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	select {
	case msg := <-client.send:
		if msg.Type != "gauge_updated" {
			t.Errorf("type: got %q, want gauge_updated", msg.Type)
		}
		data, ok := msg.Data.(map[string]interface{})
		if !ok {
			t.Fatal("message data should be a map")
		}
		if val, ok := data["value"].(float64); !ok || val != 75 {
			t.Errorf("value: got %v, want 75", data["value"])
		}
	case <-time.After(200 * time.Millisecond):
		t.Error("no gauge update broadcast after POST /api/v1/gauge")
	}

	srv.wsHub.Unregister(client)
}
