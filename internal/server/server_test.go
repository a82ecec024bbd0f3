package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jopli11/PreStocks-Tracker/internal/model"
	"github.com/jopli11/PreStocks-Tracker/internal/refresh"
	"github.com/jopli11/PreStocks-Tracker/internal/ticker"
)

func fptr(v float64) *float64 { return &v }

// mockSource returns a fixed snapshot.
type mockSource struct {
	snap refresh.Snapshot
}

func (m *mockSource) Snapshot() refresh.Snapshot { return m.snap }

// failingPinger always reports a broken database.
type failingPinger struct{}

func (failingPinger) Ping(ctx context.Context) error { return errors.New("connection refused") }

func testServer(snap refresh.Snapshot, updates <-chan refresh.Update) *Server {
	targets := []model.TargetIdentity{
		{Key: "OpenAI", Match: []string{"OPENAI", "OpenAI"}},
		{Key: "SpaceX", Match: []string{"SPACEX"}},
	}
	assembler := ticker.NewAssembler(targets, func() float64 { return 1.0 })
	return New(Config{Addr: ":0"}, &mockSource{snap: snap}, assembler, updates, nil)
}

func TestHandleTicker(t *testing.T) {
	snap := refresh.Snapshot{
		Records: []model.FeedRecord{
			{Name: "OpenAI", Symbol: "OPENAI", TokenPrice: fptr(12.34)},
		},
		LastUpdated: "13:37:00",
	}
	srv := testServer(snap, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/ticker", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp TickerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	// One matched target: 2 * (2 + 1) = 6 items.
	if len(resp.Items) != 6 {
		t.Fatalf("len(Items) = %d, want 6", len(resp.Items))
	}
	if resp.Items[0].Kind != model.KindBrand {
		t.Errorf("Items[0].Kind = %q, want brand", resp.Items[0].Kind)
	}
	if resp.Items[1].Price != "$12.34" {
		t.Errorf("Items[1].Price = %q, want $12.34", resp.Items[1].Price)
	}
	if resp.LastUpdated != "13:37:00" {
		t.Errorf("LastUpdated = %q, want 13:37:00", resp.LastUpdated)
	}
}

func TestHandleHealth(t *testing.T) {
	snap := refresh.Snapshot{
		Records:     []model.FeedRecord{{Symbol: "OPENAI"}},
		LastUpdated: "13:37:00",
	}
	srv := testServer(snap, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"healthy"`) {
		t.Errorf("body = %s, want healthy status", rec.Body.String())
	}
}

func TestHandleHealth_DegradedWhenEmpty(t *testing.T) {
	srv := testServer(refresh.Snapshot{LastUpdated: refresh.LastUpdatedPlaceholder}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), `"status":"degraded"`) {
		t.Errorf("body = %s, want degraded status", rec.Body.String())
	}
}

func TestHandleHealth_UnhealthyOnDBFailure(t *testing.T) {
	srv := testServer(refresh.Snapshot{Records: []model.FeedRecord{{Symbol: "OPENAI"}}}, nil)
	srv.SetDBHealth(failingPinger{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"unhealthy"`) {
		t.Errorf("body = %s, want unhealthy status", rec.Body.String())
	}
}

func TestWebsocket_InitialPayload(t *testing.T) {
	snap := refresh.Snapshot{
		Records: []model.FeedRecord{
			{Name: "SpaceX", Symbol: "SPACEX", MarkPrice: fptr(97.5)},
		},
		LastUpdated: "09:00:00",
	}
	srv := testServer(snap, nil)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var resp TickerResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read initial payload: %v", err)
	}
	if len(resp.Items) != 6 {
		t.Errorf("len(Items) = %d, want 6", len(resp.Items))
	}
	if resp.LastUpdated != "09:00:00" {
		t.Errorf("LastUpdated = %q, want 09:00:00", resp.LastUpdated)
	}
}

func TestWebsocket_PushOnUpdate(t *testing.T) {
	updates := make(chan refresh.Update, 1)
	srv := testServer(refresh.Snapshot{LastUpdated: refresh.LastUpdatedPlaceholder}, updates)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv.ctx, srv.cancel = context.WithCancel(ctx)
	srv.wg.Add(1)
	go srv.broadcastLoop()

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	// Drain the initial payload.
	var initial TickerResponse
	if err := conn.ReadJSON(&initial); err != nil {
		t.Fatalf("read initial payload: %v", err)
	}

	// Give the handler a moment to register the client for pushes.
	time.Sleep(50 * time.Millisecond)

	updates <- refresh.Update{
		Snapshot: refresh.Snapshot{
			Records:     []model.FeedRecord{{Symbol: "OPENAI", TokenPrice: fptr(1.0)}},
			LastUpdated: "10:00:00",
		},
	}

	var pushed TickerResponse
	if err := conn.ReadJSON(&pushed); err != nil {
		t.Fatalf("read pushed payload: %v", err)
	}
	if pushed.LastUpdated != "10:00:00" {
		t.Errorf("pushed LastUpdated = %q, want 10:00:00", pushed.LastUpdated)
	}
	if len(pushed.Items) != 6 {
		t.Errorf("len(pushed.Items) = %d, want 6", len(pushed.Items))
	}
}
