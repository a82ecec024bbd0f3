package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jopli11/PreStocks-Tracker/internal/model"
	"github.com/jopli11/PreStocks-Tracker/internal/refresh"
	"github.com/jopli11/PreStocks-Tracker/internal/ticker"
)

// SnapshotSource provides the current feed snapshot.
type SnapshotSource interface {
	Snapshot() refresh.Snapshot
}

// Pinger reports backing-store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds server configuration.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration // default: 10s
}

// TickerResponse is the payload consumed by rendering clients, over both
// the REST endpoint and the websocket push.
type TickerResponse struct {
	Items       []model.DisplayItem `json:"items"`
	LastUpdated string              `json:"lastUpdated"`
	Loading     bool                `json:"loading"`
}

// Server serves the assembled ticker sequence over HTTP and websocket.
type Server struct {
	cfg       Config
	source    SnapshotSource
	assembler *ticker.Assembler
	updates   <-chan refresh.Update
	logger    *slog.Logger

	dbHealth Pinger // nil when history is disabled

	upgrader websocket.Upgrader
	clientMu sync.Mutex
	clients  map[*websocket.Conn]struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Server. updates feeds the websocket push; pass the channel
// from Refresher.Subscribe.
func New(cfg Config, source SnapshotSource, assembler *ticker.Assembler, updates <-chan refresh.Update, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		cfg:       cfg,
		source:    source,
		assembler: assembler,
		updates:   updates,
		logger:    logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// SetDBHealth wires the optional history database into /healthz.
func (s *Server) SetDBHealth(p Pinger) {
	s.dbHealth = p
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.broadcastLoop()

	httpServer := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.Info("server started", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		s.cancel()
		s.wg.Wait()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("server shutdown error", "error", err)
	}

	s.cancel()
	s.closeAllClients()
	s.wg.Wait()

	s.logger.Info("server stopped")
	return nil
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ticker", s.handleTicker)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// currentResponse assembles the payload from a snapshot.
func (s *Server) currentResponse(snap refresh.Snapshot) TickerResponse {
	return TickerResponse{
		Items:       s.assembler.Assemble(snap.Records),
		LastUpdated: snap.LastUpdated,
		Loading:     snap.Loading,
	}
}

func (s *Server) handleTicker(w http.ResponseWriter, r *http.Request) {
	resp := s.currentResponse(s.source.Snapshot())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("encode ticker response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	snap := s.source.Snapshot()

	health := struct {
		Status     string         `json:"status"`
		Components map[string]any `json:"components"`
	}{
		Status:     "healthy",
		Components: make(map[string]any),
	}

	health.Components["feed"] = map[string]any{
		"records":     len(snap.Records),
		"lastUpdated": snap.LastUpdated,
		"loading":     snap.Loading,
	}
	if len(snap.Records) == 0 && !snap.Loading {
		health.Status = "degraded"
	}

	if s.dbHealth != nil {
		if err := s.dbHealth.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["history"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["history"] = "connected"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if health.Status == "unhealthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(health)
}
