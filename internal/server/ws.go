package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jopli11/PreStocks-Tracker/internal/metrics"
)

const writeTimeout = 5 * time.Second

// handleWS upgrades the connection, sends the current sequence, and keeps
// the client registered for pushes until it goes away.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	// Initial payload so a new client renders without waiting a full
	// polling interval. Sent before registration so the broadcaster
	// cannot write to the connection concurrently.
	resp := s.currentResponse(s.source.Snapshot())
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(resp); err != nil {
		conn.Close()
		return
	}

	s.addClient(conn)

	s.wg.Add(1)
	go s.readPump(conn)
}

// readPump drains client frames until the connection dies. Clients send
// nothing meaningful; this only detects closure.
func (s *Server) readPump(conn *websocket.Conn) {
	defer s.wg.Done()
	defer s.removeClient(conn)

	conn.SetReadLimit(512)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// broadcastLoop pushes each completed refresh to all connected clients.
func (s *Server) broadcastLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case u := <-s.updates:
			s.broadcast(s.currentResponse(u.Snapshot))
		}
	}
}

func (s *Server) broadcast(resp TickerResponse) {
	s.clientMu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.clientMu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Debug("dropping websocket client", "error", err)
			s.removeClient(conn)
		}
	}
}

func (s *Server) addClient(conn *websocket.Conn) {
	s.clientMu.Lock()
	s.clients[conn] = struct{}{}
	count := len(s.clients)
	s.clientMu.Unlock()

	metrics.WSClients.Set(float64(count))
	s.logger.Debug("websocket client connected", "clients", count)
}

// removeClient unregisters and closes a connection. Safe to call more
// than once per connection.
func (s *Server) removeClient(conn *websocket.Conn) {
	s.clientMu.Lock()
	_, present := s.clients[conn]
	delete(s.clients, conn)
	count := len(s.clients)
	s.clientMu.Unlock()

	if !present {
		return
	}

	conn.Close()
	metrics.WSClients.Set(float64(count))
	s.logger.Debug("websocket client disconnected", "clients", count)
}

func (s *Server) closeAllClients() {
	s.clientMu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.clientMu.Unlock()

	for _, conn := range conns {
		s.removeClient(conn)
	}
}
