package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zeusync/torophy/internal/core/observability/log"
)

// Health is the body served on /healthz.
type Health struct {
	Status    string `json:"status"`
	Clients   int    `json:"clients"`
	Step      uint64 `json:"step"`
	Published uint64 `json:"published"`
	Dropped   uint64 `json:"dropped"`
}

// Handler routes /ws, /snapshot and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed",
			log.String("remote_addr", r.RemoteAddr),
			log.Error(err))
		return
	}

	c, err := s.hub.register(conn)
	if err != nil {
		_ = conn.Close()
		return
	}
	s.hub.serve(c)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	frame, _, err := s.hub.Last()
	if errors.Is(err, ErrNoSnapshot) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(frame)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_, step, _ := s.hub.Last()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Health{
		Status:    "ok",
		Clients:   s.hub.Clients(),
		Step:      step,
		Published: s.hub.Published(),
		Dropped:   s.hub.Dropped(),
	})
}
