package devserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // 1MB, generous for a single source file
)

// service holds the shared Compiler every handler compiles through.
type service struct {
	compiler *Compiler
	upgrader websocket.Upgrader
	log      *zap.Logger
}

func (s *service) routes(r chi.Router) {
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	if s.log == nil {
		logger, err := zap.NewProduction()
		if err != nil {
			logger = zap.NewNop()
		}
		s.log = logger
	}

	r.Post("/compile", s.handleCompile)
	r.Get("/watch", s.handleWatch)
	r.Get("/healthz", s.handleHealth)
}

// compileRequest is the POST /compile and per-message /watch payload.
type compileRequest struct {
	Filename string `json:"filename"`
	Source   string `json:"source"`
}

func (s *service) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Filename == "" {
		req.Filename = "<editor>"
	}

	result := s.compiler.Compile(req.Filename, req.Source)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.log.Warn("encode /compile response", zap.Error(err))
	}
}

func (s *service) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleWatch upgrades to a WebSocket and recompiles every time the client
// sends a compileRequest over it, pushing back the resulting CompileResult.
// Unlike a broadcast hub, each connection is independent: there is nothing
// to fan out, since only the posting client cares about its own result.
func (s *service) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	s.log.Info("watch session started", zap.String("session_id", sessionID))

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	go s.pingLoop(conn, done)
	defer close(done)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warn("watch socket error", zap.String("session_id", sessionID), zap.Error(err))
			}
			return
		}

		var req compileRequest
		if err := json.Unmarshal(message, &req); err != nil {
			s.writeJSON(conn, map[string]string{"error": "invalid message: " + err.Error()})
			continue
		}
		if req.Filename == "" {
			req.Filename = "<editor>"
		}

		result := s.compiler.Compile(req.Filename, req.Source)
		result.SessionID = sessionID
		s.writeJSON(conn, result)
	}
}

func (s *service) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *service) writeJSON(conn *websocket.Conn, v any) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(v); err != nil {
		s.log.Warn("write watch response", zap.Error(err))
	}
}
