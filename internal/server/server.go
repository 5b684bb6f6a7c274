// Package server shares one table over websockets and answers one-off hand
// evaluations over plain HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/pokerhands/internal/evaluator"
	"github.com/lox/pokerhands/internal/game"
)

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock that drives pings and message timestamps.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// Server fans table changes out to every connected client.
type Server struct {
	game     *game.Game
	upgrader websocket.Upgrader
	clock    quartz.Clock
	logger   *log.Logger

	// mutateMu orders table changes with their broadcasts, so the last
	// state every client receives is the table's current state.
	mutateMu sync.Mutex

	mu          sync.RWMutex
	connections map[string]*Connection
	pumps       sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a server for g.
func New(g *game.Game, logger *log.Logger, opts ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		game: g,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clock:       quartz.NewReal(),
		logger:      logger.WithPrefix("server"),
		connections: make(map[string]*Connection),
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes served by s.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /state", s.handleState)
	mux.HandleFunc("GET /evaluate", s.handleEvaluate)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then closes every
// connection and shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.Close()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close disconnects every client and waits for their pumps to exit.
func (s *Server) Close() {
	s.cancel()
	s.mu.Lock()
	for id, conn := range s.connections {
		_ = conn.Close()
		delete(s.connections, id)
	}
	s.mu.Unlock()
	s.pumps.Wait()
}

// Connections returns the number of connected clients.
func (s *Server) Connections() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(ws, s)
	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		_ = ws.Close()
		return
	}
	s.connections[conn.id] = conn
	s.pumps.Add(2)
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("client connected", "conn_id", conn.id, "total", total)

	conn.start()
	s.sendState(conn)

	go func() {
		<-conn.ctx.Done()
		s.mu.Lock()
		delete(s.connections, conn.id)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("client disconnected", "conn_id", conn.id, "total", total)
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

// handleEvaluate classifies every ?hand= parameter.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	hands := r.URL.Query()["hand"]
	if len(hands) == 0 {
		writeJSON(w, http.StatusBadRequest, ErrorData{Code: "missing_hand", Message: "at least one hand parameter is required"})
		return
	}
	batch, err := evaluator.EvaluateAll(r.Context(), hands, 0)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorData{Code: "cancelled", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleMessage(c *Connection, msg *Message) {
	c.logger.Debug("received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeAddPlayer, MessageTypeRemovePlayer:
		var data PlayerData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			s.sendError(c, msg, "invalid_message", "failed to parse player data")
			return
		}
		s.mutate(c, msg, func() error {
			if msg.Type == MessageTypeAddPlayer {
				return s.game.AddPlayer(data.Name)
			}
			return s.game.RemovePlayer(data.Name)
		})

	case MessageTypeRedeal:
		s.mutate(c, msg, s.game.Redeal)

	case MessageTypeState:
		s.sendState(c)

	case MessageTypeEvaluate:
		var data EvaluateData
		if err := json.Unmarshal(msg.Data, &data); err != nil || len(data.Hands) == 0 {
			s.sendError(c, msg, "invalid_message", "evaluate needs a non-empty hands list")
			return
		}
		batch, err := evaluator.EvaluateAll(c.ctx, data.Hands, 0)
		if err != nil {
			return
		}
		s.reply(c, msg, MessageTypeEvaluation, batch)

	default:
		s.sendError(c, msg, "unknown_message", fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

// mutate applies change and broadcasts the resulting state, or reports the
// error to c alone.
func (s *Server) mutate(c *Connection, msg *Message, change func() error) {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	if err := change(); err != nil {
		s.sendError(c, msg, errorCode(err), err.Error())
		return
	}
	s.Broadcast(MessageTypeState, s.game.Snapshot())
}

// Broadcast sends data to every connected client.
func (s *Server) Broadcast(messageType MessageType, data any) {
	msg, err := NewMessage(messageType, data, s.clock.Now())
	if err != nil {
		s.logger.Error("failed to encode broadcast", "type", messageType, "error", err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, conn := range s.connections {
		if err := conn.Send(msg); err != nil {
			s.logger.Debug("broadcast skipped connection", "conn_id", conn.id, "error", err)
		}
	}
}

func (s *Server) sendState(c *Connection) {
	s.reply(c, nil, MessageTypeState, s.game.Snapshot())
}

func (s *Server) sendError(c *Connection, req *Message, code, message string) {
	s.reply(c, req, MessageTypeError, ErrorData{Code: code, Message: message})
}

func (s *Server) reply(c *Connection, req *Message, messageType MessageType, data any) {
	msg, err := NewMessage(messageType, data, s.clock.Now())
	if err != nil {
		c.logger.Error("failed to encode reply", "type", messageType, "error", err)
		return
	}
	if req != nil {
		msg.RequestID = req.RequestID
	}
	_ = c.Send(msg)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrEmptyName):
		return "empty_name"
	case errors.Is(err, game.ErrDuplicateName):
		return "duplicate_name"
	case errors.Is(err, game.ErrTooManyPlayers):
		return "too_many_players"
	case errors.Is(err, game.ErrPlayerNotFound):
		return "player_not_found"
	default:
		return "internal_error"
	}
}
