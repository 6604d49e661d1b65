package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/quic-go/quic-go"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/scenekit/internal/core/events/bus"
	"github.com/zeusync/scenekit/internal/core/observability/log"
	"github.com/zeusync/scenekit/internal/core/scene"
)

// Server is a read-only debugging endpoint that streams scene-tree snapshots
// to websocket clients and serves one-shot snapshots over HTTP and QUIC.
type Server struct {
	cfg    Config
	tree   *scene.Tree
	logger log.Log

	upgrader websocket.Upgrader

	httpServer   *http.Server
	wsListener   net.Listener
	quicListener *quic.Listener

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]struct{}

	dirty   atomic.Bool
	subs    []bus.Subscription
	group   *errgroup.Group
	cancel  context.CancelFunc
	started atomic.Bool
}

// NewServer creates an inspector for the given tree.
func NewServer(cfg Config, tree *scene.Tree, logger log.Log) *Server {
	if logger == nil {
		logger = log.New(log.LevelInfo)
	}
	return &Server{
		cfg:    cfg,
		tree:   tree,
		logger: logger.With(log.String("component", "inspect")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Start binds the listeners and launches the serve loops. It does not block.
func (s *Server) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return errors.New("inspect: server already started")
	}
	ctx, s.cancel = context.WithCancel(ctx)

	// Any lifecycle change marks the tree dirty for the next broadcast.
	for _, eventType := range []string{
		scene.EventEnterTree,
		scene.EventExitTree,
		scene.EventRenamed,
		scene.EventReparented,
	} {
		sub, err := s.tree.Bus().Subscribe(eventType, func(bus.Event) error {
			s.dirty.Store(true)
			return nil
		})
		if err != nil {
			s.abortStart()
			return err
		}
		s.subs = append(s.subs, sub)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	s.httpServer = &http.Server{Handler: mux}

	wsListener, err := net.Listen("tcp", s.cfg.WebSocketAddr)
	if err != nil {
		s.abortStart()
		return err
	}
	s.wsListener = wsListener

	g, ctx := errgroup.WithContext(ctx)
	s.group = g

	g.Go(func() error {
		err := s.httpServer.Serve(wsListener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return s.refreshLoop(ctx)
	})
	if s.cfg.QUICAddr != "" {
		if err = s.startQUIC(ctx, g); err != nil {
			s.abortStart()
			return err
		}
	}

	s.logger.Info("inspector started",
		log.String("ws_addr", wsListener.Addr().String()),
		log.String("quic_addr", s.cfg.QUICAddr),
		log.Duration("refresh_interval", s.cfg.RefreshInterval.Std()))
	return nil
}

// abortStart rolls back a partially completed Start so a corrected
// configuration can be retried.
func (s *Server) abortStart() {
	if s.cancel != nil {
		s.cancel()
	}
	for _, sub := range s.subs {
		_ = sub.Cancel()
	}
	s.subs = nil
	if s.wsListener != nil {
		_ = s.wsListener.Close()
		s.wsListener = nil
	}
	if s.group != nil {
		_ = s.group.Wait()
		s.group = nil
	}
	s.started.Store(false)
}

// WSAddr returns the bound websocket listen address.
func (s *Server) WSAddr() string {
	if s.wsListener == nil {
		return ""
	}
	return s.wsListener.Addr().String()
}

// Stop shuts down the listeners and waits for the serve loops.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	for _, sub := range s.subs {
		_ = sub.Cancel()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Shutdown(context.Background())
	}
	s.closeQUIC()

	s.clientsMu.Lock()
	for conn := range s.clients {
		_ = conn.Close()
	}
	s.clients = make(map[*websocket.Conn]struct{})
	s.clientsMu.Unlock()

	if s.group == nil {
		return nil
	}
	return s.group.Wait()
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Capture(s.tree)); err != nil {
		s.logger.Warn("snapshot write failed", log.Error(err))
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}

	// Push the current state before registering the connection so a slow
	// reader cannot hold up broadcasts to other clients.
	if err = conn.WriteJSON(Capture(s.tree)); err != nil {
		_ = conn.Close()
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = struct{}{}
	s.clientsMu.Unlock()

	s.logger.Debug("inspector client connected",
		log.String("remote_addr", conn.RemoteAddr().String()))

	// Reader loop exists only to detect the client going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.clientsMu.Lock()
				s.dropClientLocked(conn)
				s.clientsMu.Unlock()
				return
			}
		}
	}()
}

func (s *Server) refreshLoop(ctx context.Context) error {
	interval := s.cfg.RefreshInterval.Std()
	if interval <= 0 {
		interval = DefaultConfig().RefreshInterval.Std()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if s.dirty.Swap(false) {
				s.broadcast()
			}
		}
	}
}

// broadcast sends the current snapshot to every connected websocket client.
func (s *Server) broadcast() {
	snap := Capture(s.tree)

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteJSON(snap); err != nil {
			s.logger.Debug("inspector client dropped", log.Error(err))
			s.dropClientLocked(conn)
		}
	}
}

func (s *Server) dropClientLocked(conn *websocket.Conn) {
	if _, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		_ = conn.Close()
	}
}
