package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lawnchairsociety/castaway/internal/config"
	"github.com/lawnchairsociety/castaway/internal/game"
	"github.com/lawnchairsociety/castaway/internal/logger"
	"github.com/lawnchairsociety/castaway/internal/namefilter"
)

// SessionFactory starts a new game for the named player.
type SessionFactory func(playerName string) (*game.Session, error)

// Server accepts remote players. Each connection gets its own session;
// players never see each other.
type Server struct {
	cfg          *config.Config
	newSession   SessionFactory
	connLimiter  *ConnLimiter
	throttle     *CommandThrottle
	names        *namefilter.NameFilter
	proxies      proxySet
	listener     net.Listener
	httpServer   *http.Server
	clients      map[Client]struct{}
	mu           sync.Mutex
	wg           sync.WaitGroup
	shutdown     chan struct{}
	shutdownOnce sync.Once
	StartTime    time.Time
}

// NewServer creates a server playing sessions from newSession.
func NewServer(cfg *config.Config, newSession SessionFactory) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		cfg:         cfg,
		newSession:  newSession,
		connLimiter: NewConnLimiter(cfg.Connections),
		throttle:    NewCommandThrottle(cfg.RateLimit),
		names:       namefilter.New(&cfg.NameFilter),
		proxies:     newProxySet(cfg.WebSocket.TrustedProxies),
		clients:     make(map[Client]struct{}),
		shutdown:    make(chan struct{}),
		StartTime:   time.Now(),
	}
}

// ReserveNames keeps players from taking the given names, typically the
// island's own characters.
func (s *Server) ReserveNames(reserved ...string) {
	s.names.Reserve(reserved...)
}

// ActiveClients returns the number of connected players.
func (s *Server) ActiveClients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// StartTCP accepts raw line connections (telnet, nc) on address.
func (s *Server) StartTCP(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return s.ServeTCP(listener)
}

// ServeTCP accepts connections on listener until Shutdown.
func (s *Server) ServeTCP(listener net.Listener) error {
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	logger.Info("Server listening", "address", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			logger.Error("Error accepting connection", "error", err)
			continue
		}
		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	ip := extractIP(conn.RemoteAddr().String())

	if err := s.connLimiter.Acquire(ip); err != nil {
		logger.Warning("Connection rejected", "remote_addr", conn.RemoteAddr().String(), "reason", err)
		conn.Write([]byte(capitalize(err.Error()) + ". Please try again later.\r\n"))
		conn.Close()
		return
	}
	defer s.connLimiter.Release(ip)

	client := NewTCPClient(conn)
	defer client.Close()
	defer s.track(client)()

	name, err := AskName(client, s.cfg.Game.PlayerName, s.names)
	if err != nil {
		if errors.Is(err, ErrNoValidName) {
			client.WriteLine("Goodbye.")
		}
		return
	}
	s.handleClient(client, ip, name)
}

// Handler returns the HTTP handler serving the /ws endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocketUpgrade)
	return mux
}

// StartWebSocket serves WebSocket players on address until Shutdown.
func (s *Server) StartWebSocket(address string) error {
	s.mu.Lock()
	s.httpServer = &http.Server{Addr: address, Handler: s.Handler()}
	srv := s.httpServer
	s.mu.Unlock()

	logger.Info("WebSocket server listening", "address", address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleWebSocketUpgrade upgrades an HTTP connection to WebSocket. The
// player name comes from the "name" query parameter.
func (s *Server) handleWebSocketUpgrade(w http.ResponseWriter, r *http.Request) {
	clientIP := getRealIP(r, s.proxies)

	name := cleanName(r.URL.Query().Get("name"))
	if name == "" {
		name = s.cfg.Game.PlayerName
	} else if err := s.names.Check(name); err != nil {
		http.Error(w, capitalize(err.Error())+".", http.StatusBadRequest)
		return
	}

	if err := s.connLimiter.Acquire(clientIP); err != nil {
		logger.Warning("WebSocket connection rejected",
			"remote_addr", r.RemoteAddr,
			"client_ip", clientIP,
			"reason", err)
		http.Error(w, capitalize(err.Error())+". Please try again later.", http.StatusTooManyRequests)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.WebSocket.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("WebSocket connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		s.connLimiter.Release(clientIP)
		return
	}
	if s.cfg.WebSocket.MaxMessageSize > 0 {
		wsConn.SetReadLimit(s.cfg.WebSocket.MaxMessageSize)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.connLimiter.Release(clientIP)
		client := NewWebSocketClient(wsConn)
		defer client.Close()
		defer s.track(client)()
		s.handleClient(client, clientIP, name)
	}()
}

// track registers client so Shutdown can disconnect it. The returned
// function unregisters it.
func (s *Server) track(client Client) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.shutdown:
		client.Close()
	default:
	}
	s.clients[client] = struct{}{}
	return func() {
		s.mu.Lock()
		delete(s.clients, client)
		s.mu.Unlock()
	}
}

// handleClient runs one session over client.
func (s *Server) handleClient(client Client, ip, name string) {
	select {
	case <-s.shutdown:
		return
	default:
	}

	session, err := s.newSession(name)
	if err != nil {
		logger.Error("Failed to start session", "remote_addr", client.RemoteAddr(), "error", err)
		client.WriteLine("The game could not be started. Please try again later.")
		return
	}

	logger.Info("Client connected", "remote_addr", client.RemoteAddr(), "session", session.ID(), "player", name)

	var c Client = client
	if s.throttle != nil {
		c = &throttledClient{Client: client, ip: ip, throttle: s.throttle}
	}
	if err := RunSession(c, session); err != nil {
		logger.Warning("Session ended with error", "session", session.ID(), "error", err)
	}

	logger.Info("Client disconnected", "session", session.ID(), "outcome", session.Outcome())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Shutdown stops accepting players, disconnects the connected ones and
// waits for their sessions to close.
func (s *Server) Shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.shutdown)

		s.mu.Lock()
		if s.listener != nil {
			s.listener.Close()
		}
		if s.httpServer != nil {
			s.httpServer.Close()
		}
		for c := range s.clients {
			c.Close()
		}
		s.mu.Unlock()

		s.wg.Wait()
		s.throttle.Stop()
		logger.Info("Server stopped", "uptime", time.Since(s.StartTime).Round(time.Second))
	})
}
