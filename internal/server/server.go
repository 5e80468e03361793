package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"

	"github.com/gravitas-games/idlecore/internal/config"
	"github.com/gravitas-games/idlecore/internal/engine"
	"github.com/gravitas-games/idlecore/internal/gamedef"
	"github.com/gravitas-games/idlecore/internal/store"
)

// Server is the gateway in front of the simulation engines: it
// authenticates clients, routes their actions through the engine for their
// game, and persists the resulting aggregates.
type Server struct {
	config *config.Config

	games   map[string]*gamedef.Game
	engines map[string]*engine.Engine
	store   store.PlayerStore
	bus     *engine.SimpleEventBus

	upgrader     websocket.Upgrader
	httpSrv      *http.Server
	jwtValidator *JWTValidator
	redis        *redis.Client

	// Connection tracking
	connections map[*Connection]bool
	connMu      sync.RWMutex

	// Shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	log.Println("Initializing server...")

	ctx, cancel := context.WithCancel(context.Background())

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test Redis connection
	if err := redisClient.Ping(ctx).Err(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("Connected to Redis")

	// Load game definitions
	games, err := gamedef.LoadDir(cfg.Games.Dir)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to load game definitions: %w", err)
	}

	bus := engine.NewSimpleEventBus()
	engines := make(map[string]*engine.Engine, len(games))
	for id, game := range games {
		engines[id] = engine.New(game.Catalog, engine.SystemClock{}, bus)
		log.Printf("Loaded game %s (%d resources, %d vehicle kinds)",
			id, len(game.Catalog.Resources()), len(game.Catalog.VehicleKinds()))
	}

	srv := &Server{
		config:       cfg,
		games:        games,
		engines:      engines,
		store:        store.NewRedisStore(redisClient, cfg.Redis.KeyPrefix),
		bus:          bus,
		jwtValidator: NewJWTValidator(cfg),
		redis:        redisClient,
		connections:  make(map[*Connection]bool),
		ctx:          ctx,
		cancel:       cancel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: Add proper origin checking in production
				return true
			},
		},
	}

	log.Println("Server initialized successfully")
	return srv, nil
}

// Start begins listening for connections
func (s *Server) Start(addr string) error {
	log.Printf("Starting WebSocket server on %s", addr)

	// Set up HTTP routes
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	// Create HTTP server
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the optional housekeeping sweep
	if s.config.Sweep.IntervalSeconds > 0 {
		go s.runSweeper(time.Duration(s.config.Sweep.IntervalSeconds) * time.Second)
	}

	log.Printf("WebSocket endpoint: ws://%s/ws", addr)
	log.Printf("Health endpoint: http://%s/health", addr)

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	log.Println("Shutting down server...")

	s.cancel()

	// Close all active connections. Drain the map before closing: Close
	// re-enters connection tracking, so it must not run under connMu.
	s.connMu.Lock()
	conns := make([]*Connection, 0, len(s.connections))
	for conn := range s.connections {
		conns = append(conns, conn)
	}
	s.connections = make(map[*Connection]bool)
	s.connMu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}

	if s.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if err := s.redis.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}

	log.Println("Server shut down")
	return nil
}

// handleWebSocket upgrades an authenticated client connection
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = extractTokenFromHeader(r.Header.Get("Authorization"))
	}
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	player, err := s.jwtValidator.ValidateToken(token)
	if err != nil {
		log.Printf("Token validation failed: %v", err)
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	game, ok := s.games[player.GameID]
	if !ok {
		log.Printf("Player %s requested unknown game %s", player.Username, player.GameID)
		http.Error(w, "unknown game", http.StatusNotFound)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn := NewConnection(ws, s, player, game, s.engines[player.GameID])

	s.connMu.Lock()
	s.connections[conn] = true
	s.connMu.Unlock()

	log.Printf("Player %s connected to game %s", player.Username, player.GameID)
	conn.Handle()
}

// handleHealth responds to health checks
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.connMu.RLock()
	count := len(s.connections)
	s.connMu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","connections":%d,"games":%d}`, count, len(s.games))
}

// removeConnection drops a closed connection from tracking
func (s *Server) removeConnection(conn *Connection) {
	s.connMu.Lock()
	delete(s.connections, conn)
	s.connMu.Unlock()
}

// extractTokenFromHeader strips the scheme from an Authorization header
// value, accepting both "Bearer <token>" and a bare token.
func extractTokenFromHeader(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimPrefix(header, prefix)
	}
	return header
}
