package server

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gravitas-games/idlecore/internal/engine"
	"github.com/gravitas-games/idlecore/internal/gamedef"
	"github.com/gravitas-games/idlecore/internal/network"
	"github.com/gravitas-games/idlecore/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	// WebSocket connection
	ws *websocket.Conn

	// Server reference
	server *Server

	// Player information (authenticated before the upgrade)
	player *models.Player

	// The game this connection plays
	game   *gamedef.Game
	engine *engine.Engine

	// Buffered channel for outbound messages. sendMu guards closed so a
	// late event handler cannot send after the channel is closed.
	send      chan []byte
	sendMu    sync.Mutex
	closed    bool
	closeOnce sync.Once
}

// NewConnection creates a new connection
func NewConnection(ws *websocket.Conn, server *Server, player *models.Player, game *gamedef.Game, eng *engine.Engine) *Connection {
	return &Connection{
		ws:     ws,
		server: server,
		player: player,
		game:   game,
		engine: eng,
		send:   make(chan []byte, 256),
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	// Set up connection parameters
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Forward engine boundary events (collect, sell) to the client
	c.server.bus.Subscribe(c.player.ID, c.forwardEvent)

	// Send welcome message
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeWelcome,
		Payload: network.WelcomePayload{
			PlayerID: c.player.ID,
			Username: c.player.Username,
			GameID:   c.player.GameID,
		},
	})

	// Start read and write pumps
	go c.writePump()
	c.readPump() // Blocking
}

// readPump pumps messages from the WebSocket connection to the server
func (c *Connection) readPump() {
	defer func() {
		c.Close()
	}()

	for {
		// Read message
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		// Parse message
		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("invalid_message", "Failed to parse message")
			continue
		}

		c.player.LastSeen = time.Now()
		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// Write message
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			// Send ping
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.server.ctx.Done():
			// Server shutting down
			return
		}
	}
}

// forwardEvent mirrors an engine boundary event to the client
func (c *Connection) forwardEvent(e engine.Event) {
	if e.GameID != c.player.GameID {
		return
	}
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeEvent,
		Payload: network.EventPayload{
			Type:     e.Type.String(),
			Resource: string(e.Resource),
			Amount:   e.Amount,
			Coins:    e.Coins,
		},
	})
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close closes the connection. Safe to call more than once; the read pump
// and server shutdown both reach here.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		c.server.bus.Unsubscribe(c.player.ID)
		c.server.removeConnection(c)
		c.player.Connected = false

		// Close send channel
		c.sendMu.Lock()
		c.closed = true
		close(c.send)
		c.sendMu.Unlock()

		// Close WebSocket connection
		c.ws.Close()

		log.Printf("Player %s disconnected", c.player.Username)
	})
}
