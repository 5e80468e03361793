package models

import "time"

// Player represents an authenticated platform user connected to one game
type Player struct {
	// From JWT claims
	ID       string `json:"id"`       // Platform user id
	Username string `json:"username"` // JWT claim
	GameID   string `json:"game_id"`  // Which mini-game this session targets

	// Connection state
	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`
	LastSeen    time.Time `json:"last_seen"`
}

// IsConnected checks if the player is currently connected
func (p *Player) IsConnected() bool {
	return p.Connected
}
