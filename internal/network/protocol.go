package network

import "encoding/json"

// Message types - Client → Server
const (
	MsgTypeStatus        = "status"
	MsgTypeCollect       = "collect"
	MsgTypeBuyProducer   = "buy_producer"
	MsgTypeSellProducer  = "sell_producer"
	MsgTypeLoad          = "load"
	MsgTypeUnload        = "unload"
	MsgTypeTravel        = "travel"
	MsgTypeSell          = "sell"
	MsgTypeUnlockVehicle = "unlock_vehicle"
	MsgTypeAutoCollect   = "auto_collect"
	MsgTypePing          = "ping"
)

// Message types - Server → Client
const (
	MsgTypeWelcome  = "welcome"
	MsgTypeState    = "state"
	MsgTypeTransfer = "transfer"
	MsgTypeEvent    = "event"
	MsgTypeError    = "error"
	MsgTypePong     = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// CollectPayload requests collection of a ready producer's yield
type CollectPayload struct {
	ProducerID string `json:"producer_id"`
}

// BuyProducerPayload requests purchase of a new production slot
type BuyProducerPayload struct {
	Resource string `json:"resource"`
}

// SellProducerPayload requests removal of a production slot
type SellProducerPayload struct {
	ProducerID string `json:"producer_id"`
}

// TransferPayload covers load and unload requests. A zero amount on unload
// empties the whole crate.
type TransferPayload struct {
	VehicleID string `json:"vehicle_id"`
	Resource  string `json:"resource"`
	Amount    int64  `json:"amount"`
}

// TravelPayload requests a vehicle departure. Direction is "to_market" or
// "to_home".
type TravelPayload struct {
	VehicleID string `json:"vehicle_id"`
	Direction string `json:"direction"`
}

// SellPayload requests a sale. With a vehicle ID the crate at the market is
// sold; without, the market inventory is.
type SellPayload struct {
	VehicleID string `json:"vehicle_id,omitempty"`
	Resource  string `json:"resource"`
}

// UnlockVehiclePayload requests purchase of a locked vehicle kind
type UnlockVehiclePayload struct {
	Kind string `json:"kind"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to client after successful connection
type WelcomePayload struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	GameID   string `json:"game_id"`
}

// TransferResultPayload reports how much a load/unload actually moved.
// Transfers clip to availability and capacity, so clients must read this
// rather than assume the request was fully honored.
type TransferResultPayload struct {
	VehicleID string `json:"vehicle_id"`
	Resource  string `json:"resource"`
	Moved     int64  `json:"moved"`
}

// EventPayload mirrors an engine boundary event to the client
type EventPayload struct {
	Type     string `json:"type"`
	Resource string `json:"resource"`
	Amount   int64  `json:"amount"`
	Coins    int64  `json:"coins,omitempty"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
