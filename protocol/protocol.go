package protocol

import (
	"encoding/json"
)

// Inbound event names.
const (
	MsgRequestMatchmaking = "requestMatchmaking"
	MsgPlayerMove         = "playerMove"
	MsgTreasureCollected  = "treasureCollected"
	MsgPing               = "ping"
)

// Outbound event names.
const (
	MsgLobbyUpdate    = "lobbyUpdate"
	MsgMatchStart     = "matchStart"
	MsgPlayerMoved    = "playerMoved"
	MsgPlayerLeft     = "playerLeft"
	MsgTreasureUpdate = "treasureUpdate"
	MsgGameOver       = "gameOver"
	MsgOnlinePlayers  = "onlinePlayersUpdate"
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}
