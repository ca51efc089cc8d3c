package protocol

// Payload structs coming in from the client. Every field is optional on
// the wire; handlers decide what they can live without.

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PlanarPoint is a ground-plane coordinate; pickups only report x/z.
type PlanarPoint struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

type RequestMatchmaking struct {
	PlayerID string `json:"playerId"`
	Nickname string `json:"nickname,omitempty"`
}

type PlayerMove struct {
	ID       string `json:"id"`
	MatchID  string `json:"matchId"`
	Position Vec3   `json:"position"`
	Rotation Vec3   `json:"rotation"`
}

type TreasureCollected struct {
	PlayerID     string      `json:"playerId"`
	MatchID      string      `json:"matchId"`
	Position     PlanarPoint `json:"position"`
	TreasureType string      `json:"treasureType"` // normal | blue | red
}

// Ping carries nothing; it only refreshes the connection's activity clock.
type Ping struct{}
