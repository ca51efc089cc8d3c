package game

import "time"

// Server-side truth for a single match participant.

type Player struct {
	ID       string
	Nickname string
	Score    int
	Pos      Position
	Rot      Rotation
	JoinedAt time.Time
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Treasure struct {
	Pos  Position
	Type TreasureType
}

// AddScore applies a treasure delta to the player's score. Score never
// goes below zero, whatever sequence of malus pickups comes in.
func (p *Player) AddScore(delta int) {
	p.Score += delta
	if p.Score < 0 {
		p.Score = 0
	}
}
