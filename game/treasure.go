package game

import "math/rand"

// TreasureType is the client-visible category name. The score table calls
// the same three categories normal/bonus/malus; on the wire they have
// always been normal/blue/red, so both names stick around by convention.
type TreasureType string

const (
	TreasureNormal TreasureType = "normal"
	TreasureBlue   TreasureType = "blue" // bonus
	TreasureRed    TreasureType = "red"  // malus
)

// ScoreDelta maps a category to its point delta. Unknown categories count
// as normal; the server trusts whatever the client reported.
func ScoreDelta(t TreasureType) int {
	switch t {
	case TreasureBlue:
		return BluePoints
	case TreasureRed:
		return RedPoints
	default:
		return NormalPoints
	}
}

// RollType draws a fresh category by weight: mostly normal, sometimes
// blue, rarely red.
func RollType() TreasureType {
	r := rand.Float64()
	switch {
	case r < NormalWeight:
		return TreasureNormal
	case r < NormalWeight+BlueWeight:
		return TreasureBlue
	default:
		return TreasureRed
	}
}

// SpawnTreasures places the initial treasure set for a match, each kept
// away (softly) from every player starting position.
func SpawnTreasures(playerPositions []Position) []Treasure {
	out := make([]Treasure, 0, TreasuresPerMatch)
	for i := 0; i < TreasuresPerMatch; i++ {
		out = append(out, Treasure{
			Pos:  SampleFarFrom(playerPositions, TreasureSpacing),
			Type: RollType(),
		})
	}
	return out
}
