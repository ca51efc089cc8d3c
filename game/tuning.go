package game

const (
	SpawnRadiusMin   = 30.0 // inner edge of the spawn annulus
	SpawnRadiusMax   = 80.0
	SpawnJitter      = 2.0 // independent on both planar axes
	SpawnHeight      = 0.0 // fixed vertical offset
	PlayerSeparation = 20.0

	TreasureSpacing     = 20.0 // treasure vs. player starting positions
	TreasureRespawnDist = 30.0 // respawn vs. reported pickup point
	SampleAttempts      = 20   // rejection-sampling budget, then best-effort
	TreasuresPerMatch   = 5

	NormalWeight = 0.7
	BlueWeight   = 0.2
	RedWeight    = 0.1

	NormalPoints = 1
	BluePoints   = 2
	RedPoints    = -1
)
