package protocol

type LobbyPlayer struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

type LobbyUpdate struct {
	PlayersInLobby int           `json:"playersInLobby"`
	MaxPlayers     int           `json:"maxPlayers"`
	MinPlayers     int           `json:"minPlayers"`
	Players        []LobbyPlayer `json:"players"`
}

type TreasureSnapshot struct {
	Position Vec3   `json:"position"`
	Type     string `json:"type"`
}

type MatchStart struct {
	MatchID   string             `json:"matchId"`
	Players   []string           `json:"players"`
	Positions map[string]Vec3    `json:"positions"`
	Nicknames map[string]string  `json:"nicknames"`
	Treasures []TreasureSnapshot `json:"treasures"`
}

type PlayerMoved struct {
	ID       string `json:"id"`
	Position Vec3   `json:"position"`
	Rotation Vec3   `json:"rotation"`
}

type PlayerLeft struct {
	ID string `json:"id"`
}

type TreasureUpdate struct {
	Position     Vec3   `json:"position"`
	PlayerID     string `json:"playerId"`
	PlayerScore  int    `json:"playerScore"`
	TreasureType string `json:"treasureType"`
}

type GameOver struct {
	WinnerID string         `json:"winnerId"`
	Scores   map[string]int `json:"scores"`
	Reason   string         `json:"reason"`
}

type OnlinePlayers struct {
	Count int `json:"count"`
}
