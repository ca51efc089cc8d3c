package session

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"tesoro/game"
	"tesoro/protocol"
)

// End reasons visible to clients. The timeout string is what the original
// game clients display, so it stays verbatim.
const (
	ReasonTimeout  = "Tempo scaduto"
	ReasonCapacity = "capacity"
)

// Match is one bounded, time-limited play session. Like everything else
// behind the hub it is only ever touched from the Run goroutine; the
// auto-end timer fires by posting back into the inbox.
type Match struct {
	ID        string
	StartedAt time.Time

	order     []string // join order; first-seen wins score ties
	players   map[string]*game.Player
	treasures []game.Treasure
	timer     *time.Timer
}

func (m *Match) removePlayer(playerID string) {
	delete(m.players, playerID)
	for i, id := range m.order {
		if id == playerID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *Match) stopTimer() {
	if m.timer != nil {
		m.timer.Stop()
	}
}

// replaceNearest swaps the stored treasure closest to the reported pickup
// spot for the next one. The claim itself is never verified against the
// stored set; collection always succeeds and always advances.
func (m *Match) replaceNearest(reported game.Position, next game.Treasure) {
	if len(m.treasures) == 0 {
		m.treasures = append(m.treasures, next)
		return
	}
	best, bestDist := 0, math.Inf(1)
	for i, t := range m.treasures {
		d := math.Hypot(t.Pos.X-reported.X, t.Pos.Z-reported.Z)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	m.treasures[best] = next
}

// createMatch drains the waiting pool (oldest first, up to capacity) into
// a fresh match. At the match cap the oldest active match is force-ended
// first rather than rejecting the new one.
func (h *Hub) createMatch() {
	if len(h.matchOrder) >= h.cfg.MaxMatches {
		oldest := h.matchOrder[0]
		slog.Info("match cap reached, ending oldest", "matchId", oldest)
		h.endMatch(oldest, ReasonCapacity)
	}

	m := &Match{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		players:   make(map[string]*game.Player),
	}

	var positions []game.Position
	for _, e := range h.lobby.drain(h.cfg.MaxPlayers) {
		c := h.connFor(e.playerID)
		if c == nil {
			// gone between admission and match start; drop, don't retry
			slog.Warn("dropping player without connection", "playerId", e.playerID)
			continue
		}
		pos := game.SampleFarFrom(positions, game.PlayerSeparation)
		positions = append(positions, pos)
		m.players[e.playerID] = &game.Player{
			ID:       e.playerID,
			Nickname: e.nickname,
			Pos:      pos,
			JoinedAt: e.joinedAt,
		}
		m.order = append(m.order, e.playerID)
		c.matchID = m.ID
	}
	if len(m.order) == 0 {
		// every admitted player vanished; nothing to start
		h.broadcastLobby()
		return
	}

	m.treasures = game.SpawnTreasures(positions)
	h.matches[m.ID] = m
	h.matchOrder = append(h.matchOrder, m.ID)

	start := protocol.MatchStart{
		MatchID:   m.ID,
		Players:   append([]string(nil), m.order...),
		Positions: make(map[string]protocol.Vec3, len(m.order)),
		Nicknames: make(map[string]string, len(m.order)),
		Treasures: make([]protocol.TreasureSnapshot, 0, len(m.treasures)),
	}
	for _, pid := range m.order {
		p := m.players[pid]
		start.Positions[pid] = vec(p.Pos)
		start.Nicknames[pid] = p.Nickname
	}
	for _, t := range m.treasures {
		start.Treasures = append(start.Treasures, protocol.TreasureSnapshot{
			Position: vec(t.Pos),
			Type:     string(t.Type),
		})
	}
	for _, pid := range m.order {
		h.sendToPlayer(pid, protocol.MsgMatchStart, start)
	}

	id := m.ID
	m.timer = time.AfterFunc(h.cfg.MatchTimeout, func() {
		h.Inbox <- matchDeadline{MatchID: id}
	})

	slog.Info("match started", "matchId", m.ID, "players", len(m.order))
	h.broadcastLobby()
	h.broadcastPresence()
}

// movePlayer stores the update and relays it to everyone else in the
// match. Unknown match or player means a stale client; drop silently.
func (h *Hub) movePlayer(matchID, playerID string, pos, rot protocol.Vec3) {
	m, ok := h.matches[matchID]
	if !ok {
		return
	}
	p, ok := m.players[playerID]
	if !ok {
		return
	}
	p.Pos = game.Position{X: pos.X, Y: pos.Y, Z: pos.Z}
	p.Rot = game.Rotation{X: rot.X, Y: rot.Y, Z: rot.Z}

	moved := protocol.PlayerMoved{ID: playerID, Position: pos, Rotation: rot}
	for _, pid := range m.order {
		if pid == playerID {
			continue
		}
		h.sendToPlayer(pid, protocol.MsgPlayerMoved, moved)
	}
}

// collectTreasure scores the reported pickup and respawns a replacement
// away from the reported spot with a freshly rolled category.
func (h *Hub) collectTreasure(matchID, playerID string, at protocol.PlanarPoint, typ string) {
	m, ok := h.matches[matchID]
	if !ok {
		return
	}
	p, ok := m.players[playerID]
	if !ok {
		return
	}
	p.AddScore(game.ScoreDelta(game.TreasureType(typ)))

	reported := game.Position{X: at.X, Y: game.SpawnHeight, Z: at.Z}
	next := game.Treasure{
		Pos:  game.SampleFarFrom([]game.Position{reported}, game.TreasureRespawnDist),
		Type: game.RollType(),
	}
	m.replaceNearest(reported, next)

	update := protocol.TreasureUpdate{
		Position:     vec(next.Pos),
		PlayerID:     playerID,
		PlayerScore:  p.Score,
		TreasureType: string(next.Type),
	}
	for _, pid := range m.order {
		h.sendToPlayer(pid, protocol.MsgTreasureUpdate, update)
	}
}

// endMatch is the single exit for every path: timeout, capacity eviction,
// or an operator reason. No-op when the match is already gone, which
// makes a stale auto-end timer harmless.
func (h *Hub) endMatch(matchID, reason string) {
	m, ok := h.matches[matchID]
	if !ok {
		return
	}
	m.stopTimer()

	scores := make(map[string]int, len(m.order))
	winner := ""
	best := -1
	for _, pid := range m.order {
		s := m.players[pid].Score
		scores[pid] = s
		if s > best {
			best, winner = s, pid
		}
	}
	over := protocol.GameOver{WinnerID: winner, Scores: scores, Reason: reason}

	now := time.Now()
	for _, pid := range m.order {
		h.sendToPlayer(pid, protocol.MsgGameOver, over)
		if c := h.connFor(pid); c != nil {
			c.matchID = ""
			h.lobby.put(pid, m.players[pid].Nickname, now)
		}
	}

	h.removeMatch(matchID)
	slog.Info("match ended", "matchId", matchID, "reason", reason, "winner", winner)
	h.broadcastLobby()
	h.broadcastPresence()
}

func (h *Hub) removeMatch(matchID string) {
	delete(h.matches, matchID)
	for i, id := range h.matchOrder {
		if id == matchID {
			h.matchOrder = append(h.matchOrder[:i], h.matchOrder[i+1:]...)
			break
		}
	}
}

// sweepMatches ends anything past its lifetime and clears out matches
// that somehow lost all their players without being deleted.
func (h *Hub) sweepMatches(now time.Time) {
	for _, mid := range append([]string(nil), h.matchOrder...) {
		m, ok := h.matches[mid]
		if !ok {
			continue
		}
		if len(m.players) == 0 {
			m.stopTimer()
			h.removeMatch(mid)
			continue
		}
		if now.Sub(m.StartedAt) > h.cfg.MatchTimeout {
			h.endMatch(mid, ReasonTimeout)
		}
	}
}
