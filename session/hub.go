package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"tesoro/config"
	"tesoro/game"
	"tesoro/protocol"
)

const (
	activityPeriod = time.Minute
	sweepPeriod    = time.Minute
	presencePeriod = 10 * time.Second
)

type connection struct {
	id       string
	conn     Conn
	lastSeen time.Time
	playerID string // set at admission time, may differ from conn id
	matchID  string // empty while not in a match
}

// Hub owns every waiting and playing session. All state behind it is
// mutated only by the Run goroutine; transports talk to it through Inbox
// and each command runs to completion before the next, so no handler ever
// sees another handler's half-applied mutation.
type Hub struct {
	Inbox chan any

	cfg config.Settings

	conns      map[string]*connection
	byPlayer   map[string]string // playerID -> connID
	lobby      *lobby
	matches    map[string]*Match
	matchOrder []string // insertion order, oldest first

	online atomic.Int64 // lobby size + match sizes, read by the HTTP API
}

func NewHub(cfg config.Settings) *Hub {
	return &Hub{
		Inbox:    make(chan any, 256),
		cfg:      cfg,
		conns:    make(map[string]*connection),
		byPlayer: make(map[string]string),
		lobby:    newLobby(),
		matches:  make(map[string]*Match),
	}
}

// PlayerCount is the pull-style status figure: players waiting plus
// players in matches. Safe to call from any goroutine.
func (h *Hub) PlayerCount() int {
	return int(h.online.Load())
}

func (h *Hub) Run(ctx context.Context) {
	activity := time.NewTicker(activityPeriod)
	defer activity.Stop()
	sweep := time.NewTicker(sweepPeriod)
	defer sweep.Stop()
	presence := time.NewTicker(presencePeriod)
	defer presence.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-h.Inbox:
			h.handle(cmd)
		case <-activity.C:
			h.sweepIdle(time.Now())
		case <-sweep.C:
			h.sweepMatches(time.Now())
		case <-presence.C:
			h.broadcastPresence()
		}
		h.online.Store(int64(h.playerCount()))
	}
}

func (h *Hub) handle(cmd any) {
	switch c := cmd.(type) {
	case Connect:
		h.conns[c.ID] = &connection{id: c.ID, conn: c.Conn, lastSeen: time.Now()}
	case Disconnect:
		h.disconnect(c.ID)
	case ClientEvent:
		h.route(c)
	case matchDeadline:
		h.endMatch(c.MatchID, ReasonTimeout)
	default:
		slog.Warn("unknown hub command", "cmd", fmt.Sprintf("%T", cmd))
	}
}

// route dispatches one client event. A malformed payload is logged and
// dropped; the sender never hears about it.
func (h *Hub) route(ev ClientEvent) {
	c, ok := h.conns[ev.ConnID]
	if !ok {
		return
	}
	c.lastSeen = time.Now()

	env := protocol.Envelope{T: ev.Name, P: ev.Payload}
	switch ev.Name {
	case protocol.MsgRequestMatchmaking:
		req, err := protocol.DecodePayload[protocol.RequestMatchmaking](env)
		if err != nil || req.PlayerID == "" {
			slog.Warn("bad matchmaking request", "connId", ev.ConnID, "err", err)
			return
		}
		h.admit(c, req.PlayerID, req.Nickname)
	case protocol.MsgPlayerMove:
		req, err := protocol.DecodePayload[protocol.PlayerMove](env)
		if err != nil || req.ID == "" || req.MatchID == "" {
			return
		}
		h.movePlayer(req.MatchID, req.ID, req.Position, req.Rotation)
	case protocol.MsgTreasureCollected:
		req, err := protocol.DecodePayload[protocol.TreasureCollected](env)
		if err != nil || req.PlayerID == "" || req.MatchID == "" {
			slog.Warn("bad treasure pickup", "connId", ev.ConnID, "err", err)
			return
		}
		h.collectTreasure(req.MatchID, req.PlayerID, req.Position, req.TreasureType)
	case protocol.MsgPing:
		// activity clock already refreshed, nothing else to do
	default:
		slog.Debug("unhandled event", "event", ev.Name, "connId", ev.ConnID)
	}
}

// admit puts the player in the waiting pool and forms a match once quorum
// is there. A connection already in a match is ignored: a player belongs
// to the lobby or to one match, never both.
func (h *Hub) admit(c *connection, playerID, nickname string) {
	if c.matchID != "" {
		return
	}
	c.playerID = playerID
	h.byPlayer[playerID] = c.id
	h.lobby.put(playerID, nickname, time.Now())
	slog.Info("player waiting", "playerId", playerID, "inLobby", h.lobby.size())
	h.broadcastLobby()
	if h.lobby.size() >= h.cfg.MinPlayers {
		h.createMatch()
	}
}

// disconnect runs the full cleanup for one connection, whether the client
// hung up or the idle sweep closed it. Safe to call twice.
func (h *Hub) disconnect(connID string) {
	c, ok := h.conns[connID]
	if !ok {
		return
	}
	delete(h.conns, connID)
	// only clean the player up if this connection still owns them; a
	// rejoin on a fresh connection takes over the mapping
	if c.playerID != "" && h.byPlayer[c.playerID] == connID {
		delete(h.byPlayer, c.playerID)
		h.lobby.remove(c.playerID)
		h.dropFromMatches(c.playerID)
	}
	h.broadcastLobby()
	h.broadcastPresence()
}

// dropFromMatches removes the player from any match holding them. A match
// left with nobody is deleted on the spot: there is no audience for a
// gameOver, so none is sent.
func (h *Hub) dropFromMatches(playerID string) {
	for _, mid := range append([]string(nil), h.matchOrder...) {
		m, ok := h.matches[mid]
		if !ok {
			continue
		}
		if _, ok := m.players[playerID]; !ok {
			continue
		}
		m.removePlayer(playerID)
		if len(m.players) == 0 {
			slog.Info("match emptied by disconnect", "matchId", mid)
			m.stopTimer()
			h.removeMatch(mid)
			continue
		}
		left := protocol.PlayerLeft{ID: playerID}
		for _, pid := range m.order {
			h.sendToPlayer(pid, protocol.MsgPlayerLeft, left)
		}
	}
}

// sweepIdle force-closes connections that have been quiet too long.
// Closing feeds the same path as a client-initiated disconnect.
func (h *Hub) sweepIdle(now time.Time) {
	var idle []string
	for id, c := range h.conns {
		if now.Sub(c.lastSeen) > h.cfg.InactivityTimeout {
			idle = append(idle, id)
		}
	}
	for _, id := range idle {
		slog.Info("closing idle connection", "connId", id)
		_ = h.conns[id].conn.Close()
		h.disconnect(id)
	}
}

func (h *Hub) broadcastLobby() {
	update := protocol.LobbyUpdate{
		PlayersInLobby: h.lobby.size(),
		MaxPlayers:     h.cfg.MaxPlayers,
		MinPlayers:     h.cfg.MinPlayers,
		Players:        h.lobby.snapshot(),
	}
	for _, p := range update.Players {
		h.sendToPlayer(p.ID, protocol.MsgLobbyUpdate, update)
	}
}

// broadcastPresence tells everyone how many connections are open.
func (h *Hub) broadcastPresence() {
	payload := protocol.OnlinePlayers{Count: len(h.conns)}
	b, err := protocol.Encode(protocol.MsgOnlinePlayers, payload)
	if err != nil {
		return
	}
	for _, c := range h.conns {
		if err := c.conn.Send(b); err != nil {
			slog.Debug("presence send failed", "connId", c.id)
		}
	}
}

func (h *Hub) playerCount() int {
	n := h.lobby.size()
	for _, m := range h.matches {
		n += len(m.players)
	}
	return n
}

func (h *Hub) connFor(playerID string) *connection {
	cid, ok := h.byPlayer[playerID]
	if !ok {
		return nil
	}
	return h.conns[cid]
}

// sendToPlayer emits one event to one player's connection. An
// unresolvable or failing target is skipped, never fatal: the client may
// have disconnected between the decision to message it and the send.
func (h *Hub) sendToPlayer(playerID, event string, payload any) {
	c := h.connFor(playerID)
	if c == nil {
		return
	}
	b, err := protocol.Encode(event, payload)
	if err != nil {
		slog.Error("encode failed", "event", event, "err", err)
		return
	}
	if err := c.conn.Send(b); err != nil {
		slog.Debug("send failed, skipping recipient", "event", event, "connId", c.id)
	}
}

func vec(p game.Position) protocol.Vec3 {
	return protocol.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}
