package session

import (
	"time"

	"tesoro/protocol"
)

type lobbyEntry struct {
	playerID string
	nickname string
	joinedAt time.Time
}

// lobby is the waiting pool: insertion-ordered, keyed by player id.
// Only the hub goroutine touches it.
type lobby struct {
	entries map[string]*lobbyEntry
	order   []string
}

func newLobby() *lobby {
	return &lobby{entries: make(map[string]*lobbyEntry)}
}

// put inserts or overwrites an entry. A player already waiting keeps their
// place in line; fields (nickname, join time) are refreshed either way.
func (l *lobby) put(playerID, nickname string, now time.Time) {
	if e, ok := l.entries[playerID]; ok {
		e.nickname = nickname
		e.joinedAt = now
		return
	}
	l.entries[playerID] = &lobbyEntry{playerID: playerID, nickname: nickname, joinedAt: now}
	l.order = append(l.order, playerID)
}

// remove is a no-op when the player is not waiting.
func (l *lobby) remove(playerID string) {
	if _, ok := l.entries[playerID]; !ok {
		return
	}
	delete(l.entries, playerID)
	for i, id := range l.order {
		if id == playerID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *lobby) size() int {
	return len(l.entries)
}

// drain pops up to max entries, oldest first.
func (l *lobby) drain(max int) []*lobbyEntry {
	n := max
	if n > len(l.order) {
		n = len(l.order)
	}
	out := make([]*lobbyEntry, 0, n)
	for _, id := range l.order[:n] {
		out = append(out, l.entries[id])
		delete(l.entries, id)
	}
	l.order = l.order[n:]
	return out
}

func (l *lobby) snapshot() []protocol.LobbyPlayer {
	out := make([]protocol.LobbyPlayer, 0, len(l.order))
	for _, id := range l.order {
		e := l.entries[id]
		out = append(out, protocol.LobbyPlayer{ID: e.playerID, Nickname: e.nickname})
	}
	return out
}
