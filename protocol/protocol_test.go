package protocol

import "testing"

func TestMessageConstants(t *testing.T) {
	in := map[string]string{
		MsgRequestMatchmaking: "requestMatchmaking",
		MsgPlayerMove:         "playerMove",
		MsgTreasureCollected:  "treasureCollected",
		MsgPing:               "ping",
	}
	out := map[string]string{
		MsgLobbyUpdate:    "lobbyUpdate",
		MsgMatchStart:     "matchStart",
		MsgPlayerMoved:    "playerMoved",
		MsgPlayerLeft:     "playerLeft",
		MsgTreasureUpdate: "treasureUpdate",
		MsgGameOver:       "gameOver",
		MsgOnlinePlayers:  "onlinePlayersUpdate",
	}
	for got, want := range in {
		if got != want {
			t.Fatalf("inbound constant = %q, want %q", got, want)
		}
	}
	for got, want := range out {
		if got != want {
			t.Fatalf("outbound constant = %q, want %q", got, want)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b, err := Encode(MsgGameOver, GameOver{
		WinnerID: "p1",
		Scores:   map[string]int{"p1": 3, "p2": 1},
		Reason:   "Tempo scaduto",
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	env, err := DecodeEnvelope(b)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.T != MsgGameOver {
		t.Fatalf("envelope type = %q, want %q", env.T, MsgGameOver)
	}
	over, err := DecodePayload[GameOver](env)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if over.WinnerID != "p1" || over.Scores["p2"] != 1 || over.Reason != "Tempo scaduto" {
		t.Fatalf("round trip mismatch: %+v", over)
	}
}

func TestEncodeRejectsBadInput(t *testing.T) {
	if _, err := Encode("", Ping{}); err == nil {
		t.Fatalf("expected error for empty type")
	}
	if _, err := Encode(MsgPing, nil); err == nil {
		t.Fatalf("expected error for nil payload")
	}
	if _, err := DecodeEnvelope(nil); err == nil {
		t.Fatalf("expected error for empty envelope")
	}
	if _, err := DecodePayload[Ping](Envelope{T: MsgPing}); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
