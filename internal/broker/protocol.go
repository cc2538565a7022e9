package broker

import (
	"encoding/json"
	"strconv"
)

// Message is the outbound envelope pushed to clients.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Inbound event types.
const (
	EventChallengeCreate = "challenge:create"
	EventChallengeAccept = "challenge:accept"
	EventJoinRoom        = "joinRoom"
	EventRoomCode        = "userProvidedRoomCode"
)

// Outbound event types.
const (
	EventAck              = "ack"
	EventYourChallengeID  = "yourChallengeId"
	EventMatchFound       = "matchFound"
	EventUpdateChallenges = "updateChallenges"
	EventUpdateMatches    = "updateMatches"
	EventRoomStateUpdate  = "roomStateUpdate"
	EventRoomNotFound     = "roomNotFound"
	EventGameEnd          = "gameEnd"
)

// inboundMessage is the wire shape of a client request. Amount is left
// untyped so both numeric and quoted stakes coerce without failing the
// mutation path.
type inboundMessage struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Amount      any    `json:"amount"`
	ChallengeID string `json:"challengeId"`
	RoomID      string `json:"roomId"`
	UserName    string `json:"userName"`
	Code        string `json:"code"`
}

// coerceAmount turns the wire amount into an integer stake. Fractions are
// truncated, absent or garbage input becomes zero (the pool still rejects
// negative stakes).
func coerceAmount(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return int64(f)
		}
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return int64(f)
		}
	}
	return 0
}

// Sender is the slice of the connection registry the broker needs: targeted,
// room-scoped and enumerable delivery plus room membership. Implemented by
// ws.Hub; tests substitute a fake.
type Sender interface {
	Send(connID string, data []byte)
	SendRoom(roomID string, data []byte)
	Join(roomID, connID string)
	DropRoom(roomID string)
	Connections() []string
}
