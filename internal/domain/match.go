package domain

import "time"

// Player is one side of a match: the transport-assigned connection id plus
// the display name the player advertised.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Challenge is an open offer to play for a stake. At most one challenge per
// owning connection exists at any time.
type Challenge struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Amount    int64  `json:"amount"`
	CreatedBy string `json:"createdBy"`
}

// ChallengeView is a challenge annotated for a specific recipient: the own
// flag drives the client-side cancel affordance.
type ChallengeView struct {
	Challenge
	Own bool `json:"own"`
}

// Match is a confirmed pairing of two connections. Its id doubles as the
// messaging-room identifier. GeneratedRoomCode starts as a broker-generated
// placeholder and is overwritten once a client relays the code issued by the
// external game room. PlayerResults is reserved in the persisted shape.
type Match struct {
	ID                string            `json:"id"`
	PlayerA           Player            `json:"playerA"`
	PlayerB           Player            `json:"playerB"`
	Amount            int64             `json:"amount"`
	GeneratedRoomCode string            `json:"generatedRoomCode"`
	PlayerResults     map[string]string `json:"playerResults"`
}

// Involves reports whether the connection is one of the match participants.
func (m Match) Involves(connID string) bool {
	return m.PlayerA.ID == connID || m.PlayerB.ID == connID
}

// MatchSummary is the broadcast shape of a match: the room code and results
// are intentionally omitted so idle clients never see entry codes.
type MatchSummary struct {
	ID      string `json:"id"`
	PlayerA Player `json:"playerA"`
	PlayerB Player `json:"playerB"`
	Amount  int64  `json:"amount"`
}

// Summary strips a match down to its broadcast shape.
func (m Match) Summary() MatchSummary {
	return MatchSummary{
		ID:      m.ID,
		PlayerA: m.PlayerA,
		PlayerB: m.PlayerB,
		Amount:  m.Amount,
	}
}

// MatchRecord is the archived shape of a finished (torn down) match.
type MatchRecord struct {
	ID          int64     `db:"id" json:"id"`
	MatchID     string    `db:"match_id" json:"match_id"`
	PlayerAID   string    `db:"player_a_id" json:"player_a_id"`
	PlayerAName string    `db:"player_a_name" json:"player_a_name"`
	PlayerBID   string    `db:"player_b_id" json:"player_b_id"`
	PlayerBName string    `db:"player_b_name" json:"player_b_name"`
	Amount      int64     `db:"amount" json:"amount"`
	RoomCode    string    `db:"room_code" json:"room_code"`
	Reason      string    `db:"reason" json:"reason"`
	EndedAt     time.Time `db:"ended_at" json:"ended_at"`
}
