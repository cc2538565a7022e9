package broker

import (
	"ludo_broker/internal/domain"
)

// MatchRegistry owns the authoritative set of live matches.
//
// Like ChallengePool it is not self-locking: the Service mutex covers every
// call so that a form or teardown is atomic with the pool mutation that
// precedes it.
type MatchRegistry struct {
	matches []domain.Match
}

func NewMatchRegistry() *MatchRegistry {
	return &MatchRegistry{}
}

// Form builds a match from a consumed challenge and the accepting connection.
// The challenge is already out of the pool, so this always succeeds.
func (r *MatchRegistry) Form(ch domain.Challenge, acceptorID, acceptorName string) domain.Match {
	m := domain.Match{
		ID:                NewMatchID(),
		PlayerA:           domain.Player{ID: ch.CreatedBy, Name: ch.Name},
		PlayerB:           domain.Player{ID: acceptorID, Name: acceptorName},
		Amount:            ch.Amount,
		GeneratedRoomCode: NewPlaceholderRoomCode(),
		PlayerResults:     map[string]string{},
	}
	r.matches = append(r.matches, m)
	return m
}

// Find returns the match with the given id.
func (r *MatchRegistry) Find(matchID string) (domain.Match, bool) {
	for _, m := range r.matches {
		if m.ID == matchID {
			return m, true
		}
	}
	return domain.Match{}, false
}

// SetRoomCode overwrites the room code of the match with the given id and
// returns the updated match.
func (r *MatchRegistry) SetRoomCode(matchID, code string) (domain.Match, bool) {
	for i := range r.matches {
		if r.matches[i].ID == matchID {
			r.matches[i].GeneratedRoomCode = code
			return r.matches[i], true
		}
	}
	return domain.Match{}, false
}

// HasParticipant reports whether the connection is a participant in any
// live match.
func (r *MatchRegistry) HasParticipant(connID string) bool {
	for _, m := range r.matches {
		if m.Involves(connID) {
			return true
		}
	}
	return false
}

// RemoveInvolving removes every match with the connection as a participant
// and returns the removed records so the caller can notify the other side.
func (r *MatchRegistry) RemoveInvolving(connID string) []domain.Match {
	var removed []domain.Match
	kept := r.matches[:0]
	for _, m := range r.matches {
		if m.Involves(connID) {
			removed = append(removed, m)
		} else {
			kept = append(kept, m)
		}
	}
	r.matches = kept
	return removed
}

// Summaries returns the broadcast view of all live matches, codes omitted.
func (r *MatchRegistry) Summaries() []domain.MatchSummary {
	out := make([]domain.MatchSummary, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m.Summary())
	}
	return out
}

// All returns a copy of the full match set for the durable snapshot.
func (r *MatchRegistry) All() []domain.Match {
	out := make([]domain.Match, len(r.matches))
	copy(out, r.matches)
	return out
}

// Restore replaces the match set from a loaded snapshot.
func (r *MatchRegistry) Restore(matches []domain.Match) {
	r.matches = make([]domain.Match, len(matches))
	copy(r.matches, matches)
}

// Len returns the number of live matches.
func (r *MatchRegistry) Len() int {
	return len(r.matches)
}
