package broker

import (
	"ludo_broker/internal/domain"
)

// ChallengePool holds the open challenges in creation order.
//
// The pool carries no lock of its own: every call site is serialized through
// the Service mutex so that lookup-then-remove sequences stay atomic with
// respect to each other.
type ChallengePool struct {
	challenges []domain.Challenge
}

func NewChallengePool() *ChallengePool {
	return &ChallengePool{}
}

// Create adds a new challenge for ownerID. Rejects a second open challenge
// from the same connection and negative stakes.
func (p *ChallengePool) Create(ownerID, name string, amount int64) (domain.Challenge, error) {
	if amount < 0 {
		return domain.Challenge{}, ErrInvalidAmount
	}
	for _, c := range p.challenges {
		if c.CreatedBy == ownerID {
			return domain.Challenge{}, ErrDuplicateChallenge
		}
	}

	ch := domain.Challenge{
		ID:        NewChallengeID(),
		Name:      name,
		Amount:    amount,
		CreatedBy: ownerID,
	}
	p.challenges = append(p.challenges, ch)
	return ch, nil
}

// Accept removes the challenge with the given id and returns it. The removal
// makes consumption at-most-once: a racing second accept no longer finds the
// id and fails with ErrChallengeNotFound.
func (p *ChallengePool) Accept(challengeID, acceptorID string) (domain.Challenge, error) {
	for i, c := range p.challenges {
		if c.ID != challengeID {
			continue
		}
		if c.CreatedBy == acceptorID {
			return domain.Challenge{}, ErrSelfAccept
		}
		p.challenges = append(p.challenges[:i], p.challenges[i+1:]...)
		return c, nil
	}
	return domain.Challenge{}, ErrChallengeNotFound
}

// WithdrawAllOwnedBy removes every challenge owned by the connection and
// returns the removed entries. No-op for an unknown connection.
func (p *ChallengePool) WithdrawAllOwnedBy(connID string) []domain.Challenge {
	var removed []domain.Challenge
	kept := p.challenges[:0]
	for _, c := range p.challenges {
		if c.CreatedBy == connID {
			removed = append(removed, c)
		} else {
			kept = append(kept, c)
		}
	}
	p.challenges = kept
	return removed
}

// View returns all open challenges in creation order, each annotated with
// whether forConnID owns it.
func (p *ChallengePool) View(forConnID string) []domain.ChallengeView {
	views := make([]domain.ChallengeView, 0, len(p.challenges))
	for _, c := range p.challenges {
		views = append(views, domain.ChallengeView{
			Challenge: c,
			Own:       c.CreatedBy == forConnID,
		})
	}
	return views
}

// Len returns the number of open challenges.
func (p *ChallengePool) Len() int {
	return len(p.challenges)
}
