package broker

import (
	"errors"
	"testing"
)

func TestChallengePool_CreateRejectsDuplicateOwner(t *testing.T) {
	p := NewChallengePool()

	if _, err := p.Create("conn-x", "Ann", 100); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := p.Create("conn-x", "Ann again", 50)
	if !errors.Is(err, ErrDuplicateChallenge) {
		t.Fatalf("expected ErrDuplicateChallenge, got %v", err)
	}

	if p.Len() != 1 {
		t.Fatalf("expected 1 open challenge, got %d", p.Len())
	}
}

func TestChallengePool_CreateRejectsNegativeAmount(t *testing.T) {
	p := NewChallengePool()

	_, err := p.Create("conn-x", "Ann", -5)
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestChallengePool_AcceptConsumesChallenge(t *testing.T) {
	p := NewChallengePool()

	ch, err := p.Create("conn-x", "Ann", 100)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := p.Accept(ch.ID, "conn-y")
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if got.ID != ch.ID || got.CreatedBy != "conn-x" || got.Amount != 100 {
		t.Fatalf("accepted challenge mismatch: %+v", got)
	}

	if p.Len() != 0 {
		t.Fatalf("challenge should be consumed, pool has %d", p.Len())
	}

	// a second accept can no longer find it
	if _, err := p.Accept(ch.ID, "conn-z"); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}

func TestChallengePool_SelfAcceptForbidden(t *testing.T) {
	p := NewChallengePool()

	ch, _ := p.Create("conn-x", "Ann", 100)

	if _, err := p.Accept(ch.ID, "conn-x"); !errors.Is(err, ErrSelfAccept) {
		t.Fatalf("expected ErrSelfAccept, got %v", err)
	}

	// self-accept must leave the challenge in the pool
	if p.Len() != 1 {
		t.Fatalf("challenge must survive a self-accept, pool has %d", p.Len())
	}
}

func TestChallengePool_WithdrawAllOwnedBy(t *testing.T) {
	p := NewChallengePool()

	p.Create("conn-x", "Ann", 100)
	p.Create("conn-y", "Bob", 200)

	removed := p.WithdrawAllOwnedBy("conn-x")
	if len(removed) != 1 || removed[0].CreatedBy != "conn-x" {
		t.Fatalf("unexpected withdrawal result: %+v", removed)
	}
	if p.Len() != 1 {
		t.Fatalf("expected 1 remaining challenge, got %d", p.Len())
	}

	// unknown connection is a no-op
	if removed := p.WithdrawAllOwnedBy("conn-gone"); len(removed) != 0 {
		t.Fatalf("expected no withdrawals, got %+v", removed)
	}
}

func TestChallengePool_ViewAnnotatesOwnership(t *testing.T) {
	p := NewChallengePool()

	p.Create("conn-x", "Ann", 100)
	p.Create("conn-y", "Bob", 200)

	views := p.View("conn-x")
	if len(views) != 2 {
		t.Fatalf("expected 2 challenges, got %d", len(views))
	}
	for _, v := range views {
		wantOwn := v.CreatedBy == "conn-x"
		if v.Own != wantOwn {
			t.Errorf("challenge %s: own=%v, want %v", v.ID, v.Own, wantOwn)
		}
	}
}
