package broker

import (
	"strings"
	"testing"

	"ludo_broker/internal/domain"
)

func formTestMatch(t *testing.T, r *MatchRegistry) domain.Match {
	t.Helper()
	ch := domain.Challenge{
		ID:        NewChallengeID(),
		Name:      "Ann",
		Amount:    100,
		CreatedBy: "conn-x",
	}
	return r.Form(ch, "conn-y", "Bob")
}

func TestMatchRegistry_Form(t *testing.T) {
	r := NewMatchRegistry()
	m := formTestMatch(t, r)

	if m.PlayerA.ID != "conn-x" || m.PlayerA.Name != "Ann" {
		t.Errorf("playerA mismatch: %+v", m.PlayerA)
	}
	if m.PlayerB.ID != "conn-y" || m.PlayerB.Name != "Bob" {
		t.Errorf("playerB mismatch: %+v", m.PlayerB)
	}
	if m.PlayerA.ID == m.PlayerB.ID {
		t.Error("match formed with identical participants")
	}
	if m.Amount != 100 {
		t.Errorf("amount not copied from challenge: %d", m.Amount)
	}
	if len(m.GeneratedRoomCode) != 6 {
		t.Errorf("placeholder room code should be 6 digits, got %q", m.GeneratedRoomCode)
	}
	if m.PlayerResults == nil {
		t.Error("playerResults should be initialized")
	}
	if !strings.HasPrefix(m.ID, "match-") {
		t.Errorf("match id format: %q", m.ID)
	}
}

func TestMatchRegistry_SetRoomCodeRoundTrip(t *testing.T) {
	r := NewMatchRegistry()
	m := formTestMatch(t, r)

	updated, ok := r.SetRoomCode(m.ID, "778899")
	if !ok {
		t.Fatal("SetRoomCode did not find the match")
	}
	if updated.GeneratedRoomCode != "778899" {
		t.Fatalf("room code not overwritten: %q", updated.GeneratedRoomCode)
	}

	found, ok := r.Find(m.ID)
	if !ok || found.GeneratedRoomCode != "778899" {
		t.Fatalf("Find after SetRoomCode: ok=%v code=%q", ok, found.GeneratedRoomCode)
	}

	if _, ok := r.SetRoomCode("match-unknown", "000000"); ok {
		t.Fatal("SetRoomCode on unknown id should report not found")
	}
}

func TestMatchRegistry_RemoveInvolving(t *testing.T) {
	r := NewMatchRegistry()
	m := formTestMatch(t, r)

	removed := r.RemoveInvolving("conn-y")
	if len(removed) != 1 || removed[0].ID != m.ID {
		t.Fatalf("unexpected removals: %+v", removed)
	}
	if r.Len() != 0 {
		t.Fatalf("registry should be empty, has %d", r.Len())
	}

	// repeating the removal is a safe no-op
	if removed := r.RemoveInvolving("conn-y"); len(removed) != 0 {
		t.Fatalf("second removal should be empty, got %+v", removed)
	}
}

func TestMatchRegistry_SummariesOmitRoomCode(t *testing.T) {
	r := NewMatchRegistry()
	m := formTestMatch(t, r)

	summaries := r.Summaries()
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	s := summaries[0]
	if s.ID != m.ID || s.PlayerA != m.PlayerA || s.PlayerB != m.PlayerB || s.Amount != m.Amount {
		t.Errorf("summary fields mismatch: %+v", s)
	}
}

func TestMatchRegistry_RestoreReplacesState(t *testing.T) {
	r := NewMatchRegistry()
	formTestMatch(t, r)

	saved := r.All()

	fresh := NewMatchRegistry()
	fresh.Restore(saved)

	if fresh.Len() != 1 {
		t.Fatalf("restore lost matches: %d", fresh.Len())
	}
	if _, ok := fresh.Find(saved[0].ID); !ok {
		t.Fatal("restored match not findable")
	}
}

func TestMatchRegistry_HasParticipant(t *testing.T) {
	r := NewMatchRegistry()
	m := formTestMatch(t, r)

	if !r.HasParticipant(m.PlayerA.ID) || !r.HasParticipant(m.PlayerB.ID) {
		t.Fatal("participants not reported")
	}
	if r.HasParticipant("conn-stranger") {
		t.Fatal("stranger reported as participant")
	}

	r.RemoveInvolving(m.PlayerA.ID)
	if r.HasParticipant(m.PlayerB.ID) {
		t.Fatal("participant reported after teardown")
	}
}
