package ws

import (
	"sort"
	"testing"
)

func newTestClient(id string) *Client {
	return &Client{ID: id, Send: make(chan []byte, 4)}
}

func drain(c *Client) [][]byte {
	var out [][]byte
	for {
		select {
		case msg := <-c.Send:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestHub_SendReachesOnlyTarget(t *testing.T) {
	h := NewHub()
	a := newTestClient("a")
	b := newTestClient("b")
	h.Register(a)
	h.Register(b)

	h.Send("a", []byte("hello"))

	if got := drain(a); len(got) != 1 || string(got[0]) != "hello" {
		t.Fatalf("a received %q", got)
	}
	if got := drain(b); len(got) != 0 {
		t.Fatalf("b should receive nothing, got %q", got)
	}
}

func TestHub_SendUnknownConnIsDropped(t *testing.T) {
	h := NewHub()
	h.Send("ghost", []byte("x")) // must not panic
}

func TestHub_SendRoomScopedToMembers(t *testing.T) {
	h := NewHub()
	a := newTestClient("a")
	b := newTestClient("b")
	c := newTestClient("c")
	h.Register(a)
	h.Register(b)
	h.Register(c)

	h.Join("room-1", "a")
	h.Join("room-1", "b")

	h.SendRoom("room-1", []byte("state"))

	if len(drain(a)) != 1 || len(drain(b)) != 1 {
		t.Fatal("room members did not receive the push")
	}
	if len(drain(c)) != 0 {
		t.Fatal("non-member received a room push")
	}
}

func TestHub_JoinUnknownConnIgnored(t *testing.T) {
	h := NewHub()
	h.Join("room-1", "ghost")

	if members := h.RoomMembers("room-1"); len(members) != 0 {
		t.Fatalf("ghost joined a room: %v", members)
	}
}

func TestHub_UnregisterLeavesRooms(t *testing.T) {
	h := NewHub()
	a := newTestClient("a")
	b := newTestClient("b")
	h.Register(a)
	h.Register(b)
	h.Join("room-1", "a")
	h.Join("room-1", "b")

	h.Unregister("a")

	if members := h.RoomMembers("room-1"); len(members) != 1 || members[0] != "b" {
		t.Fatalf("room members after unregister: %v", members)
	}

	h.SendRoom("room-1", []byte("state"))
	if len(drain(a)) != 0 {
		t.Fatal("unregistered client still receives room pushes")
	}

	// repeated unregister is a no-op
	h.Unregister("a")
	h.Unregister("ghost")
}

func TestHub_DropRoomForgetsMembership(t *testing.T) {
	h := NewHub()
	a := newTestClient("a")
	h.Register(a)
	h.Join("room-1", "a")

	h.DropRoom("room-1")

	h.SendRoom("room-1", []byte("state"))
	if len(drain(a)) != 0 {
		t.Fatal("dropped room still delivers")
	}
	if h.RoomMembers("room-1") != nil && len(h.RoomMembers("room-1")) != 0 {
		t.Fatal("dropped room still has members")
	}
}

func TestHub_ConnectionsListsLiveClients(t *testing.T) {
	h := NewHub()
	h.Register(newTestClient("a"))
	h.Register(newTestClient("b"))
	h.Unregister("a")

	ids := h.Connections()
	sort.Strings(ids)
	if len(ids) != 1 || ids[0] != "b" {
		t.Fatalf("connections = %v", ids)
	}
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub()
	a := &Client{ID: "a", Send: make(chan []byte, 1)}
	h.Register(a)

	h.Send("a", []byte("one"))
	h.Send("a", []byte("two")) // buffer full, must not block

	got := drain(a)
	if len(got) != 1 || string(got[0]) != "one" {
		t.Fatalf("got %q", got)
	}
}
