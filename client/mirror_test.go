package client

import (
	"testing"

	"platformer/protocol"
)

func TestMirrorReplacesWholesale(t *testing.T) {
	m := NewMirror()
	m.SetLocal(2)
	m.Apply(protocol.State{Tick: 1, Players: []protocol.PlayerState{{ID: 1}, {ID: 2, Position: [2]float32{5, 6}}}})
	if len(m.Players()) != 2 {
		t.Fatalf("players = %d", len(m.Players()))
	}
	self, ok := m.Local()
	if !ok || self.Position.X != 5 {
		t.Fatalf("local = %+v %v", self, ok)
	}

	m.Apply(protocol.State{Tick: 2, Players: []protocol.PlayerState{{ID: 2}}})
	if len(m.Players()) != 1 {
		t.Fatalf("removed player still mirrored")
	}
	if m.Apply(protocol.State{Tick: 1, Players: nil}) {
		t.Fatalf("stale snapshot applied")
	}
	if m.Tick() != 2 {
		t.Fatalf("tick = %d", m.Tick())
	}
}

func TestMirrorPlayersIsCopy(t *testing.T) {
	m := NewMirror()
	m.Apply(protocol.State{Tick: 1, Players: []protocol.PlayerState{{ID: 1}}})
	ps := m.Players()
	ps[0].Position.X = 100
	if m.Players()[0].Position.X != 0 {
		t.Fatalf("mirror mutated through returned slice")
	}
}

func TestMirrorReset(t *testing.T) {
	m := NewMirror()
	m.SetLocal(1)
	m.Apply(protocol.State{Tick: 9, Players: []protocol.PlayerState{{ID: 1}}})
	m.Reset()
	if len(m.Players()) != 0 || m.Tick() != 0 {
		t.Fatalf("mirror not reset")
	}
	if _, ok := m.Local(); ok {
		t.Fatalf("local survived reset")
	}
}
