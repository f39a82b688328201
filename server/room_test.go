package server

import (
	"errors"
	"sync"
	"testing"

	"platformer/game"
	"platformer/protocol"
)

type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	fail   bool
	closed bool
}

func (f *fakeConn) Send(b []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return ErrSendBufferFull
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	f.frames = append(f.frames, cp)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fakeConn) envelopes(t *testing.T) []protocol.Envelope {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]protocol.Envelope, 0, len(f.frames))
	for _, b := range f.frames {
		env, err := protocol.DecodeEnvelope(b)
		if err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		out = append(out, env)
	}
	return out
}

func lastState(t *testing.T, f *fakeConn) protocol.State {
	t.Helper()
	envs := f.envelopes(t)
	for i := len(envs) - 1; i >= 0; i-- {
		if envs[i].T == protocol.MsgState {
			st, err := protocol.DecodePayload[protocol.State](envs[i])
			if err != nil {
				t.Fatalf("decode state: %v", err)
			}
			return st
		}
	}
	t.Fatalf("no state frame received")
	return protocol.State{}
}

func TestRoomJoinSendsWelcomeBeforeState(t *testing.T) {
	r := NewRoom(4)
	fc := &fakeConn{}
	if err := r.Admit(1, fc); err != nil {
		t.Fatalf("admit: %v", err)
	}
	r.Tick()

	envs := fc.envelopes(t)
	if len(envs) < 2 || envs[0].T != protocol.MsgWelcome || envs[1].T != protocol.MsgState {
		t.Fatalf("unexpected frame order: %+v", envs)
	}
	w, err := protocol.DecodePayload[protocol.Welcome](envs[0])
	if err != nil {
		t.Fatalf("decode welcome: %v", err)
	}
	st := lastState(t, fc)
	if len(st.Players) != 1 || st.Players[0].ID != w.EntityID {
		t.Fatalf("state %+v does not contain welcomed entity %d", st, w.EntityID)
	}
}

func TestRoomLateJoinerReceivesExistingPlayers(t *testing.T) {
	r := NewRoom(4)
	first := &fakeConn{}
	_ = r.Admit(1, first)
	for i := 0; i < 10; i++ {
		r.Tick()
	}
	late := &fakeConn{}
	_ = r.Admit(2, late)
	r.Tick()

	st := lastState(t, late)
	if len(st.Players) != 2 {
		t.Fatalf("late joiner saw %d players, want 2", len(st.Players))
	}
}

func TestRoomUnjoinedConnGetsNoBroadcast(t *testing.T) {
	r := NewRoom(4)
	_ = r.Admit(1, &fakeConn{})
	r.Tick()
	// 在两次 Tick 之间登记：join 尚未处理
	pending := &fakeConn{}
	_ = r.Admit(2, pending)
	r.Broadcast()
	if n := len(pending.envelopes(t)); n != 0 {
		t.Fatalf("unjoined connection received %d frames", n)
	}
}

func TestRoomAdmitRejections(t *testing.T) {
	r := NewRoom(1)
	if err := r.Admit(1, &fakeConn{}); err != nil {
		t.Fatalf("admit: %v", err)
	}
	if err := r.Admit(1, &fakeConn{}); !errors.Is(err, ErrDuplicateClient) {
		t.Fatalf("duplicate admit: %v", err)
	}
	if err := r.Admit(2, &fakeConn{}); !errors.Is(err, ErrRoomFull) {
		t.Fatalf("full admit: %v", err)
	}
}

func TestRoomConnectDisconnectLeavesNoRecords(t *testing.T) {
	r := NewRoom(8)
	fc := &fakeConn{}
	_ = r.Admit(5, fc)
	r.Tick()
	r.RequestLeave(5)
	r.Tick()
	if r.world.Len() != 0 {
		t.Fatalf("records = %d, want 0", r.world.Len())
	}
	if !fc.closed {
		t.Fatalf("connection not closed on leave")
	}
	if got := len(r.Snapshot().Players); got != 0 {
		t.Fatalf("published snapshot has %d players", got)
	}
}

func TestRoomQueuedInputDiscardedOnDisconnect(t *testing.T) {
	r := NewRoom(8)
	_ = r.Admit(3, &fakeConn{})
	r.Tick()

	r.OnMove(3, 1)
	r.OnJump(3)
	r.RequestLeave(3)
	r.OnMove(3, -1)
	r.Tick()

	if _, ok := r.world.ByOwner(3); ok {
		t.Fatalf("stale owner still has a record")
	}
	m := r.Metrics()
	if m.InputsPurged != 2 {
		t.Fatalf("purged = %d, want 2", m.InputsPurged)
	}
	if m.InputsNoOwner != 1 {
		t.Fatalf("no-owner drops = %d, want 1", m.InputsNoOwner)
	}
	if m.InputsApplied != 0 {
		t.Fatalf("applied = %d, want 0", m.InputsApplied)
	}
}

func TestRoomAppliesInputBeforeStep(t *testing.T) {
	r := NewRoom(8)
	fc := &fakeConn{}
	_ = r.Admit(1, fc)
	r.Tick()
	x0 := lastState(t, fc).Players[0].Position[0]

	r.OnMove(1, 5) // 超出范围，裁剪到 1
	r.Tick()
	st := lastState(t, fc).Players[0]
	if st.Velocity[0] != game.MoveSpeed {
		t.Fatalf("velocity.x = %v, want %v", st.Velocity[0], game.MoveSpeed)
	}
	speed, dt := game.MoveSpeed, game.TickDelta
	want := x0 + float32(speed*dt)
	if st.Position[0] != want {
		t.Fatalf("position.x = %v, want %v (input applied in the same tick)", st.Position[0], want)
	}
	if r.Metrics().InputsClamped != 1 {
		t.Fatalf("clamped = %d, want 1", r.Metrics().InputsClamped)
	}
}

func TestRoomDisconnectsSlowConsumer(t *testing.T) {
	r := NewRoom(8)
	fc := &fakeConn{}
	_ = r.Admit(1, fc)
	r.Tick()
	fc.mu.Lock()
	fc.fail = true
	fc.mu.Unlock()
	r.Tick()
	if r.NumClients() != 0 {
		t.Fatalf("slow consumer still registered")
	}
	r.Tick()
	if r.world.Len() != 0 {
		t.Fatalf("slow consumer record not removed")
	}
}
