package game

import (
	"sync"
	"testing"
)

func TestQueuePreservesOrder(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 5; i++ {
		q.Push(Event{Kind: EventMove, Client: 1, Movement: float32(i)})
	}
	evs := q.Drain()
	if len(evs) != 5 {
		t.Fatalf("drained %d events, want 5", len(evs))
	}
	for i, ev := range evs {
		if ev.Movement != float32(i) {
			t.Fatalf("event %d movement = %v", i, ev.Movement)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("queue not empty after drain")
	}
}

func TestQueueLeavePurgesOwnerInputs(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Kind: EventJoin, Client: 1})
	q.Push(Event{Kind: EventMove, Client: 1, Movement: 1})
	q.Push(Event{Kind: EventMove, Client: 2, Movement: 1})
	q.Push(Event{Kind: EventJump, Client: 1})

	if purged := q.Leave(1); purged != 2 {
		t.Fatalf("purged = %d, want 2", purged)
	}
	evs := q.Drain()
	want := []EventKind{EventJoin, EventMove, EventLeave}
	if len(evs) != len(want) {
		t.Fatalf("events = %+v", evs)
	}
	for i, k := range want {
		if evs[i].Kind != k {
			t.Fatalf("event %d kind = %v, want %v", i, evs[i].Kind, k)
		}
	}
	if evs[1].Client != 2 {
		t.Fatalf("other client's input was dropped")
	}
}

// 断开时仍排队的输入不得复活或修改已移除的记录
func TestQueuedInputAfterDisconnectDoesNotReviveRecord(t *testing.T) {
	w := NewWorld()
	ctx := NewSeededContext(Multiplayer, 11)
	q := NewQueue()

	q.Push(Event{Kind: EventJoin, Client: 3})
	for _, ev := range q.Drain() {
		w.Apply(ctx, ev)
	}

	q.Push(Event{Kind: EventMove, Client: 3, Movement: 1})
	q.Leave(3)
	// 迟到的输入（读协程退出前已读取）
	q.Push(Event{Kind: EventMove, Client: 3, Movement: -1})

	for _, ev := range q.Drain() {
		w.Apply(ctx, ev)
	}
	if _, ok := w.ByOwner(3); ok {
		t.Fatalf("record with stale owner still exists")
	}
	if w.Len() != 0 {
		t.Fatalf("records = %d, want 0", w.Len())
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for c := 1; c <= 4; c++ {
		wg.Add(1)
		go func(c ClientID) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(Event{Kind: EventMove, Client: c, Movement: float32(i)})
			}
		}(ClientID(c))
	}
	wg.Wait()
	last := map[ClientID]float32{}
	evs := q.Drain()
	if len(evs) != 400 {
		t.Fatalf("drained %d, want 400", len(evs))
	}
	for _, ev := range evs {
		if prev, ok := last[ev.Client]; ok && ev.Movement <= prev {
			t.Fatalf("client %d events reordered", ev.Client)
		}
		last[ev.Client] = ev.Movement
	}
}
