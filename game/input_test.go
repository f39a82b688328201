package game

import (
	"math"
	"testing"
)

func TestApplyMovementClampsBeforeScaling(t *testing.T) {
	cases := []struct {
		in      float32
		want    float32
		clamped bool
	}{
		{1, 450, false},
		{-0.5, -225, false},
		{3, 450, true},
		{-7, -450, true},
		{float32(math.NaN()), 0, true},
	}
	for _, tc := range cases {
		p := &PlayerRecord{}
		clamped := ApplyMovement(p, MovementInput{Movement: tc.in})
		if p.Velocity.X != tc.want || clamped != tc.clamped {
			t.Fatalf("movement %v: vx=%v clamped=%v, want %v %v", tc.in, p.Velocity.X, clamped, tc.want, tc.clamped)
		}
	}
}

func TestJumpGating(t *testing.T) {
	air := &PlayerRecord{Velocity: Vec2{X: 10, Y: -40}}
	if ApplyJump(air, JumpInput{}) {
		t.Fatalf("jump while airborne reported success")
	}
	if air.Velocity != (Vec2{X: 10, Y: -40}) || air.Grounded {
		t.Fatalf("airborne jump changed state: %+v", air)
	}

	ground := &PlayerRecord{Grounded: true}
	if !ApplyJump(ground, JumpInput{}) {
		t.Fatalf("jump from ground failed")
	}
	if ground.Velocity.Y != JumpVelocity || ground.Grounded {
		t.Fatalf("ground jump state = %+v", ground)
	}
}

func TestApplyRoutesByOwner(t *testing.T) {
	w := NewWorld()
	ctx := NewSeededContext(Multiplayer, 5)
	w.Apply(ctx, Event{Kind: EventJoin, Client: 1})
	w.Apply(ctx, Event{Kind: EventJoin, Client: 2})

	if got := w.Apply(ctx, Event{Kind: EventMove, Client: 2, Movement: -1}); got != OutcomeApplied {
		t.Fatalf("outcome = %v, want applied", got)
	}
	p1, _ := w.ByOwner(1)
	p2, _ := w.ByOwner(2)
	if p1.Velocity.X != 0 || p2.Velocity.X != -MoveSpeed {
		t.Fatalf("movement routed to wrong record: p1=%v p2=%v", p1.Velocity, p2.Velocity)
	}
	if got := w.Apply(ctx, Event{Kind: EventMove, Client: 77, Movement: 1}); got != OutcomeNoOwner {
		t.Fatalf("outcome for unknown owner = %v", got)
	}
	if got := w.Apply(ctx, Event{Kind: EventJump, Client: 1}); got != OutcomeJumpIgnored {
		t.Fatalf("airborne jump outcome = %v", got)
	}
}

func TestApplyLocalWithoutSpawnIsDropped(t *testing.T) {
	w := NewWorld()
	if got := w.ApplyLocal(Event{Kind: EventMove, Movement: 1}); got != OutcomeNoOwner {
		t.Fatalf("outcome = %v, want no owner", got)
	}
}
