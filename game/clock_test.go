package game

import (
	"testing"
	"time"
)

func TestFixedStepIndependentOfFrameRate(t *testing.T) {
	for _, fps := range []int{30, 60, 144, 240} {
		f := NewFixedStep(TickInterval, 8)
		frame := time.Second / time.Duration(fps)
		total := 0
		for i := 0; i < fps; i++ {
			total += f.Advance(frame)
		}
		// 一秒内应执行约 60 步
		if total < TicksPerSecond-1 || total > TicksPerSecond {
			t.Fatalf("fps %d produced %d ticks in one second", fps, total)
		}
	}
}

func TestFixedStepCapsCatchUp(t *testing.T) {
	f := NewFixedStep(TickInterval, 8)
	if n := f.Advance(5 * time.Second); n != 8 {
		t.Fatalf("catch-up steps = %d, want 8", n)
	}
	if n := f.Advance(0); n != 0 {
		t.Fatalf("leftover steps = %d, want 0", n)
	}
}
