package game

import "testing"

func TestHSLPrimaries(t *testing.T) {
	cases := []struct {
		h    float32
		want RGBA
	}{
		{0, RGBA{1, 0, 0, 1}},
		{120, RGBA{0, 1, 0, 1}},
		{240, RGBA{0, 0, 1, 1}},
		{360, RGBA{1, 0, 0, 1}},
	}
	for _, tc := range cases {
		got := HSL(tc.h, 1, 0.5)
		if !approx(got.R, tc.want.R) || !approx(got.G, tc.want.G) || !approx(got.B, tc.want.B) || got.A != 1 {
			t.Fatalf("HSL(%v,1,0.5) = %+v, want %+v", tc.h, got, tc.want)
		}
	}
}

func TestSpawnColorRange(t *testing.T) {
	// s=0.8 l=0.6 → 分量落在 [l-a, l+a] = [0.28, 0.92]
	for h := float32(0); h < 360; h += 7.5 {
		c := SpawnColor(h)
		for _, v := range []float32{c.R, c.G, c.B} {
			if v < 0.28-1e-4 || v > 0.92+1e-4 {
				t.Fatalf("SpawnColor(%v) component %v out of range", h, v)
			}
		}
		if c.A != 1 {
			t.Fatalf("alpha = %v, want 1", c.A)
		}
	}
}

func TestSpawnColorKnownValue(t *testing.T) {
	c := SpawnColor(0)
	if !approx(c.R, 0.92) || !approx(c.G, 0.28) || !approx(c.B, 0.28) {
		t.Fatalf("SpawnColor(0) = %+v", c)
	}
}
