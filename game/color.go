package game

import "math"

const (
	SpawnSaturation float32 = 0.8
	SpawnLightness  float32 = 0.6
)

// HSL 将色相 h∈[0,360)、饱和度 s、亮度 l 转为 RGBA，alpha 固定为 1。
// 使用 CSS Color 4 的 HSL→RGB 公式：f(n) = l - a·max(-1, min(k-3, 9-k, 1))，k = (n + h/30) mod 12
func HSL(h, s, l float32) RGBA {
	hh := math.Mod(float64(h), 360)
	if hh < 0 {
		hh += 360
	}
	ss := float64(clamp(s, 0, 1))
	ll := float64(clamp(l, 0, 1))
	a := ss * math.Min(ll, 1-ll)
	f := func(n float64) float32 {
		k := math.Mod(n+hh/30, 12)
		return float32(ll - a*math.Max(-1, math.Min(math.Min(k-3, 9-k), 1)))
	}
	return RGBA{R: f(0), G: f(8), B: f(4), A: 1}
}

// SpawnColor 出生颜色：随机色相 + 固定饱和度/亮度
func SpawnColor(hue float32) RGBA {
	return HSL(hue, SpawnSaturation, SpawnLightness)
}
