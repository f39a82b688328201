package game

import "math/rand/v2"

// Mode 运行模式
type Mode int

const (
	SinglePlayer Mode = iota
	Multiplayer
)

func (m Mode) String() string {
	switch m {
	case SinglePlayer:
		return "singleplayer"
	case Multiplayer:
		return "multiplayer"
	default:
		return "unknown"
	}
}

// Context 模拟上下文：显式传入各子系统，替代进程级全局开关
type Context struct {
	Mode Mode
	Rand *rand.Rand // 出生颜色与出生位置的随机源
}

// NewContext 使用随机种子创建上下文
func NewContext(mode Mode) *Context {
	return NewSeededContext(mode, rand.Uint64())
}

// NewSeededContext 固定种子，测试用
func NewSeededContext(mode Mode, seed uint64) *Context {
	return &Context{Mode: mode, Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// hue 取 [0,360) 的随机色相
func (c *Context) hue() float32 {
	return c.Rand.Float32() * 360
}

// uniform 取 [lo,hi) 的均匀随机数
func (c *Context) uniform(lo, hi float32) float32 {
	return lo + c.Rand.Float32()*(hi-lo)
}
