package game

import "time"

// 物理常量：服务端与单机客户端共享，保证同一输入序列得到同一轨迹
const (
	GroundLevel  float32 = -200
	GroundWidth  float32 = 1280
	PlayerWidth  float32 = 50
	PlayerHeight float32 = 100
	JumpVelocity float32 = 300
	Gravity      float32 = 900 // pixels/s²
	MoveSpeed    float32 = 450 // pixels/s

	PlayerHalfWidth  = PlayerWidth / 2
	PlayerHalfHeight = PlayerHeight / 2

	// GroundedY 玩家站在地面上时的中心高度
	GroundedY = GroundLevel + PlayerHalfHeight
	// MaxX 玩家中心允许的最大水平坐标
	MaxX = GroundWidth/2 - PlayerHalfWidth

	SpawnHeight  float32 = 100
	SpawnSpreadX float32 = 200
)

const (
	// TicksPerSecond 固定步长频率（60 TPS），与渲染帧率解耦
	TicksPerSecond = 60

	// TickDelta 每个 Tick 的固定 dt（秒）
	TickDelta float32 = 1.0 / TicksPerSecond
)

// TickInterval 墙钟上的 Tick 间隔
var TickInterval = time.Second / TicksPerSecond
