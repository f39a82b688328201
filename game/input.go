package game

import "math"

// MovementInput 归一化的水平意图，语义范围 [-1,1]，未乘速度
type MovementInput struct {
	Movement float32
}

// JumpInput 无负载触发
type JumpInput struct{}

// ClampMovement 权威方在乘速度之前裁剪输入；NaN 视为 0
func ClampMovement(m float32) (float32, bool) {
	if math.IsNaN(float64(m)) {
		return 0, true
	}
	if m < -1 {
		return -1, true
	}
	if m > 1 {
		return 1, true
	}
	return m, false
}

// ApplyMovement 裁剪后乘 MoveSpeed 写入水平速度。缩放只在接收方做一次。
func ApplyMovement(p *PlayerRecord, in MovementInput) (clamped bool) {
	m, clamped := ClampMovement(in.Movement)
	p.Velocity.X = float32(m * MoveSpeed)
	return clamped
}

// ApplyJump 仅在着地时起跳；空中跳跃被接受但不改变状态
func ApplyJump(p *PlayerRecord, _ JumpInput) bool {
	if !p.Grounded {
		return false
	}
	p.Velocity.Y = JumpVelocity
	p.Grounded = false
	return true
}
