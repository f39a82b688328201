package game

// Step 将一个玩家的运动状态推进 dt 秒。纯函数，无副作用。
//
// 顺序固定：重力 → 积分位置 → 水平裁剪 → 地面碰撞。
// 每个中间结果都显式转换为 float32，阻止编译器融合乘加，
// 保证不同机器上逐位一致。
func Step(k Kinematics, dt float32) Kinematics {
	k.Velocity.Y = float32(k.Velocity.Y - float32(Gravity*dt))

	k.Position.Y = float32(k.Position.Y + float32(k.Velocity.Y*dt))
	k.Position.X = float32(k.Position.X + float32(k.Velocity.X*dt))

	k.Position.X = clamp(k.Position.X, -MaxX, MaxX)

	// 落地；离地只能由跳跃清除 Grounded
	if k.Position.Y <= GroundedY {
		k.Position.Y = GroundedY
		k.Velocity.Y = 0
		k.Grounded = true
	}
	return k
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
