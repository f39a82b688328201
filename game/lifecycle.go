package game

import "platformer/logging"

// newRecord 按出生规则创建记录；x 由调用方按模式决定
func newRecord(ctx *Context, x float32) *PlayerRecord {
	return &PlayerRecord{
		Position: Vec2{X: x, Y: GroundedY + SpawnHeight},
		Velocity: Vec2{},
		Grounded: false,
		Color:    SpawnColor(ctx.hue()),
	}
}

// SpawnLocal 单机模式出生。会话内只有一个本地玩家，重复请求返回已有记录。
func (w *World) SpawnLocal(ctx *Context) *PlayerRecord {
	if p, ok := w.Local(); ok {
		return p
	}
	p := newRecord(ctx, 0)
	w.insert(p)
	w.local = p.ID
	w.hasLocal = true
	logging.Log.Infof("[Spawning] local player %d spawned at (%.1f, %.1f)", p.ID, p.Position.X, p.Position.Y)
	return p
}

// Connect 客户端连接时出生。同一 owner 已有记录时不重复创建，返回 false。
func (w *World) Connect(ctx *Context, c ClientID) (*PlayerRecord, bool) {
	if p, ok := w.ByOwner(c); ok {
		return p, false
	}
	p := newRecord(ctx, ctx.uniform(-SpawnSpreadX, SpawnSpreadX))
	p.Owner = c
	p.Owned = true
	w.insert(p)
	logging.Log.Infof("spawned player %d for client %d at (%.1f, %.1f)", p.ID, c, p.Position.X, p.Position.Y)
	return p, true
}

// Disconnect 移除 owner 的记录；找不到时为 no-op
func (w *World) Disconnect(c ClientID) (EntityID, bool) {
	id, ok := w.byOwner[c]
	if !ok {
		return 0, false
	}
	w.remove(id)
	logging.Log.Infof("despawned player %d for client %d", id, c)
	return id, true
}
