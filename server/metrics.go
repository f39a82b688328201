package server

import (
	"sync/atomic"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount          int64 // 统计的 Tick 次数
	Joins              int64 // 创建的玩家记录数
	Leaves             int64 // 移除的玩家记录数
	InputsApplied      int64 // 被应用的输入数
	InputsClamped      int64 // 移动值超出 [-1,1] 被裁剪的输入数
	JumpsIgnored       int64 // 空中跳跃（接受但无效果）
	InputsNoOwner      int64 // 找不到 owner 被丢弃的输入数
	InputsPurged       int64 // 断开时丢弃的排队输入数
	HandshakesRejected int64 // 握手被拒绝的连接数
	TotalTickNs        int64 // Tick 累计耗时（纳秒）
}

func (m *RoomMetrics) IncJoins() { atomic.AddInt64(&m.Joins, 1) }
func (m *RoomMetrics) IncLeaves() { atomic.AddInt64(&m.Leaves, 1) }
func (m *RoomMetrics) IncApplied() { atomic.AddInt64(&m.InputsApplied, 1) }
func (m *RoomMetrics) IncClamped() { atomic.AddInt64(&m.InputsClamped, 1) }
func (m *RoomMetrics) IncJumpsIgnored() { atomic.AddInt64(&m.JumpsIgnored, 1) }
func (m *RoomMetrics) IncNoOwner() { atomic.AddInt64(&m.InputsNoOwner, 1) }
func (m *RoomMetrics) AddPurged(n int64) { atomic.AddInt64(&m.InputsPurged, n) }
func (m *RoomMetrics) IncHandshakeRejected() { atomic.AddInt64(&m.HandshakesRejected, 1) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":          tick,
		"joins":               atomic.LoadInt64(&m.Joins),
		"leaves":              atomic.LoadInt64(&m.Leaves),
		"inputs_applied":      atomic.LoadInt64(&m.InputsApplied),
		"inputs_clamped":      atomic.LoadInt64(&m.InputsClamped),
		"jumps_ignored":       atomic.LoadInt64(&m.JumpsIgnored),
		"inputs_no_owner":     atomic.LoadInt64(&m.InputsNoOwner),
		"inputs_purged":       atomic.LoadInt64(&m.InputsPurged),
		"handshakes_rejected": atomic.LoadInt64(&m.HandshakesRejected),
		"avg_tick_ms":         avgMs,
	}
}
