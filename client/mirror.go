package client

import (
	"sync"

	"platformer/game"
	"platformer/protocol"
)

// Mirror 服务端状态的只读镜像。每个快照整体替换，客户端不对其运行物理。
type Mirror struct {
	mu       sync.RWMutex
	tick     uint64
	seen     bool
	players  []game.PlayerRecord
	local    game.EntityID
	hasLocal bool
}

func NewMirror() *Mirror {
	return &Mirror{}
}

// Apply 用全量快照替换镜像；旧 Tick 的快照被忽略
func (m *Mirror) Apply(st protocol.State) bool {
	players := make([]game.PlayerRecord, 0, len(st.Players))
	for _, p := range st.Players {
		players = append(players, p.Record())
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen && st.Tick < m.tick {
		return false
	}
	m.tick = st.Tick
	m.seen = true
	m.players = players
	return true
}

// SetLocal 记录 welcome 中分配给本客户端的实体
func (m *Mirror) SetLocal(id game.EntityID) {
	m.mu.Lock()
	m.local = id
	m.hasLocal = true
	m.mu.Unlock()
}

// Players 返回副本
func (m *Mirror) Players() []game.PlayerRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]game.PlayerRecord, len(m.players))
	copy(out, m.players)
	return out
}

// Local 本客户端控制的玩家（尚未出现在快照中时返回 false）
func (m *Mirror) Local() (game.PlayerRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.hasLocal {
		return game.PlayerRecord{}, false
	}
	for _, p := range m.players {
		if p.ID == m.local {
			return p, true
		}
	}
	return game.PlayerRecord{}, false
}

func (m *Mirror) Tick() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tick
}

// Reset 断开后清空
func (m *Mirror) Reset() {
	m.mu.Lock()
	m.tick, m.seen = 0, false
	m.players = nil
	m.local, m.hasLocal = 0, false
	m.mu.Unlock()
}
