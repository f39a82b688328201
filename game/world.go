package game

import "sort"

// World 玩家记录表，按 EntityID 索引，附带 owner 索引。
// 非并发安全：只允许权威方的 Tick 线程访问。
type World struct {
	players map[EntityID]*PlayerRecord
	byOwner map[ClientID]EntityID

	local    EntityID
	hasLocal bool

	nextID EntityID
	tick   uint64
}

// NewWorld 创建空表
func NewWorld() *World {
	return &World{
		players: make(map[EntityID]*PlayerRecord),
		byOwner: make(map[ClientID]EntityID),
		nextID:  1,
	}
}

func (w *World) Get(id EntityID) (*PlayerRecord, bool) {
	p, ok := w.players[id]
	return p, ok
}

// ByOwner 查找 owner 对应的记录
func (w *World) ByOwner(c ClientID) (*PlayerRecord, bool) {
	id, ok := w.byOwner[c]
	if !ok {
		return nil, false
	}
	return w.Get(id)
}

// Local 单机模式下的本地玩家
func (w *World) Local() (*PlayerRecord, bool) {
	if !w.hasLocal {
		return nil, false
	}
	return w.Get(w.local)
}

func (w *World) Len() int { return len(w.players) }
func (w *World) Tick() uint64 { return w.tick }

// Step 以固定 dt 推进所有记录
func (w *World) Step(dt float32) {
	for _, p := range w.players {
		p.SetKinematics(Step(p.Kinematics(), dt))
	}
	w.tick++
}

// Snapshot 返回按 ID 排序的副本，调用方可自由持有
func (w *World) Snapshot() []PlayerRecord {
	out := make([]PlayerRecord, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (w *World) insert(p *PlayerRecord) {
	p.ID = w.nextID
	w.nextID++
	w.players[p.ID] = p
	if p.Owned {
		w.byOwner[p.Owner] = p.ID
	}
}

func (w *World) remove(id EntityID) {
	p, ok := w.players[id]
	if !ok {
		return
	}
	if p.Owned {
		delete(w.byOwner, p.Owner)
	}
	if w.hasLocal && w.local == id {
		w.hasLocal = false
	}
	delete(w.players, id)
}
