package server

import (
	"errors"
	"sync"
	"sync/atomic"

	"platformer/game"
	"platformer/logging"
	"platformer/protocol"
)

var (
	ErrRoomFull        = errors.New("room is full")
	ErrDuplicateClient = errors.New("client already connected")
)

// Conn 房间只依赖发送与关闭，便于测试替换
type Conn interface {
	Send([]byte) error
	Close() error
}

// peer 已通过握手的连接；joined 在 Tick 线程处理 join 后置位
type peer struct {
	conn   Conn
	joined bool
}

// Room 房间世界：权威状态维护在内存，单线程 Tick 推进。
// 网络协程只向 queue 追加事件，World 只由 Tick 线程读写。
type Room struct {
	ctx        *game.Context
	world      *game.World
	queue      *game.Queue
	maxClients int

	mu      sync.RWMutex
	clients map[game.ClientID]*peer

	tickSeq  atomic.Uint64
	snapshot atomic.Pointer[protocol.State]
	metrics  *RoomMetrics
}

// NewRoom 创建房间，初始化数据结构
func NewRoom(maxClients int) *Room {
	if maxClients <= 0 {
		maxClients = protocol.MaxClients
	}
	r := &Room{
		ctx:        game.NewContext(game.Multiplayer),
		world:      game.NewWorld(),
		queue:      game.NewQueue(),
		maxClients: maxClients,
		clients:    make(map[game.ClientID]*peer),
		metrics:    &RoomMetrics{},
	}
	r.snapshot.Store(&protocol.State{Players: []protocol.PlayerState{}})
	return r
}

// Admit 握手通过后登记连接并排队 join；容量与重复 ID 在此拒绝
func (r *Room) Admit(id game.ClientID, conn Conn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; ok {
		return ErrDuplicateClient
	}
	if len(r.clients) >= r.maxClients {
		return ErrRoomFull
	}
	r.clients[id] = &peer{conn: conn}
	r.queue.Push(game.Event{Kind: game.EventJoin, Client: id})
	return nil
}

// RequestLeave 连接断开：丢弃该客户端未处理的输入，排队 leave，关闭连接
func (r *Room) RequestLeave(id game.ClientID) {
	r.mu.Lock()
	p, ok := r.clients[id]
	delete(r.clients, id)
	var purged int
	if ok {
		purged = r.queue.Leave(id)
	}
	r.mu.Unlock()
	if !ok {
		return
	}
	r.metrics.AddPurged(int64(purged))
	_ = p.conn.Close()
	logging.Log.Infof("client %d left, purged %d queued inputs", id, purged)
}

// OnMove 入站移动输入，仅记录意图，等下一次 Tick 处理
func (r *Room) OnMove(id game.ClientID, movement float32) {
	r.queue.Push(game.Event{Kind: game.EventMove, Client: id, Movement: movement})
}

// OnJump 入站跳跃输入
func (r *Room) OnJump(id game.ClientID) {
	r.queue.Push(game.Event{Kind: game.EventJump, Client: id})
}

// ProcessInputs 按到达顺序处理本 Tick 之前的所有事件
func (r *Room) ProcessInputs() {
	for _, ev := range r.queue.Drain() {
		switch r.world.Apply(r.ctx, ev) {
		case game.OutcomeJoined:
			r.metrics.IncJoins()
			r.welcome(ev.Client)
		case game.OutcomeLeft:
			r.metrics.IncLeaves()
		case game.OutcomeApplied:
			r.metrics.IncApplied()
		case game.OutcomeClamped:
			r.metrics.IncApplied()
			r.metrics.IncClamped()
		case game.OutcomeJumpIgnored:
			r.metrics.IncJumpsIgnored()
		case game.OutcomeNoOwner:
			r.metrics.IncNoOwner()
		}
	}
}

// welcome 告知客户端其实体 ID，并开始接收广播
func (r *Room) welcome(id game.ClientID) {
	rec, ok := r.world.ByOwner(id)
	if !ok {
		return
	}
	b, err := protocol.Encode(protocol.MsgWelcome, protocol.Welcome{EntityID: uint64(rec.ID), Tick: r.world.Tick()})
	if err != nil {
		logging.Log.Errorf("encode welcome: %v", err)
		return
	}
	r.mu.Lock()
	p, ok := r.clients[id]
	if ok {
		p.joined = true
	}
	r.mu.Unlock()
	if !ok {
		return
	}
	if err := p.conn.Send(b); err != nil {
		go r.RequestLeave(id)
	}
}

// UpdateWorld 以固定 dt 推进所有玩家
func (r *Room) UpdateWorld() {
	r.world.Step(game.TickDelta)
	r.tickSeq.Store(r.world.Tick())
}

// Broadcast 发布快照并将全量状态发给所有已加入的客户端。
// 全量广播同时承担晚加入者的初始同步。
func (r *Room) Broadcast() {
	state := protocol.NewState(r.world.Tick(), r.world.Snapshot())
	r.snapshot.Store(&state)

	b, err := protocol.Encode(protocol.MsgState, state)
	if err != nil {
		logging.Log.Errorf("encode state: %v", err)
		return
	}

	var failed []game.ClientID
	r.mu.RLock()
	for id, p := range r.clients {
		if !p.joined {
			continue
		}
		if err := p.conn.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	r.mu.RUnlock()
	for _, id := range failed {
		logging.Log.Warnf("client %d cannot keep up, disconnecting", id)
		r.RequestLeave(id)
	}
}

// Tick 核心循环：处理输入 → 更新世界 → 广播结果
func (r *Room) Tick() {
	r.ProcessInputs()
	r.UpdateWorld()
	r.Broadcast()
}

// Snapshot 最近一次广播的状态，供 HTTP 只读访问
func (r *Room) Snapshot() *protocol.State {
	return r.snapshot.Load()
}

// NumClients 已登记的连接数
func (r *Room) NumClients() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

func (r *Room) Metrics() *RoomMetrics { return r.metrics }
