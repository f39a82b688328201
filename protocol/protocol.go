// Package protocol 定义客户端与服务端之间的线上消息
package protocol

import (
	"time"

	"platformer/game"
)

// ProtocolID 握手时比对，拒绝不兼容的构建
const ProtocolID uint64 = 0x4B48414E48544E

const (
	DefaultPort = 4433
	MaxClients  = 64

	// HandshakeTimeout 连接建立后必须在此时间内完成 hello/welcome
	HandshakeTimeout = 5 * time.Second
)

// 消息类型
const (
	MsgHello   = "hello"
	MsgMove    = "move"
	MsgJump    = "jump"
	MsgWelcome = "welcome"
	MsgReject  = "reject"
	MsgState   = "state"
)

// 拒绝原因
const (
	RejectIncompatible = "incompatible protocol"
	RejectFull         = "server full"
	RejectDuplicate    = "duplicate client"
	RejectBadHello     = "malformed hello"
)

// ---- client → server ----

// Hello 连接后的第一条消息
type Hello struct {
	ProtocolID uint64 `msgpack:"protocol_id"`
	ClientID   uint64 `msgpack:"client_id"`
}

// Move 归一化水平意图，服务端裁剪并乘速度
type Move struct {
	Movement float32 `msgpack:"movement"`
}

// ---- server → client ----

// Welcome 握手成功，携带该客户端的实体 ID
type Welcome struct {
	EntityID uint64 `msgpack:"entity_id"`
	Tick     uint64 `msgpack:"tick"`
}

type Reject struct {
	Reason string `msgpack:"reason"`
}

// PlayerState 单个玩家的复制字段；owner 不下发
type PlayerState struct {
	ID       uint64     `msgpack:"id" json:"id"`
	Position [2]float32 `msgpack:"position" json:"position"`
	Velocity [2]float32 `msgpack:"velocity" json:"velocity"`
	Grounded bool       `msgpack:"grounded" json:"grounded"`
	Color    [4]float32 `msgpack:"color" json:"color"`
}

// State 每个 Tick 的全量快照
type State struct {
	Tick    uint64        `msgpack:"tick" json:"tick"`
	Players []PlayerState `msgpack:"players" json:"players"`
}

// FromRecord 权威记录 → 线上格式
func FromRecord(p game.PlayerRecord) PlayerState {
	return PlayerState{
		ID:       uint64(p.ID),
		Position: [2]float32{p.Position.X, p.Position.Y},
		Velocity: [2]float32{p.Velocity.X, p.Velocity.Y},
		Grounded: p.Grounded,
		Color:    [4]float32{p.Color.R, p.Color.G, p.Color.B, p.Color.A},
	}
}

// Record 线上格式 → 只读镜像记录（无 owner）
func (s PlayerState) Record() game.PlayerRecord {
	return game.PlayerRecord{
		ID:       game.EntityID(s.ID),
		Position: game.Vec2{X: s.Position[0], Y: s.Position[1]},
		Velocity: game.Vec2{X: s.Velocity[0], Y: s.Velocity[1]},
		Grounded: s.Grounded,
		Color:    game.RGBA{R: s.Color[0], G: s.Color[1], B: s.Color[2], A: s.Color[3]},
	}
}

// NewState 由世界快照构建 State
func NewState(tick uint64, players []game.PlayerRecord) State {
	st := State{Tick: tick, Players: make([]PlayerState, 0, len(players))}
	for _, p := range players {
		st.Players = append(st.Players, FromRecord(p))
	}
	return st
}
