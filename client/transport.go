package client

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/google/uuid"

	"platformer/game"
)

// TransportEvent 传输层上报的连接信号
type TransportEvent int

const (
	EventEstablished TransportEvent = iota + 1
	EventHandshakeFailed
	EventLost
)

func (e TransportEvent) String() string {
	switch e {
	case EventEstablished:
		return "established"
	case EventHandshakeFailed:
		return "handshake-failed"
	case EventLost:
		return "lost"
	default:
		return "unknown"
	}
}

var (
	ErrBadServerURL    = errors.New("invalid server url")
	ErrTransportClosed = errors.New("transport closed")
)

// Transport 已构造的传输对象：异步握手，通过 Events 报告结果；
// 输入经有序可靠通道发送
type Transport interface {
	Events() <-chan TransportEvent
	SendMovement(movement float32) error
	SendJump() error
	Close() error
}

// Dialer 构造传输对象；返回错误表示连传输对象都无法建立（如地址格式错误）
type Dialer func(ctx context.Context, serverURL string, id game.ClientID, mirror *Mirror) (Transport, error)

// NewClientID 随机 64 位客户端标识，取 UUIDv4 的高 64 位
func NewClientID() game.ClientID {
	u := uuid.New()
	return game.ClientID(binary.BigEndian.Uint64(u[:8]))
}

// NetworkSink 多人模式输入出口：发往服务端
type NetworkSink struct {
	T Transport
}

func (n NetworkSink) Movement(m float32) error { return n.T.SendMovement(m) }
func (n NetworkSink) Jump() error { return n.T.SendJump() }
