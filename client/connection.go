package client

import (
	"context"
	"errors"

	"platformer/game"
	"platformer/logging"
)

var ErrAlreadyConnecting = errors.New("connection already in progress")

// Connection 多人模式的连接状态机。
//
//	Disconnected → Connecting → Connected | Disconnected | Error
//	Connected → Disconnected
//
// 不自动重连：重新进入 Connecting 必须由用户再次选择多人模式。
type Connection struct {
	dial   Dialer
	mirror *Mirror
	nav    *Navigator

	id        game.ClientID
	state     ConnectionState
	transport Transport
	cancel    context.CancelFunc
}

func NewConnection(dial Dialer, mirror *Mirror, nav *Navigator) *Connection {
	return &Connection{dial: dial, mirror: mirror, nav: nav}
}

func (c *Connection) State() ConnectionState { return c.state }
func (c *Connection) ClientID() game.ClientID { return c.id }

// Transport 当前传输对象，未连接时为 nil
func (c *Connection) Transport() Transport { return c.transport }

// Connect 用户选择多人模式：构造传输并进入 Connecting。
// 传输对象无法构造时进入 Error 并回到模式选择界面。
func (c *Connection) Connect(ctx context.Context, serverURL string) error {
	if c.state == StateConnecting || c.state == StateConnected {
		return ErrAlreadyConnecting
	}
	c.id = NewClientID()
	c.mirror.Reset()
	logging.Log.Infof("[Connection] client id %d, server %s", c.id, serverURL)

	ctx, cancel := context.WithCancel(ctx)
	t, err := c.dial(ctx, serverURL, c.id, c.mirror)
	if err != nil {
		cancel()
		logging.Log.Errorf("[Connection] failed to create transport: %v", err)
		c.setState(StateError)
		c.nav.Go(ScreenMainMenu)
		return err
	}
	c.transport = t
	c.cancel = cancel
	c.setState(StateConnecting)
	c.nav.Go(ScreenConnecting)
	return nil
}

// Handle 处理一个传输层信号；与当前状态不匹配的信号被忽略
func (c *Connection) Handle(ev TransportEvent) {
	switch c.state {
	case StateConnecting:
		switch ev {
		case EventEstablished:
			logging.Log.Info("[Connection] connected to server")
			c.setState(StateConnected)
			c.nav.Go(ScreenPlaying)
		case EventHandshakeFailed, EventLost:
			logging.Log.Warn("[Connection] failed to connect to server")
			c.teardown()
			c.setState(StateDisconnected)
			c.nav.Go(ScreenMainMenu)
		}
	case StateConnected:
		if ev == EventLost {
			logging.Log.Warn("[Connection] disconnected from server")
			c.teardown()
			c.setState(StateDisconnected)
			c.nav.Go(ScreenDisconnected)
		}
	}
}

// Poll 非阻塞地处理所有待处理的传输信号，每帧调用一次
func (c *Connection) Poll() {
	for c.transport != nil {
		select {
		case ev, ok := <-c.transport.Events():
			if !ok {
				return
			}
			c.Handle(ev)
		default:
			return
		}
	}
}

// Disconnect 用户主动离开
func (c *Connection) Disconnect() {
	if c.transport == nil && c.state != StateError {
		return
	}
	c.teardown()
	c.setState(StateDisconnected)
	c.nav.Go(ScreenMainMenu)
}

func (c *Connection) teardown() {
	if c.transport != nil {
		_ = c.transport.Close()
		c.transport = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Connection) setState(s ConnectionState) {
	if s == c.state {
		return
	}
	logging.Log.Infof("[Connection] state: %s -> %s", c.state, s)
	c.state = s
}
