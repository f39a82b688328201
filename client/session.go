package client

import (
	"context"
	"errors"
	"time"

	"platformer/game"
	"platformer/logging"
)

// Session 客户端会话：模式选择、界面导航、当前权威或连接。
// 所有方法只在客户端主循环中调用。
type Session struct {
	// Volume 由外部音效模块读取
	Volume float32

	mode       game.Mode
	nav        *Navigator
	mirror     *Mirror
	conn       *Connection
	local      *Local
	controller *Controller
}

func NewSession(dial Dialer) *Session {
	nav := &Navigator{}
	mirror := NewMirror()
	return &Session{
		Volume: 1,
		nav:    nav,
		mirror: mirror,
		conn:   NewConnection(dial, mirror, nav),
	}
}

func (s *Session) Mode() game.Mode { return s.mode }
func (s *Session) Screen() Screen { return s.nav.Screen() }
func (s *Session) Navigator() *Navigator { return s.nav }
func (s *Session) ConnectionState() ConnectionState { return s.conn.State() }
func (s *Session) Mirror() *Mirror { return s.mirror }

// SelectSinglePlayer 启动本地权威并出生本地玩家
func (s *Session) SelectSinglePlayer(ctx *game.Context) {
	s.leave()
	s.mode = game.SinglePlayer
	s.local = NewLocal(ctx)
	p := s.local.Spawn()
	s.controller = NewController(s.local)
	logging.Log.Infof("[SinglePlayer] local player spawned at (%.1f, %.1f)", p.Position.X, p.Position.Y)
	s.nav.Go(ScreenPlaying)
}

// SelectMultiplayer 发起连接；失败原因已反映在连接状态中
func (s *Session) SelectMultiplayer(ctx context.Context, serverURL string) error {
	s.leave()
	s.mode = game.Multiplayer
	return s.conn.Connect(ctx, serverURL)
}

// Update 每帧调用：处理连接信号，采样输入，推进本地模拟
func (s *Session) Update(elapsed time.Duration, axis float32, jumpHeld bool) error {
	switch s.mode {
	case game.SinglePlayer:
		if s.local == nil {
			return nil
		}
		if err := s.controller.Frame(axis, jumpHeld); err != nil {
			return err
		}
		s.local.Advance(elapsed)
	case game.Multiplayer:
		s.conn.Poll()
		if s.conn.State() != StateConnected {
			s.controller = nil
			return nil
		}
		if s.controller == nil {
			s.controller = NewController(NetworkSink{T: s.conn.Transport()})
		}
		// 传输已关闭：断线信号会在下一帧的 Poll 中处理
		if err := s.controller.Frame(axis, jumpHeld); err != nil && !errors.Is(err, ErrTransportClosed) {
			return err
		}
	}
	return nil
}

// Players 当前可见的玩家：单机来自本地权威，多人来自镜像
func (s *Session) Players() []game.PlayerRecord {
	if s.mode == game.SinglePlayer && s.local != nil {
		return s.local.Players()
	}
	return s.mirror.Players()
}

// Self 本客户端控制的玩家
func (s *Session) Self() (game.PlayerRecord, bool) {
	if s.mode == game.SinglePlayer && s.local != nil {
		return s.local.Player()
	}
	return s.mirror.Local()
}

// BackToMenu 回到模式选择
func (s *Session) BackToMenu() {
	s.leave()
	s.nav.Go(ScreenMainMenu)
}

func (s *Session) leave() {
	s.conn.Disconnect()
	s.local = nil
	s.controller = nil
}
