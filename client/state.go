package client

import "sync"

// ConnectionState 客户端连接生命周期
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateError
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Screen 界面导航状态，由外部 UI 读取
type Screen int

const (
	ScreenMainMenu Screen = iota
	ScreenConnecting
	ScreenPlaying
	// ScreenDisconnected 会话中途断开，与初始菜单区分以便提示用户
	ScreenDisconnected
)

func (s Screen) String() string {
	switch s {
	case ScreenMainMenu:
		return "MainMenu"
	case ScreenConnecting:
		return "Connecting"
	case ScreenPlaying:
		return "Playing"
	case ScreenDisconnected:
		return "Disconnected"
	default:
		return "Unknown"
	}
}

// Navigator 当前界面；渲染线程可并发读取
type Navigator struct {
	mu       sync.RWMutex
	screen   Screen
	OnChange func(from, to Screen)
}

func (n *Navigator) Screen() Screen {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.screen
}

// Go 切换界面，相同界面不触发回调
func (n *Navigator) Go(to Screen) {
	n.mu.Lock()
	from := n.screen
	n.screen = to
	cb := n.OnChange
	n.mu.Unlock()
	if from != to && cb != nil {
		cb(from, to)
	}
}
