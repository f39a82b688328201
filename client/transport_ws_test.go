package client

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"platformer/config"
	"platformer/game"
	"platformer/server"
)

func startGameServer(t *testing.T) (*server.Server, string) {
	t.Helper()
	s := server.New(config.Server{MaxClients: 4, JoinRate: 100, JoinBurst: 100})
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = s.Run(ctx) }()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return s, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func pumpUntil(t *testing.T, s *Session, axis float32, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if err := s.Update(game.TickInterval, axis, false); err != nil {
			t.Fatalf("update: %v", err)
		}
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met (state=%s screen=%s)", s.ConnectionState(), s.Screen())
}

func TestMultiplayerEndToEnd(t *testing.T) {
	srv, url := startGameServer(t)
	s := NewSession(DialWebSocket)
	if err := s.SelectMultiplayer(context.Background(), url); err != nil {
		t.Fatalf("select: %v", err)
	}
	pumpUntil(t, s, 0, func() bool { return s.ConnectionState() == StateConnected })
	if s.Screen() != ScreenPlaying {
		t.Fatalf("screen = %s", s.Screen())
	}

	pumpUntil(t, s, 1, func() bool {
		self, ok := s.Self()
		return ok && self.Velocity.X == game.MoveSpeed
	})

	// 服务端移除该客户端 → 客户端进入断线界面
	srv.Room().RequestLeave(s.conn.ClientID())
	pumpUntil(t, s, 0, func() bool { return s.ConnectionState() == StateDisconnected })
	if s.Screen() != ScreenDisconnected {
		t.Fatalf("screen after loss = %s, want Disconnected", s.Screen())
	}
}

func TestMultiplayerHandshakeFailure(t *testing.T) {
	s := NewSession(DialWebSocket)
	// 没有服务监听的地址
	if err := s.SelectMultiplayer(context.Background(), "ws://127.0.0.1:1/ws"); err != nil {
		t.Fatalf("select: %v", err)
	}
	pumpUntil(t, s, 0, func() bool { return s.ConnectionState() == StateDisconnected })
	if s.Screen() != ScreenMainMenu {
		t.Fatalf("screen = %s, want MainMenu", s.Screen())
	}
}

func TestMultiplayerMalformedAddressIsError(t *testing.T) {
	s := NewSession(DialWebSocket)
	if err := s.SelectMultiplayer(context.Background(), "not a url"); err == nil {
		t.Fatalf("expected error")
	}
	if s.ConnectionState() != StateError || s.Screen() != ScreenMainMenu {
		t.Fatalf("state=%s screen=%s", s.ConnectionState(), s.Screen())
	}
}
