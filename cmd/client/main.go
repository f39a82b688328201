package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"platformer/client"
	"platformer/config"
	"platformer/game"
	"platformer/logging"
)

// 终端客户端：a/d 左右移动（s 停止），空格或 w 跳跃，r 重新连接，q 退出
func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg := config.ClientFromEnv()
	mode := flag.String("mode", "single", "game mode: single or multi")
	flag.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "server websocket url")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file path")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// 终端处于原始模式，日志只写文件
	if err := logging.Init(logging.Options{File: cfg.LogFile, Level: level}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logging.Sync()

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			logging.Log.Fatalf("raw terminal: %v", err)
		}
		defer term.Restore(fd, old)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := client.NewSession(client.DialWebSocket)
	session.Navigator().OnChange = func(from, to client.Screen) {
		logging.Log.Infof("[Screen] %s -> %s", from, to)
	}
	selectMode := func() {
		if *mode == "multi" {
			if err := session.SelectMultiplayer(ctx, cfg.ServerURL); err != nil {
				logging.Log.Errorf("connect: %v", err)
			}
			return
		}
		session.SelectSinglePlayer(game.NewContext(game.SinglePlayer))
	}
	selectMode()

	keys := make(chan byte, 64)
	go readKeys(keys)

	frame := time.NewTicker(time.Second / 60)
	defer frame.Stop()
	status := time.NewTicker(250 * time.Millisecond)
	defer status.Stop()

	var axis float32
	last := time.Now()
	for {
		jump := false
		select {
		case <-ctx.Done():
			return
		case <-status.C:
			printStatus(session)
			continue
		case <-frame.C:
		}
	drain:
		for {
			select {
			case k, ok := <-keys:
				if !ok {
					keys = nil
					break drain
				}
				switch k {
				case 'a', 'h':
					axis = -1
				case 'd', 'l':
					axis = 1
				case 's':
					axis = 0
				case ' ', 'w':
					jump = true
				case 'r':
					if session.ConnectionState() != client.StateConnecting && session.ConnectionState() != client.StateConnected {
						selectMode()
					}
				case 'q', 3:
					session.BackToMenu()
					return
				}
			default:
				break drain
			}
		}
		now := time.Now()
		if err := session.Update(now.Sub(last), axis, jump); err != nil {
			logging.Log.Errorf("update: %v", err)
		}
		last = now
	}
}

// readKeys 原始模式下逐字节读取按键
func readKeys(out chan<- byte) {
	buf := make([]byte, 16)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			close(out)
			return
		}
		for _, b := range buf[:n] {
			out <- b
		}
	}
}

func printStatus(s *client.Session) {
	line := fmt.Sprintf("[%s] %s conn=%s players=%d", s.Mode(), s.Screen(), s.ConnectionState(), len(s.Players()))
	if self, ok := s.Self(); ok {
		line += fmt.Sprintf(" pos=(%.1f, %.1f) vel=(%.1f, %.1f) grounded=%v",
			self.Position.X, self.Position.Y, self.Velocity.X, self.Velocity.Y, self.Grounded)
	}
	if s.Screen() == client.ScreenDisconnected {
		line += " (lost connection to server, press r to reconnect)"
	}
	fmt.Printf("\r\x1b[2K%s", line)
}
