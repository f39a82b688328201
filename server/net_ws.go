package server

import (
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"platformer/game"
	"platformer/logging"
	"platformer/protocol"
)

const (
	sendBuffer   = 256
	writeTimeout = 5 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 25 * time.Second
)

var (
	ErrSendBufferFull = errors.New("send buffer full")
	ErrConnClosed     = errors.New("connection closed")
)

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func NewClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

// Send 将消息压入发送队列。队列满说明客户端跟不上，返回错误由房间断开它；
// 可靠有序通道上不允许静默跳帧。
func (c *ClientConn) Send(b []byte) error {
	select {
	case <-c.done:
		return ErrConnClosed
	default:
	}
	select {
	case c.send <- b:
		return nil
	case <-c.done:
		return ErrConnClosed
	default:
		return ErrSendBufferFull
	}
}

// Close 结束写协程并关闭底层连接，可重复调用
func (c *ClientConn) Close() error {
	c.once.Do(func() {
		close(c.done)
	})
	return nil
}

// writePump 独立协程，负责从 send 队列写出到 WS，并定期发送 ping
func (c *ClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			// 尽量把已排队的帧写完再关闭
			for {
				select {
				case msg := <-c.send:
					_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := c.ws.WriteMessage(websocket.BinaryMessage, msg); err != nil {
						return
					}
				default:
					_ = c.ws.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
						time.Now().Add(time.Second))
					return
				}
			}
		}
	}
}

// readPump 读取客户端输入，转换为事件注入房间
func (c *ClientConn) readPump(room *Room, id game.ClientID) {
	// 读泵退出时，通知房间在 Tick 线程中移除该玩家
	defer room.RequestLeave(id)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		env, err := protocol.DecodeEnvelope(payload)
		if err != nil {
			logging.Log.Debugf("client %d: bad frame: %v", id, err)
			continue
		}
		switch env.T {
		case protocol.MsgMove:
			mv, err := protocol.DecodePayload[protocol.Move](env)
			if err != nil {
				logging.Log.Debugf("client %d: %v", id, err)
				continue
			}
			room.OnMove(id, mv.Movement)
		case protocol.MsgJump:
			room.OnJump(id)
		default:
			logging.Log.Debugf("client %d: unexpected message %q", id, env.T)
		}
	}
}

// ipLimiter 按远端 IP 限制握手频率
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	burst    int
}

func newIPLimiter(perSecond float64, burst int) *ipLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &ipLimiter{limiters: make(map[string]*rate.Limiter), r: rate.Limit(perSecond), burst: burst}
}

func (l *ipLimiter) allow(remoteAddr string) bool {
	if l == nil || l.r <= 0 {
		return true
	}
	ip, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		ip = remoteAddr
	}
	l.mu.Lock()
	lim, ok := l.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(l.r, l.burst)
		l.limiters[ip] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 浏览器客户端可能来自任意页面来源；鉴权靠握手中的协议 ID
		return true
	},
}

// handleWS WebSocket 接入：升级 → 读取 hello → 校验 → 登记到房间 → 启动读写协程
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.allow(r.RemoteAddr) {
		s.room.metrics.IncHandshakeRejected()
		http.Error(w, "too many connection attempts", http.StatusTooManyRequests)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Log.Warnf("upgrade error: %v", err)
		return
	}
	ws.SetReadLimit(4 << 10)

	hello, err := readHello(ws)
	if err != nil {
		s.reject(ws, protocol.RejectBadHello, err)
		return
	}
	if hello.ProtocolID != protocol.ProtocolID {
		s.reject(ws, protocol.RejectIncompatible, nil)
		return
	}

	id := game.ClientID(hello.ClientID)
	client := NewClientConn(ws)
	if err := s.room.Admit(id, client); err != nil {
		reason := protocol.RejectFull
		if errors.Is(err, ErrDuplicateClient) {
			reason = protocol.RejectDuplicate
		}
		s.reject(ws, reason, err)
		return
	}
	logging.Log.Infof("client %d connected from %s", id, r.RemoteAddr)

	go client.writePump()
	go client.readPump(s.room, id)
}

// readHello 握手必须在 HandshakeTimeout 内完成
func readHello(ws *websocket.Conn) (protocol.Hello, error) {
	_ = ws.SetReadDeadline(time.Now().Add(protocol.HandshakeTimeout))
	_, payload, err := ws.ReadMessage()
	if err != nil {
		return protocol.Hello{}, err
	}
	env, err := protocol.DecodeEnvelope(payload)
	if err != nil {
		return protocol.Hello{}, err
	}
	if env.T != protocol.MsgHello {
		return protocol.Hello{}, errors.New("first message is not hello")
	}
	return protocol.DecodePayload[protocol.Hello](env)
}

// reject 发送拒绝原因后关闭连接
func (s *Server) reject(ws *websocket.Conn, reason string, cause error) {
	s.room.metrics.IncHandshakeRejected()
	if cause != nil {
		logging.Log.Warnf("handshake rejected (%s): %v", reason, cause)
	} else {
		logging.Log.Warnf("handshake rejected (%s)", reason)
	}
	if b, err := protocol.Encode(protocol.MsgReject, protocol.Reject{Reason: reason}); err == nil {
		_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		_ = ws.WriteMessage(websocket.BinaryMessage, b)
	}
	_ = ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason),
		time.Now().Add(time.Second))
	_ = ws.Close()
}
