package client

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"platformer/game"
	"platformer/logging"
	"platformer/protocol"
)

const (
	clientSendBuffer = 256
	clientWriteWait  = 5 * time.Second
)

// wsTransport 基于 WebSocket 的传输：握手在后台进行，成功后镜像服务端快照
type wsTransport struct {
	events chan TransportEvent
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	mirror *Mirror

	mu   sync.Mutex
	conn *websocket.Conn
}

// DialWebSocket 校验地址并构造传输对象；实际连接与 hello/welcome 握手异步完成
func DialWebSocket(ctx context.Context, serverURL string, id game.ClientID, mirror *Mirror) (Transport, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadServerURL, err)
	}
	if (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBadServerURL, serverURL)
	}
	t := &wsTransport{
		events: make(chan TransportEvent, 4),
		send:   make(chan []byte, clientSendBuffer),
		done:   make(chan struct{}),
		mirror: mirror,
	}
	go t.run(ctx, u.String(), id)
	return t, nil
}

func (t *wsTransport) Events() <-chan TransportEvent { return t.events }

func (t *wsTransport) SendMovement(movement float32) error {
	b, err := protocol.Encode(protocol.MsgMove, protocol.Move{Movement: movement})
	if err != nil {
		return err
	}
	return t.enqueue(b)
}

func (t *wsTransport) SendJump() error {
	b, err := protocol.Encode(protocol.MsgJump, nil)
	if err != nil {
		return err
	}
	return t.enqueue(b)
}

// enqueue 阻塞直到写入队列或传输关闭；输入不允许丢弃
func (t *wsTransport) enqueue(b []byte) error {
	select {
	case <-t.done:
		return ErrTransportClosed
	default:
	}
	select {
	case t.send <- b:
		return nil
	case <-t.done:
		return ErrTransportClosed
	}
}

func (t *wsTransport) Close() error {
	t.once.Do(func() {
		close(t.done)
		t.mu.Lock()
		if t.conn != nil {
			_ = t.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = t.conn.Close()
		}
		t.mu.Unlock()
	})
	return nil
}

func (t *wsTransport) emit(ev TransportEvent) {
	select {
	case t.events <- ev:
	default:
		logging.Log.Warnf("[Connection] dropping transport event %s", ev)
	}
}

func (t *wsTransport) run(ctx context.Context, serverURL string, id game.ClientID) {
	dialer := websocket.Dialer{HandshakeTimeout: protocol.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, serverURL, nil)
	if err != nil {
		logging.Log.Warnf("[Connection] dial %s: %v", serverURL, err)
		t.emit(EventHandshakeFailed)
		return
	}
	t.mu.Lock()
	select {
	case <-t.done:
		t.mu.Unlock()
		_ = conn.Close()
		return
	default:
	}
	t.conn = conn
	t.mu.Unlock()

	if err := t.handshake(conn, id); err != nil {
		logging.Log.Warnf("[Connection] handshake: %v", err)
		_ = conn.Close()
		t.emit(EventHandshakeFailed)
		return
	}
	t.emit(EventEstablished)

	go t.writePump(conn)
	t.readLoop(conn)
}

// handshake 发送 hello 并等待 welcome 或 reject
func (t *wsTransport) handshake(conn *websocket.Conn, id game.ClientID) error {
	hello, err := protocol.Encode(protocol.MsgHello, protocol.Hello{ProtocolID: protocol.ProtocolID, ClientID: uint64(id)})
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(clientWriteWait))
	if err := conn.WriteMessage(websocket.BinaryMessage, hello); err != nil {
		return err
	}
	_ = conn.SetReadDeadline(time.Now().Add(protocol.HandshakeTimeout))
	for {
		_, b, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		env, err := protocol.DecodeEnvelope(b)
		if err != nil {
			return err
		}
		switch env.T {
		case protocol.MsgWelcome:
			w, err := protocol.DecodePayload[protocol.Welcome](env)
			if err != nil {
				return err
			}
			t.mirror.SetLocal(game.EntityID(w.EntityID))
			_ = conn.SetReadDeadline(time.Time{})
			return nil
		case protocol.MsgReject:
			r, err := protocol.DecodePayload[protocol.Reject](env)
			if err != nil {
				return err
			}
			return fmt.Errorf("rejected by server: %s", r.Reason)
		}
	}
}

func (t *wsTransport) readLoop(conn *websocket.Conn) {
	defer func() {
		select {
		case <-t.done:
		default:
			t.emit(EventLost)
		}
		t.Close()
	}()
	for {
		_, b, err := conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := protocol.DecodeEnvelope(b)
		if err != nil || env.T != protocol.MsgState {
			continue
		}
		st, err := protocol.DecodePayload[protocol.State](env)
		if err != nil {
			logging.Log.Debugf("[Connection] bad state frame: %v", err)
			continue
		}
		t.mirror.Apply(st)
	}
}

func (t *wsTransport) writePump(conn *websocket.Conn) {
	for {
		select {
		case b := <-t.send:
			_ = conn.SetWriteDeadline(time.Now().Add(clientWriteWait))
			if err := conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
				_ = conn.Close()
				return
			}
		case <-t.done:
			return
		}
	}
}
