package game

import "sync"

// EventKind 队列中事件类型
type EventKind uint8

const (
	EventJoin EventKind = iota + 1
	EventLeave
	EventMove
	EventJump
)

func (k EventKind) String() string {
	switch k {
	case EventJoin:
		return "join"
	case EventLeave:
		return "leave"
	case EventMove:
		return "move"
	case EventJump:
		return "jump"
	default:
		return "unknown"
	}
}

// Event 由网络协程产生、在 Tick 开始时按到达顺序消费
type Event struct {
	Kind     EventKind
	Client   ClientID
	Movement float32
}

func (e Event) isInput() bool { return e.Kind == EventMove || e.Kind == EventJump }

// Queue 有序、不丢弃的事件队列。多个生产者，单个消费者（Tick 线程）。
// 同一 ClientID 的 join/leave/input 严格按入队顺序处理。
type Queue struct {
	mu      sync.Mutex
	pending []Event
	spare   []Event
}

// NewQueue 创建队列
func NewQueue() *Queue {
	return &Queue{pending: make([]Event, 0, 256), spare: make([]Event, 0, 256)}
}

// Push 追加一个事件
func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	q.pending = append(q.pending, ev)
	q.mu.Unlock()
}

// Leave 丢弃该客户端尚未处理的输入，再追加 leave。返回被丢弃的输入数。
func (q *Queue) Leave(c ClientID) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.pending[:0]
	purged := 0
	for _, ev := range q.pending {
		if ev.Client == c && ev.isInput() {
			purged++
			continue
		}
		kept = append(kept, ev)
	}
	q.pending = append(kept, Event{Kind: EventLeave, Client: c})
	return purged
}

// Drain 取出当前全部事件。返回的切片在下一次 Drain 前有效。
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = q.spare[:0]
	q.spare = out
	return out
}

// Len 待处理事件数
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
