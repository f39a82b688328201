package game

// Outcome 单个事件的处理结果，用于指标统计
type Outcome uint8

const (
	OutcomeApplied Outcome = iota
	OutcomeClamped
	OutcomeJumpIgnored
	OutcomeNoOwner
	OutcomeJoined
	OutcomeDuplicateJoin
	OutcomeLeft
	OutcomeLeaveUnknown
)

// Apply 在 Tick 线程中处理一个事件。输入找不到 owner 时静默丢弃。
func (w *World) Apply(ctx *Context, ev Event) Outcome {
	switch ev.Kind {
	case EventJoin:
		if _, created := w.Connect(ctx, ev.Client); !created {
			return OutcomeDuplicateJoin
		}
		return OutcomeJoined
	case EventLeave:
		if _, ok := w.Disconnect(ev.Client); !ok {
			return OutcomeLeaveUnknown
		}
		return OutcomeLeft
	}

	p, ok := w.ByOwner(ev.Client)
	if !ok {
		return OutcomeNoOwner
	}
	switch ev.Kind {
	case EventMove:
		if ApplyMovement(p, MovementInput{Movement: ev.Movement}) {
			return OutcomeClamped
		}
	case EventJump:
		if !ApplyJump(p, JumpInput{}) {
			return OutcomeJumpIgnored
		}
	}
	return OutcomeApplied
}

// ApplyLocal 单机模式：输入直接作用于本地玩家
func (w *World) ApplyLocal(ev Event) Outcome {
	p, ok := w.Local()
	if !ok {
		return OutcomeNoOwner
	}
	switch ev.Kind {
	case EventMove:
		if ApplyMovement(p, MovementInput{Movement: ev.Movement}) {
			return OutcomeClamped
		}
	case EventJump:
		if !ApplyJump(p, JumpInput{}) {
			return OutcomeJumpIgnored
		}
	}
	return OutcomeApplied
}
