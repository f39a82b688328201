package client

import (
	"time"

	"platformer/game"
)

// maxCatchUpSteps 单帧最多补追的 Tick 数
const maxCatchUpSteps = 8

// Local 单机模式的本地权威：唯一一个无 owner 的玩家，固定步长推进
type Local struct {
	ctx   *game.Context
	world *game.World
	clock *game.FixedStep
}

func NewLocal(ctx *game.Context) *Local {
	return &Local{
		ctx:   ctx,
		world: game.NewWorld(),
		clock: game.NewFixedStep(game.TickInterval, maxCatchUpSteps),
	}
}

// Spawn 本地出生请求；重复调用返回同一个玩家
func (l *Local) Spawn() game.PlayerRecord {
	return *l.world.SpawnLocal(l.ctx)
}

// Movement 在产生输入的同一 Tick 内直接应用
func (l *Local) Movement(m float32) error {
	l.world.ApplyLocal(game.Event{Kind: game.EventMove, Movement: m})
	return nil
}

func (l *Local) Jump() error {
	l.world.ApplyLocal(game.Event{Kind: game.EventJump})
	return nil
}

// Advance 按真实经过时间推进若干固定步，返回步数
func (l *Local) Advance(elapsed time.Duration) int {
	n := l.clock.Advance(elapsed)
	for i := 0; i < n; i++ {
		l.world.Step(game.TickDelta)
	}
	return n
}

// StepOnce 推进恰好一个 Tick
func (l *Local) StepOnce() {
	l.world.Step(game.TickDelta)
}

func (l *Local) Players() []game.PlayerRecord { return l.world.Snapshot() }

func (l *Local) Player() (game.PlayerRecord, bool) {
	p, ok := l.world.Local()
	if !ok {
		return game.PlayerRecord{}, false
	}
	return *p, true
}

func (l *Local) Tick() uint64 { return l.world.Tick() }
