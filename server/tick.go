package server

import (
	"context"
	"time"

	"platformer/game"
)

// Run 启动房间的 Tick 循环（单线程推进世界），ctx 取消时返回
func (r *Room) Run(ctx context.Context) error {
	ticker := time.NewTicker(game.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			start := time.Now()
			r.Tick()
			r.metrics.AddTick(time.Since(start).Nanoseconds())
		}
	}
}
