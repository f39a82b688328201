package game

import "time"

// FixedStep 累加器：把可变帧间隔折算成固定步长的 Tick 数
type FixedStep struct {
	step     time.Duration
	maxSteps int
	acc      time.Duration
}

// NewFixedStep maxSteps 限制单帧最多补追的步数，超出部分丢弃
func NewFixedStep(step time.Duration, maxSteps int) *FixedStep {
	if maxSteps <= 0 {
		maxSteps = 1
	}
	return &FixedStep{step: step, maxSteps: maxSteps}
}

// Advance 累加 elapsed，返回本帧应执行的 Tick 数
func (f *FixedStep) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		f.acc += elapsed
	}
	n := int(f.acc / f.step)
	if n > f.maxSteps {
		n = f.maxSteps
		f.acc = 0
		return n
	}
	f.acc -= time.Duration(n) * f.step
	return n
}

// Alpha 剩余累积量占一步的比例，供渲染插值
func (f *FixedStep) Alpha() float64 {
	return float64(f.acc) / float64(f.step)
}
