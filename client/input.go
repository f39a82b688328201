package client

// Sink 输入出口：单机直接作用于本地权威，多人发往服务端
type Sink interface {
	Movement(m float32) error
	Jump() error
}

// JumpEdge 跳跃按键的上升沿检测：按住不放只触发一次
type JumpEdge struct {
	held bool
}

// Update 传入本帧按键是否按下，返回是否应触发跳跃
func (j *JumpEdge) Update(pressed bool) bool {
	fire := pressed && !j.held
	j.held = pressed
	return fire
}

// Controller 每帧采样输入并发往 Sink。
// 移动轴发送原始归一化值（缩放由权威方负责），仅在变化时发送。
type Controller struct {
	sink     Sink
	jump     JumpEdge
	lastMove float32
	sent     bool
}

func NewController(sink Sink) *Controller {
	return &Controller{sink: sink}
}

// Frame 处理一帧输入；axis ∈ [-1,1]
func (c *Controller) Frame(axis float32, jumpHeld bool) error {
	if !c.sent || axis != c.lastMove {
		if err := c.sink.Movement(axis); err != nil {
			return err
		}
		c.lastMove = axis
		c.sent = true
	}
	if c.jump.Update(jumpHeld) {
		return c.sink.Jump()
	}
	return nil
}
