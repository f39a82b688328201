package game

// EntityID 玩家记录在表中的键
type EntityID uint64

// ClientID 连接身份（握手时由客户端生成的随机 64 位值）
type ClientID uint64

// Vec2 二维向量（32 位浮点，与线上格式一致）
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// RGBA 颜色，各分量在 [0,1]
type RGBA struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

// Kinematics 物理步进的全部输入/输出
type Kinematics struct {
	Position Vec2
	Velocity Vec2
	Grounded bool
}

// PlayerRecord 每个活跃玩家一条；物理字段只由权威方修改
type PlayerRecord struct {
	ID       EntityID `json:"id"`
	Position Vec2     `json:"position"`
	Velocity Vec2     `json:"velocity"`
	Grounded bool     `json:"grounded"`
	Color    RGBA     `json:"color"`

	// Owner 仅多人模式有效；Owned 为 false 表示单机本地玩家
	Owner ClientID `json:"-"`
	Owned bool     `json:"-"`
}

// Kinematics 取出物理状态
func (p *PlayerRecord) Kinematics() Kinematics {
	return Kinematics{Position: p.Position, Velocity: p.Velocity, Grounded: p.Grounded}
}

// SetKinematics 写回物理状态
func (p *PlayerRecord) SetKinematics(k Kinematics) {
	p.Position = k.Position
	p.Velocity = k.Velocity
	p.Grounded = k.Grounded
}
