package components

// ScrollAxis 滚动方向
type ScrollAxis int

const (
	ScrollVertical ScrollAxis = iota
	ScrollHorizontal
)

// ScrollUnit 滚动量的单位
type ScrollUnit int

const (
	// ScrollLine 鼠标滚轮的"行"
	ScrollLine ScrollUnit = iota
	// ScrollPixel 触控板等连续滚动设备的像素
	ScrollPixel
)

// ScrollChange 一次滚动输入
type ScrollChange struct {
	Axis ScrollAxis
	Diff float32 // 正值表示向上/向右滚动
	Unit ScrollUnit
}

// ScrollableComponent 可接收滚动输入的节点
type ScrollableComponent struct {
	// 本帧收到的滚动，没有时为 nil
	LastChange *ScrollChange

	// 本帧收到了新的滚动（输入系统设置，帧末清除）
	Changed bool
}

// Deliver 记录一次滚动并标记变化
func (s *ScrollableComponent) Deliver(change ScrollChange) {
	c := change
	s.LastChange = &c
	s.Changed = true
}
